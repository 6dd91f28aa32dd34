package call

import (
	"fmt"
	"strings"

	"intervai/internal/behavioral"
	"intervai/internal/models"
	"intervai/internal/prompts"
	"intervai/internal/voice"
)

const behavioralQuestionCount = 3

var firstMessages = map[string]string{
	models.InterviewTypeTechnical:  "Hello! I'm your interviewer today. I'll be asking you technical questions to assess your programming skills, problem-solving abilities, and technical knowledge. Please speak clearly and take your time with your responses.",
	models.InterviewTypeBehavioral: "Hello! I'm your interviewer today. I'll be asking you behavioral questions to assess your soft skills, past experiences, and how you handle various situations. Please speak clearly and take your time with your responses.",
	models.InterviewTypeMixed:      "Hello! I'm your interviewer today. I'll be asking you a mix of technical and behavioral questions to assess your skills, experience, and problem-solving abilities. Please speak clearly and take your time with your responses.",
}

// FirstMessage returns the opening remark for an interview type, or the platform default.
func FirstMessage(interviewType string) string {
	if m, ok := firstMessages[interviewType]; ok {
		return m
	}
	return voice.DefaultFirstMessage
}

// BuildSessionConfig assembles what the voice platform is started with.
//
// Generate mode starts the preconfigured assistant with the caller's identity bound as variables.
// Interview mode builds an inline assistant whose system prompt is, in order: the job profile,
// the prepared questions (technical types), three role-relevant behavioral questions
// (behavioral types) and the base interviewer instruction.
func BuildSessionConfig(opts Options, cred voice.Config, pp prompts.PromptProvider, sel *behavioral.Selector) (*voice.SessionConfig, error) {
	if opts.Mode == models.SessionModeGenerate {
		if cred.AssistantID == "" {
			return nil, ErrMissingAssistant
		}
		return &voice.SessionConfig{
			AssistantID: cred.AssistantID,
			Variables: map[string]string{
				"username": opts.UserName,
				"userid":   opts.UserID,
			},
		}, nil
	}

	p := opts.Profile
	role := p.Role
	if role == "" {
		role = models.DefaultRole
	}
	techstack := "General"
	if len(p.Techstack) > 0 {
		techstack = strings.Join(p.Techstack, ", ")
	}
	interviewType := p.Type
	if interviewType == "" {
		interviewType = models.InterviewTypeMixed
	}

	var b strings.Builder
	fmt.Fprintf(&b, "INTERVIEW JOB PROFILE:\n- Role: %s\n- Tech Stack: %s\n- Type: %s", role, techstack, interviewType)

	bulleted := bulletList(p.Questions)
	if (p.Type == models.InterviewTypeTechnical || p.Type == models.InterviewTypeMixed) && len(p.Questions) > 0 {
		b.WriteString("\n\nTECHNICAL QUESTIONS TO ASK:\n")
		b.WriteString(bulleted)
	}
	if p.Type == models.InterviewTypeBehavioral || p.Type == models.InterviewTypeMixed {
		b.WriteString("\n\nBEHAVIORAL QUESTIONS TO ASK:\n")
		for i, q := range sel.ForRole(role, behavioralQuestionCount) {
			if i > 0 {
				b.WriteString("\n")
			}
			fmt.Fprintf(&b, "%d. %s", i+1, q.Question)
		}
	}

	base, err := pp.BuildPrompt("interviewer", "default", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build interviewer prompt: %w", err)
	}
	if base != "" {
		b.WriteString("\n\n")
		b.WriteString(base)
	}

	name := voice.DefaultAssistantName
	if p.Role != "" {
		name = p.Role + " Interviewer"
	}

	return &voice.SessionConfig{
		Assistant: &voice.AssistantConfig{
			Name:         name,
			FirstMessage: FirstMessage(p.Type),
			SystemPrompt: b.String(),
		},
		Variables: map[string]string{"questions": bulleted},
	}, nil
}

func bulletList(items []string) string {
	lines := make([]string, len(items))
	for i, it := range items {
		lines[i] = "- " + it
	}
	return strings.Join(lines, "\n")
}
