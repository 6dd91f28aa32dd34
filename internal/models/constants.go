package models

import "strings"

// interview types accepted by the catalog, the question generator and the session builder
const (
	InterviewTypeTechnical  = "Technical"
	InterviewTypeBehavioral = "Behavioral"
	InterviewTypeMixed      = "Mixed"
)

// contains all valid interview types
var ValidInterviewTypes = map[string]bool{
	InterviewTypeTechnical:  true,
	InterviewTypeBehavioral: true,
	InterviewTypeMixed:      true,
}

func ValidInterviewTypesList() []string {
	return []string{InterviewTypeTechnical, InterviewTypeBehavioral, InterviewTypeMixed}
}

// CanonicalInterviewType matches t against the valid types ignoring case and surrounding space.
func CanonicalInterviewType(t string) (string, bool) {
	t = strings.TrimSpace(t)
	for _, valid := range ValidInterviewTypesList() {
		if strings.EqualFold(t, valid) {
			return valid, true
		}
	}
	return t, false
}

// session modes
const (
	// SessionModeInterview runs a prepared interview and produces feedback when it ends.
	SessionModeInterview = "interview"
	// SessionModeGenerate runs the question-gathering assistant; no feedback is produced.
	SessionModeGenerate = "generate"
)

// speaker roles in a transcript
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// the five feedback categories, in the order they are reported
const (
	CategoryTechnicalKnowledge = "Technical Knowledge"
	CategoryProblemSolving     = "Problem Solving"
	CategoryCommunication      = "Communication Skills"
	CategoryLeadership         = "Leadership & Teamwork"
	CategoryAdaptability       = "Adaptability & Learning"
)

func FeedbackCategoriesList() []string {
	return []string{
		CategoryTechnicalKnowledge,
		CategoryProblemSolving,
		CategoryCommunication,
		CategoryLeadership,
		CategoryAdaptability,
	}
}

// defaults used when a free-form interview cannot be described from its transcript
const (
	DefaultRole          = "Software Engineer"
	DefaultInterviewType = InterviewTypeTechnical
)

func DefaultTechstack() []string {
	return []string{"react", "nodejs", "aws"}
}

const DefaultLatestLimit = 20
