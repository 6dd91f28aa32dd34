package behavioral

// behavioral question categories
const (
	CategoryLeadership         = "Leadership"
	CategoryTeamwork           = "Teamwork"
	CategoryConflictResolution = "Conflict Resolution"
	CategoryProblemSolving     = "Problem Solving"
	CategoryAdaptability       = "Adaptability"
	CategoryFailure            = "Learning from Failure"
	CategoryCommunication      = "Communication"
	CategoryReceivingFeedback  = "Receiving Feedback"
	CategoryPresentation       = "Presentation Skills"
	CategoryInitiative         = "Initiative"
	CategoryMotivation         = "Motivation"
	CategoryMentoring          = "Mentoring"
	CategoryCodeReview         = "Code Review"
	CategoryTimeManagement     = "Time Management"
	CategoryMultitasking       = "Multitasking"

	// CategorySystemDesign is mapped for some roles but no question carries it yet.
	CategorySystemDesign = "System Design"
)

type Question struct {
	ID       string   `json:"id"`
	Question string   `json:"question"`
	Category string   `json:"category"`
	FollowUp []string `json:"followUp,omitempty"`
	Tips     string   `json:"tips,omitempty"`
}

var catalog = []Question{
	{
		ID:       "leadership-1",
		Question: "Tell me about a time when you had to lead a team through a difficult project. What was the challenge and how did you handle it?",
		Category: CategoryLeadership,
		FollowUp: []string{"What was the outcome?", "What would you do differently?", "How did you motivate your team?"},
		Tips:     "Use STAR method: Situation, Task, Action, Result",
	},
	{
		ID:       "teamwork-1",
		Question: "Describe a situation where you had to work with someone who had a different opinion or approach than yours. How did you handle it?",
		Category: CategoryTeamwork,
		FollowUp: []string{"What was the final outcome?", "How did you find common ground?", "What did you learn from this experience?"},
	},
	{
		ID:       "conflict-1",
		Question: "Tell me about a time when you had a conflict with a colleague. How did you resolve it?",
		Category: CategoryConflictResolution,
		FollowUp: []string{"What was the root cause of the conflict?", "How did you approach the conversation?", "What was the long-term impact on your working relationship?"},
	},
	{
		ID:       "problem-solving-1",
		Question: "Describe a time when you faced a complex technical problem that seemed impossible to solve. How did you approach it?",
		Category: CategoryProblemSolving,
		FollowUp: []string{"What was your step-by-step approach?", "How did you break down the problem?", "What resources did you use?"},
	},
	{
		ID:       "adaptability-1",
		Question: "Tell me about a time when you had to quickly learn a new technology or skill for a project. How did you handle the learning curve?",
		Category: CategoryAdaptability,
		FollowUp: []string{"How did you prioritize what to learn?", "What was your learning strategy?", "How did you apply your new knowledge?"},
	},
	{
		ID:       "failure-1",
		Question: "Describe a time when you failed at something. What did you learn from that experience?",
		Category: CategoryFailure,
		FollowUp: []string{"What was the specific failure?", "How did you bounce back?", "What would you do differently now?"},
	},
	{
		ID:       "communication-1",
		Question: "Tell me about a time when you had to explain a complex technical concept to a non-technical person. How did you approach it?",
		Category: CategoryCommunication,
		FollowUp: []string{"How did you know they understood?", "What analogies or examples did you use?", "How did you handle any confusion?"},
	},
	{
		ID:       "feedback-1",
		Question: "Describe a time when you received difficult feedback. How did you handle it and what did you do with that feedback?",
		Category: CategoryReceivingFeedback,
		FollowUp: []string{"What was the feedback about?", "How did you initially react?", "What specific changes did you make?"},
	},
	{
		ID:       "presentation-1",
		Question: "Tell me about a time when you had to present your work to stakeholders or senior management. How did you prepare and how did it go?",
		Category: CategoryPresentation,
		FollowUp: []string{"How did you structure your presentation?", "What questions did you receive?", "How did you handle any difficult questions?"},
	},
	{
		ID:       "initiative-1",
		Question: "Describe a time when you took initiative to improve a process or solve a problem that wasn't part of your regular responsibilities.",
		Category: CategoryInitiative,
		FollowUp: []string{"What motivated you to take action?", "What was the impact of your initiative?", "How did others react to your initiative?"},
	},
	{
		ID:       "motivation-1",
		Question: "Tell me about a time when you were working on a project that you weren't particularly excited about. How did you stay motivated?",
		Category: CategoryMotivation,
		FollowUp: []string{"What was the project about?", "How did you find meaning in the work?", "What was the final outcome?"},
	},
	{
		ID:       "mentoring-1",
		Question: "Describe a time when you mentored or helped a junior developer. What was the situation and how did you help them grow?",
		Category: CategoryMentoring,
		FollowUp: []string{"What specific skills did you help them develop?", "How did you measure their progress?", "What did you learn from the mentoring experience?"},
	},
	{
		ID:       "code-review-1",
		Question: "Tell me about a time when you had to give difficult feedback during a code review. How did you approach it?",
		Category: CategoryCodeReview,
		FollowUp: []string{"What was the specific issue?", "How did you frame your feedback?", "How did the developer respond?"},
	},
	{
		ID:       "deadline-1",
		Question: "Describe a time when you had to meet a tight deadline. How did you prioritize and manage your time?",
		Category: CategoryTimeManagement,
		FollowUp: []string{"What was the deadline?", "How did you prioritize tasks?", "What sacrifices did you have to make?"},
	},
	{
		ID:       "multitasking-1",
		Question: "Tell me about a time when you had to juggle multiple projects or responsibilities simultaneously. How did you manage it?",
		Category: CategoryMultitasking,
		FollowUp: []string{"How did you prioritize between projects?", "What tools or methods did you use?", "What was the outcome of each project?"},
	},
}

var roleCategories = map[string][]string{
	"Software Engineer":             {CategoryProblemSolving, CategoryTeamwork, CategoryCommunication, CategoryAdaptability},
	"Frontend Engineer":             {CategoryProblemSolving, CategoryCommunication, CategoryAdaptability, CategoryCodeReview},
	"Backend Engineer":              {CategoryProblemSolving, CategorySystemDesign, CategoryCommunication, CategoryAdaptability},
	"Full Stack Developer":          {CategoryProblemSolving, CategoryTeamwork, CategoryCommunication, CategoryMultitasking},
	"Senior Software Engineer":      {CategoryLeadership, CategoryMentoring, CategoryProblemSolving, CategoryCommunication},
	"Software Development Engineer": {CategoryProblemSolving, CategoryTeamwork, CategoryCommunication, CategoryInitiative},
	"iOS Developer":                 {CategoryProblemSolving, CategoryCommunication, CategoryAdaptability, CategoryCodeReview},
	"Android Developer":             {CategoryProblemSolving, CategoryCommunication, CategoryAdaptability, CategoryCodeReview},
	"DevOps Engineer":               {CategoryProblemSolving, CategoryCommunication, CategoryAdaptability, CategoryInitiative},
	"Data Engineer":                 {CategoryProblemSolving, CategoryCommunication, CategoryAdaptability, CategorySystemDesign},
}

var defaultCategories = []string{CategoryProblemSolving, CategoryCommunication, CategoryTeamwork}

// All returns a copy of the question catalog.
func All() []Question {
	out := make([]Question, len(catalog))
	copy(out, catalog)
	return out
}

// ByCategory returns the questions in category, or the whole catalog when category is empty.
func ByCategory(category string) []Question {
	if category == "" {
		return All()
	}
	var out []Question
	for _, q := range catalog {
		if q.Category == category {
			out = append(out, q)
		}
	}
	return out
}

// CategoriesForRole returns the categories relevant to role, falling back to a generic set.
func CategoriesForRole(role string) []string {
	if cats, ok := roleCategories[role]; ok {
		return append([]string(nil), cats...)
	}
	return append([]string(nil), defaultCategories...)
}
