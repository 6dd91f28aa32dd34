package models

// uniform error responses
type ErrorResponse struct {
	Code    string                  `json:"code"`
	Message string                  `json:"message"`
	Details []ValidationErrorDetail `json:"details,omitempty"`
}

func (e *ErrorResponse) Error() string {
	return e.Message
}

// single field validation error
type ValidationErrorDetail struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// generic acknowledgement
type Resp struct {
	OK   bool   `json:"ok"`
	Info string `json:"info,omitempty"`
}

// question generation endpoint reply
type GenerateQuestionsResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Data    string `json:"data,omitempty"`
}

type CreateInterviewResponse struct {
	Success bool   `json:"success"`
	ID      string `json:"id,omitempty"`
}

type ResetHistoryResponse struct {
	Success           bool  `json:"success"`
	DeletedInterviews int64 `json:"deletedInterviews"`
	DeletedFeedback   int64 `json:"deletedFeedback"`
}

// SessionView is the externally visible state of a live call session.
type SessionView struct {
	SessionID        string   `json:"sessionId"`
	Mode             string   `json:"mode"`
	State            string   `json:"state"`
	LastUtterance    string   `json:"lastUtterance"`
	IsRemoteSpeaking bool     `json:"isRemoteSpeaking"`
	TranscriptLength int      `json:"transcriptLength"`
	Outcome          *Outcome `json:"outcome,omitempty"`
}

// Outcome records where a finished session sends the user and which records it touched.
type Outcome struct {
	Destination string `json:"destination"`
	InterviewID string `json:"interviewId,omitempty"`
	FeedbackID  string `json:"feedbackId,omitempty"`
}
