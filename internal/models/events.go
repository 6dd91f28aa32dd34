package models

// Event payloads published on the message bus.

type InterviewFinalizedEvent struct {
	InterviewID string `json:"interviewId"`
	UserID      string `json:"userId"`
	// Created is true when the record was created at session end rather than finalized in place.
	Created bool `json:"created"`
}

type FeedbackCreatedEvent struct {
	FeedbackID  string `json:"feedbackId"`
	InterviewID string `json:"interviewId"`
	UserID      string `json:"userId"`
	Fallback    bool   `json:"fallback"`
}

type UserDeletedEvent struct {
	UserID string `json:"userId"`
}
