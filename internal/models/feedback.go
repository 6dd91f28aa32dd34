package models

import "time"

type CategoryScore struct {
	Name    string `json:"name" bson:"name"`
	Score   int    `json:"score" bson:"score"`
	Comment string `json:"comment" bson:"comment"`
}

// Feedback is the scored evaluation of one interview. One record per (InterviewID, UserID) by
// convention; callers overwrite by passing the existing ID.
type Feedback struct {
	ID                  string          `gorm:"primaryKey;size:64" json:"id" bson:"_id"`
	InterviewID         string          `gorm:"index" json:"interviewId" bson:"interviewId"`
	UserID              string          `gorm:"index" json:"userId" bson:"userId"`
	TotalScore          int             `json:"totalScore" bson:"totalScore"`
	CategoryScores      []CategoryScore `gorm:"type:text;serializer:json" json:"categoryScores" bson:"categoryScores"`
	Strengths           []string        `gorm:"type:text;serializer:json" json:"strengths" bson:"strengths"`
	AreasForImprovement []string        `gorm:"type:text;serializer:json" json:"areasForImprovement" bson:"areasForImprovement"`
	FinalAssessment     string          `gorm:"type:text" json:"finalAssessment" bson:"finalAssessment"`
	CreatedAt           time.Time       `json:"createdAt" bson:"createdAt"`
}

func (Feedback) TableName() string {
	return "feedback"
}

// TranscriptMessage is one finalized speaker turn.
type TranscriptMessage struct {
	Role    string `json:"role" bson:"role"`
	Content string `json:"content" bson:"content"`
}

// CreateFeedbackParams is the input of the feedback pipeline.
type CreateFeedbackParams struct {
	InterviewID string
	UserID      string
	Transcript  []TranscriptMessage
	// FeedbackID asks for an overwrite of the record already held for InterviewID and UserID.
	FeedbackID string
}

// FeedbackResult is what the feedback pipeline reports back. It never carries an error.
type FeedbackResult struct {
	Success    bool   `json:"success"`
	FeedbackID string `json:"feedbackId,omitempty"`
	Fallback   bool   `json:"fallback,omitempty"`
}
