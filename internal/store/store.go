// Package store defines the persistence gateway over the interviews and feedback collections.
package store

import (
	"context"
	"errors"
	"time"

	"intervai/internal/models"
)

var ErrNotFound = errors.New("record not found")

const (
	InterviewsCollection = "interviews"
	FeedbackCollection   = "feedback"
)

type InterviewStore interface {
	// CreateInterview allocates an ID (unless one is set) and a creation time, then inserts.
	CreateInterview(ctx context.Context, interview *models.Interview) (string, error)
	GetInterview(ctx context.Context, id string) (*models.Interview, error)
	FinalizeInterview(ctx context.Context, id string) error
	ListInterviewsByUser(ctx context.Context, userID string) ([]models.Interview, error)
	// ListLatestInterviews returns finalized interviews of other users, newest first.
	ListLatestInterviews(ctx context.Context, excludeUserID string, limit int) ([]models.Interview, error)
	DeleteInterviewsByUser(ctx context.Context, userID string) (int64, error)
	// DeleteStaleDrafts removes non-finalized interviews created before the cutoff.
	DeleteStaleDrafts(ctx context.Context, before time.Time) (int64, error)
}

type FeedbackStore interface {
	CreateFeedback(ctx context.Context, feedback *models.Feedback) (string, error)
	// PutFeedback fully replaces (or inserts) the record with the given ID.
	PutFeedback(ctx context.Context, id string, feedback *models.Feedback) error
	GetFeedbackByInterview(ctx context.Context, interviewID, userID string) (*models.Feedback, error)
	DeleteFeedbackByUser(ctx context.Context, userID string) (int64, error)
}

type Store interface {
	InterviewStore
	FeedbackStore
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// ResetUserHistory deletes every interview and feedback record owned by userID.
func ResetUserHistory(ctx context.Context, s Store, userID string) (interviews int64, feedback int64, err error) {
	interviews, err = s.DeleteInterviewsByUser(ctx, userID)
	if err != nil {
		return 0, 0, err
	}
	feedback, err = s.DeleteFeedbackByUser(ctx, userID)
	if err != nil {
		return interviews, 0, err
	}
	return interviews, feedback, nil
}
