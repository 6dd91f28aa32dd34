package sqlstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"intervai/internal/models"
	"intervai/internal/store"
)

func (s *Store) CreateFeedback(ctx context.Context, feedback *models.Feedback) (string, error) {
	if feedback.ID == "" {
		feedback.ID = uuid.New().String()
	}
	if feedback.CreatedAt.IsZero() {
		feedback.CreatedAt = time.Now().UTC()
	}
	if err := s.db.WithContext(ctx).Create(feedback).Error; err != nil {
		return "", fmt.Errorf("failed to create feedback: %w", err)
	}
	return feedback.ID, nil
}

func (s *Store) PutFeedback(ctx context.Context, id string, feedback *models.Feedback) error {
	feedback.ID = id
	if feedback.CreatedAt.IsZero() {
		feedback.CreatedAt = time.Now().UTC()
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).Delete(&models.Feedback{}).Error; err != nil {
			return fmt.Errorf("failed to replace feedback: %w", err)
		}
		if err := tx.Create(feedback).Error; err != nil {
			return fmt.Errorf("failed to replace feedback: %w", err)
		}
		return nil
	})
}

func (s *Store) GetFeedbackByInterview(ctx context.Context, interviewID, userID string) (*models.Feedback, error) {
	var feedback models.Feedback
	err := s.db.WithContext(ctx).
		Where("interview_id = ? AND user_id = ?", interviewID, userID).
		First(&feedback).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &feedback, nil
}

func (s *Store) DeleteFeedbackByUser(ctx context.Context, userID string) (int64, error) {
	result := s.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.Feedback{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete feedback: %w", result.Error)
	}
	return result.RowsAffected, nil
}

var _ store.Store = (*Store)(nil)
