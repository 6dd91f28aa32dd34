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

func (s *Store) CreateInterview(ctx context.Context, interview *models.Interview) (string, error) {
	if interview.ID == "" {
		interview.ID = uuid.New().String()
	}
	if interview.CreatedAt.IsZero() {
		interview.CreatedAt = time.Now().UTC()
	}
	if interview.Questions == nil {
		interview.Questions = []string{}
	}
	if err := s.db.WithContext(ctx).Create(interview).Error; err != nil {
		return "", fmt.Errorf("failed to create interview: %w", err)
	}
	return interview.ID, nil
}

func (s *Store) GetInterview(ctx context.Context, id string) (*models.Interview, error) {
	var interview models.Interview
	if err := s.db.WithContext(ctx).First(&interview, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &interview, nil
}

func (s *Store) FinalizeInterview(ctx context.Context, id string) error {
	result := s.db.WithContext(ctx).Model(&models.Interview{}).
		Where("id = ?", id).
		Update("finalized", true)
	if result.Error != nil {
		return fmt.Errorf("failed to finalize interview: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		// finalizing twice is not an error; a missing row is
		var count int64
		if err := s.db.WithContext(ctx).Model(&models.Interview{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return store.ErrNotFound
		}
	}
	return nil
}

func (s *Store) ListInterviewsByUser(ctx context.Context, userID string) ([]models.Interview, error) {
	var interviews []models.Interview
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&interviews).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list interviews: %w", err)
	}
	return interviews, nil
}

func (s *Store) ListLatestInterviews(ctx context.Context, excludeUserID string, limit int) ([]models.Interview, error) {
	if limit <= 0 {
		limit = models.DefaultLatestLimit
	}
	var interviews []models.Interview
	err := s.db.WithContext(ctx).
		Where("finalized = ? AND user_id <> ?", true, excludeUserID).
		Order("created_at DESC").
		Limit(limit).
		Find(&interviews).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list latest interviews: %w", err)
	}
	return interviews, nil
}

func (s *Store) DeleteInterviewsByUser(ctx context.Context, userID string) (int64, error) {
	result := s.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.Interview{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete interviews: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (s *Store) DeleteStaleDrafts(ctx context.Context, before time.Time) (int64, error) {
	result := s.db.WithContext(ctx).
		Where("finalized = ? AND created_at < ?", false, before).
		Delete(&models.Interview{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete stale drafts: %w", result.Error)
	}
	return result.RowsAffected, nil
}
