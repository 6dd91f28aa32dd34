// Package events publishes interview lifecycle events to redis and reacts to account deletions.
package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"intervai/internal/models"
	"intervai/internal/store"
)

const (
	ChannelInterviewFinalized = "interview_finalized"
	ChannelFeedbackCreated    = "feedback_created"
	ChannelUserDeleted        = "user_deleted"
)

type Publisher struct {
	rdb *redis.Client
}

func NewPublisher(rdb *redis.Client) *Publisher {
	return &Publisher{rdb: rdb}
}

func (p *Publisher) InterviewFinalized(ctx context.Context, ev models.InterviewFinalizedEvent) error {
	return p.publish(ctx, ChannelInterviewFinalized, ev)
}

func (p *Publisher) FeedbackCreated(ctx context.Context, ev models.FeedbackCreatedEvent) error {
	return p.publish(ctx, ChannelFeedbackCreated, ev)
}

func (p *Publisher) publish(ctx context.Context, channel string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s event: %w", channel, err)
	}
	return p.rdb.Publish(ctx, channel, payload).Err()
}

// Subscriber resets a user's interview history when their account is deleted.
type Subscriber struct {
	rdb    *redis.Client
	store  store.Store
	logger *zap.Logger
}

func NewSubscriber(rdb *redis.Client, s store.Store, logger *zap.Logger) *Subscriber {
	return &Subscriber{rdb: rdb, store: s, logger: logger}
}

// Run consumes user_deleted events until ctx is cancelled. ready, if non-nil, is closed once the
// subscription is confirmed.
func (s *Subscriber) Run(ctx context.Context, ready chan<- struct{}) error {
	sub := s.rdb.Subscribe(ctx, ChannelUserDeleted)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", ChannelUserDeleted, err)
	}
	if ready != nil {
		close(ready)
	}

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			s.handleUserDeleted(ctx, msg.Payload)
		}
	}
}

func (s *Subscriber) handleUserDeleted(ctx context.Context, payload string) {
	var ev models.UserDeletedEvent
	if err := json.Unmarshal([]byte(payload), &ev); err != nil || ev.UserID == "" {
		s.logger.Warn("failed to parse user_deleted event", zap.String("payload", payload), zap.Error(err))
		return
	}

	interviews, feedback, err := store.ResetUserHistory(ctx, s.store, ev.UserID)
	if err != nil {
		s.logger.Error("failed to reset history for deleted user", zap.String("user_id", ev.UserID), zap.Error(err))
		return
	}
	s.logger.Info("reset history for deleted user",
		zap.String("user_id", ev.UserID),
		zap.Int64("deleted_interviews", interviews),
		zap.Int64("deleted_feedback", feedback))
}
