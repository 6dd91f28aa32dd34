package events

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"intervai/internal/models"
	"intervai/internal/store/sqlstore"
)

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return mr, rdb
}

func TestPublisherPublishesJSON(t *testing.T) {
	_, rdb := setupTestRedis(t)
	ctx := context.Background()

	sub := rdb.Subscribe(ctx, ChannelInterviewFinalized, ChannelFeedbackCreated)
	defer sub.Close()
	_, err := sub.Receive(ctx)
	require.NoError(t, err)
	ch := sub.Channel()

	p := NewPublisher(rdb)
	require.NoError(t, p.InterviewFinalized(ctx, models.InterviewFinalizedEvent{InterviewID: "iv1", UserID: "u1", Created: true}))
	require.NoError(t, p.FeedbackCreated(ctx, models.FeedbackCreatedEvent{FeedbackID: "fb1", InterviewID: "iv1", UserID: "u1", Fallback: true}))

	select {
	case msg := <-ch:
		assert.Equal(t, ChannelInterviewFinalized, msg.Channel)
		var ev models.InterviewFinalizedEvent
		require.NoError(t, json.Unmarshal([]byte(msg.Payload), &ev))
		assert.Equal(t, models.InterviewFinalizedEvent{InterviewID: "iv1", UserID: "u1", Created: true}, ev)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for interview_finalized")
	}

	select {
	case msg := <-ch:
		assert.Equal(t, ChannelFeedbackCreated, msg.Channel)
		assert.JSONEq(t, `{"feedbackId":"fb1","interviewId":"iv1","userId":"u1","fallback":true}`, msg.Payload)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for feedback_created")
	}
}

func newStore(t *testing.T) *sqlstore.Store {
	t.Helper()
	dsn := fmt.Sprintf("file:events_%d?mode=memory&cache=shared", time.Now().UnixNano())
	s, err := sqlstore.OpenSQLite(dsn)
	require.NoError(t, err)
	return s
}

func TestSubscriberResetsDeletedUser(t *testing.T) {
	_, rdb := setupTestRedis(t)
	s := newStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	_, err := s.CreateInterview(ctx, &models.Interview{UserID: "gone", Role: "r", Type: "Mixed", Finalized: true})
	require.NoError(t, err)
	_, err = s.CreateFeedback(ctx, &models.Feedback{InterviewID: "x", UserID: "gone"})
	require.NoError(t, err)
	_, err = s.CreateInterview(ctx, &models.Interview{UserID: "stays", Role: "r", Type: "Mixed", Finalized: true})
	require.NoError(t, err)

	ready := make(chan struct{})
	done := make(chan error, 1)
	go func() { done <- NewSubscriber(rdb, s, zap.NewNop()).Run(ctx, ready) }()

	select {
	case <-ready:
	case <-time.After(2 * time.Second):
		t.Fatal("subscriber never became ready")
	}

	require.NoError(t, rdb.Publish(ctx, ChannelUserDeleted, "not json").Err())
	require.NoError(t, rdb.Publish(ctx, ChannelUserDeleted, `{"userId":"gone"}`).Err())

	assert.Eventually(t, func() bool {
		left, err := s.ListInterviewsByUser(context.Background(), "gone")
		return err == nil && len(left) == 0
	}, 2*time.Second, 20*time.Millisecond)

	kept, err := s.ListInterviewsByUser(ctx, "stays")
	require.NoError(t, err)
	assert.Len(t, kept, 1)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("subscriber did not stop on cancel")
	}
}
