package call

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"intervai/internal/behavioral"
	"intervai/internal/models"
	"intervai/internal/prompts"
	"intervai/internal/voice"
)

type mockSession struct {
	mu       sync.Mutex
	startErr error
	starts   []*voice.SessionConfig
	stops    int
}

func (s *mockSession) Start(_ context.Context, _ string, cfg *voice.SessionConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.starts = append(s.starts, cfg)
	return s.startErr
}

func (s *mockSession) Stop(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stops++
	return nil
}

type mockDialer struct{ session *mockSession }

func (d *mockDialer) Open(voice.Handler) voice.Session { return d.session }

type mockRecorder struct {
	mu        sync.Mutex
	finalized []string
	created   []*models.Interview
	createErr error
}

func (m *mockRecorder) FinalizeInterview(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.finalized = append(m.finalized, id)
	return nil
}

func (m *mockRecorder) CreateInterview(_ context.Context, interview *models.Interview) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return "", m.createErr
	}
	m.created = append(m.created, interview)
	return "created-1", nil
}

type mockExtractor struct {
	details *models.InterviewDetails
	err     error
}

func (m *mockExtractor) ExtractDetails(context.Context, []models.TranscriptMessage) (*models.InterviewDetails, error) {
	return m.details, m.err
}

type mockFeedback struct {
	mu     sync.Mutex
	calls  []models.CreateFeedbackParams
	result models.FeedbackResult
}

func (m *mockFeedback) CreateFeedback(_ context.Context, p models.CreateFeedbackParams) models.FeedbackResult {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, p)
	return m.result
}

type mockNotifier struct {
	mu     sync.Mutex
	events []models.InterviewFinalizedEvent
}

func (m *mockNotifier) InterviewFinalized(_ context.Context, ev models.InterviewFinalizedEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, ev)
	return nil
}

type fixture struct {
	session   *mockSession
	recorder  *mockRecorder
	extractor *mockExtractor
	feedback  *mockFeedback
	notifier  *mockNotifier
	deps      Deps
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	pm, err := prompts.NewPromptManager()
	if err != nil {
		t.Fatalf("failed to load prompts: %v", err)
	}
	f := &fixture{
		session:   &mockSession{},
		recorder:  &mockRecorder{},
		extractor: &mockExtractor{err: errors.New("model unavailable")},
		feedback:  &mockFeedback{result: models.FeedbackResult{Success: true, FeedbackID: "fb-1"}},
		notifier:  &mockNotifier{},
	}
	f.deps = Deps{
		Voice:      &mockDialer{session: f.session},
		Credential: voice.Config{WebToken: "token", AssistantID: "assistant"},
		Interviews: f.recorder,
		Extractor:  f.extractor,
		Feedback:   f.feedback,
		Prompts:    pm,
		Selector:   behavioral.NewSelector(rand.New(rand.NewSource(1))),
		Notifier:   f.notifier,
		Logger:     zap.NewNop(),
	}
	return f
}

// startActive returns a controller that has gone through Connecting into Active.
func (f *fixture) startActive(t *testing.T, opts Options) *Controller {
	t.Helper()
	c := NewController("s1", opts, f.deps)
	if err := c.Start(context.Background()); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
	c.HandleEvent(voice.Event{Type: voice.EventCallStart})
	if c.State() != StateActive {
		t.Fatalf("expected active, got %s", c.State())
	}
	return c
}

func finalTranscript(role, text string) voice.Event {
	return voice.Event{
		Type:           voice.EventMessage,
		MessageType:    voice.MessageTypeTranscript,
		TranscriptType: voice.TranscriptTypeFinal,
		Role:           role,
		Transcript:     text,
	}
}

func waitDone(t *testing.T, c *Controller) *models.Outcome {
	t.Helper()
	select {
	case <-c.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("finalization did not complete")
	}
	return c.Outcome()
}
