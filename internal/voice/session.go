package voice

import (
	"context"
	"sync"
)

const (
	DefaultAssistantName = "Interviewer"
	DefaultFirstMessage  = "Hello! Thank you for taking the time to speak with me today. I'm excited to learn more about you and your experience."
)

// AssistantConfig is an inline assistant definition used for interview-mode sessions.
type AssistantConfig struct {
	Name         string `json:"name"`
	FirstMessage string `json:"firstMessage"`
	SystemPrompt string `json:"systemPrompt"`
}

// SessionConfig is what a call is started with. Exactly one of AssistantID and Assistant is set.
type SessionConfig struct {
	AssistantID string            `json:"assistantId,omitempty"`
	Assistant   *AssistantConfig  `json:"assistant,omitempty"`
	Variables   map[string]string `json:"variableValues,omitempty"`
}

// Handler receives events emitted by a session.
type Handler func(Event)

// Session is one call on the voice platform. Implementations deliver events to the handler
// they were opened with.
type Session interface {
	Start(ctx context.Context, token string, cfg *SessionConfig) error
	Stop(ctx context.Context) error
}

// Dialer opens a session bound to an event handler.
type Dialer interface {
	Open(h Handler) Session
}

// WebhookDialer opens sessions whose events arrive out of band (the platform posts them to the
// HTTP events endpoint). Start and Stop only record the request.
type WebhookDialer struct{}

func (WebhookDialer) Open(Handler) Session { return &WebhookSession{} }

type WebhookSession struct {
	mu      sync.Mutex
	config  *SessionConfig
	stopped bool
}

func (s *WebhookSession) Start(_ context.Context, _ string, cfg *SessionConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.config = cfg
	return nil
}

func (s *WebhookSession) Stop(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped = true
	return nil
}

// Config returns the configuration the session was started with.
func (s *WebhookSession) Config() *SessionConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.config
}
