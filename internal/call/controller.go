// Package call hosts live voice interview sessions: the call lifecycle state machine, the session
// configuration sent to the voice platform, and the finalization run when a call ends.
package call

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"intervai/internal/behavioral"
	"intervai/internal/metrics"
	"intervai/internal/models"
	"intervai/internal/prompts"
	"intervai/internal/voice"
)

var (
	ErrMissingToken     = errors.New("voice web token is not configured")
	ErrMissingAssistant = errors.New("voice assistant id is not configured")
	ErrAlreadyStarted   = errors.New("call already started")
	ErrNotStarted       = errors.New("call has not been started")
	ErrSessionNotFound  = errors.New("session not found")
)

type State string

const (
	StateIdle       State = "idle"
	StateConnecting State = "connecting"
	StateActive     State = "active"
	StateFinished   State = "finished"
)

const HomeDestination = "/"

func FeedbackDestination(interviewID string) string {
	return fmt.Sprintf("/interview/%s/feedback", interviewID)
}

// InterviewRecorder is the slice of the interview store used at finalization.
type InterviewRecorder interface {
	FinalizeInterview(ctx context.Context, id string) error
	CreateInterview(ctx context.Context, interview *models.Interview) (string, error)
}

// DetailsExtractor recovers role, techstack and type from a free-form transcript.
type DetailsExtractor interface {
	ExtractDetails(ctx context.Context, transcript []models.TranscriptMessage) (*models.InterviewDetails, error)
}

// FeedbackGenerator never fails past its boundary; failure is reported in the result.
type FeedbackGenerator interface {
	CreateFeedback(ctx context.Context, params models.CreateFeedbackParams) models.FeedbackResult
}

type Notifier interface {
	InterviewFinalized(ctx context.Context, ev models.InterviewFinalizedEvent) error
}

// Options describe one session.
type Options struct {
	Mode        string
	UserID      string
	UserName    string
	InterviewID string
	FeedbackID  string
	Profile     models.InterviewProfile
}

// Deps are the collaborators shared by all sessions.
type Deps struct {
	Voice      voice.Dialer
	Credential voice.Config
	Interviews InterviewRecorder
	Extractor  DetailsExtractor
	Feedback   FeedbackGenerator
	Prompts    prompts.PromptProvider
	Selector   *behavioral.Selector
	Notifier   Notifier // optional
	Logger     *zap.Logger
}

// Controller owns one call. State and isRemoteSpeaking are independent: speech signals never
// affect the lifecycle. Finished is terminal and entering it starts finalization exactly once.
type Controller struct {
	id      string
	opts    Options
	deps    Deps
	session voice.Session
	logger  *zap.Logger

	mu            sync.Mutex
	state         State
	speaking      bool
	transcript    []models.TranscriptMessage
	lastUtterance string
	outcome       *models.Outcome

	done chan struct{}
}

func NewController(id string, opts Options, deps Deps) *Controller {
	if opts.Mode == "" {
		opts.Mode = models.SessionModeInterview
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	c := &Controller{
		id:     id,
		opts:   opts,
		deps:   deps,
		state:  StateIdle,
		done:   make(chan struct{}),
		logger: deps.Logger.With(zap.String("session_id", id), zap.String("mode", opts.Mode)),
	}
	c.session = deps.Voice.Open(c.HandleEvent)
	return c
}

func (c *Controller) ID() string { return c.id }

// UserID is the owner of the session, empty for anonymous sessions.
func (c *Controller) UserID() string { return c.opts.UserID }

// Start moves Idle to Connecting and asks the voice platform to open the call. Configuration
// errors are returned before any network call; a failed start returns the controller to Idle.
func (c *Controller) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.state != StateIdle {
		c.mu.Unlock()
		return ErrAlreadyStarted
	}
	if c.deps.Credential.WebToken == "" {
		c.mu.Unlock()
		c.logger.Error("cannot start call", zap.Error(ErrMissingToken))
		return ErrMissingToken
	}
	cfg, err := BuildSessionConfig(c.opts, c.deps.Credential, c.deps.Prompts, c.deps.Selector)
	if err != nil {
		c.mu.Unlock()
		c.logger.Error("cannot start call", zap.Error(err))
		return err
	}
	c.setStateLocked(StateConnecting)
	c.mu.Unlock()

	if err := c.session.Start(ctx, c.deps.Credential.WebToken, cfg); err != nil {
		c.logger.Error("voice session failed to start", zap.Error(err))
		c.mu.Lock()
		if c.state == StateConnecting {
			c.setStateLocked(StateIdle)
		}
		c.mu.Unlock()
		return fmt.Errorf("failed to start voice session: %w", err)
	}
	return nil
}

// End is the user's hang-up: it asks the platform to stop and moves to Finished without waiting
// for the platform's own end signal. Ending a finished call is a no-op.
func (c *Controller) End(ctx context.Context) error {
	c.mu.Lock()
	switch c.state {
	case StateIdle:
		c.mu.Unlock()
		return ErrNotStarted
	case StateFinished:
		c.mu.Unlock()
		return nil
	}
	c.mu.Unlock()

	if err := c.session.Stop(ctx); err != nil {
		c.logger.Warn("voice session stop failed", zap.Error(err))
	}

	c.mu.Lock()
	transcript, finished := c.finishLocked()
	c.mu.Unlock()
	if finished {
		go c.finalize(transcript)
	}
	return nil
}

// HandleEvent applies one voice platform event.
func (c *Controller) HandleEvent(ev voice.Event) {
	var (
		transcript []models.TranscriptMessage
		finished   bool
	)

	c.mu.Lock()
	switch ev.Type {
	case voice.EventCallStart:
		if c.state == StateConnecting {
			c.setStateLocked(StateActive)
		}
	case voice.EventCallEnd:
		switch c.state {
		case StateActive:
			transcript, finished = c.finishLocked()
		case StateConnecting:
			// the call never came up
			c.setStateLocked(StateIdle)
		}
	case voice.EventMessage:
		if ev.IsFinalTranscript() && c.state == StateActive {
			c.transcript = append(c.transcript, models.TranscriptMessage{Role: ev.Role, Content: ev.Transcript})
			c.lastUtterance = ev.Transcript
		}
	case voice.EventSpeechStart:
		c.speaking = true
	case voice.EventSpeechEnd:
		c.speaking = false
	case voice.EventError:
		kind := ev.Kind()
		metrics.RecordVoiceError(string(kind))
		c.logger.Warn("voice session error",
			zap.String("kind", string(kind)),
			zap.String("hint", kind.Hint()),
			zap.String("error", ev.Error))
		if c.state != StateFinished {
			c.setStateLocked(StateIdle)
		}
	default:
		c.logger.Debug("ignoring voice event", zap.String("type", string(ev.Type)))
	}
	c.mu.Unlock()

	if finished {
		go c.finalize(transcript)
	}
}

// finishLocked performs the single transition into Finished and hands back a frozen transcript.
func (c *Controller) finishLocked() ([]models.TranscriptMessage, bool) {
	if c.state == StateFinished || c.state == StateIdle {
		return nil, false
	}
	c.setStateLocked(StateFinished)
	out := make([]models.TranscriptMessage, len(c.transcript))
	copy(out, c.transcript)
	return out, true
}

func (c *Controller) setStateLocked(s State) {
	c.logger.Debug("call state change", zap.String("from", string(c.state)), zap.String("to", string(s)))
	c.state = s
	metrics.RecordTransition(c.opts.Mode, string(s))
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) IsRemoteSpeaking() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.speaking
}

func (c *Controller) LastUtterance() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastUtterance
}

func (c *Controller) Transcript() []models.TranscriptMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.TranscriptMessage, len(c.transcript))
	copy(out, c.transcript)
	return out
}

// Done is closed once finalization has completed.
func (c *Controller) Done() <-chan struct{} {
	return c.done
}

// Outcome is nil until finalization completes.
func (c *Controller) Outcome() *models.Outcome {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.outcome
}

func (c *Controller) View() models.SessionView {
	c.mu.Lock()
	defer c.mu.Unlock()
	return models.SessionView{
		SessionID:        c.id,
		Mode:             c.opts.Mode,
		State:            string(c.state),
		LastUtterance:    c.lastUtterance,
		IsRemoteSpeaking: c.speaking,
		TranscriptLength: len(c.transcript),
		Outcome:          c.outcome,
	}
}
