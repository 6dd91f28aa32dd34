package call

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"

	"intervai/internal/models"
	"intervai/internal/voice"
)

func TestTranscriptPreservesArrivalOrder(t *testing.T) {
	f := newFixture(t)
	c := f.startActive(t, Options{UserID: "u1", InterviewID: "iv1"})

	var want []models.TranscriptMessage
	for i := 0; i < 6; i++ {
		role := models.RoleAssistant
		if i%2 == 1 {
			role = models.RoleUser
		}
		text := fmt.Sprintf("turn %d", i)
		c.HandleEvent(finalTranscript(role, text))
		want = append(want, models.TranscriptMessage{Role: role, Content: text})

		if c.LastUtterance() != text {
			t.Fatalf("expected last utterance %q, got %q", text, c.LastUtterance())
		}
	}

	partial := finalTranscript(models.RoleUser, "half a sen")
	partial.TranscriptType = voice.TranscriptTypePartial
	c.HandleEvent(partial)

	if got := c.Transcript(); !reflect.DeepEqual(got, want) {
		t.Fatalf("transcript mismatch:\n got %+v\nwant %+v", got, want)
	}
	if c.LastUtterance() != "turn 5" {
		t.Fatalf("partial transcript must not change last utterance, got %q", c.LastUtterance())
	}
}

func TestFinalizationRunsOnce(t *testing.T) {
	f := newFixture(t)
	c := f.startActive(t, Options{UserID: "u1", InterviewID: "iv1"})
	c.HandleEvent(finalTranscript(models.RoleUser, "hi"))

	if err := c.End(context.Background()); err != nil {
		t.Fatalf("End returned error: %v", err)
	}
	c.HandleEvent(voice.Event{Type: voice.EventCallEnd})
	c.HandleEvent(voice.Event{Type: voice.EventCallEnd})
	if err := c.End(context.Background()); err != nil {
		t.Fatalf("second End returned error: %v", err)
	}
	waitDone(t, c)

	if len(f.feedback.calls) != 1 {
		t.Fatalf("expected one feedback run, got %d", len(f.feedback.calls))
	}
	if len(f.recorder.finalized) != 1 {
		t.Fatalf("expected one finalize call, got %d", len(f.recorder.finalized))
	}
	if f.session.stops != 1 {
		t.Fatalf("expected the platform to be stopped once, got %d", f.session.stops)
	}
	if c.State() != StateFinished {
		t.Fatalf("expected finished, got %s", c.State())
	}
}

func TestFinishedIsTerminal(t *testing.T) {
	f := newFixture(t)
	c := f.startActive(t, Options{UserID: "u1", InterviewID: "iv1"})
	c.HandleEvent(voice.Event{Type: voice.EventCallEnd})
	waitDone(t, c)

	c.HandleEvent(finalTranscript(models.RoleUser, "late"))
	c.HandleEvent(voice.Event{Type: voice.EventError, Error: "network down"})
	c.HandleEvent(voice.Event{Type: voice.EventCallStart})

	if c.State() != StateFinished {
		t.Fatalf("expected finished to be terminal, got %s", c.State())
	}
	if len(c.Transcript()) != 0 {
		t.Fatal("transcript must be immutable once finished")
	}
	if err := c.Start(context.Background()); !errors.Is(err, ErrAlreadyStarted) {
		t.Fatalf("expected ErrAlreadyStarted, got %v", err)
	}
}

func TestExistingInterviewIsFinalizedInPlace(t *testing.T) {
	f := newFixture(t)
	c := f.startActive(t, Options{UserID: "u1", InterviewID: "iv1", FeedbackID: "fb-old"})
	c.HandleEvent(finalTranscript(models.RoleAssistant, "Tell me about React."))
	c.HandleEvent(finalTranscript(models.RoleUser, "I use hooks."))
	c.HandleEvent(voice.Event{Type: voice.EventCallEnd})
	out := waitDone(t, c)

	if !reflect.DeepEqual(f.recorder.finalized, []string{"iv1"}) {
		t.Fatalf("expected exactly one finalize on iv1, got %v", f.recorder.finalized)
	}
	if len(f.recorder.created) != 0 {
		t.Fatalf("expected no interview creation, got %d", len(f.recorder.created))
	}
	call := f.feedback.calls[0]
	if call.InterviewID != "iv1" || call.UserID != "u1" || call.FeedbackID != "fb-old" || len(call.Transcript) != 2 {
		t.Fatalf("unexpected feedback params: %+v", call)
	}
	if out.Destination != "/interview/iv1/feedback" || out.FeedbackID != "fb-1" {
		t.Fatalf("unexpected outcome: %+v", out)
	}
	if len(f.notifier.events) != 1 || f.notifier.events[0].Created {
		t.Fatalf("expected one in-place finalized event, got %+v", f.notifier.events)
	}
}

func TestExtractionFailureCreatesDefaultInterview(t *testing.T) {
	f := newFixture(t)
	c := f.startActive(t, Options{UserID: "u1"})
	c.HandleEvent(finalTranscript(models.RoleUser, "hello"))
	c.HandleEvent(voice.Event{Type: voice.EventCallEnd})
	out := waitDone(t, c)

	if len(f.recorder.created) != 1 {
		t.Fatalf("expected one created interview, got %d", len(f.recorder.created))
	}
	got := f.recorder.created[0]
	if got.Role != "Software Engineer" || got.Type != "Technical" || !got.Finalized || got.UserID != "u1" {
		t.Fatalf("unexpected default interview: %+v", got)
	}
	if !reflect.DeepEqual(got.Techstack, []string{"react", "nodejs", "aws"}) {
		t.Fatalf("unexpected default techstack: %v", got.Techstack)
	}
	if len(f.recorder.finalized) != 0 {
		t.Fatal("no existing interview should be finalized")
	}
	if f.feedback.calls[0].InterviewID != "created-1" || out.InterviewID != "created-1" {
		t.Fatalf("expected feedback on the created interview, got %+v / %+v", f.feedback.calls[0], out)
	}
}

func TestExtractionSuccessCreatesExtractedInterview(t *testing.T) {
	f := newFixture(t)
	f.extractor.err = nil
	f.extractor.details = &models.InterviewDetails{Role: "Data Engineer", Type: "Mixed", Techstack: []string{"spark"}}
	c := f.startActive(t, Options{UserID: "u1", Mode: models.SessionModeGenerate})
	c.HandleEvent(finalTranscript(models.RoleUser, "I want a data engineering interview"))
	c.HandleEvent(voice.Event{Type: voice.EventCallEnd})
	out := waitDone(t, c)

	got := f.recorder.created[0]
	if got.Role != "Data Engineer" || got.Type != "Mixed" || !reflect.DeepEqual(got.Techstack, []string{"spark"}) || !got.Finalized {
		t.Fatalf("unexpected extracted interview: %+v", got)
	}
	if len(f.feedback.calls) != 0 {
		t.Fatal("generate mode must not produce feedback")
	}
	if out.Destination != HomeDestination {
		t.Fatalf("expected home destination, got %q", out.Destination)
	}
	if len(f.notifier.events) != 1 || !f.notifier.events[0].Created {
		t.Fatalf("expected one created event, got %+v", f.notifier.events)
	}
}

func TestNoUserSkipsPersistence(t *testing.T) {
	f := newFixture(t)
	c := f.startActive(t, Options{InterviewID: "iv1"})
	c.HandleEvent(finalTranscript(models.RoleUser, "hello"))
	c.HandleEvent(voice.Event{Type: voice.EventCallEnd})
	out := waitDone(t, c)

	if len(f.recorder.finalized)+len(f.recorder.created)+len(f.feedback.calls) != 0 {
		t.Fatal("expected no persistence without a user")
	}
	if out.Destination != HomeDestination {
		t.Fatalf("expected home destination, got %q", out.Destination)
	}
}

func TestEmptyTranscriptStillRunsFeedback(t *testing.T) {
	f := newFixture(t)
	c := f.startActive(t, Options{UserID: "u1", InterviewID: "iv1"})
	c.HandleEvent(voice.Event{Type: voice.EventCallEnd})
	waitDone(t, c)

	if len(f.recorder.finalized) != 0 {
		t.Fatal("empty transcript must skip interview handling")
	}
	if len(f.feedback.calls) != 1 || f.feedback.calls[0].InterviewID != "iv1" {
		t.Fatalf("expected feedback for iv1, got %+v", f.feedback.calls)
	}
}

func TestFeedbackFailureGoesHome(t *testing.T) {
	f := newFixture(t)
	f.feedback.result = models.FeedbackResult{Success: false}
	c := f.startActive(t, Options{UserID: "u1", InterviewID: "iv1"})
	c.HandleEvent(finalTranscript(models.RoleUser, "hello"))
	c.HandleEvent(voice.Event{Type: voice.EventCallEnd})
	out := waitDone(t, c)

	if out.Destination != HomeDestination || out.FeedbackID != "" {
		t.Fatalf("expected home outcome, got %+v", out)
	}
}

func TestStartConfigurationErrors(t *testing.T) {
	f := newFixture(t)
	deps := f.deps
	deps.Credential.WebToken = ""
	c := NewController("s1", Options{UserID: "u1"}, deps)
	if err := c.Start(context.Background()); !errors.Is(err, ErrMissingToken) {
		t.Fatalf("expected ErrMissingToken, got %v", err)
	}
	if c.State() != StateIdle {
		t.Fatalf("expected idle, got %s", c.State())
	}

	deps = f.deps
	deps.Credential.AssistantID = ""
	c = NewController("s2", Options{UserID: "u1", Mode: models.SessionModeGenerate}, deps)
	if err := c.Start(context.Background()); !errors.Is(err, ErrMissingAssistant) {
		t.Fatalf("expected ErrMissingAssistant, got %v", err)
	}
	if len(f.session.starts) != 0 {
		t.Fatal("configuration errors must not reach the voice platform")
	}
}

func TestStartRejectsReentry(t *testing.T) {
	f := newFixture(t)
	c := NewController("s1", Options{UserID: "u1"}, f.deps)
	if err := c.Start(context.Background()); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
	if c.State() != StateConnecting {
		t.Fatalf("expected connecting, got %s", c.State())
	}
	if err := c.Start(context.Background()); !errors.Is(err, ErrAlreadyStarted) {
		t.Fatalf("expected ErrAlreadyStarted, got %v", err)
	}
	if len(f.session.starts) != 1 {
		t.Fatalf("expected a single platform start, got %d", len(f.session.starts))
	}
}

func TestStartFailureReturnsToIdle(t *testing.T) {
	f := newFixture(t)
	f.session.startErr = errors.New("dial refused")
	c := NewController("s1", Options{UserID: "u1"}, f.deps)
	if err := c.Start(context.Background()); err == nil {
		t.Fatal("expected start error")
	}
	if c.State() != StateIdle {
		t.Fatalf("expected idle after failed start, got %s", c.State())
	}
}

func TestErrorEventReturnsToIdle(t *testing.T) {
	f := newFixture(t)
	c := f.startActive(t, Options{UserID: "u1"})
	c.HandleEvent(voice.Event{Type: voice.EventError, Error: "Meeting has ended due to ejection"})
	if c.State() != StateIdle {
		t.Fatalf("expected idle after error, got %s", c.State())
	}
	select {
	case <-c.Done():
		t.Fatal("errors must not trigger finalization")
	default:
	}
}

func TestCallEndWhileConnectingReturnsToIdle(t *testing.T) {
	f := newFixture(t)
	c := NewController("s1", Options{UserID: "u1"}, f.deps)
	if err := c.Start(context.Background()); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
	c.HandleEvent(voice.Event{Type: voice.EventCallEnd})
	if c.State() != StateIdle {
		t.Fatalf("expected idle, got %s", c.State())
	}
}

func TestEndBeforeStart(t *testing.T) {
	f := newFixture(t)
	c := NewController("s1", Options{UserID: "u1"}, f.deps)
	if err := c.End(context.Background()); !errors.Is(err, ErrNotStarted) {
		t.Fatalf("expected ErrNotStarted, got %v", err)
	}
}

func TestSpeakingIsIndependentOfState(t *testing.T) {
	f := newFixture(t)
	c := f.startActive(t, Options{UserID: "u1", InterviewID: "iv1"})

	c.HandleEvent(voice.Event{Type: voice.EventSpeechStart})
	if !c.IsRemoteSpeaking() || c.State() != StateActive {
		t.Fatal("speech start must only toggle speaking")
	}
	c.HandleEvent(voice.Event{Type: voice.EventCallEnd})
	waitDone(t, c)
	if !c.IsRemoteSpeaking() {
		t.Fatal("call end must not reset speaking")
	}
	c.HandleEvent(voice.Event{Type: voice.EventSpeechEnd})

	view := c.View()
	if view.IsRemoteSpeaking || view.State != string(StateFinished) || view.Outcome == nil {
		t.Fatalf("unexpected view: %+v", view)
	}
}
