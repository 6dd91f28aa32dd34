package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strings"
	"testing"

	"go.uber.org/zap"

	"intervai/internal/middleware"
	"intervai/internal/models"
)

func newQuestionRouter(h *QuestionHandler) http.Handler {
	r := newUserRouter("")
	r.With(middleware.ValidateRequestWith[*models.GenerateQuestionsRequest](GenerateValidationError)).Post("/api/vapi/generate", h.GenerateHandler)
	r.Get("/api/vapi/generate", h.PingHandler)
	return r
}

const generateBody = `{"type":"Technical","role":"Backend Engineer","level":"Senior","techstack":"Go, Redis ,","amount":2,"userid":"user-1"}`

func TestGenerateHandlerPersistsInterview(t *testing.T) {
	s := newTestStore(t)
	notifier := &mockNotifier{}
	gen := &mockGenerator{
		generateFn: func(_ context.Context, requestID string, req *models.GenerateQuestionsRequest) ([]string, error) {
			if requestID == "" {
				t.Errorf("expected a request ID")
			}
			if req.Amount != 2 || req.Role != "Backend Engineer" {
				t.Errorf("unexpected request: %+v", req)
			}
			return []string{"What is a goroutine?", "How does Redis persist data?"}, nil
		},
	}
	h := NewQuestionHandler(gen, s, notifier, zap.NewNop())

	rec := performRequest(newQuestionRouter(h), http.MethodPost, "/api/vapi/generate", generateBody)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp models.GenerateQuestionsResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil || !resp.Success {
		t.Fatalf("expected success response, got %+v (%v)", resp, err)
	}

	saved, err := s.ListInterviewsByUser(context.Background(), "user-1")
	if err != nil || len(saved) != 1 {
		t.Fatalf("expected one saved interview, got %d (%v)", len(saved), err)
	}
	iv := saved[0]
	if !iv.Finalized || iv.Level != "Senior" || iv.Type != models.InterviewTypeTechnical {
		t.Fatalf("unexpected interview: %+v", iv)
	}
	if !reflect.DeepEqual(iv.Techstack, []string{"go", "redis"}) {
		t.Fatalf("expected normalized techstack, got %v", iv.Techstack)
	}
	if len(iv.Questions) != 2 || !strings.HasPrefix(iv.CoverImage, "/covers/") {
		t.Fatalf("expected questions and a cover image, got %+v", iv)
	}
	if len(notifier.events) != 1 || !notifier.events[0].Created {
		t.Fatalf("expected one created event, got %+v", notifier.events)
	}
}

func TestGenerateHandlerGenerationFailure(t *testing.T) {
	s := newTestStore(t)
	gen := &mockGenerator{
		generateFn: func(context.Context, string, *models.GenerateQuestionsRequest) ([]string, error) {
			return nil, errors.New("unparseable output")
		},
	}
	h := NewQuestionHandler(gen, s, nil, zap.NewNop())

	rec := performRequest(newQuestionRouter(h), http.MethodPost, "/api/vapi/generate", generateBody)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	var resp models.GenerateQuestionsResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil || resp.Success || resp.Error == "" {
		t.Fatalf("expected failure response, got %+v (%v)", resp, err)
	}

	saved, _ := s.ListInterviewsByUser(context.Background(), "user-1")
	if len(saved) != 0 {
		t.Fatalf("expected nothing persisted, got %d interviews", len(saved))
	}
}

func TestGenerateHandlerRejectsInvalidBody(t *testing.T) {
	h := NewQuestionHandler(&mockGenerator{}, newTestStore(t), nil, zap.NewNop())

	for _, body := range []string{`{"role":"x","amount":0,"userid":"u"}`, `{"role":"x","amount":"lots","userid":"u"}`, `{`, ``} {
		rec := performRequest(newQuestionRouter(h), http.MethodPost, "/api/vapi/generate", body)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%q: expected 400, got %d", body, rec.Code)
		}
		var resp map[string]interface{}
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("%q: failed to decode: %v", body, err)
		}
		if success, ok := resp["success"].(bool); !ok || success {
			t.Fatalf("%q: expected success:false, got %v", body, resp)
		}
		if msg, _ := resp["error"].(string); msg == "" {
			t.Fatalf("%q: expected an error message, got %v", body, resp)
		}
	}
}

func TestGenerateHandlerAcceptsAssistantArguments(t *testing.T) {
	s := newTestStore(t)
	gen := &mockGenerator{
		generateFn: func(_ context.Context, _ string, req *models.GenerateQuestionsRequest) ([]string, error) {
			if req.Amount != 5 || req.Type != models.InterviewTypeTechnical {
				t.Errorf("unexpected request: %+v", req)
			}
			return []string{"Q1", "Q2", "Q3", "Q4", "Q5"}, nil
		},
	}
	h := NewQuestionHandler(gen, s, nil, zap.NewNop())

	body := `{"type":"technical","role":"Backend Engineer","level":"Junior","techstack":"go","amount":"5","userid":"user-2"}`
	rec := performRequest(newQuestionRouter(h), http.MethodPost, "/api/vapi/generate", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	saved, err := s.ListInterviewsByUser(context.Background(), "user-2")
	if err != nil || len(saved) != 1 || saved[0].Type != models.InterviewTypeTechnical {
		t.Fatalf("expected one technical interview, got %+v (%v)", saved, err)
	}
}

func TestGeneratePing(t *testing.T) {
	h := NewQuestionHandler(&mockGenerator{}, newTestStore(t), nil, zap.NewNop())

	rec := performRequest(newQuestionRouter(h), http.MethodGet, "/api/vapi/generate", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Thank you!") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}
