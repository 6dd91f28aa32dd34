package generation

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"go.uber.org/zap"

	"intervai/internal/models"
	"intervai/internal/prompts"
)

type mockProvider struct {
	generateContentFn func(ctx context.Context, req *models.GenerationRequest) (*models.GenerationResponse, error)
}

func (m *mockProvider) GenerateContent(ctx context.Context, req *models.GenerationRequest) (*models.GenerationResponse, error) {
	return m.generateContentFn(ctx, req)
}

func (m *mockProvider) GetProviderName() string { return "mock" }

func replying(content string, seen **models.GenerationRequest) *mockProvider {
	return &mockProvider{generateContentFn: func(_ context.Context, req *models.GenerationRequest) (*models.GenerationResponse, error) {
		if seen != nil {
			*seen = req
		}
		return &models.GenerationResponse{Content: content}, nil
	}}
}

func loadPrompts(t *testing.T) *prompts.PromptManager {
	t.Helper()
	pm, err := prompts.NewPromptManager()
	if err != nil {
		t.Fatalf("failed to load prompts: %v", err)
	}
	return pm
}

func TestGenerateQuestions(t *testing.T) {
	var seen *models.GenerationRequest
	g := NewQuestionGenerator(replying("```json\n[\"What is Go?\", \"  \", \"Explain channels.\"]\n```", &seen), loadPrompts(t), zap.NewNop())

	req := &models.GenerateQuestionsRequest{Type: "Technical", Role: "Backend Engineer", Level: "Junior", Techstack: "go,postgres", Amount: 2, UserID: "u1"}
	got, err := g.Generate(context.Background(), "req-1", req)
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"What is Go?", "Explain channels."}) {
		t.Fatalf("unexpected questions %v", got)
	}
	if seen.ResponseSchema != nil {
		t.Fatal("question generation must not use a schema")
	}
	for _, want := range []string{"Job Role: Backend Engineer", "Number of Questions: 2", "ONLY technical questions"} {
		if !strings.Contains(seen.Prompt, want) {
			t.Fatalf("prompt missing %q:\n%s", want, seen.Prompt)
		}
	}
}

func TestGenerateQuestionsRejectsProse(t *testing.T) {
	g := NewQuestionGenerator(replying("Here are some questions: 1. What is Go?", nil), loadPrompts(t), zap.NewNop())
	req := &models.GenerateQuestionsRequest{Type: "Mixed", Role: "r", Amount: 1, UserID: "u"}
	if _, err := g.Generate(context.Background(), "req", req); err == nil {
		t.Fatal("expected a parse error")
	}

	g = NewQuestionGenerator(replying("[]", nil), loadPrompts(t), zap.NewNop())
	if _, err := g.Generate(context.Background(), "req", req); !errors.Is(err, ErrNoQuestions) {
		t.Fatalf("expected ErrNoQuestions, got %v", err)
	}
}

func TestGenerateQuestionsProviderError(t *testing.T) {
	boom := errors.New("boom")
	g := NewQuestionGenerator(&mockProvider{generateContentFn: func(context.Context, *models.GenerationRequest) (*models.GenerationResponse, error) {
		return nil, boom
	}}, loadPrompts(t), zap.NewNop())
	req := &models.GenerateQuestionsRequest{Type: "Behavioral", Role: "r", Amount: 1, UserID: "u"}
	if _, err := g.Generate(context.Background(), "req", req); !errors.Is(err, boom) {
		t.Fatalf("expected provider error, got %v", err)
	}
}

func TestExtractDetails(t *testing.T) {
	var seen *models.GenerationRequest
	e := NewDetailsExtractor(replying(`{"role": " Frontend Developer ", "techstack": ["React", " AWS "], "type": "Technical"}`, &seen), loadPrompts(t), zap.NewNop())

	transcript := []models.TranscriptMessage{{Role: "user", Content: "I want a frontend interview"}}
	got, err := e.ExtractDetails(context.Background(), transcript)
	if err != nil {
		t.Fatalf("ExtractDetails returned error: %v", err)
	}
	want := &models.InterviewDetails{Role: "Frontend Developer", Techstack: []string{"react", "aws"}, Type: "Technical"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
	if seen.ResponseSchema == nil || !strings.Contains(seen.Prompt, "- user: I want a frontend interview") {
		t.Fatalf("unexpected request %+v", seen)
	}
}

func TestExtractDetailsFailures(t *testing.T) {
	for name, content := range map[string]string{
		"malformed":    "not json",
		"missing role": `{"role": "", "techstack": [], "type": "Mixed"}`,
	} {
		t.Run(name, func(t *testing.T) {
			e := NewDetailsExtractor(replying(content, nil), loadPrompts(t), zap.NewNop())
			got, err := e.ExtractDetails(context.Background(), nil)
			if err == nil || got != nil {
				t.Fatalf("expected failure, got %+v, %v", got, err)
			}
		})
	}
}
