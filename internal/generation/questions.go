// Package generation turns prompts into interview questions and interview details.
package generation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"intervai/internal/llm"
	"intervai/internal/metrics"
	"intervai/internal/models"
	"intervai/internal/prompts"
	"intervai/internal/utils"
)

var ErrNoQuestions = errors.New("model returned no questions")

type QuestionGenerator struct {
	provider llm.Provider
	prompts  prompts.PromptProvider
	logger   *zap.Logger
}

func NewQuestionGenerator(provider llm.Provider, pp prompts.PromptProvider, logger *zap.Logger) *QuestionGenerator {
	return &QuestionGenerator{provider: provider, prompts: pp, logger: logger}
}

// Generate asks for req.Amount questions as plain text and parses the reply as a JSON array of
// strings. There is no schema and no fallback: unparseable output is an error.
func (g *QuestionGenerator) Generate(ctx context.Context, requestID string, req *models.GenerateQuestionsRequest) ([]string, error) {
	prompt, err := g.prompts.BuildPrompt("questions", req.Type, map[string]interface{}{
		"Role":      req.Role,
		"Level":     req.Level,
		"Techstack": req.Techstack,
		"Type":      req.Type,
		"Amount":    req.Amount,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build question prompt: %w", err)
	}

	start := time.Now()
	resp, err := g.provider.GenerateContent(ctx, &models.GenerationRequest{
		RequestID:         requestID,
		Prompt:            prompt,
		SystemInstruction: g.prompts.SystemPrompt("questions"),
	})
	metrics.ObserveLLM(g.provider.GetProviderName(), "questions", err, time.Since(start))
	if err != nil {
		return nil, err
	}

	var questions []string
	if err := json.Unmarshal([]byte(utils.StripFences(resp.Content)), &questions); err != nil {
		g.logger.Warn("question output is not a JSON array",
			zap.String("request_id", requestID),
			zap.Int("content_length", len(resp.Content)))
		return nil, fmt.Errorf("failed to parse generated questions: %w", err)
	}

	out := questions[:0]
	for _, q := range questions {
		if q = strings.TrimSpace(q); q != "" {
			out = append(out, q)
		}
	}
	if len(out) == 0 {
		return nil, ErrNoQuestions
	}
	return out, nil
}
