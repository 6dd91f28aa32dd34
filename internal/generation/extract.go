package generation

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"intervai/internal/llm"
	"intervai/internal/metrics"
	"intervai/internal/models"
	"intervai/internal/prompts"
	"intervai/internal/utils"
)

var detailsSchema = &models.Schema{
	Type: models.SchemaObject,
	Properties: map[string]*models.Schema{
		"role":      {Type: models.SchemaString},
		"techstack": {Type: models.SchemaArray, Items: &models.Schema{Type: models.SchemaString}},
		"type":      {Type: models.SchemaString},
	},
	Required: []string{"role", "techstack", "type"},
}

// DetailsExtractor recovers role, techstack and interview type from a free-form transcript.
type DetailsExtractor struct {
	provider llm.Provider
	prompts  prompts.PromptProvider
	logger   *zap.Logger
}

func NewDetailsExtractor(provider llm.Provider, pp prompts.PromptProvider, logger *zap.Logger) *DetailsExtractor {
	return &DetailsExtractor{provider: provider, prompts: pp, logger: logger}
}

func (e *DetailsExtractor) ExtractDetails(ctx context.Context, transcript []models.TranscriptMessage) (*models.InterviewDetails, error) {
	prompt, err := e.prompts.BuildPrompt("extract", "default", map[string]interface{}{
		"Transcript": utils.FormatTranscript(transcript),
	})
	if err != nil {
		return nil, err
	}

	var details models.InterviewDetails
	start := time.Now()
	err = llm.GenerateObject(ctx, e.provider, &models.GenerationRequest{
		RequestID:         uuid.New().String(),
		Prompt:            prompt,
		SystemInstruction: e.prompts.SystemPrompt("extract"),
		ResponseSchema:    detailsSchema,
	}, &details)
	metrics.ObserveLLM(e.provider.GetProviderName(), "extract", err, time.Since(start))
	if err != nil {
		e.logger.Warn("error extracting interview details", zap.Error(err))
		return nil, err
	}

	details.Role = strings.TrimSpace(details.Role)
	details.Type = strings.TrimSpace(details.Type)
	details.Techstack = utils.NormalizeTechstack(details.Techstack)
	if details.Role == "" || details.Type == "" {
		return nil, errors.New("extracted details are missing role or type")
	}
	return &details, nil
}
