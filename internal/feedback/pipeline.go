// Package feedback scores finished interview transcripts.
package feedback

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"intervai/internal/llm"
	"intervai/internal/metrics"
	"intervai/internal/models"
	"intervai/internal/prompts"
	"intervai/internal/store"
	"intervai/internal/utils"
)

const (
	placeholderStrength    = "Interview completed successfully."
	placeholderImprovement = "Continue practicing to improve your skills."
	placeholderAssessment  = "Assessment completed based on your interview responses."
)

type Notifier interface {
	FeedbackCreated(ctx context.Context, ev models.FeedbackCreatedEvent) error
}

// Pipeline generates feedback with the LLM provider and falls back to heuristic scoring when
// generation or the first write fails.
type Pipeline struct {
	provider llm.Provider
	prompts  prompts.PromptProvider
	store    store.FeedbackStore
	notifier Notifier
	logger   *zap.Logger
}

func NewPipeline(provider llm.Provider, pp prompts.PromptProvider, fs store.FeedbackStore, notifier Notifier, logger *zap.Logger) *Pipeline {
	return &Pipeline{
		provider: provider,
		prompts:  pp,
		store:    fs,
		notifier: notifier,
		logger:   logger,
	}
}

// generated mirrors the model output before normalization. Scores arrive as JSON numbers.
type generated struct {
	TotalScore     float64 `json:"totalScore"`
	CategoryScores []struct {
		Name    string  `json:"name"`
		Score   float64 `json:"score"`
		Comment string  `json:"comment"`
	} `json:"categoryScores"`
	Strengths           []string `json:"strengths"`
	AreasForImprovement []string `json:"areasForImprovement"`
	FinalAssessment     string   `json:"finalAssessment"`
}

// CreateFeedback never returns an error; failure is reported through the result.
func (p *Pipeline) CreateFeedback(ctx context.Context, params models.CreateFeedbackParams) models.FeedbackResult {
	log := p.logger.With(zap.String("interview_id", params.InterviewID), zap.String("user_id", params.UserID))

	fb, err := p.Generate(ctx, params.Transcript)
	if err == nil {
		id, werr := p.write(ctx, params, fb)
		if werr == nil {
			metrics.RecordFeedback("generated")
			p.notify(ctx, params, id, false)
			return models.FeedbackResult{Success: true, FeedbackID: id}
		}
		err = werr
	}
	log.Warn("feedback generation failed, using fallback feedback", zap.Error(err))

	id, err := p.write(ctx, params, Fallback(params.Transcript))
	if err != nil {
		log.Error("error saving fallback feedback", zap.Error(err))
		metrics.RecordFeedback("failed")
		return models.FeedbackResult{Success: false}
	}
	metrics.RecordFeedback("fallback")
	p.notify(ctx, params, id, true)
	return models.FeedbackResult{Success: true, FeedbackID: id, Fallback: true}
}

// Generate asks the provider for a schema-constrained evaluation and normalizes it.
func (p *Pipeline) Generate(ctx context.Context, transcript []models.TranscriptMessage) (*models.Feedback, error) {
	prompt, err := p.prompts.BuildPrompt("feedback", "default", map[string]interface{}{
		"Transcript": utils.FormatTranscript(transcript),
		"Categories": models.FeedbackCategoriesList(),
	})
	if err != nil {
		return nil, err
	}

	req := &models.GenerationRequest{
		RequestID:         uuid.New().String(),
		Prompt:            prompt,
		SystemInstruction: p.prompts.SystemPrompt("feedback"),
		ResponseSchema:    feedbackSchema(),
	}

	var out generated
	start := time.Now()
	err = llm.GenerateObject(ctx, p.provider, req, &out)
	metrics.ObserveLLM(p.provider.GetProviderName(), "feedback", err, time.Since(start))
	if err != nil {
		return nil, err
	}
	return normalize(&out)
}

// normalize validates the categories and fills in what the model left out.
func normalize(g *generated) (*models.Feedback, error) {
	names := models.FeedbackCategoriesList()
	if len(g.CategoryScores) != len(names) {
		return nil, fmt.Errorf("expected %d category scores, got %d", len(names), len(g.CategoryScores))
	}

	scores := make([]models.CategoryScore, len(names))
	sum := 0
	for i, c := range g.CategoryScores {
		if c.Name != names[i] {
			return nil, fmt.Errorf("category %d: expected %q, got %q", i, names[i], c.Name)
		}
		if c.Score < 0 || c.Score > 100 {
			return nil, fmt.Errorf("category %q: score %v out of range", c.Name, c.Score)
		}
		score := int(math.Round(c.Score))
		scores[i] = models.CategoryScore{Name: c.Name, Score: score, Comment: c.Comment}
		sum += score
	}

	total := int(math.Round(g.TotalScore))
	if total == 0 {
		total = int(math.Round(float64(sum) / float64(len(scores))))
	}

	fb := &models.Feedback{
		TotalScore:          total,
		CategoryScores:      scores,
		Strengths:           g.Strengths,
		AreasForImprovement: g.AreasForImprovement,
		FinalAssessment:     g.FinalAssessment,
	}
	if len(fb.Strengths) == 0 {
		fb.Strengths = []string{placeholderStrength}
	}
	if len(fb.AreasForImprovement) == 0 {
		fb.AreasForImprovement = []string{placeholderImprovement}
	}
	if fb.FinalAssessment == "" {
		fb.FinalAssessment = placeholderAssessment
	}
	return fb, nil
}

// write overwrites the caller's existing record or creates a new one. A supplied feedback ID is
// only honoured when it is the record already held for this interview and user.
func (p *Pipeline) write(ctx context.Context, params models.CreateFeedbackParams, fb *models.Feedback) (string, error) {
	fb.InterviewID = params.InterviewID
	fb.UserID = params.UserID
	fb.CreatedAt = time.Now().UTC()

	target, err := p.overwriteTarget(ctx, params)
	if err != nil {
		return "", err
	}
	if target != "" {
		if err := p.store.PutFeedback(ctx, target, fb); err != nil {
			return "", err
		}
		return target, nil
	}
	fb.ID = ""
	return p.store.CreateFeedback(ctx, fb)
}

// overwriteTarget looks up the record for (interview, user) when the caller asked for an
// overwrite. It returns "" when a new record should be created.
func (p *Pipeline) overwriteTarget(ctx context.Context, params models.CreateFeedbackParams) (string, error) {
	if params.FeedbackID == "" {
		return "", nil
	}
	existing, err := p.store.GetFeedbackByInterview(ctx, params.InterviewID, params.UserID)
	if errors.Is(err, store.ErrNotFound) || (err == nil && existing == nil) {
		p.logger.Warn("feedback id does not belong to this interview, creating a new record",
			zap.String("feedback_id", params.FeedbackID),
			zap.String("interview_id", params.InterviewID))
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to look up existing feedback: %w", err)
	}
	if existing.ID != params.FeedbackID {
		p.logger.Warn("feedback id does not match the stored record, overwriting the stored record",
			zap.String("feedback_id", params.FeedbackID),
			zap.String("stored_id", existing.ID))
	}
	return existing.ID, nil
}

func (p *Pipeline) notify(ctx context.Context, params models.CreateFeedbackParams, id string, fallback bool) {
	if p.notifier == nil {
		return
	}
	err := p.notifier.FeedbackCreated(ctx, models.FeedbackCreatedEvent{
		FeedbackID:  id,
		InterviewID: params.InterviewID,
		UserID:      params.UserID,
		Fallback:    fallback,
	})
	if err != nil {
		p.logger.Warn("failed to publish feedback created event", zap.Error(err))
	}
}
