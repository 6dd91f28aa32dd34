package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"intervai/internal/middleware"
	"intervai/internal/models"
	"intervai/internal/store"
	"intervai/internal/utils"
)

// FeedbackGenerator runs the feedback pipeline. It reports failure in the result, never as an error.
type FeedbackGenerator interface {
	CreateFeedback(ctx context.Context, params models.CreateFeedbackParams) models.FeedbackResult
}

type FeedbackHandler struct {
	feedback   store.FeedbackStore
	interviews store.InterviewStore
	pipeline   FeedbackGenerator
	logger     *zap.Logger
}

func NewFeedbackHandler(fs store.FeedbackStore, is store.InterviewStore, pipeline FeedbackGenerator, logger *zap.Logger) *FeedbackHandler {
	return &FeedbackHandler{
		feedback:   fs,
		interviews: is,
		pipeline:   pipeline,
		logger:     logger,
	}
}

// Get handles GET /api/v1/interviews/{id}/feedback for the caller.
func (fh *FeedbackHandler) Get(w http.ResponseWriter, r *http.Request) {
	fb, err := fh.feedback.GetFeedbackByInterview(r.Context(), chi.URLParam(r, "id"), middleware.UserID(r.Context()))
	if err != nil {
		writeStoreError(w, err, "feedback")
		return
	}
	utils.JSON(w, http.StatusOK, fb)
}

// Create handles POST /api/v1/interviews/{id}/feedback.
func (fh *FeedbackHandler) Create(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.CreateFeedbackRequest](r)
	interviewID := chi.URLParam(r, "id")

	userID := middleware.UserID(r.Context())

	interview, err := fh.interviews.GetInterview(r.Context(), interviewID)
	if err != nil {
		writeStoreError(w, err, "interview")
		return
	}
	if interview.UserID != userID {
		writeError(w, http.StatusForbidden, "forbidden", "interview belongs to another user")
		return
	}

	result := fh.pipeline.CreateFeedback(r.Context(), models.CreateFeedbackParams{
		InterviewID: interviewID,
		UserID:      userID,
		Transcript:  req.Transcript,
		FeedbackID:  req.FeedbackID,
	})
	if !result.Success {
		fh.logger.Error("Feedback pipeline failed", zap.String("interview_id", interviewID))
		utils.JSON(w, http.StatusInternalServerError, result)
		return
	}
	utils.JSON(w, http.StatusOK, result)
}
