package handlers

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"intervai/internal/catalog"
	"intervai/internal/middleware"
	"intervai/internal/models"
	"intervai/internal/store"
	"intervai/internal/utils"
)

// QuestionGenerator produces interview questions for a generation request.
type QuestionGenerator interface {
	Generate(ctx context.Context, requestID string, req *models.GenerateQuestionsRequest) ([]string, error)
}

type QuestionHandler struct {
	generator  QuestionGenerator
	interviews store.InterviewStore
	notifier   Notifier
	logger     *zap.Logger
}

func NewQuestionHandler(generator QuestionGenerator, interviews store.InterviewStore, notifier Notifier, logger *zap.Logger) *QuestionHandler {
	return &QuestionHandler{
		generator:  generator,
		interviews: interviews,
		notifier:   notifier,
		logger:     logger,
	}
}

// GenerateHandler handles POST /api/vapi/generate. Generation failures are not recovered: the
// caller gets {success:false}.
func (h *QuestionHandler) GenerateHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.GenerateQuestionsRequest](r)
	requestID := ensureRequestID(r)

	questions, err := h.generator.Generate(r.Context(), requestID, req)
	if err != nil {
		h.logger.Error("Question generation failed", zap.Error(err), zap.String("request_id", requestID))
		utils.JSON(w, http.StatusInternalServerError, models.GenerateQuestionsResponse{
			Success: false,
			Error:   "failed to generate questions",
		})
		return
	}

	interview := &models.Interview{
		UserID:     req.UserID,
		Role:       req.Role,
		Type:       req.Type,
		Level:      req.Level,
		Techstack:  utils.SplitTechstack(req.Techstack),
		Questions:  questions,
		CoverImage: catalog.RandomCover(nil),
		Finalized:  true,
	}
	id, err := h.interviews.CreateInterview(r.Context(), interview)
	if err != nil {
		h.logger.Error("Failed to save generated interview", zap.Error(err), zap.String("request_id", requestID))
		utils.JSON(w, http.StatusInternalServerError, models.GenerateQuestionsResponse{
			Success: false,
			Error:   "failed to save interview",
		})
		return
	}

	if h.notifier != nil {
		ev := models.InterviewFinalizedEvent{InterviewID: id, UserID: req.UserID, Created: true}
		if err := h.notifier.InterviewFinalized(r.Context(), ev); err != nil {
			h.logger.Warn("Failed to publish interview event", zap.Error(err), zap.String("interview_id", id))
		}
	}

	h.logger.Info("Generated interview saved",
		zap.String("request_id", requestID),
		zap.String("interview_id", id),
		zap.Int("questions", len(questions)))

	utils.JSON(w, http.StatusOK, models.GenerateQuestionsResponse{Success: true})
}

// GenerateValidationError renders a rejected generate body in the {success:false} shape the voice
// assistant expects from this endpoint.
func GenerateValidationError(w http.ResponseWriter, status int, errResp models.ErrorResponse) {
	utils.JSON(w, status, models.GenerateQuestionsResponse{Success: false, Error: errResp.Message})
}

// PingHandler handles GET /api/vapi/generate.
func (h *QuestionHandler) PingHandler(w http.ResponseWriter, r *http.Request) {
	utils.JSON(w, http.StatusOK, models.GenerateQuestionsResponse{Success: true, Data: "Thank you!"})
}
