package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"intervai/internal/catalog"
	"intervai/internal/middleware"
	"intervai/internal/models"
	"intervai/internal/store"
	"intervai/internal/utils"
)

type InterviewHandler struct {
	store    store.Store
	notifier Notifier
	logger   *zap.Logger
}

func NewInterviewHandler(s store.Store, notifier Notifier, logger *zap.Logger) *InterviewHandler {
	return &InterviewHandler{store: s, notifier: notifier, logger: logger}
}

// ListMine handles GET /api/v1/interviews.
func (h *InterviewHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())
	interviews, err := h.store.ListInterviewsByUser(r.Context(), userID)
	if err != nil {
		h.logger.Error("Failed to list interviews", zap.Error(err), zap.String("user_id", userID))
		writeStoreError(w, err, "interviews")
		return
	}
	utils.JSON(w, http.StatusOK, nonNil(interviews))
}

// ListLatest handles GET /api/v1/interviews/latest: finalized interviews of other users.
func (h *InterviewHandler) ListLatest(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())
	limit := queryInt(r, "limit", models.DefaultLatestLimit)
	interviews, err := h.store.ListLatestInterviews(r.Context(), userID, limit)
	if err != nil {
		h.logger.Error("Failed to list latest interviews", zap.Error(err))
		writeStoreError(w, err, "interviews")
		return
	}
	utils.JSON(w, http.StatusOK, nonNil(interviews))
}

// Get handles GET /api/v1/interviews/{id}.
func (h *InterviewHandler) Get(w http.ResponseWriter, r *http.Request) {
	interview, err := h.store.GetInterview(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeStoreError(w, err, "interview")
		return
	}
	utils.JSON(w, http.StatusOK, interview)
}

// Create handles POST /api/v1/interviews.
func (h *InterviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.CreateInterviewRequest](r)
	userID := middleware.UserID(r.Context())

	finalized := true
	if req.Finalized != nil {
		finalized = *req.Finalized
	}
	questions := req.Questions
	if questions == nil {
		questions = []string{}
	}
	interview := &models.Interview{
		UserID:    userID,
		Role:      req.Role,
		Type:      req.Type,
		Level:     req.Level,
		Techstack: utils.NormalizeTechstack(req.Techstack),
		Questions: questions,
		Finalized: finalized,
	}

	id, err := h.store.CreateInterview(r.Context(), interview)
	if err != nil {
		h.logger.Error("Failed to create interview", zap.Error(err), zap.String("user_id", userID))
		utils.JSON(w, http.StatusInternalServerError, models.CreateInterviewResponse{Success: false})
		return
	}
	if finalized {
		h.notify(r.Context(), id, userID, true)
	}
	utils.JSON(w, http.StatusCreated, models.CreateInterviewResponse{Success: true, ID: id})
}

// CreateStatic handles POST /api/v1/interviews/static/{company}: the draft a catalog session
// runs against. It is finalized when the session ends.
func (h *InterviewHandler) CreateStatic(w http.ResponseWriter, r *http.Request) {
	company, ok := catalog.ByID(chi.URLParam(r, "company"))
	if !ok {
		company, ok = catalog.ByName(chi.URLParam(r, "company"))
	}
	if !ok {
		writeError(w, http.StatusNotFound, "not_found", "company not found")
		return
	}

	userID := middleware.UserID(r.Context())
	id, err := h.store.CreateInterview(r.Context(), company.Interview(userID))
	if err != nil {
		h.logger.Error("Failed to create draft interview", zap.Error(err), zap.String("company", company.Name))
		utils.JSON(w, http.StatusInternalServerError, models.CreateInterviewResponse{Success: false})
		return
	}
	utils.JSON(w, http.StatusCreated, models.CreateInterviewResponse{Success: true, ID: id})
}

// Finalize handles PUT /api/v1/interviews/{id}/finalize.
func (h *InterviewHandler) Finalize(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	userID := middleware.UserID(r.Context())

	interview, err := h.store.GetInterview(r.Context(), id)
	if err != nil {
		writeStoreError(w, err, "interview")
		return
	}
	if interview.UserID != userID {
		writeError(w, http.StatusForbidden, "forbidden", "interview belongs to another user")
		return
	}
	if err := h.store.FinalizeInterview(r.Context(), id); err != nil {
		h.logger.Error("Failed to finalize interview", zap.Error(err), zap.String("interview_id", id))
		writeStoreError(w, err, "interview")
		return
	}
	h.notify(r.Context(), id, userID, false)
	utils.JSON(w, http.StatusOK, models.Resp{OK: true})
}

// Reset handles DELETE /api/v1/interviews: removes every interview and feedback of the caller.
func (h *InterviewHandler) Reset(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())
	interviews, feedback, err := store.ResetUserHistory(r.Context(), h.store, userID)
	if err != nil {
		h.logger.Error("Failed to reset history", zap.Error(err), zap.String("user_id", userID))
		writeError(w, http.StatusInternalServerError, "store_error", "Failed to reset history")
		return
	}
	h.logger.Info("History reset",
		zap.String("user_id", userID),
		zap.Int64("deleted_interviews", interviews),
		zap.Int64("deleted_feedback", feedback))
	utils.JSON(w, http.StatusOK, models.ResetHistoryResponse{
		Success:           true,
		DeletedInterviews: interviews,
		DeletedFeedback:   feedback,
	})
}

func (h *InterviewHandler) notify(ctx context.Context, id, userID string, created bool) {
	if h.notifier == nil {
		return
	}
	ev := models.InterviewFinalizedEvent{InterviewID: id, UserID: userID, Created: created}
	if err := h.notifier.InterviewFinalized(ctx, ev); err != nil {
		h.logger.Warn("Failed to publish interview event", zap.Error(err), zap.String("interview_id", id))
	}
}

func nonNil(interviews []models.Interview) []models.Interview {
	if interviews == nil {
		return []models.Interview{}
	}
	return interviews
}
