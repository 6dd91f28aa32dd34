package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"intervai/internal/behavioral"
	"intervai/internal/catalog"
	"intervai/internal/middleware"
	"intervai/internal/store"
	"intervai/internal/utils"
)

type CatalogHandler struct {
	interviews store.InterviewStore
	selector   *behavioral.Selector
	logger     *zap.Logger
}

func NewCatalogHandler(interviews store.InterviewStore, selector *behavioral.Selector, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{interviews: interviews, selector: selector, logger: logger}
}

// Companies handles GET /api/v1/catalog/companies: the static interviews the caller has not
// taken yet.
func (h *CatalogHandler) Companies(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())
	mine, err := h.interviews.ListInterviewsByUser(r.Context(), userID)
	if err != nil {
		h.logger.Error("Failed to list interviews", zap.Error(err), zap.String("user_id", userID))
		writeStoreError(w, err, "interviews")
		return
	}
	utils.JSON(w, http.StatusOK, catalog.Available(mine))
}

// BehavioralQuestions handles GET /api/v1/behavioral-questions. A role selects by role, a
// category lists that category, and neither draws from the whole catalog.
func (h *CatalogHandler) BehavioralQuestions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	count := queryInt(r, "count", behavioral.DefaultCount)

	var out []behavioral.Question
	switch {
	case q.Get("role") != "":
		out = h.selector.ForRole(q.Get("role"), count)
	case q.Get("category") != "":
		out = behavioral.ByCategory(q.Get("category"))
	default:
		out = h.selector.Random(count)
	}
	if out == nil {
		out = []behavioral.Question{}
	}
	utils.JSON(w, http.StatusOK, out)
}
