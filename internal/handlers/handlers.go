package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"intervai/internal/models"
	"intervai/internal/store"
	"intervai/internal/utils"
)

// Notifier announces interview writes made by handlers. Optional.
type Notifier interface {
	InterviewFinalized(ctx context.Context, ev models.InterviewFinalizedEvent) error
}

func generateRequestID() string {
	return uuid.New().String()
}

// ensureRequestID reuses the router's request ID and generates one when it is missing
func ensureRequestID(r *http.Request) string {
	if id := chimw.GetReqID(r.Context()); id != "" {
		return id
	}
	return generateRequestID()
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	utils.JSON(w, status, models.ErrorResponse{Code: code, Message: message})
}

// writeStoreError maps store errors onto 404 or 500.
func writeStoreError(w http.ResponseWriter, err error, what string) {
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not_found", what+" not found")
		return
	}
	writeError(w, http.StatusInternalServerError, "store_error", "Failed to access "+what)
}

// queryInt reads a positive integer query parameter, falling back to def.
func queryInt(r *http.Request, key string, def int) int {
	v, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil || v <= 0 {
		return def
	}
	return v
}
