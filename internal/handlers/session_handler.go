package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"intervai/internal/call"
	"intervai/internal/middleware"
	"intervai/internal/models"
	"intervai/internal/store"
	"intervai/internal/utils"
	"intervai/internal/voice"
)

// SessionHandler hosts live call controllers. Voice platform events for a session are relayed
// by the client that owns it.
type SessionHandler struct {
	registry   *call.Registry
	interviews store.InterviewStore
	deps       call.Deps
	logger     *zap.Logger
}

func NewSessionHandler(registry *call.Registry, interviews store.InterviewStore, deps call.Deps, logger *zap.Logger) *SessionHandler {
	return &SessionHandler{registry: registry, interviews: interviews, deps: deps, logger: logger}
}

// Start handles POST /api/v1/sessions.
func (h *SessionHandler) Start(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.StartSessionRequest](r)
	userID := middleware.UserID(r.Context())

	// the session finalizes this draft when it ends
	if req.InterviewID != "" {
		interview, err := h.interviews.GetInterview(r.Context(), req.InterviewID)
		if err != nil {
			writeStoreError(w, err, "interview")
			return
		}
		if interview.UserID != userID {
			writeError(w, http.StatusForbidden, "forbidden", "interview belongs to another user")
			return
		}
	}

	opts := call.Options{
		Mode:        req.Mode,
		UserID:      userID,
		UserName:    req.UserName,
		InterviewID: req.InterviewID,
		FeedbackID:  req.FeedbackID,
		Profile: models.InterviewProfile{
			Role:      req.Role,
			Type:      req.Type,
			Techstack: req.Techstack,
			Questions: req.Questions,
		},
	}
	ctrl := call.NewController(uuid.New().String(), opts, h.deps)

	if err := ctrl.Start(r.Context()); err != nil {
		switch {
		case errors.Is(err, call.ErrMissingToken), errors.Is(err, call.ErrMissingAssistant):
			writeError(w, http.StatusServiceUnavailable, "voice_not_configured", err.Error())
		default:
			h.logger.Error("Failed to start session", zap.Error(err), zap.String("session_id", ctrl.ID()))
			writeError(w, http.StatusBadGateway, "voice_error", "Failed to start voice session")
		}
		return
	}

	h.registry.Put(ctrl)
	h.logger.Info("Session started", zap.String("session_id", ctrl.ID()), zap.String("mode", req.Mode))
	utils.JSON(w, http.StatusCreated, ctrl.View())
}

// Get handles GET /api/v1/sessions/{id}.
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := h.lookup(w, r)
	if !ok {
		return
	}
	utils.JSON(w, http.StatusOK, ctrl.View())
}

// End handles POST /api/v1/sessions/{id}/end.
func (h *SessionHandler) End(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := h.lookup(w, r)
	if !ok {
		return
	}
	if err := ctrl.End(r.Context()); err != nil {
		if errors.Is(err, call.ErrNotStarted) {
			writeError(w, http.StatusConflict, "not_started", err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "session_error", err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, ctrl.View())
}

// Events handles POST /api/v1/sessions/{id}/events: one event or an array of events, applied in
// order.
func (h *SessionHandler) Events(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := h.lookup(w, r)
	if !ok {
		return
	}

	var raw json.RawMessage
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&raw); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "Request body must be valid JSON")
		return
	}
	var evs []voice.Event
	if len(raw) > 0 && raw[0] == '[' {
		if err := json.Unmarshal(raw, &evs); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_event", err.Error())
			return
		}
	} else {
		var ev voice.Event
		if err := json.Unmarshal(raw, &ev); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_event", err.Error())
			return
		}
		evs = []voice.Event{ev}
	}

	for _, ev := range evs {
		if ev.Type == "" {
			writeError(w, http.StatusBadRequest, "invalid_event", "event type is required")
			return
		}
	}
	for _, ev := range evs {
		ctrl.HandleEvent(ev)
	}
	utils.JSON(w, http.StatusOK, ctrl.View())
}

// lookup resolves the session in the URL and checks the caller owns it.
func (h *SessionHandler) lookup(w http.ResponseWriter, r *http.Request) (*call.Controller, bool) {
	ctrl, ok := h.registry.Get(chi.URLParam(r, "id"))
	if !ok || ctrl.UserID() != middleware.UserID(r.Context()) {
		writeError(w, http.StatusNotFound, "not_found", "session not found")
		return nil, false
	}
	return ctrl, true
}
