package handlers

import (
	"context"
	"net/http"
	"time"

	"intervai/internal/config"
	"intervai/internal/llm"
	"intervai/internal/prompts"
	"intervai/internal/utils"
)

const serviceName = "intervai"

type ReadinessCheck struct {
	Status  string `json:"status"` // "ok" | "failed"
	Message string `json:"message,omitempty"`
}

type ReadinessResponse struct {
	Status  string                    `json:"status"`  // "ready" | "not_ready"
	Service string                    `json:"service"` // Service name
	Checks  map[string]ReadinessCheck `json:"checks"`  // Individual check results
}

// Pinger is the slice of the store the readiness check needs.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	provider      llm.Provider
	promptManager prompts.PromptProvider
	store         Pinger
	config        *config.Config
}

func NewHealthHandler(provider llm.Provider, promptManager prompts.PromptProvider, store Pinger, cfg *config.Config) *HealthHandler {
	return &HealthHandler{
		provider:      provider,
		promptManager: promptManager,
		store:         store,
		config:        cfg,
	}
}

func (handler *HealthHandler) HealthzHandler(writer http.ResponseWriter, request *http.Request) {
	utils.JSON(writer, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": serviceName,
		"version": "1.0.0",
	})
}

func (handler *HealthHandler) ReadyzHandler(writer http.ResponseWriter, request *http.Request) {
	checks := make(map[string]ReadinessCheck)
	allChecksPass := true
	fail := func(name, message string) {
		checks[name] = ReadinessCheck{Status: "failed", Message: message}
		allChecksPass = false
	}

	if handler.provider == nil {
		fail("provider", "AI provider not initialized")
	} else {
		checks["provider"] = ReadinessCheck{Status: "ok"}
	}

	if handler.promptManager == nil {
		fail("prompt_manager", "Prompt manager not initialized")
	} else if len(handler.promptManager.GetTemplates()) == 0 {
		fail("prompt_manager", "No prompt templates loaded")
	} else {
		checks["prompt_manager"] = ReadinessCheck{Status: "ok"}
	}

	if handler.store == nil {
		fail("store", "Store not initialized")
	} else {
		ctx, cancel := context.WithTimeout(request.Context(), 2*time.Second)
		err := handler.store.Ping(ctx)
		cancel()
		if err != nil {
			fail("store", "Store unreachable: "+err.Error())
		} else {
			checks["store"] = ReadinessCheck{Status: "ok"}
		}
	}

	if handler.config == nil {
		fail("configuration", "Configuration not loaded")
	} else {
		checks["configuration"] = ReadinessCheck{Status: "ok"}
	}

	response := ReadinessResponse{
		Service: serviceName,
		Checks:  checks,
	}

	if allChecksPass {
		response.Status = "ready"
		utils.JSON(writer, http.StatusOK, response)
	} else {
		response.Status = "not_ready"
		utils.JSON(writer, http.StatusServiceUnavailable, response)
	}
}
