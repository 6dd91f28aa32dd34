package routers

import (
	"intervai/internal/handlers"
	"intervai/internal/middleware"
	"intervai/internal/models"

	"github.com/go-chi/chi/v5"
)

// APIHandlers groups the handlers behind authentication.
type APIHandlers struct {
	Interviews *handlers.InterviewHandler
	Feedback   *handlers.FeedbackHandler
	Sessions   *handlers.SessionHandler
	Catalog    *handlers.CatalogHandler
}

// QuestionRoutes mounts the generation endpoint the voice assistant calls. The user is named in
// the body, so it is not behind RequireUser.
func QuestionRoutes(router *chi.Mux, questionHandler *handlers.QuestionHandler) {
	router.Route("/api/vapi", func(r chi.Router) {
		r.Get("/generate", questionHandler.PingHandler)
		r.With(middleware.ValidateRequestWith[*models.GenerateQuestionsRequest](handlers.GenerateValidationError)).Post("/generate", questionHandler.GenerateHandler)
	})
}

func APIRoutes(router *chi.Mux, jwtSecret string, h APIHandlers) {
	router.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.RequireUser(jwtSecret))

		r.Route("/interviews", func(r chi.Router) {
			r.Get("/", h.Interviews.ListMine)
			r.With(middleware.ValidateRequest[*models.CreateInterviewRequest]()).Post("/", h.Interviews.Create)
			r.Delete("/", h.Interviews.Reset)
			r.Get("/latest", h.Interviews.ListLatest)
			r.Post("/static/{company}", h.Interviews.CreateStatic)
			r.Get("/{id}", h.Interviews.Get)
			r.Put("/{id}/finalize", h.Interviews.Finalize)
			r.Get("/{id}/feedback", h.Feedback.Get)
			r.With(middleware.ValidateRequest[*models.CreateFeedbackRequest]()).Post("/{id}/feedback", h.Feedback.Create)
		})

		r.Route("/sessions", func(r chi.Router) {
			r.With(middleware.ValidateRequest[*models.StartSessionRequest]()).Post("/", h.Sessions.Start)
			r.Get("/{id}", h.Sessions.Get)
			r.Post("/{id}/end", h.Sessions.End)
			r.Post("/{id}/events", h.Sessions.Events)
		})

		r.Get("/catalog/companies", h.Catalog.Companies)
		r.Get("/behavioral-questions", h.Catalog.BehavioralQuestions)
	})
}
