package httpserver

import (
	"net/http"
	"time"

	"fittrack-go/internal/config"
	"fittrack-go/internal/observability"
	"fittrack-go/internal/transport/httpserver/handler"
	authmw "fittrack-go/internal/transport/httpserver/middleware"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(cfg config.Config, handlers *handler.Handlers, auth *authmw.Auth) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(observability.Middleware)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(authmw.NewCORS(cfg.CORSOrigins))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.Health)

		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware)

			r.Get("/auth/me", handlers.AuthMe)

			r.Get("/exercises", handlers.ListExercises)
			r.Get("/exercises/categories", handlers.ListExerciseCategories)
			r.Get("/exercises/{id}", handlers.GetExercise)
			r.Post("/exercises/{id}/estimate", handlers.EstimateExercise)

			r.Get("/workouts/draft", handlers.GetDraft)
			r.Delete("/workouts/draft", handlers.DiscardDraft)
			r.Post("/workouts/draft/exercises", handlers.AddDraftExercise)
			r.Delete("/workouts/draft/exercises/{index}", handlers.RemoveDraftExercise)
			r.Post("/workouts/draft/exercises/{index}/sets", handlers.AddDraftSet)
			r.Patch("/workouts/draft/exercises/{index}/sets/{set}", handlers.UpdateDraftSet)
			r.Delete("/workouts/draft/exercises/{index}/sets/{set}", handlers.RemoveDraftSet)
			r.Post("/workouts/draft/save", handlers.SaveDraft)

			r.Get("/workouts", handlers.ListWorkouts)
			r.Post("/workouts", handlers.CreateWorkout)
			r.Get("/workouts/{id}", handlers.GetWorkout)
			r.Delete("/workouts/{id}", handlers.DeleteWorkout)

			r.Get("/logs", handlers.ListLogs)
			r.Get("/logs/history", handlers.LogHistory)
			r.Get("/logs/{date}", handlers.GetLog)
			r.Put("/logs/{date}", handlers.SaveLog)

			r.Get("/summary", handlers.GetSummary)

			r.Get("/profile", handlers.GetProfile)
			r.Put("/profile", handlers.UpdateProfile)

			r.Post("/nutrition/analyze", handlers.AnalyzeMeal)
		})
	})

	return r
}
