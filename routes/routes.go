package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/hireflow/talent-gateway/app"
	"github.com/hireflow/talent-gateway/handlers"
)

// SetupRoutes configures all application routes and middleware
func SetupRoutes(deps *app.Dependencies) http.Handler {
	r := chi.NewRouter()

	// Core middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// CORS middleware
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "https://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link", "X-Request-ID", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	dashboardHandler := handlers.NewDashboardHandler(deps.Dashboard, deps.Logger)
	searchHandler := handlers.NewSearchHandler(deps.Search, deps.Logger)
	candidateHandler := handlers.NewCandidateHandler(deps.Candidates, deps.Logger)
	scoringRuleHandler := handlers.NewScoringRuleHandler(deps.ScoringRules, deps.Logger)
	exportHandler := handlers.NewExportHandler(deps.Export, deps.Logger)

	// Health check endpoints
	r.Get("/healthz", handlers.HealthCheck(deps))
	r.Get("/readyz", handlers.ReadinessCheck(deps))

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/status", handlers.StatusHandler(deps))

		// Dashboard sections; each loads independently through its own
		// fallback chain
		r.Route("/dashboard", func(r chi.Router) {
			r.Get("/pipeline", dashboardHandler.HandlePipeline)
			r.Get("/skills", dashboardHandler.HandleSkills)
			r.Get("/interviews", dashboardHandler.HandleInterviews)
			r.Get("/jobs", dashboardHandler.HandleJobs)
			r.Get("/insights", dashboardHandler.HandleInsights)
		})

		// Candidate search
		r.Get("/search/candidates", searchHandler.HandleCandidates)

		// Candidate operations
		r.Route("/candidates/{id}", func(r chi.Router) {
			r.Patch("/status", candidateHandler.HandleUpdateStatus)
			r.Get("/similar", searchHandler.HandleSimilar)
		})

		// Interview scheduling
		r.Post("/interviews", candidateHandler.HandleScheduleInterview)

		// Job postings
		r.Post("/jobs/{id}/publish", candidateHandler.HandlePublishJob)

		// Matching runs and feedback
		r.Route("/matching", func(r chi.Router) {
			r.Post("/runs", candidateHandler.HandleStartMatching)
			r.Get("/runs/{id}/progress", candidateHandler.HandleMatchingProgress)
			r.Post("/feedback", candidateHandler.HandleMatchFeedback)
		})

		// Scoring rule management
		r.Route("/scoring-rules", func(r chi.Router) {
			r.Get("/", scoringRuleHandler.HandleList)
			r.Post("/", scoringRuleHandler.HandleCreate)
			r.Get("/{id}", scoringRuleHandler.HandleGet)
			r.Put("/{id}", scoringRuleHandler.HandleUpdate)
			r.Delete("/{id}", scoringRuleHandler.HandleDelete)
			r.Patch("/{id}/enabled", scoringRuleHandler.HandleToggle)
		})

		// File exports
		r.Route("/export", func(r chi.Router) {
			r.Get("/candidates.csv", exportHandler.HandleCandidates("csv"))
			r.Get("/candidates.json", exportHandler.HandleCandidates("json"))
			r.Get("/candidates.xlsx", exportHandler.HandleCandidates("xlsx"))
			r.Get("/matches.csv", exportHandler.HandleMatches("csv"))
			r.Get("/matches.json", exportHandler.HandleMatches("json"))
			r.Get("/matches.xlsx", exportHandler.HandleMatches("xlsx"))
		})
	})

	// 404 handler
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"endpoint not found"}`))
	})

	return r
}
