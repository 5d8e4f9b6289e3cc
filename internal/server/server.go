// Package server exposes the time clock over HTTP.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/balkashynov/punch/internal/auth"
	"github.com/balkashynov/punch/internal/config"
	"github.com/balkashynov/punch/internal/db"
	"github.com/balkashynov/punch/internal/models"
	"github.com/balkashynov/punch/internal/timesheet"
)

// Store is everything the handlers read and write.
type Store interface {
	ClockIn(ctx context.Context, userID uint, jobID *uint) (*models.ClockRecord, error)
	ClockOut(ctx context.Context, userID uint, jobID *uint) (*models.ClockRecord, error)
	Status(ctx context.Context, userID uint, jobID *uint) (*db.SessionStatus, error)
	Report(ctx context.Context, userID uint, f db.ReportFilter) (timesheet.Report, error)

	CreateJob(ctx context.Context, userID uint, req db.CreateJobRequest) (*models.Job, error)
	ListJobs(ctx context.Context, userID uint) ([]models.Job, error)
	UpdateJob(ctx context.Context, userID, jobID uint, req db.UpdateJobRequest) (*models.Job, error)
	DeleteJob(ctx context.Context, userID, jobID uint) error

	GetUser(ctx context.Context, id uint) (*models.User, error)
	ListUsers(ctx context.Context) ([]db.UserSummary, error)
	UsageStats(ctx context.Context) (*db.UsageStats, error)
}

// Server holds the handlers' dependencies.
type Server struct {
	cfg   *config.Config
	store Store
	auth  *auth.Service
	now   func() time.Time
}

// New returns a Server.
func New(cfg *config.Config, store Store, authSvc *auth.Service) *Server {
	return &Server{cfg: cfg, store: store, auth: authSvc, now: time.Now}
}

// Routes builds the router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.cfg.CORSOriginList(),
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Post("/register", s.handleRegister)
		r.Post("/login", s.handleLogin)

		r.Group(func(r chi.Router) {
			r.Use(s.requireAuth)

			r.Get("/me", s.handleMe)
			r.Get("/status", s.handleStatus)
			r.Post("/clock-in", s.handleClockIn)
			r.Post("/clock-out", s.handleClockOut)
			r.Get("/report", s.handleReport)

			r.Get("/jobs", s.handleListJobs)
			r.Post("/jobs", s.handleCreateJob)
			r.Put("/jobs/{id}", s.handleUpdateJob)
			r.Delete("/jobs/{id}", s.handleDeleteJob)

			r.Route("/admin", func(r chi.Router) {
				r.Use(s.requireAdmin)
				r.Get("/users", s.handleAdminUsers)
				r.Get("/stats", s.handleAdminStats)
			})
		})
	})

	return r
}

// NewHTTPServer wraps the router in an http.Server bound to the configured address.
func (s *Server) NewHTTPServer() *http.Server {
	return &http.Server{
		Addr:              s.cfg.HTTPAddr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":      "ok",
		"environment": s.cfg.Env,
		"timestamp":   s.now().UTC().Format(time.RFC3339),
	})
}
