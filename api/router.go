// Package api wires the HTTP surface: middleware chain, route tree and
// handler construction.
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"hireboard-backend/pkg/config"
	"hireboard-backend/pkg/database"
	"hireboard-backend/pkg/handlers"
	"hireboard-backend/pkg/jobs"
	"hireboard-backend/pkg/membership"
	"hireboard-backend/pkg/middleware"
	"hireboard-backend/pkg/notify"
	"hireboard-backend/pkg/utils"
)

// NewRouter assembles the full application router.
func NewRouter(cfg *config.Config, store database.Store) *chi.Mux {
	jwtService := utils.NewJWTService(cfg.JWTSecret)
	sink := notify.NewSink(store, notify.LogMailer{})

	companyService := membership.NewCompanyService(store, sink)
	inviteService := membership.NewInviteService(store, sink)
	recruiterService := membership.NewRecruiterService(store, sink)
	jobService := jobs.NewService(store)

	authHandler := handlers.NewAuthHandler(cfg, store, jwtService)
	companyHandler := handlers.NewCompanyHandler(companyService)
	inviteHandler := handlers.NewInviteHandler(inviteService)
	recruiterHandler := handlers.NewRecruiterHandler(recruiterService)
	jobHandler := handlers.NewJobHandler(jobService)
	notificationHandler := handlers.NewNotificationHandler(store)
	healthHandler := handlers.NewHealthHandler(cfg, store)

	r := chi.NewRouter()
	setupMiddleware(r, cfg, jwtService)

	r.Get("/health", healthHandler.Health)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.Refresh)
			r.With(middleware.RequireIdentity).Get("/me", authHandler.Me)
		})

		r.Get("/invites/verify", inviteHandler.Verify)
		r.With(middleware.RequireIdentity).Post("/invites/accept", inviteHandler.Accept)

		r.Route("/companies", func(r chi.Router) {
			r.With(middleware.RequireIdentity).Post("/", companyHandler.Create)

			r.Route("/{companyID}", func(r chi.Router) {
				r.Get("/", companyHandler.Get)
				r.Get("/jobs", jobHandler.ListByCompany)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireIdentity)
					r.Post("/admins", companyHandler.AddAdmin)
					r.Post("/invites", inviteHandler.Create)
					r.Get("/recruiters/pending", recruiterHandler.ListPending)
					r.Post("/follow", companyHandler.Follow)
					r.Delete("/follow", companyHandler.Unfollow)
				})
			})
		})

		r.Route("/recruiters", func(r chi.Router) {
			r.Use(middleware.RequireIdentity)
			r.Post("/apply", recruiterHandler.Apply)
			r.Post("/requests/{requestID}/approve", recruiterHandler.Approve)
			r.Post("/requests/{requestID}/reject", recruiterHandler.Reject)
		})

		r.Route("/jobs", func(r chi.Router) {
			r.Get("/{jobID}", jobHandler.Get)
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireIdentity)
				r.Post("/", jobHandler.Create)
				r.Post("/{jobID}/apply", jobHandler.Apply)
			})
		})

		r.Route("/notifications", func(r chi.Router) {
			r.Use(middleware.RequireIdentity)
			r.Get("/", notificationHandler.List)
			r.Post("/{notificationID}/read", notificationHandler.MarkRead)
		})
	})

	return r
}

func setupMiddleware(r *chi.Mux, cfg *config.Config, jwtService *utils.JWTService) {
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Recovery)
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	r.Use(chimiddleware.Timeout(30 * time.Second))
	r.Use(chimiddleware.Compress(5))
	r.Use(middleware.ContentTypeJSON)
	r.Use(middleware.Authenticate(jwtService))
	r.Use(middleware.RequestLogger)

	if cfg.IsDevelopment() {
		r.Use(chimiddleware.Heartbeat("/ping"))
	}

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		utils.WriteNotFoundResponse(w, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		utils.WriteErrorResponseWithCode(w, http.StatusMethodNotAllowed,
			"METHOD_NOT_ALLOWED", "Method not allowed", "")
	})
}
