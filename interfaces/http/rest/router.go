package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"trustnet-backend/infrastructure/config"
	"trustnet-backend/interfaces/http/rest/handlers"
	"trustnet-backend/interfaces/http/rest/middleware"
	"trustnet-backend/pkg/auth"
)

// Router creates and configures the HTTP router
type Router struct {
	cfg       *config.Config
	validator *auth.JWTValidator
	threats   *handlers.ThreatHandler
	users     *handlers.UserHandler
	articles  *handlers.ArticleHandler
	reports   *handlers.ReportHandler
	dashboard *handlers.DashboardHandler
	media     *handlers.MediaHandler
	logger    *zap.Logger
}

// NewRouter creates a new router instance
func NewRouter(
	cfg *config.Config,
	validator *auth.JWTValidator,
	threats *handlers.ThreatHandler,
	users *handlers.UserHandler,
	articles *handlers.ArticleHandler,
	reports *handlers.ReportHandler,
	dashboard *handlers.DashboardHandler,
	media *handlers.MediaHandler,
	logger *zap.Logger,
) *Router {
	return &Router{
		cfg:       cfg,
		validator: validator,
		threats:   threats,
		users:     users,
		articles:  articles,
		reports:   reports,
		dashboard: dashboard,
		media:     media,
		logger:    logger,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger))

	if rt.cfg.EnableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"http://localhost:3000", "https://*.trustnet.app"},
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	// Health check
	router.Get("/health", rt.healthCheck)
	router.Get("/ready", rt.readinessCheck)

	router.Route("/api/v1", func(r chi.Router) {
		// Public routes
		r.Post("/auth/register", rt.users.Register)
		r.Post("/auth/login", rt.users.Login)

		// Authenticated routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(rt.validator, rt.logger))

			r.Route("/threats", func(r chi.Router) {
				r.Post("/", rt.threats.Create)
				r.Get("/", rt.threats.List)
				r.Get("/mine", rt.threats.ListMine)
				r.Get("/{threatID}", rt.threats.Get)
				r.Put("/{threatID}", rt.threats.Update)
				r.Delete("/{threatID}", rt.threats.Delete)
				r.Post("/{threatID}/like", rt.threats.Like)
				r.Delete("/{threatID}/like", rt.threats.Unlike)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireAdmin())
					r.Post("/{threatID}/status", rt.threats.ToggleStatus)
				})
			})

			r.Route("/users", func(r chi.Router) {
				r.Get("/me", rt.users.Me)
				r.Get("/{userID}", rt.users.Get)
				r.Put("/{userID}", rt.users.Update)
				r.Delete("/{userID}", rt.users.Delete)
			})

			r.Route("/articles", func(r chi.Router) {
				r.Post("/", rt.articles.Create)
				r.Get("/", rt.articles.List)
				r.Get("/{articleID}", rt.articles.Get)
				r.Put("/{articleID}", rt.articles.Update)
				r.Delete("/{articleID}", rt.articles.Delete)
			})

			r.Route("/reports", func(r chi.Router) {
				r.Post("/", rt.reports.Create)
				r.Get("/", rt.reports.List)
				r.Get("/{reportID}", rt.reports.Get)
				r.Put("/{reportID}", rt.reports.Update)
				r.Delete("/{reportID}", rt.reports.Delete)
			})

			r.Post("/media/presign", rt.media.Presign)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAdmin())
				r.Get("/dashboard/stats", rt.dashboard.Stats)
			})
		})
	})

	return router
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}

// readinessCheck handles readiness check requests
func (rt *Router) readinessCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ready"}`))
}
