// Package router assembles the HTTP surface: the public enquiry
// endpoints the marketing site calls and the JWT-protected admin
// triage endpoints.
package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/meridianfx/enquiries-api/internal/countries"
	"github.com/meridianfx/enquiries-api/internal/enquiries"
	httpmiddleware "github.com/meridianfx/enquiries-api/internal/http/middleware"
	"github.com/meridianfx/enquiries-api/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger           *logging.Logger
	EnquiriesHandler *enquiries.Handler
	CountriesHandler *countries.Handler
	AdminHandler     *enquiries.AdminHandler

	AdminAuthSecret    string
	MetricsHandler     http.Handler
	CORSAllowedOrigins []string

	// Public rate limit, requests/sec per IP.
	RateLimitPerSecond float64
	RateLimitBurst     int
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	r.Get("/health", healthCheck)
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	// Public endpoints, rate limited per IP.
	r.Group(func(public chi.Router) {
		if cfg.RateLimitPerSecond > 0 {
			public.Use(httpmiddleware.RateLimit(cfg.RateLimitPerSecond, cfg.RateLimitBurst))
		}
		if cfg.EnquiriesHandler != nil {
			public.Post("/enquiries", cfg.EnquiriesHandler.SubmitEnquiry)
		}
		if cfg.CountriesHandler != nil {
			public.Get("/countries", cfg.CountriesHandler.List)
			public.Get("/countries/resolve", cfg.CountriesHandler.Resolve)
		}
	})

	// Admin triage routes, protected by HMAC JWT.
	if cfg.AdminHandler != nil && cfg.AdminAuthSecret != "" {
		r.Route("/admin", func(admin chi.Router) {
			admin.Use(httpmiddleware.AdminJWT(cfg.AdminAuthSecret))
			admin.Get("/enquiries", cfg.AdminHandler.List)
			admin.Post("/enquiries/{id}/resolve", cfg.AdminHandler.Resolve)
			admin.Post("/enquiries/export", cfg.AdminHandler.Export)
		})
	}

	return r
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
