package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/rs/cors"

	"github.com/neexbeast/travelviz/internal/metrics"
)

// RouterConfig carries the cross-cutting settings of the router.
// RequestsPerMinute <= 0 uses 60. Metrics instruments every route when set,
// and MetricsHandler is served at /metrics behind MetricsToken. HandlerTimeout
// cancels a request's context after that long; zero disables it.
type RouterConfig struct {
	RequestsPerMinute int
	AllowedOrigins    []string
	Metrics           *metrics.HTTP
	MetricsHandler    http.Handler
	MetricsToken      string
	Health            http.HandlerFunc
	HandlerTimeout    time.Duration
	SecureCookies     bool
}

// NewRouter builds and returns the Chi router with all routes configured.
// Health and metrics sit outside the identity cookies; page GETs record a view.
func NewRouter(h *Handlers, cfg RouterConfig, log *slog.Logger) *chi.Mux {
	limit := cfg.RequestsPerMinute
	if limit <= 0 {
		limit = 60
	}

	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler)
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware)
	}
	r.Use(httprate.LimitByIP(limit, time.Minute))
	if cfg.HandlerTimeout > 0 {
		r.Use(middleware.Timeout(cfg.HandlerTimeout))
	}

	if cfg.Health != nil {
		r.Get("/api/v1/health", cfg.Health)
	}
	if cfg.MetricsHandler != nil {
		r.With(BearerAuth(cfg.MetricsToken)).Handle("/metrics", cfg.MetricsHandler)
	}

	prefs := h.pages.Preferences
	r.Group(func(r chi.Router) {
		r.Use(Identity(cfg.SecureCookies))

		r.Post("/api/v1/upload", h.Upload)
		r.Delete("/api/v1/upload", h.ClearUpload)
		r.Get("/api/v1/upload/progress", h.UploadProgress)
		r.With(PageView(prefs, "upload")).Get("/api/v1/upload/recent", h.RecentUpload)

		r.With(PageView(prefs, "destinations")).Get("/api/v1/destinations", h.Destinations)
		r.Post("/api/v1/destinations/{id}/visualize", h.Visualize)

		r.With(PageView(prefs, "visualizations")).Get("/api/v1/visualizations", h.Visualizations)

		r.Post("/api/v1/recommendations", h.Recommendations)
		r.Get("/api/v1/recommendations/itinerary.pdf", h.ItineraryPDF)

		r.Post("/api/v1/images", h.Images)

		r.Get("/api/v1/suggestions", h.Suggestions)
		r.Post("/api/v1/bookings/search", h.SearchBookings)

		r.Get("/api/v1/preferences", h.GetPreferences)
		r.Put("/api/v1/preferences", h.PutPreferences)

		r.Get("/api/v1/analytics", h.Analytics)
		r.Delete("/api/v1/analytics", h.ClearAnalytics)
		r.Post("/api/v1/events", h.TrackEvent)
	})

	log.Debug("router configured", "rate_limit_per_min", limit, "cors_origins", len(cfg.AllowedOrigins))
	return r
}

// Ensure chi.Mux implements http.Handler.
var _ http.Handler = (*chi.Mux)(nil)
