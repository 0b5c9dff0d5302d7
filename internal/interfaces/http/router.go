// Package http wires the chi router, middleware chain and HTTP server for the
// measurement service.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/JITHIN-Ji/swakarthi-measurement-prediction/internal/infrastructure/monitoring/logging"
	"github.com/JITHIN-Ji/swakarthi-measurement-prediction/internal/infrastructure/monitoring/metrics"
	"github.com/JITHIN-Ji/swakarthi-measurement-prediction/internal/interfaces/http/handlers"
	"github.com/JITHIN-Ji/swakarthi-measurement-prediction/internal/interfaces/http/middleware"
)

// RouterConfig carries everything the router needs.  Assistant and Metrics
// are optional; their routes are omitted when nil.
type RouterConfig struct {
	Measurement *handlers.MeasurementHandler
	Health      *handlers.HealthHandler
	Assistant   *handlers.AssistantHandler
	Logger      logging.Logger
	Metrics     *metrics.Metrics
	CORS        middleware.CORSConfig
}

// NewRouter assembles the middleware chain and routes.
func NewRouter(cfg RouterConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestLogging(logger, cfg.Metrics, "/healthz", "/readyz", "/metrics"))
	r.Use(middleware.CORS(cfg.CORS))

	r.Get("/health", cfg.Health.Status)
	r.Get("/healthz", cfg.Health.Liveness)
	r.Get("/readyz", cfg.Health.Readiness)

	r.Post("/predict-measurements", cfg.Measurement.Predict)
	r.Put("/update-measurements", cfg.Measurement.Update)
	r.Get("/get-measurements/{parent_id}/{child_id}", cfg.Measurement.Get)

	if cfg.Assistant != nil {
		r.Post("/faq-chatbot", cfg.Assistant.Answer)
	}

	if cfg.Metrics != nil {
		r.Handle("/metrics", cfg.Metrics.Handler())
	}

	return r
}
