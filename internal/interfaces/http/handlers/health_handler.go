package handlers

import (
	"net/http"

	appMeas "github.com/JITHIN-Ji/swakarthi-measurement-prediction/internal/application/measurement"
	"github.com/JITHIN-Ji/swakarthi-measurement-prediction/internal/infrastructure/monitoring/logging"
)

// HealthHandler serves the service-status endpoints.
type HealthHandler struct {
	service          appMeas.Service
	measurementsFile string
	logger           logging.Logger
}

// NewHealthHandler constructs a HealthHandler.  measurementsFile is the
// storage location reported in the status payload.
func NewHealthHandler(service appMeas.Service, measurementsFile string, logger logging.Logger) *HealthHandler {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &HealthHandler{
		service:          service,
		measurementsFile: measurementsFile,
		logger:           logger.Named("http.health"),
	}
}

type healthResponse struct {
	Status           string `json:"status"`
	ModelLoaded      bool   `json:"model_loaded"`
	TotalUsers       int    `json:"total_users"`
	MeasurementsFile string `json:"measurements_file"`
}

// Status handles GET /health.
func (h *HealthHandler) Status(w http.ResponseWriter, r *http.Request) {
	health, err := h.service.Health(r.Context())
	if err != nil {
		writeAppError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, healthResponse{
		Status:           "healthy",
		ModelLoaded:      health.ModelLoaded,
		TotalUsers:       health.TotalUsers,
		MeasurementsFile: h.measurementsFile,
	})
}

// Liveness handles GET /healthz.  It answers as long as the process serves
// requests.
func (h *HealthHandler) Liveness(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Readiness handles GET /readyz.  The service is ready once the predictor is
// loaded and the store answers.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	health, err := h.service.Health(r.Context())
	if err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	if !health.ModelLoaded {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "model not loaded"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
