package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/JITHIN-Ji/swakarthi-measurement-prediction/internal/application/assistant"
	"github.com/JITHIN-Ji/swakarthi-measurement-prediction/internal/infrastructure/monitoring/logging"
	"github.com/JITHIN-Ji/swakarthi-measurement-prediction/internal/infrastructure/monitoring/metrics"
	apperrors "github.com/JITHIN-Ji/swakarthi-measurement-prediction/pkg/errors"
)

// AssistantHandler serves the FAQ chatbot endpoint.
type AssistantHandler struct {
	service *assistant.Service
	logger  logging.Logger
	metrics *metrics.Metrics
}

// NewAssistantHandler constructs an AssistantHandler.  metrics may be nil.
func NewAssistantHandler(service *assistant.Service, logger logging.Logger, m *metrics.Metrics) *AssistantHandler {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &AssistantHandler{
		service: service,
		logger:  logger.Named("http.assistant"),
		metrics: m,
	}
}

type assistantResponse struct {
	Success  bool   `json:"success"`
	Response string `json:"response"`
}

// Answer handles POST /faq-chatbot.
func (h *AssistantHandler) Answer(w http.ResponseWriter, r *http.Request) {
	body, err := decodeBody(r)
	if err != nil {
		h.count("error")
		writeAppError(w, err)
		return
	}

	raw, ok := body["message"]
	if !ok {
		h.count("error")
		writeAppError(w, apperrors.Validation("Please provide a 'message' field in the request body"))
		return
	}
	var message string
	if err := json.Unmarshal(raw, &message); err != nil {
		h.count("error")
		writeAppError(w, apperrors.Validation("Message cannot be empty"))
		return
	}

	reply, err := h.service.Answer(r.Context(), message)
	if err != nil {
		h.count("error")
		writeAppError(w, err)
		return
	}

	h.count("success")
	writeJSON(w, http.StatusOK, assistantResponse{Success: true, Response: reply})
}

func (h *AssistantHandler) count(result string) {
	if h.metrics != nil {
		h.metrics.AssistantRequests.WithLabelValues(result).Inc()
	}
}
