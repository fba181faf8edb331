package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"shipment-dashboard/internal/copilot"
	"shipment-dashboard/internal/errors"
	"shipment-dashboard/internal/observability"
	"shipment-dashboard/internal/services"
)

const (
	maxRouteRows = 20
	maxSKURows   = 20
)

type APIHandlers struct {
	shipments *services.Shipments
	copilot   *copilot.Client
	logger    *slog.Logger
}

func NewAPIHandlers(shipments *services.Shipments, copilotClient *copilot.Client, logger *slog.Logger) *APIHandlers {
	return &APIHandlers{
		shipments: shipments,
		copilot:   copilotClient,
		logger:    logger,
	}
}

var cacheHeaders = map[string]string{
	"Cache-Control": "public, max-age=300",
}

// HandleSummary serves the full metrics snapshot, route and SKU maps included.
func (h *APIHandlers) HandleSummary(w http.ResponseWriter, r *http.Request) {
	errors.WriteSuccessWithHeaders(w, h.shipments.Metrics(), cacheHeaders)
}

func (h *APIHandlers) HandleRouteDelays(w http.ResponseWriter, r *http.Request) {
	errors.WriteSuccessWithHeaders(w, h.shipments.TopRouteDelays(maxRouteRows), cacheHeaders)
}

func (h *APIHandlers) HandleSKUDelays(w http.ResponseWriter, r *http.Request) {
	errors.WriteSuccessWithHeaders(w, h.shipments.TopSKUDelays(maxSKURows), cacheHeaders)
}

func (h *APIHandlers) HandlePredictions(w http.ResponseWriter, r *http.Request) {
	errors.WriteSuccessWithHeaders(w, h.shipments.Predictions(), cacheHeaders)
}

func (h *APIHandlers) HandleRiskSummary(w http.ResponseWriter, r *http.Request) {
	errors.WriteSuccessWithHeaders(w, h.shipments.RiskSummary(), cacheHeaders)
}

// HandleCopilotQuery forwards a chat question to the external query service.
func (h *APIHandlers) HandleCopilotQuery(w http.ResponseWriter, r *http.Request) {
	requestID := observability.GetRequestID(r.Context())

	var req copilot.QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errors.WriteError(w, h.logger, errors.BadRequestWrap(err, "invalid copilot request body"), requestID)
		return
	}

	resp, err := h.copilot.Ask(r.Context(), req)
	if err != nil {
		errors.WriteError(w, h.logger, err, requestID)
		return
	}

	errors.WriteSuccess(w, resp)
}

func (h *APIHandlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	healthData := map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"version":   "1.0.0",
	}

	errors.WriteSuccess(w, healthData)
}

func (h *APIHandlers) HandleStats(w http.ResponseWriter, r *http.Request) {
	errors.WriteSuccess(w, h.shipments.Stats())
}
