package server

import (
	"log/slog"
	"net/http"

	"shipment-dashboard/internal/copilot"
	"shipment-dashboard/internal/handlers"
	"shipment-dashboard/internal/services"
)

type Server struct {
	shipments   *services.Shipments
	mux         *http.ServeMux
	logger      *slog.Logger
	apiHandlers *handlers.APIHandlers
	sseHandlers *handlers.SSEHandlers
}

type TemplateHandlers struct {
	Dashboard http.HandlerFunc
}

func NewServer(shipments *services.Shipments, copilotClient *copilot.Client, logger *slog.Logger, templateHandlers *TemplateHandlers) *Server {
	s := &Server{
		shipments:   shipments,
		mux:         http.NewServeMux(),
		logger:      logger,
		apiHandlers: handlers.NewAPIHandlers(shipments, copilotClient, logger),
		sseHandlers: handlers.NewSSEHandlers(shipments, logger),
	}
	s.setupRoutes(templateHandlers)
	return s
}

func (s *Server) setupRoutes(templateHandlers *TemplateHandlers) {
	// Dashboard routes. The page is pinned to the exact root path so
	// requests for unregistered paths fall through to 404 instead of
	// being served the dashboard shell.
	s.mux.HandleFunc("GET /{$}", templateHandlers.Dashboard)
	s.mux.HandleFunc("GET /health", s.apiHandlers.HandleHealth)
	s.mux.HandleFunc("GET /admin/stats", s.apiHandlers.HandleStats)

	// REST API endpoints
	s.mux.HandleFunc("GET /api/summary", s.apiHandlers.HandleSummary)
	s.mux.HandleFunc("GET /api/route-delays", s.apiHandlers.HandleRouteDelays)
	s.mux.HandleFunc("GET /api/sku-delays", s.apiHandlers.HandleSKUDelays)
	s.mux.HandleFunc("GET /api/predictions", s.apiHandlers.HandlePredictions)
	s.mux.HandleFunc("GET /api/risk-summary", s.apiHandlers.HandleRiskSummary)
	s.mux.HandleFunc("POST /api/copilot", s.apiHandlers.HandleCopilotQuery)

	// Datastar SSE endpoints
	s.mux.HandleFunc("GET /sse/summary", s.sseHandlers.HandleSummary)
	s.mux.HandleFunc("GET /sse/route-delays", s.sseHandlers.HandleRouteDelays)
	s.mux.HandleFunc("GET /sse/sku-delays", s.sseHandlers.HandleSKUDelays)
	s.mux.HandleFunc("GET /sse/risk-summary", s.sseHandlers.HandleRiskSummary)
	s.mux.HandleFunc("GET /sse/refresh-all", s.sseHandlers.HandleRefreshAll)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}
