package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"shipment-dashboard/internal/config"
	"shipment-dashboard/internal/copilot"
	"shipment-dashboard/internal/middleware"
	"shipment-dashboard/internal/observability"
	"shipment-dashboard/internal/server"
	"shipment-dashboard/internal/services"
	"shipment-dashboard/internal/ui/templates"
)

const (
	renderTimeout   = 10 * time.Second
	datasetTimeout  = 30 * time.Second
	pageCacheMaxAge = "public, max-age=300"
)

func handleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), renderTimeout)
	defer cancel()

	w.Header().Set("Cache-Control", pageCacheMaxAge)
	if err := templates.Dashboard().Render(ctx, w); err != nil {
		http.Error(w, "render error", http.StatusInternalServerError)
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.Logger)
	slog.SetDefault(logger)

	logger.Info("starting application",
		"version", "1.0.0",
		"config", cfg,
	)

	shipments := services.NewShipments()
	ctx, cancel := context.WithTimeout(context.Background(), datasetTimeout)
	defer cancel()

	start := time.Now()
	if cfg.Dataset.CSVURL != "" {
		err = shipments.LoadFromURL(ctx, cfg.Dataset.CSVURL)
	} else {
		err = shipments.LoadFromCSV(ctx, cfg.Dataset.CSVFile)
	}
	if err != nil {
		logger.Error("failed to load shipment dataset", "error", err)
		os.Exit(1)
	}
	logger.Info("shipment dataset loaded", "duration", time.Since(start))

	if cfg.Dataset.PredictionsFile != "" {
		if err := shipments.LoadPredictions(ctx, cfg.Dataset.PredictionsFile); err != nil {
			// The risk panel degrades to an empty tally without predictions.
			logger.Warn("failed to load predictions", "error", err)
		}
	}

	copilotClient := copilot.NewClient(cfg.Copilot.BaseURL, cfg.Copilot.Timeout, logger)
	if !copilotClient.Enabled() {
		logger.Info("copilot service not configured, /api/copilot will return 503")
	}

	templateHandlers := &server.TemplateHandlers{
		Dashboard: handleDashboard,
	}

	srv := server.NewServer(shipments, copilotClient, logger, templateHandlers)

	rateLimiter := middleware.NewRateLimiter(cfg.Security)

	middlewareChain := middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.Tracing(),
		middleware.SecurityHeaders(),
		middleware.CORS(cfg.Security),
		middleware.TrustedProxy(cfg.Security),
		middleware.RateLimit(rateLimiter, logger),
	)

	handler := middlewareChain(srv)

	httpServer := &http.Server{
		Addr:         cfg.Address(),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	gracefulServer := server.NewGracefulServer(httpServer, logger, cfg)

	gracefulServer.RegisterShutdownHook(func(ctx context.Context) error {
		logger.Info("shutting down shipment metrics service")
		return nil
	})

	if err := gracefulServer.ListenAndServe(); err != nil {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}

	logger.Info("application stopped gracefully")
}
