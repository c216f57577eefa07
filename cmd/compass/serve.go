package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/CampusPulse/Compass/internal/api"
	"github.com/CampusPulse/Compass/internal/config"
	"github.com/CampusPulse/Compass/internal/events"
	"github.com/CampusPulse/Compass/internal/reporter"
	"github.com/CampusPulse/Compass/internal/scoring"
	"github.com/CampusPulse/Compass/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the scoring API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	},
}

func runServe(cmd *cobra.Command) error {
	configPath, _ := cmd.Flags().GetString("config")

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := newLogger(cfg.Logging)
	slog.SetDefault(logger)

	engine, err := engineFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("build scoring engine: %w", err)
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	// Ledger: Postgres when configured, in-memory otherwise
	var ledger store.Ledger
	if cfg.Database.URL != "" {
		pg, err := store.NewPostgresLedger(ctx, cfg.Database.URL)
		if err != nil {
			return fmt.Errorf("connect to database: %w", err)
		}
		ledger = pg
		logger.Info("connected to database")
	} else {
		ledger = store.NewMemoryLedger()
		logger.Info("using in-memory ledger, history will not survive a restart")
	}
	defer ledger.Close()

	// Event broker (optional)
	var eventsClient events.Client
	if cfg.Events.URL != "" {
		nc, err := events.NewNATSClient(ctx, cfg.Events.URL, logger)
		if err != nil {
			logger.Warn("failed to connect to event broker, running without events", "error", err)
		} else {
			eventsClient = nc
			defer nc.Close()
			logger.Info("connected to event broker")
		}
	}

	// Stats reporter only makes sense with a broker to publish to
	if eventsClient != nil {
		rep := reporter.New(ledger, eventsClient, cfg.StatsInterval(), logger)
		rep.Start(ctx)
		defer rep.Stop()
		logger.Info("stats reporter started", "interval", cfg.StatsInterval())
	}

	// API server
	router := api.NewRouter(ledger, engine, eventsClient, cfg.Server.AdminToken, logger)
	apiServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	// Metrics server
	metricsRouter := api.NewMetricsRouter()
	metricsServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.MetricsPort),
		Handler: metricsRouter,
	}

	go func() {
		logger.Info("API server starting", "port", cfg.Server.Port)
		if err := apiServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("API server error", "error", err)
		}
	}()

	go func() {
		logger.Info("metrics server starting", "port", cfg.Server.MetricsPort)
		if err := metricsServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("metrics server error", "error", err)
		}
	}()

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Info("shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	_ = apiServer.Shutdown(shutdownCtx)
	_ = metricsServer.Shutdown(shutdownCtx)

	logger.Info("shutdown complete")
	return nil
}

func engineFromConfig(cfg *config.Config) (*scoring.Engine, error) {
	return scoring.NewEngine(scoring.Config{
		Schema: scoring.Schema(cfg.Scoring.Metrics),
		Weights: scoring.CategoryWeights{
			Academic: cfg.Scoring.Weights.Academic,
			Wellness: cfg.Scoring.Weights.Wellness,
			Support:  cfg.Scoring.Weights.Support,
		},
		Tiers: scoring.TierThresholds{
			Low:      cfg.Scoring.Tiers.Low,
			Moderate: cfg.Scoring.Tiers.Moderate,
			High:     cfg.Scoring.Tiers.High,
		},
		HealthyThreshold:   cfg.Scoring.HealthyThreshold,
		MaxRecommendations: cfg.Scoring.MaxRecommendations,
	})
}

func newLogger(cfg config.LoggingConfig) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "text" {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}
