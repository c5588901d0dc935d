// Package bootstrap handles application initialization and lifecycle
// management for the lead-intake service.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/jonesrussell/lead-intake/internal/api"
	"github.com/jonesrussell/lead-intake/internal/handlers"
	"github.com/jonesrussell/lead-intake/internal/intake"
	"github.com/jonesrussell/lead-intake/internal/logger"
	"github.com/jonesrussell/lead-intake/internal/metrics"
)

const version = "1.0.0"

// Start initializes and starts the lead-intake application.
func Start() error {
	// Phase 1: Load config and create logger
	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := CreateLogger(cfg, version)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("Lead intake service starting",
		logger.Strings("allowed_origins", cfg.Server.CORSOrigins),
		logger.Bool("api_key_gate", cfg.APIKey != ""),
	)

	// Phase 2: Construct the external capability handles once, up front.
	// Missing credentials degrade individual capabilities, never startup.
	caps := SetupCapabilities(context.Background(), cfg, log)

	// Phase 3: Wire the workflow and HTTP surface
	m := metrics.New()
	service := intake.NewService(
		caps.Extractor,
		caps.Ledger,
		caps.Notifier,
		cfg.Email.NotificationEmail,
		cfg.Email.AdminEmails,
		m,
		log,
	)

	router := api.NewRouter(cfg, api.Handlers{
		Lead:       handlers.NewLeadHandler(service, caps.Ledger, log),
		Transcribe: handlers.NewTranscribeHandler(caps.Transcriber, log),
	}, m, version, log)

	// Phase 4: Run until signaled
	if err := RunServer(cfg, router, log); err != nil {
		log.Error("Server error", logger.Error(err))
		return fmt.Errorf("server error: %w", err)
	}

	log.Info("Server exited")
	return nil
}
