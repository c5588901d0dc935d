package bootstrap

import (
	"context"

	"github.com/jonesrussell/lead-intake/internal/config"
	"github.com/jonesrussell/lead-intake/internal/extract"
	"github.com/jonesrussell/lead-intake/internal/intake"
	"github.com/jonesrussell/lead-intake/internal/ledger"
	"github.com/jonesrussell/lead-intake/internal/logger"
	"github.com/jonesrussell/lead-intake/internal/models"
	"github.com/jonesrussell/lead-intake/internal/notify"
	"github.com/jonesrussell/lead-intake/internal/transcribe"
)

// Capabilities holds the external service handles, constructed once at
// startup and injected everywhere they are needed.
type Capabilities struct {
	Extractor   intake.Extractor
	Ledger      ledger.Ledger
	Notifier    notify.Notifier
	Transcriber transcribe.Transcriber
}

// SetupCapabilities builds each capability, substituting a degraded
// implementation when its credentials are absent or invalid. The service
// stays functional without live external accounts: extraction falls back to
// the deterministic summary, persistence degrades to log-only, emails are
// skipped.
func SetupCapabilities(ctx context.Context, cfg *config.Config, log logger.Logger) *Capabilities {
	caps := &Capabilities{}

	if client, err := extract.NewClient(cfg.LLM.APIKey, cfg.LLM.Model, cfg.LLM.Timeout); err != nil {
		log.Warn("Extraction model not configured - every lead will use the fallback summary",
			logger.Error(err),
		)
		caps.Extractor = unavailableExtractor{err: err}
	} else {
		caps.Extractor = client
	}

	credentials := cfg.GoogleCredentialsJSON()

	switch {
	case credentials == nil:
		log.Warn("Google Sheets not configured - using log-only ledger")
		caps.Ledger = ledger.NewNoopLedger(log)
	case cfg.Google.SheetID == "":
		log.Warn("Google Sheet ID not configured - using log-only ledger")
		caps.Ledger = ledger.NewNoopLedger(log)
	default:
		if l, err := ledger.NewSheetsLedger(ctx, credentials, cfg.Google.SheetID, log); err != nil {
			log.Warn("Failed to create Sheets ledger - using log-only ledger",
				logger.Error(err),
			)
			caps.Ledger = ledger.NewNoopLedger(log)
		} else {
			caps.Ledger = l
		}
	}

	if credentials == nil {
		log.Warn("Email not configured - notifications will be skipped")
		caps.Notifier = notify.NewNoopNotifier(log)
	} else {
		if n, err := notify.NewGmailNotifier(ctx, credentials, cfg.Email.NotificationEmail, cfg.Email.FromEmail, log); err != nil {
			log.Warn("Failed to create Gmail notifier - notifications will be skipped",
				logger.Error(err),
			)
			caps.Notifier = notify.NewNoopNotifier(log)
		} else {
			caps.Notifier = n
		}
	}

	if t, err := transcribe.NewWhisperTranscriber(cfg.LLM.OpenAIAPIKey); err != nil {
		log.Warn("Transcription not configured - /transcribe will fail",
			logger.Error(err),
		)
		caps.Transcriber = unavailableTranscriber{err: err}
	} else {
		caps.Transcriber = t
	}

	return caps
}

// unavailableExtractor reports the configuration error on every call so the
// orchestrator's fallback path handles it like any other extraction failure.
type unavailableExtractor struct {
	err error
}

func (u unavailableExtractor) Extract(context.Context, string, string) (*models.Extraction, error) {
	return nil, u.err
}

type unavailableTranscriber struct {
	err error
}

func (u unavailableTranscriber) Transcribe(_ context.Context, audio []byte, _ string) (string, error) {
	// Input validation still applies so clients get 400/413 rather than 500.
	if err := transcribe.ValidateSize(len(audio)); err != nil {
		return "", err
	}
	return "", u.err
}
