package ledger

import (
	"context"

	"github.com/jonesrussell/lead-intake/internal/logger"
	"github.com/jonesrussell/lead-intake/internal/models"
)

// NoopLedger substitutes for the sheet when credentials are absent or
// invalid. It logs instead of writing and never fails, so the intake
// endpoint stays functional with persistence degraded to log-only.
type NoopLedger struct {
	logger logger.Logger
}

func NewNoopLedger(log logger.Logger) *NoopLedger {
	return &NoopLedger{logger: log}
}

func (l *NoopLedger) AppendLead(_ context.Context, record models.LeadRecord) error {
	l.logger.Info("Ledger disabled, lead not persisted",
		logger.String("lead_id", record["lead_id"]),
	)
	l.logger.Debug("Dropped lead row",
		logger.String("company", record["company"]),
		logger.String("contact_name", record["contact_name"]),
	)
	return nil
}

func (l *NoopLedger) GetLeadByID(_ context.Context, _ string) (models.LeadRecord, error) {
	return nil, ErrNotFound
}
