// Package ledger persists lead records to the append-only spreadsheet that
// acts as the system of record.
package ledger

import (
	"context"
	"errors"

	"github.com/jonesrussell/lead-intake/internal/models"
)

// ErrNotFound is returned by lookups when no row matches the lead identifier.
// Lookup failures are deliberately indistinguishable from real absence; the
// lookup is best-effort.
var ErrNotFound = errors.New("lead not found")

// Ledger appends lead records and looks them up by identifier.
//
// AppendLead failures are fatal to the intake workflow: if the row is not
// written the lead has no durable record, so callers must not report success.
// GetLeadByID is best-effort.
type Ledger interface {
	AppendLead(ctx context.Context, record models.LeadRecord) error
	GetLeadByID(ctx context.Context, leadID string) (models.LeadRecord, error)
}
