// Package leadid generates short, human-shareable lead identifiers.
package leadid

import (
	"encoding/hex"
	"strings"

	"github.com/google/uuid"
)

const prefix = "LEAD-"

// New returns an identifier of the form LEAD-XXXXXXXX (8 uppercase hex
// characters). Identifiers are random, not sequential, and unique enough for
// human reference across the ledger row and notification emails; they are not
// cryptographically unique.
func New() string {
	id := uuid.New()
	return prefix + strings.ToUpper(hex.EncodeToString(id[:4]))
}
