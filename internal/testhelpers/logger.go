package testhelpers

import (
	"github.com/jonesrussell/lead-intake/internal/logger"
)

// NewTestLogger returns a logger that discards output.
func NewTestLogger() logger.Logger {
	return logger.NewNopLogger()
}
