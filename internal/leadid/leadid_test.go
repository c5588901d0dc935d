package leadid_test

import (
	"regexp"
	"testing"

	"github.com/jonesrussell/lead-intake/internal/leadid"
	"github.com/stretchr/testify/assert"
)

func TestNew_Format(t *testing.T) {
	pattern := regexp.MustCompile(`^LEAD-[0-9A-F]{8}$`)

	for i := 0; i < 100; i++ {
		id := leadid.New()
		assert.Regexp(t, pattern, id)
	}
}

func TestNew_Distinct(t *testing.T) {
	seen := make(map[string]bool)

	for i := 0; i < 1000; i++ {
		id := leadid.New()
		assert.False(t, seen[id], "duplicate identifier %s", id)
		seen[id] = true
	}
}
