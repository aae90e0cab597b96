package dbrepo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextDocumentNumberFirstOfYear(t *testing.T) {
	got := NextDocumentNumber("INV-2026-", nil)
	assert.Equal(t, "INV-2026-001", got)
}

func TestNextDocumentNumberIncrementsMax(t *testing.T) {
	existing := []string{"INV-2026-001", "INV-2026-003", "INV-2026-002"}
	got := NextDocumentNumber("INV-2026-", existing)
	assert.Equal(t, "INV-2026-004", got)
}

func TestNextDocumentNumberIgnoresOtherYears(t *testing.T) {
	existing := []string{"INV-2025-045", "INV-2025-046"}
	got := NextDocumentNumber("INV-2026-", existing)
	assert.Equal(t, "INV-2026-001", got)
}

func TestNextDocumentNumberMalformedSuffix(t *testing.T) {
	existing := []string{"INV-2026-001", "INV-2026-XYZ"}
	got := NextDocumentNumber("INV-2026-", existing)
	assert.Equal(t, "INV-2026-001", got)
}

func TestNextDocumentNumberWideSuffix(t *testing.T) {
	existing := []string{"PUR-2026-999"}
	assert.Equal(t, "PUR-2026-1000", NextDocumentNumber("PUR-2026-", existing))

	existing = []string{"PUR-2026-1000"}
	assert.Equal(t, "PUR-2026-1001", NextDocumentNumber("PUR-2026-", existing))
}

func TestNextDocumentNumberMonotonic(t *testing.T) {
	prefix := "INV-2026-"
	var existing []string
	prev := ""
	for i := 0; i < 50; i++ {
		next := NextDocumentNumber(prefix, existing)
		if prev != "" && next <= prev {
			t.Fatalf("sequence not increasing: %s after %s", next, prev)
		}
		existing = append(existing, next)
		prev = next
	}
}

func TestDocumentPrefix(t *testing.T) {
	assert.Equal(t, "INV-2026-", DocumentPrefix("INV", 2026))
	assert.Equal(t, "PUR-2024-", DocumentPrefix("PUR", 2024))
}
