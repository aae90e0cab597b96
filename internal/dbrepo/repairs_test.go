package dbrepo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/voltedge/workshop-api/internal/models"
)

func mustDate(t *testing.T, value string) time.Time {
	t.Helper()
	d, err := time.Parse(dateLayout, value)
	if err != nil {
		t.Fatalf("parse date %q: %v", value, err)
	}
	return d
}

func TestComputeIsLate(t *testing.T) {
	tests := []struct {
		name      string
		due       string
		completed string
		want      int
	}{
		{"on due date", "2025-01-10", "2025-01-10", 0},
		{"day after", "2025-01-10", "2025-01-11", 1},
		{"before due", "2025-01-10", "2025-01-09", 0},
		{"empty due date", "", "2025-01-11", 0},
		{"garbage due date", "soon", "2025-01-11", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := computeIsLate(tt.due, mustDate(t, tt.completed))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPartsDeltaFirstSave(t *testing.T) {
	current := []models.RepairPart{
		{ItemID: 1, Qty: 2},
		{ItemID: 2, Qty: 1},
	}
	delta := partsDelta(nil, current)

	assert.Len(t, delta, 2)
	assert.Equal(t, int64(2), delta[0].Qty)
	assert.Equal(t, int64(1), delta[1].Qty)
}

func TestPartsDeltaRepeatedSaveDeductsNothing(t *testing.T) {
	parts := []models.RepairPart{{ItemID: 1, Qty: 2}, {ItemID: 2, Qty: 1}}
	delta := partsDelta(parts, parts)
	assert.Empty(t, delta)
}

func TestPartsDeltaOnlyIncrease(t *testing.T) {
	already := []models.RepairPart{{ItemID: 1, Qty: 2}}
	current := []models.RepairPart{
		{ItemID: 1, Qty: 3}, // one more than before
		{ItemID: 2, Qty: 1}, // new part
	}
	delta := partsDelta(already, current)

	assert.Len(t, delta, 2)
	assert.Equal(t, int64(1), delta[0].ItemID)
	assert.Equal(t, int64(1), delta[0].Qty)
	assert.Equal(t, int64(2), delta[1].ItemID)
	assert.Equal(t, int64(1), delta[1].Qty)
}

func TestPartsDeltaReductionNotRestocked(t *testing.T) {
	already := []models.RepairPart{{ItemID: 1, Qty: 5}}
	current := []models.RepairPart{{ItemID: 1, Qty: 2}}
	assert.Empty(t, partsDelta(already, current))
}

func TestPartsDeltaSkipsCustomParts(t *testing.T) {
	current := []models.RepairPart{
		{ItemID: 0, Name: "Custom bracket", Qty: 4},
		{ItemID: 3, Qty: 1},
	}
	delta := partsDelta(nil, current)

	assert.Len(t, delta, 1)
	assert.Equal(t, int64(3), delta[0].ItemID)
}

func TestPartsDeltaAggregatesDuplicateLines(t *testing.T) {
	current := []models.RepairPart{
		{ItemID: 1, Qty: 1},
		{ItemID: 1, Qty: 2},
	}
	delta := partsDelta(nil, current)

	assert.Len(t, delta, 1)
	assert.Equal(t, int64(3), delta[0].Qty)
}

func TestMergeDeducted(t *testing.T) {
	already := []models.RepairPart{{ItemID: 1, Qty: 2}}
	delta := []models.RepairPart{
		{ItemID: 1, Qty: 1},
		{ItemID: 2, Qty: 3},
	}
	merged := mergeDeducted(already, delta)

	assert.Len(t, merged, 2)
	assert.Equal(t, int64(3), merged[0].Qty)
	assert.Equal(t, int64(3), merged[1].Qty)
}

// Saving progress twice then closing must deduct each part exactly once no
// matter how the quantities were split across saves.
func TestDeductionLifecycleTotals(t *testing.T) {
	var deducted []models.RepairPart

	apply := func(current []models.RepairPart) {
		delta := partsDelta(deducted, current)
		deducted = mergeDeducted(deducted, delta)
	}

	apply([]models.RepairPart{{ItemID: 1, Qty: 1}})                   // first save
	apply([]models.RepairPart{{ItemID: 1, Qty: 2}, {ItemID: 2, Qty: 1}}) // second save
	apply([]models.RepairPart{{ItemID: 1, Qty: 2}, {ItemID: 2, Qty: 1}}) // close

	total := make(map[int64]int64)
	for _, p := range deducted {
		total[p.ItemID] += p.Qty
	}
	assert.Equal(t, int64(2), total[1])
	assert.Equal(t, int64(1), total[2])
}
