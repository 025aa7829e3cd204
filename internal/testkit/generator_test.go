package testkit

import (
	"testing"
	"time"

	"rejectconsole/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLotNumber(t *testing.T) {
	date := time.Date(2025, time.November, 26, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "25K26X01", LotNumber(date, 1))
	assert.Equal(t, "25K26X12", LotNumber(date, 12))
}

func TestGenerateDayShape(t *testing.T) {
	gen := NewGenerator(42)
	date := time.Date(2025, time.November, 26, 0, 0, 0, 0, time.UTC)

	ds := gen.GenerateDay(date, 10)

	require.Len(t, ds.Productions, 10)

	byType := map[models.InspectionType]int{}
	for _, ie := range ds.Inspections {
		byType[ie.Type]++
	}
	assert.Equal(t, 10, byType[models.InspectionPatrol])
	assert.Equal(t, 10, byType[models.InspectionLine])
	assert.Equal(t, 10, byType[models.InspectionLot])
	assert.Equal(t, 10, byType[models.InspectionIncoming])
	assert.GreaterOrEqual(t, byType[models.InspectionFinalVisual], 10)
}

func TestGenerateDayConsistency(t *testing.T) {
	gen := NewGenerator(7)
	date := time.Date(2025, time.November, 26, 0, 0, 0, 0, time.UTC)

	ds := gen.GenerateDay(date, 5)

	for _, ie := range ds.Inspections {
		assert.Greater(t, ie.InspectedQty, 0.0)
		assert.LessOrEqual(t, ie.RejectedQty, ie.InspectedQty)

		want := ie.RejectedQty / ie.InspectedQty * 100
		assert.InDelta(t, want, ie.RejectionPct, 0.01, "entry %s", ie.Name)

		var defectTotal float64
		for _, d := range ds.Defects[ie.Name] {
			defectTotal += d.RejectedQty
		}
		assert.LessOrEqual(t, defectTotal, ie.RejectedQty+0.01, "entry %s", ie.Name)
	}
}

func TestGenerateDayDeterministic(t *testing.T) {
	date := time.Date(2025, time.November, 26, 0, 0, 0, 0, time.UTC)

	a := NewGenerator(99).GenerateDay(date, 3)
	b := NewGenerator(99).GenerateDay(date, 3)

	assert.Equal(t, a.Productions, b.Productions)
	assert.Equal(t, a.Inspections, b.Inspections)
}
