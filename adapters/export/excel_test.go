package export

import (
	"bytes"
	"testing"
	"time"

	"rejectconsole/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestDailyReportWorkbook(t *testing.T) {
	report := &models.DailyReport{
		Name:       "DRR-2025-11-26",
		ReportDate: time.Date(2025, 11, 26, 0, 0, 0, 0, time.UTC),
		LotItems: []models.LotInspectionRecord{
			{LotNo: "25K26X01", ItemCode: "T5117", LotRejPct: 6.5, ExceedsThreshold: true},
		},
		IncomingItems: []models.IncomingInspectionRecord{
			{LotNo: "25K26X01", Item: "T5117", RejPct: 1.2},
		},
		FinalItems: []models.FinalInspectionRecord{
			{LotNo: "25K26X01-1", BaseLot: "25K26X01", RejPct: 0.8},
		},
	}

	data, err := DailyReportWorkbook(report)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t,
		[]string{"Lot Inspection", "Incoming Inspection", "Final Inspection"},
		f.GetSheetList())

	lotNo, err := f.GetCellValue("Lot Inspection", "A2")
	require.NoError(t, err)
	assert.Equal(t, "25K26X01", lotNo)

	baseLot, err := f.GetCellValue("Final Inspection", "B2")
	require.NoError(t, err)
	assert.Equal(t, "25K26X01", baseLot)
}
