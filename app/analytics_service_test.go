package app

import (
	"context"
	"testing"

	"rejectconsole/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRejectionTrendWorsening(t *testing.T) {
	backend := new(mockBackend)
	svc := NewAnalyticsService(backend)

	backend.On("RejectionTrend", mock.Anything, 6).Return([]models.ChartPoint{
		{Label: "2025-06", Value: 3.1},
		{Label: "2025-07", Value: 3.8},
		{Label: "2025-08", Value: 4.4},
		{Label: "2025-09", Value: 5.2},
	}, nil)

	series, err := svc.RejectionTrend(context.Background(), 6)

	require.NoError(t, err)
	assert.Equal(t, TrendWorsening, series.Trend)
	assert.Greater(t, series.Slope, 0.0)
	assert.Len(t, series.Points, 4)
}

func TestRejectionTrendStableWithFlatSeries(t *testing.T) {
	backend := new(mockBackend)
	svc := NewAnalyticsService(backend)

	backend.On("RejectionTrend", mock.Anything, 6).Return([]models.ChartPoint{
		{Label: "2025-08", Value: 4.0},
		{Label: "2025-09", Value: 4.02},
	}, nil)

	series, err := svc.RejectionTrend(context.Background(), 6)

	require.NoError(t, err)
	assert.Equal(t, TrendStable, series.Trend)
}

func TestRejectionTrendSinglePoint(t *testing.T) {
	backend := new(mockBackend)
	svc := NewAnalyticsService(backend)

	backend.On("RejectionTrend", mock.Anything, 6).Return([]models.ChartPoint{
		{Label: "2025-09", Value: 4.0},
	}, nil)

	series, err := svc.RejectionTrend(context.Background(), 6)

	require.NoError(t, err)
	assert.Equal(t, TrendStable, series.Trend)
	assert.Zero(t, series.Slope)
}

func TestLotDistribution(t *testing.T) {
	backend := new(mockBackend)
	svc := NewAnalyticsService(backend)

	backend.On("LotInspectionReport", mock.Anything, models.ReportFilters{Date: "2025-11-26"}).
		Return([]models.LotInspectionRecord{
			{LotRejPct: 2.0},
			{LotRejPct: 4.0},
			{LotRejPct: 6.0},
			{LotRejPct: 12.0},
		}, nil)

	summary, err := svc.LotDistribution(context.Background(), "2025-11-26")

	require.NoError(t, err)
	assert.Equal(t, 4, summary.Count)
	assert.InDelta(t, 6.0, summary.Mean, 0.001)
	assert.InDelta(t, 5.0, summary.Median, 0.001)
	assert.InDelta(t, 12.0, summary.Max, 0.001)
	assert.Greater(t, summary.StdDev, 0.0)
}

func TestLotDistributionEmpty(t *testing.T) {
	backend := new(mockBackend)
	svc := NewAnalyticsService(backend)

	backend.On("LotInspectionReport", mock.Anything, mock.Anything).
		Return([]models.LotInspectionRecord{}, nil)

	summary, err := svc.LotDistribution(context.Background(), "2025-11-26")

	require.NoError(t, err)
	assert.Zero(t, summary.Count)
	assert.Zero(t, summary.Mean)
}

func TestFinalLotFamiliesGroupsSubLots(t *testing.T) {
	backend := new(mockBackend)
	svc := NewAnalyticsService(backend)

	backend.On("FinalInspectionReport", mock.Anything, models.ReportFilters{Date: "2025-11-26"}).
		Return([]models.FinalInspectionRecord{
			{LotNo: "25K26X01-1", BaseLot: "25K26X01", InspectedQty: 200, RejectedQty: 2},
			{LotNo: "25K26X01-2", BaseLot: "25K26X01", InspectedQty: 100, RejectedQty: 7},
			{LotNo: "25K26X02-1", BaseLot: "25K26X02", InspectedQty: 300, RejectedQty: 30},
		}, nil)

	families, err := svc.FinalLotFamilies(context.Background(), "2025-11-26")

	require.NoError(t, err)
	require.Len(t, families, 2)

	assert.Equal(t, "25K26X02", families[0].BaseLot)
	assert.InDelta(t, 10.0, families[0].AvgRejection, 0.001)

	assert.Equal(t, "25K26X01", families[1].BaseLot)
	assert.Equal(t, 2, families[1].SubLots)
	assert.InDelta(t, 9.0/300.0*100, families[1].AvgRejection, 0.001)
}
