package app

import (
	"context"
	"sort"
	"strings"

	"rejectconsole/models"
	"rejectconsole/ports"

	mstats "github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"
)

// Trend direction labels for the rejection trend card.
const (
	TrendImproving = "improving"
	TrendWorsening = "worsening"
	TrendStable    = "stable"
)

// slope magnitudes below this read as flat on the trend card
const stableSlopeEpsilon = 0.05

// AnalyticsService derives statistical views from the raw chart series:
// trend fitting, distribution summaries, and lot family rollups.
type AnalyticsService struct {
	backend ports.Backend
}

// NewAnalyticsService creates the analytics service.
func NewAnalyticsService(backend ports.Backend) *AnalyticsService {
	return &AnalyticsService{backend: backend}
}

// RejectionTrend returns the monthly rejection series with a least
// squares slope so the card can say whether quality is moving.
func (s *AnalyticsService) RejectionTrend(ctx context.Context, months int) (*models.TrendSeries, error) {
	if months <= 0 {
		months = 6
	}
	points, err := s.backend.RejectionTrend(ctx, months)
	if err != nil {
		return nil, err
	}

	series := &models.TrendSeries{Points: points, Trend: TrendStable}
	if len(points) < 2 {
		return series, nil
	}

	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	for i, p := range points {
		xs[i] = float64(i)
		ys[i] = p.Value
	}
	_, slope := stat.LinearRegression(xs, ys, nil, false)
	series.Slope = slope

	switch {
	case slope < -stableSlopeEpsilon:
		series.Trend = TrendImproving
	case slope > stableSlopeEpsilon:
		series.Trend = TrendWorsening
	}
	return series, nil
}

// DistributionSummary describes the spread of lot rejection percentages
// on one date.
type DistributionSummary struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	StdDev float64 `json:"std_dev"`
	P95    float64 `json:"p95"`
	Max    float64 `json:"max"`
}

// LotDistribution summarizes the lot rejection percentages for one date.
func (s *AnalyticsService) LotDistribution(ctx context.Context, date string) (*DistributionSummary, error) {
	date, err := normalizeDate(date)
	if err != nil {
		return nil, err
	}
	records, err := s.backend.LotInspectionReport(ctx, models.ReportFilters{Date: date})
	if err != nil {
		return nil, err
	}

	summary := &DistributionSummary{Count: len(records)}
	if len(records) == 0 {
		return summary, nil
	}

	values := make(mstats.Float64Data, len(records))
	for i, r := range records {
		values[i] = r.LotRejPct
	}
	summary.Mean, _ = mstats.Mean(values)
	summary.Median, _ = mstats.Median(values)
	summary.StdDev, _ = mstats.StandardDeviation(values)
	summary.P95, _ = mstats.Percentile(values, 95)
	summary.Max, _ = mstats.Max(values)
	return summary, nil
}

// LotFamily aggregates the final visual sub-lots of one base lot.
type LotFamily struct {
	BaseLot      string  `json:"base_lot"`
	SubLots      int     `json:"sub_lots"`
	InspectedQty float64 `json:"inspected_qty"`
	RejectedQty  float64 `json:"rejected_qty"`
	AvgRejection float64 `json:"avg_rejection"`
}

// FinalLotFamilies groups the final visual report by base lot, so a lot
// split into sub-lots reads as one production unit. Weighted averages,
// worst families first.
func (s *AnalyticsService) FinalLotFamilies(ctx context.Context, date string) ([]LotFamily, error) {
	date, err := normalizeDate(date)
	if err != nil {
		return nil, err
	}
	records, err := s.backend.FinalInspectionReport(ctx, models.ReportFilters{Date: date})
	if err != nil {
		return nil, err
	}

	byBase := map[string]*LotFamily{}
	for _, r := range records {
		base := r.BaseLot
		if base == "" {
			base, _, _ = strings.Cut(r.LotNo, "-")
		}
		fam := byBase[base]
		if fam == nil {
			fam = &LotFamily{BaseLot: base}
			byBase[base] = fam
		}
		fam.SubLots++
		fam.InspectedQty += r.InspectedQty
		fam.RejectedQty += r.RejectedQty
	}

	families := make([]LotFamily, 0, len(byBase))
	for _, fam := range byBase {
		if fam.InspectedQty > 0 {
			fam.AvgRejection = fam.RejectedQty / fam.InspectedQty * 100
		}
		families = append(families, *fam)
	}
	sort.Slice(families, func(i, j int) bool {
		if families[i].AvgRejection != families[j].AvgRejection {
			return families[i].AvgRejection > families[j].AvgRejection
		}
		return families[i].BaseLot < families[j].BaseLot
	})
	return families, nil
}
