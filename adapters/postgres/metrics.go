package postgres

import (
	"context"
	"math"

	"rejectconsole/internal/errors"
	"rejectconsole/models"
)

type inspectionTotals struct {
	RejectionPct float64 `db:"rejection_pct"`
	InspectedQty float64 `db:"inspected_qty"`
	RejectedQty  float64 `db:"rejected_qty"`
}

// DashboardMetrics aggregates one date and stage into the dashboard
// header block. The average rejection is weighted by quantity, not a mean
// of percentages, so large lots dominate the figure.
func (b *Backend) DashboardMetrics(ctx context.Context, date string, inspectionType models.InspectionType) (*models.DashboardMetrics, error) {
	if !inspectionType.Valid() {
		return nil, errors.InvalidInput("unknown inspection type")
	}

	threshold := b.resolveThreshold(ctx, inspectionType)
	metrics := &models.DashboardMetrics{ThresholdPercentage: threshold}

	rows, err := b.inspectionTotals(ctx, date, inspectionType)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load inspection totals")
	}
	if len(rows) == 0 {
		return metrics, nil
	}

	var inspected, rejected float64
	for _, row := range rows {
		inspected += row.InspectedQty
		rejected += row.RejectedQty
		if row.RejectionPct > threshold {
			metrics.LotsExceedingThreshold++
		}
	}

	metrics.TotalLots = len(rows)
	metrics.TotalInspectedQty = int(inspected)
	metrics.TotalRejectedQty = int(rejected)
	if inspected > 0 {
		metrics.AvgRejection = round2(rejected / inspected * 100)
	}

	if inspectionType == models.InspectionLot {
		if metrics.PatrolRejAvg, err = b.stageAverage(ctx, date, models.InspectionPatrol); err != nil {
			return nil, err
		}
		if metrics.LineRejAvg, err = b.stageAverage(ctx, date, models.InspectionLine); err != nil {
			return nil, err
		}
	}

	if metrics.PendingLots, err = b.pendingLots(ctx, date, inspectionType); err != nil {
		return nil, err
	}

	return metrics, nil
}

// inspectionTotals loads the per-entry figures for all submitted
// inspections of one stage whose lots were produced on date. Final visual
// lots carry a sub-lot suffix and join on the base lot prefix.
func (b *Backend) inspectionTotals(ctx context.Context, date string, t models.InspectionType) ([]inspectionTotals, error) {
	join := "mpe.scan_lot_number = ie.lot_no"
	if t == models.InspectionFinalVisual {
		join = "mpe.scan_lot_number = split_part(ie.lot_no, '-', 1)"
	}

	var rows []inspectionTotals
	err := b.db.SelectContext(ctx, &rows, `
		SELECT ie.rejection_pct, ie.inspected_qty, ie.rejected_qty
		FROM inspection_entries ie
		JOIN production_entries mpe ON `+join+`
		WHERE ie.inspection_type = $1 AND mpe.moulding_date = $2
	`, t, date)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// stageAverage returns the mean rejection percentage of one stage for
// lots produced on date.
func (b *Backend) stageAverage(ctx context.Context, date string, t models.InspectionType) (float64, error) {
	var avg float64
	err := b.db.GetContext(ctx, &avg, `
		SELECT COALESCE(AVG(ie.rejection_pct), 0)
		FROM inspection_entries ie
		JOIN production_entries mpe ON mpe.scan_lot_number = ie.lot_no
		WHERE ie.inspection_type = $1 AND mpe.moulding_date = $2
	`, t, date)
	if err != nil {
		return 0, errors.Wrapf(err, "failed to average %s", t)
	}
	return round2(avg), nil
}

// pendingLots counts lots produced on date that have not completed the
// stages feeding the requested view. For the lot stage a lot is pending
// when any of patrol, line, or lot inspection is missing.
func (b *Backend) pendingLots(ctx context.Context, date string, t models.InspectionType) (int, error) {
	var query string
	switch t {
	case models.InspectionLot:
		query = `
			SELECT COUNT(DISTINCT mpe.scan_lot_number)
			FROM production_entries mpe
			WHERE mpe.moulding_date = $1
			AND (
				NOT EXISTS (SELECT 1 FROM inspection_entries ie WHERE ie.lot_no = mpe.scan_lot_number AND ie.inspection_type = 'Lot Inspection')
				OR NOT EXISTS (SELECT 1 FROM inspection_entries ie WHERE ie.lot_no = mpe.scan_lot_number AND ie.inspection_type = 'Patrol Inspection')
				OR NOT EXISTS (SELECT 1 FROM inspection_entries ie WHERE ie.lot_no = mpe.scan_lot_number AND ie.inspection_type = 'Line Inspection')
			)`
	case models.InspectionIncoming:
		query = `
			SELECT COUNT(DISTINCT mpe.scan_lot_number)
			FROM production_entries mpe
			WHERE mpe.moulding_date = $1
			AND NOT EXISTS (SELECT 1 FROM inspection_entries ie WHERE ie.lot_no = mpe.scan_lot_number AND ie.inspection_type = 'Incoming Inspection')`
	case models.InspectionFinalVisual:
		query = `
			SELECT COUNT(DISTINCT mpe.scan_lot_number)
			FROM production_entries mpe
			WHERE mpe.moulding_date = $1
			AND NOT EXISTS (SELECT 1 FROM inspection_entries ie WHERE split_part(ie.lot_no, '-', 1) = mpe.scan_lot_number AND ie.inspection_type = 'Final Visual Inspection')`
	default:
		return 0, nil
	}

	var pending int
	if err := b.db.GetContext(ctx, &pending, query, date); err != nil {
		return 0, errors.Wrap(err, "failed to count pending lots")
	}
	return pending, nil
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
