package postgres

import (
	"context"

	"rejectconsole/internal/errors"
	"rejectconsole/models"
)

// DefectDistribution totals rejected quantity per defect type over the
// trailing window, largest first.
func (b *Backend) DefectDistribution(ctx context.Context, days int) ([]models.ChartPoint, error) {
	if days <= 0 {
		days = 30
	}

	var points []models.ChartPoint
	err := b.db.SelectContext(ctx, &points, `
		SELECT d.defect_type AS label, SUM(d.rejected_qty) AS value
		FROM inspection_defects d
		JOIN inspection_entries ie ON ie.name = d.inspection_entry
		WHERE ie.posting_date >= CURRENT_DATE - $1 * INTERVAL '1 day'
		GROUP BY d.defect_type
		ORDER BY value DESC
	`, days)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query defect distribution")
	}
	return points, nil
}

// RejectionTrend returns the monthly weighted rejection percentage over
// the trailing window, oldest month first.
func (b *Backend) RejectionTrend(ctx context.Context, months int) ([]models.ChartPoint, error) {
	if months <= 0 {
		months = 6
	}

	var points []models.ChartPoint
	err := b.db.SelectContext(ctx, &points, `
		SELECT to_char(date_trunc('month', ie.posting_date), 'YYYY-MM') AS label,
			CASE WHEN SUM(ie.inspected_qty) > 0
				THEN SUM(ie.rejected_qty) / SUM(ie.inspected_qty) * 100
				ELSE 0 END AS value
		FROM inspection_entries ie
		WHERE ie.posting_date >= date_trunc('month', CURRENT_DATE) - $1 * INTERVAL '1 month'
		GROUP BY date_trunc('month', ie.posting_date)
		ORDER BY date_trunc('month', ie.posting_date)
	`, months)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query rejection trend")
	}
	for i := range points {
		points[i].Value = round2(points[i].Value)
	}
	return points, nil
}

// StageRejection returns the weighted rejection percentage per inspection
// stage for one date, in process order.
func (b *Backend) StageRejection(ctx context.Context, date string) ([]models.ChartPoint, error) {
	var rows []struct {
		Label string  `db:"label"`
		Value float64 `db:"value"`
	}
	err := b.db.SelectContext(ctx, &rows, `
		SELECT ie.inspection_type AS label,
			CASE WHEN SUM(ie.inspected_qty) > 0
				THEN SUM(ie.rejected_qty) / SUM(ie.inspected_qty) * 100
				ELSE 0 END AS value
		FROM inspection_entries ie
		WHERE ie.posting_date = $1
		GROUP BY ie.inspection_type
	`, date)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query stage rejection")
	}

	byStage := make(map[string]float64, len(rows))
	for _, r := range rows {
		byStage[r.Label] = round2(r.Value)
	}

	points := make([]models.ChartPoint, 0, len(models.StageTypes))
	for _, stage := range models.StageTypes {
		points = append(points, models.ChartPoint{
			Label: string(stage),
			Value: byStage[string(stage)],
		})
	}
	return points, nil
}

// OperatorPerformance ranks operators by average rejection over the
// trailing window, worst first.
func (b *Backend) OperatorPerformance(ctx context.Context, days, limit int) ([]models.PerformanceRow, error) {
	return b.performance(ctx, "COALESCE(NULLIF(mpe.employee_name, ''), ie.operator_name)", days, limit)
}

// MachinePerformance ranks presses by average rejection over the
// trailing window, worst first.
func (b *Backend) MachinePerformance(ctx context.Context, days, limit int) ([]models.PerformanceRow, error) {
	return b.performance(ctx, "ie.machine_no", days, limit)
}

func (b *Backend) performance(ctx context.Context, groupBy string, days, limit int) ([]models.PerformanceRow, error) {
	if days <= 0 {
		days = 30
	}
	if limit <= 0 {
		limit = 10
	}

	var rows []models.PerformanceRow
	err := b.db.SelectContext(ctx, &rows, `
		SELECT `+groupBy+` AS name,
			COUNT(*) AS inspections,
			AVG(ie.rejection_pct) AS avg_rejection,
			MAX(ie.rejection_pct) AS max_rejection
		FROM inspection_entries ie
		LEFT JOIN production_entries mpe ON mpe.scan_lot_number = ie.lot_no
		WHERE ie.posting_date >= CURRENT_DATE - $1 * INTERVAL '1 day'
		AND COALESCE(`+groupBy+`, '') <> ''
		GROUP BY `+groupBy+`
		ORDER BY avg_rejection DESC
		LIMIT $2
	`, days, limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query performance ranking")
	}
	for i := range rows {
		rows[i].AvgRejection = round2(rows[i].AvgRejection)
		rows[i].MaxRejection = round2(rows[i].MaxRejection)
	}
	return rows, nil
}
