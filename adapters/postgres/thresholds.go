package postgres

import (
	"context"
	"database/sql"
	stderrors "errors"

	"rejectconsole/internal/errors"
	"rejectconsole/models"

	"github.com/jmoiron/sqlx"
)

// thresholdResolver resolves rejection limits for an inspection context.
// Resolution priority: product-specific config, then item group, then the
// global config for the stage, then the built-in defaults.
type thresholdResolver struct {
	db *sqlx.DB
}

type thresholdRow struct {
	ThresholdPct float64         `db:"threshold_pct"`
	WarningPct   sql.NullFloat64 `db:"warning_pct"`
	CriticalPct  sql.NullFloat64 `db:"critical_pct"`
}

func (r *thresholdResolver) resolve(ctx context.Context, t models.InspectionType, itemCode, itemGroup string) (models.Threshold, error) {
	var row thresholdRow
	err := r.db.GetContext(ctx, &row, `
		SELECT threshold_pct, warning_pct, critical_pct
		FROM threshold_configs
		WHERE inspection_type = $1 AND is_active = true
		AND (item_code = $2 OR item_group = $3 OR (COALESCE(item_code, '') = '' AND COALESCE(item_group, '') = ''))
		ORDER BY
			CASE
				WHEN item_code = $2 AND $2 <> '' THEN 0
				WHEN item_group = $3 AND $3 <> '' THEN 1
				ELSE 2
			END
		LIMIT 1
	`, t, itemCode, itemGroup)
	if stderrors.Is(err, sql.ErrNoRows) {
		return models.DefaultThreshold(), nil
	}
	if err != nil {
		return models.Threshold{}, errors.Wrap(err, "failed to resolve threshold")
	}

	th := models.Threshold{
		ThresholdPct: row.ThresholdPct,
		WarningPct:   models.DefaultWarningPct,
		CriticalPct:  models.DefaultCriticalPct,
	}
	if row.WarningPct.Valid && row.WarningPct.Float64 > 0 {
		th.WarningPct = row.WarningPct.Float64
	}
	if row.CriticalPct.Valid && row.CriticalPct.Float64 > 0 {
		th.CriticalPct = row.CriticalPct.Float64
	}
	return th, nil
}

// ThresholdFor resolves the rejection limits for one inspection context.
func (b *Backend) ThresholdFor(ctx context.Context, inspectionType models.InspectionType, itemCode, itemGroup string) (models.Threshold, error) {
	if !inspectionType.Valid() {
		return models.Threshold{}, errors.InvalidInput("unknown inspection type")
	}
	return b.threshold.resolve(ctx, inspectionType, itemCode, itemGroup)
}
