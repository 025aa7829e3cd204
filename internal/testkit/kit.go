package testkit

import (
	"context"
	"log"
	"time"

	"rejectconsole/internal/errors"
	"rejectconsole/models"

	"github.com/jmoiron/sqlx"
)

// SeedDemoData populates the local database with a synthetic production
// window ending today: daysBack production dates, lotsPerDay lots each.
// Existing rows are left alone; seeding is skipped when production data
// is already present.
func SeedDemoData(ctx context.Context, db *sqlx.DB, daysBack, lotsPerDay int) error {
	var count int
	if err := db.GetContext(ctx, &count, "SELECT COUNT(*) FROM production_entries"); err != nil {
		return errors.Wrap(err, "failed to check existing production data")
	}
	if count > 0 {
		log.Printf("[testkit] production data present (%d entries), skipping demo seed", count)
		return nil
	}

	gen := NewGenerator(time.Now().UnixNano())
	today := time.Now().Truncate(24 * time.Hour)

	for d := daysBack - 1; d >= 0; d-- {
		date := today.AddDate(0, 0, -d)
		ds := gen.GenerateDay(date, lotsPerDay)
		if err := insertDataset(ctx, db, ds); err != nil {
			return errors.Wrapf(err, "failed to seed data for %s", date.Format("2006-01-02"))
		}
	}

	if err := seedThresholds(ctx, db); err != nil {
		return err
	}

	log.Printf("[testkit] seeded %d days of demo data (%d lots/day)", daysBack, lotsPerDay)
	return nil
}

// seedThresholds installs a global threshold config per stage so the
// demo dashboard resolves configured limits instead of built-in defaults.
func seedThresholds(ctx context.Context, db *sqlx.DB) error {
	for _, stage := range models.StageTypes {
		cfg := models.ThresholdConfig{
			Name:           "RTC-" + stageCode(stage) + "-GLOBAL",
			InspectionType: stage,
			ThresholdPct:   models.DefaultThresholdPct,
			WarningPct:     models.DefaultWarningPct,
			CriticalPct:    models.DefaultCriticalPct,
			IsActive:       true,
		}
		if err := cfg.Validate(); err != nil {
			return errors.Wrapf(err, "bad seed threshold for %s", stage)
		}
		if _, err := db.NamedExecContext(ctx, `
			INSERT INTO threshold_configs (name, inspection_type, threshold_pct, warning_pct, critical_pct, is_active)
			VALUES (:name, :inspection_type, :threshold_pct, :warning_pct, :critical_pct, :is_active)
			ON CONFLICT (name) DO NOTHING
		`, cfg); err != nil {
			return errors.Wrapf(err, "failed to seed threshold for %s", stage)
		}
	}
	return nil
}

func insertDataset(ctx context.Context, db *sqlx.DB, ds *Dataset) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, p := range ds.Productions {
		if _, err := tx.NamedExecContext(ctx, `
			INSERT INTO production_entries (name, scan_lot_number, item_code, mould_reference, employee_name, moulding_date, batch_no, shift_type)
			VALUES (:name, :scan_lot_number, :item_code, :mould_reference, :employee_name, :moulding_date, :batch_no, :shift_type)
			ON CONFLICT (name) DO NOTHING
		`, p); err != nil {
			return err
		}
	}

	for _, ie := range ds.Inspections {
		if _, err := tx.NamedExecContext(ctx, `
			INSERT INTO inspection_entries (name, inspection_type, lot_no, posting_date, item_code, machine_no, operator_name, inspector_name, inspected_qty, rejected_qty, rejection_pct, deflasher_name, qty_sent, qty_received)
			VALUES (:name, :inspection_type, :lot_no, :posting_date, :item_code, :machine_no, :operator_name, :inspector_name, :inspected_qty, :rejected_qty, :rejection_pct, :deflasher_name, :qty_sent, :qty_received)
			ON CONFLICT (name) DO NOTHING
		`, ie); err != nil {
			return err
		}

		for _, defect := range ds.Defects[ie.Name] {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO inspection_defects (inspection_entry, defect_type, rejected_qty)
				VALUES ($1, $2, $3)
			`, ie.Name, defect.DefectType, defect.RejectedQty); err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}
