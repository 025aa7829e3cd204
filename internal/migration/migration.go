package migration

import (
	"context"
	"log"

	"rejectconsole/internal/errors"

	"github.com/jmoiron/sqlx"
)

// Migrator defines the interface for database migration operations
type Migrator interface {
	Run(ctx context.Context, db *sqlx.DB) error
	Version() string
}

// Runner handles database schema migrations for the local backend mode.
type Runner struct {
	version string
}

// NewRunner creates a new migration runner
func NewRunner() *Runner {
	return &Runner{version: "1.0.0"}
}

// Version returns the migration version
func (r *Runner) Version() string {
	return r.version
}

// Run executes all database migrations in the correct order
func (r *Runner) Run(ctx context.Context, db *sqlx.DB) error {
	if err := r.createProductionEntriesTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create production_entries table")
	}
	if err := r.createInspectionEntriesTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create inspection_entries table")
	}
	if err := r.createInspectionDefectsTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create inspection_defects table")
	}
	if err := r.createCARTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create corrective_action_reports table")
	}
	if err := r.createDailyReportsTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create daily_reports table")
	}
	if err := r.createThresholdConfigsTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create threshold_configs table")
	}
	if err := r.createIndexes(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create indexes")
	}
	return nil
}

func (r *Runner) createProductionEntriesTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS production_entries (
			name VARCHAR(50) PRIMARY KEY,
			scan_lot_number VARCHAR(50) UNIQUE NOT NULL,
			item_code VARCHAR(50) NOT NULL,
			mould_reference VARCHAR(100),
			employee_name VARCHAR(100),
			moulding_date DATE NOT NULL,
			batch_no VARCHAR(50),
			shift_type VARCHAR(20),
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		)
	`)
	return err
}

func (r *Runner) createInspectionEntriesTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS inspection_entries (
			name VARCHAR(50) PRIMARY KEY,
			inspection_type VARCHAR(40) NOT NULL,
			lot_no VARCHAR(60) NOT NULL,
			posting_date DATE NOT NULL,
			item_code VARCHAR(50),
			machine_no VARCHAR(30),
			operator_name VARCHAR(100),
			inspector_name VARCHAR(100),
			inspected_qty NUMERIC(12,2) NOT NULL DEFAULT 0,
			rejected_qty NUMERIC(12,2) NOT NULL DEFAULT 0,
			rejection_pct NUMERIC(6,2) NOT NULL DEFAULT 0,
			deflasher_name VARCHAR(100),
			qty_sent NUMERIC(12,2) DEFAULT 0,
			qty_received NUMERIC(12,2) DEFAULT 0,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		)
	`)
	return err
}

func (r *Runner) createInspectionDefectsTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS inspection_defects (
			id SERIAL PRIMARY KEY,
			inspection_entry VARCHAR(50) NOT NULL REFERENCES inspection_entries(name) ON DELETE CASCADE,
			defect_type VARCHAR(100) NOT NULL,
			rejected_qty NUMERIC(12,2) NOT NULL DEFAULT 0
		)
	`)
	return err
}

func (r *Runner) createCARTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS corrective_action_reports (
			name VARCHAR(50) PRIMARY KEY,
			car_date DATE NOT NULL,
			inspection_entry VARCHAR(50) UNIQUE NOT NULL,
			lot_no VARCHAR(60),
			item_code VARCHAR(50),
			rejection_pct NUMERIC(6,2) DEFAULT 0,
			problem_description TEXT,
			root_cause TEXT,
			corrective_action TEXT,
			preventive_action TEXT,
			responsible_person VARCHAR(100),
			target_date DATE,
			status VARCHAR(20) NOT NULL DEFAULT 'Open',
			why_answers TEXT[] DEFAULT '{}',
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		)
	`)
	return err
}

func (r *Runner) createDailyReportsTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS daily_reports (
			name VARCHAR(50) PRIMARY KEY,
			report_date DATE UNIQUE NOT NULL,
			threshold_pct NUMERIC(6,2) NOT NULL DEFAULT 5.0,
			status VARCHAR(20) NOT NULL DEFAULT 'Generated',
			summary JSONB NOT NULL DEFAULT '{}',
			lot_items JSONB NOT NULL DEFAULT '[]',
			incoming_items JSONB NOT NULL DEFAULT '[]',
			final_items JSONB NOT NULL DEFAULT '[]',
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		)
	`)
	return err
}

func (r *Runner) createThresholdConfigsTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS threshold_configs (
			name VARCHAR(50) PRIMARY KEY,
			inspection_type VARCHAR(40) NOT NULL,
			item_code VARCHAR(50),
			item_group VARCHAR(50),
			threshold_pct NUMERIC(6,2) NOT NULL,
			warning_pct NUMERIC(6,2),
			critical_pct NUMERIC(6,2),
			is_active BOOLEAN NOT NULL DEFAULT true
		)
	`)
	return err
}

func (r *Runner) createIndexes(ctx context.Context, db *sqlx.DB) error {
	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_production_moulding_date ON production_entries(moulding_date)",
		"CREATE INDEX IF NOT EXISTS idx_inspections_lot_no ON inspection_entries(lot_no)",
		"CREATE INDEX IF NOT EXISTS idx_inspections_type_date ON inspection_entries(inspection_type, posting_date)",
		"CREATE INDEX IF NOT EXISTS idx_defects_entry ON inspection_defects(inspection_entry)",
		"CREATE INDEX IF NOT EXISTS idx_cars_inspection_entry ON corrective_action_reports(inspection_entry)",
		"CREATE INDEX IF NOT EXISTS idx_cars_status ON corrective_action_reports(status)",
		"CREATE INDEX IF NOT EXISTS idx_reports_date ON daily_reports(report_date DESC)",
		"CREATE INDEX IF NOT EXISTS idx_thresholds_lookup ON threshold_configs(inspection_type, is_active)",
	}

	for _, idxSQL := range indexes {
		if _, err := db.ExecContext(ctx, idxSQL); err != nil {
			// Log but don't fail on index creation errors
			log.Printf("Warning: failed to create index: %v", err)
		}
	}
	return nil
}
