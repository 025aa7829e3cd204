package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"time"

	"rejectconsole/internal/errors"
	"rejectconsole/models"
)

type dailyReportRow struct {
	Name          string          `db:"name"`
	ReportDate    time.Time       `db:"report_date"`
	ThresholdPct  float64         `db:"threshold_pct"`
	Status        string          `db:"status"`
	Summary       json.RawMessage `db:"summary"`
	LotItems      json.RawMessage `db:"lot_items"`
	IncomingItems json.RawMessage `db:"incoming_items"`
	FinalItems    json.RawMessage `db:"final_items"`
	CreatedAt     time.Time       `db:"created_at"`
}

func (r dailyReportRow) toModel() (*models.DailyReport, error) {
	report := &models.DailyReport{
		Name:       r.Name,
		ReportDate: r.ReportDate,
		Threshold:  r.ThresholdPct,
		Status:     models.ReportStatus(r.Status),
		CreatedAt:  r.CreatedAt,
	}
	if err := json.Unmarshal(r.Summary, &report.Summary); err != nil {
		return nil, errors.Wrap(err, "failed to decode report summary")
	}
	if err := json.Unmarshal(r.LotItems, &report.LotItems); err != nil {
		return nil, errors.Wrap(err, "failed to decode lot items")
	}
	if err := json.Unmarshal(r.IncomingItems, &report.IncomingItems); err != nil {
		return nil, errors.Wrap(err, "failed to decode incoming items")
	}
	if err := json.Unmarshal(r.FinalItems, &report.FinalItems); err != nil {
		return nil, errors.Wrap(err, "failed to decode final items")
	}
	return report, nil
}

// SaveDailyReport stores one snapshot per production date. Saving again
// for the same date overwrites the previous snapshot.
func (b *Backend) SaveDailyReport(ctx context.Context, report *models.DailyReport) (*models.DailyReport, error) {
	if report.ReportDate.IsZero() {
		return nil, errors.InvalidInput("report date is required")
	}

	name := fmt.Sprintf("DRR-%s", report.ReportDate.Format("2006-01-02"))
	status := report.Status
	if status == "" {
		status = models.ReportStatusGenerated
	}

	summary, err := json.Marshal(report.Summary)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode report summary")
	}
	lotItems, err := json.Marshal(emptyToSlice(report.LotItems))
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode lot items")
	}
	incomingItems, err := json.Marshal(emptyToSlice(report.IncomingItems))
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode incoming items")
	}
	finalItems, err := json.Marshal(emptyToSlice(report.FinalItems))
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode final items")
	}

	_, err = b.db.ExecContext(ctx, `
		INSERT INTO daily_reports (name, report_date, threshold_pct, status, summary, lot_items, incoming_items, final_items)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (report_date) DO UPDATE SET
			threshold_pct = EXCLUDED.threshold_pct,
			status = EXCLUDED.status,
			summary = EXCLUDED.summary,
			lot_items = EXCLUDED.lot_items,
			incoming_items = EXCLUDED.incoming_items,
			final_items = EXCLUDED.final_items
	`, name, report.ReportDate, report.Threshold, status, summary, lotItems, incomingItems, finalItems)
	if err != nil {
		return nil, errors.Wrap(err, "failed to save daily report")
	}

	return b.DailyReport(ctx, name)
}

// DailyReport loads one saved report by name.
func (b *Backend) DailyReport(ctx context.Context, name string) (*models.DailyReport, error) {
	var row dailyReportRow
	err := b.db.GetContext(ctx, &row, `
		SELECT name, report_date, threshold_pct, status, summary, lot_items, incoming_items, final_items, created_at
		FROM daily_reports
		WHERE name = $1
	`, name)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.NotFound("daily report")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load daily report")
	}
	return row.toModel()
}

// ListDailyReports returns saved report listings, newest date first.
func (b *Backend) ListDailyReports(ctx context.Context) ([]models.ReportListing, error) {
	var listings []models.ReportListing
	err := b.db.SelectContext(ctx, &listings, `
		SELECT name, report_date, status,
			COALESCE((summary->>'total_lots')::int, 0) AS total_lots,
			COALESCE((summary->>'lots_over_threshold')::int, 0) AS lots_over_threshold,
			COALESCE((summary->>'avg_rejection')::float, 0) AS avg_rejection,
			created_at
		FROM daily_reports
		ORDER BY report_date DESC
	`)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list daily reports")
	}
	return listings, nil
}

// emptyToSlice keeps nil section slices encoding as [] rather than null.
func emptyToSlice[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
