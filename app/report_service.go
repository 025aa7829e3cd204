package app

import (
	"context"
	"time"

	"rejectconsole/adapters/export"
	"rejectconsole/internal/errors"
	"rejectconsole/models"
	"rejectconsole/ports"

	"golang.org/x/sync/errgroup"
)

// ReportService builds, saves, and exports the stage reports and the
// comprehensive daily report.
type ReportService struct {
	backend      ports.Backend
	costPerPiece float64
}

// NewReportService creates the report service. costPerPiece prices each
// rejected piece in the daily report cost rollup; zero disables costing.
func NewReportService(backend ports.Backend, costPerPiece float64) *ReportService {
	return &ReportService{backend: backend, costPerPiece: costPerPiece}
}

// LotReport returns the lot inspection table for the filter date.
func (s *ReportService) LotReport(ctx context.Context, filters models.ReportFilters) ([]models.LotInspectionRecord, error) {
	var err error
	if filters.Date, err = normalizeDate(filters.Date); err != nil {
		return nil, err
	}
	return s.backend.LotInspectionReport(ctx, filters)
}

// IncomingReport returns the incoming inspection table for the filter date.
func (s *ReportService) IncomingReport(ctx context.Context, filters models.ReportFilters) ([]models.IncomingInspectionRecord, error) {
	var err error
	if filters.Date, err = normalizeDate(filters.Date); err != nil {
		return nil, err
	}
	return s.backend.IncomingInspectionReport(ctx, filters)
}

// FinalReport returns the final visual inspection table for the filter date.
func (s *ReportService) FinalReport(ctx context.Context, filters models.ReportFilters) ([]models.FinalInspectionRecord, error) {
	var err error
	if filters.Date, err = normalizeDate(filters.Date); err != nil {
		return nil, err
	}
	return s.backend.FinalInspectionReport(ctx, filters)
}

// RejectionDetail returns the defect drill-in for one inspection entry.
func (s *ReportService) RejectionDetail(ctx context.Context, inspectionEntry string) (*models.RejectionDetail, error) {
	if inspectionEntry == "" {
		return nil, errors.InvalidInput("inspection entry is required")
	}
	return s.backend.RejectionDetail(ctx, inspectionEntry)
}

// BuildDailyReport assembles the comprehensive report for one date: all
// three sections fetched concurrently, plus the summary rollup.
func (s *ReportService) BuildDailyReport(ctx context.Context, date string) (*models.DailyReport, error) {
	date, err := normalizeDate(date)
	if err != nil {
		return nil, err
	}
	reportDate, _ := time.Parse(DateFormat, date)
	filters := models.ReportFilters{Date: date}

	report := &models.DailyReport{
		Name:       "DRR-" + date,
		ReportDate: reportDate,
		Status:     models.ReportStatusGenerated,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		report.LotItems, err = s.backend.LotInspectionReport(gctx, filters)
		return err
	})
	g.Go(func() error {
		var err error
		report.IncomingItems, err = s.backend.IncomingInspectionReport(gctx, filters)
		return err
	})
	g.Go(func() error {
		var err error
		report.FinalItems, err = s.backend.FinalInspectionReport(gctx, filters)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, errors.Wrap(err, "failed to gather daily report sections")
	}

	report.Threshold = models.DefaultThresholdPct
	if th, err := s.backend.ThresholdFor(ctx, models.InspectionLot, "", ""); err == nil {
		report.Threshold = th.ThresholdPct
	}
	report.Summary = s.summarize(ctx, date, report)

	return report, nil
}

// summarize rolls the three sections up into the report header. The
// weighted average uses total quantities so large lots dominate.
func (s *ReportService) summarize(ctx context.Context, date string, report *models.DailyReport) models.ReportSummary {
	var summary models.ReportSummary
	var inspected, rejected float64

	for _, r := range report.LotItems {
		inspected += r.InspectedQty
		rejected += r.RejectedQty
		if r.ExceedsThreshold {
			summary.LotsOverThreshold++
		}
		if r.CARName != "" {
			summary.CARsRaised++
		}
	}
	for _, r := range report.IncomingItems {
		inspected += r.InspectedQty
		rejected += r.RejectedQty
		if r.ExceedsThreshold {
			summary.LotsOverThreshold++
		}
		if r.CARName != "" {
			summary.CARsRaised++
		}
	}
	for _, r := range report.FinalItems {
		inspected += r.InspectedQty
		rejected += r.RejectedQty
		if r.ExceedsThreshold {
			summary.LotsOverThreshold++
		}
		if r.CARName != "" {
			summary.CARsRaised++
		}
	}

	summary.TotalLots = len(report.LotItems) + len(report.IncomingItems) + len(report.FinalItems)
	summary.TotalInspectedQty = int(inspected)
	summary.TotalRejectedQty = int(rejected)
	if inspected > 0 {
		summary.AvgRejection = rejected / inspected * 100
	}
	summary.TotalRejectionCost = rejected * s.costPerPiece

	if pending, err := s.backend.PendingCARs(ctx, date, report.Threshold); err == nil {
		summary.CARsPending = len(pending)
	}
	return summary
}

// SaveDailyReport builds and persists the snapshot for one date.
func (s *ReportService) SaveDailyReport(ctx context.Context, date string) (*models.DailyReport, error) {
	report, err := s.BuildDailyReport(ctx, date)
	if err != nil {
		return nil, err
	}
	return s.backend.SaveDailyReport(ctx, report)
}

// DailyReport loads a saved report by name.
func (s *ReportService) DailyReport(ctx context.Context, name string) (*models.DailyReport, error) {
	if name == "" {
		return nil, errors.InvalidInput("report name is required")
	}
	return s.backend.DailyReport(ctx, name)
}

// ListDailyReports lists saved report headers, newest first.
func (s *ReportService) ListDailyReports(ctx context.Context) ([]models.ReportListing, error) {
	return s.backend.ListDailyReports(ctx)
}

// Column layouts for the CSV exports, in on-screen order.
var (
	lotReportColumns = []export.Column{
		{Key: "production_date", Header: "Date"},
		{Key: "shift_type", Header: "Shift"},
		{Key: "operator_name", Header: "Operator"},
		{Key: "press_number", Header: "Press No"},
		{Key: "item_code", Header: "Item"},
		{Key: "mould_ref", Header: "Mould Ref"},
		{Key: "lot_no", Header: "Lot No"},
		{Key: "patrol_rej_pct", Header: "Patrol Rej %"},
		{Key: "line_rej_pct", Header: "Line Rej %"},
		{Key: "lot_rej_pct", Header: "Lot Rej %"},
		{Key: "inspected_qty", Header: "Inspected Qty"},
		{Key: "rejected_qty", Header: "Rejected Qty"},
	}
	incomingReportColumns = []export.Column{
		{Key: "date", Header: "Date"},
		{Key: "batch_no", Header: "Batch No"},
		{Key: "item", Header: "Item"},
		{Key: "mould_ref", Header: "Mould Ref"},
		{Key: "lot_no", Header: "Lot No"},
		{Key: "deflasher_name", Header: "Deflasher"},
		{Key: "qty_sent", Header: "Qty Sent"},
		{Key: "qty_received", Header: "Qty Received"},
		{Key: "diff_pct", Header: "Diff %"},
		{Key: "inspector_name", Header: "Inspector"},
		{Key: "insp_qty", Header: "Inspected Qty"},
		{Key: "rej_qty", Header: "Rejected Qty"},
		{Key: "rej_pct", Header: "Rejection %"},
	}
	finalReportColumns = []export.Column{
		{Key: "date", Header: "Date"},
		{Key: "lot_no", Header: "Lot No"},
		{Key: "base_lot", Header: "Base Lot"},
		{Key: "item", Header: "Item"},
		{Key: "mould_ref", Header: "Mould Ref"},
		{Key: "inspector_name", Header: "Inspector"},
		{Key: "insp_qty", Header: "Inspected Qty"},
		{Key: "rej_qty", Header: "Rejected Qty"},
		{Key: "rej_pct", Header: "Rejection %"},
	}
)

// ExportLotReport writes the lot inspection table as CSV to the sink.
func (s *ReportService) ExportLotReport(ctx context.Context, filters models.ReportFilters, exporter *export.Exporter) error {
	records, err := s.LotReport(ctx, filters)
	if err != nil {
		return err
	}
	rows := make([]export.Record, len(records))
	for i, r := range records {
		rows[i] = export.Record{
			"production_date": r.ProductionDate,
			"shift_type":      r.ShiftType,
			"operator_name":   r.OperatorName,
			"press_number":    r.PressNumber,
			"item_code":       r.ItemCode,
			"mould_ref":       r.MouldRef,
			"lot_no":          r.LotNo,
			"patrol_rej_pct":  r.PatrolRejPct,
			"line_rej_pct":    r.LineRejPct,
			"lot_rej_pct":     r.LotRejPct,
			"inspected_qty":   r.InspectedQty,
			"rejected_qty":    r.RejectedQty,
		}
	}
	return exporter.CSV(rows, "lot_inspection_"+filters.Date, lotReportColumns)
}

// ExportIncomingReport writes the incoming inspection table as CSV.
func (s *ReportService) ExportIncomingReport(ctx context.Context, filters models.ReportFilters, exporter *export.Exporter) error {
	records, err := s.IncomingReport(ctx, filters)
	if err != nil {
		return err
	}
	rows := make([]export.Record, len(records))
	for i, r := range records {
		rows[i] = export.Record{
			"date":           r.Date,
			"batch_no":       r.BatchNo,
			"item":           r.Item,
			"mould_ref":      r.MouldRef,
			"lot_no":         r.LotNo,
			"deflasher_name": r.DeflasherName,
			"qty_sent":       r.QtySent,
			"qty_received":   r.QtyReceived,
			"diff_pct":       r.DiffPct,
			"inspector_name": r.InspectorName,
			"insp_qty":       r.InspectedQty,
			"rej_qty":        r.RejectedQty,
			"rej_pct":        r.RejPct,
		}
	}
	return exporter.CSV(rows, "incoming_inspection_"+filters.Date, incomingReportColumns)
}

// ExportFinalReport writes the final visual inspection table as CSV.
func (s *ReportService) ExportFinalReport(ctx context.Context, filters models.ReportFilters, exporter *export.Exporter) error {
	records, err := s.FinalReport(ctx, filters)
	if err != nil {
		return err
	}
	rows := make([]export.Record, len(records))
	for i, r := range records {
		rows[i] = export.Record{
			"date":           r.Date,
			"lot_no":         r.LotNo,
			"base_lot":       r.BaseLot,
			"item":           r.Item,
			"mould_ref":      r.MouldRef,
			"inspector_name": r.InspectorName,
			"insp_qty":       r.InspectedQty,
			"rej_qty":        r.RejectedQty,
			"rej_pct":        r.RejPct,
		}
	}
	return exporter.CSV(rows, "final_inspection_"+filters.Date, finalReportColumns)
}

// ExportDailyReportXLSX writes a saved daily report as an Excel workbook.
func (s *ReportService) ExportDailyReportXLSX(ctx context.Context, name string, exporter *export.Exporter) error {
	report, err := s.DailyReport(ctx, name)
	if err != nil {
		return err
	}
	return exporter.XLSX(func() ([]byte, error) {
		return export.DailyReportWorkbook(report)
	}, report.Name)
}
