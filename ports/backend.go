package ports

import (
	"context"

	"rejectconsole/models"
)

// Backend is the console's only data surface. The canonical implementation
// speaks HTTP RPC to the quality backend; the postgres adapter implements
// the same contract locally for self-contained deployments. The console
// core never persists business data itself.
type Backend interface {
	MetricsReader
	ReportReader
	CARStore
	DailyReportStore
	ChartReader
	ThresholdReader
}

// MetricsReader serves the dashboard header block.
type MetricsReader interface {
	DashboardMetrics(ctx context.Context, date string, inspectionType models.InspectionType) (*models.DashboardMetrics, error)
}

// ReportReader serves the stage report tables and defect drill-in.
type ReportReader interface {
	LotInspectionReport(ctx context.Context, filters models.ReportFilters) ([]models.LotInspectionRecord, error)
	IncomingInspectionReport(ctx context.Context, filters models.ReportFilters) ([]models.IncomingInspectionRecord, error)
	FinalInspectionReport(ctx context.Context, filters models.ReportFilters) ([]models.FinalInspectionRecord, error)
	RejectionDetail(ctx context.Context, inspectionEntry string) (*models.RejectionDetail, error)
}

// CARStore reads and writes corrective action reports.
type CARStore interface {
	CARByInspection(ctx context.Context, inspectionEntry string) (*models.CorrectiveActionReport, error)
	CreateCAR(ctx context.Context, car *models.CorrectiveActionReport) (*models.CorrectiveActionReport, error)
	UpdateCAR(ctx context.Context, name string, update models.CARUpdate) (*models.CorrectiveActionReport, error)
	SaveFiveWhy(ctx context.Context, name string, answers []string) error
	PendingCARs(ctx context.Context, date string, threshold float64) ([]models.PendingCAR, error)
	ListCARs(ctx context.Context, status models.CARStatus) ([]models.CorrectiveActionReport, error)
}

// DailyReportStore persists and retrieves saved daily reports.
type DailyReportStore interface {
	SaveDailyReport(ctx context.Context, report *models.DailyReport) (*models.DailyReport, error)
	DailyReport(ctx context.Context, name string) (*models.DailyReport, error)
	ListDailyReports(ctx context.Context) ([]models.ReportListing, error)
}

// ChartReader serves raw series for the dashboard charts.
type ChartReader interface {
	DefectDistribution(ctx context.Context, days int) ([]models.ChartPoint, error)
	RejectionTrend(ctx context.Context, months int) ([]models.ChartPoint, error)
	StageRejection(ctx context.Context, date string) ([]models.ChartPoint, error)
	OperatorPerformance(ctx context.Context, days, limit int) ([]models.PerformanceRow, error)
	MachinePerformance(ctx context.Context, days, limit int) ([]models.PerformanceRow, error)
}

// ThresholdReader resolves rejection thresholds for an inspection context.
type ThresholdReader interface {
	ThresholdFor(ctx context.Context, inspectionType models.InspectionType, itemCode, itemGroup string) (models.Threshold, error)
}
