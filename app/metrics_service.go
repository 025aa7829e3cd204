package app

import (
	"context"
	"time"

	"rejectconsole/internal/errors"
	"rejectconsole/models"
	"rejectconsole/ports"
)

// DateFormat is the wire format for all report dates.
const DateFormat = "2006-01-02"

// MetricsService serves the dashboard header and chart panels.
type MetricsService struct {
	backend ports.Backend
}

// NewMetricsService creates the dashboard service.
func NewMetricsService(backend ports.Backend) *MetricsService {
	return &MetricsService{backend: backend}
}

// Dashboard returns the header metrics for one date and stage. An empty
// date defaults to today.
func (s *MetricsService) Dashboard(ctx context.Context, date string, inspectionType models.InspectionType) (*models.DashboardMetrics, error) {
	date, err := normalizeDate(date)
	if err != nil {
		return nil, err
	}
	if !inspectionType.Valid() {
		return nil, errors.InvalidInput("unknown inspection type")
	}
	return s.backend.DashboardMetrics(ctx, date, inspectionType)
}

// DefectDistribution returns the defect breakdown over the trailing window.
func (s *MetricsService) DefectDistribution(ctx context.Context, days int) ([]models.ChartPoint, error) {
	if days <= 0 {
		days = 30
	}
	return s.backend.DefectDistribution(ctx, days)
}

// StageRejection returns the per-stage rejection chart for one date.
func (s *MetricsService) StageRejection(ctx context.Context, date string) ([]models.ChartPoint, error) {
	date, err := normalizeDate(date)
	if err != nil {
		return nil, err
	}
	return s.backend.StageRejection(ctx, date)
}

// OperatorPerformance ranks operators over the trailing window.
func (s *MetricsService) OperatorPerformance(ctx context.Context, days, limit int) ([]models.PerformanceRow, error) {
	return s.backend.OperatorPerformance(ctx, days, limit)
}

// MachinePerformance ranks presses over the trailing window.
func (s *MetricsService) MachinePerformance(ctx context.Context, days, limit int) ([]models.PerformanceRow, error) {
	return s.backend.MachinePerformance(ctx, days, limit)
}

// normalizeDate validates a YYYY-MM-DD date, defaulting empty to today.
func normalizeDate(date string) (string, error) {
	if date == "" {
		return time.Now().Format(DateFormat), nil
	}
	if _, err := time.Parse(DateFormat, date); err != nil {
		return "", errors.InvalidInput("date must be in YYYY-MM-DD format")
	}
	return date, nil
}
