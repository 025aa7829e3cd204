package app

import (
	"context"

	"rejectconsole/models"

	"github.com/stretchr/testify/mock"
)

type mockBackend struct {
	mock.Mock
}

func (m *mockBackend) DashboardMetrics(ctx context.Context, date string, t models.InspectionType) (*models.DashboardMetrics, error) {
	args := m.Called(ctx, date, t)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DashboardMetrics), args.Error(1)
}

func (m *mockBackend) LotInspectionReport(ctx context.Context, filters models.ReportFilters) ([]models.LotInspectionRecord, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.LotInspectionRecord), args.Error(1)
}

func (m *mockBackend) IncomingInspectionReport(ctx context.Context, filters models.ReportFilters) ([]models.IncomingInspectionRecord, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.IncomingInspectionRecord), args.Error(1)
}

func (m *mockBackend) FinalInspectionReport(ctx context.Context, filters models.ReportFilters) ([]models.FinalInspectionRecord, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.FinalInspectionRecord), args.Error(1)
}

func (m *mockBackend) RejectionDetail(ctx context.Context, inspectionEntry string) (*models.RejectionDetail, error) {
	args := m.Called(ctx, inspectionEntry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RejectionDetail), args.Error(1)
}

func (m *mockBackend) CARByInspection(ctx context.Context, inspectionEntry string) (*models.CorrectiveActionReport, error) {
	args := m.Called(ctx, inspectionEntry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CorrectiveActionReport), args.Error(1)
}

func (m *mockBackend) CreateCAR(ctx context.Context, car *models.CorrectiveActionReport) (*models.CorrectiveActionReport, error) {
	args := m.Called(ctx, car)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CorrectiveActionReport), args.Error(1)
}

func (m *mockBackend) UpdateCAR(ctx context.Context, name string, update models.CARUpdate) (*models.CorrectiveActionReport, error) {
	args := m.Called(ctx, name, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CorrectiveActionReport), args.Error(1)
}

func (m *mockBackend) SaveFiveWhy(ctx context.Context, name string, answers []string) error {
	return m.Called(ctx, name, answers).Error(0)
}

func (m *mockBackend) PendingCARs(ctx context.Context, date string, threshold float64) ([]models.PendingCAR, error) {
	args := m.Called(ctx, date, threshold)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.PendingCAR), args.Error(1)
}

func (m *mockBackend) ListCARs(ctx context.Context, status models.CARStatus) ([]models.CorrectiveActionReport, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CorrectiveActionReport), args.Error(1)
}

func (m *mockBackend) SaveDailyReport(ctx context.Context, report *models.DailyReport) (*models.DailyReport, error) {
	args := m.Called(ctx, report)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DailyReport), args.Error(1)
}

func (m *mockBackend) DailyReport(ctx context.Context, name string) (*models.DailyReport, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DailyReport), args.Error(1)
}

func (m *mockBackend) ListDailyReports(ctx context.Context) ([]models.ReportListing, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ReportListing), args.Error(1)
}

func (m *mockBackend) DefectDistribution(ctx context.Context, days int) ([]models.ChartPoint, error) {
	args := m.Called(ctx, days)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ChartPoint), args.Error(1)
}

func (m *mockBackend) RejectionTrend(ctx context.Context, months int) ([]models.ChartPoint, error) {
	args := m.Called(ctx, months)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ChartPoint), args.Error(1)
}

func (m *mockBackend) StageRejection(ctx context.Context, date string) ([]models.ChartPoint, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ChartPoint), args.Error(1)
}

func (m *mockBackend) OperatorPerformance(ctx context.Context, days, limit int) ([]models.PerformanceRow, error) {
	args := m.Called(ctx, days, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.PerformanceRow), args.Error(1)
}

func (m *mockBackend) MachinePerformance(ctx context.Context, days, limit int) ([]models.PerformanceRow, error) {
	args := m.Called(ctx, days, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.PerformanceRow), args.Error(1)
}

func (m *mockBackend) ThresholdFor(ctx context.Context, t models.InspectionType, itemCode, itemGroup string) (models.Threshold, error) {
	args := m.Called(ctx, t, itemCode, itemGroup)
	return args.Get(0).(models.Threshold), args.Error(1)
}
