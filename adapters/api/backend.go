package api

import (
	"context"
	"net/url"
	"strconv"

	"rejectconsole/models"
	"rejectconsole/ports"
)

// Backend implements ports.Backend against the remote quality backend's
// RPC surface. It holds no state beyond the client; all persistence and
// aggregation happens server-side.
type Backend struct {
	client *Client
}

var _ ports.Backend = (*Backend)(nil)

// NewBackend wraps an RPC client as the console backend.
func NewBackend(client *Client) *Backend {
	return &Backend{client: client}
}

func (b *Backend) DashboardMetrics(ctx context.Context, date string, inspectionType models.InspectionType) (*models.DashboardMetrics, error) {
	params := url.Values{
		"date":            {date},
		"inspection_type": {string(inspectionType)},
	}
	var metrics models.DashboardMetrics
	if err := b.client.Get(ctx, "get_dashboard_metrics", params, &metrics); err != nil {
		return nil, err
	}
	return &metrics, nil
}

func reportParams(filters models.ReportFilters) url.Values {
	params := url.Values{"date": {filters.Date}}
	set := func(key, value string) {
		if value != "" {
			params.Set(key, value)
		}
	}
	set("operator_name", filters.OperatorName)
	set("press_number", filters.PressNumber)
	set("item_code", filters.ItemCode)
	set("mould_ref", filters.MouldRef)
	set("lot_no", filters.LotNo)
	set("deflasher", filters.Deflasher)
	return params
}

func (b *Backend) LotInspectionReport(ctx context.Context, filters models.ReportFilters) ([]models.LotInspectionRecord, error) {
	var records []models.LotInspectionRecord
	if err := b.client.Get(ctx, "get_lot_inspection_report", reportParams(filters), &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (b *Backend) IncomingInspectionReport(ctx context.Context, filters models.ReportFilters) ([]models.IncomingInspectionRecord, error) {
	var records []models.IncomingInspectionRecord
	if err := b.client.Get(ctx, "get_incoming_inspection_report", reportParams(filters), &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (b *Backend) FinalInspectionReport(ctx context.Context, filters models.ReportFilters) ([]models.FinalInspectionRecord, error) {
	var records []models.FinalInspectionRecord
	if err := b.client.Get(ctx, "get_final_inspection_report", reportParams(filters), &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (b *Backend) RejectionDetail(ctx context.Context, inspectionEntry string) (*models.RejectionDetail, error) {
	params := url.Values{"inspection_entry": {inspectionEntry}}
	var detail models.RejectionDetail
	if err := b.client.Get(ctx, "get_rejection_details", params, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

func (b *Backend) CARByInspection(ctx context.Context, inspectionEntry string) (*models.CorrectiveActionReport, error) {
	params := url.Values{"inspection_entry": {inspectionEntry}}
	var car models.CorrectiveActionReport
	if err := b.client.Get(ctx, "get_car_for_inspection", params, &car); err != nil {
		return nil, err
	}
	return &car, nil
}

func (b *Backend) CreateCAR(ctx context.Context, car *models.CorrectiveActionReport) (*models.CorrectiveActionReport, error) {
	var created models.CorrectiveActionReport
	if err := b.client.Post(ctx, "create_car", car, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (b *Backend) UpdateCAR(ctx context.Context, name string, update models.CARUpdate) (*models.CorrectiveActionReport, error) {
	body := struct {
		Name string `json:"name"`
		models.CARUpdate
	}{Name: name, CARUpdate: update}

	var updated models.CorrectiveActionReport
	if err := b.client.Post(ctx, "update_car", body, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (b *Backend) SaveFiveWhy(ctx context.Context, name string, answers []string) error {
	body := struct {
		Name    string   `json:"name"`
		Answers []string `json:"why_answers"`
	}{Name: name, Answers: answers}
	return b.client.Post(ctx, "save_five_why", body, nil)
}

func (b *Backend) PendingCARs(ctx context.Context, date string, threshold float64) ([]models.PendingCAR, error) {
	params := url.Values{
		"date":      {date},
		"threshold": {strconv.FormatFloat(threshold, 'f', -1, 64)},
	}
	var pending []models.PendingCAR
	if err := b.client.Get(ctx, "get_pending_cars", params, &pending); err != nil {
		return nil, err
	}
	return pending, nil
}

func (b *Backend) ListCARs(ctx context.Context, status models.CARStatus) ([]models.CorrectiveActionReport, error) {
	params := url.Values{}
	if status != "" {
		params.Set("status", string(status))
	}
	var cars []models.CorrectiveActionReport
	if err := b.client.Get(ctx, "list_cars", params, &cars); err != nil {
		return nil, err
	}
	return cars, nil
}

func (b *Backend) SaveDailyReport(ctx context.Context, report *models.DailyReport) (*models.DailyReport, error) {
	var saved models.DailyReport
	if err := b.client.Post(ctx, "save_daily_report", report, &saved); err != nil {
		return nil, err
	}
	return &saved, nil
}

func (b *Backend) DailyReport(ctx context.Context, name string) (*models.DailyReport, error) {
	params := url.Values{"name": {name}}
	var report models.DailyReport
	if err := b.client.Get(ctx, "get_daily_report", params, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

func (b *Backend) ListDailyReports(ctx context.Context) ([]models.ReportListing, error) {
	var listings []models.ReportListing
	if err := b.client.Get(ctx, "list_daily_reports", nil, &listings); err != nil {
		return nil, err
	}
	return listings, nil
}

func (b *Backend) DefectDistribution(ctx context.Context, days int) ([]models.ChartPoint, error) {
	params := url.Values{"days": {strconv.Itoa(days)}}
	var points []models.ChartPoint
	if err := b.client.Get(ctx, "get_defect_distribution", params, &points); err != nil {
		return nil, err
	}
	return points, nil
}

func (b *Backend) RejectionTrend(ctx context.Context, months int) ([]models.ChartPoint, error) {
	params := url.Values{"months": {strconv.Itoa(months)}}
	var points []models.ChartPoint
	if err := b.client.Get(ctx, "get_rejection_trend", params, &points); err != nil {
		return nil, err
	}
	return points, nil
}

func (b *Backend) StageRejection(ctx context.Context, date string) ([]models.ChartPoint, error) {
	params := url.Values{"date": {date}}
	var points []models.ChartPoint
	if err := b.client.Get(ctx, "get_stage_rejection", params, &points); err != nil {
		return nil, err
	}
	return points, nil
}

func (b *Backend) OperatorPerformance(ctx context.Context, days, limit int) ([]models.PerformanceRow, error) {
	return b.performance(ctx, "get_operator_performance", days, limit)
}

func (b *Backend) MachinePerformance(ctx context.Context, days, limit int) ([]models.PerformanceRow, error) {
	return b.performance(ctx, "get_machine_performance", days, limit)
}

func (b *Backend) performance(ctx context.Context, method string, days, limit int) ([]models.PerformanceRow, error) {
	params := url.Values{
		"days":  {strconv.Itoa(days)},
		"limit": {strconv.Itoa(limit)},
	}
	var rows []models.PerformanceRow
	if err := b.client.Get(ctx, method, params, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (b *Backend) ThresholdFor(ctx context.Context, inspectionType models.InspectionType, itemCode, itemGroup string) (models.Threshold, error) {
	params := url.Values{"inspection_type": {string(inspectionType)}}
	if itemCode != "" {
		params.Set("item_code", itemCode)
	}
	if itemGroup != "" {
		params.Set("item_group", itemGroup)
	}
	var th models.Threshold
	if err := b.client.Get(ctx, "get_threshold", params, &th); err != nil {
		return models.Threshold{}, err
	}
	return th, nil
}
