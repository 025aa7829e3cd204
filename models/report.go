package models

import "time"

// ReportStatus tracks a daily report from draft to generated.
type ReportStatus string

const (
	ReportStatusDraft     ReportStatus = "Draft"
	ReportStatusGenerated ReportStatus = "Generated"
)

// DailyReport is a saved snapshot of one production date across all
// inspection sections, with rejection costs rolled up.
type DailyReport struct {
	Name          string                     `json:"name" db:"name"`
	ReportDate    time.Time                  `json:"report_date" db:"report_date"`
	Threshold     float64                    `json:"threshold_percentage" db:"threshold_pct"`
	Status        ReportStatus               `json:"status" db:"status"`
	Summary       ReportSummary              `json:"summary"`
	LotItems      []LotInspectionRecord      `json:"lot_inspection_items"`
	IncomingItems []IncomingInspectionRecord `json:"incoming_inspection_items"`
	FinalItems    []FinalInspectionRecord    `json:"final_inspection_items"`
	CreatedAt     time.Time                  `json:"created_at" db:"created_at"`
}

// ReportSummary is the header block of a daily report.
type ReportSummary struct {
	TotalLots          int     `json:"total_lots"`
	LotsOverThreshold  int     `json:"lots_over_threshold"`
	AvgRejection       float64 `json:"avg_rejection"`
	TotalInspectedQty  int     `json:"total_inspected_qty"`
	TotalRejectedQty   int     `json:"total_rejected_qty"`
	TotalRejectionCost float64 `json:"total_rejection_cost"`
	CARsRaised         int     `json:"cars_raised"`
	CARsPending        int     `json:"cars_pending"`
}

// ReportListing is the row shown on the saved reports page.
type ReportListing struct {
	Name              string    `json:"name" db:"name"`
	ReportDate        time.Time `json:"report_date" db:"report_date"`
	Status            string    `json:"status" db:"status"`
	TotalLots         int       `json:"total_lots" db:"total_lots"`
	LotsOverThreshold int       `json:"lots_over_threshold" db:"lots_over_threshold"`
	AvgRejection      float64   `json:"avg_rejection" db:"avg_rejection"`
	CreatedAt         time.Time `json:"created_at" db:"created_at"`
}

// ChartPoint is one labelled value in a chart series.
type ChartPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// TrendSeries is a time-ordered chart series with a fitted slope so the
// console can show whether rejection is improving or worsening.
type TrendSeries struct {
	Points []ChartPoint `json:"points"`
	Slope  float64      `json:"slope"`
	Trend  string       `json:"trend"`
}

// PerformanceRow ranks an operator or machine by average rejection.
type PerformanceRow struct {
	Name         string  `json:"name" db:"name"`
	Inspections  int     `json:"inspections" db:"inspections"`
	AvgRejection float64 `json:"avg_rejection" db:"avg_rejection"`
	MaxRejection float64 `json:"max_rejection" db:"max_rejection"`
}
