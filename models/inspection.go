package models

import "time"

// InspectionType identifies the inspection stage a record belongs to.
type InspectionType string

const (
	InspectionPatrol      InspectionType = "Patrol Inspection"
	InspectionLine        InspectionType = "Line Inspection"
	InspectionLot         InspectionType = "Lot Inspection"
	InspectionIncoming    InspectionType = "Incoming Inspection"
	InspectionFinalVisual InspectionType = "Final Visual Inspection"
)

// StageTypes lists the inspection stages in workflow order.
var StageTypes = []InspectionType{
	InspectionPatrol,
	InspectionLine,
	InspectionLot,
	InspectionIncoming,
	InspectionFinalVisual,
}

// Valid reports whether t is a known inspection type.
func (t InspectionType) Valid() bool {
	for _, s := range StageTypes {
		if s == t {
			return true
		}
	}
	return false
}

// InspectionEntry is a submitted inspection document for one lot at one stage.
type InspectionEntry struct {
	Name          string         `json:"name" db:"name"`
	Type          InspectionType `json:"inspection_type" db:"inspection_type"`
	LotNo         string         `json:"lot_no" db:"lot_no"`
	PostingDate   time.Time      `json:"posting_date" db:"posting_date"`
	ItemCode      string         `json:"item_code" db:"item_code"`
	MachineNo     string         `json:"machine_no" db:"machine_no"`
	OperatorName  string         `json:"operator_name" db:"operator_name"`
	InspectorName string         `json:"inspector_name" db:"inspector_name"`
	InspectedQty  float64        `json:"total_inspected_qty" db:"inspected_qty"`
	RejectedQty   float64        `json:"total_rejected_qty" db:"rejected_qty"`
	RejectionPct  float64        `json:"rejection_pct" db:"rejection_pct"`

	// Deflashing vendor round trip, set on incoming inspections only.
	DeflasherName string  `json:"deflasher_name,omitempty" db:"deflasher_name"`
	QtySent       float64 `json:"qty_sent,omitempty" db:"qty_sent"`
	QtyReceived   float64 `json:"qty_received,omitempty" db:"qty_received"`
}

// ProductionEntry is the moulding production record that anchors a lot.
// All report queries start here: the scan lot number is the join key for
// every downstream inspection stage.
type ProductionEntry struct {
	Name           string    `json:"name" db:"name"`
	ScanLotNumber  string    `json:"scan_lot_number" db:"scan_lot_number"`
	ItemCode       string    `json:"item_code" db:"item_code"`
	MouldReference string    `json:"mould_reference" db:"mould_reference"`
	EmployeeName   string    `json:"employee_name" db:"employee_name"`
	MouldingDate   time.Time `json:"moulding_date" db:"moulding_date"`
	BatchNo        string    `json:"batch_no" db:"batch_no"`
	ShiftType      string    `json:"shift_type" db:"shift_type"`
}

// DashboardMetrics is the aggregated header block for one date and stage.
type DashboardMetrics struct {
	TotalLots              int     `json:"total_lots"`
	PendingLots            int     `json:"pending_lots"`
	AvgRejection           float64 `json:"avg_rejection"`
	LotsExceedingThreshold int     `json:"lots_exceeding_threshold"`
	TotalInspectedQty      int     `json:"total_inspected_qty"`
	TotalRejectedQty       int     `json:"total_rejected_qty"`
	PatrolRejAvg           float64 `json:"patrol_rej_avg"`
	LineRejAvg             float64 `json:"line_rej_avg"`
	ThresholdPercentage    float64 `json:"threshold_percentage"`
}

// ReportFilters narrows report queries. Date is required; the rest are
// optional partial matches.
type ReportFilters struct {
	Date         string `json:"date"`
	OperatorName string `json:"operator_name,omitempty"`
	PressNumber  string `json:"press_number,omitempty"`
	ItemCode     string `json:"item_code,omitempty"`
	MouldRef     string `json:"mould_ref,omitempty"`
	LotNo        string `json:"lot_no,omitempty"`
	Deflasher    string `json:"deflasher,omitempty"`
}

// LotInspectionRecord is one row of the lot inspection report, with the
// patrol and line stage averages folded in per lot.
type LotInspectionRecord struct {
	InspectionEntry  string  `json:"inspection_entry" db:"inspection_entry"`
	ProductionDate   string  `json:"production_date" db:"production_date"`
	ShiftType        string  `json:"shift_type" db:"shift_type"`
	OperatorName     string  `json:"operator_name" db:"operator_name"`
	PressNumber      string  `json:"press_number" db:"press_number"`
	ItemCode         string  `json:"item_code" db:"item_code"`
	MouldRef         string  `json:"mould_ref" db:"mould_ref"`
	LotNo            string  `json:"lot_no" db:"lot_no"`
	PatrolRejPct     float64 `json:"patrol_rej_pct" db:"patrol_rej_pct"`
	LineRejPct       float64 `json:"line_rej_pct" db:"line_rej_pct"`
	LotRejPct        float64 `json:"lot_rej_pct" db:"lot_rej_pct"`
	InspectedQty     float64 `json:"inspected_qty" db:"inspected_qty"`
	RejectedQty      float64 `json:"rejected_qty" db:"rejected_qty"`
	ExceedsThreshold bool    `json:"exceeds_threshold" db:"-"`
	Threshold        float64 `json:"threshold_percentage" db:"-"`
	CARName          string  `json:"car_name" db:"car_name"`
	CARStatus        string  `json:"car_status" db:"car_status"`
}

// IncomingInspectionRecord is one row of the incoming inspection report,
// including deflashing vendor quantities.
type IncomingInspectionRecord struct {
	InspectionEntry  string  `json:"inspection_entry" db:"inspection_entry"`
	Date             string  `json:"date" db:"date"`
	BatchNo          string  `json:"batch_no" db:"batch_no"`
	Item             string  `json:"item" db:"item"`
	MouldRef         string  `json:"mould_ref" db:"mould_ref"`
	LotNo            string  `json:"lot_no" db:"lot_no"`
	DeflasherName    string  `json:"deflasher_name" db:"deflasher_name"`
	QtySent          float64 `json:"qty_sent" db:"qty_sent"`
	QtyReceived      float64 `json:"qty_received" db:"qty_received"`
	DiffPct          float64 `json:"diff_pct" db:"diff_pct"`
	InspectorName    string  `json:"inspector_name" db:"inspector_name"`
	InspectedQty     float64 `json:"insp_qty" db:"insp_qty"`
	RejectedQty      float64 `json:"rej_qty" db:"rej_qty"`
	RejPct           float64 `json:"rej_pct" db:"rej_pct"`
	ExceedsThreshold bool    `json:"exceeds_threshold" db:"-"`
	Threshold        float64 `json:"threshold_percentage" db:"-"`
	CARName          string  `json:"car_name" db:"car_name"`
	CARStatus        string  `json:"car_status" db:"car_status"`
}

// FinalInspectionRecord is one row of the final visual inspection report.
// Final lots carry a suffix after the base lot number; BaseLot is the
// prefix before the first dash, used to group sub-lots back to production.
type FinalInspectionRecord struct {
	InspectionEntry  string  `json:"inspection_entry" db:"inspection_entry"`
	Date             string  `json:"date" db:"date"`
	LotNo            string  `json:"lot_no" db:"lot_no"`
	BaseLot          string  `json:"base_lot" db:"base_lot"`
	Item             string  `json:"item" db:"item"`
	MouldRef         string  `json:"mould_ref" db:"mould_ref"`
	InspectorName    string  `json:"inspector_name" db:"inspector_name"`
	InspectedQty     float64 `json:"insp_qty" db:"insp_qty"`
	RejectedQty      float64 `json:"rej_qty" db:"rej_qty"`
	RejPct           float64 `json:"rej_pct" db:"rej_pct"`
	ExceedsThreshold bool    `json:"exceeds_threshold" db:"-"`
	Threshold        float64 `json:"threshold_percentage" db:"-"`
	CARName          string  `json:"car_name" db:"car_name"`
	CARStatus        string  `json:"car_status" db:"car_status"`
}

// DefectDetail is one defect line inside an inspection entry.
type DefectDetail struct {
	DefectType  string  `json:"type_of_defect" db:"defect_type"`
	RejectedQty float64 `json:"rejected_qty" db:"rejected_qty"`
}

// RejectionDetail is the drill-in payload for a single inspection entry.
type RejectionDetail struct {
	InspectionEntry string         `json:"inspection_entry"`
	LotNo           string         `json:"lot_no"`
	InspectionType  InspectionType `json:"inspection_type"`
	ItemCode        string         `json:"item_code"`
	InspectorName   string         `json:"inspector_name"`
	InspectedQty    float64        `json:"inspected_qty"`
	RejectedQty     float64        `json:"rejected_qty"`
	RejectionPct    float64        `json:"rejection_pct"`
	Defects         []DefectDetail `json:"defects"`
}
