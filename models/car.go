package models

import "time"

// CARStatus tracks a corrective action report through its lifecycle.
type CARStatus string

const (
	CARStatusOpen       CARStatus = "Open"
	CARStatusInProgress CARStatus = "In Progress"
	CARStatusClosed     CARStatus = "Closed"
)

// FiveWhy holds the five-why root cause analysis answers in order.
type FiveWhy struct {
	Answers []string `json:"why_answers"`
}

// CorrectiveActionReport is the remediation record raised for a lot whose
// rejection percentage exceeded its threshold.
type CorrectiveActionReport struct {
	Name               string    `json:"name" db:"name"`
	CARDate            time.Time `json:"car_date" db:"car_date"`
	InspectionEntry    string    `json:"inspection_entry" db:"inspection_entry"`
	LotNo              string    `json:"lot_no" db:"lot_no"`
	ItemCode           string    `json:"item_code" db:"item_code"`
	RejectionPct       float64   `json:"rejection_percentage" db:"rejection_pct"`
	ProblemDescription string    `json:"problem_description" db:"problem_description"`
	RootCause          string    `json:"root_cause" db:"root_cause"`
	CorrectiveAction   string    `json:"corrective_action" db:"corrective_action"`
	PreventiveAction   string    `json:"preventive_action" db:"preventive_action"`
	ResponsiblePerson  string    `json:"responsible_person" db:"responsible_person"`
	TargetDate         time.Time `json:"target_date" db:"target_date"`
	Status             CARStatus `json:"status" db:"status"`
	WhyAnswers         []string  `json:"why_answers" db:"-"`
	CreatedAt          time.Time `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time `json:"updated_at" db:"updated_at"`
}

// CARUpdate carries the editable CAR fields from the console dialog.
type CARUpdate struct {
	RootCause         string     `json:"root_cause,omitempty"`
	CorrectiveAction  string     `json:"corrective_action,omitempty"`
	PreventiveAction  string     `json:"preventive_action,omitempty"`
	ResponsiblePerson string     `json:"responsible_person,omitempty"`
	TargetDate        *time.Time `json:"target_date,omitempty"`
	Status            CARStatus  `json:"status,omitempty"`
}

// PendingCAR is a lot over threshold with no CAR raised yet.
type PendingCAR struct {
	InspectionEntry string         `json:"inspection_entry"`
	InspectionType  InspectionType `json:"inspection_type"`
	LotNo           string         `json:"lot_no"`
	ItemCode        string         `json:"item_code"`
	RejectionPct    float64        `json:"rejection_pct"`
	Threshold       float64        `json:"threshold_percentage"`
}
