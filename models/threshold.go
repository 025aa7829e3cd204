package models

// Default threshold values used when no configuration matches.
const (
	DefaultThresholdPct = 5.0
	DefaultWarningPct   = 3.0
	DefaultCriticalPct  = 10.0
)

// ThresholdConfig is a rejection threshold scoped to an inspection type
// and optionally a product or item group. Resolution priority is
// product > item group > global.
type ThresholdConfig struct {
	Name           string         `json:"name" db:"name"`
	InspectionType InspectionType `json:"inspection_type" db:"inspection_type"`
	ItemCode       string         `json:"item_code" db:"item_code"`
	ItemGroup      string         `json:"item_group" db:"item_group"`
	ThresholdPct   float64        `json:"threshold_percentage" db:"threshold_pct"`
	WarningPct     float64        `json:"warning_percentage" db:"warning_pct"`
	CriticalPct    float64        `json:"critical_percentage" db:"critical_pct"`
	IsActive       bool           `json:"is_active" db:"is_active"`
}

// Validate checks the ordering invariant warning < threshold < critical.
func (c *ThresholdConfig) Validate() error {
	if c.WarningPct > 0 && c.WarningPct >= c.ThresholdPct {
		return errThresholdOrder("warning threshold must be less than main threshold")
	}
	if c.CriticalPct > 0 && c.CriticalPct <= c.ThresholdPct {
		return errThresholdOrder("critical threshold must be greater than main threshold")
	}
	return nil
}

type errThresholdOrder string

func (e errThresholdOrder) Error() string { return string(e) }

// Threshold is a resolved set of limits for one inspection context.
type Threshold struct {
	ThresholdPct float64 `json:"threshold_percentage"`
	WarningPct   float64 `json:"warning_percentage"`
	CriticalPct  float64 `json:"critical_percentage"`
}

// DefaultThreshold returns the built-in limits.
func DefaultThreshold() Threshold {
	return Threshold{
		ThresholdPct: DefaultThresholdPct,
		WarningPct:   DefaultWarningPct,
		CriticalPct:  DefaultCriticalPct,
	}
}
