package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"rejectconsole/internal/errors"
	"rejectconsole/models"
	"rejectconsole/ports"
)

// CARService raises and maintains corrective action reports for lots
// whose rejection exceeded the threshold.
type CARService struct {
	backend ports.Backend
}

// NewCARService creates the CAR service.
func NewCARService(backend ports.Backend) *CARService {
	return &CARService{backend: backend}
}

// Raise creates a CAR for an inspection entry. The problem description
// is built from the entry's defect breakdown so the report opens with
// the facts already filled in.
func (s *CARService) Raise(ctx context.Context, inspectionEntry string) (*models.CorrectiveActionReport, error) {
	if inspectionEntry == "" {
		return nil, errors.InvalidInput("inspection entry is required")
	}

	detail, err := s.backend.RejectionDetail(ctx, inspectionEntry)
	if err != nil {
		return nil, err
	}

	car := &models.CorrectiveActionReport{
		CARDate:            time.Now(),
		InspectionEntry:    detail.InspectionEntry,
		LotNo:              detail.LotNo,
		ItemCode:           detail.ItemCode,
		RejectionPct:       detail.RejectionPct,
		ProblemDescription: problemDescription(detail),
	}
	return s.backend.CreateCAR(ctx, car)
}

// problemDescription summarizes an inspection entry and its defect lines
// into the CAR's opening statement.
func problemDescription(detail *models.RejectionDetail) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Lot %s (%s) recorded %.2f%% rejection at %s: %.0f rejected of %.0f inspected.",
		detail.LotNo, detail.ItemCode, detail.RejectionPct, detail.InspectionType,
		detail.RejectedQty, detail.InspectedQty)

	if len(detail.Defects) > 0 {
		b.WriteString(" Defects:")
		for i, d := range detail.Defects {
			if i > 0 {
				b.WriteString(",")
			}
			fmt.Fprintf(&b, " %s (%.0f)", d.DefectType, d.RejectedQty)
		}
		b.WriteString(".")
	}
	return b.String()
}

// ByInspection returns the CAR raised for an inspection entry.
func (s *CARService) ByInspection(ctx context.Context, inspectionEntry string) (*models.CorrectiveActionReport, error) {
	if inspectionEntry == "" {
		return nil, errors.InvalidInput("inspection entry is required")
	}
	return s.backend.CARByInspection(ctx, inspectionEntry)
}

// Update applies the dialog fields to a CAR. Closing requires a root
// cause and corrective action on record.
func (s *CARService) Update(ctx context.Context, name string, update models.CARUpdate) (*models.CorrectiveActionReport, error) {
	if name == "" {
		return nil, errors.InvalidInput("CAR name is required")
	}
	if update.Status != "" && !validCARStatus(update.Status) {
		return nil, errors.InvalidInput("unknown CAR status")
	}
	if update.TargetDate != nil && update.TargetDate.Before(truncateDay(time.Now())) {
		return nil, errors.ValidationError("target date cannot be in the past")
	}

	if update.Status == models.CARStatusClosed {
		current, err := s.currentByName(ctx, name)
		if err != nil {
			return nil, err
		}
		rootCause := firstNonEmpty(update.RootCause, current.RootCause)
		action := firstNonEmpty(update.CorrectiveAction, current.CorrectiveAction)
		if rootCause == "" || action == "" {
			return nil, errors.ValidationError("root cause and corrective action are required before closing")
		}
	}

	return s.backend.UpdateCAR(ctx, name, update)
}

// currentByName scans the CAR list for one name. The backend contract
// keys lookups by inspection entry, so closing goes through the listing.
func (s *CARService) currentByName(ctx context.Context, name string) (*models.CorrectiveActionReport, error) {
	cars, err := s.backend.ListCARs(ctx, "")
	if err != nil {
		return nil, err
	}
	for i := range cars {
		if cars[i].Name == name {
			return &cars[i], nil
		}
	}
	return nil, errors.NotFound("corrective action report")
}

// SaveFiveWhy records the five-why analysis on a CAR. Up to five answers;
// trailing blanks are dropped.
func (s *CARService) SaveFiveWhy(ctx context.Context, name string, answers []string) error {
	if name == "" {
		return errors.InvalidInput("CAR name is required")
	}
	if len(answers) > 5 {
		return errors.ValidationError("five-why analysis takes at most five answers")
	}

	trimmed := make([]string, 0, len(answers))
	for _, a := range answers {
		trimmed = append(trimmed, strings.TrimSpace(a))
	}
	for len(trimmed) > 0 && trimmed[len(trimmed)-1] == "" {
		trimmed = trimmed[:len(trimmed)-1]
	}
	if len(trimmed) == 0 {
		return errors.ValidationError("five-why analysis needs at least one answer")
	}

	return s.backend.SaveFiveWhy(ctx, name, trimmed)
}

// Pending lists lots over threshold on date with no CAR yet.
func (s *CARService) Pending(ctx context.Context, date string) ([]models.PendingCAR, error) {
	date, err := normalizeDate(date)
	if err != nil {
		return nil, err
	}
	threshold := models.DefaultThresholdPct
	if th, err := s.backend.ThresholdFor(ctx, models.InspectionLot, "", ""); err == nil {
		threshold = th.ThresholdPct
	}
	return s.backend.PendingCARs(ctx, date, threshold)
}

// List returns CARs, optionally filtered by status.
func (s *CARService) List(ctx context.Context, status models.CARStatus) ([]models.CorrectiveActionReport, error) {
	if status != "" && !validCARStatus(status) {
		return nil, errors.InvalidInput("unknown CAR status")
	}
	return s.backend.ListCARs(ctx, status)
}

func validCARStatus(s models.CARStatus) bool {
	switch s {
	case models.CARStatusOpen, models.CARStatusInProgress, models.CARStatusClosed:
		return true
	}
	return false
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
