package postgres

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"rejectconsole/internal/errors"
	"rejectconsole/models"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type carRow struct {
	Name               string         `db:"name"`
	CARDate            time.Time      `db:"car_date"`
	InspectionEntry    string         `db:"inspection_entry"`
	LotNo              string         `db:"lot_no"`
	ItemCode           string         `db:"item_code"`
	RejectionPct       float64        `db:"rejection_pct"`
	ProblemDescription string         `db:"problem_description"`
	RootCause          string         `db:"root_cause"`
	CorrectiveAction   string         `db:"corrective_action"`
	PreventiveAction   string         `db:"preventive_action"`
	ResponsiblePerson  string         `db:"responsible_person"`
	TargetDate         sql.NullTime   `db:"target_date"`
	Status             string         `db:"status"`
	WhyAnswers         pq.StringArray `db:"why_answers"`
	CreatedAt          time.Time      `db:"created_at"`
	UpdatedAt          time.Time      `db:"updated_at"`
}

func (r carRow) toModel() *models.CorrectiveActionReport {
	car := &models.CorrectiveActionReport{
		Name:               r.Name,
		CARDate:            r.CARDate,
		InspectionEntry:    r.InspectionEntry,
		LotNo:              r.LotNo,
		ItemCode:           r.ItemCode,
		RejectionPct:       r.RejectionPct,
		ProblemDescription: r.ProblemDescription,
		RootCause:          r.RootCause,
		CorrectiveAction:   r.CorrectiveAction,
		PreventiveAction:   r.PreventiveAction,
		ResponsiblePerson:  r.ResponsiblePerson,
		Status:             models.CARStatus(r.Status),
		WhyAnswers:         []string(r.WhyAnswers),
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}
	if r.TargetDate.Valid {
		car.TargetDate = r.TargetDate.Time
	}
	return car
}

const carColumns = `
	name, car_date, inspection_entry,
	COALESCE(lot_no, '') AS lot_no,
	COALESCE(item_code, '') AS item_code,
	COALESCE(rejection_pct, 0) AS rejection_pct,
	COALESCE(problem_description, '') AS problem_description,
	COALESCE(root_cause, '') AS root_cause,
	COALESCE(corrective_action, '') AS corrective_action,
	COALESCE(preventive_action, '') AS preventive_action,
	COALESCE(responsible_person, '') AS responsible_person,
	target_date, status, why_answers, created_at, updated_at`

// CARByInspection returns the CAR raised for an inspection entry, if any.
func (b *Backend) CARByInspection(ctx context.Context, inspectionEntry string) (*models.CorrectiveActionReport, error) {
	var row carRow
	err := b.db.GetContext(ctx, &row, `
		SELECT `+carColumns+`
		FROM corrective_action_reports
		WHERE inspection_entry = $1
	`, inspectionEntry)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.NotFound("corrective action report")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load CAR")
	}
	return row.toModel(), nil
}

// CreateCAR inserts a new CAR. One CAR per inspection entry; a second
// create for the same entry returns a validation error.
func (b *Backend) CreateCAR(ctx context.Context, car *models.CorrectiveActionReport) (*models.CorrectiveActionReport, error) {
	name := fmt.Sprintf("CAR-%s", strings.ToUpper(uuid.NewString()[:8]))
	carDate := car.CARDate
	if carDate.IsZero() {
		carDate = time.Now()
	}

	_, err := b.db.ExecContext(ctx, `
		INSERT INTO corrective_action_reports
			(name, car_date, inspection_entry, lot_no, item_code, rejection_pct, problem_description, status, why_answers)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, '{}')
	`, name, carDate, car.InspectionEntry, car.LotNo, car.ItemCode, car.RejectionPct, car.ProblemDescription, models.CARStatusOpen)
	if err != nil {
		var pqErr *pq.Error
		if stderrors.As(err, &pqErr) && pqErr.Code == "23505" { // unique_violation
			return nil, errors.ValidationError("a CAR already exists for this inspection entry")
		}
		return nil, errors.Wrap(err, "failed to create CAR")
	}

	return b.carByName(ctx, name)
}

// UpdateCAR applies the editable dialog fields to an existing CAR.
func (b *Backend) UpdateCAR(ctx context.Context, name string, update models.CARUpdate) (*models.CorrectiveActionReport, error) {
	sets := []string{"updated_at = NOW()"}
	args := []any{}

	set := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if update.RootCause != "" {
		set("root_cause", update.RootCause)
	}
	if update.CorrectiveAction != "" {
		set("corrective_action", update.CorrectiveAction)
	}
	if update.PreventiveAction != "" {
		set("preventive_action", update.PreventiveAction)
	}
	if update.ResponsiblePerson != "" {
		set("responsible_person", update.ResponsiblePerson)
	}
	if update.TargetDate != nil {
		set("target_date", *update.TargetDate)
	}
	if update.Status != "" {
		set("status", string(update.Status))
	}

	args = append(args, name)
	query := fmt.Sprintf(`
		UPDATE corrective_action_reports
		SET %s
		WHERE name = $%d
	`, strings.Join(sets, ", "), len(args))

	res, err := b.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to update CAR")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, errors.NotFound("corrective action report")
	}
	return b.carByName(ctx, name)
}

// SaveFiveWhy replaces the five-why analysis answers on a CAR.
func (b *Backend) SaveFiveWhy(ctx context.Context, name string, answers []string) error {
	res, err := b.db.ExecContext(ctx, `
		UPDATE corrective_action_reports
		SET why_answers = $1, updated_at = NOW()
		WHERE name = $2
	`, pq.Array(answers), name)
	if err != nil {
		return errors.Wrap(err, "failed to save five-why analysis")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.NotFound("corrective action report")
	}
	return nil
}

// PendingCARs lists lots over threshold on date with no CAR raised yet,
// across all inspection stages.
func (b *Backend) PendingCARs(ctx context.Context, date string, threshold float64) ([]models.PendingCAR, error) {
	var rows []struct {
		InspectionEntry string  `db:"inspection_entry"`
		InspectionType  string  `db:"inspection_type"`
		LotNo           string  `db:"lot_no"`
		ItemCode        string  `db:"item_code"`
		RejectionPct    float64 `db:"rejection_pct"`
	}
	err := b.db.SelectContext(ctx, &rows, `
		SELECT ie.name AS inspection_entry, ie.inspection_type, ie.lot_no,
			COALESCE(ie.item_code, '') AS item_code, ie.rejection_pct
		FROM inspection_entries ie
		WHERE ie.posting_date = $1
		AND ie.rejection_pct > $2
		AND NOT EXISTS (
			SELECT 1 FROM corrective_action_reports car
			WHERE car.inspection_entry = ie.name
		)
		ORDER BY ie.rejection_pct DESC
	`, date, threshold)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query pending CARs")
	}

	pending := make([]models.PendingCAR, len(rows))
	for i, r := range rows {
		pending[i] = models.PendingCAR{
			InspectionEntry: r.InspectionEntry,
			InspectionType:  models.InspectionType(r.InspectionType),
			LotNo:           r.LotNo,
			ItemCode:        r.ItemCode,
			RejectionPct:    round2(r.RejectionPct),
			Threshold:       threshold,
		}
	}
	return pending, nil
}

// ListCARs returns CARs, optionally filtered by status, newest first.
func (b *Backend) ListCARs(ctx context.Context, status models.CARStatus) ([]models.CorrectiveActionReport, error) {
	query := `SELECT ` + carColumns + ` FROM corrective_action_reports`
	args := []any{}
	if status != "" {
		query += " WHERE status = $1"
		args = append(args, string(status))
	}
	query += " ORDER BY created_at DESC"

	var rows []carRow
	if err := b.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "failed to list CARs")
	}

	cars := make([]models.CorrectiveActionReport, len(rows))
	for i, r := range rows {
		cars[i] = *r.toModel()
	}
	return cars, nil
}

func (b *Backend) carByName(ctx context.Context, name string) (*models.CorrectiveActionReport, error) {
	var row carRow
	err := b.db.GetContext(ctx, &row, `
		SELECT `+carColumns+`
		FROM corrective_action_reports
		WHERE name = $1
	`, name)
	if err != nil {
		return nil, errors.Wrap(err, "failed to reload CAR")
	}
	return row.toModel(), nil
}
