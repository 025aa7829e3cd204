package postgres

import (
	"context"

	"rejectconsole/internal/errors"
	"rejectconsole/models"
)

// LotInspectionReport returns one row per lot inspection for lots
// produced on the filter date, with per-lot patrol and line averages
// folded in and CAR linkage attached.
func (b *Backend) LotInspectionReport(ctx context.Context, filters models.ReportFilters) ([]models.LotInspectionRecord, error) {
	query := `
		SELECT
			ie.name AS inspection_entry,
			COALESCE(to_char(mpe.moulding_date, 'YYYY-MM-DD'), to_char(ie.posting_date, 'YYYY-MM-DD')) AS production_date,
			COALESCE(mpe.shift_type, '') AS shift_type,
			COALESCE(NULLIF(mpe.employee_name, ''), ie.operator_name, '') AS operator_name,
			COALESCE(ie.machine_no, '') AS press_number,
			COALESCE(ie.item_code, '') AS item_code,
			COALESCE(mpe.mould_reference, '') AS mould_ref,
			ie.lot_no,
			COALESCE(patrol.avg_rej, 0) AS patrol_rej_pct,
			COALESCE(line.avg_rej, 0) AS line_rej_pct,
			ie.rejection_pct AS lot_rej_pct,
			ie.inspected_qty,
			ie.rejected_qty,
			COALESCE(car.name, '') AS car_name,
			COALESCE(car.status, '') AS car_status
		FROM inspection_entries ie
		LEFT JOIN production_entries mpe ON mpe.scan_lot_number = ie.lot_no
		LEFT JOIN corrective_action_reports car ON car.inspection_entry = ie.name
		LEFT JOIN (
			SELECT lot_no, AVG(rejection_pct) AS avg_rej
			FROM inspection_entries
			WHERE inspection_type = 'Patrol Inspection'
			GROUP BY lot_no
		) patrol ON patrol.lot_no = ie.lot_no
		LEFT JOIN (
			SELECT lot_no, AVG(rejection_pct) AS avg_rej
			FROM inspection_entries
			WHERE inspection_type = 'Line Inspection'
			GROUP BY lot_no
		) line ON line.lot_no = ie.lot_no
		WHERE ie.inspection_type = 'Lot Inspection'
		AND mpe.moulding_date = $1
	`

	args := []any{filters.Date}
	var conds []string
	conds, args = likeFilter(conds, args, "COALESCE(NULLIF(mpe.employee_name, ''), ie.operator_name)", filters.OperatorName)
	conds, args = likeFilter(conds, args, "ie.machine_no", filters.PressNumber)
	conds, args = likeFilter(conds, args, "ie.item_code", filters.ItemCode)
	conds, args = likeFilter(conds, args, "mpe.mould_reference", filters.MouldRef)
	conds, args = likeFilter(conds, args, "ie.lot_no", filters.LotNo)
	query = appendConditions(query, conds) + " ORDER BY ie.lot_no DESC"

	var records []models.LotInspectionRecord
	if err := b.db.SelectContext(ctx, &records, query, args...); err != nil {
		return nil, errors.Wrap(err, "failed to query lot inspection report")
	}

	threshold := b.resolveThreshold(ctx, models.InspectionLot)
	for i := range records {
		records[i].PatrolRejPct = round2(records[i].PatrolRejPct)
		records[i].LineRejPct = round2(records[i].LineRejPct)
		records[i].LotRejPct = round2(records[i].LotRejPct)
		records[i].Threshold = threshold
		records[i].ExceedsThreshold = records[i].LotRejPct > threshold
	}
	return records, nil
}

// IncomingInspectionReport returns one row per incoming inspection on the
// filter date, including the deflashing vendor quantities.
func (b *Backend) IncomingInspectionReport(ctx context.Context, filters models.ReportFilters) ([]models.IncomingInspectionRecord, error) {
	query := `
		SELECT
			ie.name AS inspection_entry,
			to_char(ie.posting_date, 'YYYY-MM-DD') AS date,
			COALESCE(mpe.batch_no, '') AS batch_no,
			COALESCE(mpe.item_code, ie.item_code, '') AS item,
			COALESCE(mpe.mould_reference, '') AS mould_ref,
			ie.lot_no,
			COALESCE(ie.deflasher_name, '') AS deflasher_name,
			COALESCE(ie.qty_sent, 0) AS qty_sent,
			COALESCE(ie.qty_received, 0) AS qty_received,
			CASE WHEN COALESCE(ie.qty_sent, 0) > 0
				THEN (ie.qty_sent - ie.qty_received) / ie.qty_sent * 100
				ELSE 0 END AS diff_pct,
			COALESCE(ie.inspector_name, '') AS inspector_name,
			ie.inspected_qty AS insp_qty,
			ie.rejected_qty AS rej_qty,
			ie.rejection_pct AS rej_pct,
			COALESCE(car.name, '') AS car_name,
			COALESCE(car.status, '') AS car_status
		FROM production_entries mpe
		JOIN inspection_entries ie ON ie.lot_no = mpe.scan_lot_number
			AND ie.inspection_type = 'Incoming Inspection'
		LEFT JOIN corrective_action_reports car ON car.inspection_entry = ie.name
		WHERE ie.posting_date = $1
	`

	args := []any{filters.Date}
	var conds []string
	conds, args = likeFilter(conds, args, "mpe.item_code", filters.ItemCode)
	conds, args = likeFilter(conds, args, "ie.deflasher_name", filters.Deflasher)
	conds, args = likeFilter(conds, args, "ie.lot_no", filters.LotNo)
	conds, args = likeFilter(conds, args, "mpe.mould_reference", filters.MouldRef)
	query = appendConditions(query, conds) + " ORDER BY ie.lot_no DESC"

	var records []models.IncomingInspectionRecord
	if err := b.db.SelectContext(ctx, &records, query, args...); err != nil {
		return nil, errors.Wrap(err, "failed to query incoming inspection report")
	}

	threshold := b.resolveThreshold(ctx, models.InspectionIncoming)
	for i := range records {
		records[i].DiffPct = round2(records[i].DiffPct)
		records[i].RejPct = round2(records[i].RejPct)
		records[i].Threshold = threshold
		records[i].ExceedsThreshold = records[i].RejPct > threshold
	}
	return records, nil
}

// FinalInspectionReport returns one row per final visual inspection for
// lots produced on the filter date. Final lots carry a sub-lot suffix;
// the base lot prefix links them back to production.
func (b *Backend) FinalInspectionReport(ctx context.Context, filters models.ReportFilters) ([]models.FinalInspectionRecord, error) {
	query := `
		SELECT
			ie.name AS inspection_entry,
			to_char(ie.posting_date, 'YYYY-MM-DD') AS date,
			ie.lot_no,
			split_part(ie.lot_no, '-', 1) AS base_lot,
			COALESCE(mpe.item_code, ie.item_code, '') AS item,
			COALESCE(mpe.mould_reference, '') AS mould_ref,
			COALESCE(ie.inspector_name, '') AS inspector_name,
			ie.inspected_qty AS insp_qty,
			ie.rejected_qty AS rej_qty,
			ie.rejection_pct AS rej_pct,
			COALESCE(car.name, '') AS car_name,
			COALESCE(car.status, '') AS car_status
		FROM inspection_entries ie
		JOIN production_entries mpe ON mpe.scan_lot_number = split_part(ie.lot_no, '-', 1)
		LEFT JOIN corrective_action_reports car ON car.inspection_entry = ie.name
		WHERE ie.inspection_type = 'Final Visual Inspection'
		AND mpe.moulding_date = $1
	`

	args := []any{filters.Date}
	var conds []string
	conds, args = likeFilter(conds, args, "mpe.item_code", filters.ItemCode)
	conds, args = likeFilter(conds, args, "ie.lot_no", filters.LotNo)
	conds, args = likeFilter(conds, args, "mpe.mould_reference", filters.MouldRef)
	query = appendConditions(query, conds) + " ORDER BY ie.lot_no DESC"

	var records []models.FinalInspectionRecord
	if err := b.db.SelectContext(ctx, &records, query, args...); err != nil {
		return nil, errors.Wrap(err, "failed to query final inspection report")
	}

	threshold := b.resolveThreshold(ctx, models.InspectionFinalVisual)
	for i := range records {
		records[i].RejPct = round2(records[i].RejPct)
		records[i].Threshold = threshold
		records[i].ExceedsThreshold = records[i].RejPct > threshold
	}
	return records, nil
}

// RejectionDetail loads one inspection entry with its defect breakdown.
func (b *Backend) RejectionDetail(ctx context.Context, inspectionEntry string) (*models.RejectionDetail, error) {
	var entry models.InspectionEntry
	err := b.db.GetContext(ctx, &entry, `
		SELECT name, inspection_type, lot_no, posting_date,
			COALESCE(item_code, '') AS item_code,
			COALESCE(machine_no, '') AS machine_no,
			COALESCE(operator_name, '') AS operator_name,
			COALESCE(inspector_name, '') AS inspector_name,
			inspected_qty, rejected_qty, rejection_pct
		FROM inspection_entries
		WHERE name = $1
	`, inspectionEntry)
	if err != nil {
		return nil, errors.NotFound("inspection entry")
	}

	var defects []models.DefectDetail
	err = b.db.SelectContext(ctx, &defects, `
		SELECT defect_type, rejected_qty
		FROM inspection_defects
		WHERE inspection_entry = $1
		ORDER BY rejected_qty DESC
	`, inspectionEntry)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load defect details")
	}

	return &models.RejectionDetail{
		InspectionEntry: entry.Name,
		LotNo:           entry.LotNo,
		InspectionType:  entry.Type,
		ItemCode:        entry.ItemCode,
		InspectorName:   entry.InspectorName,
		InspectedQty:    entry.InspectedQty,
		RejectedQty:     entry.RejectedQty,
		RejectionPct:    entry.RejectionPct,
		Defects:         defects,
	}, nil
}
