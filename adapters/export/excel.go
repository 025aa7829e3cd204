package export

import (
	"fmt"

	"rejectconsole/models"

	"github.com/xuri/excelize/v2"
)

// MimeXLSX is the media type used for workbook downloads.
const MimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// DailyReportWorkbook renders a saved daily report as an xlsx workbook,
// one sheet per inspection section.
func DailyReportWorkbook(report *models.DailyReport) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	if err := writeLotSheet(f, headerStyle, report.LotItems); err != nil {
		return nil, err
	}
	if err := writeIncomingSheet(f, headerStyle, report.IncomingItems); err != nil {
		return nil, err
	}
	if err := writeFinalSheet(f, headerStyle, report.FinalItems); err != nil {
		return nil, err
	}

	// The default sheet is replaced by the first section sheet.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to drop default sheet: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeLotSheet(f *excelize.File, headerStyle int, items []models.LotInspectionRecord) error {
	const sheet = "Lot Inspection"
	headers := []string{
		"Lot No", "Production Date", "Item", "Mould Ref", "Press", "Operator",
		"Patrol Rej %", "Line Rej %", "Lot Rej %", "Inspected Qty", "Rejected Qty",
		"Over Threshold", "CAR", "CAR Status",
	}
	if err := newSheet(f, sheet, headerStyle, headers); err != nil {
		return err
	}
	for i, item := range items {
		row := []any{
			item.LotNo, item.ProductionDate, item.ItemCode, item.MouldRef,
			item.PressNumber, item.OperatorName, item.PatrolRejPct, item.LineRejPct,
			item.LotRejPct, item.InspectedQty, item.RejectedQty,
			item.ExceedsThreshold, item.CARName, item.CARStatus,
		}
		if err := writeRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func writeIncomingSheet(f *excelize.File, headerStyle int, items []models.IncomingInspectionRecord) error {
	const sheet = "Incoming Inspection"
	headers := []string{
		"Lot No", "Date", "Batch", "Item", "Mould Ref", "Deflasher",
		"Qty Sent", "Qty Received", "Diff %", "Inspector",
		"Inspected Qty", "Rejected Qty", "Rej %", "Over Threshold", "CAR", "CAR Status",
	}
	if err := newSheet(f, sheet, headerStyle, headers); err != nil {
		return err
	}
	for i, item := range items {
		row := []any{
			item.LotNo, item.Date, item.BatchNo, item.Item, item.MouldRef,
			item.DeflasherName, item.QtySent, item.QtyReceived, item.DiffPct,
			item.InspectorName, item.InspectedQty, item.RejectedQty, item.RejPct,
			item.ExceedsThreshold, item.CARName, item.CARStatus,
		}
		if err := writeRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func writeFinalSheet(f *excelize.File, headerStyle int, items []models.FinalInspectionRecord) error {
	const sheet = "Final Inspection"
	headers := []string{
		"Lot No", "Base Lot", "Date", "Item", "Mould Ref", "Inspector",
		"Inspected Qty", "Rejected Qty", "Rej %", "Over Threshold", "CAR", "CAR Status",
	}
	if err := newSheet(f, sheet, headerStyle, headers); err != nil {
		return err
	}
	for i, item := range items {
		row := []any{
			item.LotNo, item.BaseLot, item.Date, item.Item, item.MouldRef,
			item.InspectorName, item.InspectedQty, item.RejectedQty, item.RejPct,
			item.ExceedsThreshold, item.CARName, item.CARStatus,
		}
		if err := writeRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func newSheet(f *excelize.File, sheet string, headerStyle int, headers []string) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
	}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}
	endCell, err := excelize.CoordinatesToCellName(len(headers), 1)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, "A1", endCell, headerStyle)
}

func writeRow(f *excelize.File, sheet string, rowNum int, values []any) error {
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, rowNum)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return err
		}
	}
	return nil
}
