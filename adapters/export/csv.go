package export

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"math"
	"sort"
	"strconv"
	"strings"
)

// ErrNoData is returned when an export is attempted with no records.
// The condition is logged and no artifact is produced.
var ErrNoData = errors.New("export: no data to export")

// MimeCSV is the media type used for CSV downloads.
const MimeCSV = "text/csv"

// utf8BOM makes spreadsheet applications detect the encoding correctly.
const utf8BOM = "\uFEFF"

// Record is one exportable row: field name to scalar value. Values may be
// numbers, strings, or nil; missing keys export as empty cells.
type Record map[string]any

// Column selects a source field and the header text it exports under.
// A []Column is the export's column mapping: it fixes both the field set
// and the column order.
type Column struct {
	Key    string
	Header string
}

// Marshal serializes records to CSV bytes, BOM-prefixed, header row first,
// rows in input order. When columns is nil the first record's keys are used
// in sorted order, with the keys themselves as headers.
func Marshal(records []Record, columns []Column) ([]byte, error) {
	if len(records) == 0 {
		log.Printf("[export] no data to export")
		return nil, ErrNoData
	}

	if len(columns) == 0 {
		columns = defaultColumns(records[0])
	}

	var buf bytes.Buffer
	buf.WriteString(utf8BOM)

	for i, col := range columns {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(escapeCell(col.Header))
	}

	for _, rec := range records {
		buf.WriteByte('\n')
		for i, col := range columns {
			if i > 0 {
				buf.WriteByte(',')
			}
			buf.WriteString(escapeCell(formatCell(rec[col.Key])))
		}
	}

	return buf.Bytes(), nil
}

// defaultColumns derives the column set from a record's own keys. Map
// iteration order is not stable in Go, so sorted key order stands in for
// the record's natural enumeration order.
func defaultColumns(rec Record) []Column {
	keys := make([]string, 0, len(rec))
	for k := range rec {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	columns := make([]Column, len(keys))
	for i, k := range keys {
		columns[i] = Column{Key: k, Header: k}
	}
	return columns
}

// formatCell converts a scalar to its cell text. Non-integer numbers are
// fixed to two decimals; integer-valued numbers carry no decimal point;
// nil exports as an empty cell.
func formatCell(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return formatFloat(t)
	case float32:
		return formatFloat(float64(t))
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprint(t)
	}
}

func formatFloat(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return ""
	}
	if f == math.Trunc(f) {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return strconv.FormatFloat(f, 'f', 2, 64)
}

// escapeCell quotes a cell only when it contains a comma, a double quote,
// or a newline, doubling any internal quotes.
func escapeCell(s string) string {
	if !strings.ContainsAny(s, ",\"\n\r") {
		return s
	}
	return "\"" + strings.ReplaceAll(s, "\"", "\"\"") + "\""
}
