package export

import "log"

// Exporter turns tabular view data into downloadable files through a Sink.
// It keeps no state between calls.
type Exporter struct {
	sink Sink
}

// NewExporter creates an exporter delivering through sink.
func NewExporter(sink Sink) *Exporter {
	return &Exporter{sink: sink}
}

// CSV marshals records and delivers them as fileName (sanitized, .csv
// appended when missing). Empty input delivers nothing and returns
// ErrNoData.
func (e *Exporter) CSV(records []Record, fileName string, columns []Column) error {
	data, err := Marshal(records, columns)
	if err != nil {
		return err
	}
	name := SanitizeFileName(fileName, ".csv")
	if err := e.sink.Deliver(name, MimeCSV, data); err != nil {
		log.Printf("[export] delivery of %s failed: %v", name, err)
		return err
	}
	return nil
}

// XLSX builds a workbook and delivers it as fileName with the spreadsheet
// media type.
func (e *Exporter) XLSX(build func() ([]byte, error), fileName string) error {
	data, err := build()
	if err != nil {
		return err
	}
	name := SanitizeFileName(fileName, ".xlsx")
	if err := e.sink.Deliver(name, MimeXLSX, data); err != nil {
		log.Printf("[export] delivery of %s failed: %v", name, err)
		return err
	}
	return nil
}
