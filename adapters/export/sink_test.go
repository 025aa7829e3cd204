package export

import (
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeFileName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"My Report*2024", "my_report_2024.csv"},
		{"lot_report", "lot_report.csv"},
		{"already.csv", "already.csv"},
		{"Upper.CSV", "upper.csv"},
		{"daily/rejection:report", "daily_rejection_report.csv"},
		{"", "export.csv"},
		{"***", "___.csv"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, SanitizeFileName(c.in, ".csv"), "input %q", c.in)
	}

	assert.Equal(t, "report.xlsx", SanitizeFileName("Report", ".xlsx"))
}

func TestHTTPSinkDeliver(t *testing.T) {
	rec := httptest.NewRecorder()
	sink := NewHTTPSink(rec)

	err := sink.Deliver("lot_report.csv", MimeCSV, []byte("a,b\n1,2"))
	require.NoError(t, err)

	resp := rec.Result()
	assert.Equal(t, MimeCSV, resp.Header.Get("Content-Type"))
	assert.Equal(t, `attachment; filename="lot_report.csv"`, resp.Header.Get("Content-Disposition"))
	assert.Equal(t, "a,b\n1,2", rec.Body.String())
}

func TestDirSinkDeliver(t *testing.T) {
	dir := t.TempDir()
	sink := NewDirSink(filepath.Join(dir, "exports"))

	err := sink.Deliver("daily.csv", MimeCSV, []byte("x"))
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "exports", "daily.csv"))
	require.NoError(t, err)
	assert.Equal(t, "x", string(data))
}

func TestExporterCSVDeliversOnce(t *testing.T) {
	sink := &captureSink{}
	exporter := NewExporter(sink)

	err := exporter.CSV([]Record{{"id": 1}}, "My Export", nil)
	require.NoError(t, err)
	require.Len(t, sink.calls, 1)
	assert.Equal(t, "my_export.csv", sink.calls[0].name)
	assert.Equal(t, MimeCSV, sink.calls[0].mimeType)
}

func TestExporterCSVEmptyInputNoDelivery(t *testing.T) {
	sink := &captureSink{}
	exporter := NewExporter(sink)

	err := exporter.CSV(nil, "empty", nil)
	assert.ErrorIs(t, err, ErrNoData)
	assert.Empty(t, sink.calls)
}

type captureSink struct {
	calls []sinkCall
}

type sinkCall struct {
	name     string
	mimeType string
	data     []byte
}

func (s *captureSink) Deliver(name, mimeType string, data []byte) error {
	s.calls = append(s.calls, sinkCall{name: name, mimeType: mimeType, data: data})
	return nil
}
