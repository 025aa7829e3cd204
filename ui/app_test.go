package ui

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"rejectconsole/app"
	"rejectconsole/internal/session"
	"rejectconsole/models"
	"rejectconsole/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubBackend overrides just the methods a test exercises; calling
// anything else panics through the nil embedded interface.
type stubBackend struct {
	ports.Backend
	metrics    *models.DashboardMetrics
	lotRecords []models.LotInspectionRecord
	threshold  models.Threshold
}

func (s *stubBackend) DashboardMetrics(ctx context.Context, date string, t models.InspectionType) (*models.DashboardMetrics, error) {
	return s.metrics, nil
}

func (s *stubBackend) LotInspectionReport(ctx context.Context, filters models.ReportFilters) ([]models.LotInspectionRecord, error) {
	return s.lotRecords, nil
}

func (s *stubBackend) ThresholdFor(ctx context.Context, t models.InspectionType, itemCode, itemGroup string) (models.Threshold, error) {
	return s.threshold, nil
}

func newTestApp(t *testing.T, backend ports.Backend) (*App, *session.Store) {
	t.Helper()
	sessions := session.NewStore(time.Hour)
	a, err := NewApp(Config{
		Metrics:   app.NewMetricsService(backend),
		Reports:   app.NewReportService(backend, 0),
		CARs:      app.NewCARService(backend),
		Analytics: app.NewAnalyticsService(backend),
		Sessions:  sessions,
		Username:  "quality",
		Password:  "secret",
	})
	require.NoError(t, err)
	return a, sessions
}

func authedRequest(method, target string, sessions *session.Store) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	sess := sessions.Create("quality")
	req.AddCookie(&http.Cookie{Name: sessionCookie, Value: sess.Token})
	return req
}

func TestPagesRedirectToLoginWithoutSession(t *testing.T) {
	a, _ := newTestApp(t, &stubBackend{})

	rec := httptest.NewRecorder()
	a.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestAPIReturns401WithoutSession(t *testing.T) {
	a, _ := newTestApp(t, &stubBackend{})

	rec := httptest.NewRecorder()
	a.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/metrics", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "authentication required")
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	a, _ := newTestApp(t, &stubBackend{})

	form := url.Values{"username": {"quality"}, "password": {"wrong"}}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	a.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid username or password")
}

func TestLoginSetsSessionCookie(t *testing.T) {
	a, sessions := newTestApp(t, &stubBackend{})

	form := url.Values{"username": {"quality"}, "password": {"secret"}}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	a.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, sessionCookie, cookies[0].Name)
	assert.Equal(t, 1, sessions.Count())
}

func TestLogoutDestroysSession(t *testing.T) {
	a, sessions := newTestApp(t, &stubBackend{})

	req := authedRequest(http.MethodPost, "/logout", sessions)
	rec := httptest.NewRecorder()
	a.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, 0, sessions.Count())
}

func TestMetricsEndpoint(t *testing.T) {
	backend := &stubBackend{
		metrics:   &models.DashboardMetrics{TotalLots: 9, AvgRejection: 3.25},
		threshold: models.DefaultThreshold(),
	}
	a, sessions := newTestApp(t, backend)

	req := authedRequest(http.MethodGet, "/api/metrics?date=2025-11-26&stage=Lot+Inspection", sessions)
	rec := httptest.NewRecorder()
	a.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total_lots":9`)
	assert.Contains(t, rec.Body.String(), `"avg_rejection":3.25`)
}

func TestExportLotReportDownload(t *testing.T) {
	backend := &stubBackend{
		lotRecords: []models.LotInspectionRecord{
			{ProductionDate: "2025-11-26", LotNo: "25K26X01", LotRejPct: 8.5, InspectedQty: 400, RejectedQty: 34},
		},
		threshold: models.DefaultThreshold(),
	}
	a, sessions := newTestApp(t, backend)

	req := authedRequest(http.MethodGet, "/api/reports/lot/export?date=2025-11-26", sessions)
	rec := httptest.NewRecorder()
	a.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="lot_inspection_2025-11-26.csv"`, rec.Header().Get("Content-Disposition"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "\uFEFF"))
	assert.Contains(t, rec.Body.String(), "25K26X01")
}

func TestExportLotReportNoData(t *testing.T) {
	backend := &stubBackend{threshold: models.DefaultThreshold()}
	a, sessions := newTestApp(t, backend)

	req := authedRequest(http.MethodGet, "/api/reports/lot/export?date=2025-11-26", sessions)
	rec := httptest.NewRecorder()
	a.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "no data to export")
}

func TestDashboardPageRenders(t *testing.T) {
	backend := &stubBackend{
		metrics:   &models.DashboardMetrics{TotalLots: 12, AvgRejection: 4.1, ThresholdPercentage: 5},
		threshold: models.DefaultThreshold(),
	}
	a, sessions := newTestApp(t, backend)

	req := authedRequest(http.MethodGet, "/?date=2025-11-26", sessions)
	rec := httptest.NewRecorder()
	a.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Daily Rejection Dashboard")
	assert.Contains(t, body, "4.10%")
	assert.Contains(t, body, "</html>")
}
