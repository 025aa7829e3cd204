package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"rejectconsole/internal/errors"
	"rejectconsole/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientGetUnwrapsEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/method/rejection_analysis.api.get_dashboard_metrics", r.URL.Path)
		assert.Equal(t, "2025-11-26", r.URL.Query().Get("date"))
		assert.Equal(t, "token key:secret", r.Header.Get("Authorization"))

		json.NewEncoder(w).Encode(map[string]any{
			"message": map[string]any{"total_lots": 12, "avg_rejection": 4.2},
		})
	}))
	defer srv.Close()

	backend := NewBackend(NewClient(srv.URL, "key", "secret", time.Second))
	metrics, err := backend.DashboardMetrics(context.Background(), "2025-11-26", models.InspectionLot)

	require.NoError(t, err)
	assert.Equal(t, 12, metrics.TotalLots)
	assert.InDelta(t, 4.2, metrics.AvgRejection, 0.001)
}

func TestClientPostSendsJSONBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "25K26X01", body["lot_no"])

		json.NewEncoder(w).Encode(map[string]any{
			"message": map[string]any{"name": "CAR-AB12CD34", "lot_no": "25K26X01", "status": "Open"},
		})
	}))
	defer srv.Close()

	backend := NewBackend(NewClient(srv.URL, "", "", time.Second))
	created, err := backend.CreateCAR(context.Background(), &models.CorrectiveActionReport{
		InspectionEntry: "LOT-0001",
		LotNo:           "25K26X01",
	})

	require.NoError(t, err)
	assert.Equal(t, "CAR-AB12CD34", created.Name)
	assert.Equal(t, models.CARStatusOpen, created.Status)
}

func TestClientUnauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	backend := NewBackend(NewClient(srv.URL, "bad", "creds", time.Second))
	_, err := backend.ListDailyReports(context.Background())

	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.CodeUnauthorized))
}

func TestClientBackendException(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"message":   nil,
			"exception": "ValidationError: date is required",
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "", "", time.Second)
	err := client.Get(context.Background(), "get_stage_rejection", nil, &[]models.ChartPoint{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "ValidationError")
}

func TestClientServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "", "", time.Second)
	err := client.Get(context.Background(), "get_rejection_trend", nil, nil)

	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.CodeBackendError))
}
