package ui

import (
	"net/http"
)

func (a *App) handleDefectDistribution(w http.ResponseWriter, r *http.Request) {
	points, err := a.metrics.DefectDistribution(r.Context(), intQuery(r, "days", 30))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, points)
}

func (a *App) handleRejectionTrend(w http.ResponseWriter, r *http.Request) {
	series, err := a.analytics.RejectionTrend(r.Context(), intQuery(r, "months", 6))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, series)
}

func (a *App) handleStageRejection(w http.ResponseWriter, r *http.Request) {
	points, err := a.metrics.StageRejection(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, points)
}

func (a *App) handleOperatorPerformance(w http.ResponseWriter, r *http.Request) {
	rows, err := a.metrics.OperatorPerformance(r.Context(), intQuery(r, "days", 30), intQuery(r, "limit", 10))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rows)
}

func (a *App) handleMachinePerformance(w http.ResponseWriter, r *http.Request) {
	rows, err := a.metrics.MachinePerformance(r.Context(), intQuery(r, "days", 30), intQuery(r, "limit", 10))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rows)
}

func (a *App) handleLotDistribution(w http.ResponseWriter, r *http.Request) {
	summary, err := a.analytics.LotDistribution(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, summary)
}

func (a *App) handleLotFamilies(w http.ResponseWriter, r *http.Request) {
	families, err := a.analytics.FinalLotFamilies(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, families)
}
