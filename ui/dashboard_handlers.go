package ui

import (
	"net/http"
	"strconv"

	"rejectconsole/models"
)

func stageFromQuery(r *http.Request) models.InspectionType {
	stage := models.InspectionType(r.URL.Query().Get("stage"))
	if stage == "" {
		return models.InspectionLot
	}
	return stage
}

func intQuery(r *http.Request, key string, fallback int) int {
	if raw := r.URL.Query().Get(key); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			return n
		}
	}
	return fallback
}

func (a *App) handleDashboard(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	stage := stageFromQuery(r)

	metrics, err := a.metrics.Dashboard(r.Context(), date, stage)
	if err != nil {
		a.renderTemplate(w, "dashboard.html", map[string]any{
			"Error":  err.Error(),
			"Date":   date,
			"Stage":  stage,
			"Stages": models.StageTypes,
		})
		return
	}

	a.renderTemplate(w, "dashboard.html", map[string]any{
		"Metrics": metrics,
		"Date":    date,
		"Stage":   stage,
		"Stages":  models.StageTypes,
	})
}

func (a *App) handleMetrics(w http.ResponseWriter, r *http.Request) {
	metrics, err := a.metrics.Dashboard(r.Context(), r.URL.Query().Get("date"), stageFromQuery(r))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, metrics)
}
