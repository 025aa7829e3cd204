package ui

import (
	"errors"
	"net/http"

	"rejectconsole/adapters/export"
	"rejectconsole/models"

	"github.com/go-chi/chi/v5"
)

func filtersFromQuery(r *http.Request) models.ReportFilters {
	q := r.URL.Query()
	return models.ReportFilters{
		Date:         q.Get("date"),
		OperatorName: q.Get("operator"),
		PressNumber:  q.Get("press"),
		ItemCode:     q.Get("item"),
		MouldRef:     q.Get("mould"),
		LotNo:        q.Get("lot"),
		Deflasher:    q.Get("deflasher"),
	}
}

// Report pages render the table shell; rows load through the JSON API.

func (a *App) handleLotReportPage(w http.ResponseWriter, r *http.Request) {
	a.renderTemplate(w, "report_lot.html", map[string]any{
		"Filters": filtersFromQuery(r),
	})
}

func (a *App) handleIncomingReportPage(w http.ResponseWriter, r *http.Request) {
	a.renderTemplate(w, "report_incoming.html", map[string]any{
		"Filters": filtersFromQuery(r),
	})
}

func (a *App) handleFinalReportPage(w http.ResponseWriter, r *http.Request) {
	a.renderTemplate(w, "report_final.html", map[string]any{
		"Filters": filtersFromQuery(r),
	})
}

func (a *App) handleSavedReportsPage(w http.ResponseWriter, r *http.Request) {
	listings, err := a.reports.ListDailyReports(r.Context())
	if err != nil {
		a.renderTemplate(w, "reports_saved.html", map[string]any{"Error": err.Error()})
		return
	}
	a.renderTemplate(w, "reports_saved.html", map[string]any{"Reports": listings})
}

func (a *App) handleLotReport(w http.ResponseWriter, r *http.Request) {
	records, err := a.reports.LotReport(r.Context(), filtersFromQuery(r))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, records)
}

func (a *App) handleIncomingReport(w http.ResponseWriter, r *http.Request) {
	records, err := a.reports.IncomingReport(r.Context(), filtersFromQuery(r))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, records)
}

func (a *App) handleFinalReport(w http.ResponseWriter, r *http.Request) {
	records, err := a.reports.FinalReport(r.Context(), filtersFromQuery(r))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, records)
}

func (a *App) handleRejectionDetail(w http.ResponseWriter, r *http.Request) {
	detail, err := a.reports.RejectionDetail(r.Context(), chi.URLParam(r, "entry"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, detail)
}

// exportError maps the no-data case to 404 so the browser shows a
// message instead of downloading an empty file.
func exportError(w http.ResponseWriter, err error) {
	if err == nil {
		return
	}
	if errors.Is(err, export.ErrNoData) {
		respondError(w, http.StatusNotFound, "no data to export for the selected filters")
		return
	}
	respondServiceError(w, err)
}

func (a *App) handleExportLotReport(w http.ResponseWriter, r *http.Request) {
	sink := export.NewHTTPSink(w)
	exportError(w, a.reports.ExportLotReport(r.Context(), filtersFromQuery(r), export.NewExporter(sink)))
}

func (a *App) handleExportIncomingReport(w http.ResponseWriter, r *http.Request) {
	sink := export.NewHTTPSink(w)
	exportError(w, a.reports.ExportIncomingReport(r.Context(), filtersFromQuery(r), export.NewExporter(sink)))
}

func (a *App) handleExportFinalReport(w http.ResponseWriter, r *http.Request) {
	sink := export.NewHTTPSink(w)
	exportError(w, a.reports.ExportFinalReport(r.Context(), filtersFromQuery(r), export.NewExporter(sink)))
}

func (a *App) handleSaveDailyReport(w http.ResponseWriter, r *http.Request) {
	report, err := a.reports.SaveDailyReport(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, report)
}

func (a *App) handleListDailyReports(w http.ResponseWriter, r *http.Request) {
	listings, err := a.reports.ListDailyReports(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, listings)
}

func (a *App) handleGetDailyReport(w http.ResponseWriter, r *http.Request) {
	report, err := a.reports.DailyReport(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, report)
}

func (a *App) handleExportDailyReport(w http.ResponseWriter, r *http.Request) {
	sink := export.NewHTTPSink(w)
	err := a.reports.ExportDailyReportXLSX(r.Context(), chi.URLParam(r, "name"), export.NewExporter(sink))
	exportError(w, err)
}
