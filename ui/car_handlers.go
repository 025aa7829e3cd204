package ui

import (
	"encoding/json"
	"html/template"
	"net/http"

	"rejectconsole/models"

	"github.com/go-chi/chi/v5"
	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// renderMarkdown converts CAR narrative fields to HTML for the detail
// view. Raw HTML in the source is escaped, not passed through.
func renderMarkdown(src string) template.HTML {
	if src == "" {
		return ""
	}
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.NoEmptyLineBeforeBlock)
	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{
		Flags: mdhtml.CommonFlags | mdhtml.SkipHTML,
	})
	return template.HTML(markdown.ToHTML([]byte(src), p, renderer))
}

type carView struct {
	models.CorrectiveActionReport
	ProblemHTML   template.HTML
	RootCauseHTML template.HTML
}

func (a *App) handleCARsPage(w http.ResponseWriter, r *http.Request) {
	status := models.CARStatus(r.URL.Query().Get("status"))
	cars, err := a.cars.List(r.Context(), status)
	if err != nil {
		a.renderTemplate(w, "cars.html", map[string]any{"Error": err.Error()})
		return
	}

	views := make([]carView, len(cars))
	for i, car := range cars {
		views[i] = carView{
			CorrectiveActionReport: car,
			ProblemHTML:            renderMarkdown(car.ProblemDescription),
			RootCauseHTML:          renderMarkdown(car.RootCause),
		}
	}
	a.renderTemplate(w, "cars.html", map[string]any{
		"CARs":   views,
		"Status": string(status),
	})
}

func (a *App) handleListCARs(w http.ResponseWriter, r *http.Request) {
	cars, err := a.cars.List(r.Context(), models.CARStatus(r.URL.Query().Get("status")))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, cars)
}

func (a *App) handlePendingCARs(w http.ResponseWriter, r *http.Request) {
	pending, err := a.cars.Pending(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, pending)
}

func (a *App) handleRaiseCAR(w http.ResponseWriter, r *http.Request) {
	var body struct {
		InspectionEntry string `json:"inspection_entry"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	car, err := a.cars.Raise(r.Context(), body.InspectionEntry)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, car)
}

func (a *App) handleCARByInspection(w http.ResponseWriter, r *http.Request) {
	car, err := a.cars.ByInspection(r.Context(), chi.URLParam(r, "entry"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, car)
}

func (a *App) handleUpdateCAR(w http.ResponseWriter, r *http.Request) {
	var update models.CARUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	car, err := a.cars.Update(r.Context(), chi.URLParam(r, "name"), update)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, car)
}

func (a *App) handleSaveFiveWhy(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Answers []string `json:"why_answers"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := a.cars.SaveFiveWhy(r.Context(), chi.URLParam(r, "name"), body.Answers); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "saved"})
}
