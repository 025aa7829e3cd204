package ui

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"

	"rejectconsole/internal/errors"
)

// renderTemplate executes a template into a buffer first so a template
// error never emits a half-written page.
func (a *App) renderTemplate(w http.ResponseWriter, templateName string, data any) {
	var buf bytes.Buffer
	if err := a.templates.ExecuteTemplate(&buf, templateName, data); err != nil {
		log.Printf("[ui] template %s failed: %v", templateName, err)
		http.Error(w, "template rendering failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := buf.WriteTo(w); err != nil {
		log.Printf("[ui] writing %s response failed: %v", templateName, err)
	}
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("[ui] encoding response failed: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondServiceError maps application error codes onto HTTP statuses.
func respondServiceError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch errors.GetCode(err) {
	case errors.CodeInvalidInput, errors.CodeValidationError:
		status = http.StatusBadRequest
	case errors.CodeNotFound:
		status = http.StatusNotFound
	case errors.CodeUnauthorized:
		status = http.StatusUnauthorized
	case errors.CodeBackendError:
		status = http.StatusBadGateway
	}
	if status == http.StatusInternalServerError {
		log.Printf("[ui] request failed: %v", err)
	}
	respondError(w, status, err.Error())
}
