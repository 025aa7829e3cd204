package ui

import (
	"context"
	"net/http"

	"rejectconsole/internal/session"
)

type contextKey string

const sessionKey contextKey = "session"

const sessionCookie = "console_session"

// requirePageAuth gates HTML pages: unauthenticated visitors are sent to
// the login form.
func (a *App) requirePageAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, ok := a.currentSession(r)
		if !ok {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), sessionKey, sess)))
	})
}

// requireAPIAuth gates the JSON API with a 401 instead of a redirect.
func (a *App) requireAPIAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, ok := a.currentSession(r)
		if !ok {
			respondError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), sessionKey, sess)))
	})
}

func (a *App) currentSession(r *http.Request) (*session.Session, bool) {
	cookie, err := r.Cookie(sessionCookie)
	if err != nil || cookie.Value == "" {
		return nil, false
	}
	sess, ok := a.sessions.Get(cookie.Value)
	if !ok {
		return nil, false
	}
	return sess, true
}
