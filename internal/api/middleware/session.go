package middleware

import (
	"context"
	"net/http"

	"github.com/ndelvaux/flickd/internal/session"
)

type contextKey int

const stateKey contextKey = iota

// StateFrom returns the visitor state attached by WithSession, or nil
func StateFrom(r *http.Request) *session.State {
	state, _ := r.Context().Value(stateKey).(*session.State)
	return state
}

// WithSession ensures every request carries a visitor state. Unknown or
// missing cookies get a fresh anonymous state and a new cookie.
func WithSession(next http.Handler, manager *session.Manager) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var state *session.State
		if cookie, err := r.Cookie(session.CookieName); err == nil {
			state = manager.Get(cookie.Value)
		}
		if state == nil {
			state = manager.Begin()
			http.SetCookie(w, &http.Cookie{
				Name:     session.CookieName,
				Value:    state.ID,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}

		ctx := context.WithValue(r.Context(), stateKey, state)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireUser redirects anonymous visitors to the sign-in page. Applied to
// the watchlist and my-reviews views only; everything else is public.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		state := StateFrom(r)
		if state == nil || state.User() == nil {
			http.Redirect(w, r, "/sign-in", http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}
