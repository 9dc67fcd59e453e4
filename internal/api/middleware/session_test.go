package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ndelvaux/flickd/internal/models"
	"github.com/ndelvaux/flickd/internal/session"
)

func requestWithState(state *session.State) *http.Request {
	r := httptest.NewRequest("GET", "/watchlist", nil)
	if state == nil {
		return r
	}
	return r.WithContext(context.WithValue(r.Context(), stateKey, state))
}

func TestRequireUserRedirectsAnonymous(t *testing.T) {
	protected := RequireUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("Protected handler reached without a user")
	}))

	for name, state := range map[string]*session.State{
		"no state":        nil,
		"anonymous state": {ID: "s1"},
	} {
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, requestWithState(state))
		if rec.Code != http.StatusFound {
			t.Errorf("%s: status = %d, want 302", name, rec.Code)
		}
		if loc := rec.Header().Get("Location"); loc != "/sign-in" {
			t.Errorf("%s: redirected to %q", name, loc)
		}
	}
}

func TestRequireUserPassesSignedIn(t *testing.T) {
	state := &session.State{ID: "s1"}
	state.SetUser(&models.User{ID: "user-1", Username: "ada-l"})

	reached := false
	protected := RequireUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		if got := StateFrom(r); got != state {
			t.Error("Handler saw a different state")
		}
	}))

	rec := httptest.NewRecorder()
	protected.ServeHTTP(rec, requestWithState(state))
	if !reached {
		t.Fatalf("Signed-in request blocked with status %d", rec.Code)
	}
}
