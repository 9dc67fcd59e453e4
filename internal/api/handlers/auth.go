package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/ndelvaux/flickd/internal/services/identity"
	"github.com/ndelvaux/flickd/internal/session"
	"github.com/sirupsen/logrus"
)

// AuthHandler handles sign-in and sign-out
type AuthHandler struct {
	sessions *session.Manager
	renderer *Renderer
	logger   *logrus.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(sessions *session.Manager, renderer *Renderer, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{
		sessions: sessions,
		renderer: renderer,
		logger:   logger,
	}
}

type signInPage struct {
	Err string
}

// SignInPage handles GET /sign-in
func (h *AuthHandler) SignInPage(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, "signin", newPageData(r, "Sign in", signInPage{}))
}

// SignIn handles POST /sign-in: resolves the provider token and swaps the
// visitor onto a signed-in session
func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	token := strings.TrimSpace(r.FormValue("token"))
	if token == "" {
		h.renderer.Render(w, "signin", newPageData(r, "Sign in", signInPage{Err: "A session token is required."}))
		return
	}

	state, err := h.sessions.SignIn(r.Context(), token)
	if err != nil {
		msg := "Sign-in failed. Try again."
		if errors.Is(err, identity.ErrUnauthorized) {
			msg = "That session token was rejected."
		}
		h.logger.WithError(err).Warn("Sign-in failed")
		h.renderer.Render(w, "signin", newPageData(r, "Sign in", signInPage{Err: msg}))
		return
	}

	// Drop the anonymous session now that a signed-in one replaces it
	if old := visitor(r); old != nil && old.ID != state.ID {
		h.sessions.SignOut(old.ID)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     session.CookieName,
		Value:    state.ID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	state.Notifier.Show("Welcome back, " + state.User().DisplayName())
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// SignOut handles POST /sign-out
func (h *AuthHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	if state := visitor(r); state != nil {
		h.sessions.SignOut(state.ID)
	}

	http.SetCookie(w, &http.Cookie{
		Name:   session.CookieName,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
