package handlers

import (
	"net/http"

	"github.com/ndelvaux/flickd/internal/controllers"
	"github.com/ndelvaux/flickd/internal/models"
	"github.com/ndelvaux/flickd/internal/query"
	"github.com/ndelvaux/flickd/internal/services/backend"
	"github.com/sirupsen/logrus"
)

// HomeHandler renders the landing page
type HomeHandler struct {
	home     *controllers.Home
	backend  *backend.Client
	renderer *Renderer
	logger   *logrus.Logger
}

// NewHomeHandler creates a new home handler
func NewHomeHandler(home *controllers.Home, backendClient *backend.Client, renderer *Renderer, logger *logrus.Logger) *HomeHandler {
	return &HomeHandler{
		home:     home,
		backend:  backendClient,
		renderer: renderer,
		logger:   logger,
	}
}

type homePage struct {
	Banner      controllers.BannerSnapshot
	Trending    query.Snapshot[[]models.Movie]
	Preferences []backend.PreferenceCategory
	Summary     string
}

// ServeHTTP handles GET /
func (h *HomeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	page := homePage{
		Banner:   h.home.Banner(),
		Trending: h.home.Trending(),
	}

	// Personalized rows are user-scoped, so they are fetched per request
	// and never cached
	state := visitor(r)
	if userID := state.UserID(); userID != "" {
		prefs, err := h.backend.UserPreferences(r.Context(), userID)
		if err != nil {
			h.logger.WithError(err).WithField("user_id", userID).Warn("Failed to fetch user preferences")
		} else {
			page.Preferences = prefs
		}

		summary, err := h.backend.UserSummary(r.Context(), userID)
		if err != nil {
			h.logger.WithError(err).WithField("user_id", userID).Warn("Failed to fetch user summary")
		} else {
			page.Summary = summary
		}
	}

	h.renderer.Render(w, "home", newPageData(r, "Home", page))
}

// BannerHandler advances or rewinds the banner carousel
type BannerHandler struct {
	home *controllers.Home
}

// NewBannerHandler creates a new banner handler
func NewBannerHandler(home *controllers.Home) *BannerHandler {
	return &BannerHandler{home: home}
}

// Next handles POST /banner/next
func (h *BannerHandler) Next(w http.ResponseWriter, r *http.Request) {
	h.home.RotateBanner()
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Prev handles POST /banner/prev
func (h *BannerHandler) Prev(w http.ResponseWriter, r *http.Request) {
	h.home.PrevBanner()
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
