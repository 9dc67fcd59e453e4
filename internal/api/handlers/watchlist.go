package handlers

import (
	"net/http"
	"strconv"

	"github.com/ndelvaux/flickd/internal/models"
	"github.com/sirupsen/logrus"
)

// WatchlistHandler renders the watchlist page and applies membership
// mutations
type WatchlistHandler struct {
	renderer *Renderer
	logger   *logrus.Logger
}

// NewWatchlistHandler creates a new watchlist handler
func NewWatchlistHandler(renderer *Renderer, logger *logrus.Logger) *WatchlistHandler {
	return &WatchlistHandler{renderer: renderer, logger: logger}
}

type watchlistPage struct {
	Entries []models.WatchlistEntry
	Err     bool
}

// Page handles GET /watchlist (behind RequireUser)
func (h *WatchlistHandler) Page(w http.ResponseWriter, r *http.Request) {
	state := visitor(r)
	userID := state.UserID()

	page := watchlistPage{}
	entries, err := state.Watchlist.Refresh(r.Context(), userID)
	if err != nil {
		h.logger.WithError(err).WithField("user_id", userID).Error("Failed to refresh watchlist")
		page.Err = true
	} else {
		page.Entries = entries
	}

	h.renderer.Render(w, "watchlist", newPageData(r, "Watchlist", page))
}

// Add handles POST /watchlist/add. Anonymous visitors get a sign-in prompt
// and no network call is issued.
func (h *WatchlistHandler) Add(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, func(userID string, movieID int) {
		visitor(r).Watchlist.Add(userID, movieID)
	})
}

// Remove handles POST /watchlist/remove
func (h *WatchlistHandler) Remove(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, func(userID string, movieID int) {
		visitor(r).Watchlist.Remove(userID, movieID)
	})
}

func (h *WatchlistHandler) mutate(w http.ResponseWriter, r *http.Request, apply func(userID string, movieID int)) {
	movieID, err := strconv.Atoi(r.FormValue("movie_id"))
	if err != nil || movieID <= 0 {
		http.Error(w, "Invalid movie id", http.StatusBadRequest)
		return
	}

	apply(visitor(r).UserID(), movieID)

	// Send the visitor back where they came from
	target := r.Referer()
	if target == "" {
		target = "/"
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}
