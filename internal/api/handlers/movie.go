package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/ndelvaux/flickd/internal/models"
	"github.com/ndelvaux/flickd/internal/services/backend"
	"github.com/sirupsen/logrus"
)

// MovieHandler renders the movie detail page and applies its mutations
type MovieHandler struct {
	backend  *backend.Client
	renderer *Renderer
	logger   *logrus.Logger
}

// NewMovieHandler creates a new movie handler
func NewMovieHandler(backendClient *backend.Client, renderer *Renderer, logger *logrus.Logger) *MovieHandler {
	return &MovieHandler{
		backend:  backendClient,
		renderer: renderer,
		logger:   logger,
	}
}

type moviePage struct {
	Movie       models.Movie
	Rating      float64
	HasRating   bool
	Watched     bool
	InWatchlist bool
}

func movieID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(r.PathValue("id"))
	return id, err == nil && id > 0
}

// Detail handles GET /movie/{id}
func (h *MovieHandler) Detail(w http.ResponseWriter, r *http.Request) {
	id, ok := movieID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	movie, err := h.backend.Movie(r.Context(), id)
	if err != nil {
		if errors.Is(err, backend.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		h.logger.WithError(err).WithField("movie_id", id).Error("Failed to fetch movie")
		http.Error(w, "Failed to fetch movie", http.StatusBadGateway)
		return
	}

	state := visitor(r)
	userID := state.UserID()
	page := moviePage{Movie: *movie}
	if userID != "" {
		page.Rating, page.HasRating = state.Ratings.Rating(userID, id)
		page.Watched = state.Ratings.Watched(userID, id)
		page.InWatchlist = state.Watchlist.Contains(userID, id)
	}

	h.renderer.Render(w, "movie", newPageData(r, movie.Title, page))
}

// Rate handles POST /movie/{id}/rate. The local state changes before the
// remote call resolves; the toast reports the eventual outcome.
func (h *MovieHandler) Rate(w http.ResponseWriter, r *http.Request) {
	id, ok := movieID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	value, err := strconv.ParseFloat(r.FormValue("rating"), 64)
	if err != nil {
		http.Error(w, "Invalid rating", http.StatusBadRequest)
		return
	}

	state := visitor(r)
	state.Ratings.Rate(state.UserID(), id, value)
	redirectBack(w, r, id)
}

// Unrate handles POST /movie/{id}/unrate
func (h *MovieHandler) Unrate(w http.ResponseWriter, r *http.Request) {
	id, ok := movieID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	state := visitor(r)
	state.Ratings.Unrate(state.UserID(), id)
	redirectBack(w, r, id)
}

// Watched handles POST /movie/{id}/watched
func (h *MovieHandler) Watched(w http.ResponseWriter, r *http.Request) {
	id, ok := movieID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	state := visitor(r)
	state.Ratings.ToggleWatched(state.UserID(), id)
	redirectBack(w, r, id)
}

func redirectBack(w http.ResponseWriter, r *http.Request, id int) {
	http.Redirect(w, r, "/movie/"+strconv.Itoa(id), http.StatusSeeOther)
}
