package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/ndelvaux/flickd/internal/controllers"
	"github.com/ndelvaux/flickd/internal/models"
	"github.com/sirupsen/logrus"
)

// SearchHandler renders the search page and feeds keystrokes into the
// visitor's debounced search controller
type SearchHandler struct {
	renderer *Renderer
	logger   *logrus.Logger
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(renderer *Renderer, logger *logrus.Logger) *SearchHandler {
	return &SearchHandler{renderer: renderer, logger: logger}
}

type searchPage struct {
	Snapshot controllers.SearchSnapshot
}

// Page handles GET /search. A setmode parameter switches search modes,
// which clears the query and results immediately.
func (h *SearchHandler) Page(w http.ResponseWriter, r *http.Request) {
	state := visitor(r)
	if mode := r.URL.Query().Get("setmode"); mode != "" {
		state.Search.SetMode(models.ParseSearchMode(mode))
	}

	page := searchPage{Snapshot: state.Search.Snapshot()}
	h.renderer.Render(w, "search", newPageData(r, "Search", page))
}

type searchStateResponse struct {
	Query     string                `json:"query"`
	Mode      models.SearchMode     `json:"mode"`
	Results   []models.SearchResult `json:"results"`
	Searching bool                  `json:"searching"`
	Error     string                `json:"error,omitempty"`
}

// maxDropdownResults caps what the incremental search view shows
const maxDropdownResults = 8

// API handles GET /api/search. With a q parameter it feeds one query
// update into the controller; without it, it only reads the current state.
func (h *SearchHandler) API(w http.ResponseWriter, r *http.Request) {
	state := visitor(r)

	params := r.URL.Query()
	if params.Has("mode") {
		state.Search.SetMode(models.ParseSearchMode(params.Get("mode")))
	}
	if params.Has("q") {
		state.Search.SetQuery(params.Get("q"), state.UserID())
	}

	snap := state.Search.Snapshot()
	results := snap.Results
	if len(results) > maxDropdownResults {
		results = results[:maxDropdownResults]
	}
	if results == nil {
		results = []models.SearchResult{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(searchStateResponse{
		Query:     snap.Query,
		Mode:      snap.Mode,
		Results:   results,
		Searching: snap.Searching,
		Error:     snap.Err,
	})
}
