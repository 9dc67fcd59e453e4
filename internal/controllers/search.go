// Package controllers holds the per-concern state controllers that bind
// remote data and user-initiated mutations to view state.
package controllers

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/ndelvaux/flickd/internal/models"
	"github.com/ndelvaux/flickd/internal/query"
	"github.com/sirupsen/logrus"
)

// SearchService is the remote side of movie search
type SearchService interface {
	Search(ctx context.Context, q, userID string) ([]models.SearchResult, error)
	SemanticSearch(ctx context.Context, description string) ([]models.SearchResult, error)
}

// SearchSnapshot is a point-in-time view of the search state
type SearchSnapshot struct {
	Query     string
	Mode      models.SearchMode
	Results   []models.SearchResult
	Searching bool
	Err       string
}

// Search drives debounced, cancellable movie search for one visitor.
// Each SetQuery restarts the delay window and cancels any request still in
// flight, so only the response for the latest query can reach the results.
type Search struct {
	mu       sync.Mutex
	service  SearchService
	debounce *query.Debouncer
	logger   *logrus.Logger

	mode      models.SearchMode
	queryText string
	results   []models.SearchResult
	searching bool
	errMsg    string
}

// NewSearch creates a search controller with the given debounce window
func NewSearch(service SearchService, delay time.Duration, clock query.Clock, logger *logrus.Logger) *Search {
	return &Search{
		service:  service,
		debounce: query.NewDebouncer(delay, clock),
		logger:   logger,
		mode:     models.SearchModeLexical,
	}
}

// SetQuery feeds one keystroke update into the controller. An empty or
// whitespace-only query short-circuits to an empty result set with no
// network call.
func (s *Search) SetQuery(q, userID string) {
	s.mu.Lock()
	s.queryText = q
	if strings.TrimSpace(q) == "" {
		s.results = nil
		s.searching = false
		s.errMsg = ""
		s.mu.Unlock()
		s.debounce.Cancel()
		return
	}
	s.searching = true
	s.errMsg = ""
	mode := s.mode
	s.mu.Unlock()

	s.debounce.Update(func(ctx context.Context) {
		s.run(ctx, q, userID, mode)
	})
}

func (s *Search) run(ctx context.Context, q, userID string, mode models.SearchMode) {
	var results []models.SearchResult
	var err error
	switch mode {
	case models.SearchModeSemantic:
		results, err = s.service.SemanticSearch(ctx, q)
	default:
		results, err = s.service.Search(ctx, q, userID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// A newer keystroke or a mode switch owns the state now
	if s.queryText != q || s.mode != mode {
		return
	}
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		s.logger.WithError(err).WithField("query", q).Warn("Search failed")
		s.searching = false
		s.errMsg = "Failed to fetch results"
		return
	}
	s.searching = false
	s.results = results
	s.errMsg = ""
}

// SetMode switches search modes. Mode defines a disjoint request shape, so
// query and results clear immediately.
func (s *Search) SetMode(mode models.SearchMode) {
	s.mu.Lock()
	if s.mode == mode {
		s.mu.Unlock()
		return
	}
	s.mode = mode
	s.queryText = ""
	s.results = nil
	s.searching = false
	s.errMsg = ""
	s.mu.Unlock()
	s.debounce.Cancel()
}

// Snapshot returns the current search state
func (s *Search) Snapshot() SearchSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return SearchSnapshot{
		Query:     s.queryText,
		Mode:      s.mode,
		Results:   s.results,
		Searching: s.searching,
		Err:       s.errMsg,
	}
}

// Close cancels pending and in-flight work on session teardown
func (s *Search) Close() {
	s.debounce.Cancel()
}
