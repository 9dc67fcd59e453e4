package controllers

import (
	"context"
	"sync"

	"github.com/ndelvaux/flickd/internal/models"
	"github.com/ndelvaux/flickd/internal/query"
	"github.com/sirupsen/logrus"
)

// MovieService is the remote side of the landing-page rows
type MovieService interface {
	PopularRecent(ctx context.Context) ([]models.Movie, error)
	List(ctx context.Context, path string) ([]models.Movie, error)
}

// bannerSize is how many movies the carousel cycles through
const bannerSize = 5

// trendingPath is the list endpoint behind the trending row
const trendingPath = "/movies"

// Home owns the landing page's shared remote data and the banner carousel
// position. The banner and trending rows are bound with latest-request-wins
// semantics and refreshed by the scheduler.
type Home struct {
	service  MovieService
	logger   *logrus.Logger
	banner   *query.Binder[[]models.Movie]
	trending *query.Binder[[]models.Movie]

	mu          sync.Mutex
	bannerIndex int
}

// BannerSnapshot is the carousel view state
type BannerSnapshot struct {
	Movies  []models.Movie
	Index   int
	Current *models.Movie
	State   query.State
	Err     string
}

// NewHome creates the home controller
func NewHome(service MovieService, logger *logrus.Logger) *Home {
	return &Home{
		service:  service,
		logger:   logger,
		banner:   query.NewBinder[[]models.Movie](),
		trending: query.NewBinder[[]models.Movie](),
	}
}

// Refresh reloads the landing-page rows
func (h *Home) Refresh(ctx context.Context) {
	h.logger.Debug("Refreshing landing-page rows")
	h.banner.Load(ctx, h.service.PopularRecent)
	h.trending.Load(ctx, func(ctx context.Context) ([]models.Movie, error) {
		return h.service.List(ctx, trendingPath)
	})
}

// RotateBanner advances the carousel one slot
func (h *Home) RotateBanner() {
	h.step(1)
}

// PrevBanner steps the carousel back one slot
func (h *Home) PrevBanner() {
	h.step(-1)
}

func (h *Home) step(delta int) {
	snap := h.banner.Snapshot()
	n := len(snap.Data)
	if n > bannerSize {
		n = bannerSize
	}
	if n == 0 {
		return
	}
	h.mu.Lock()
	h.bannerIndex = (h.bannerIndex + delta + n) % n
	h.mu.Unlock()
}

// Banner returns the carousel state: the first bannerSize popular movies
// and the current slot
func (h *Home) Banner() BannerSnapshot {
	snap := h.banner.Snapshot()
	movies := snap.Data
	if len(movies) > bannerSize {
		movies = movies[:bannerSize]
	}

	h.mu.Lock()
	index := h.bannerIndex
	h.mu.Unlock()

	out := BannerSnapshot{Movies: movies, State: snap.State, Err: snap.Err}
	if len(movies) > 0 {
		index = index % len(movies)
		out.Index = index
		out.Current = &movies[index]
	}
	return out
}

// Trending returns the trending row state
func (h *Home) Trending() query.Snapshot[[]models.Movie] {
	return h.trending.Snapshot()
}

// Close cancels any in-flight loads
func (h *Home) Close() {
	h.banner.Cancel()
	h.trending.Cancel()
}
