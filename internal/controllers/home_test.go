package controllers

import (
	"context"
	"errors"
	"testing"

	"github.com/ndelvaux/flickd/internal/models"
)

type fakeMovieService struct {
	popular   []models.Movie
	catalog   []models.Movie
	err       error
	listPaths []string
}

func (f *fakeMovieService) PopularRecent(ctx context.Context) ([]models.Movie, error) {
	return f.popular, f.err
}

func (f *fakeMovieService) List(ctx context.Context, path string) ([]models.Movie, error) {
	f.listPaths = append(f.listPaths, path)
	return f.catalog, f.err
}

func movies(n int) []models.Movie {
	out := make([]models.Movie, n)
	for i := range out {
		out[i] = models.Movie{ID: i + 1, Title: "Movie"}
	}
	return out
}

func loadedHome(t *testing.T, service *fakeMovieService) *Home {
	t.Helper()
	h := NewHome(service, testLogger())
	h.Refresh(context.Background())
	waitFor(t, "rows to load", func() bool {
		return !h.Banner().State.IsLoading() && !h.Trending().State.IsLoading()
	})
	return h
}

func TestHomeBannerWrapsAround(t *testing.T) {
	h := loadedHome(t, &fakeMovieService{popular: movies(7), catalog: movies(7)})

	snap := h.Banner()
	if len(snap.Movies) != bannerSize {
		t.Fatalf("Banner holds %d movies, want %d", len(snap.Movies), bannerSize)
	}
	if snap.Index != 0 || snap.Current == nil || snap.Current.ID != 1 {
		t.Fatalf("Unexpected initial slot: %+v", snap)
	}

	for i := 0; i < bannerSize; i++ {
		h.RotateBanner()
	}
	if got := h.Banner().Index; got != 0 {
		t.Errorf("Index after a full cycle = %d, want 0", got)
	}

	h.PrevBanner()
	if got := h.Banner().Index; got != bannerSize-1 {
		t.Errorf("Index after stepping back = %d, want %d", got, bannerSize-1)
	}
}

func TestHomeBannerEmptyList(t *testing.T) {
	h := loadedHome(t, &fakeMovieService{})

	h.RotateBanner()
	snap := h.Banner()
	if snap.Current != nil || snap.Index != 0 {
		t.Errorf("Empty banner produced a slot: %+v", snap)
	}
}

func TestHomeRefreshFailureKeepsErrorState(t *testing.T) {
	service := &fakeMovieService{err: errors.New("backend down")}
	h := NewHome(service, testLogger())
	h.Refresh(context.Background())
	waitFor(t, "error state", func() bool { return h.Trending().State.IsError() })

	if h.Trending().Err == "" {
		t.Error("Error state carries no message")
	}
}

func TestHomeTrendingLoads(t *testing.T) {
	service := &fakeMovieService{popular: movies(2), catalog: movies(3)}
	h := loadedHome(t, service)

	snap := h.Trending()
	if !snap.State.IsSuccess() || len(snap.Data) != 3 {
		t.Errorf("Unexpected trending state: %+v", snap)
	}
	if len(service.listPaths) != 1 || service.listPaths[0] != "/movies" {
		t.Errorf("Trending row fetched %v, want the /movies list", service.listPaths)
	}
}
