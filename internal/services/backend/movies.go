package backend

import (
	"context"
	"fmt"

	"github.com/ndelvaux/flickd/internal/models"
)

// Read-only, non-user-scoped GETs are cached briefly. User-scoped reads
// never go through the cache so a page load always re-derives them from the
// backend.

// Movie fetches a single movie by id
func (c *Client) Movie(ctx context.Context, id int) (*models.Movie, error) {
	cacheKey := fmt.Sprintf("movie:%d", id)
	if cached, found := c.cache.Get(cacheKey); found {
		movie := cached.(models.Movie)
		return &movie, nil
	}

	var movie models.Movie
	if err := c.doRequest(ctx, "movie", "GET", fmt.Sprintf("/movie/%d", id), nil, &movie); err != nil {
		return nil, err
	}

	c.cache.SetDefault(cacheKey, movie)
	return &movie, nil
}

// PopularRecent fetches the popular/recent movie list backing the banner
func (c *Client) PopularRecent(ctx context.Context) ([]models.Movie, error) {
	return c.movieList(ctx, "popular_recent", "/movies/popular/recent")
}

// List fetches a movie list endpoint by path. Slider rows are built on it:
// each row names the endpoint it renders.
func (c *Client) List(ctx context.Context, path string) ([]models.Movie, error) {
	return c.movieList(ctx, "list", path)
}

func (c *Client) movieList(ctx context.Context, operation, path string) ([]models.Movie, error) {
	cacheKey := "list:" + path
	if cached, found := c.cache.Get(cacheKey); found {
		return cached.([]models.Movie), nil
	}

	var list models.MovieList
	if err := c.doRequest(ctx, operation, "GET", path, nil, &list); err != nil {
		return nil, err
	}

	movies := []models.Movie(list)
	c.cache.SetDefault(cacheKey, movies)
	return movies, nil
}

// PreferenceCategory is one titled row of the recommendations slider
type PreferenceCategory struct {
	Title  string         `json:"title"`
	Movies []models.Movie `json:"movies"`
}

// UserPreferences fetches the personalized recommendation rows for a user.
// Not cached: personalized data is re-derived on every page load.
func (c *Client) UserPreferences(ctx context.Context, userID string) ([]PreferenceCategory, error) {
	var categories []PreferenceCategory
	if err := c.doRequest(ctx, "user_preferences", "GET", "/user_preferences_movies/"+userID, nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}
