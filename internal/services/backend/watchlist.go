package backend

import (
	"context"

	"github.com/ndelvaux/flickd/internal/models"
)

type watchlistRequest struct {
	UserID  string `json:"user_id"`
	MovieID int    `json:"movie_id"`
}

// AddToWatchlist adds a movie to the user's watchlist
func (c *Client) AddToWatchlist(ctx context.Context, userID string, movieID int) error {
	body := watchlistRequest{UserID: userID, MovieID: movieID}
	var resp mutationResponse
	return c.doRequest(ctx, "watchlist_add", "POST", "/watchlist", body, &resp)
}

// RemoveFromWatchlist removes a movie from the user's watchlist
func (c *Client) RemoveFromWatchlist(ctx context.Context, userID string, movieID int) error {
	body := watchlistRequest{UserID: userID, MovieID: movieID}
	var resp mutationResponse
	return c.doRequest(ctx, "watchlist_remove", "DELETE", "/remove_from_watchlist", body, &resp)
}

// Watchlist fetches the user's watchlist entries
func (c *Client) Watchlist(ctx context.Context, userID string) ([]models.WatchlistEntry, error) {
	var entries []models.WatchlistEntry
	if err := c.doRequest(ctx, "watchlist", "GET", "/watchlist/"+userID, nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
