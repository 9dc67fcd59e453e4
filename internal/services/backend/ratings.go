package backend

import (
	"context"

	"github.com/ndelvaux/flickd/internal/models"
)

type ratingRequest struct {
	UserID  string  `json:"user_id"`
	MovieID int     `json:"movie_id"`
	Rating  float64 `json:"rating"`
}

// SubmitRating creates or updates the user's rating for a movie. The
// backend enforces one rating per (user, movie) pair.
func (c *Client) SubmitRating(ctx context.Context, userID string, movieID int, rating float64) error {
	body := ratingRequest{UserID: userID, MovieID: movieID, Rating: rating}
	var resp mutationResponse
	return c.doRequest(ctx, "submit_rating", "POST", "/ratings", body, &resp)
}

// DeleteRating removes the user's rating for a movie. The delete endpoint
// expects the rating field zeroed in the body.
func (c *Client) DeleteRating(ctx context.Context, userID string, movieID int) error {
	body := ratingRequest{UserID: userID, MovieID: movieID, Rating: 0}
	var resp mutationResponse
	return c.doRequest(ctx, "delete_rating", "DELETE", "/ratings/delete", body, &resp)
}

// UserRatings fetches all ratings for a user
func (c *Client) UserRatings(ctx context.Context, userID string) ([]models.UserRating, error) {
	var ratings []models.UserRating
	if err := c.doRequest(ctx, "user_ratings", "GET", "/ratings/"+userID, nil, &ratings); err != nil {
		return nil, err
	}
	return ratings, nil
}
