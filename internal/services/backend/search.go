package backend

import (
	"context"
	"net/url"

	"github.com/ndelvaux/flickd/internal/models"
)

// Search performs lexical search. Cancelling ctx aborts the request; a
// superseded query must never deliver results.
func (c *Client) Search(ctx context.Context, query, userID string) ([]models.SearchResult, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("user_id", userID)

	var results []models.SearchResult
	if err := c.doRequest(ctx, "search", "GET", "/search?"+params.Encode(), nil, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// SemanticSearch performs descriptive search over a free-text description
func (c *Client) SemanticSearch(ctx context.Context, description string) ([]models.SearchResult, error) {
	body := map[string]string{"description": description}

	var results []models.SearchResult
	if err := c.doRequest(ctx, "semantic_search", "POST", "/semantic-search", body, &results); err != nil {
		return nil, err
	}
	return results, nil
}
