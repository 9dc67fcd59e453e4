// Package identity talks to the external identity provider. The app never
// validates identities itself; it trusts what the provider resolves for a
// session token.
package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ndelvaux/flickd/internal/config"
	"github.com/sirupsen/logrus"
)

// ErrUnauthorized is returned when the provider rejects the session token
var ErrUnauthorized = errors.New("identity provider rejected the session token")

// Profile is the identity payload the provider returns for a valid token
type Profile struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Username  string `json:"username"`
	ImageURL  string `json:"image_url"`
}

// Client resolves session tokens against the identity provider
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *logrus.Logger
}

// NewClient creates a new identity provider client
func NewClient(cfg *config.Config, logger *logrus.Logger) (*Client, error) {
	if cfg.AuthBaseURL == "" {
		return nil, fmt.Errorf("identity provider base URL is required")
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.AuthBaseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
		logger:     logger,
	}, nil
}

// Resolve fetches the profile behind a provider session token
func (c *Client) Resolve(ctx context.Context, token string) (*Profile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/userinfo", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("identity request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("identity provider returned status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	var profile Profile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("failed to decode profile: %w", err)
	}
	if profile.ID == "" {
		return nil, fmt.Errorf("identity provider returned a profile without an id")
	}

	c.logger.WithField("user_id", profile.ID).Debug("Resolved identity")
	return &profile, nil
}
