// Package backend wraps the external movie API. The backend owns all domain
// truth; this client only fetches snapshots and fires mutations.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ndelvaux/flickd/internal/config"
	"github.com/patrickmn/go-cache"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sirupsen/logrus"
)

// ErrNotFound is returned when the backend answers 404
var ErrNotFound = errors.New("not found")

var upstreamRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "flickd_backend_requests_total",
	Help: "Requests issued to the movie backend API.",
}, []string{"operation", "outcome"})

// Client handles communication with the movie backend API
type Client struct {
	baseURL    string
	httpClient *http.Client
	cache      *cache.Cache
	logger     *logrus.Logger
}

// NewClient creates a new backend API client
func NewClient(cfg *config.Config, logger *logrus.Logger) (*Client, error) {
	if cfg.APIBaseURL == "" {
		return nil, fmt.Errorf("backend API base URL is required")
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.APIBaseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		cache:      cache.New(cfg.CacheTTL, 2*cfg.CacheTTL),
		logger:     logger,
	}, nil
}

// doRequest performs an HTTP request against the backend API. Callers pass
// the operation name for metrics, an optional JSON body and an optional
// result to decode into.
func (c *Client) doRequest(ctx context.Context, operation, method, path string, body interface{}, result interface{}) error {
	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	fullURL := c.baseURL + path
	c.logger.WithFields(logrus.Fields{
		"method": method,
		"url":    fullURL,
	}).Debug("Making backend API request")

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Context cancellation is deliberate (a superseded call or a
		// teardown), never an upstream failure.
		if errors.Is(err, context.Canceled) {
			upstreamRequests.WithLabelValues(operation, "cancelled").Inc()
			return context.Canceled
		}
		upstreamRequests.WithLabelValues(operation, "error").Inc()
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		upstreamRequests.WithLabelValues(operation, "not_found").Inc()
		return ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		upstreamRequests.WithLabelValues(operation, "error").Inc()
		return fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			upstreamRequests.WithLabelValues(operation, "error").Inc()
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	upstreamRequests.WithLabelValues(operation, "ok").Inc()
	return nil
}

// mutationResponse is the generic acknowledgement shape of rating and
// watchlist mutations
type mutationResponse struct {
	Success *bool  `json:"success,omitempty"`
	Message string `json:"message,omitempty"`
}
