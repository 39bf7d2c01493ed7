// Package api provides the REST client for the cartas backend.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

var (
	// ErrUnauthorized indicates the bearer token was rejected.
	ErrUnauthorized = errors.New("unauthorized")
)

const (
	unreadCountPath  = "/api/messages/unread/count"
	pendingCountPath = "/api/friend-requests/pending/count"

	defaultTimeout = 10 * time.Second
)

// Client fetches notification counts from the backend.
// Used by the polling transport and the one-shot status command.
type Client interface {
	// UnreadMessageCount returns the number of unread messages for the
	// authenticated user.
	UnreadMessageCount(ctx context.Context) (int, error)
	// PendingRequestCount returns the number of friend requests awaiting
	// a response from the authenticated user.
	PendingRequestCount(ctx context.Context) (int, error)
}

// HTTPClient is the default Client implementation.
type HTTPClient struct {
	baseURL string
	token   string
	http    *http.Client
}

// NewHTTPClient creates a client for the given base URL and bearer token.
func NewHTTPClient(baseURL, token string) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{Timeout: defaultTimeout},
	}
}

// countResponse is the wire shape of both count endpoints.
type countResponse struct {
	Count int `json:"count"`
}

func (c *HTTPClient) fetchCount(ctx context.Context, path string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return 0, fmt.Errorf("api: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("api: error fetching notification counts: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return 0, ErrUnauthorized
	case resp.StatusCode != http.StatusOK:
		return 0, fmt.Errorf("api: error fetching notification counts: unexpected status %d", resp.StatusCode)
	}

	var body countResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, fmt.Errorf("api: error fetching notification counts: decode: %w", err)
	}
	if body.Count < 0 {
		return 0, nil
	}
	return body.Count, nil
}

// UnreadMessageCount returns the unread message count.
func (c *HTTPClient) UnreadMessageCount(ctx context.Context) (int, error) {
	return c.fetchCount(ctx, unreadCountPath)
}

// PendingRequestCount returns the pending friend-request count.
func (c *HTTPClient) PendingRequestCount(ctx context.Context) (int, error) {
	return c.fetchCount(ctx, pendingCountPath)
}
