// Package spotify implements the music provider port against the Spotify
// Web API.
package spotify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/emotionplay/emotionplay-server/internal/core/ports"
)

// Client talks to the Spotify Web API using tokens from the auth manager.
type Client struct {
	httpClient *http.Client
	baseURL    string
	tokens     ports.TokenProvider
	logger     *slog.Logger

	mu           sync.Mutex
	cachedUserID string
}

// compile-time interface assertion
var _ ports.MusicProvider = (*Client)(nil)

// NewClient constructs a Spotify client. baseURL is injectable for tests.
func NewClient(httpClient *http.Client, baseURL string, tokens ports.TokenProvider, logger *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		tokens:     tokens,
		logger:     logger,
	}
}

// InvalidateUser drops the cached user ID. Wired to the auth manager's
// disconnect hook so a new login re-resolves /me.
func (c *Client) InvalidateUser() {
	c.mu.Lock()
	c.cachedUserID = ""
	c.mu.Unlock()
}

// currentUserID resolves the authenticated user's ID, cached after the
// first call until disconnect.
func (c *Client) currentUserID(ctx context.Context) (string, error) {
	c.mu.Lock()
	cached := c.cachedUserID
	c.mu.Unlock()
	if cached != "" {
		return cached, nil
	}

	var me userProfile
	if err := c.doJSON(ctx, http.MethodGet, c.baseURL+"/me", nil, &me); err != nil {
		return "", fmt.Errorf("spotify adapter: resolve user: %w", err)
	}

	c.mu.Lock()
	c.cachedUserID = me.ID
	c.mu.Unlock()
	return me.ID, nil
}

// doJSON performs one authorized request. Responses outside 200-299 become a
// ports.StatusError carrying status and body; 429 additionally matches
// ports.ErrRateLimited. No automatic retry is performed here.
func (c *Client) doJSON(ctx context.Context, method, rawURL string, body, out any) error {
	token, err := c.tokens.EnsureFreshToken(ctx)
	if err != nil {
		return err
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &ports.StatusError{Status: resp.StatusCode, Body: string(data)}
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decode response body: %w", err)
		}
	}
	return nil
}
