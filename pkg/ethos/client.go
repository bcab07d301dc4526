package ethos

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultClientName = "ethos-p2p-platform"

// Client calls the Ethos score API over HTTP.
type Client struct {
	BaseURL    string
	ClientName string
	HTTP       *http.Client
}

// NewClient creates a Client for the given API base URL, e.g.
// "https://api.ethos.network/api/v2/score".
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		ClientName: defaultClientName,
		HTTP:       &http.Client{Timeout: 10 * time.Second},
	}
}

// Make sure we conform to the interface
var _ ScoreProvider = (*Client)(nil)

// FetchScoreByUserkey retrieves the score for a single userkey.
func (c *Client) FetchScoreByUserkey(ctx context.Context, userkey string) (*ScoreData, error) {
	endpoint := fmt.Sprintf("%s/userkey?userkey=%s", c.BaseURL, url.QueryEscape(userkey))

	var data ScoreData
	if err := c.getJSON(ctx, endpoint, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// FetchScoresByUserkeys retrieves scores for several userkeys in one call.
func (c *Client) FetchScoresByUserkeys(ctx context.Context, userkeys []string) (map[string]*ScoreData, error) {
	body, err := json.Marshal(map[string][]string{"userkeys": userkeys})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal userkeys: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/userkeys", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.setHeaders(req)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrScoreUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: oracle returned %d", ErrScoreUnavailable, resp.StatusCode)
	}

	var payload map[string]*ScoreData
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: malformed payload: %v", ErrScoreUnavailable, err)
	}

	// Echo back every requested key so callers can tell "no answer" apart
	// from "never asked".
	result := make(map[string]*ScoreData, len(userkeys))
	for _, key := range userkeys {
		result[key] = payload[key]
	}
	return result, nil
}

// CheckScoreStatus reports whether a score computation is still pending.
func (c *Client) CheckScoreStatus(ctx context.Context, userkey string) (*ScoreStatus, error) {
	endpoint := fmt.Sprintf("%s/status?userkey=%s", c.BaseURL, url.QueryEscape(userkey))

	var status ScoreStatus
	if err := c.getJSON(ctx, endpoint, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrScoreUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: oracle returned %d", ErrScoreUnavailable, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: malformed payload: %v", ErrScoreUnavailable, err)
	}
	return nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/json")
	name := c.ClientName
	if name == "" {
		name = defaultClientName
	}
	req.Header.Set("X-Client", name)
}
