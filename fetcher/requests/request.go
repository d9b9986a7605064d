package requests

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// DefaultHostFormat is the Riot API host, formatted with the routing value.
const DefaultHostFormat = "https://%s.api.riotgames.com"

// ErrNotFound is returned for 404 responses.
var ErrNotFound = errors.New("resource not found")

// StatusError is returned for any other non 200 response.
type StatusError struct {
	Code int
	URL  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("API returned status code %d for %s", e.Code, e.URL)
}

// Client does authenticated requests to the Riot API.
type Client struct {
	apiKey     string
	hostFormat string
	http       *http.Client
	limiter    *RateLimiter
}

// Create a client with the given key and limiter.
// The host format can be empty to use the Riot API.
func NewClient(apiKey string, hostFormat string, limiter *RateLimiter) *Client {
	if hostFormat == "" {
		hostFormat = DefaultHostFormat
	}

	return &Client{
		apiKey:     apiKey,
		hostFormat: hostFormat,
		http:       &http.Client{Timeout: 15 * time.Second},
		limiter:    limiter,
	}
}

// URL builds the full address of a endpoint for the routing value.
func (c *Client) URL(routing string, path string, params map[string]string) string {
	endpoint := fmt.Sprintf(c.hostFormat, routing) + path
	if len(params) == 0 {
		return endpoint
	}

	query := url.Values{}
	for key, value := range params {
		query.Set(key, value)
	}
	return endpoint + "?" + query.Encode()
}

// Get does a authenticated GET and returns the body.
func (c *Client) Get(ctx context.Context, endpoint string) ([]byte, error) {
	if c.apiKey == "" {
		return nil, errors.New("can't do a authenticated request without the API key")
	}

	if c.limiter != nil {
		if err := c.limiter.WaitApi(ctx); err != nil {
			return nil, err
		}
	}

	resp, err := c.AuthRequest(ctx, endpoint, http.MethodGet)
	if err != nil {
		return nil, fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, ErrNotFound
	default:
		return nil, &StatusError{Code: resp.StatusCode, URL: endpoint}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read API response: %w", err)
	}

	return body, nil
}

// Do a authenticated request to the Riot API.
// Return the respose.
func (c *Client) AuthRequest(ctx context.Context, endpoint string, method string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, endpoint, nil)
	if err != nil {
		return nil, err
	}

	// Add the token from the config.
	req.Header.Set("X-Riot-Token", c.apiKey)
	return c.http.Do(req)
}

// Create a simple request and return it.
func Request(ctx context.Context, endpoint string, method string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, endpoint, nil)
	if err != nil {
		return nil, err
	}
	return http.DefaultClient.Do(req)
}
