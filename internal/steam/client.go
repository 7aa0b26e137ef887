package steam

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"steamqueue/internal/ratelimit"
)

const (
	defaultStoreBaseURL     = "https://store.steampowered.com"
	defaultWebAPIBaseURL    = "https://api.steampowered.com"
	defaultCommunityBaseURL = "https://steamcommunity.com"
)

// App is one identifier/name pair from a listing endpoint.
type App struct {
	ID   string
	Name string
}

// Client provides access to the Steam store, Web API, and community
// endpoints. All calls share one rate limiter.
type Client struct {
	apiKey           string
	steamID          string
	storeBaseURL     string
	webAPIBaseURL    string
	communityBaseURL string
	detailTimeout    time.Duration
	httpClient       *http.Client
	limiter          *ratelimit.Limiter
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURLs overrides the endpoint base URLs. Empty values keep the
// defaults.
func WithBaseURLs(store, webAPI, community string) Option {
	return func(c *Client) {
		if v := strings.TrimSpace(store); v != "" {
			c.storeBaseURL = strings.TrimRight(v, "/")
		}
		if v := strings.TrimSpace(webAPI); v != "" {
			c.webAPIBaseURL = strings.TrimRight(v, "/")
		}
		if v := strings.TrimSpace(community); v != "" {
			c.communityBaseURL = strings.TrimRight(v, "/")
		}
	}
}

// WithDetailTimeout bounds each appdetails request. Zero disables the bound.
func WithDetailTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.detailTimeout = timeout
	}
}

// New creates a Steam client. The limiter is required; apiKey and steamID
// are only needed by the endpoints that use them (AppList and Library
// respectively), so either may be empty in file mode.
func New(apiKey, steamID string, limiter *ratelimit.Limiter, opts ...Option) (*Client, error) {
	if limiter == nil {
		return nil, errors.New("steam client requires a rate limiter")
	}
	client := &Client{
		apiKey:           strings.TrimSpace(apiKey),
		steamID:          strings.TrimSpace(steamID),
		storeBaseURL:     defaultStoreBaseURL,
		webAPIBaseURL:    defaultWebAPIBaseURL,
		communityBaseURL: defaultCommunityBaseURL,
		httpClient:       &http.Client{},
		limiter:          limiter,
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

func (c *Client) get(ctx context.Context, endpoint string) (*http.Response, time.Duration, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, 0, err
	}

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return nil, latency, err
	}
	return resp, latency, nil
}
