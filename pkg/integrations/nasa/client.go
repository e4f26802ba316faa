package nasa

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/matzehuels/neoscope/pkg/buildinfo"
	"github.com/matzehuels/neoscope/pkg/cache"
	errs "github.com/matzehuels/neoscope/pkg/errors"
	"github.com/matzehuels/neoscope/pkg/integrations"
)

// Defaults used when no configuration overrides them.
const (
	DefaultBaseURL   = "https://api.nasa.gov"
	DefaultAPIKey    = "DEMO_KEY"
	DefaultStartDate = "2024-01-01"
	DefaultEndDate   = "2024-01-08"
)

const feedPath = "/neo/rest/v1/feed"

// Client provides access to the NeoWs feed.
// It handles HTTP requests with caching and automatic retries.
//
// All methods are safe for concurrent use by multiple goroutines.
type Client struct {
	*integrations.Client
	baseURL string
	apiKey  string
}

// NewClient creates a NeoWs client caching raw responses in backend for
// cacheTTL. An empty apiKey falls back to [DefaultAPIKey].
func NewClient(backend cache.Cache, cacheTTL time.Duration, apiKey string) *Client {
	if apiKey == "" {
		apiKey = DefaultAPIKey
	}
	return &Client{
		Client: integrations.NewClient(backend, "nasa", cacheTTL, map[string]string{
			"Accept":     "application/json",
			"User-Agent": buildinfo.UserAgent(),
		}),
		baseURL: DefaultBaseURL,
		apiKey:  apiKey,
	}
}

// WithBaseURL points the client at another NeoWs deployment.
func (c *Client) WithBaseURL(base string) *Client {
	if base != "" {
		c.baseURL = strings.TrimRight(base, "/")
	}
	return c
}

// FetchFeed retrieves the feed for [start, end], both YYYY-MM-DD.
//
// If refresh is true, the cache is bypassed and a fresh API call is made.
//
// Returns:
//   - INVALID_DATE / INVALID_DATE_RANGE for a malformed or too wide range
//   - INVALID_INPUT for an unusable API key
//   - [integrations.ErrUnauthorized] if NeoWs rejects the key
//   - a RATE_LIMITED error when the key's quota is exhausted
//   - [integrations.ErrNetwork] for HTTP failures
func (c *Client) FetchFeed(ctx context.Context, start, end string, refresh bool) (*Feed, error) {
	if err := errs.ValidateDateRange(start, end); err != nil {
		return nil, err
	}
	if err := errs.ValidateAPIKey(c.apiKey); err != nil {
		return nil, err
	}

	var feed Feed
	key := "feed:" + start + ":" + end
	err := c.Cached(ctx, key, refresh, &feed, func() error {
		return c.Get(ctx, c.feedURL(start, end), &feed)
	})
	if err != nil {
		return nil, err
	}
	return &feed, nil
}

func (c *Client) feedURL(start, end string) string {
	q := url.Values{}
	q.Set("start_date", start)
	q.Set("end_date", end)
	q.Set("api_key", c.apiKey)
	return c.baseURL + feedPath + "?" + q.Encode()
}
