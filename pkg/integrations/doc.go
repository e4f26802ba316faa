// Package integrations provides the shared HTTP client used by upstream API
// clients.
//
// # Overview
//
// Each upstream has its own subpackage; currently:
//
//   - [nasa]: NASA NeoWs asteroid feed
//
// # Shared Infrastructure
//
// [Client] wraps net/http with:
//   - a read-through [cache.Cache] keyed by [cache.Keyer.HTTPKey]
//   - retries with exponential backoff for 5xx and connection failures
//   - status mapping: 404 → [ErrNotFound], 401/403 → [ErrUnauthorized],
//     429 → [errors.RateLimitedError], 5xx → retryable [ErrNetwork]
//   - observability HTTP and cache hooks
//
// Subpackage clients embed *Client and build URLs; they do not touch the
// cache directly:
//
//	var feed Feed
//	err := c.Cached(ctx, key, refresh, &feed, func() error {
//	    return c.Get(ctx, url, &feed)
//	})
//
// [nasa]: github.com/matzehuels/neoscope/pkg/integrations/nasa
// [errors.RateLimitedError]: github.com/matzehuels/neoscope/pkg/errors.RateLimitedError
package integrations
