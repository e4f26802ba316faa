// Package observability lets the loader, the caches and the feed client
// report events without depending on a logging or metrics backend.
//
// Every hook defaults to a no-op. A binary installs its own at startup:
//
//	observability.SetLoaderHooks(myLoaderHooks{})
//
// and libraries emit through the accessors:
//
//	observability.Loader().OnFetchStart(ctx, start, end)
package observability

import (
	"context"
	"sync"
	"time"
)

// LoaderHooks receives events from the dataset loader.
type LoaderHooks interface {
	// One start/complete pair per upstream feed request.
	OnFetchStart(ctx context.Context, startDate, endDate string)
	OnFetchComplete(ctx context.Context, startDate, endDate string, count int, duration time.Duration, err error)

	// OnLoadComplete fires after every load attempt. snapshotID is empty
	// when the load failed and the store kept its previous dataset.
	OnLoadComplete(ctx context.Context, snapshotID string, count int, duration time.Duration, err error)
}

// CacheHooks receives cache events. keyType is "http" or "dataset".
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// HTTPHooks receives events from the outbound HTTP client.
type HTTPHooks interface {
	OnRequest(ctx context.Context, method, host, path string)
	OnResponse(ctx context.Context, method, host, path string, statusCode int, duration time.Duration)
	// OnError covers transport failures; non-2xx responses go to OnResponse.
	OnError(ctx context.Context, method, host, path string, err error)
}

type NoopLoaderHooks struct{}

func (NoopLoaderHooks) OnFetchStart(context.Context, string, string) {}
func (NoopLoaderHooks) OnFetchComplete(context.Context, string, string, int, time.Duration, error) {
}
func (NoopLoaderHooks) OnLoadComplete(context.Context, string, int, time.Duration, error) {}

type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, string, error)                 {}

// slot holds one registered hook and the no-op it falls back to.
type slot[T any] struct {
	mu   sync.RWMutex
	cur  T
	noop T
}

func newSlot[T any](noop T) *slot[T] {
	return &slot[T]{cur: noop, noop: noop}
}

func (s *slot[T]) get() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur
}

func (s *slot[T]) set(h T, isNil bool) {
	if isNil {
		return
	}
	s.mu.Lock()
	s.cur = h
	s.mu.Unlock()
}

func (s *slot[T]) reset() {
	s.mu.Lock()
	s.cur = s.noop
	s.mu.Unlock()
}

var (
	loaderSlot = newSlot[LoaderHooks](NoopLoaderHooks{})
	cacheSlot  = newSlot[CacheHooks](NoopCacheHooks{})
	httpSlot   = newSlot[HTTPHooks](NoopHTTPHooks{})
)

// SetLoaderHooks installs h. A nil h is ignored.
func SetLoaderHooks(h LoaderHooks) { loaderSlot.set(h, h == nil) }

// SetCacheHooks installs h. A nil h is ignored.
func SetCacheHooks(h CacheHooks) { cacheSlot.set(h, h == nil) }

// SetHTTPHooks installs h. A nil h is ignored.
func SetHTTPHooks(h HTTPHooks) { httpSlot.set(h, h == nil) }

func Loader() LoaderHooks { return loaderSlot.get() }
func Cache() CacheHooks   { return cacheSlot.get() }
func HTTP() HTTPHooks     { return httpSlot.get() }

// Reset restores every hook to its no-op.
func Reset() {
	loaderSlot.reset()
	cacheSlot.reset()
	httpSlot.reset()
}
