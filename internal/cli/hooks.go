package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/neoscope/pkg/observability"
)

// debugHooks logs loader, cache and HTTP events at debug level.
type debugHooks struct {
	logger *log.Logger
}

// installHooks registers debugHooks when the logger is at debug level.
func installHooks(logger *log.Logger) {
	if logger.GetLevel() > log.DebugLevel {
		return
	}
	h := debugHooks{logger: logger}
	observability.SetLoaderHooks(h)
	observability.SetCacheHooks(h)
	observability.SetHTTPHooks(h)
}

func (h debugHooks) OnFetchStart(_ context.Context, start, end string) {
	h.logger.Debug("fetching feed", "start", start, "end", end)
}

func (h debugHooks) OnFetchComplete(_ context.Context, start, end string, count int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("feed fetch failed", "start", start, "end", end, "err", err)
		return
	}
	h.logger.Debug("fetched feed", "observations", count, "took", d.Round(time.Millisecond))
}

func (h debugHooks) OnLoadComplete(_ context.Context, snapshotID string, count int, _ time.Duration, err error) {
	if err != nil {
		return
	}
	h.logger.Debug("dataset swapped in", "snapshot", snapshotID, "observations", count)
}

func (h debugHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "kind", keyType)
}

func (h debugHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "kind", keyType)
}

func (h debugHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "kind", keyType, "bytes", size)
}

func (h debugHooks) OnRequest(_ context.Context, method, host, path string) {
	h.logger.Debug("request", "method", method, "host", host, "path", path)
}

func (h debugHooks) OnResponse(_ context.Context, method, host, path string, status int, d time.Duration) {
	h.logger.Debug("response", "method", method, "path", path, "status", status, "took", d.Round(time.Millisecond))
}

func (h debugHooks) OnError(_ context.Context, method, host, path string, err error) {
	h.logger.Debug("request failed", "method", method, "host", host, "path", path, "err", err)
}

var (
	_ observability.LoaderHooks = debugHooks{}
	_ observability.CacheHooks  = debugHooks{}
	_ observability.HTTPHooks   = debugHooks{}
)
