package loader

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/neoscope/pkg/cache"
	errs "github.com/matzehuels/neoscope/pkg/errors"
	"github.com/matzehuels/neoscope/pkg/integrations/nasa"
	"github.com/matzehuels/neoscope/pkg/neo"
	"github.com/matzehuels/neoscope/pkg/observability"
)

// Fetcher downloads the raw feed. Implemented by [nasa.Client].
type Fetcher interface {
	FetchFeed(ctx context.Context, start, end string, refresh bool) (*nasa.Feed, error)
}

// Archive persists loaded snapshots. Implemented by archive.Mongo.
type Archive interface {
	Save(ctx context.Context, ds *neo.Dataset) error
	Latest(ctx context.Context) (*neo.Dataset, error)
}

// Result describes one successful load.
type Result struct {
	Dataset  *neo.Dataset
	Previous *neo.Dataset // nil on the first load
	CacheHit bool
	Duration time.Duration
}

// Runner loads datasets into a store.
//
// Loads are serialized: concurrent calls to Load run one after another so
// the last finished load is the one readers see.
type Runner struct {
	Fetcher Fetcher
	Store   *neo.Store
	Cache   cache.Cache
	Keyer   cache.Keyer
	Archive Archive
	Logger  *log.Logger

	mu sync.Mutex
}

// NewRunner creates a runner.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(f Fetcher, store *neo.Store, c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if store == nil {
		store = neo.NewStore()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Fetcher: f,
		Store:   store,
		Cache:   c,
		Keyer:   keyer,
		Logger:  logger,
	}
}

// WithArchive attaches a snapshot archive. Fresh loads are saved to it.
func (r *Runner) WithArchive(a Archive) *Runner {
	r.Archive = a
	return r
}

// Load runs one refresh and swaps the result into the store.
// On failure the store keeps any dataset it already had; the error is
// recorded via [neo.Store.Fail].
func (r *Runner) Load(ctx context.Context, opts Options) (*Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	start := time.Now()
	res, err := r.load(ctx, opts)

	var id string
	var count int
	if res != nil {
		id, count = res.Dataset.ID(), res.Dataset.Len()
	}
	observability.Loader().OnLoadComplete(ctx, id, count, time.Since(start), err)

	if err != nil {
		r.Store.Fail(err)
		r.Logger.Error("load failed", "start", opts.StartDate, "end", opts.EndDate, "err", err)
		return nil, err
	}
	res.Duration = time.Since(start)
	return res, nil
}

func (r *Runner) load(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	ds, hit, err := r.datasetWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, err
	}

	if !hit && r.Archive != nil {
		if err := r.Archive.Save(ctx, ds); err != nil {
			r.Logger.Warn("archive save failed", "snapshot", ds.ID(), "err", err)
		} else {
			r.Logger.Debug("archived snapshot", "snapshot", ds.ID())
		}
	}

	prev := r.Store.Swap(ds)
	r.Logger.Info("loaded asteroid data",
		"total", ds.Len(),
		"hazardous", ds.HazardousCount(),
		"non_hazardous", ds.NonHazardousCount(),
		"dates", len(ds.Dates()),
		"cached", hit)

	return &Result{Dataset: ds, Previous: prev, CacheHit: hit}, nil
}

// datasetWithCacheInfo returns the dataset for the range, from the dataset
// cache when possible.
func (r *Runner) datasetWithCacheInfo(ctx context.Context, opts Options) (*neo.Dataset, bool, error) {
	key := r.Keyer.DatasetKey(opts.StartDate, opts.EndDate)
	hooks := observability.Cache()

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var snap neo.Snapshot
			if err := json.Unmarshal(data, &snap); err == nil {
				hooks.OnCacheHit(ctx, "dataset")
				return neo.FromSnapshot(snap), true, nil
			}
			r.Logger.Debug("discarding unreadable cached dataset", "key", key)
		}
		hooks.OnCacheMiss(ctx, "dataset")
	}

	obs, err := r.fetch(ctx, opts)
	if err != nil {
		return nil, false, err
	}
	ds := neo.NewDataset(obs, neo.Meta{StartDate: opts.StartDate, EndDate: opts.EndDate})

	if data, err := json.Marshal(ds.Snapshot()); err == nil {
		if err := r.Cache.Set(ctx, key, data, cache.TTLDataset); err != nil {
			r.Logger.Warn("dataset cache write failed", "err", err)
		} else {
			hooks.OnCacheSet(ctx, "dataset", len(data))
		}
	}
	return ds, false, nil
}

func (r *Runner) fetch(ctx context.Context, opts Options) ([]neo.Observation, error) {
	if r.Fetcher == nil {
		return nil, fmt.Errorf("loader: no fetcher configured")
	}

	hooks := observability.Loader()
	hooks.OnFetchStart(ctx, opts.StartDate, opts.EndDate)
	start := time.Now()

	r.Logger.Debug("fetching feed", "start", opts.StartDate, "end", opts.EndDate, "refresh", opts.Refresh)
	feed, err := r.Fetcher.FetchFeed(ctx, opts.StartDate, opts.EndDate, opts.Refresh)
	if err != nil {
		hooks.OnFetchComplete(ctx, opts.StartDate, opts.EndDate, 0, time.Since(start), err)
		return nil, fmt.Errorf("fetch feed: %w", err)
	}

	obs, err := nasa.Normalize(feed)
	hooks.OnFetchComplete(ctx, opts.StartDate, opts.EndDate, len(obs), time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return obs, nil
}

// Warm swaps the archive's latest snapshot into an unloaded store so a
// restarted server answers queries before its first fetch completes.
// It is a no-op without an archive or when the store already holds data.
func (r *Runner) Warm(ctx context.Context) (bool, error) {
	if r.Archive == nil {
		return false, nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.Store.Dataset(); ok {
		return false, nil
	}
	ds, err := r.Archive.Latest(ctx)
	if errs.Is(err, errs.ErrCodeNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	r.Store.Swap(ds)
	r.Logger.Info("restored archived snapshot", "snapshot", ds.ID(), "total", ds.Len(), "loaded_at", ds.Meta().LoadedAt)
	return true, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
