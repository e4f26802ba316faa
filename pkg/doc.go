// Package pkg provides the libraries behind neoscope, a near-Earth asteroid
// dataset engine.
//
// # Overview
//
// neoscope loads close-approach records from the NASA NeoWs feed, normalizes
// them into an immutable dataset and answers queries about it. The pkg
// directory is organized by concern:
//
//  1. [neo] - Domain model (observations, datasets, queries, the swap store)
//  2. [views] - Chart-ready reshapes of a dataset
//  3. [integrations] - HTTP client with caching; [integrations/nasa] for the feed
//  4. [loader] - Fetch, normalize, cache and swap; cron-driven refreshes
//  5. [cache], [archive] - Redis or file caches; MongoDB snapshot archive
//  6. [api] - JSON HTTP API over a store
//  7. [config], [io], [errors], [observability], [buildinfo] - Supporting packages
//
// # Architecture
//
// The typical data flow:
//
//	NeoWs feed (HTTP, cached)
//	         ↓
//	    [integrations/nasa] (fetch + normalize)
//	         ↓
//	    [loader] (dataset cache, archive, swap)
//	         ↓
//	    [neo.Store] ← queries from the CLI and [api]
//
// # Quick Start
//
//	client := nasa.NewClient(cache.NewNullCache(), cache.TTLHTTP, nasa.DefaultAPIKey)
//	store := neo.NewStore()
//	runner := loader.NewRunner(client, store, nil, nil, nil)
//
//	if _, err := runner.Load(ctx, loader.Options{}); err != nil {
//	    return err
//	}
//
//	ds, _ := store.Dataset()
//	top, _ := ds.TopN(neo.MetricVelocity, 5)
//	stats, _ := ds.Stats(neo.MetricDiameterAvg)
package pkg
