// Package neo holds the near-Earth-object dataset and the analytical queries
// that feed every chart view.
//
// # Overview
//
// An [Observation] is one close approach of one object, flattened from the
// NeoWs feed. A [Dataset] is an immutable, ordered list of observations plus
// metadata derived from it at construction (sorted distinct dates and hazard
// counts). All queries on a Dataset are pure reads:
//
//   - [Dataset.ByDate]: observations partitioned by date
//   - [Dataset.BySizeCategory]: four-way split by average diameter
//   - [Dataset.TopN]: largest n observations by a [Metric]
//   - [Dataset.Stats]: min, max, mean, median and positional quartiles
//   - [Dataset.DailyCounts]: hazardous / non-hazardous counts per date
//
// # Current dataset
//
// A [Store] holds the current [State]: [Unloaded], [Loaded] or [Failed].
// Refreshing swaps the whole dataset in one atomic step, so concurrent
// readers always see a complete dataset:
//
//	store := neo.NewStore()
//	store.Swap(ds)
//	if ds, ok := store.Dataset(); ok {
//	    counts := ds.DailyCounts()
//	}
//
// # Quartiles
//
// [Dataset.Stats] computes Q1 and Q3 positionally: after sorting ascending,
// Q1 is the value at index floor(n*0.25) and Q3 the value at floor(n*0.75).
// No interpolation between ranks takes place, so results differ from the
// linear method used by most statistics packages.
package neo
