// Package loader refreshes the in-memory asteroid dataset.
//
// A load runs fetch → normalize → build dataset → cache → archive → swap:
//
//	runner := loader.NewRunner(client, store, backend, nil, logger)
//	res, err := runner.Load(ctx, loader.Options{StartDate: "2024-01-01", EndDate: "2024-01-08"})
//
// The normalized dataset is cached under [cache.Keyer.DatasetKey], so a
// repeated load over the same range skips both the HTTP call and
// normalization unless Options.Refresh is set. Readers never observe a
// partially built dataset: the store pointer is swapped only once the new
// dataset is complete.
//
// [Scheduler] re-runs a Runner on a cron schedule for long-lived servers.
package loader
