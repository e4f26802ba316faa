package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/neoscope/pkg/config"
	errs "github.com/matzehuels/neoscope/pkg/errors"
	nio "github.com/matzehuels/neoscope/pkg/io"
	"github.com/matzehuels/neoscope/pkg/loader"
	"github.com/matzehuels/neoscope/pkg/neo"
)

// loadFlags are shared by every command that needs a dataset.
type loadFlags struct {
	start   string
	end     string
	refresh bool
	noCache bool
	input   string
}

func (f *loadFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.start, "start", "", "first feed date, YYYY-MM-DD (default from config)")
	cmd.Flags().StringVar(&f.end, "end", "", "last feed date, YYYY-MM-DD, at most 7 days after --start")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "bypass the cache and refetch")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching entirely")
	cmd.Flags().StringVarP(&f.input, "input", "i", "", "read a snapshot file instead of fetching")
	cmd.MarkFlagsMutuallyExclusive("input", "refresh")
	cmd.MarkFlagsMutuallyExclusive("input", "start")
	cmd.MarkFlagsMutuallyExclusive("input", "end")
}

// options resolves the date range against the config defaults.
func (f *loadFlags) options(c *CLI) loader.Options {
	opts := loader.Options{
		StartDate: f.start,
		EndDate:   f.end,
		Refresh:   f.refresh,
	}
	if opts.StartDate == "" {
		opts.StartDate = c.config.StartDate
	}
	if opts.EndDate == "" {
		opts.EndDate = c.config.EndDate
	}
	return opts
}

// loadDataset produces the dataset a command works on, either from a
// snapshot file or by running the loader with a spinner on stderr.
func (c *CLI) loadDataset(ctx context.Context, f *loadFlags) (*loader.Result, error) {
	logger := loggerFromContext(ctx)

	if f.input != "" {
		ds, err := nio.ImportSnapshot(f.input)
		if err != nil {
			return nil, err
		}
		logger.Debug("read snapshot", "path", f.input, "observations", ds.Len())
		return &loader.Result{Dataset: ds}, nil
	}

	opts := f.options(c)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	runner, err := c.newRunner(ctx, neo.NewStore(), f.noCache)
	if err != nil {
		return nil, err
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, os.Stderr, fmt.Sprintf("Loading %s to %s...", opts.StartDate, opts.EndDate))
	spinner.Start()
	sw := startStopwatch(logger)

	res, err := runner.Load(ctx, opts)
	spinner.Stop()
	if err != nil {
		if spinner.Cancelled() {
			return nil, ctx.Err()
		}
		return nil, describeLoadError(err)
	}
	sw.done("loaded dataset", "observations", res.Dataset.Len(), "cache_hit", res.CacheHit)
	return res, nil
}

// describeLoadError adds a hint for the failures users can act on.
func describeLoadError(err error) error {
	var rl *errs.RateLimitedError
	switch {
	case errors.As(err, &rl):
		return fmt.Errorf("%w (set %s to your own key to raise the limit)", err, config.EnvAPIKey)
	case errs.Is(err, errs.ErrCodeUpstreamAuth):
		return fmt.Errorf("%w (check the key in %s or the config file)", err, config.EnvAPIKey)
	case errs.Is(err, errs.ErrCodeNetwork), errs.Is(err, errs.ErrCodeTimeout):
		return fmt.Errorf("%w (check your connection, or use --input with a saved snapshot)", err)
	}
	return err
}
