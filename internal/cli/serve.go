package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/neoscope/pkg/api"
	"github.com/matzehuels/neoscope/pkg/archive"
	"github.com/matzehuels/neoscope/pkg/loader"
	"github.com/matzehuels/neoscope/pkg/neo"
)

const shutdownTimeout = 10 * time.Second

// serveCommand runs the HTTP API over a store kept fresh by the scheduler.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		listen   string
		schedule string
		noCache  bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dataset over HTTP",
		Long: `Serve the dataset as a JSON API. The configured date range is loaded at
startup and refreshed on the configured schedule. Query endpoints answer 503
until the first load succeeds.

When a MongoDB URI is configured, every fresh load is archived and the most
recent snapshot is restored at startup.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			if listen == "" {
				listen = c.config.Listen
			}
			if schedule == "" {
				schedule = c.config.RefreshSchedule
			}

			store := neo.NewStore()
			runner, err := c.newRunner(ctx, store, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			if uri := c.config.Mongo.URI; uri != "" {
				arch, err := archive.Open(ctx, uri, c.config.Mongo.Database)
				if err != nil {
					return err
				}
				defer arch.Close(context.WithoutCancel(ctx))
				runner.WithArchive(arch)

				if _, err := runner.Warm(ctx); err != nil {
					logger.Warn("could not restore archived snapshot", "err", err)
				}
			}

			opts := loader.Options{StartDate: c.config.StartDate, EndDate: c.config.EndDate}
			sched, err := loader.NewScheduler(runner, schedule, opts)
			if err != nil {
				return err
			}

			// The first load runs in the background so the server can report
			// health while it is in flight.
			initial := make(chan struct{})
			go func() {
				defer close(initial)
				if _, err := runner.Load(ctx, opts); err != nil {
					logger.Warn("initial load failed; serving without data until the next refresh", "err", err)
				}
			}()
			sched.Start(ctx)
			defer func() {
				sched.Stop()
				<-initial
			}()

			srv := api.New(store, sched, logger).HTTPServer(listen)
			errc := make(chan error, 1)
			go func() {
				logger.Info("listening", "addr", listen, "schedule", schedule)
				errc <- srv.ListenAndServe()
			}()

			select {
			case err := <-errc:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
			}

			logger.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}

	cmd.Flags().StringVar(&listen, "listen", "", "address to listen on (default from config, :8080)")
	cmd.Flags().StringVar(&schedule, "schedule", "", `refresh schedule, cron syntax or "@every 6h"`)
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching entirely")
	return cmd
}
