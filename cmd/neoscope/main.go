// Command neoscope loads the NASA near-Earth object feed and answers queries
// over it from the terminal or over HTTP.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/matzehuels/neoscope/internal/cli"
	errs "github.com/matzehuels/neoscope/pkg/errors"
)

// exitInterrupted is the shell convention for a SIGINT exit.
const exitInterrupted = 130

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := execute(ctx)
	stop()

	switch {
	case err == nil:
	case errors.Is(err, context.Canceled):
		os.Exit(exitInterrupted)
	default:
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(exitCode(err))
	}
}

func execute(ctx context.Context) error {
	c := cli.New(os.Stderr, cli.LogInfo)
	root := c.RootCommand()
	root.SilenceErrors = true

	var verbose bool
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	// Initializers run after flag parsing and before any PreRun hook.
	cobra.OnInitialize(func() {
		if verbose {
			c.SetLogLevel(cli.LogDebug)
		}
	})

	return root.ExecuteContext(ctx)
}

// exitCode returns 2 for errors the API would answer with 400, 1 otherwise.
func exitCode(err error) int {
	if errs.HTTPStatus(err) == http.StatusBadRequest {
		return 2
	}
	return 1
}
