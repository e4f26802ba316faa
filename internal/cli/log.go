// Package cli implements the neoscope command-line interface.
//
// Commands load a week of the NASA NeoWs feed into a dataset and query it
// from the terminal, or serve it over HTTP. The CLI is built using cobra
// and logs through charmbracelet/log.
//
// # Commands
//
//   - fetch: Load a date range and print a summary, optionally exporting it
//   - dates, sizes, top, stats, daily: Query a loaded dataset
//   - views, view: List and build chart views
//   - browse: Interactive observation browser
//   - serve: Run the HTTP API with scheduled refreshes
//   - cache, config: Manage the response cache and the config file
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The logger is
// attached to the command context and retrieved with loggerFromContext.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger returns a logger writing short "15:04:05.00" timestamps to w.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// stopwatch logs a finished step with its elapsed time as a structured
// "took" field. Not safe for concurrent use.
type stopwatch struct {
	logger *log.Logger
	start  time.Time
}

func startStopwatch(l *log.Logger) *stopwatch {
	return &stopwatch{logger: l, start: time.Now()}
}

// done logs msg at info level. keyvals are appended before "took".
func (s *stopwatch) done(msg string, keyvals ...any) {
	took := time.Since(s.start).Round(time.Millisecond)
	s.logger.Info(msg, append(keyvals, "took", took)...)
}

type loggerKey struct{}

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// loggerFromContext falls back to log.Default() so commands run outside
// RootCommand (tests, completion) still have somewhere to log.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
