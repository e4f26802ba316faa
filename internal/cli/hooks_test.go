package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/neoscope/pkg/observability"
)

func TestInstallHooks(t *testing.T) {
	t.Cleanup(observability.Reset)
	ctx := context.Background()

	t.Run("info level keeps no-ops", func(t *testing.T) {
		observability.Reset()
		var buf bytes.Buffer
		installHooks(newLogger(&buf, log.InfoLevel))
		observability.Cache().OnCacheHit(ctx, "http")
		if buf.Len() != 0 {
			t.Errorf("unexpected output at info level: %q", buf.String())
		}
	})

	t.Run("debug level logs events", func(t *testing.T) {
		observability.Reset()
		var buf bytes.Buffer
		installHooks(newLogger(&buf, log.DebugLevel))
		observability.Cache().OnCacheMiss(ctx, "dataset")
		observability.HTTP().OnRequest(ctx, "GET", "api.nasa.gov", "/neo/rest/v1/feed")
		observability.Loader().OnFetchStart(ctx, "2024-01-01", "2024-01-07")

		out := buf.String()
		for _, want := range []string{"cache miss", "dataset", "/neo/rest/v1/feed", "fetching feed", "2024-01-07"} {
			if !strings.Contains(out, want) {
				t.Errorf("output missing %q:\n%s", want, out)
			}
		}
	})
}
