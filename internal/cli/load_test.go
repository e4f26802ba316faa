package cli

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/matzehuels/neoscope/pkg/config"
	errs "github.com/matzehuels/neoscope/pkg/errors"
)

func TestDescribeLoadError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		hint string
	}{
		{"rate limited", &errs.RateLimitedError{RetryAfter: 10}, config.EnvAPIKey},
		{"rejected key", fmt.Errorf("%w: status 403", errs.New(errs.ErrCodeUpstreamAuth, "API key rejected")), "check the key"},
		{"network", errs.New(errs.ErrCodeNetwork, "connection refused"), "--input"},
		{"other", errors.New("boom"), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := describeLoadError(tt.err)
			if !errors.Is(got, tt.err) {
				t.Errorf("described error should wrap the original")
			}
			if tt.hint == "" {
				if got.Error() != tt.err.Error() {
					t.Errorf("unexpected hint: %q", got)
				}
				return
			}
			if !strings.Contains(got.Error(), tt.hint) {
				t.Errorf("error %q missing hint %q", got, tt.hint)
			}
		})
	}
}
