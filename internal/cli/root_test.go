package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/neoscope/pkg/config"
	errs "github.com/matzehuels/neoscope/pkg/errors"
	nio "github.com/matzehuels/neoscope/pkg/io"
	"github.com/matzehuels/neoscope/pkg/neo"
)

// runCLI executes the root command with args against a config file in a
// temp dir and returns stdout.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv(config.EnvAPIKey, "")
	t.Setenv(config.EnvRedisAddr, "")
	t.Setenv(config.EnvMongoURI, "")

	cfgPath := filepath.Join(t.TempDir(), "config.toml")
	if err := config.Write(cfgPath, config.Default()); err != nil {
		t.Fatal(err)
	}

	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(append([]string{"--config", cfgPath}, args...))
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

// writeSnapshot saves a small dataset and returns its path.
func writeSnapshot(t *testing.T) string {
	t.Helper()
	ds := neo.NewDataset([]neo.Observation{
		neo.NewObservation("1", "(2024 AA)", "2024-01-01", 0.05, 0.07, false, 12000, 3e6, 24.1),
		neo.NewObservation("2", "(2024 AB)", "2024-01-01", 0.2, 0.4, true, 45000, 5e6, 20.3),
		neo.NewObservation("3", "(2024 AC)", "2024-01-02", 0.6, 0.8, true, 80000, 1e6, 18.7),
		neo.NewObservation("4", "(2024 AD)", "2024-01-02", 1.1, 1.5, false, 30000, 7e6, 17.2),
	}, neo.Meta{StartDate: "2024-01-01", EndDate: "2024-01-02"})

	path := filepath.Join(t.TempDir(), "snapshot.json")
	if err := nio.ExportSnapshot(ds, path); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRootCommandTree(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()

	for _, name := range []string{
		"fetch", "browse", "serve",
		"dates", "sizes", "top", "stats", "daily", "views", "view",
		"cache", "config", "archive", "completion",
	} {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("command %q not registered", name)
		}
	}

	if f := root.PersistentFlags().Lookup("format"); f == nil || f.DefValue != "table" {
		t.Error("--format should default to table")
	}
}

func TestQueryCommands_JSON(t *testing.T) {
	snap := writeSnapshot(t)

	t.Run("top", func(t *testing.T) {
		out, err := runCLI(t, "top", "velocity", "-n", "2", "--input", snap, "--format", "json")
		if err != nil {
			t.Fatalf("top: %v", err)
		}
		var got []neo.Observation
		if err := json.Unmarshal([]byte(out), &got); err != nil {
			t.Fatalf("decode %q: %v", out, err)
		}
		if len(got) != 2 || got[0].ID != "3" || got[1].ID != "2" {
			t.Errorf("top velocity = %+v, want ids 3, 2", got)
		}
	})

	t.Run("stats", func(t *testing.T) {
		out, err := runCLI(t, "stats", "velocity", "--input", snap, "--format", "json")
		if err != nil {
			t.Fatalf("stats: %v", err)
		}
		var got neo.Stats
		if err := json.Unmarshal([]byte(out), &got); err != nil {
			t.Fatalf("decode: %v", err)
		}
		// sorted: 12000 30000 45000 80000
		if got.Count != 4 || got.Min != 12000 || got.Max != 80000 || got.Q1 != 30000 || got.Q3 != 80000 {
			t.Errorf("stats = %+v", got)
		}
	})

	t.Run("daily", func(t *testing.T) {
		out, err := runCLI(t, "daily", "--input", snap, "--format", "json")
		if err != nil {
			t.Fatalf("daily: %v", err)
		}
		var got []neo.DailyCount
		if err := json.Unmarshal([]byte(out), &got); err != nil {
			t.Fatalf("decode: %v", err)
		}
		want := []neo.DailyCount{
			{Date: "2024-01-01", Hazardous: 1, NonHazardous: 1, Total: 2},
			{Date: "2024-01-02", Hazardous: 1, NonHazardous: 1, Total: 2},
		}
		if len(got) != len(want) {
			t.Fatalf("daily = %+v, want %+v", got, want)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("day %d = %+v, want %+v", i, got[i], want[i])
			}
		}
	})

	t.Run("sizes", func(t *testing.T) {
		out, err := runCLI(t, "sizes", "--input", snap, "--format", "json")
		if err != nil {
			t.Fatalf("sizes: %v", err)
		}
		var got neo.SizeCategories
		if err := json.Unmarshal([]byte(out), &got); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if len(got.Small) != 1 || len(got.Medium) != 1 || len(got.Large) != 1 || len(got.VeryLarge) != 1 {
			t.Errorf("sizes = %+v, want one per category", got)
		}
	})

	t.Run("dates yaml", func(t *testing.T) {
		out, err := runCLI(t, "dates", "--input", snap, "--format", "yaml")
		if err != nil {
			t.Fatalf("dates: %v", err)
		}
		for _, want := range []string{"2024-01-01", "2024-01-02", "is_hazardous:"} {
			if !strings.Contains(out, want) {
				t.Errorf("dates yaml missing %q:\n%s", want, out)
			}
		}
	})
}

func TestQueryCommands_Table(t *testing.T) {
	snap := writeSnapshot(t)

	out, err := runCLI(t, "top", "diameter_avg", "--input", snap)
	if err != nil {
		t.Fatalf("top: %v", err)
	}
	if !strings.Contains(out, "(2024 AD)") || !strings.Contains(out, "Diameter km") {
		t.Errorf("table output missing rows or headers:\n%s", out)
	}
}

func TestQueryCommands_Errors(t *testing.T) {
	snap := writeSnapshot(t)

	tests := []struct {
		name string
		args []string
		code errs.Code
	}{
		{"unknown metric", []string{"stats", "brightness", "--input", snap}, errs.ErrCodeUnknownMetric},
		{"unknown view", []string{"view", "sankey", "--input", snap}, errs.ErrCodeNotFound},
		{"unknown size category", []string{"sizes", "--category", "huge", "--input", snap}, errs.ErrCodeInvalidInput},
		{"bad format", []string{"daily", "--input", snap, "--format", "xml"}, errs.ErrCodeInvalidFormat},
		{"range too long", []string{"daily", "--start", "2024-01-01", "--end", "2024-01-20", "--no-cache"}, errs.ErrCodeInvalidDateRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCLI(t, tt.args...)
			if !errs.Is(err, tt.code) {
				t.Errorf("got %v, want %s", err, tt.code)
			}
		})
	}
}

func TestViewCommand(t *testing.T) {
	snap := writeSnapshot(t)

	out, err := runCLI(t, "view", "pie-chart", "--input", snap)
	if err != nil {
		t.Fatalf("view: %v", err)
	}
	if !json.Valid([]byte(out)) {
		t.Errorf("view output should be JSON even in table mode: %q", out)
	}
}

func TestConfigCommands(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	if _, err := runCLI(t, "--config", path, "config", "init"); err != nil {
		t.Fatalf("config init: %v", err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("written config does not load: %v", err)
	}
	if cfg.StartDate != config.Default().StartDate {
		t.Errorf("start date = %q, want default", cfg.StartDate)
	}

	if _, err := runCLI(t, "--config", path, "config", "init"); !errs.Is(err, errs.ErrCodeInvalidInput) {
		t.Errorf("second init without --force: got %v, want INVALID_INPUT", err)
	}

	out, err := runCLI(t, "--config", path, "config", "path")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != path {
		t.Errorf("config path = %q, want %q", out, path)
	}
}

func TestMaskKey(t *testing.T) {
	tests := []struct{ in, want string }{
		{"", ""},
		{"DEMO_KEY", "DEMO_KEY"},
		{"abcdefgh1234", "****1234"},
	}
	for _, tt := range tests {
		if got := maskKey(tt.in); got != tt.want {
			t.Errorf("maskKey(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCompletion(t *testing.T) {
	for _, shell := range shellNames() {
		t.Run(shell, func(t *testing.T) {
			out, err := runCLI(t, "completion", shell)
			if err != nil {
				t.Fatalf("completion %s: %v", shell, err)
			}
			if !strings.Contains(out, "neoscope") {
				t.Errorf("%s script does not mention neoscope", shell)
			}
		})
	}

	if _, err := runCLI(t, "completion", "tcsh"); err == nil {
		t.Error("expected an error for an unsupported shell")
	}
}
