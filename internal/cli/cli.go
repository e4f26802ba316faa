package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/neoscope/pkg/cache"
	"github.com/matzehuels/neoscope/pkg/config"
	"github.com/matzehuels/neoscope/pkg/integrations/nasa"
	"github.com/matzehuels/neoscope/pkg/loader"
	"github.com/matzehuels/neoscope/pkg/neo"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = cache.AppName

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	config     config.Config
	format     string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// loadConfig reads the config file named by --config (or the default path)
// and the environment.
func (c *CLI) loadConfig() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.config = cfg
	c.Logger.Debug("loaded config", "path", c.configPath, "start", cfg.StartDate, "end", cfg.EndDate)
	return nil
}

// =============================================================================
// Factories
// =============================================================================

// newCache picks the cache backend: none with --no-cache, Redis when an
// address is configured and reachable, otherwise the per-user file cache.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if r := c.config.Redis; r.Addr != "" {
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{Addr: r.Addr, Password: r.Password, DB: r.DB})
		if err == nil {
			return rc, nil
		}
		c.Logger.Warn("redis unavailable, using the local cache", "addr", r.Addr, "err", err)
	}
	dir, err := cacheDir()
	if err != nil {
		c.Logger.Warn("no cache directory, caching disabled", "err", err)
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// newKeyer scopes cache keys by the configured Redis prefix.
func (c *CLI) newKeyer() cache.Keyer {
	if p := c.config.Redis.Prefix; p != "" {
		return cache.NewScopedKeyer(nil, p)
	}
	return cache.NewDefaultKeyer()
}

// newClient creates a NeoWs client from the loaded config.
func (c *CLI) newClient(backend cache.Cache, keyer cache.Keyer) *nasa.Client {
	client := nasa.NewClient(backend, c.config.CacheTTL.Duration, c.config.APIKey).
		WithBaseURL(c.config.BaseURL)
	client.WithKeyer(keyer)
	return client
}

// newRunner creates a loader runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, store *neo.Store, noCache bool) (*loader.Runner, error) {
	backend, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	keyer := c.newKeyer()
	return loader.NewRunner(c.newClient(backend, keyer), store, backend, keyer, c.Logger), nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/neoscope/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	return cache.DefaultDir()
}
