// Package config loads neoscope settings from a TOML file, the environment
// and built-in defaults, in increasing order of precedence: defaults, file,
// environment. CLI flags are applied on top by the caller.
//
// The file lives at $XDG_CONFIG_HOME/neoscope/config.toml:
//
//	api_key          = "DEMO_KEY"
//	start_date       = "2024-01-01"
//	end_date         = "2024-01-08"
//	cache_ttl        = "24h"
//	listen           = ":8080"
//	refresh_schedule = "@every 6h"
//
//	[redis]
//	addr   = "localhost:6379"
//	prefix = "staging:"
//
//	[mongo]
//	uri      = "mongodb://localhost:27017"
//	database = "neoscope"
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/neoscope/pkg/cache"
	errs "github.com/matzehuels/neoscope/pkg/errors"
	"github.com/matzehuels/neoscope/pkg/integrations/nasa"
)

// Environment variables that override file settings.
const (
	EnvAPIKey    = "NASA_API_KEY"
	EnvRedisAddr = "NEOSCOPE_REDIS_ADDR"
	EnvMongoURI  = "NEOSCOPE_MONGO_URI"
)

// Defaults for settings not covered by the nasa package.
const (
	DefaultListen          = ":8080"
	DefaultRefreshSchedule = "@every 6h"
	DefaultMongoDatabase   = "neoscope"
)

// Config holds every setting the CLI and server read.
type Config struct {
	APIKey          string   `toml:"api_key"`
	BaseURL         string   `toml:"base_url"`
	StartDate       string   `toml:"start_date"`
	EndDate         string   `toml:"end_date"`
	CacheTTL        Duration `toml:"cache_ttl"`
	Listen          string   `toml:"listen"`
	RefreshSchedule string   `toml:"refresh_schedule"`

	Redis Redis `toml:"redis"`
	Mongo Mongo `toml:"mongo"`
}

// Redis configures the shared cache. An empty Addr disables it. Prefix
// scopes keys so several deployments can share one server.
type Redis struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	Prefix   string `toml:"prefix"`
}

// Mongo configures the snapshot archive. An empty URI disables it.
type Mongo struct {
	URI      string `toml:"uri"`
	Database string `toml:"database"`
}

// Duration is a time.Duration written as a Go duration string ("6h").
type Duration struct{ time.Duration }

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		APIKey:          nasa.DefaultAPIKey,
		BaseURL:         nasa.DefaultBaseURL,
		StartDate:       nasa.DefaultStartDate,
		EndDate:         nasa.DefaultEndDate,
		CacheTTL:        Duration{cache.TTLHTTP},
		Listen:          DefaultListen,
		RefreshSchedule: DefaultRefreshSchedule,
		Mongo:           Mongo{Database: DefaultMongoDatabase},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/neoscope/config.toml.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, cache.AppName, "config.toml"), nil
}

// Load reads the configuration.
//
// An empty path means [DefaultPath], which may be absent. An explicit path
// must exist. Unknown keys are rejected so typos surface early. The
// environment is applied after the file and the result is validated.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			cfg.ApplyEnv(os.Getenv)
			return cfg, cfg.Validate()
		}
		path = p
	}

	md, err := toml.DecodeFile(path, &cfg)
	switch {
	case errors.Is(err, fs.ErrNotExist) && !explicit:
		// no file: defaults only
	case err != nil:
		return Config{}, errs.Wrap(errs.ErrCodeInvalidInput, err, "read config %s", path)
	default:
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			slices.Sort(keys)
			return Config{}, errs.New(errs.ErrCodeInvalidInput, "config %s: unknown keys %s", path, strings.Join(keys, ", "))
		}
	}

	cfg.ApplyEnv(os.Getenv)
	return cfg, cfg.Validate()
}

// ApplyEnv overrides settings from environment variables read via getenv.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := getenv(EnvAPIKey); v != "" {
		c.APIKey = v
	}
	if v := getenv(EnvRedisAddr); v != "" {
		c.Redis.Addr = v
	}
	if v := getenv(EnvMongoURI); v != "" {
		c.Mongo.URI = v
	}
}

// Validate checks the settings that would otherwise fail late.
func (c Config) Validate() error {
	if err := errs.ValidateAPIKey(c.APIKey); err != nil {
		return err
	}
	if err := errs.ValidateURL(c.BaseURL); err != nil {
		return err
	}
	if err := errs.ValidateDateRange(c.StartDate, c.EndDate); err != nil {
		return err
	}
	if c.CacheTTL.Duration < 0 {
		return errs.New(errs.ErrCodeInvalidInput, "cache_ttl must not be negative")
	}
	return nil
}

// Write encodes c as TOML to path, creating parent directories.
func Write(path string, c Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := toml.NewEncoder(f).Encode(c); err != nil {
		f.Close()
		return fmt.Errorf("encode config: %w", err)
	}
	return f.Close()
}
