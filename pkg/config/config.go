// Package config loads graphsketch settings from a TOML file and the
// environment.
//
// The file lives at $XDG_CONFIG_HOME/graphsketch/config.toml (falling back
// to ~/.config). A missing file means defaults. Environment variables with
// the GRAPHSKETCH_ prefix override file values:
//
//	GRAPHSKETCH_DWELL        editor.dwell        (duration, e.g. "150ms")
//	GRAPHSKETCH_WEIGHTED     editor.weighted     (bool)
//	GRAPHSKETCH_DIRECTED     editor.directed     (bool)
//	GRAPHSKETCH_CACHE        render.cache        (file | redis | none)
//	GRAPHSKETCH_REDIS_ADDR   render.redis_addr
//	GRAPHSKETCH_LISTEN       server.listen
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/graphsketch/pkg/errors"
)

const appName = "graphsketch"

// Cache backends for [RenderConfig.Cache].
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"
)

// Config holds all settings.
type Config struct {
	Editor EditorConfig `toml:"editor"`
	Render RenderConfig `toml:"render"`
	Server ServerConfig `toml:"server"`
}

// EditorConfig controls the interactive editor.
type EditorConfig struct {
	Dwell      Duration `toml:"dwell"`
	Weighted   bool     `toml:"weighted"`
	Directed   bool     `toml:"directed"`
	NodeRadius float64  `toml:"node_radius"`
}

// RenderConfig controls export rendering and its cache.
type RenderConfig struct {
	Format    string   `toml:"format"`
	Cache     string   `toml:"cache"` // "file", "redis", "none"
	CacheTTL  Duration `toml:"cache_ttl"`
	RedisAddr string   `toml:"redis_addr"`
}

// ServerConfig controls `graphsketch serve`.
type ServerConfig struct {
	Listen string `toml:"listen"`
}

// Duration is a time.Duration written as a string ("100ms") in TOML.
type Duration struct {
	time.Duration
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Editor: EditorConfig{
			Dwell:      Duration{100 * time.Millisecond},
			NodeRadius: 1,
		},
		Render: RenderConfig{
			Format:    errors.FormatSVG,
			Cache:     CacheFile,
			CacheTTL:  Duration{24 * time.Hour},
			RedisAddr: "localhost:6379",
		},
		Server: ServerConfig{Listen: ":8087"},
	}
}

// Dir returns the graphsketch config directory.
func Dir() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, appName)
}

// Path returns the default config file path.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// Load reads the config at path (or [Path] when empty), then applies
// environment overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	if path == "" {
		path = Path()
	}
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse %s", path)
		}
	case !os.IsNotExist(err):
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "read %s", path)
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes cfg to path, creating parent directories.
func Save(cfg *Config, path string) error {
	if path == "" {
		path = Path()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Validate checks value ranges and enumerations.
func (c *Config) Validate() error {
	if c.Editor.Dwell.Duration <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "editor.dwell must be positive, got %s", c.Editor.Dwell)
	}
	if c.Editor.NodeRadius <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "editor.node_radius must be positive")
	}
	switch c.Render.Cache {
	case CacheFile, CacheRedis, CacheNone:
	default:
		return errors.New(errors.ErrCodeInvalidInput, "render.cache must be file, redis or none, got %q", c.Render.Cache)
	}
	f, err := errors.ValidateFormat(c.Render.Format, errors.FormatSVG, errors.FormatPNG, errors.FormatDOT, errors.FormatJSON, errors.FormatYAML)
	if err != nil {
		return err
	}
	c.Render.Format = f
	return nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	get := func(name string) (string, bool) {
		v, ok := lookup("GRAPHSKETCH_" + name)
		return strings.TrimSpace(v), ok && strings.TrimSpace(v) != ""
	}
	if v, ok := get("DWELL"); ok {
		if err := c.Editor.Dwell.UnmarshalText([]byte(v)); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "GRAPHSKETCH_DWELL")
		}
	}
	for name, dst := range map[string]*bool{
		"WEIGHTED": &c.Editor.Weighted,
		"DIRECTED": &c.Editor.Directed,
	} {
		if v, ok := get(name); ok {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return errors.Wrap(errors.ErrCodeInvalidInput, err, "GRAPHSKETCH_%s", name)
			}
			*dst = b
		}
	}
	if v, ok := get("CACHE"); ok {
		c.Render.Cache = strings.ToLower(v)
	}
	if v, ok := get("REDIS_ADDR"); ok {
		c.Render.RedisAddr = v
	}
	if v, ok := get("LISTEN"); ok {
		c.Server.Listen = v
	}
	return nil
}
