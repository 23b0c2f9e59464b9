package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/graphsketch/pkg/buildinfo"
	"github.com/matzehuels/graphsketch/pkg/cache"
	"github.com/matzehuels/graphsketch/pkg/config"
	"github.com/matzehuels/graphsketch/pkg/errors"
	"github.com/matzehuels/graphsketch/pkg/graph"
	graphio "github.com/matzehuels/graphsketch/pkg/io"
	"github.com/matzehuels/graphsketch/pkg/render/nodelink"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "graphsketch"

	// exportScale converts terminal cells to points in SVG/PNG exports.
	exportScale = 24
)

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
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Graphsketch draws graphs by clicking and dragging",
		Long:         `Graphsketch is an interactive graph editor. Click to add nodes, click two nodes to connect them, hold to drag, and export the result as JSON, YAML, SVG or PNG.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: "+config.Path()+")")

	// Register all subcommands
	root.AddCommand(c.editCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.validateCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Config & Renderer Factory
// =============================================================================

func (c *CLI) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return nil, err
	}
	c.Logger.Debug("config loaded", "path", c.configPath, "cache", cfg.Render.Cache)
	return cfg, nil
}

// newRenderer builds an SVG/PNG renderer backed by the configured cache.
func (c *CLI) newRenderer(ctx context.Context, cfg *config.Config, noCache bool) (*nodelink.Renderer, error) {
	backend := cfg.Render.Cache
	if noCache {
		backend = config.CacheNone
	}
	rc, err := c.newCache(ctx, backend, cfg.Render.RedisAddr)
	if err != nil {
		return nil, err
	}
	return &nodelink.Renderer{
		Cache: rc,
		TTL:   cfg.Render.CacheTTL.Duration,
		Opts:  nodelink.Options{Scale: exportScale, NodeRadius: cfg.Editor.NodeRadius / 2},
	}, nil
}

// newCache opens the cache backend. An unreachable Redis falls back to the
// file cache.
func (c *CLI) newCache(ctx context.Context, backend, redisAddr string) (cache.Cache, error) {
	switch backend {
	case config.CacheNone:
		return cache.NewNullCache(), nil
	case config.CacheRedis:
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{Addr: redisAddr})
		if err == nil {
			return rc, nil
		}
		c.Logger.Warn("redis cache unavailable, using file cache", "addr", redisAddr, "err", err)
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths & Files
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/graphsketch/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// formatFromPath picks the text format from a file extension. Anything
// that is not YAML is read as JSON.
func formatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return graphio.FormatYAML
	default:
		return graphio.FormatJSON
	}
}

// readGraphFile loads a graph document from path.
func readGraphFile(path string) (*graph.Snapshot, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "graph file %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "read %s", path)
	}
	return graphio.Unmarshal(data, formatFromPath(path))
}

// writeGraphFile saves s to path in the format its extension names.
func writeGraphFile(s *graph.Snapshot, path string) error {
	data, err := graphio.Marshal(s, formatFromPath(path))
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
