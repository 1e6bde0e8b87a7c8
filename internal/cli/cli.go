// Package cli implements the gigcard command-line interface.
//
// This package provides commands for exporting branded social graphics
// from CMS content records, previewing them interactively, serving the
// export pipeline over HTTP, and managing the render cache. The CLI is
// built using cobra and supports verbose logging via the
// charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - render: Export one content record as a PNG graphic
//   - preview: Interactive terminal preview with live style switching
//   - serve: Run the HTTP export service
//   - styles: List registered styles and formats
//   - cache: Manage the render/asset cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/soundpress/gigcard/pkg/assets"
	"github.com/soundpress/gigcard/pkg/buildinfo"
	"github.com/soundpress/gigcard/pkg/cache"
	"github.com/soundpress/gigcard/pkg/config"
	"github.com/soundpress/gigcard/pkg/fonts"
	"github.com/soundpress/gigcard/pkg/pipeline"
)

// appName is the application name used for directories and display.
const appName = "gigcard"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger     *log.Logger
	ConfigPath string

	cfg *config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Gigcard renders branded social graphics from CMS content",
		Long:         `Gigcard turns music-magazine content records into branded social-media graphics: feed (4:5) and story (9:16) PNGs in five fixed styles, exported from the command line, an HTTP service, or an interactive preview.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.ConfigPath, "config", "", "config file (default: gigcard.toml, then user config dir)")

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.stylesCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// Config loads the configuration file once and memoizes it.
func (c *CLI) Config() (config.Config, error) {
	if c.cfg != nil {
		return *c.cfg, nil
	}
	cfg, err := config.Load(c.ConfigPath)
	if err != nil {
		return cfg, err
	}
	c.cfg = &cfg
	return cfg, nil
}

// newRunner creates a pipeline runner for CLI use. Font registration is
// attempted here; a failure degrades to the built-in face and is logged,
// never fatal.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	cfg, err := c.Config()
	if err != nil {
		return nil, err
	}
	if err := fonts.Register(cfg.FontFile); err != nil {
		c.Logger.Warn("no TrueType font found, using bitmap fallback", "err", err)
	}

	store, err := c.openCache(cfg, noCache)
	if err != nil {
		return nil, err
	}
	loader := assets.NewLoader(nil, store, c.Logger)
	runner := pipeline.NewRunner(store, loader, c.Logger)
	if ttl := cfg.Cache.TTL.Duration; ttl > 0 {
		runner.TTL = ttl
	}
	return runner, nil
}

func (c *CLI) openCache(cfg config.Config, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch cfg.Cache.Backend {
	case "none":
		return cache.NewNullCache(), nil
	case "redis":
		return cache.NewRedisCache(context.Background(), cache.RedisConfig{
			Addr:     cfg.Cache.Redis.Addr,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
		})
	default:
		return cache.NewFileCache(cfg.Cache.CacheDir())
	}
}
