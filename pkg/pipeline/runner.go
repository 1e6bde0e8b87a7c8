package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/soundpress/gigcard/pkg/cache"
	"github.com/soundpress/gigcard/pkg/compose"
	"github.com/soundpress/gigcard/pkg/compose/ggcanvas"
	"github.com/soundpress/gigcard/pkg/content"
	"github.com/soundpress/gigcard/pkg/errors"
	"github.com/soundpress/gigcard/pkg/observability"
	"github.com/soundpress/gigcard/pkg/style"
)

// DefaultRenderTTL bounds how long finished graphics stay cached. Content
// edits change the cache key, so entries only go stale when a style is
// retuned.
const DefaultRenderTTL = 24 * time.Hour

// Runner encapsulates graphic export with render caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store results. Multiple goroutines can safely share one Runner with
// different options.
type Runner struct {
	Cache  cache.Cache
	Engine *compose.Engine
	Logger *log.Logger

	// TTL bounds cached render lifetime. Zero or negative uses
	// DefaultRenderTTL.
	TTL time.Duration
}

// NewRunner creates a runner rendering assets through loader.
// A nil cache disables caching; a nil logger logs to the default logger.
func NewRunner(c cache.Cache, loader compose.Loader, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Engine: compose.NewEngine(loader, logger),
		Logger: logger,
	}
}

// Execute runs the complete validate → load → render → encode pipeline
// with caching. The returned PNG is always a complete graphic; failures
// never yield partial image bytes.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	logger := r.Logger
	if opts.Logger != nil {
		logger = opts.Logger
	}

	result := &Result{}

	loadStart := time.Now()
	item, err := r.loadContent(opts)
	if err != nil {
		return nil, err
	}
	result.Stats.LoadTime = time.Since(loadStart)

	payload, err := opts.cachePayload(item)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "serialize render request")
	}
	key := cache.RenderKey(payload)

	if !opts.Refresh {
		if data, ok, _ := r.Cache.Get(ctx, key); ok {
			observability.Cache().OnCacheHit(ctx, "render")
			logger.Debug("render cache hit", "key", key)
			result.PNG = data
			result.Stats.Bytes = len(data)
			result.Stats.CacheHit = true
			return result, nil
		}
		observability.Cache().OnCacheMiss(ctx, "render")
	}

	renderStart := time.Now()
	observability.Render().OnRenderStart(ctx, opts.Style, opts.Format)
	data, err := r.render(ctx, opts, item)
	observability.Render().OnRenderComplete(ctx, opts.Style, opts.Format, time.Since(renderStart), err)
	if err != nil {
		return nil, err
	}
	result.PNG = data
	result.Stats.RenderTime = time.Since(renderStart)
	result.Stats.Bytes = len(data)

	ttl := r.TTL
	if ttl <= 0 {
		ttl = DefaultRenderTTL
	}
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		logger.Warn("render cache write failed", "err", err)
	} else {
		observability.Cache().OnCacheSet(ctx, "render", len(data))
	}

	logger.Info("rendered graphic",
		"style", opts.Style,
		"format", opts.Format,
		"bytes", len(data),
		"duration", result.Stats.RenderTime)

	return result, nil
}

func (r *Runner) loadContent(opts Options) (*content.Item, error) {
	if opts.Content != nil {
		return opts.Content, nil
	}
	if opts.ContentPath == "" {
		return nil, nil
	}
	return content.LoadFile(opts.ContentPath)
}

func (r *Runner) render(ctx context.Context, opts Options, item *content.Item) ([]byte, error) {
	surface, err := ggcanvas.New(style.Key(opts.Format))
	if err != nil {
		return nil, err
	}
	if err := r.Engine.Render(ctx, surface, opts.request(item)); err != nil {
		return nil, err
	}
	return surface.PNG()
}
