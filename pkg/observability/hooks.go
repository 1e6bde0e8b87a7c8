// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends. Consumers register hooks
// at startup to receive events about renders, asset fetches, and cache
// operations.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This approach:
//   - Avoids import cycles (hooks are registered by main, not by libraries)
//   - Keeps the core library dependency-free from observability frameworks
//   - Allows different backends (OpenTelemetry, Prometheus, DataDog, etc.)
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetRenderHooks(&myRenderHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Render().OnRenderStart(ctx, styleKey, format)
//	// ... paint ...
//	observability.Render().OnRenderComplete(ctx, styleKey, format, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// RenderHooks receives events from graphic composition.
type RenderHooks interface {
	// OnRenderStart fires before a graphic is painted.
	OnRenderStart(ctx context.Context, styleKey, format string)

	// OnRenderComplete fires after painting and encoding finished.
	OnRenderComplete(ctx context.Context, styleKey, format string, duration time.Duration, err error)
}

// AssetHooks receives events from asset loading.
type AssetHooks interface {
	// OnAssetFetch fires before an asset is resolved. kind is "hero" or "logo".
	OnAssetFetch(ctx context.Context, kind, ref string)

	// OnAssetResult fires after an asset resolved or failed.
	OnAssetResult(ctx context.Context, kind, ref string, duration time.Duration, err error)
}

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit. keyType is "asset" or "render".
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// NoopRenderHooks is a no-op implementation of RenderHooks.
type NoopRenderHooks struct{}

func (NoopRenderHooks) OnRenderStart(context.Context, string, string) {}
func (NoopRenderHooks) OnRenderComplete(context.Context, string, string, time.Duration, error) {
}

// NoopAssetHooks is a no-op implementation of AssetHooks.
type NoopAssetHooks struct{}

func (NoopAssetHooks) OnAssetFetch(context.Context, string, string)                        {}
func (NoopAssetHooks) OnAssetResult(context.Context, string, string, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

var (
	renderHooks RenderHooks = NoopRenderHooks{}
	assetHooks  AssetHooks  = NoopAssetHooks{}
	cacheHooks  CacheHooks  = NoopCacheHooks{}
	hooksMu     sync.RWMutex
)

// SetRenderHooks registers custom render hooks.
// This should be called once at application startup before any renders.
func SetRenderHooks(h RenderHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		renderHooks = h
	}
}

// SetAssetHooks registers custom asset hooks.
func SetAssetHooks(h AssetHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		assetHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Render returns the registered render hooks.
func Render() RenderHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return renderHooks
}

// Assets returns the registered asset hooks.
func Assets() AssetHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return assetHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	renderHooks = NoopRenderHooks{}
	assetHooks = NoopAssetHooks{}
	cacheHooks = NoopCacheHooks{}
}
