package observability

import (
	"context"
	"testing"
	"time"
)

type countingRenderHooks struct {
	starts, completes int
}

func (c *countingRenderHooks) OnRenderStart(context.Context, string, string) { c.starts++ }
func (c *countingRenderHooks) OnRenderComplete(context.Context, string, string, time.Duration, error) {
	c.completes++
}

func TestHookRegistration(t *testing.T) {
	t.Cleanup(Reset)

	hooks := &countingRenderHooks{}
	SetRenderHooks(hooks)

	Render().OnRenderStart(context.Background(), "neon", "story")
	Render().OnRenderComplete(context.Background(), "neon", "story", time.Millisecond, nil)

	if hooks.starts != 1 || hooks.completes != 1 {
		t.Errorf("hooks = %d starts / %d completes, want 1/1", hooks.starts, hooks.completes)
	}
}

func TestSetNilKeepsCurrent(t *testing.T) {
	t.Cleanup(Reset)

	hooks := &countingRenderHooks{}
	SetRenderHooks(hooks)
	SetRenderHooks(nil)

	Render().OnRenderStart(context.Background(), "bold", "feed")
	if hooks.starts != 1 {
		t.Errorf("nil registration replaced hooks, starts = %d", hooks.starts)
	}
}

func TestDefaultsAreNoops(t *testing.T) {
	Reset()
	// Must not panic.
	Render().OnRenderComplete(context.Background(), "minimal", "feed", 0, nil)
	Assets().OnAssetResult(context.Background(), "hero", "https://example.com/a.jpg", 0, nil)
	Cache().OnCacheMiss(context.Background(), "render")
}
