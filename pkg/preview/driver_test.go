package preview

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/soundpress/gigcard/pkg/pipeline"
	"github.com/soundpress/gigcard/pkg/style"
)

// renderRecorder collects render invocations behind a lock.
type renderRecorder struct {
	mu    sync.Mutex
	calls []pipeline.Options
	delay time.Duration
}

func (r *renderRecorder) render(ctx context.Context, opts pipeline.Options) {
	if r.delay > 0 {
		time.Sleep(r.delay)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, opts)
}

func (r *renderRecorder) snapshot() []pipeline.Options {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]pipeline.Options(nil), r.calls...)
}

func TestDebounceCoalesces(t *testing.T) {
	rec := &renderRecorder{}
	d := New(20*time.Millisecond, rec.render)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go d.Run(ctx)

	// A burst of rapid updates must collapse into a single render of the
	// last options.
	for _, key := range []string{style.StyleIndustrial, style.StyleGradient, style.StyleBold, style.StyleNeon} {
		d.Update(pipeline.Options{Style: key})
		time.Sleep(2 * time.Millisecond)
	}

	time.Sleep(150 * time.Millisecond)
	calls := rec.snapshot()
	if len(calls) != 1 {
		t.Fatalf("burst produced %d renders, want 1", len(calls))
	}
	if calls[0].Style != style.StyleNeon {
		t.Errorf("rendered style = %q, want last update %q", calls[0].Style, style.StyleNeon)
	}
}

func TestSeparateBurstsRenderSeparately(t *testing.T) {
	rec := &renderRecorder{}
	d := New(10*time.Millisecond, rec.render)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go d.Run(ctx)

	d.Update(pipeline.Options{Style: style.StyleMinimal})
	time.Sleep(100 * time.Millisecond)
	d.Update(pipeline.Options{Style: style.StyleBold})
	time.Sleep(100 * time.Millisecond)

	if calls := rec.snapshot(); len(calls) != 2 {
		t.Fatalf("two separated updates produced %d renders, want 2", len(calls))
	}
}

func TestInFlightRenderNotSuperseded(t *testing.T) {
	// An update arriving while a render runs must not cancel it; the slow
	// render completes and the newer options render afterwards.
	rec := &renderRecorder{delay: 60 * time.Millisecond}
	d := New(10*time.Millisecond, rec.render)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go d.Run(ctx)

	d.Update(pipeline.Options{Style: style.StyleIndustrial})
	time.Sleep(30 * time.Millisecond) // first render now in flight
	d.Update(pipeline.Options{Style: style.StyleNeon})

	time.Sleep(300 * time.Millisecond)
	calls := rec.snapshot()
	if len(calls) != 2 {
		t.Fatalf("got %d renders, want 2 (in-flight plus superseding)", len(calls))
	}
	if calls[0].Style != style.StyleIndustrial || calls[1].Style != style.StyleNeon {
		t.Errorf("render order = %q then %q, want industrial then neon", calls[0].Style, calls[1].Style)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	d := New(10*time.Millisecond, func(context.Context, pipeline.Options) {})

	ctx, cancel := context.WithCancel(context.Background())
	go d.Run(ctx)
	cancel()

	done := make(chan struct{})
	go func() {
		d.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("driver did not stop after context cancellation")
	}
}
