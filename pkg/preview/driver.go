// Package preview drives debounced re-rendering for the interactive
// terminal preview.
//
// Every settings change feeds Update; the driver waits for the debounce
// window to close and then renders the most recent options exactly once.
// A render in flight is never cancelled: a superseded render finishes and
// writes its output, and the newer render immediately overwrites it.
// Last paint wins, which is safe because every render owns a fresh surface.
package preview

import (
	"context"
	"time"

	"github.com/soundpress/gigcard/pkg/pipeline"
)

// DebounceDelay is the default quiet period between the last settings
// change and the render it triggers.
const DebounceDelay = 50 * time.Millisecond

// RenderFunc performs one render of the given options. Errors are the
// callback's own concern; the driver keeps running regardless.
type RenderFunc func(ctx context.Context, opts pipeline.Options)

// Driver debounces option updates into render calls.
type Driver struct {
	delay   time.Duration
	render  RenderFunc
	updates chan pipeline.Options
	done    chan struct{}
}

// New returns a driver invoking render after each debounce window.
// A non-positive delay uses DebounceDelay.
func New(delay time.Duration, render RenderFunc) *Driver {
	if delay <= 0 {
		delay = DebounceDelay
	}
	return &Driver{
		delay:   delay,
		render:  render,
		updates: make(chan pipeline.Options, 1),
		done:    make(chan struct{}),
	}
}

// Update schedules a render of opts, superseding any not-yet-started
// render. Never blocks: a pending update is replaced, not queued behind.
func (d *Driver) Update(opts pipeline.Options) {
	for {
		select {
		case d.updates <- opts:
			return
		default:
		}
		select {
		case <-d.updates:
		default:
		}
	}
}

// Run processes updates until ctx is cancelled. Renders happen on this
// goroutine, so updates arriving mid-render are picked up only after the
// current render returns.
func (d *Driver) Run(ctx context.Context) {
	defer close(d.done)

	timer := time.NewTimer(d.delay)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	var (
		pending pipeline.Options
		have    bool
	)
	for {
		select {
		case <-ctx.Done():
			return
		case opts := <-d.updates:
			pending, have = opts, true
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(d.delay)
		case <-timer.C:
			if have {
				have = false
				d.render(ctx, pending)
			}
		}
	}
}

// Wait blocks until Run has returned.
func (d *Driver) Wait() {
	<-d.done
}
