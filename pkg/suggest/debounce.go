package suggest

import (
	"sync"
	"time"
)

// DefaultDebounce is the pause after the last keystroke before a
// lookup fires.
const DefaultDebounce = 300 * time.Millisecond

// Debouncer coalesces a burst of keystrokes into a single lookup.
// Every keystroke gets a monotonically increasing sequence number;
// only the newest one fires, and callers can use Latest to discard
// completions of superseded lookups that were already in flight.
type Debouncer struct {
	mu     sync.Mutex
	window time.Duration
	fire   func(seq uint64, input string)

	seq   uint64
	timer *time.Timer
}

// NewDebouncer creates a debouncer that calls fire once per settled
// burst. A non-positive window falls back to DefaultDebounce.
func NewDebouncer(window time.Duration, fire func(seq uint64, input string)) *Debouncer {
	if window <= 0 {
		window = DefaultDebounce
	}
	return &Debouncer{window: window, fire: fire}
}

// Type records a keystroke and returns its sequence number. Any
// pending fire from an earlier keystroke is cancelled.
func (d *Debouncer) Type(input string) uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.seq++
	seq := d.seq

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, func() {
		if d.Latest(seq) {
			d.fire(seq, input)
		}
	})
	return seq
}

// Latest reports whether seq is still the newest keystroke. A lookup
// completing for a stale seq must be dropped, not rendered.
func (d *Debouncer) Latest(seq uint64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return seq == d.seq
}

// Stop cancels any pending fire.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
