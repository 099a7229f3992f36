package feedback

import (
	"sync"
	"time"
)

// DefaultDelay is how long a burst must settle before its cue plays.
const DefaultDelay = 150 * time.Millisecond

// Debouncer runs only the last of a burst of calls, once the burst has been
// quiet for the delay.
type Debouncer struct {
	mu    sync.Mutex
	delay time.Duration
	timer *time.Timer
}

// NewDebouncer returns a debouncer with the given delay, or DefaultDelay
// when d is not positive.
func NewDebouncer(d time.Duration) *Debouncer {
	if d <= 0 {
		d = DefaultDelay
	}
	return &Debouncer{delay: d}
}

// Trigger cancels any pending call and schedules fn.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, fn)
}

// Stop cancels the pending call. It reports whether one was cancelled.
func (d *Debouncer) Stop() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer == nil {
		return false
	}
	stopped := d.timer.Stop()
	d.timer = nil
	return stopped
}

// Debounced plays only the last cue of each burst on sink.
func Debounced(sink Sink, delay time.Duration) *DebouncedSink {
	return &DebouncedSink{sink: sink, d: NewDebouncer(delay)}
}

// DebouncedSink coalesces cues. Call Stop when done to drop a pending cue.
type DebouncedSink struct {
	sink Sink
	d    *Debouncer
}

func (s *DebouncedSink) Play(c Cue) {
	s.d.Trigger(func() { s.sink.Play(c) })
}

func (s *DebouncedSink) Stop() { s.d.Stop() }
