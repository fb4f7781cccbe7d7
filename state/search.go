package state

import (
	"sync"
	"time"
)

// SearchDebouncer coalesces rapid keystrokes into one dispatch: each Input
// resets a fixed-delay timer and only the final query is dispatched. A
// superseded timer is cancelled; a dispatch that already fired is never
// cancelled, matching the no-cancellation policy for in-flight requests.
type SearchDebouncer struct {
	mu       sync.Mutex
	delay    time.Duration
	timer    *time.Timer
	dispatch func(query string)
	stopped  bool
}

// NewSearchDebouncer creates a debouncer that calls dispatch after the
// input has been quiet for delay. A non-positive delay falls back to 500ms.
func NewSearchDebouncer(delay time.Duration, dispatch func(query string)) *SearchDebouncer {
	if delay <= 0 {
		delay = 500 * time.Millisecond
	}
	return &SearchDebouncer{
		delay:    delay,
		dispatch: dispatch,
	}
}

// Input records a keystroke, restarting the quiet-period timer
func (d *SearchDebouncer) Input(query string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, func() {
		d.fire(query)
	})
}

// Flush dispatches the query immediately, cancelling any pending timer.
// Used for an explicit submit (Enter key).
func (d *SearchDebouncer) Flush(query string) {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.mu.Unlock()

	d.dispatch(query)
}

// Stop cancels any pending timer; further Input calls are ignored
func (d *SearchDebouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

func (d *SearchDebouncer) fire(query string) {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	d.timer = nil
	d.mu.Unlock()

	d.dispatch(query)
}
