package clock

import "time"

// Timer is a cancellable handle for a scheduled callback.
type Timer interface {
	// Stop cancels the callback. It reports true only for the call that
	// actually prevented the callback from running.
	Stop() bool
}

// Scheduler runs callbacks after a delay. Implementations run every callback
// on the goroutine that owns the core state, never concurrently with it.
type Scheduler interface {
	Now() time.Time
	After(d time.Duration, fn func()) Timer
}

// Stop cancels t if it is non-nil. It returns nil so callers can clear the
// handle in the same statement: h = clock.Stop(h).
func Stop(t Timer) Timer {
	if t != nil {
		t.Stop()
	}
	return nil
}
