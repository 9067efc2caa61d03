package clock

import (
	"sync"
	"time"
)

// Fired is posted to the owning event loop when a Loop timer expires. The
// loop hands it back to Dispatch, which runs the callback in loop context.
type Fired struct {
	ID uint64
}

// Loop schedules real timers but never runs callbacks on the timer
// goroutine: expiry only posts a Fired value, and the owner of the core
// state calls Dispatch from its own goroutine.
type Loop struct {
	post func(Fired)

	mu      sync.Mutex
	seq     uint64
	pending map[uint64]*loopTimer
}

type loopTimer struct {
	l  *Loop
	id uint64
	t  *time.Timer
	fn func()
}

// NewLoop creates a loop scheduler that delivers expiries through post.
// post must be safe to call from any goroutine.
func NewLoop(post func(Fired)) *Loop {
	return &Loop{post: post, pending: make(map[uint64]*loopTimer)}
}

func (l *Loop) Now() time.Time { return time.Now() }

func (l *Loop) After(d time.Duration, fn func()) Timer {
	l.mu.Lock()
	l.seq++
	lt := &loopTimer{l: l, id: l.seq, fn: fn}
	l.pending[lt.id] = lt
	l.mu.Unlock()
	id := lt.id
	lt.t = time.AfterFunc(d, func() { l.post(Fired{ID: id}) })
	return lt
}

func (lt *loopTimer) Stop() bool {
	lt.l.mu.Lock()
	_, ok := lt.l.pending[lt.id]
	delete(lt.l.pending, lt.id)
	lt.l.mu.Unlock()
	if lt.t != nil {
		lt.t.Stop()
	}
	return ok
}

// Dispatch runs the callback for f if its timer is still pending. A Fired
// for a stopped timer is dropped; the handle was already removed by Stop.
func (l *Loop) Dispatch(f Fired) bool {
	l.mu.Lock()
	lt, ok := l.pending[f.ID]
	delete(l.pending, f.ID)
	l.mu.Unlock()
	if !ok {
		return false
	}
	lt.fn()
	return true
}

// Pending returns the number of live handles.
func (l *Loop) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.pending)
}
