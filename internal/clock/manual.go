package clock

import (
	"sort"
	"sync"
	"time"
)

// Manual is a controllable scheduler for tests. Callbacks fire on the
// goroutine calling Advance, in deadline order (ties in scheduling order).
type Manual struct {
	mu      sync.Mutex
	now     time.Time
	seq     uint64
	pending map[uint64]*manualTimer
}

type manualTimer struct {
	m        *Manual
	id       uint64
	deadline time.Time
	fn       func()
}

// NewManual creates a manual scheduler starting at start.
func NewManual(start time.Time) *Manual {
	return &Manual{now: start, pending: make(map[uint64]*manualTimer)}
}

func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

func (m *Manual) After(d time.Duration, fn func()) Timer {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	t := &manualTimer{m: m, id: m.seq, deadline: m.now.Add(d), fn: fn}
	m.pending[t.id] = t
	return t
}

func (t *manualTimer) Stop() bool {
	t.m.mu.Lock()
	defer t.m.mu.Unlock()
	if _, ok := t.m.pending[t.id]; !ok {
		return false
	}
	delete(t.m.pending, t.id)
	return true
}

// Pending returns the number of callbacks that have neither fired nor been
// stopped.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pending)
}

// Advance moves time forward by d, firing every callback whose deadline is
// reached. Callbacks scheduled by fired callbacks also fire if they fall
// within the window.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now.Add(d)
	m.mu.Unlock()
	for {
		m.mu.Lock()
		next := m.nextDue(target)
		if next == nil {
			m.now = target
			m.mu.Unlock()
			return
		}
		delete(m.pending, next.id)
		m.now = next.deadline
		m.mu.Unlock()
		next.fn()
	}
}

func (m *Manual) nextDue(target time.Time) *manualTimer {
	due := make([]*manualTimer, 0, len(m.pending))
	for _, t := range m.pending {
		if !t.deadline.After(target) {
			due = append(due, t)
		}
	}
	if len(due) == 0 {
		return nil
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].deadline.Equal(due[j].deadline) {
			return due[i].id < due[j].id
		}
		return due[i].deadline.Before(due[j].deadline)
	})
	return due[0]
}
