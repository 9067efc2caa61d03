package clock

import (
	"testing"
	"time"
)

var epoch = time.Date(2025, 9, 21, 0, 0, 0, 0, time.UTC)

func TestManualFiresInDeadlineOrder(t *testing.T) {
	m := NewManual(epoch)
	var got []int
	m.After(30*time.Millisecond, func() { got = append(got, 3) })
	m.After(10*time.Millisecond, func() { got = append(got, 1) })
	m.After(20*time.Millisecond, func() { got = append(got, 2) })
	m.Advance(25 * time.Millisecond)
	if len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Fatalf("unexpected order after 25ms: %v", got)
	}
	m.Advance(5 * time.Millisecond)
	if len(got) != 3 || got[2] != 3 {
		t.Fatalf("expected third callback at 30ms: %v", got)
	}
	if m.Pending() != 0 {
		t.Fatalf("expected no pending timers, got %d", m.Pending())
	}
}

func TestManualStopExactlyOnce(t *testing.T) {
	m := NewManual(epoch)
	fired := false
	h := m.After(time.Second, func() { fired = true })
	if !h.Stop() {
		t.Fatal("first Stop should cancel")
	}
	if h.Stop() {
		t.Fatal("second Stop should report false")
	}
	m.Advance(2 * time.Second)
	if fired {
		t.Fatal("stopped timer fired")
	}
}

func TestManualChainedCallbacksWithinWindow(t *testing.T) {
	m := NewManual(epoch)
	count := 0
	var tick func()
	tick = func() {
		count++
		if count < 5 {
			m.After(10*time.Millisecond, tick)
		}
	}
	m.After(10*time.Millisecond, tick)
	m.Advance(45 * time.Millisecond)
	if count != 4 {
		t.Fatalf("expected 4 ticks in 45ms, got %d", count)
	}
	if !m.Now().Equal(epoch.Add(45 * time.Millisecond)) {
		t.Fatalf("clock not at target: %v", m.Now())
	}
}

func TestLoopDispatchDropsStoppedTimers(t *testing.T) {
	posted := make(chan Fired, 4)
	l := NewLoop(func(f Fired) { posted <- f })
	ran := 0
	keep := l.After(time.Millisecond, func() { ran++ })
	drop := l.After(time.Hour, func() { ran += 100 })
	_ = keep
	if !drop.Stop() {
		t.Fatal("expected stop to cancel pending timer")
	}
	if l.Dispatch(Fired{ID: 2}) {
		t.Fatal("dispatch of stopped timer should be dropped")
	}
	select {
	case f := <-posted:
		if !l.Dispatch(f) {
			t.Fatal("expected live timer to dispatch")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timer never posted")
	}
	if ran != 1 {
		t.Fatalf("expected callback once, got %d", ran)
	}
	if l.Pending() != 0 {
		t.Fatalf("expected empty table, got %d", l.Pending())
	}
}

func TestStopHelperClearsHandle(t *testing.T) {
	m := NewManual(epoch)
	h := m.After(time.Second, func() { t.Fatal("should not fire") })
	h = Stop(h)
	if h != nil {
		t.Fatal("expected nil handle")
	}
	m.Advance(time.Second)
	if Stop(nil) != nil {
		t.Fatal("Stop(nil) should return nil")
	}
}
