package gate

import (
	"errors"
	"testing"
)

func TestStartedRevealsCurrentMount(t *testing.T) {
	g := New()
	calls := 0
	g.OnVisible = func(Token) { calls++ }
	tok := g.Arm()
	if g.Visible() || g.State() != WaitingForPlayback {
		t.Fatalf("armed gate should wait, got %s", g.State())
	}
	if !g.Observe(Event{Mount: tok, Kind: Started}) || !g.Visible() {
		t.Fatal("started event did not reveal content")
	}
	g.Observe(Event{Mount: tok, Kind: Paused})
	g.Observe(Event{Mount: tok, Kind: Started})
	if !g.Visible() || calls != 1 {
		t.Fatalf("expected one reveal and no re-hide, visible=%v calls=%d", g.Visible(), calls)
	}
}

func TestStaleStartedIgnored(t *testing.T) {
	g := New()
	old := g.Arm()
	next := g.Arm()
	if g.Observe(Event{Mount: old, Kind: Started}) || g.Visible() {
		t.Fatal("stale started event revealed the new chapter")
	}
	if !g.Observe(Event{Mount: next, Kind: Started}) {
		t.Fatal("current started event ignored")
	}
}

func TestRearmHidesImmediately(t *testing.T) {
	g := New()
	tok := g.Arm()
	g.Observe(Event{Mount: tok, Kind: Started})
	g.Arm()
	if g.Visible() {
		t.Fatal("content visible right after chapter change")
	}
}

func TestPauseAndFailureBeforeStart(t *testing.T) {
	g := New()
	tok := g.Arm()
	g.Observe(Event{Mount: tok, Kind: Buffering})
	g.Observe(Event{Mount: tok, Kind: Paused})
	g.Observe(Event{Mount: tok, Kind: Failed, Err: errors.New("blocked")})
	if g.State() != WaitingForPlayback {
		t.Fatalf("expected to keep waiting, got %s", g.State())
	}
}
