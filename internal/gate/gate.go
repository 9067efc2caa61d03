// Package gate holds chapter content back until the chapter's audio is
// audibly playing.
package gate

import "log"

type State int

const (
	Hidden State = iota
	WaitingForPlayback
	Visible
)

func (s State) String() string {
	switch s {
	case WaitingForPlayback:
		return "waiting"
	case Visible:
		return "visible"
	default:
		return "hidden"
	}
}

// Token identifies one chapter mount. Player events carry the token of the
// mount that requested playback so late events can be told apart.
type Token uint64

type EventKind int

const (
	Started EventKind = iota
	Paused
	Buffering
	Failed
)

func (k EventKind) String() string {
	switch k {
	case Started:
		return "started"
	case Paused:
		return "paused"
	case Buffering:
		return "buffering"
	default:
		return "failed"
	}
}

// Event is a player state change for a given mount.
type Event struct {
	Mount Token
	Kind  EventKind
	Err   error
}

// Gate is the visibility controller. OnVisible runs once per mount, when the
// first Started event for that mount arrives.
type Gate struct {
	state     State
	mount     Token
	OnVisible func(Token)
}

func New() *Gate { return &Gate{} }

// Arm hides content and starts waiting for the new mount's playback. It
// returns the token the player must echo back.
func (g *Gate) Arm() Token {
	g.state = Hidden
	g.mount++
	g.state = WaitingForPlayback
	return g.mount
}

// Observe applies a player event. Only Started for the current mount has an
// effect; everything else is logged and dropped.
func (g *Gate) Observe(ev Event) bool {
	if ev.Mount != g.mount {
		log.Printf("gate: dropping %s for stale mount %d (current %d)", ev.Kind, ev.Mount, g.mount)
		return false
	}
	switch ev.Kind {
	case Started:
		if g.state != WaitingForPlayback {
			return false
		}
		g.state = Visible
		if g.OnVisible != nil {
			g.OnVisible(g.mount)
		}
		return true
	case Failed:
		log.Printf("gate: playback failed for mount %d, content stays hidden: %v", ev.Mount, ev.Err)
	}
	return false
}

func (g *Gate) State() State  { return g.state }
func (g *Gate) Mount() Token  { return g.mount }
func (g *Gate) Visible() bool { return g.state == Visible }
