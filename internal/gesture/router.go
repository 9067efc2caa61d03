// Package gesture turns keyboard, swipe and selection input into navigation
// commands. The command semantics never depend on the input device.
package gesture

// DefaultSwipeThreshold is the horizontal distance a swipe must exceed.
const DefaultSwipeThreshold = 50

type Key int

const (
	KeyOther Key = iota
	KeyLeft
	KeyRight
)

type Command int

const (
	CommandNone Command = iota
	CommandAdvance
	CommandRetreat
	CommandJump
)

func (c Command) String() string {
	switch c {
	case CommandAdvance:
		return "advance"
	case CommandRetreat:
		return "retreat"
	case CommandJump:
		return "jump"
	default:
		return "none"
	}
}

// Navigator is the position owner the router drives. story.Store satisfies it.
type Navigator interface {
	Advance() bool
	Retreat() bool
	JumpTo(i int) bool
	AtFirst() bool
	AtLast() bool
}

// Router normalizes input into navigation commands.
type Router struct {
	nav       Navigator
	threshold float64
	// Blocked, when set and returning true, drops every command.
	Blocked func() bool

	swiping bool
	startX  float64
	endX    float64
	moved   bool
}

func NewRouter(nav Navigator, threshold float64) *Router {
	if threshold <= 0 {
		threshold = DefaultSwipeThreshold
	}
	return &Router{nav: nav, threshold: threshold}
}

func (r *Router) Threshold() float64 { return r.threshold }

func (r *Router) blocked() bool { return r.Blocked != nil && r.Blocked() }

// Key handles arrow keys. It returns the command that was applied.
func (r *Router) Key(k Key) Command {
	switch k {
	case KeyRight:
		return r.advance()
	case KeyLeft:
		return r.retreat()
	}
	return CommandNone
}

// SwipeBegin records the start of a drag.
func (r *Router) SwipeBegin(x float64) {
	r.swiping = true
	r.startX = x
	r.endX = x
	r.moved = false
}

// SwipeMove records the latest horizontal position of a drag.
func (r *Router) SwipeMove(x float64) {
	if !r.swiping {
		return
	}
	r.endX = x
	r.moved = true
}

// SwipeEnd finishes a drag and applies at most one command. A drag that
// never moved is a tap and navigates nowhere.
func (r *Router) SwipeEnd() Command {
	if !r.swiping {
		return CommandNone
	}
	r.swiping = false
	if !r.moved {
		return CommandNone
	}
	return r.Swipe(r.startX, r.endX)
}

// SwipeCancel abandons a drag, e.g. when the pointer leaves the surface.
func (r *Router) SwipeCancel() { r.swiping = false }

// Swipe applies a complete drag from startX to endX.
func (r *Router) Swipe(startX, endX float64) Command {
	delta := startX - endX
	switch {
	case delta > r.threshold:
		return r.advance()
	case delta < -r.threshold:
		return r.retreat()
	}
	return CommandNone
}

// Select jumps directly to chapter i, any distance in either direction.
func (r *Router) Select(i int) Command {
	if r.blocked() {
		return CommandNone
	}
	if r.nav.JumpTo(i) {
		return CommandJump
	}
	return CommandNone
}

func (r *Router) advance() Command {
	if r.blocked() || r.nav.AtLast() {
		return CommandNone
	}
	if r.nav.Advance() {
		return CommandAdvance
	}
	return CommandNone
}

func (r *Router) retreat() Command {
	if r.blocked() || r.nav.AtFirst() {
		return CommandNone
	}
	if r.nav.Retreat() {
		return CommandRetreat
	}
	return CommandNone
}
