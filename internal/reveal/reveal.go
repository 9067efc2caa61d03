// Package reveal implements the typewriter effect: a chapter's text is
// revealed one rune per tick, with optional short-lived substitutions.
package reveal

import (
	"time"

	"github.com/DaanHessen/moonlit/internal/clock"
	"github.com/DaanHessen/moonlit/internal/story"
)

type State int

const (
	Idle State = iota
	Revealing
	Complete
)

func (s State) String() string {
	switch s {
	case Revealing:
		return "revealing"
	case Complete:
		return "complete"
	default:
		return "idle"
	}
}

// Affordance is what the surface may offer once a chapter has settled.
type Affordance int

const (
	AffordanceNone Affordance = iota
	AffordanceNavigation
	AffordanceCodeEntry
)

// Cadences used by the two narratives.
const (
	FastTick = 50 * time.Millisecond
	SlowTick = 200 * time.Millisecond
)

// Config holds the engine timings.
type Config struct {
	Tick             time.Duration
	SubstitutionHold time.Duration
	Settle           time.Duration
}

// DefaultConfig returns the timings for a given tick cadence.
func DefaultConfig(tick time.Duration) Config {
	return Config{Tick: tick, SubstitutionHold: time.Second, Settle: 500 * time.Millisecond}
}

// Hooks are optional notifications, all invoked on the scheduler goroutine.
type Hooks struct {
	Transform  func(pos int, sub rune, active bool)
	Affordance func(Affordance)
}

type substitution struct {
	sub    rune
	revert clock.Timer
}

// Engine reveals one chapter at a time. Every timer it holds belongs to the
// current mount and is stopped when the mount ends.
type Engine struct {
	sched clock.Scheduler
	cfg   Config
	hooks Hooks

	chapter     story.Chapter
	runes       []rune
	revealed    int
	state       State
	affordance  Affordance
	tick        clock.Timer
	settle      clock.Timer
	transformed map[int]*substitution
}

func New(sched clock.Scheduler, cfg Config, hooks Hooks) *Engine {
	if cfg.Tick <= 0 {
		cfg.Tick = FastTick
	}
	return &Engine{sched: sched, cfg: cfg, hooks: hooks, transformed: map[int]*substitution{}}
}

// Mount resets the engine to the start of ch and begins revealing.
func (e *Engine) Mount(ch story.Chapter) {
	e.Unmount()
	e.chapter = ch
	e.runes = ch.Runes()
	e.state = Revealing
	e.schedule()
}

// Unmount stops every pending timer and returns to Idle with nothing shown.
func (e *Engine) Unmount() {
	e.tick = clock.Stop(e.tick)
	e.settle = clock.Stop(e.settle)
	for pos, s := range e.transformed {
		clock.Stop(s.revert)
		delete(e.transformed, pos)
	}
	e.revealed = 0
	e.runes = nil
	e.state = Idle
	e.affordance = AffordanceNone
}

func (e *Engine) schedule() {
	e.tick = e.sched.After(e.cfg.Tick, e.advance)
}

func (e *Engine) advance() {
	e.tick = nil
	if e.state != Revealing {
		return
	}
	e.revealed++
	pos := e.revealed - 1
	if sub, ok := e.chapter.Substitutions[pos]; ok {
		e.transform(pos, sub)
	}
	if e.revealed >= len(e.runes) {
		e.state = Complete
		e.settle = e.sched.After(e.cfg.Settle, e.settled)
		return
	}
	e.schedule()
}

func (e *Engine) transform(pos int, sub rune) {
	s := &substitution{sub: sub}
	s.revert = e.sched.After(e.cfg.SubstitutionHold, func() {
		delete(e.transformed, pos)
		if e.hooks.Transform != nil {
			e.hooks.Transform(pos, sub, false)
		}
	})
	e.transformed[pos] = s
	if e.hooks.Transform != nil {
		e.hooks.Transform(pos, sub, true)
	}
}

func (e *Engine) settled() {
	e.settle = nil
	if e.chapter.Finale {
		e.affordance = AffordanceCodeEntry
	} else {
		e.affordance = AffordanceNavigation
	}
	if e.hooks.Affordance != nil {
		e.hooks.Affordance(e.affordance)
	}
}

// Snapshot is a read-only view of the reveal state.
type Snapshot struct {
	State       State
	Revealed    int
	Length      int
	Transformed map[int]rune
	Affordance  Affordance
}

func (e *Engine) Snapshot() Snapshot {
	s := Snapshot{
		State:       e.state,
		Revealed:    e.revealed,
		Length:      len(e.runes),
		Transformed: make(map[int]rune, len(e.transformed)),
		Affordance:  e.affordance,
	}
	for pos, sub := range e.transformed {
		s.Transformed[pos] = sub.sub
	}
	return s
}

func (e *Engine) State() State           { return e.state }
func (e *Engine) Revealed() int          { return e.revealed }
func (e *Engine) Affordance() Affordance { return e.affordance }
func (e *Engine) Chapter() story.Chapter { return e.chapter }
func (e *Engine) Complete() bool         { return e.state == Complete }
