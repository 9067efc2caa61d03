// Package engine ties the narrative pieces into one playback session: the
// store, the reveal engine, input routing, secret unlocks and, for
// audio-synced narratives, the visibility gate.
package engine

import (
	"log"
	"time"

	"github.com/DaanHessen/moonlit/internal/audio"
	"github.com/DaanHessen/moonlit/internal/clock"
	"github.com/DaanHessen/moonlit/internal/gate"
	"github.com/DaanHessen/moonlit/internal/gesture"
	"github.com/DaanHessen/moonlit/internal/player"
	"github.com/DaanHessen/moonlit/internal/reveal"
	"github.com/DaanHessen/moonlit/internal/story"
	"github.com/DaanHessen/moonlit/internal/unlock"
)

// ImmersiveDelay is how long a chapter stays open before asking for the
// whole screen.
const ImmersiveDelay = time.Second

// PhasesVolume is the level the audio-synced narrative plays its tracks at.
const PhasesVolume = 75

// Options configures a session.
type Options struct {
	Reveal         reveal.Config
	Unlock         unlock.Config
	SwipeThreshold float64
	// Gated holds every chapter back until its track reports Started.
	Gated  bool
	Volume int
}

// DefaultOptions returns the timings each built-in narrative uses.
func DefaultOptions(v story.Variant) Options {
	o := Options{
		Reveal:         reveal.DefaultConfig(reveal.FastTick),
		Unlock:         unlock.DefaultConfig(),
		SwipeThreshold: gesture.DefaultSwipeThreshold,
		Volume:         player.DefaultVolume,
	}
	if v == story.VariantPhases {
		o.Reveal = reveal.DefaultConfig(reveal.SlowTick)
		o.Gated = true
		o.Volume = PhasesVolume
	}
	return o
}

// Hooks let the surface react to things it cannot poll for.
type Hooks struct {
	Immersive func()
}

// Session is the single owner of all mutable narrative state. All methods
// and every scheduler callback run on one goroutine.
type Session struct {
	opts  Options
	sched clock.Scheduler
	hooks Hooks

	store  *story.Store
	reveal *reveal.Engine
	router *gesture.Router
	unlock *unlock.Unlock
	gate   *gate.Gate
	player player.Player
	cues   *audio.Cues

	immersive clock.Timer
	begun     bool
	started   bool
}

// New builds a session over catalog. p may be nil for narratives that are
// not gated; cues may be nil.
func New(catalog *story.Catalog, sched clock.Scheduler, p player.Player, cues *audio.Cues, opts Options, hooks Hooks) *Session {
	s := &Session{opts: opts, sched: sched, hooks: hooks, player: p, cues: cues}
	s.store = story.NewStore(catalog)
	s.reveal = reveal.New(sched, opts.Reveal, reveal.Hooks{
		Transform:  s.onTransform,
		Affordance: s.onAffordance,
	})
	s.unlock = unlock.New(sched, opts.Unlock, unlock.Hooks{
		Show:     s.onOverlay,
		Rejected: func() { log.Printf("session: secret code rejected") },
	}, func() bool { return s.store.Chapter().Finale })
	s.router = gesture.NewRouter(s.store, opts.SwipeThreshold)
	s.router.Blocked = s.unlock.Modal
	if opts.Gated {
		if s.player == nil {
			s.player = player.NewSilent(s.HandlePlayer)
		}
		s.gate = gate.New()
		s.gate.OnVisible = func(gate.Token) { s.reveal.Mount(s.store.Chapter()) }
	}
	s.store.OnChange(s.onChange)
	return s
}

// Start mounts the first chapter. Gated sessions wait for Begin before any
// audio plays.
func (s *Session) Start() {
	if s.started {
		return
	}
	s.started = true
	if s.player != nil {
		s.player.SetVolume(s.opts.Volume)
	}
	s.enter(s.store.Current())
}

// Begin confirms the viewer wants playback, starting the current track.
func (s *Session) Begin() {
	if s.begun || s.gate == nil {
		return
	}
	s.begun = true
	s.player.Play()
}

// AwaitingBegin reports whether a gated session is still waiting for the
// viewer to start playback.
func (s *Session) AwaitingBegin() bool { return s.gate != nil && !s.begun }

func (s *Session) onChange(prev, next int) {
	log.Printf("session: chapter %d -> %d", prev, next)
	if s.cues != nil {
		s.cues.Play(audio.CueTransition)
	}
	s.enter(next)
}

// enter tears down everything owned by the previous chapter before
// scheduling anything for the next one.
func (s *Session) enter(index int) {
	s.immersive = clock.Stop(s.immersive)
	s.reveal.Unmount()
	s.unlock.Reset()
	ch := s.store.Catalog().At(index)

	if s.gate != nil {
		tok := s.gate.Arm()
		if err := s.player.Load(tok, ch.Track); err != nil {
			log.Printf("session: load track %q for chapter %d: %v", ch.Track.ID, index, err)
		} else if s.begun {
			s.player.Play()
		}
	} else {
		s.reveal.Mount(ch)
	}

	if ch.Immersive && s.hooks.Immersive != nil {
		s.immersive = s.sched.After(ImmersiveDelay, func() {
			s.immersive = nil
			s.hooks.Immersive()
		})
	}
}

func (s *Session) onAffordance(a reveal.Affordance) {
	if a == reveal.AffordanceCodeEntry {
		s.unlock.CodeReady()
	}
}

// onTransform marks each substituted digit with a keystroke.
func (s *Session) onTransform(pos int, sub rune, active bool) {
	if !active {
		return
	}
	log.Printf("session: chapter %d shows %q at %d", s.store.Current(), sub, pos)
	if s.cues != nil {
		s.cues.Play(audio.CueTyping)
	}
}

func (s *Session) onOverlay(o unlock.Overlay) {
	log.Printf("session: %s overlay revealed", o)
	if s.cues != nil {
		s.cues.Play(audio.CueSecret)
	}
}

// HandleKey routes an arrow key.
func (s *Session) HandleKey(k gesture.Key) gesture.Command { return s.router.Key(k) }

// HandleSelect jumps to a chapter from the progress indicator.
func (s *Session) HandleSelect(i int) gesture.Command { return s.router.Select(i) }

type PointerKind int

const (
	PointerDown PointerKind = iota
	PointerMove
	PointerUp
	PointerLeave
)

// PointerEvent is a press, drag or release. OnImage marks presses that land
// on the chapter image, the target of the hold gestures.
type PointerEvent struct {
	Kind    PointerKind
	X       float64
	OnImage bool
}

// HandlePointer feeds the same physical event to the swipe router and the
// hold gestures; they interpret it independently.
func (s *Session) HandlePointer(ev PointerEvent) gesture.Command {
	switch ev.Kind {
	case PointerDown:
		s.router.SwipeBegin(ev.X)
		if ev.OnImage {
			s.unlock.Press()
		}
	case PointerMove:
		s.router.SwipeMove(ev.X)
	case PointerUp:
		s.unlock.Release()
		return s.router.SwipeEnd()
	case PointerLeave:
		s.unlock.Release()
		s.router.SwipeCancel()
	}
	return gesture.CommandNone
}

// HandlePlayer applies a player event to the gate.
func (s *Session) HandlePlayer(ev gate.Event) {
	if s.gate == nil {
		return
	}
	s.gate.Observe(ev)
}

func (s *Session) TypeCode(r rune) {
	if s.unlock.Type(r) && s.cues != nil {
		s.cues.Play(audio.CueTyping)
	}
}

func (s *Session) Backspace()              { s.unlock.Backspace() }
func (s *Session) SubmitCode() bool        { return s.unlock.Submit() }
func (s *Session) CodeOpen() bool          { return s.unlock.CodeOpen() }
func (s *Session) Modal() bool             { return s.unlock.Modal() }
func (s *Session) Current() int            { return s.store.Current() }
func (s *Session) Catalog() *story.Catalog { return s.store.Catalog() }

// CloseOverlay hides overlay o.
func (s *Session) CloseOverlay(o unlock.Overlay) { s.unlock.Close(o) }

// CloseTopOverlay hides the most recently layered overlay, if any.
func (s *Session) CloseTopOverlay() bool {
	for _, o := range []unlock.Overlay{unlock.OverlaySecret, unlock.OverlayThanks} {
		if s.unlock.Visible(o) {
			s.unlock.Close(o)
			return true
		}
	}
	return false
}

// Close stops playback and every pending timer.
func (s *Session) Close() error {
	s.immersive = clock.Stop(s.immersive)
	s.reveal.Unmount()
	s.unlock.Reset()
	if s.player != nil {
		return s.player.Close()
	}
	return nil
}

// ViewState is everything the surface needs to draw one frame.
type ViewState struct {
	Chapter        story.Chapter
	Index          int
	Count          int
	ContentVisible bool
	Gate           gate.State
	AwaitingBegin  bool
	Reveal         reveal.Snapshot
	CodeOpen       bool
	Code           string
	Thanks         bool
	Secret         bool
	LongPress      float64
	AtFirst        bool
	AtLast         bool
}

func (s *Session) View() ViewState {
	v := ViewState{
		Chapter:        s.store.Chapter(),
		Index:          s.store.Current(),
		Count:          s.store.Catalog().Len(),
		ContentVisible: true,
		Gate:           gate.Visible,
		AwaitingBegin:  s.AwaitingBegin(),
		Reveal:         s.reveal.Snapshot(),
		CodeOpen:       s.unlock.CodeOpen(),
		Code:           s.unlock.Code(),
		Thanks:         s.unlock.Visible(unlock.OverlayThanks),
		Secret:         s.unlock.Visible(unlock.OverlaySecret),
		LongPress:      s.unlock.LongPressProgress(),
		AtFirst:        s.store.AtFirst(),
		AtLast:         s.store.AtLast(),
	}
	if s.gate != nil {
		v.Gate = s.gate.State()
		v.ContentVisible = s.gate.Visible()
	}
	return v
}
