package ui

import (
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/DaanHessen/moonlit/internal/ambient"
	"github.com/DaanHessen/moonlit/internal/audio"
	"github.com/DaanHessen/moonlit/internal/clock"
	"github.com/DaanHessen/moonlit/internal/engine"
	"github.com/DaanHessen/moonlit/internal/gate"
	"github.com/DaanHessen/moonlit/internal/gesture"
	"github.com/DaanHessen/moonlit/internal/player"
	"github.com/DaanHessen/moonlit/internal/story"
	"github.com/DaanHessen/moonlit/internal/unlock"
	"github.com/DaanHessen/moonlit/internal/util"
)

// cellUnits converts a horizontal drag in terminal cells into the pointer
// units the swipe threshold is expressed in.
const cellUnits = 8.0

const frameInterval = 150 * time.Millisecond

// playerMsg carries a player event into the program. gen ties it to the
// session that created the player.
type playerMsg struct {
	gen int
	ev  gate.Event
}

type frameMsg struct{}

type model struct {
	cfg     util.Config
	version string
	sched   clock.Scheduler
	out     *audio.Output
	send    func(tea.Msg)
	players func(player.Sink) player.Player

	session *engine.Session
	gen     int
	variant story.Variant

	seed     ambient.Seed
	field    *ambient.Field
	fieldKey [4]int
	frame    int

	width  int
	height int

	theme     string // forced palette; empty follows the chapter
	status    string
	swiped    bool
	pressed   bool
	immersive bool
	altScreen bool
	overlays  map[overlayKey]string
}

type overlayKey struct {
	overlay unlock.Overlay
	width   int
}

// newModel builds the model and starts the configured narrative. send
// forwards messages from other goroutines into the running program.
func newModel(cfg util.Config, sched clock.Scheduler, out *audio.Output, send func(tea.Msg), version string) *model {
	seed, err := ambient.NewSeed(cfg.Seed)
	if err != nil {
		seed, _ = ambient.NewSeed(time.Now().Format(time.RFC3339Nano))
	}
	m := &model{
		cfg:      cfg,
		version:  version,
		sched:    sched,
		out:      out,
		send:     send,
		seed:     seed,
		theme:    cfg.Theme,
		overlays: map[overlayKey]string{},
	}
	m.startSession(story.Variant(cfg.Variant))
	return m
}

// startSession replaces the running session with a fresh one for v.
func (m *model) startSession(v story.Variant) {
	catalog, err := story.ForVariant(v)
	if err != nil {
		log.Printf("ui: %v; playing %s", err, story.VariantBloom)
		v = story.VariantBloom
		catalog = story.Bloom()
	}
	if m.session != nil {
		if err := m.session.Close(); err != nil {
			log.Printf("ui: close %s session: %v", m.variant, err)
		}
	}
	m.gen++
	gen := m.gen
	m.variant = v
	m.status = ""

	opts := engine.DefaultOptions(v)
	if m.cfg.TickOverride > 0 {
		opts.Reveal.Tick = m.cfg.TickOverride
	}
	if m.cfg.SwipeThreshold > 0 {
		opts.SwipeThreshold = m.cfg.SwipeThreshold
	}
	if m.cfg.SecretCode != "" {
		opts.Unlock.Code = m.cfg.SecretCode
	}
	if m.cfg.Volume >= 0 {
		opts.Volume = m.cfg.Volume
	}

	var p player.Player
	var cues *audio.Cues
	if m.out != nil && m.out.Ready() {
		cues = audio.NewCues(m.out)
	}
	if opts.Gated {
		p = m.openPlayer(func(ev gate.Event) { m.send(playerMsg{gen: gen, ev: ev}) })
	}
	m.session = engine.New(catalog, m.sched, p, cues, opts, engine.Hooks{
		Immersive: func() { m.immersive = true },
	})
	m.session.Start()
	log.Printf("ui: playing %s (%d chapters)", v, catalog.Len())
}

// openPlayer returns the track player for a gated session, or nil to let
// the session fall back to silence.
func (m *model) openPlayer(sink player.Sink) player.Player {
	if m.players != nil {
		return m.players(sink)
	}
	if m.out != nil && m.out.Ready() {
		return player.NewBeepPlayer(m.cfg.TrackDir, m.out, sink)
	}
	return nil
}

func (m *model) close() {
	if m.session == nil {
		return
	}
	if err := m.session.Close(); err != nil {
		log.Printf("ui: close session: %v", err)
	}
	m.session = nil
}

func frameTick() tea.Cmd {
	return tea.Tick(frameInterval, func(time.Time) tea.Msg { return frameMsg{} })
}

// tea.Model implementation ---------------------------------------------------
func (m *model) Init() tea.Cmd { return frameTick() }

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.session == nil {
		return m, nil
	}
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.overlays = map[overlayKey]string{}
	case clock.Fired:
		if l, ok := m.sched.(*clock.Loop); ok {
			l.Dispatch(msg)
		}
	case playerMsg:
		if msg.gen == m.gen {
			m.session.HandlePlayer(msg.ev)
		}
	case frameMsg:
		m.frame++
		cmd = frameTick()
	case tea.KeyMsg:
		cmd = m.handleKey(msg)
	case tea.MouseMsg:
		m.handleMouse(msg)
	}
	if m.immersive && m.session != nil {
		m.immersive = false
		if m.cfg.AltScreen && !m.altScreen {
			m.altScreen = true
			log.Printf("ui: entering full screen on chapter %d", m.session.Current())
			cmd = tea.Batch(cmd, tea.EnterAltScreen)
		}
	}
	return m, cmd
}

func (m *model) quit() tea.Cmd {
	m.close()
	return tea.Quit
}

func (m *model) handleKey(msg tea.KeyMsg) tea.Cmd {
	k := msg.String()
	if k == "ctrl+c" {
		return m.quit()
	}
	s := m.session
	if s.Modal() {
		switch k {
		case "esc", "enter":
			s.CloseTopOverlay()
		case "p":
			if next, ok := m.secondPart(); ok {
				m.startSession(next)
			}
		case "q":
			return m.quit()
		}
		return nil
	}
	if s.AwaitingBegin() && k == "enter" {
		s.Begin()
		return nil
	}
	switch k {
	case "left", "h":
		s.HandleKey(gesture.KeyLeft)
		return nil
	case "right", "l":
		s.HandleKey(gesture.KeyRight)
		return nil
	}
	if s.CodeOpen() {
		m.handleCodeKey(msg)
		return nil
	}
	switch k {
	case "q":
		return m.quit()
	case "t":
		if m.theme == "" {
			m.theme = s.View().Chapter.Theme
		}
		m.theme = nextThemeName(m.theme, 1)
	case "T":
		m.theme = ""
	default:
		if len(k) == 1 && k[0] >= '1' && k[0] <= '9' {
			s.HandleSelect(int(k[0] - '1'))
		}
	}
	return nil
}

func (m *model) handleCodeKey(msg tea.KeyMsg) {
	s := m.session
	switch msg.Type {
	case tea.KeyEnter:
		if s.View().Code == "" {
			return
		}
		if s.SubmitCode() {
			m.status = ""
		} else {
			m.status = "rejected"
		}
	case tea.KeyBackspace:
		s.Backspace()
	case tea.KeyRunes, tea.KeySpace:
		m.status = ""
		for _, r := range msg.Runes {
			s.TypeCode(r)
		}
	}
}

// secondPart names the narrative offered from the secret overlay.
func (m *model) secondPart() (story.Variant, bool) {
	if m.variant != story.VariantBloom || !m.session.View().Secret {
		return "", false
	}
	return story.VariantPhases, true
}

func (m *model) handleMouse(msg tea.MouseMsg) {
	s := m.session
	lay := m.layout()
	x := float64(msg.X) * cellUnits
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return
		}
		if s.Modal() && !m.pressed {
			s.CloseTopOverlay()
			return
		}
		// Rows only map onto the frame in full screen; inline, the frame's
		// origin is unknown and every press counts as a press on the image.
		onImage := true
		if m.altScreen {
			if i, ok := lay.dotAt(msg.X, msg.Y); ok && gesture.Select(m.capabilities()).Dots {
				s.HandleSelect(i)
				return
			}
			onImage = lay.image.contains(msg.X, msg.Y)
		}
		m.pressed = true
		s.HandlePointer(engine.PointerEvent{Kind: engine.PointerDown, X: x, OnImage: onImage})
	case tea.MouseActionMotion:
		if m.pressed {
			s.HandlePointer(engine.PointerEvent{Kind: engine.PointerMove, X: x})
		}
	case tea.MouseActionRelease:
		if !m.pressed {
			return
		}
		m.pressed = false
		if c := s.HandlePointer(engine.PointerEvent{Kind: engine.PointerUp, X: x}); c != gesture.CommandNone {
			m.swiped = true
		}
	}
}

// capabilities describes the viewer as the surface has observed them:
// after one swipe they are treated as a swipe-first viewer.
func (m *model) capabilities() gesture.Capabilities {
	return gesture.Capabilities{Touch: m.swiped, Mouse: true}
}
