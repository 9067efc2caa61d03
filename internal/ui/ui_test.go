package ui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/DaanHessen/moonlit/internal/clock"
	"github.com/DaanHessen/moonlit/internal/gate"
	"github.com/DaanHessen/moonlit/internal/player"
	"github.com/DaanHessen/moonlit/internal/reveal"
	"github.com/DaanHessen/moonlit/internal/story"
	"github.com/DaanHessen/moonlit/internal/text"
	"github.com/DaanHessen/moonlit/internal/util"
)

func testConfig(variant string) util.Config {
	return util.Config{
		Variant:        variant,
		Volume:         -1,
		SwipeThreshold: 50,
		SecretCode:     "14082012",
		AltScreen:      true,
		Seed:           "test-seed",
	}
}

func newTestModel(t *testing.T, variant string) (*model, *clock.Manual) {
	t.Helper()
	mc := clock.NewManual(time.Date(2025, 9, 21, 0, 0, 0, 0, time.UTC))
	m := newModel(testConfig(variant), mc, nil, func(tea.Msg) {}, "test")
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 40})
	return m, mc
}

// heldPlayer never reports playback on its own; tests deliver its events.
type heldPlayer struct {
	loads []gate.Token
	plays int
}

func (p *heldPlayer) Load(mount gate.Token, _ story.Track) error {
	p.loads = append(p.loads, mount)
	return nil
}
func (p *heldPlayer) Play()         { p.plays++ }
func (p *heldPlayer) Pause()        {}
func (p *heldPlayer) SetVolume(int) {}
func (p *heldPlayer) Close() error  { return nil }

func (p *heldPlayer) last() gate.Token { return p.loads[len(p.loads)-1] }

func keyRunes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func press(m *model, x, y int) {
	m.Update(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
}

func release(m *model, x, y int) {
	m.Update(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
}

func finishChapter(m *model, mc *clock.Manual) {
	n := m.session.View().Chapter.Length()
	mc.Advance(time.Duration(n)*reveal.FastTick + time.Second)
}

func TestKeysNavigate(t *testing.T) {
	m, _ := newTestModel(t, "bloom")
	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if m.session.Current() != 1 {
		t.Fatalf("expected chapter 1, got %d", m.session.Current())
	}
	m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	if m.session.Current() != 0 {
		t.Fatalf("expected clamp at 0, got %d", m.session.Current())
	}
	m.Update(keyRunes("5"))
	if m.session.Current() != 4 {
		t.Fatalf("expected jump to 4, got %d", m.session.Current())
	}
	m.Update(keyRunes("9"))
	if m.session.Current() != 4 {
		t.Fatalf("out of range jump moved to %d", m.session.Current())
	}
}

func TestViewShowsRevealedText(t *testing.T) {
	m, mc := newTestModel(t, "bloom")
	mc.Advance(4 * reveal.FastTick)
	out := m.View()
	if !strings.Contains(out, "Hace") || strings.Contains(out, "Hace t") {
		t.Fatalf("expected exactly the first four runes revealed:\n%s", out)
	}
	if !strings.Contains(out, "El inicio") {
		t.Fatalf("expected chapter title in view")
	}
	finishChapter(m, mc)
	if !strings.Contains(m.View(), text.ButtonForward) {
		t.Fatalf("expected navigation buttons after the reveal settled")
	}
}

func TestCodeEntryAndSecondPart(t *testing.T) {
	m, mc := newTestModel(t, "bloom")
	m.Update(keyRunes("7"))
	finishChapter(m, mc)
	if !m.session.CodeOpen() {
		t.Fatal("expected code entry on the finale")
	}
	m.Update(keyRunes("1234"))
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.status != "rejected" || m.session.Modal() {
		t.Fatalf("wrong code accepted (status %q)", m.status)
	}
	m.Update(keyRunes("14082012"))
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !m.session.View().Secret {
		t.Fatal("secret overlay not shown")
	}
	if out := m.View(); strings.Contains(out, "MOONLIT") {
		t.Fatal("overlay should cover the chapter")
	}
	m.Update(keyRunes("p"))
	if m.variant != story.VariantPhases || m.session.Catalog().Variant() != story.VariantPhases {
		t.Fatalf("expected the second part to start, got %s", m.variant)
	}
	if !m.session.View().AwaitingBegin {
		t.Fatal("second part should wait for the viewer to begin")
	}
}

func TestEscapeClosesOverlay(t *testing.T) {
	m, mc := newTestModel(t, "bloom")
	m.Update(keyRunes("7"))
	press(m, 40, 6)
	mc.Advance(2 * time.Second)
	release(m, 40, 6)
	v := m.session.View()
	if !v.Thanks || !v.Secret {
		t.Fatalf("expected both overlays after a 2s hold, got thanks=%v secret=%v", v.Thanks, v.Secret)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.session.View().Secret || !m.session.View().Thanks {
		t.Fatal("esc should close the top overlay only")
	}
	m.Update(keyRunes("p"))
	if m.variant != story.VariantBloom {
		t.Fatal("second part offered from the thanks overlay")
	}
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.session.Modal() {
		t.Fatal("enter should close the remaining overlay")
	}
}

func TestDragSwipes(t *testing.T) {
	m, mc := newTestModel(t, "bloom")
	press(m, 20, 20)
	m.Update(tea.MouseMsg{X: 14, Y: 20, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	release(m, 14, 20)
	if m.session.Current() != 0 {
		t.Fatal("a 48 unit drag should not navigate")
	}
	press(m, 20, 20)
	m.Update(tea.MouseMsg{X: 12, Y: 20, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	release(m, 12, 20)
	if m.session.Current() != 1 {
		t.Fatalf("expected swipe to advance, at %d", m.session.Current())
	}
	finishChapter(m, mc)
	if !strings.Contains(m.View(), text.SwipeForward) {
		t.Fatal("expected swipe hints once the viewer has swiped")
	}
}

func TestImmersiveEntersFullScreen(t *testing.T) {
	m, mc := newTestModel(t, "bloom")
	m.Update(keyRunes("6"))
	mc.Advance(time.Second)
	_, cmd := m.Update(frameMsg{})
	if !m.altScreen || cmd == nil {
		t.Fatal("expected a full screen request on the sixth chapter")
	}
}

func TestDotClicksInFullScreen(t *testing.T) {
	m, _ := newTestModel(t, "bloom")
	lay := m.layout()
	if i, ok := lay.dotAt(lay.dotX+2, dotsRow); !ok || i != 1 {
		t.Fatalf("expected dot 1, got %d %v", i, ok)
	}
	if _, ok := lay.dotAt(lay.dotX+1, dotsRow); ok {
		t.Fatal("gap between dots should not select")
	}
	m.altScreen = true
	press(m, lay.dotX+6, dotsRow)
	if m.session.Current() != 3 {
		t.Fatalf("expected dot click to jump to 3, got %d", m.session.Current())
	}
	press(m, 0, 30)
	release(m, 0, 30)
	m.Update(keyRunes("7"))
	press(m, 0, 30)
	if m.session.View().LongPress > 0 {
		t.Fatal("press outside the image armed the hold")
	}
	release(m, 0, 30)
	press(m, lay.image.x+1, lay.image.y+1)
	if !m.session.View().Chapter.Finale || !m.pressed {
		t.Fatal("expected press on the finale image")
	}
}

func TestPhasesWaitsForBegin(t *testing.T) {
	m, mc := newTestModel(t, "phases")
	if !strings.Contains(m.View(), text.BeginPrompt) {
		t.Fatal("expected the begin prompt")
	}
	mc.Advance(time.Second)
	if m.session.View().Reveal.Revealed != 0 {
		t.Fatal("text revealed before playback began")
	}
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !m.session.View().ContentVisible {
		t.Fatal("silent playback should reveal content")
	}
	m.Update(playerMsg{gen: m.gen - 1, ev: gate.Event{Kind: gate.Paused}})
	mc.Advance(reveal.SlowTick)
	if m.session.View().Reveal.Revealed != 1 {
		t.Fatalf("expected slow cadence, got %d", m.session.View().Reveal.Revealed)
	}
}

func TestThemeCycling(t *testing.T) {
	m, _ := newTestModel(t, "bloom")
	m.Update(keyRunes("t"))
	if m.theme != nextThemeName("dusk", 1) {
		t.Fatalf("unexpected theme %q", m.theme)
	}
	m.Update(keyRunes("T"))
	if m.theme != "" {
		t.Fatal("expected chapter theme to be restored")
	}
	if paletteFor("nope") != paletteFor("dusk") {
		t.Fatal("unknown theme should fall back to dusk")
	}
}

func TestQuitClosesSession(t *testing.T) {
	m, _ := newTestModel(t, "bloom")
	_, cmd := m.Update(keyRunes("q"))
	if cmd == nil || m.session != nil {
		t.Fatal("expected quit with the session closed")
	}
	if m.View() != "" {
		t.Fatal("expected empty view after quit")
	}
}

func TestGatedViewHidesChapterImagery(t *testing.T) {
	const moonTop = `.-"""-.`
	m, _ := newTestModel(t, "phases")
	hp := &heldPlayer{}
	m.players = func(player.Sink) player.Player { return hp }
	m.startSession(story.VariantPhases)

	out := m.View()
	if strings.Contains(out, "fases/1.png") || strings.Contains(out, moonTop) {
		t.Fatalf("chapter imagery shown before the viewer began:\n%s", out)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if hp.plays != 1 {
		t.Fatalf("expected playback to start, got %d plays", hp.plays)
	}
	if out := m.View(); strings.Contains(out, "fases/1.png") || strings.Contains(out, moonTop) {
		t.Fatalf("chapter imagery shown before the track was audible:\n%s", out)
	}
	m.Update(playerMsg{gen: m.gen, ev: gate.Event{Mount: hp.last(), Kind: gate.Started}})
	out = m.View()
	if !strings.Contains(out, "fases/1.png") || !strings.Contains(out, "|#########|") {
		t.Fatalf("expected the full moon once playback started:\n%s", out)
	}

	first := hp.last()
	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	out = m.View()
	if strings.Contains(out, "fases/2_new.png") || strings.Contains(out, moonTop) {
		t.Fatalf("imagery shown right after the chapter changed:\n%s", out)
	}
	if !strings.Contains(out, text.WaitingTrack) {
		t.Fatal("expected the waiting notice on the new chapter")
	}
	m.Update(playerMsg{gen: m.gen, ev: gate.Event{Mount: first, Kind: gate.Started}})
	m.Update(playerMsg{gen: m.gen - 1, ev: gate.Event{Mount: hp.last(), Kind: gate.Started}})
	if strings.Contains(m.View(), moonTop) {
		t.Fatal("stale started event revealed the new chapter")
	}
	m.Update(playerMsg{gen: m.gen, ev: gate.Event{Mount: hp.last(), Kind: gate.Started}})
	out = m.View()
	if !strings.Contains(out, "fases/2_new.png") || !strings.Contains(out, "|######   |") {
		t.Fatalf("expected the waning moon once its track started:\n%s", out)
	}
}

func TestArrowsNavigateWhileTrackLoads(t *testing.T) {
	m, _ := newTestModel(t, "phases")
	hp := &heldPlayer{}
	m.players = func(player.Sink) player.Player { return hp }
	m.startSession(story.VariantPhases)
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if m.session.View().ContentVisible {
		t.Fatal("expected the second chapter to wait for its track")
	}
	m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	if m.session.Current() != 0 || len(hp.loads) != 3 {
		t.Fatalf("expected to return to chapter 0 with a fresh load, at %d after %d loads", m.session.Current(), len(hp.loads))
	}
}

func TestSwipeViewerLosesKeyHints(t *testing.T) {
	m, _ := newTestModel(t, "bloom")
	out := m.View()
	if !strings.Contains(out, "[←/→] navegar") || !strings.Contains(out, "●") {
		t.Fatalf("expected key hints and dots for a pointer viewer:\n%s", out)
	}
	press(m, 20, 20)
	m.Update(tea.MouseMsg{X: 12, Y: 20, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	release(m, 12, 20)
	out = m.View()
	if strings.Contains(out, "[←/→] navegar") {
		t.Fatal("key hints still shown after the viewer swiped")
	}
	if !strings.Contains(out, "[q] salir") || !strings.Contains(out, "●") {
		t.Fatalf("expected quit hint and dots to remain:\n%s", out)
	}
}
