package ui

import (
	"fmt"
	"log"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/DaanHessen/moonlit/internal/ambient"
	"github.com/DaanHessen/moonlit/internal/engine"
	"github.com/DaanHessen/moonlit/internal/gate"
	"github.com/DaanHessen/moonlit/internal/gesture"
	"github.com/DaanHessen/moonlit/internal/reveal"
	"github.com/DaanHessen/moonlit/internal/story"
	"github.com/DaanHessen/moonlit/internal/text"
	"github.com/DaanHessen/moonlit/internal/unlock"
)

const (
	dotsRow     = 1
	imageTop    = 3
	imageHeight = 9
	maxImageW   = 44
)

type rect struct{ x, y, w, h int }

func (r rect) contains(x, y int) bool {
	return x >= r.x && x < r.x+r.w && y >= r.y && y < r.y+r.h
}

// layout fixes where the clickable parts of a frame land so mouse events
// can be mapped back onto them.
type layout struct {
	width int
	dots  int
	dotX  int
	image rect
}

func (m *model) layout() layout {
	w := m.width
	if w <= 0 {
		w = 80
	}
	n := m.session.Catalog().Len()
	imgW := w - 4
	if imgW > maxImageW {
		imgW = maxImageW
	}
	if imgW < 12 {
		imgW = 12
	}
	return layout{
		width: w,
		dots:  n,
		dotX:  max(0, (w-(2*n-1))/2),
		image: rect{x: max(0, (w-imgW)/2), y: imageTop, w: imgW, h: imageHeight},
	}
}

// dotAt maps a click onto a chapter dot. Dots sit on every other column.
func (l layout) dotAt(x, y int) (int, bool) {
	if y != dotsRow || x < l.dotX {
		return 0, false
	}
	off := x - l.dotX
	if off%2 != 0 || off/2 >= l.dots {
		return 0, false
	}
	return off / 2, true
}

func (m *model) View() string {
	if m.session == nil {
		return ""
	}
	v := m.session.View()
	pal := paletteFor(m.paletteName(v.Chapter))
	lay := m.layout()

	if o, ok := topOverlay(v); ok {
		return m.renderOverlay(o, pal, lay)
	}

	aff := gesture.Select(m.capabilities())
	// Until the track is audible the panel keeps its rows but shows only
	// the particles.
	shown := v.ContentVisible && !v.AwaitingBegin
	center := lipgloss.NewStyle().Width(lay.width).Align(lipgloss.Center)
	lines := []string{
		m.renderTopBar(v, pal, lay.width),
		m.renderDots(v, pal, lay, aff),
		"",
	}
	panel := m.renderImage(v, pal, lay.image, shown)
	for _, l := range strings.Split(panel, "\n") {
		lines = append(lines, strings.Repeat(" ", lay.image.x)+l)
	}
	label := ""
	if shown {
		label = caption(v.Chapter)
	}
	lines = append(lines, center.Foreground(pal.Muted).Render(label), "")

	textW := min(lay.width-4, 72)
	body := lipgloss.NewStyle().Width(textW).Align(lipgloss.Center)
	switch {
	case v.AwaitingBegin:
		lines = append(lines, center.Foreground(pal.Accent).Render(text.BeginPrompt))
	case !v.ContentVisible:
		lines = append(lines, center.Foreground(pal.Muted).Render(text.WaitingTrack))
	default:
		if v.Chapter.Title != "" {
			lines = append(lines, center.Bold(true).Foreground(pal.Accent).Render(v.Chapter.Title), "")
		}
		lines = append(lines, center.Render(body.Render(m.renderText(v, pal))), "")
		lines = append(lines, m.renderFooter(v, pal, lay.width)...)
	}
	if hold := m.renderHold(v, pal); hold != "" {
		lines = append(lines, "", center.Render(hold))
	}
	lines = append(lines, "", m.renderBottomBar(v, pal, lay.width, aff))
	return strings.Join(lines, "\n")
}

func (m *model) paletteName(ch story.Chapter) string {
	if m.theme != "" {
		return m.theme
	}
	return ch.Theme
}

func topOverlay(v engine.ViewState) (unlock.Overlay, bool) {
	switch {
	case v.Secret:
		return unlock.OverlaySecret, true
	case v.Thanks:
		return unlock.OverlayThanks, true
	}
	return 0, false
}

func caption(ch story.Chapter) string {
	if ch.Image == "" {
		return ""
	}
	return "[ " + ch.Image + " ]"
}

func (m *model) renderTopBar(v engine.ViewState, pal palette, w int) string {
	left := "MOONLIT • " + string(m.variant)
	right := fmt.Sprintf("%d/%d", v.Index+1, v.Count)
	gap := w - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return lipgloss.NewStyle().Bold(true).Foreground(pal.AccentAlt).Render(left + strings.Repeat(" ", gap) + right)
}

func (m *model) renderDots(v engine.ViewState, pal palette, lay layout, aff gesture.Affordances) string {
	if !aff.Dots {
		return ""
	}
	on := lipgloss.NewStyle().Foreground(pal.BarFill)
	off := lipgloss.NewStyle().Foreground(pal.Border)
	parts := make([]string, v.Count)
	for i := range parts {
		if i == v.Index {
			parts[i] = on.Render("●")
		} else {
			parts[i] = off.Render("○")
		}
	}
	return strings.Repeat(" ", lay.dotX) + strings.Join(parts, " ")
}

// renderImage draws the chapter panel: its particle layer with the moon,
// when the chapter has a phase and shown is set, on top.
func (m *model) renderImage(v engine.ViewState, pal palette, r rect, shown bool) string {
	innerW, innerH := r.w-2, r.h-2
	key := [4]int{m.gen, v.Index, innerW, innerH}
	if m.field == nil || m.fieldKey != key {
		m.field = ambient.ParticleField(v.Chapter.Particles, innerW, innerH, m.seed)
		m.fieldKey = key
	}
	grid := m.field.Frame(m.frame)
	if len(grid) != innerH {
		grid = make([]string, innerH)
		for i := range grid {
			grid[i] = strings.Repeat(" ", innerW)
		}
	}
	if moon := ambient.MoonGlyph(v.Chapter.Phase); shown && moon != nil {
		top := (innerH - len(moon)) / 2
		for i, l := range moon {
			grid[top+i] = overlayLine(grid[top+i], l, (innerW-lipgloss.Width(l))/2)
		}
	}
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(pal.Border).
		Foreground(pal.Muted).
		Width(innerW)
	if v.Chapter.Finale {
		style = style.BorderForeground(pal.Accent)
	}
	return style.Render(strings.Join(grid, "\n"))
}

// overlayLine writes fg over bg starting at column at. Spaces in fg keep
// the background.
func overlayLine(bg, fg string, at int) string {
	out := []rune(bg)
	for i, r := range []rune(fg) {
		p := at + i
		if p < 0 || p >= len(out) || r == ' ' {
			continue
		}
		out[p] = r
	}
	return string(out)
}

func (m *model) renderText(v engine.ViewState, pal palette) string {
	plain := lipgloss.NewStyle().Foreground(pal.Text)
	sub := lipgloss.NewStyle().Bold(true).Foreground(pal.Accent)
	var b strings.Builder
	for _, seg := range text.Compose(v.Chapter.Runes(), v.Reveal.Revealed, v.Reveal.Transformed) {
		if seg.Substituted {
			b.WriteString(sub.Render(seg.Text))
		} else {
			b.WriteString(plain.Render(seg.Text))
		}
	}
	if v.Reveal.State == reveal.Revealing {
		b.WriteString(lipgloss.NewStyle().Foreground(pal.Accent).Render("▌"))
	}
	return b.String()
}

func (m *model) renderFooter(v engine.ViewState, pal palette, w int) []string {
	center := lipgloss.NewStyle().Width(w).Align(lipgloss.Center)
	muted := center.Foreground(pal.Muted)
	switch v.Reveal.Affordance {
	case reveal.AffordanceCodeEntry:
		if !v.CodeOpen {
			return nil
		}
		input := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(pal.Accent).
			Width(unlock.MaxCodeLength + 2).
			Align(lipgloss.Center).
			Render(codeField(v.Code))
		out := []string{muted.Render(text.CodePrompt), center.Render(input)}
		if m.status == "rejected" {
			out = append(out, center.Foreground(pal.Warning).Render(text.CodeRejected))
		} else {
			out = append(out, muted.Render(text.CodeLabel+" • Enter ✨"))
		}
		return out
	case reveal.AffordanceNavigation:
		return []string{center.Foreground(pal.Text).Render(m.navigation(v, gesture.Select(m.capabilities())))}
	}
	if !v.AtLast {
		return []string{muted.Render(text.Waiting)}
	}
	return nil
}

func codeField(code string) string {
	n := len([]rune(code))
	return code + strings.Repeat("·", max(0, unlock.MaxCodeLength-n))
}

// navigation renders whichever affordance the viewer's device calls for.
func (m *model) navigation(v engine.ViewState, aff gesture.Affordances) string {
	var parts []string
	if aff.SwipeHint {
		if !v.AtFirst {
			parts = append(parts, text.SwipeBack)
		}
		if !v.AtLast {
			parts = append(parts, text.SwipeForward)
		}
	} else if aff.Buttons {
		if !v.AtFirst {
			parts = append(parts, text.ButtonBack)
		}
		if !v.AtLast {
			parts = append(parts, text.ButtonForward)
		}
	}
	return strings.Join(parts, "    ")
}

func (m *model) renderHold(v engine.ViewState, pal palette) string {
	if !v.Chapter.Finale {
		return ""
	}
	style := lipgloss.NewStyle().Foreground(pal.Muted)
	if v.LongPress <= 0 {
		return style.Render("👆 " + text.HoldHint)
	}
	const width = 20
	filled := int(v.LongPress * width)
	fill := lipgloss.NewStyle().Foreground(pal.BarFill).Render(strings.Repeat("▰", filled))
	empty := lipgloss.NewStyle().Foreground(pal.BarEmpty).Render(strings.Repeat("▱", width-filled))
	return style.Render(text.Holding+" ") + fill + empty
}

func (m *model) renderBottomBar(v engine.ViewState, pal palette, w int, aff gesture.Affordances) string {
	keys := "[q] salir"
	if aff.KeyHint {
		keys = fmt.Sprintf("[←/→] navegar  [1-%d] saltar  [t] tema  [q] salir", v.Count)
	}
	if v.AwaitingBegin {
		keys = "[Enter] comenzar  " + keys
	}
	status := ""
	if v.Gate != gate.Visible {
		status = "audio: " + v.Gate.String()
	}
	line := keys
	if status != "" {
		line += "  " + status
	}
	if lipgloss.Width(line) > w && w > 10 {
		line = string([]rune(line)[:w-3]) + "..."
	}
	return lipgloss.NewStyle().Foreground(pal.Muted).Render(line)
}

// renderOverlay draws the overlay's markdown in a modal frame over the
// whole screen.
func (m *model) renderOverlay(o unlock.Overlay, pal palette, lay layout) string {
	w := min(lay.width-6, 60)
	if w < 20 {
		w = 20
	}
	body := m.overlayMarkdown(o, w-4)
	box := lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(pal.Accent).
		Padding(1, 2).
		Width(w).
		Render(body)
	h := m.height
	if h <= 0 {
		h = lipgloss.Height(box)
	}
	return lipgloss.Place(lay.width, h, lipgloss.Center, lipgloss.Center, box)
}

func (m *model) overlayMarkdown(o unlock.Overlay, width int) string {
	key := overlayKey{overlay: o, width: width}
	if r, ok := m.overlays[key]; ok {
		return r
	}
	md := text.ThanksMarkdown()
	if o == unlock.OverlaySecret {
		next := ""
		if v, ok := m.secondPart(); ok {
			next = string(v)
		}
		md = text.SecretMarkdown(next)
	}
	rendered := md
	renderer, err := glamour.NewTermRenderer(glamour.WithStandardStyle("dark"), glamour.WithWordWrap(width))
	if err == nil {
		rendered, err = renderer.Render(md)
	}
	if err != nil {
		log.Printf("ui: render %s overlay: %v", o, err)
		rendered = md
	}
	rendered = strings.Trim(rendered, "\n")
	m.overlays[key] = rendered
	return rendered
}
