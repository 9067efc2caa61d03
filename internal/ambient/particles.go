package ambient

import (
	"strings"

	"github.com/DaanHessen/moonlit/internal/story"
)

type particle struct {
	x, y  int
	glyph rune
	// phase offsets animation so neighbours do not move in lockstep.
	phase int
}

type motion struct {
	glyphs  []rune
	density int // cells per particle
	dx, dy  int // per step
	every   int // frames per step
	blink   bool
}

var motions = map[story.Particles]motion{
	story.ParticlesStars:     {glyphs: []rune{'.', '*', '+', '·'}, density: 40, every: 1, blink: true},
	story.ParticlesRain:      {glyphs: []rune{'|', '\'', '.'}, density: 18, dy: 1, every: 1},
	story.ParticlesFireflies: {glyphs: []rune{'•', '·'}, density: 60, dx: 1, every: 3, blink: true},
	story.ParticlesEmbers:    {glyphs: []rune{'^', '\'', '.'}, density: 45, dy: -1, every: 2},
	story.ParticlesPetals:    {glyphs: []rune{'✿', '❀', '*'}, density: 50, dx: 1, dy: 1, every: 2},
}

// Field is a particle layer of fixed size. The same mode, size and seed
// always produce the same frames.
type Field struct {
	mode      story.Particles
	w, h      int
	particles []particle
}

// ParticleField scatters particles for mode over a w×h area using a stream
// labelled with the mode.
func ParticleField(mode story.Particles, w, h int, seed Seed) *Field {
	f := &Field{mode: mode, w: w, h: h}
	m, ok := motions[mode]
	if !ok || w <= 0 || h <= 0 {
		return f
	}
	rng := seed.Stream("particles:" + string(mode))
	n := w * h / m.density
	if n == 0 {
		n = 1
	}
	for i := 0; i < n; i++ {
		f.particles = append(f.particles, particle{
			x:     rng.Intn(w),
			y:     rng.Intn(h),
			glyph: m.glyphs[rng.Intn(len(m.glyphs))],
			phase: rng.Intn(8),
		})
	}
	return f
}

// Len is the number of particles in the field.
func (f *Field) Len() int { return len(f.particles) }

// Frame renders the field at animation step n as h lines of w runes.
func (f *Field) Frame(n int) []string {
	if f.w <= 0 || f.h <= 0 {
		return nil
	}
	grid := make([][]rune, f.h)
	for y := range grid {
		grid[y] = []rune(strings.Repeat(" ", f.w))
	}
	m := motions[f.mode]
	for _, p := range f.particles {
		if m.blink && (n+p.phase)%8 == 0 {
			continue
		}
		steps := 0
		if m.every > 0 {
			steps = (n + p.phase) / m.every
		}
		x := wrap(p.x+steps*m.dx, f.w)
		y := wrap(p.y+steps*m.dy, f.h)
		grid[y][x] = p.glyph
	}
	lines := make([]string, f.h)
	for y, row := range grid {
		lines[y] = string(row)
	}
	return lines
}

func wrap(v, n int) int {
	v %= n
	if v < 0 {
		v += n
	}
	return v
}
