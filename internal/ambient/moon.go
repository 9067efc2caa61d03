// Package ambient draws the decorative layers around a chapter: the moon
// glyph and particle fields. Nothing here feeds back into the narrative.
package ambient

import "github.com/DaanHessen/moonlit/internal/story"

var moons = map[story.Phase][]string{
	story.PhaseFull: {
		`  .-"""-.  `,
		` /#######\ `,
		`|#########|`,
		` \#######/ `,
		`  '-...-'  `,
	},
	story.PhaseWaning: {
		`  .-"""-.  `,
		` /#####  \ `,
		`|######   |`,
		` \#####  / `,
		`  '-...-'  `,
	},
	story.PhaseQuarter: {
		`  .-"""-.  `,
		` /###    \ `,
		`|####     |`,
		` \###    / `,
		`  '-...-'  `,
	},
	story.PhaseWaxing: {
		`  .-"""-.  `,
		` /  #####\ `,
		`|   ######|`,
		` \  #####/ `,
		`  '-...-'  `,
	},
	story.PhaseNew: {
		`  .-"""-.  `,
		` /       \ `,
		`|         |`,
		` \       / `,
		`  '-...-'  `,
	},
}

// MoonGlyph returns the lines of the moon drawn for phase. Unknown phases
// draw nothing.
func MoonGlyph(p story.Phase) []string {
	lines, ok := moons[p]
	if !ok {
		return nil
	}
	out := make([]string, len(lines))
	copy(out, lines)
	return out
}
