package ui

import (
	"sort"

	"github.com/charmbracelet/lipgloss"
)

type palette struct {
	Background lipgloss.Color
	Surface    lipgloss.Color
	Panel      lipgloss.Color
	Text       lipgloss.Color
	Muted      lipgloss.Color
	Accent     lipgloss.Color
	AccentAlt  lipgloss.Color
	Border     lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	BarFill    lipgloss.Color
	BarEmpty   lipgloss.Color
}

// palettes are keyed by chapter theme.
var palettes = map[string]palette{
	"dusk": {
		Background: lipgloss.Color("#14121f"),
		Surface:    lipgloss.Color("#211d33"),
		Panel:      lipgloss.Color("#2d2842"),
		Text:       lipgloss.Color("#d8d4e8"),
		Muted:      lipgloss.Color("#8a84a3"),
		Accent:     lipgloss.Color("#facc15"),
		AccentAlt:  lipgloss.Color("#f0abfc"),
		Border:     lipgloss.Color("#4b4566"),
		Success:    lipgloss.Color("#a3e635"),
		Warning:    lipgloss.Color("#fb923c"),
		BarFill:    lipgloss.Color("#facc15"),
		BarEmpty:   lipgloss.Color("#2d2842"),
	},
	"bloom": {
		Background: lipgloss.Color("#1c1a0f"),
		Surface:    lipgloss.Color("#2b2814"),
		Panel:      lipgloss.Color("#3a351a"),
		Text:       lipgloss.Color("#fef9c3"),
		Muted:      lipgloss.Color("#b8ae74"),
		Accent:     lipgloss.Color("#fde047"),
		AccentAlt:  lipgloss.Color("#f9a8d4"),
		Border:     lipgloss.Color("#a16207"),
		Success:    lipgloss.Color("#bef264"),
		Warning:    lipgloss.Color("#fdba74"),
		BarFill:    lipgloss.Color("#fde047"),
		BarEmpty:   lipgloss.Color("#3a351a"),
	},
	"slate": {
		Background: lipgloss.Color("#0f172a"),
		Surface:    lipgloss.Color("#1e293b"),
		Panel:      lipgloss.Color("#334155"),
		Text:       lipgloss.Color("#e2e8f0"),
		Muted:      lipgloss.Color("#94a3b8"),
		Accent:     lipgloss.Color("#f8fafc"),
		AccentAlt:  lipgloss.Color("#93c5fd"),
		Border:     lipgloss.Color("#475569"),
		Success:    lipgloss.Color("#5eead4"),
		Warning:    lipgloss.Color("#fcd34d"),
		BarFill:    lipgloss.Color("#cbd5e1"),
		BarEmpty:   lipgloss.Color("#1e293b"),
	},
	"ash": {
		Background: lipgloss.Color("#111111"),
		Surface:    lipgloss.Color("#1f1f1f"),
		Panel:      lipgloss.Color("#2e2e2e"),
		Text:       lipgloss.Color("#d4d4d4"),
		Muted:      lipgloss.Color("#737373"),
		Accent:     lipgloss.Color("#a3a3a3"),
		AccentAlt:  lipgloss.Color("#60a5fa"),
		Border:     lipgloss.Color("#404040"),
		Success:    lipgloss.Color("#86efac"),
		Warning:    lipgloss.Color("#fca5a5"),
		BarFill:    lipgloss.Color("#a3a3a3"),
		BarEmpty:   lipgloss.Color("#262626"),
	},
	"violet": {
		Background: lipgloss.Color("#1a1033"),
		Surface:    lipgloss.Color("#2a1b4d"),
		Panel:      lipgloss.Color("#3b2766"),
		Text:       lipgloss.Color("#ede9fe"),
		Muted:      lipgloss.Color("#a78bfa"),
		Accent:     lipgloss.Color("#c4b5fd"),
		AccentAlt:  lipgloss.Color("#f472b6"),
		Border:     lipgloss.Color("#5b21b6"),
		Success:    lipgloss.Color("#6ee7b7"),
		Warning:    lipgloss.Color("#fbbf24"),
		BarFill:    lipgloss.Color("#c4b5fd"),
		BarEmpty:   lipgloss.Color("#2a1b4d"),
	},
	"dawn": {
		Background: lipgloss.Color("#1f1720"),
		Surface:    lipgloss.Color("#33232f"),
		Panel:      lipgloss.Color("#4a3040"),
		Text:       lipgloss.Color("#fdf2f8"),
		Muted:      lipgloss.Color("#d8a1b8"),
		Accent:     lipgloss.Color("#fda4af"),
		AccentAlt:  lipgloss.Color("#fcd34d"),
		Border:     lipgloss.Color("#9d4b6a"),
		Success:    lipgloss.Color("#bbf7d0"),
		Warning:    lipgloss.Color("#fdba74"),
		BarFill:    lipgloss.Color("#fda4af"),
		BarEmpty:   lipgloss.Color("#33232f"),
	},
}

func paletteFor(name string) palette {
	if p, ok := palettes[name]; ok {
		return p
	}
	return palettes["dusk"]
}

func themeNames() []string {
	names := make([]string, 0, len(palettes))
	for k := range palettes {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func nextThemeName(current string, step int) string {
	names := themeNames()
	if len(names) == 0 {
		return current
	}
	idx := 0
	for i, name := range names {
		if name == current {
			idx = i
			break
		}
	}
	idx = (idx + step) % len(names)
	if idx < 0 {
		idx += len(names)
	}
	return names[idx]
}
