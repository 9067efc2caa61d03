// Package story holds the fixed chapter catalogs and the playback position.
package story

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

var (
	ErrEmptyCatalog      = errors.New("catalog has no chapters")
	ErrEmptyText         = errors.New("chapter text is empty")
	ErrSubstitutionRange = errors.New("substitution position outside chapter text")
	ErrMultipleFinales   = errors.New("more than one finale chapter")
)

// Track identifies the external audio that accompanies a chapter.
type Track struct {
	ID    string
	Start int // seconds into the track
}

// Chapter is one fixed narrative unit.
type Chapter struct {
	Index     int
	Title     string // empty means no title is shown
	Text      string
	Image     string
	Phase     Phase
	Theme     string
	Particles Particles
	Track     Track
	// Substitutions maps a rune position in Text to the symbol briefly shown
	// in its place when the reveal first reaches it.
	Substitutions map[int]rune
	// Finale chapters offer code entry instead of navigation once revealed,
	// and are the only chapters where secret gestures arm.
	Finale bool
	// Immersive asks the surface to take over the whole screen shortly after
	// the chapter opens.
	Immersive bool
}

// Runes returns the chapter text as runes; reveal positions index into it.
func (c Chapter) Runes() []rune { return []rune(c.Text) }

// Length is the text length in runes.
func (c Chapter) Length() int { return utf8.RuneCountInString(c.Text) }

// HasTrack reports whether the chapter carries external audio.
func (c Chapter) HasTrack() bool { return c.Track.ID != "" }

// Catalog is an immutable, totally ordered list of chapters.
type Catalog struct {
	variant  Variant
	chapters []Chapter
}

// NewCatalog validates and freezes chapters. Indices are reassigned densely
// from zero in the given order and text is NFC normalized so rune positions
// are stable.
func NewCatalog(variant Variant, chapters []Chapter) (*Catalog, error) {
	if len(chapters) == 0 {
		return nil, ErrEmptyCatalog
	}
	out := make([]Chapter, len(chapters))
	finales := 0
	for i, ch := range chapters {
		ch.Index = i
		ch.Text = norm.NFC.String(ch.Text)
		ch.Title = norm.NFC.String(ch.Title)
		if ch.Text == "" {
			return nil, fmt.Errorf("chapter %d: %w", i, ErrEmptyText)
		}
		n := ch.Length()
		subs := make(map[int]rune, len(ch.Substitutions))
		for pos, r := range ch.Substitutions {
			if pos < 0 || pos >= n {
				return nil, fmt.Errorf("chapter %d position %d: %w", i, pos, ErrSubstitutionRange)
			}
			subs[pos] = r
		}
		ch.Substitutions = subs
		if ch.Finale {
			finales++
		}
		out[i] = ch
	}
	if finales > 1 {
		return nil, ErrMultipleFinales
	}
	return &Catalog{variant: variant, chapters: out}, nil
}

func (c *Catalog) Variant() Variant { return c.variant }
func (c *Catalog) Len() int         { return len(c.chapters) }
func (c *Catalog) Last() int        { return len(c.chapters) - 1 }

// Contains reports whether i is a valid chapter index.
func (c *Catalog) Contains(i int) bool { return i >= 0 && i < len(c.chapters) }

// At returns chapter i. Callers bounds-check with Contains.
func (c *Catalog) At(i int) Chapter {
	ch := c.chapters[i]
	subs := make(map[int]rune, len(ch.Substitutions))
	for k, v := range ch.Substitutions {
		subs[k] = v
	}
	ch.Substitutions = subs
	return ch
}

// All returns a copy of every chapter in order.
func (c *Catalog) All() []Chapter {
	out := make([]Chapter, len(c.chapters))
	for i := range c.chapters {
		out[i] = c.At(i)
	}
	return out
}
