// Package player plays a chapter's accompanying track and reports when it
// becomes audible. The narrative only sees the events it emits.
package player

import (
	"github.com/DaanHessen/moonlit/internal/gate"
	"github.com/DaanHessen/moonlit/internal/story"
)

// DefaultVolume matches the embedded player's default of half volume.
const DefaultVolume = 50

// Sink receives player events. It may be called from the audio goroutine
// and must not block.
type Sink func(gate.Event)

// Player is the media player collaborator, keyed by track identifier.
type Player interface {
	// Load replaces the current track. Events emitted for it carry mount.
	Load(mount gate.Token, track story.Track) error
	Play()
	Pause()
	SetVolume(v int)
	Close() error
}

// Silent stands in when audio is disabled or unavailable. It plays silence,
// which is audible the moment it starts.
type Silent struct {
	sink  Sink
	mount gate.Token
}

func NewSilent(sink Sink) *Silent { return &Silent{sink: sink} }

func (s *Silent) Load(mount gate.Token, _ story.Track) error {
	s.mount = mount
	return nil
}

func (s *Silent) Play()         { s.sink(gate.Event{Mount: s.mount, Kind: gate.Started}) }
func (s *Silent) Pause()        { s.sink(gate.Event{Mount: s.mount, Kind: gate.Paused}) }
func (s *Silent) SetVolume(int) {}
func (s *Silent) Close() error  { return nil }

func clampVolume(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
