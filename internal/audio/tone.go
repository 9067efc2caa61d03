package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
)

// sweep is a sine whose frequency glides linearly from one value to another
// with an exponential amplitude decay.
type sweep struct {
	from, to float64
	gain     float64
	decay    float64
	phase    float64
	position int
	duration int
	rate     beep.SampleRate
}

func newSweep(from, to float64, d time.Duration, gain float64, rate beep.SampleRate) *sweep {
	n := rate.N(d)
	return &sweep{from: from, to: to, gain: gain, decay: math.Log(gain/0.01) / float64(n), duration: n, rate: rate}
}

func (s *sweep) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if s.position >= s.duration {
			return i, i > 0
		}
		t := float64(s.position) / float64(s.duration)
		freq := s.from + (s.to-s.from)*t
		amp := s.gain * math.Exp(-s.decay*float64(s.position))
		v := amp * math.Sin(2*math.Pi*s.phase)
		samples[i][0] = v
		samples[i][1] = v
		s.phase += freq / float64(s.rate)
		s.phase -= math.Floor(s.phase)
		s.position++
	}
	return len(samples), true
}

func (s *sweep) Err() error { return nil }

// Typing is a 50ms click gliding from 800Hz to 600Hz.
func Typing(rate beep.SampleRate) beep.Streamer {
	return newSweep(800, 600, 50*time.Millisecond, 0.1, rate)
}

// Transition is a soft rising tone played on chapter change.
func Transition(rate beep.SampleRate) beep.Streamer {
	return newSweep(400, 800, 300*time.Millisecond, 0.2, rate)
}

// SecretReveal is a short ascending arpeggio (C5 E5 G5 C6).
func SecretReveal(rate beep.SampleRate) beep.Streamer {
	notes := []float64{523.25, 659.25, 783.99, 1046.5}
	parts := make([]beep.Streamer, 0, len(notes))
	for _, f := range notes {
		tone, err := generators.SineTone(rate, f)
		if err != nil {
			continue
		}
		parts = append(parts, &effects.Volume{
			Streamer: beep.Take(rate.N(150*time.Millisecond), tone),
			Base:     2,
			Volume:   -2,
		})
	}
	return beep.Seq(parts...)
}

type Cue int

const (
	CueTyping Cue = iota
	CueTransition
	CueSecret
)

// Cues plays sound cues on a mixer. A nil mixer makes every call a no-op.
type Cues struct {
	mixer Mixer
}

func NewCues(m Mixer) *Cues { return &Cues{mixer: m} }

func (c *Cues) Play(cue Cue) {
	if c == nil || c.mixer == nil {
		return
	}
	rate := c.mixer.Rate()
	switch cue {
	case CueTyping:
		c.mixer.Add(Typing(rate))
	case CueTransition:
		c.mixer.Add(Transition(rate))
	case CueSecret:
		c.mixer.Add(SecretReveal(rate))
	}
}
