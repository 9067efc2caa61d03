// Package audio owns the speaker and the synthesized sound cues.
package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// SampleRate is the rate the speaker runs at; tracks are resampled to it.
const SampleRate = beep.SampleRate(48000)

// Mixer is where streamers are played. Output implements it over the real
// speaker; tests substitute their own.
type Mixer interface {
	Rate() beep.SampleRate
	Add(s beep.Streamer)
	// Locked runs fn while the audio goroutine is not pulling samples.
	Locked(fn func())
}

// Output manages the speaker and a single shared mixer.
type Output struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
}

func NewOutput() *Output {
	return &Output{mixer: &beep.Mixer{}}
}

// Initialize opens the audio device. Hosts without a usable device return
// an error; callers degrade to silent playback.
func (o *Output) Initialize() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.initialized {
		return nil
	}
	if err := speaker.Init(SampleRate, SampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(o.mixer)
	o.initialized = true
	return nil
}

func (o *Output) Ready() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.initialized
}

func (o *Output) Rate() beep.SampleRate { return SampleRate }

func (o *Output) Add(s beep.Streamer) {
	o.Locked(func() { o.mixer.Add(s) })
}

func (o *Output) Locked(fn func()) {
	if !o.Ready() {
		fn()
		return
	}
	speaker.Lock()
	defer speaker.Unlock()
	fn()
}

// Cleanup silences everything that is still playing.
func (o *Output) Cleanup() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if !o.initialized {
		return
	}
	speaker.Clear()
	o.mixer.Clear()
	speaker.Play(o.mixer)
}
