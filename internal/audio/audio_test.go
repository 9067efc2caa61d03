package audio

import (
	"testing"

	"github.com/gopxl/beep"
)

type recordingMixer struct {
	added []beep.Streamer
}

func (m *recordingMixer) Rate() beep.SampleRate { return beep.SampleRate(8000) }
func (m *recordingMixer) Add(s beep.Streamer)   { m.added = append(m.added, s) }
func (m *recordingMixer) Locked(fn func())      { fn() }

func drain(t *testing.T, s beep.Streamer) int {
	t.Helper()
	buf := make([][2]float64, 256)
	total := 0
	for i := 0; i < 10000; i++ {
		n, ok := s.Stream(buf)
		for j := 0; j < n; j++ {
			if buf[j][0] < -1 || buf[j][0] > 1 {
				t.Fatalf("sample out of range: %f", buf[j][0])
			}
		}
		total += n
		if !ok {
			return total
		}
	}
	t.Fatal("streamer never drained")
	return 0
}

func TestTypingLength(t *testing.T) {
	rate := beep.SampleRate(8000)
	if got, want := drain(t, Typing(rate)), rate.N(50e6); got != want {
		t.Fatalf("typing cue: got %d samples, want %d", got, want)
	}
}

func TestTransitionAndSecretDrain(t *testing.T) {
	rate := beep.SampleRate(8000)
	if drain(t, Transition(rate)) == 0 {
		t.Fatal("transition cue produced no samples")
	}
	if got, want := drain(t, SecretReveal(rate)), 4*rate.N(150e6); got != want {
		t.Fatalf("secret cue: got %d samples, want %d", got, want)
	}
}

func TestCuesUseMixer(t *testing.T) {
	m := &recordingMixer{}
	c := NewCues(m)
	c.Play(CueTyping)
	c.Play(CueTransition)
	c.Play(CueSecret)
	if len(m.added) != 3 {
		t.Fatalf("expected 3 cues on mixer, got %d", len(m.added))
	}
	var nilCues *Cues
	nilCues.Play(CueSecret)
	NewCues(nil).Play(CueSecret)
}

func TestOutputWithoutDevice(t *testing.T) {
	o := NewOutput()
	if o.Ready() {
		t.Fatal("output ready before Initialize")
	}
	ran := false
	o.Locked(func() { ran = true })
	if !ran {
		t.Fatal("Locked did not run fn")
	}
	o.Cleanup()
}
