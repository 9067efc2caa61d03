package player

import (
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/wav"
	"github.com/pkg/errors"

	"github.com/DaanHessen/moonlit/internal/audio"
	"github.com/DaanHessen/moonlit/internal/gate"
	"github.com/DaanHessen/moonlit/internal/story"
)

var ErrNoTrack = errors.New("chapter has no track")

// BeepPlayer plays <dir>/<track id>.wav through an audio mixer, looping,
// starting at the track's offset.
type BeepPlayer struct {
	dir   string
	mixer audio.Mixer
	sink  Sink

	mu     sync.Mutex
	volume int
	cur    *voice
}

type voice struct {
	mount     gate.Token
	source    beep.StreamSeekCloser
	ctrl      *beep.Ctrl
	vol       *effects.Volume
	announced atomic.Bool
}

func NewBeepPlayer(dir string, mixer audio.Mixer, sink Sink) *BeepPlayer {
	return &BeepPlayer{dir: dir, mixer: mixer, sink: sink, volume: DefaultVolume}
}

// Path resolves a track identifier to its file.
func (p *BeepPlayer) Path(id string) string { return filepath.Join(p.dir, id+".wav") }

func (p *BeepPlayer) Load(mount gate.Token, track story.Track) error {
	p.stop()
	if track.ID == "" {
		p.fail(mount, ErrNoTrack)
		return ErrNoTrack
	}
	f, err := os.Open(p.Path(track.ID))
	if err != nil {
		err = errors.Wrap(err, "open track")
		p.fail(mount, err)
		return err
	}
	source, format, err := wav.Decode(f)
	if err != nil {
		_ = f.Close()
		err = errors.Wrapf(err, "decode track %s", track.ID)
		p.fail(mount, err)
		return err
	}
	if offset := format.SampleRate.N(time.Duration(track.Start) * time.Second); offset > 0 && offset < source.Len() {
		if err := source.Seek(offset); err != nil {
			_ = source.Close()
			err = errors.Wrapf(err, "seek track %s", track.ID)
			p.fail(mount, err)
			return err
		}
	}

	v := &voice{mount: mount, source: source}
	var s beep.Streamer = beep.Loop(-1, source)
	if format.SampleRate != p.mixer.Rate() {
		s = beep.Resample(4, format.SampleRate, p.mixer.Rate(), s)
	}
	v.vol = &effects.Volume{Streamer: s, Base: 2}
	v.ctrl = &beep.Ctrl{Streamer: &audible{s: v.vol, v: v, sink: p.sink}, Paused: true}

	p.mu.Lock()
	applyVolume(v.vol, p.volume)
	p.cur = v
	p.mu.Unlock()
	p.mixer.Add(v.ctrl)
	return nil
}

func (p *BeepPlayer) Play() {
	p.mu.Lock()
	v := p.cur
	p.mu.Unlock()
	if v == nil {
		return
	}
	p.mixer.Locked(func() { v.ctrl.Paused = false })
}

func (p *BeepPlayer) Pause() {
	p.mu.Lock()
	v := p.cur
	p.mu.Unlock()
	if v == nil {
		return
	}
	p.mixer.Locked(func() { v.ctrl.Paused = true })
	v.announced.Store(false)
	p.sink(gate.Event{Mount: v.mount, Kind: gate.Paused})
}

func (p *BeepPlayer) SetVolume(vol int) {
	p.mu.Lock()
	p.volume = clampVolume(vol)
	v := p.cur
	level := p.volume
	p.mu.Unlock()
	if v == nil {
		return
	}
	p.mixer.Locked(func() { applyVolume(v.vol, level) })
}

func (p *BeepPlayer) Volume() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.volume
}

func (p *BeepPlayer) Close() error {
	p.stop()
	return nil
}

func (p *BeepPlayer) stop() {
	p.mu.Lock()
	v := p.cur
	p.cur = nil
	p.mu.Unlock()
	if v == nil {
		return
	}
	p.mixer.Locked(func() {
		v.ctrl.Paused = true
		v.ctrl.Streamer = nil
	})
	_ = v.source.Close()
}

func (p *BeepPlayer) fail(mount gate.Token, err error) {
	p.sink(gate.Event{Mount: mount, Kind: gate.Failed, Err: err})
}

// audible reports Started the first time samples are actually pulled by
// the speaker after a load or a pause.
type audible struct {
	s    beep.Streamer
	v    *voice
	sink Sink
}

func (a *audible) Stream(samples [][2]float64) (int, bool) {
	n, ok := a.s.Stream(samples)
	if n > 0 && a.v.announced.CompareAndSwap(false, true) {
		a.sink(gate.Event{Mount: a.v.mount, Kind: gate.Started})
	}
	return n, ok
}

func (a *audible) Err() error { return a.s.Err() }

// applyVolume maps 0..100 onto a base-2 gain where 100 is unity and each
// 25 steps halves the amplitude.
func applyVolume(v *effects.Volume, level int) {
	v.Silent = level == 0
	v.Volume = float64(level-100) / 25
}
