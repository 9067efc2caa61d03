// Package unlock tracks the hidden gestures and the secret code that reveal
// bonus overlays on the finale chapter.
package unlock

import (
	"time"
	"unicode"

	"github.com/DaanHessen/moonlit/internal/clock"
)

type Overlay int

const (
	// OverlayThanks is revealed by a long press.
	OverlayThanks Overlay = iota
	// OverlaySecret is revealed by a sustained touch or the secret code.
	OverlaySecret
)

func (o Overlay) String() string {
	if o == OverlaySecret {
		return "secret"
	}
	return "thanks"
}

const MaxCodeLength = 8

type Config struct {
	LongPress time.Duration
	Sustained time.Duration
	Code      string
}

func DefaultConfig() Config {
	return Config{LongPress: 2 * time.Second, Sustained: time.Second, Code: "14082012"}
}

type Hooks struct {
	Show func(Overlay)
	// Rejected is called after a wrong code clears the buffer.
	Rejected func()
}

// Unlock holds two independent hold timers sharing the same press events,
// the code buffer and the overlay flags.
type Unlock struct {
	sched  clock.Scheduler
	cfg    Config
	hooks  Hooks
	finale func() bool

	longPress      clock.Timer
	longPressSince time.Time
	sustained      clock.Timer

	visible   [2]bool
	codeReady bool
	code      []rune
}

// New creates the subsystem. finale reports whether the finale chapter is
// active; gestures only arm while it returns true.
func New(sched clock.Scheduler, cfg Config, hooks Hooks, finale func() bool) *Unlock {
	if cfg.Code == "" {
		cfg.Code = DefaultConfig().Code
	}
	return &Unlock{sched: sched, cfg: cfg, hooks: hooks, finale: finale}
}

// Press arms both hold timers if they are not already armed.
func (u *Unlock) Press() {
	if u.finale == nil || !u.finale() {
		return
	}
	if u.longPress == nil {
		u.longPressSince = u.sched.Now()
		u.longPress = u.sched.After(u.cfg.LongPress, func() {
			u.longPress = nil
			u.show(OverlayThanks)
		})
	}
	if u.sustained == nil {
		u.sustained = u.sched.After(u.cfg.Sustained, func() {
			u.sustained = nil
			u.show(OverlaySecret)
		})
	}
}

// Release cancels any hold that has not confirmed yet.
func (u *Unlock) Release() {
	u.longPress = clock.Stop(u.longPress)
	u.sustained = clock.Stop(u.sustained)
}

// LongPressArmed reports whether a long press is counting down.
func (u *Unlock) LongPressArmed() bool { return u.longPress != nil }

// SustainedArmed reports whether a sustained touch is counting down.
func (u *Unlock) SustainedArmed() bool { return u.sustained != nil }

// LongPressProgress is the fraction of the long press already held.
func (u *Unlock) LongPressProgress() float64 {
	if u.longPress == nil || u.cfg.LongPress <= 0 {
		return 0
	}
	p := float64(u.sched.Now().Sub(u.longPressSince)) / float64(u.cfg.LongPress)
	if p > 1 {
		p = 1
	}
	return p
}

// CodeReady opens code entry; the finale's text has been fully revealed.
func (u *Unlock) CodeReady() {
	if u.finale != nil && u.finale() {
		u.codeReady = true
	}
}

func (u *Unlock) CodeOpen() bool { return u.codeReady }
func (u *Unlock) Code() string   { return string(u.code) }

// Type appends r to the code buffer, up to MaxCodeLength runes.
func (u *Unlock) Type(r rune) bool {
	if !u.codeReady || len(u.code) >= MaxCodeLength || !unicode.IsPrint(r) {
		return false
	}
	u.code = append(u.code, r)
	return true
}

func (u *Unlock) Backspace() {
	if len(u.code) > 0 {
		u.code = u.code[:len(u.code)-1]
	}
}

// Submit checks the buffer against the secret. A match reveals the secret
// overlay and closes code entry; anything else only clears the buffer.
func (u *Unlock) Submit() bool {
	if !u.codeReady {
		return false
	}
	entered := string(u.code)
	u.code = u.code[:0]
	if entered != u.cfg.Code {
		if u.hooks.Rejected != nil {
			u.hooks.Rejected()
		}
		return false
	}
	u.codeReady = false
	u.show(OverlaySecret)
	return true
}

func (u *Unlock) show(o Overlay) {
	if u.visible[o] {
		return
	}
	u.visible[o] = true
	if u.hooks.Show != nil {
		u.hooks.Show(o)
	}
}

// Close hides overlay o.
func (u *Unlock) Close(o Overlay) { u.visible[o] = false }

func (u *Unlock) Visible(o Overlay) bool { return u.visible[o] }

// Modal reports whether any overlay is covering the chapter.
func (u *Unlock) Modal() bool { return u.visible[OverlayThanks] || u.visible[OverlaySecret] }

// Reset runs on chapter change: pending holds are cancelled and code entry
// closes. Overlays already shown stay until closed.
func (u *Unlock) Reset() {
	u.Release()
	u.codeReady = false
	u.code = u.code[:0]
}
