package ui

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/DaanHessen/moonlit/internal/audio"
	"github.com/DaanHessen/moonlit/internal/clock"
	"github.com/DaanHessen/moonlit/internal/util"
)

// bridge forwards messages from timer and audio goroutines into the
// program. Messages sent before the program exists are queued.
type bridge struct {
	mu      sync.Mutex
	program *tea.Program
	queued  []tea.Msg
}

func (b *bridge) send(msg tea.Msg) {
	b.mu.Lock()
	p := b.program
	if p == nil {
		b.queued = append(b.queued, msg)
		b.mu.Unlock()
		return
	}
	b.mu.Unlock()
	// Send blocks until the program reads; the audio goroutine must not wait.
	go p.Send(msg)
}

func (b *bridge) attach(p *tea.Program) {
	b.mu.Lock()
	b.program = p
	queued := b.queued
	b.queued = nil
	b.mu.Unlock()
	for _, msg := range queued {
		go p.Send(msg)
	}
}

// Run boots the TUI program and blocks until it exits. out may be nil when
// audio is disabled.
func Run(ctx context.Context, cfg util.Config, out *audio.Output, version string) error {
	br := &bridge{}
	loop := clock.NewLoop(func(f clock.Fired) { br.send(f) })
	m := newModel(cfg, loop, out, br.send, version)
	program := tea.NewProgram(m, tea.WithContext(ctx), tea.WithMouseCellMotion())
	br.attach(program)
	_, err := program.Run()
	m.close()
	return err
}
