package sched

import "sync"

// gate replaces the condition-variable pause/resume pair of spec.md §5
// with a channel that is closed while running and swapped for a fresh,
// unclosed channel while paused (spec §9 REDESIGN FLAGS: "replace
// condition-variable-with-mutex pause/resume with explicit channels").
// Waiting on a closed channel never blocks; waiting on the fresh one
// blocks until the next Resume closes it.
type gate struct {
	mu sync.Mutex
	ch chan struct{}
}

func newGate() *gate {
	g := &gate{ch: make(chan struct{})}
	close(g.ch)
	return g
}

// Pause swaps in a fresh, open channel so the next Wait blocks. Idempotent.
func (g *gate) Pause() {
	g.mu.Lock()
	defer g.mu.Unlock()
	select {
	case <-g.ch:
		g.ch = make(chan struct{})
	default:
	}
}

// Resume closes the current channel, releasing every blocked Wait.
// Idempotent.
func (g *gate) Resume() {
	g.mu.Lock()
	defer g.mu.Unlock()
	select {
	case <-g.ch:
	default:
		close(g.ch)
	}
}

// Wait blocks while paused and returns immediately while running.
func (g *gate) Wait() {
	g.mu.Lock()
	ch := g.ch
	g.mu.Unlock()
	<-ch
}
