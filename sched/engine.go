// Package sched drives the three cooperating threads of spec.md §5 — a
// render goroutine, a passive goroutine (timers, file-watch polling,
// canvas animation), and an input goroutine — coordinated through
// channels rather than a raw mutex/condition pair, per spec §9's
// REDESIGN FLAGS.
package sched

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ember-tui/ggui/elem"
	"github.com/ember-tui/ggui/encode"
	"github.com/ember-tui/ggui/event"
	"github.com/ember-tui/ggui/input"
	"github.com/ember-tui/ggui/memory"
	"github.com/ember-tui/ggui/watch"
)

// Animator is anything the passive thread advances once per tick;
// canvas.TerminalCanvas satisfies it.
type Animator interface {
	Advance(globalTick int)
}

// Engine owns the render pipeline, the input dispatcher, the memory
// list, and the animators, and runs them across three goroutines per
// spec §5's thread layout.
type Engine struct {
	Arena      *elem.Arena
	Root       elem.Handle
	Pipeline   *elem.Pipeline
	Dispatcher *event.Dispatcher
	Memory     *memory.List
	Watcher    *watch.Watcher
	Animators  []Animator

	// Write emits one serialized frame (a single atomic write call per
	// spec §5: "A frame produced by the render thread is written
	// atomically").
	Write func(frame string) error
	// RawInput is the raw byte stream read by the translator; the input
	// goroutine never reads it directly, the translator goroutine does.
	RawInput <-chan byte
	Width    int
	WordWrap bool

	// Guard serializes the styling class table and the memory list, per
	// spec §5's explicit carve-out from the pause discipline.
	Guard Guard

	gate  *gate
	dirty chan elem.Handle
	tick  int64
}

// New returns an Engine ready for Run. Fields besides Arena/Root/Pipeline
// are left zero for the caller to fill in before calling Run.
func New(arena *elem.Arena, root elem.Handle, pipeline *elem.Pipeline) *Engine {
	return &Engine{
		Arena:    arena,
		Root:     root,
		Pipeline: pipeline,
		gate:     newGate(),
		dirty:    make(chan elem.Handle, 1),
	}
}

// PauseGGUI halts the render and passive threads at their next
// suspension point, and is the discipline under which the element tree
// may be safely mutated (spec §5: "Element tree: mutated only while GGUI
// is paused").
func (e *Engine) PauseGGUI() { e.gate.Pause() }

// ResumeGGUI releases threads blocked in PauseGGUI.
func (e *Engine) ResumeGGUI() { e.gate.Resume() }

// MarkDirty wakes the render thread for handle h. Render always walks
// the whole tree (the pipeline's own stain bits decide what changed);
// h is carried through for diagnostic purposes. Non-blocking: a render
// already pending coalesces additional wake-ups.
func (e *Engine) MarkDirty(h elem.Handle) {
	select {
	case e.dirty <- h:
	default:
	}
}

// Run starts the render, passive, and input goroutines and blocks until
// ctx is canceled, at which point all three exit at their next
// suspension point and Run returns ctx.Err().
func (e *Engine) Run(ctx context.Context) error {
	done := make(chan struct{})
	translated := make(chan input.Input, 64)

	var wg sync.WaitGroup
	wg.Add(3)
	go func() { defer wg.Done(); e.renderLoop(done) }()
	go func() { defer wg.Done(); e.passiveLoop(done) }()
	go func() { defer wg.Done(); e.inputLoop(done, translated) }()

	if e.RawInput != nil {
		go (input.Translator{}).Run(e.RawInput, translated, done)
	}

	e.MarkDirty(e.Root)

	<-ctx.Done()
	close(done)
	wg.Wait()
	return ctx.Err()
}

func (e *Engine) renderLoop(done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		case <-e.dirty:
		}
		e.gate.Wait()
		select {
		case <-done:
			return
		default:
		}

		var frame string
		e.Guard.Do(func() {
			buf := e.Pipeline.Render(e.Root)
			encode.Mark(buf, e.Width)
			frame = encode.Serialize(buf, e.Width, e.WordWrap)
		})
		if e.Write != nil {
			e.Write(frame)
		}
	}
}

func (e *Engine) passiveLoop(done <-chan struct{}) {
	sleep := memory.MinUpdateSpeed
	for {
		timer := time.NewTimer(sleep)
		select {
		case <-done:
			timer.Stop()
			return
		case <-timer.C:
		}

		e.gate.Wait()
		select {
		case <-done:
			return
		default:
		}

		var load float64
		e.Guard.Do(func() {
			if e.Memory != nil {
				load = e.Memory.Tick(time.Now())
			}
		})
		if e.Watcher != nil {
			e.Watcher.Poll()
		}

		gt := int(atomic.AddInt64(&e.tick, 1))
		for _, a := range e.Animators {
			a.Advance(gt)
		}

		e.MarkDirty(e.Root)
		sleep = memory.NextSleep(load)
	}
}

func (e *Engine) inputLoop(done <-chan struct{}, in <-chan input.Input) {
	for {
		var first input.Input
		var ok bool
		select {
		case <-done:
			return
		case first, ok = <-in:
			if !ok {
				return
			}
		}

		batch := []input.Input{first}
	drain:
		for {
			select {
			case next := <-in:
				batch = append(batch, next)
			default:
				break drain
			}
		}

		e.PauseGGUI()
		e.Guard.Do(func() {
			if e.Dispatcher != nil {
				e.Dispatcher.Dispatch(batch)
			}
		})
		e.MarkDirty(e.Root)
		e.ResumeGGUI()
	}
}
