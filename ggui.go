// Package ggui is the library's entry point (SPEC_FULL.md §4.18): it wires
// an element arena, a render pipeline, an event dispatcher, the memory and
// file-watch subsystems, and the three-goroutine scheduler (sched.Engine)
// behind one Config, and owns the platform terminal setup/teardown and
// signal handling spec.md §5/§6 describe.
package ggui

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ember-tui/ggui/elem"
	"github.com/ember-tui/ggui/event"
	"github.com/ember-tui/ggui/input"
	"github.com/ember-tui/ggui/internal/term"
	"github.com/ember-tui/ggui/memory"
	"github.com/ember-tui/ggui/sched"
	"github.com/ember-tui/ggui/style"
	"github.com/ember-tui/ggui/watch"
)

// Config configures one Engine. The zero value is usable: Out/In default
// to os.Stdout/os.Stdin, ThreadTimeout to 16 ms and Logger to a logrus
// logger on os.Stderr; mouse reporting stays off unless EnableMouse is set.
type Config struct {
	Out *os.File // defaults to os.Stdout
	In  *os.File // defaults to os.Stdin

	// Width/Height override the terminal-queried viewport; zero means
	// "query the terminal" (internal/term.Size).
	Width, Height int

	// EnableMouse requests xterm mouse reporting (CSI ?1003h) during
	// Setup; spec.md §6.
	EnableMouse bool

	// WordWrap controls whether the frame emitter concatenates rows
	// directly or separates them with a newline (spec.md §4.5).
	WordWrap bool

	// ThreadTimeout is stored on the Engine's Config, defaulting to a
	// frame's worth of milliseconds (16 ms) when zero. The scheduler does
	// not read it: no render, passive or input wait is bounded by it.
	ThreadTimeout time.Duration

	// Logger receives structured diagnostics for every non-fatal error
	// kind in spec §7. A nil Logger gets a default logrus.Logger writing
	// to Out's stderr-equivalent (os.Stderr), since Out itself is
	// reserved for frame data.
	Logger *logrus.Logger

	// Headless skips the raw-mode/alt-screen/mouse-reporting terminal
	// handshake (internal/term.Setup) and SIGWINCH handling. Out/In are
	// still driven as an ordinary file — this is for running the engine
	// against a file, pipe, or test double that isn't a real tty.
	Headless bool
}

func (c *Config) setDefaults() {
	if c.Out == nil {
		c.Out = os.Stdout
	}
	if c.In == nil {
		c.In = os.Stdin
	}
	if c.ThreadTimeout <= 0 {
		c.ThreadTimeout = 16 * time.Millisecond
	}
	if c.Logger == nil {
		c.Logger = logrus.New()
		c.Logger.SetOutput(os.Stderr)
	}
}

// Engine is the running application: the element tree, the scheduler, and
// the platform resources New acquired. Root returns the handle the host
// builds its widget tree under.
type Engine struct {
	cfg Config

	Arena      *elem.Arena
	root       elem.Handle
	Pipeline   *elem.Pipeline
	Dispatcher *event.Dispatcher
	Memory     *memory.List
	Watcher    *watch.Watcher
	Classes    *style.ClassTable
	Errors     *ErrorLogger

	sched *sched.Engine
	saved *term.State
}

// New builds an Engine, puts the terminal into raw/alt-screen mode unless
// cfg.Headless is set, and returns it ready for Run. Engine has no Close
// method: the terminal is restored when Run returns, per spec §5
// "Shutdown restores terminal modes".
func New(cfg Config) (*Engine, error) {
	cfg.setDefaults()

	width, height := cfg.Width, cfg.Height
	if width == 0 || height == 0 {
		width, height = term.Size(cfg.Out)
	}

	var saved *term.State
	if !cfg.Headless {
		var err error
		saved, err = term.Setup(cfg.Out, cfg.In, cfg.EnableMouse)
		if err != nil {
			cfg.Logger.WithError(err).Error("terminal setup failed")
			return nil, err
		}
	}

	arena := elem.NewArena()
	root := arena.New()
	classes := style.NewClassTable()
	rootEl := arena.Get(root)
	rootEl.ApplyChain(style.Chain{}.
		Append(style.NewWidth(style.Px(width), style.Value)).
		Append(style.NewHeight(style.Px(height), style.Value)),
	)

	mem := &memory.List{}
	errLogger := newErrorLogger(arena, root, mem, cfg.Logger)

	pipeline := &elem.Pipeline{
		Arena:    arena,
		Classes:  classes,
		Viewport: elem.Viewport{Width: width, Height: height},
		Warn: func(msg string, fields map[string]any) {
			errLogger.Report(logrus.WarnLevel, msg, fields)
		},
	}

	dispatcher := event.NewDispatcher(arena, root)
	dispatcher.Warn = func(msg string, fields map[string]any) {
		errLogger.Report(logrus.ErrorLevel, msg, fields)
	}

	watcher, err := watch.New()
	if err != nil {
		cfg.Logger.WithError(err).Warn("file watcher unavailable")
	}

	e := &Engine{
		cfg:        cfg,
		Arena:      arena,
		root:       root,
		Pipeline:   pipeline,
		Dispatcher: dispatcher,
		Memory:     mem,
		Watcher:    watcher,
		Classes:    classes,
		Errors:     errLogger,
		saved:      saved,
	}

	eng := sched.New(arena, root, pipeline)
	eng.Dispatcher = dispatcher
	eng.Memory = mem
	eng.Watcher = watcher
	eng.Width = width
	eng.WordWrap = cfg.WordWrap
	eng.Write = func(frame string) error {
		_, err := io.WriteString(cfg.Out, frame)
		return err
	}
	eng.RawInput = readBytes(cfg.In)
	e.sched = eng

	return e, nil
}

// Root returns the handle of the root element, the one the host builds
// its widget tree under (spec.md §6 "the host program gives the root
// element").
func (e *Engine) Root() elem.Handle { return e.root }

// MarkDirty wakes the render goroutine to re-run the pipeline.
func (e *Engine) MarkDirty() { e.sched.MarkDirty(e.root) }

// AddAnimator registers a per-tick animator (canvas.TerminalCanvas
// satisfies sched.Animator) to be advanced once per passive-thread cycle,
// spec.md §4.8.
func (e *Engine) AddAnimator(a sched.Animator) {
	e.sched.Animators = append(e.sched.Animators, a)
}

// PauseGGUI/ResumeGGUI bracket element-tree mutation outside a dispatched
// event handler, per spec §5's pause discipline.
func (e *Engine) PauseGGUI()  { e.sched.PauseGGUI() }
func (e *Engine) ResumeGGUI() { e.sched.ResumeGGUI() }

// Run starts the three goroutines and blocks until ctx is canceled or a
// terminating signal (SIGINT, SIGTERM) arrives, then tears down the
// terminal and returns. It never returns a non-nil error for an ordinary
// signal-driven shutdown; ctx.Err() is returned for caller-driven
// cancellation.
func (e *Engine) Run(ctx context.Context) error {
	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !e.cfg.Headless {
		resize := newResizeWatcher(e.cfg.Out, e.Pipeline, e.root, e.MarkDirty)
		defer resize.Close()
	}

	err := e.sched.Run(sigCtx)
	if ctx.Err() == nil {
		// sigCtx ended because of a signal, not a caller cancellation.
		err = nil
	}

	if !e.cfg.Headless {
		if tErr := term.Teardown(e.cfg.Out, e.cfg.In, e.saved); tErr != nil {
			e.cfg.Logger.WithError(tErr).Error("terminal teardown failed")
		}
	}
	if e.Watcher != nil {
		e.Watcher.Close()
	}
	return err
}

// readBytes adapts an *os.File to the <-chan byte sched.Engine's input
// goroutine expects, so the translator never blocks the scheduler's other
// goroutines on a raw file read (spec §5 suspension point (c): "the input
// thread's blocking read").
func readBytes(f *os.File) <-chan byte {
	ch := make(chan byte, 256)
	go func() {
		defer close(ch)
		buf := make([]byte, 256)
		for {
			n, err := f.Read(buf)
			for i := 0; i < n; i++ {
				ch <- buf[i]
			}
			if err != nil {
				return
			}
		}
	}()
	return ch
}
