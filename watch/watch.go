// Package watch implements the file-stream watcher component of
// spec.md §2: it watches user-given paths and notifies registered
// handlers on write events, falling back to stat-based polling for paths
// fsnotify can't watch.
package watch

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gravitational/trace"
)

// Watcher wraps an fsnotify.Watcher and a stat-based polling fallback.
// Handlers for fsnotify-watched paths run on the Watcher's own event
// goroutine and are not gated by the engine's pause/resume; only handlers
// for polled paths run on the passive thread's tick, through Poll.
type Watcher struct {
	mu       sync.Mutex
	fs       *fsnotify.Watcher
	handlers map[string]func()
	polled   map[string]polledFile

	// Warn receives a message on an open/watch I/O failure (spec §7:
	// "I/O failures ... logged; the component degrades to no-op"); nil
	// disables reporting.
	Warn func(msg string, fields map[string]any)
}

type polledFile struct {
	modTime time.Time
	fn      func()
}

// New opens the underlying fsnotify watcher. A nil *Watcher with a
// non-nil error means file watching degrades to a no-op, per spec §7.
func New() (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, trace.ConnectionProblem(err, "open file watcher")
	}
	w := &Watcher{fs: fs, handlers: make(map[string]func()), polled: make(map[string]polledFile)}
	go w.loop()
	return w, nil
}

func (w *Watcher) warn(msg string, fields map[string]any) {
	if w.Warn != nil {
		w.Warn(msg, fields)
	}
}

// Watch registers onChange to run whenever path is written. If fsnotify
// cannot watch path (e.g. a virtual or network filesystem), it is added
// to the stat-based polling fallback instead of failing the call.
func (w *Watcher) Watch(path string, onChange func()) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.fs.Add(path); err != nil {
		w.warn("fsnotify could not watch path, falling back to polling", map[string]any{"path": path, "error": err.Error()})
		info, statErr := os.Stat(path)
		mod := time.Time{}
		if statErr == nil {
			mod = info.ModTime()
		}
		w.polled[path] = polledFile{modTime: mod, fn: onChange}
		return nil
	}
	w.handlers[path] = onChange
	return nil
}

func (w *Watcher) loop() {
	for {
		select {
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			w.mu.Lock()
			fn := w.handlers[ev.Name]
			w.mu.Unlock()
			if fn != nil {
				fn()
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.warn("file watcher error", map[string]any{"error": err.Error()})
		}
	}
}

// Poll checks every path registered via the stat-based fallback and fires
// its handler if the modification time advanced. Called from the passive
// scheduler's tick alongside memory.List.Tick.
func (w *Watcher) Poll() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for path, pf := range w.polled {
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		if info.ModTime().After(pf.modTime) {
			pf.modTime = info.ModTime()
			w.polled[path] = pf
			pf.fn()
		}
	}
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	return w.fs.Close()
}

// stdoutCapture redirects os.Stdout through a pipe so writes can be
// observed, restoring the original file descriptor on Restore.
type stdoutCapture struct {
	orig   *os.File
	writer *os.File
	reader *os.File
}

// CaptureStdout implements the "or captures standard output" half of
// spec §2's file-stream watcher row: onWrite is invoked with each chunk
// written to stdout until the returned restore func runs.
func CaptureStdout(onWrite func(p []byte)) (restore func(), err error) {
	r, w, err := os.Pipe()
	if err != nil {
		return nil, trace.ConnectionProblem(err, "capture stdout")
	}
	orig := os.Stdout
	os.Stdout = w

	done := make(chan struct{})
	go func() {
		defer close(done)
		buf := make([]byte, 4096)
		for {
			n, readErr := r.Read(buf)
			if n > 0 {
				onWrite(buf[:n])
			}
			if readErr != nil {
				if readErr != io.EOF {
					break
				}
				return
			}
		}
	}()

	return func() {
		os.Stdout = orig
		w.Close()
		<-done
		r.Close()
	}, nil
}
