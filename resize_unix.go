//go:build !windows

package ggui

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/ember-tui/ggui/elem"
	"github.com/ember-tui/ggui/internal/term"
	"github.com/ember-tui/ggui/style"
)

// resizeWatcher re-reads terminal dimensions on SIGWINCH and updates the
// pipeline's viewport, per spec.md §6: "the library ... re-reads on a
// platform resize notification (SIGWINCH or Windows window-buffer-size
// event)".
type resizeWatcher struct {
	sigCh chan os.Signal
	done  chan struct{}
}

func newResizeWatcher(out *os.File, pipeline *elem.Pipeline, root elem.Handle, markDirty func()) *resizeWatcher {
	rw := &resizeWatcher{
		sigCh: make(chan os.Signal, 1),
		done:  make(chan struct{}),
	}
	signal.Notify(rw.sigCh, syscall.SIGWINCH)

	go func() {
		for {
			select {
			case <-rw.done:
				return
			case <-rw.sigCh:
				w, h := term.Size(out)
				pipeline.Viewport = elem.Viewport{Width: w, Height: h}
				rootEl := pipeline.Arena.Get(root)
				rootEl.ApplyChain(style.Chain{}.
					Append(style.NewWidth(style.Px(w), style.Value)).
					Append(style.NewHeight(style.Px(h), style.Value)),
				)
				markDirty()
			}
		}
	}()
	return rw
}

func (rw *resizeWatcher) Close() {
	signal.Stop(rw.sigCh)
	close(rw.done)
}
