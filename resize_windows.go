//go:build windows

package ggui

import (
	"os"

	"github.com/ember-tui/ggui/elem"
)

// resizeWatcher is a no-op on Windows: there is no SIGWINCH, and the
// window-buffer-size console event spec.md §6 mentions needs a console
// event loop this module doesn't own. Width/height are still re-queried
// whenever New is called.
type resizeWatcher struct{}

func newResizeWatcher(out *os.File, pipeline *elem.Pipeline, root elem.Handle, markDirty func()) *resizeWatcher {
	return &resizeWatcher{}
}

func (rw *resizeWatcher) Close() {}
