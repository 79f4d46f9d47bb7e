// Package term wraps platform terminal raw-mode control and dimension
// queries, carried forward from the teacher's tui/term.go wrapper around
// golang.org/x/term (spec.md §4.17, §6 "Environment").
package term

import (
	"os"

	xterm "golang.org/x/term"

	"github.com/gravitational/trace"
)

// State is the saved terminal mode restored on Restore.
type State struct {
	state *xterm.State
}

// EnableRaw puts f (normally os.Stdin) into raw mode and returns the prior
// state to restore later.
func EnableRaw(f *os.File) (*State, error) {
	oldState, err := xterm.MakeRaw(int(f.Fd()))
	if err != nil {
		return nil, trace.ConnectionProblem(err, "enable raw mode")
	}
	return &State{state: oldState}, nil
}

// Restore undoes EnableRaw. A nil State is a no-op, so teardown can call
// Restore unconditionally even when EnableRaw never succeeded.
func Restore(f *os.File, s *State) error {
	if s == nil || s.state == nil {
		return nil
	}
	if err := xterm.Restore(int(f.Fd()), s.state); err != nil {
		return trace.ConnectionProblem(err, "restore terminal mode")
	}
	return nil
}

// Size reads the current terminal dimensions, falling back to 80x24 when
// the query fails (no controlling terminal, redirected output).
func Size(f *os.File) (width, height int) {
	w, h, err := xterm.GetSize(int(f.Fd()))
	if err != nil {
		return 80, 24
	}
	return w, h
}

const (
	// EnterAltScreen / ExitAltScreen toggle the alternate screen buffer
	// (spec §6 "CSI ?47 h / l — save/restore screen").
	EnterAltScreen = "\x1b[?47h"
	ExitAltScreen  = "\x1b[?47l"

	// HideCursor / ShowCursor toggle cursor visibility (spec §6 "CSI ?25").
	HideCursor = "\x1b[?25l"
	ShowCursor = "\x1b[?25h"

	// EnableMouse / DisableMouse toggle xterm mouse reporting (spec §6
	// "CSI ?1003 h / l — all mouse events").
	EnableMouse  = "\x1b[?1003h"
	DisableMouse = "\x1b[?1003l"
)

// Teardown writes the sequences that undo every mode Setup enables and
// restores raw mode, in the order spec §5 describes: "disables mouse
// reporting, re-enables cursor, exits the alternate screen buffer,
// restores previous termios/console state".
func Teardown(out *os.File, in *os.File, saved *State) error {
	_, err := out.WriteString(DisableMouse + ShowCursor + ExitAltScreen)
	if restoreErr := Restore(in, saved); restoreErr != nil && err == nil {
		err = restoreErr
	}
	if err != nil {
		return trace.ConnectionProblem(err, "terminal teardown")
	}
	return nil
}

// Setup enters raw mode, the alternate screen buffer, hides the cursor,
// and enables mouse reporting if requested; it returns the saved state
// Teardown needs.
func Setup(out, in *os.File, enableMouse bool) (*State, error) {
	if err := selectUTF8CodePage(); err != nil {
		return nil, trace.ConnectionProblem(err, "select UTF-8 code page")
	}
	saved, err := EnableRaw(in)
	if err != nil {
		return nil, err
	}
	seq := EnterAltScreen + HideCursor
	if enableMouse {
		seq += EnableMouse
	}
	if _, err := out.WriteString(seq); err != nil {
		return saved, trace.ConnectionProblem(err, "terminal setup")
	}
	return saved, nil
}
