package ggui

import (
	"context"
	"os"
	"testing"
	"time"
)

// newTestEngine builds a Headless Engine against pipe-backed files instead
// of a real tty, so New skips the raw-mode/alt-screen setup that cannot run
// against a pipe in a test process.
func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	outR, outW, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	t.Cleanup(func() { outR.Close(); outW.Close() })

	inR, inW, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	t.Cleanup(func() { inR.Close(); inW.Close() })

	e, err := New(Config{Out: outW, In: inR, Width: 10, Height: 4, Headless: true})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return e
}

func TestNewBuildsRootAtConfiguredSize(t *testing.T) {
	e := newTestEngine(t)
	root := e.Arena.Get(e.Root())
	if root.Style.Width != 10 || root.Style.Height != 4 {
		t.Errorf("root size = %v x %v, want 10x4", root.Style.Width, root.Style.Height)
	}
}

func TestErrorLoggerCoalescesRepeats(t *testing.T) {
	e := newTestEngine(t)

	e.Pipeline.Warn("disk full", map[string]any{"op": "write"})
	e.Pipeline.Warn("disk full", map[string]any{"op": "write"})
	e.Pipeline.Warn("disk full", map[string]any{"op": "write"})

	logEl := e.Arena.Get(e.Errors.handle)
	if logEl.Style.Text != "disk full (x3)" {
		t.Errorf("error console text = %q, want coalesced repeat count", logEl.Style.Text)
	}
	if !logEl.Style.Display {
		t.Errorf("error console should be shown after a report")
	}
}

func TestErrorLoggerDismissReplacesMessage(t *testing.T) {
	e := newTestEngine(t)
	e.Pipeline.Warn("first", nil)
	e.Errors.dismiss()
	e.Pipeline.Warn("second", nil)

	logEl := e.Arena.Get(e.Errors.handle)
	if logEl.Style.Text != "second" {
		t.Errorf("error console text = %q, want %q", logEl.Style.Text, "second")
	}
}

func TestRunExitsOnContextCancel(t *testing.T) {
	e := newTestEngine(t)

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- e.Run(ctx) }()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after context cancellation")
	}
}
