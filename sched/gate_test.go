package sched

import (
	"testing"
	"time"
)

func TestGateWaitReturnsImmediatelyWhenRunning(t *testing.T) {
	g := newGate()
	done := make(chan struct{})
	go func() {
		g.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Wait blocked on a fresh, unpaused gate")
	}
}

func TestGateWaitBlocksUntilResume(t *testing.T) {
	g := newGate()
	g.Pause()

	done := make(chan struct{})
	go func() {
		g.Wait()
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("Wait returned before Resume was called")
	case <-time.After(50 * time.Millisecond):
	}

	g.Resume()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Wait did not unblock after Resume")
	}
}

func TestGatePauseAndResumeAreIdempotent(t *testing.T) {
	g := newGate()
	g.Pause()
	g.Pause()
	g.Resume()
	g.Resume()

	done := make(chan struct{})
	go func() {
		g.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("expected gate to end up resumed after balanced pause/resume calls")
	}
}
