package memory

import (
	"testing"
	"time"
)

func closure() (bool, error) { return true, nil }

func TestCoalesceKeepsLaterStartTime(t *testing.T) {
	l := &List{}
	t0 := time.Unix(0, 0)
	l.Add(Job{ID: "first", Start: t0, Duration: 500 * time.Millisecond, Fn: closure, Prolong: true})
	l.Add(Job{ID: "second", Start: t0.Add(100 * time.Millisecond), Duration: 500 * time.Millisecond, Fn: closure, Prolong: true})

	l.Tick(t0.Add(50 * time.Millisecond))

	if l.Len() != 1 {
		t.Fatalf("expected one surviving job after coalescing, got %d", l.Len())
	}
	if !l.jobs[0].Start.Equal(t0.Add(100 * time.Millisecond)) {
		t.Errorf("expected the later start time to win, got %v", l.jobs[0].Start)
	}
}

func TestJobFiresAndIsRemovedWithoutRetrigger(t *testing.T) {
	l := &List{}
	fired := false
	t0 := time.Unix(0, 0)
	l.Add(Job{ID: "once", Start: t0, Duration: 10 * time.Millisecond, Fn: func() (bool, error) {
		fired = true
		return true, nil
	}})

	l.Tick(t0.Add(20 * time.Millisecond))

	if !fired {
		t.Fatalf("expected job to fire")
	}
	if l.Len() != 0 {
		t.Errorf("expected the fired job to be removed, got %d remaining", l.Len())
	}
}

func TestRetriggerResetsStartTimeAndStays(t *testing.T) {
	l := &List{}
	t0 := time.Unix(0, 0)
	fireCount := 0
	l.Add(Job{ID: "repeat", Start: t0, Duration: 10 * time.Millisecond, Retrigger: true, Fn: func() (bool, error) {
		fireCount++
		return true, nil
	}})

	l.Tick(t0.Add(20 * time.Millisecond))
	if l.Len() != 1 {
		t.Fatalf("expected retriggering job to stay registered, got %d", l.Len())
	}

	next := l.jobs[0].Start
	l.Tick(next.Add(5 * time.Millisecond))
	if fireCount != 1 {
		t.Errorf("expected no second fire before duration elapses again, got %d fires", fireCount)
	}

	l.Tick(next.Add(15 * time.Millisecond))
	if fireCount != 2 {
		t.Errorf("expected a second fire at least Duration after the reset start, got %d fires", fireCount)
	}
}

func TestJobThatReturnsFalseStaysRegistered(t *testing.T) {
	l := &List{}
	t0 := time.Unix(0, 0)
	l.Add(Job{ID: "pending", Start: t0, Duration: 10 * time.Millisecond, Fn: func() (bool, error) { return false, nil }})
	l.Tick(t0.Add(20 * time.Millisecond))
	if l.Len() != 1 {
		t.Errorf("expected job returning false to remain registered, got %d", l.Len())
	}
}

func TestLoadFactorIsOneWhenDeadlineIsNow(t *testing.T) {
	l := &List{}
	t0 := time.Unix(0, 0)
	l.Add(Job{ID: "due", Start: t0, Duration: 10 * time.Millisecond, Fn: func() (bool, error) { return false, nil }})
	load := l.Tick(t0.Add(10 * time.Millisecond))
	if load != 1 {
		t.Errorf("expected load factor 1 for an immediately-due job, got %v", load)
	}
}

func TestLoadFactorIsZeroWithNoJobs(t *testing.T) {
	l := &List{}
	if load := l.Tick(time.Unix(0, 0)); load != 0 {
		t.Errorf("expected load factor 0 with no jobs, got %v", load)
	}
}

func TestNextSleepInterpolatesBetweenMinAndMax(t *testing.T) {
	if got := NextSleep(1); got != MinUpdateSpeed {
		t.Errorf("load 1 should sleep the minimum, got %v", got)
	}
	if got := NextSleep(0); got != MaxUpdateSpeed {
		t.Errorf("load 0 should sleep the maximum, got %v", got)
	}
}
