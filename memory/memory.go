// Package memory implements the timer ("memory") subsystem the passive
// scheduler thread drives every cycle (spec.md §4.9): coalescing,
// firing, and the adaptive load factor that sizes the next sleep.
package memory

import (
	"reflect"
	"time"
)

// Job is a scheduled one-shot or repeating unit of work. Two jobs with
// Prolong set and pointer-equal Fn are coalesced into one (spec §4.9 step
// 1); Retrigger controls whether a fired job resets instead of being
// removed.
type Job struct {
	ID        string
	Start     time.Time
	Duration  time.Duration
	Fn        func() (bool, error)
	Prolong   bool
	Retrigger bool
}

// MinUpdateSpeed and MaxUpdateSpeed bound the passive thread's adaptive
// sleep interval (spec §5).
const (
	MinUpdateSpeed = 16 * time.Millisecond
	MaxUpdateSpeed = time.Second
)

// List is the guarded collection of live Jobs (spec §5: "styling class
// table and memory list ... guarded by scoped locks"). List itself holds
// no lock — sched.Guard serializes access, matching the teacher's pattern
// of a plain slice protected by an external scoped lock rather than a
// self-synchronizing type.
type List struct {
	jobs []Job

	// Warn receives a message when a job's closure returns an error
	// (spec §7: handler failures are logged, the job stays registered);
	// nil disables reporting.
	Warn func(msg string, fields map[string]any)
}

// Add registers job.
func (l *List) Add(job Job) {
	l.jobs = append(l.jobs, job)
}

// Len reports how many jobs are currently live.
func (l *List) Len() int { return len(l.jobs) }

func (l *List) warn(msg string, fields map[string]any) {
	if l.Warn != nil {
		l.Warn(msg, fields)
	}
}

// sameClosure reports whether two job closures are the coalescing
// equivalence spec §4.9 calls "compare equal" — Go closures aren't
// comparable with ==, so this compares the underlying function pointer,
// which is stable for a given closure value across coalescing calls.
func sameClosure(a, b func() (bool, error)) bool {
	return reflect.ValueOf(a).Pointer() == reflect.ValueOf(b).Pointer()
}

// coalesce merges prolong-flagged jobs whose closures compare equal,
// keeping the one with the later start time (spec §4.9 step 1).
func (l *List) coalesce() {
	kept := l.jobs[:0]
	for i, job := range l.jobs {
		if !job.Prolong {
			kept = append(kept, job)
			continue
		}
		dup := false
		for j := range kept {
			if !kept[j].Prolong || !sameClosure(kept[j].Fn, job.Fn) {
				continue
			}
			if job.Start.After(kept[j].Start) {
				kept[j] = job
			}
			dup = true
			break
		}
		if !dup {
			kept = append(kept, l.jobs[i])
		}
	}
	l.jobs = kept
}

// Tick runs one passive-scheduler cycle: coalesce, fire-or-retrigger, and
// returns the load factor in [0,1] the next sleep interval should scale
// by (spec §4.9 step 3).
func (l *List) Tick(now time.Time) (load float64) {
	l.coalesce()

	var live []Job
	for _, job := range l.jobs {
		if now.Sub(job.Start) >= job.Duration {
			ok, err := safeInvoke(job.Fn)
			if err != nil {
				l.warn("timer job failed", map[string]any{"id": job.ID, "error": err.Error()})
				live = append(live, job)
				continue
			}
			if job.Retrigger {
				job.Start = now
				live = append(live, job)
				continue
			}
			if !ok {
				live = append(live, job)
			}
			continue
		}
		live = append(live, job)
	}
	l.jobs = live

	return l.loadFactor(now)
}

func safeInvoke(fn func() (bool, error)) (ok bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			ok, err = false, panicError{r}
		}
	}()
	return fn()
}

type panicError struct{ v any }

func (p panicError) Error() string { return "timer job panicked" }

// loadFactor finds the nearest upcoming deadline and maps it to [0,1]: 1
// when something is due immediately, 0 when nothing is due within
// MaxUpdateSpeed (spec §4.9 step 3).
func (l *List) loadFactor(now time.Time) float64 {
	if len(l.jobs) == 0 {
		return 0
	}
	nearest := MaxUpdateSpeed
	for _, job := range l.jobs {
		remaining := job.Duration - now.Sub(job.Start)
		if remaining < 0 {
			remaining = 0
		}
		if remaining < nearest {
			nearest = remaining
		}
	}
	if nearest >= MaxUpdateSpeed {
		return 0
	}
	if nearest <= 0 {
		return 1
	}
	return 1 - float64(nearest)/float64(MaxUpdateSpeed)
}

// NextSleep interpolates between MinUpdateSpeed and MaxUpdateSpeed by
// load, load=1 sleeping the minimum and load=0 sleeping the maximum.
func NextSleep(load float64) time.Duration {
	if load < 0 {
		load = 0
	}
	if load > 1 {
		load = 1
	}
	span := MaxUpdateSpeed - MinUpdateSpeed
	return MaxUpdateSpeed - time.Duration(float64(span)*load)
}
