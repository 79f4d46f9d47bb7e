// Package event implements the action registry and the dispatch pipeline
// of spec.md §4.7: hover/focus selection, criteria matching (single and
// compound), Tab/Shift+Tab cycling, and Escape unwinding.
package event

import (
	"github.com/ember-tui/ggui/elem"
	"github.com/ember-tui/ggui/input"
)

// Handler is an event-handler closure. It returns whether it consumed the
// Input and an error; per spec §7 a non-nil error is logged with the
// handler's id and the handler stays registered (not torn down).
type Handler func(in input.Input) (consumed bool, err error)

// Action anchors a Handler to a host element and a criteria match, either
// exact (single Criteria value) or compound (Compound non-empty, matched
// greedily across several Inputs in arrival order — spec §4.7 step 3).
type Action struct {
	ID       string
	Host     elem.Handle
	Criteria input.Criteria
	Compound []input.Criteria
	Fn       Handler
}

// isCompound reports whether a requires the greedy multi-Input match.
func (a Action) isCompound() bool { return len(a.Compound) > 0 }
