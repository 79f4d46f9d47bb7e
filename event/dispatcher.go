package event

import (
	"sort"

	"github.com/ember-tui/ggui/elem"
	"github.com/ember-tui/ggui/input"
)

// Dispatcher owns the registered Actions and the focus/hover cursor, and
// runs one cycle of spec §4.7 over a batch of Inputs.
type Dispatcher struct {
	Arena *elem.Arena
	Root  elem.Handle

	actions []Action
	focused elem.Handle
	hovered elem.Handle

	// Warn receives a message whenever a handler fails or raises, per
	// spec §7; nil disables reporting.
	Warn func(msg string, fields map[string]any)
}

// NewDispatcher returns a Dispatcher with nothing focused or hovered.
func NewDispatcher(arena *elem.Arena, root elem.Handle) *Dispatcher {
	return &Dispatcher{Arena: arena, Root: root, focused: elem.Invalid, hovered: elem.Invalid}
}

// Register appends a to the ordered action vector Tab cycling walks.
func (d *Dispatcher) Register(a Action) {
	d.actions = append(d.actions, a)
}

// Focused returns the currently focused host, or elem.Invalid.
func (d *Dispatcher) Focused() elem.Handle { return d.focused }

// Hovered returns the currently hovered host, or elem.Invalid.
func (d *Dispatcher) Hovered() elem.Handle { return d.hovered }

func (d *Dispatcher) warn(msg string, fields map[string]any) {
	if d.Warn != nil {
		d.Warn(msg, fields)
	}
}

// Dispatch runs one full cycle of spec §4.7 steps 1-6 over batch, which is
// cleared by the caller afterward (step 6 is a caller-side no-op here: the
// caller owns the queue's backing slice).
func (d *Dispatcher) Dispatch(batch []input.Input) {
	for _, in := range batch {
		d.hitTest(in)
	}

	for _, in := range batch {
		d.matchExact(in)
	}

	d.matchCompound(batch)

	for _, in := range batch {
		switch {
		case in.Criteria.Has(input.Tab):
			d.cycle(1)
		case in.Criteria.Has(input.ShiftTab):
			d.cycle(-1)
		case in.Criteria.Has(input.Escape):
			d.escape()
		}
	}
}

// hitTest implements step 1: elements containing the pointer become hover
// candidates; a ClickSelect Input promotes the topmost candidate to focus
// and clears hover.
func (d *Dispatcher) hitTest(in input.Input) {
	if !in.Criteria.Has(input.MouseLeft) && !in.Criteria.Has(input.MouseMotion) && !in.Criteria.Has(input.ClickSelect) {
		return
	}

	target := d.topmostAtHandle(d.Root, in.X, in.Y, elem.Invalid)
	if target == elem.Invalid {
		return
	}

	if in.Criteria.Has(input.ClickSelect) {
		d.setFocus(target)
		return
	}
	d.setHover(target)
}

// topmostAtHandle returns the highest-z descendant of h (or h itself)
// whose rectangle contains (x,y), walking depth-first so children
// composited later (therefore visually on top) win ties.
func (d *Dispatcher) topmostAtHandle(h elem.Handle, x, y int, best elem.Handle) elem.Handle {
	e := d.Arena.Get(h)
	if !e.Displayed() {
		return best
	}
	if e.Contains(x, y) {
		best = h
	}
	children := append([]elem.Handle(nil), e.Children()...)
	sort.SliceStable(children, func(i, j int) bool {
		return d.Arena.Get(children[i]).Style.Z < d.Arena.Get(children[j]).Style.Z
	})
	for _, ch := range children {
		best = d.topmostAtHandle(ch, x, y, best)
	}
	return best
}

func (d *Dispatcher) setFocus(target elem.Handle) {
	if d.focused != elem.Invalid && d.focused != target {
		d.Arena.Get(d.focused).SetFocused(false)
	}
	if d.hovered != elem.Invalid {
		d.Arena.Get(d.hovered).SetHovered(false)
		d.hovered = elem.Invalid
	}
	d.focused = target
	d.Arena.Get(target).SetFocused(true)
	d.propagate(target, true, false)
}

func (d *Dispatcher) setHover(target elem.Handle) {
	if d.hovered != elem.Invalid && d.hovered != target {
		d.Arena.Get(d.hovered).SetHovered(false)
	}
	d.hovered = target
	d.Arena.Get(target).SetHovered(true)
	d.propagate(target, false, true)
}

// propagate pushes the focus/hover style down onto target's descendants
// (spec §4.7: "all its descendants ... inherit the focus style"), visiting
// depth-first.
func (d *Dispatcher) propagate(target elem.Handle, focus, hover bool) {
	e := d.Arena.Get(target)
	for _, ch := range e.Children() {
		child := d.Arena.Get(ch)
		if focus {
			child.SetFocused(true)
		}
		if hover {
			child.SetHovered(true)
		}
		d.propagate(ch, focus, hover)
	}
}

func (d *Dispatcher) matchExact(in input.Input) {
	for _, a := range d.actions {
		if a.isCompound() {
			continue
		}
		if a.Criteria != in.Criteria {
			continue
		}
		d.invoke(a, in)
	}
}

// matchCompound implements step 3: a greedy walk of the batch collecting
// Inputs whose criteria are subsets of the remaining required bits; once
// satisfied the closure fires with the Input carrying the largest Data
// byte among those collected.
func (d *Dispatcher) matchCompound(batch []input.Input) {
	for _, a := range d.actions {
		if !a.isCompound() {
			continue
		}
		remaining := input.Criteria(0)
		for _, c := range a.Compound {
			remaining |= c
		}

		var best *input.Input
		for i := range batch {
			in := batch[i]
			if in.Criteria&^remaining != 0 {
				continue
			}
			remaining &^= in.Criteria
			if best == nil || in.Data > best.Data {
				best = &batch[i]
			}
			if remaining == 0 {
				break
			}
		}
		if remaining == 0 && best != nil {
			d.invoke(a, *best)
		}
	}
}

func (d *Dispatcher) invoke(a Action, in input.Input) {
	host := d.Arena.Get(a.Host)
	if !host.Displayed() {
		return
	}
	consumed, err := a.Fn(in)
	if err != nil {
		d.warn("event handler failed", map[string]any{"id": a.ID, "error": err.Error()})
	}
	_ = consumed
}

// cycle implements Tab (dir=1) / Shift+Tab (dir=-1): locate the focused
// (else hovered) element's position among the distinct Action hosts in
// registration order, advance and wrap.
func (d *Dispatcher) cycle(dir int) {
	hosts := d.focusableHosts()
	if len(hosts) == 0 {
		return
	}

	current := d.focused
	if current == elem.Invalid {
		current = d.hovered
	}

	idx := -1
	for i, h := range hosts {
		if h == current {
			idx = i
			break
		}
	}

	next := 0
	if idx >= 0 {
		next = ((idx+dir)%len(hosts) + len(hosts)) % len(hosts)
	}
	d.setFocus(hosts[next])
}

// focusableHosts returns the distinct Action.Host values, in first-seen
// registration order — the "linear Action-handler vector" spec §4.7 cycles
// over.
func (d *Dispatcher) focusableHosts() []elem.Handle {
	seen := make(map[elem.Handle]bool)
	var hosts []elem.Handle
	for _, a := range d.actions {
		if seen[a.Host] {
			continue
		}
		seen[a.Host] = true
		hosts = append(hosts, a.Host)
	}
	return hosts
}

// escape implements step 5: a focused element drops to hovered; a hovered
// element drops to nothing.
func (d *Dispatcher) escape() {
	if d.focused != elem.Invalid {
		h := d.focused
		d.Arena.Get(h).SetFocused(false)
		d.focused = elem.Invalid
		d.setHover(h)
		return
	}
	if d.hovered != elem.Invalid {
		d.Arena.Get(d.hovered).SetHovered(false)
		d.hovered = elem.Invalid
	}
}
