package event

import (
	"testing"

	"github.com/ember-tui/ggui/elem"
	"github.com/ember-tui/ggui/input"
	"github.com/ember-tui/ggui/style"
)

func newButton(a *elem.Arena, parent elem.Handle, name string) elem.Handle {
	h := a.New()
	e := a.Get(h)
	e.Style.Name = name
	e.Style.Display = true
	a.Get(parent).AddChild(e)
	return h
}

func setupRoot(a *elem.Arena) elem.Handle {
	root := a.New()
	a.Get(root).Style.Display = true
	return root
}

func TestTabCyclingVisitsEveryHostOnce(t *testing.T) {
	a := elem.NewArena()
	root := setupRoot(a)
	btnA := newButton(a, root, "A")
	btnB := newButton(a, root, "B")
	btnC := newButton(a, root, "C")

	d := NewDispatcher(a, root)
	d.Register(Action{ID: "a", Host: btnA, Criteria: input.KeyPress, Fn: func(input.Input) (bool, error) { return true, nil }})
	d.Register(Action{ID: "b", Host: btnB, Criteria: input.KeyPress, Fn: func(input.Input) (bool, error) { return true, nil }})
	d.Register(Action{ID: "c", Host: btnC, Criteria: input.KeyPress, Fn: func(input.Input) (bool, error) { return true, nil }})

	order := []elem.Handle{btnA, btnB, btnC, btnA}
	for i, want := range order {
		d.Dispatch([]input.Input{{Criteria: input.Tab}})
		if d.Focused() != want {
			t.Fatalf("tab %d: got focus %v, want %v", i, d.Focused(), want)
		}
	}

	d.Dispatch([]input.Input{{Criteria: input.ShiftTab | input.Shift}})
	if d.Focused() != btnC {
		t.Errorf("shift+tab from A: got %v, want C (%v)", d.Focused(), btnC)
	}
}

func TestMouseClickSelectsAndClearsHover(t *testing.T) {
	a := elem.NewArena()
	root := setupRoot(a)
	btn := newButton(a, root, "B")

	pipeline := &elem.Pipeline{Arena: a, Classes: style.NewClassTable(), Viewport: elem.Viewport{Width: 20, Height: 10}}
	pipeline.Render(root)

	e := a.Get(btn)
	clicks := 0
	d := NewDispatcher(a, root)
	d.Register(Action{ID: "click", Host: btn, Criteria: input.MouseLeft | input.ClickSelect, Fn: func(input.Input) (bool, error) {
		clicks++
		return true, nil
	}})

	x, y, _, _ := e.Rect()
	d.Dispatch([]input.Input{{Criteria: input.MouseLeft | input.ClickSelect, X: x, Y: y}})

	if d.Focused() != btn {
		t.Errorf("expected button to gain focus, got %v", d.Focused())
	}
	if d.Hovered() != elem.Invalid {
		t.Errorf("expected hover cleared after focus, got %v", d.Hovered())
	}
	if clicks != 1 {
		t.Errorf("expected click handler to fire exactly once, fired %d times", clicks)
	}
}

func TestEscapeFromFocusedDropsToHoveredThenNothing(t *testing.T) {
	a := elem.NewArena()
	root := setupRoot(a)
	btn := newButton(a, root, "B")

	d := NewDispatcher(a, root)
	d.Register(Action{ID: "b", Host: btn, Criteria: input.KeyPress, Fn: func(input.Input) (bool, error) { return true, nil }})
	d.Dispatch([]input.Input{{Criteria: input.Tab}})
	if d.Focused() != btn {
		t.Fatalf("setup: expected focus on button")
	}

	d.Dispatch([]input.Input{{Criteria: input.Escape}})
	if d.Focused() != elem.Invalid || d.Hovered() != btn {
		t.Errorf("expected focus dropped to hover: focused=%v hovered=%v", d.Focused(), d.Hovered())
	}

	d.Dispatch([]input.Input{{Criteria: input.Escape}})
	if d.Hovered() != elem.Invalid {
		t.Errorf("expected hover cleared, got %v", d.Hovered())
	}
}

func TestCompoundCriteriaFiresWithLargestDataByte(t *testing.T) {
	a := elem.NewArena()
	root := setupRoot(a)
	btn := newButton(a, root, "B")

	var gotData byte
	d := NewDispatcher(a, root)
	d.Register(Action{
		ID:       "combo",
		Host:     btn,
		Compound: []input.Criteria{input.Control, input.Shift},
		Fn: func(in input.Input) (bool, error) {
			gotData = in.Data
			return true, nil
		},
	})

	d.Dispatch([]input.Input{
		{Criteria: input.Control, Data: 'a'},
		{Criteria: input.Shift, Data: 'z'},
	})

	if gotData != 'z' {
		t.Errorf("expected handler to fire with the largest data byte 'z', got %q", gotData)
	}
}
