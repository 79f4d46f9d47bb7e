package style

import (
	"testing"

	"github.com/ember-tui/ggui/color"
	"github.com/ember-tui/ggui/stain"
)

func TestEmbedInstantThenDelayed(t *testing.T) {
	s := NewStyling()
	chain := Chain{}.
		Append(NewChildren([]Ref{"child-a"}, Value)).
		Append(NewWidth(Px(10), Value)).
		Append(NewBorderEnabled(true, Value))

	dirty := chain.Embed(s)

	if s.Width != 10 {
		t.Errorf("Width = %d, want 10", s.Width)
	}
	if !s.BorderEnabled {
		t.Errorf("BorderEnabled not applied")
	}
	if len(s.Children) != 1 || s.Children[0] != Ref("child-a") {
		t.Errorf("Children = %v", s.Children)
	}
	if !dirty.Is(stain.Stretch) || !dirty.Is(stain.Edge) || !dirty.Is(stain.Deep) {
		t.Errorf("dirty = %s, want Stretch|Edge|Deep", dirty)
	}
}

func TestHigherStatusWins(t *testing.T) {
	s := NewStyling()
	NewWidth(Px(5), Initialized).Imprint(s)
	NewWidth(Px(99), Uninitialized).Imprint(s) // should be ignored
	if s.Width != 5 {
		t.Errorf("lower-status write should not override, got Width=%d", s.Width)
	}
	NewWidth(Px(20), Value).Imprint(s) // higher status wins
	if s.Width != 20 {
		t.Errorf("higher-status write should override, got Width=%d", s.Width)
	}
}

func TestEqualStatusLaterWins(t *testing.T) {
	s := NewStyling()
	NewWidth(Px(5), Value).Imprint(s)
	NewWidth(Px(7), Value).Imprint(s)
	if s.Width != 7 {
		t.Errorf("equal-status later write should win, got Width=%d", s.Width)
	}
}

func TestColorAttrTargetsStateAndRole(t *testing.T) {
	s := NewStyling()
	NewColor(Hover, RoleBackground, color.RGB{R: 9}, Value).Imprint(s)
	if s.Colors[Hover].Background.R != 9 {
		t.Errorf("hover background not set: %+v", s.Colors[Hover])
	}
	if s.Colors[Normal].Background.R == 9 {
		t.Errorf("normal background should be untouched")
	}
}

func TestPercentResolveAgainstParent(t *testing.T) {
	v, nonInt := Pct(50).Resolve(21, 0)
	if v != 11 { // round(10.5) == 10 or 11 depending, but math.Round(10.5)=11
		t.Errorf("Resolve(50%% of 21) = %d, want 11 (rounded)", v)
	}
	if !nonInt {
		t.Errorf("50%% of 21 should be flagged non-integer")
	}
	v2, nonInt2 := Pct(50).Resolve(20, 0)
	if v2 != 10 || nonInt2 {
		t.Errorf("Resolve(50%% of 20) = %d, nonInteger=%v, want 10, false", v2, nonInt2)
	}
}

func TestClassTableResolveOrdersByID(t *testing.T) {
	table := NewClassTable()
	base := NewStyling()
	NewWidth(Px(10), Value).Imprint(base)
	override := NewStyling()
	NewWidth(Px(20), Value).Imprint(override)

	idBase := table.Add("base", base)
	idOverride := table.Add("override", override)

	target := NewStyling()
	table.Resolve(target, []int{idOverride, idBase}) // order shouldn't matter, ID order does
	if target.Width != 20 {
		t.Errorf("expected later-ID class (override) to win by ID order, got Width=%d", target.Width)
	}
}
