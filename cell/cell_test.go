package cell

import (
	"testing"

	"github.com/ember-tui/ggui/color"
)

func TestNewASCIIClearsUnicodeFlag(t *testing.T) {
	c := New('a', color.RGBA{}, color.RGBA{})
	if c.Flags.Has(IsUnicode) {
		t.Errorf("ASCII cell should not carry IsUnicode")
	}
}

func TestNewUnicodeSetsFlag(t *testing.T) {
	c := New('界', color.RGBA{}, color.RGBA{})
	if !c.Flags.Has(IsUnicode) {
		t.Errorf("non-ASCII cell should carry IsUnicode")
	}
}

func TestSameColor(t *testing.T) {
	fg := color.RGBA{R: 1, A: 255}
	bg := color.RGBA{B: 2, A: 255}
	a := New('a', fg, bg)
	b := New('b', fg, bg)
	if !SameColor(a, b) {
		t.Errorf("cells with identical fg/bg should be SameColor")
	}
	c := New('c', color.RGBA{R: 9, A: 255}, bg)
	if SameColor(a, c) {
		t.Errorf("cells with different fg should not be SameColor")
	}
}

func TestGraphemesSplitsClusters(t *testing.T) {
	cells := Graphemes("ab", color.RGBA{}, color.RGBA{})
	if len(cells) != 2 {
		t.Fatalf("Graphemes(ab) = %d cells, want 2", len(cells))
	}
	if cells[0].Glyph != "a" || cells[1].Glyph != "b" {
		t.Errorf("Graphemes(ab) = %+v", cells)
	}
}

func TestBlankUsesDefaultGlyph(t *testing.T) {
	c := Blank(color.RGBA{}, color.RGBA{})
	if c.Glyph != string(Default) {
		t.Errorf("Blank glyph = %q, want space", c.Glyph)
	}
}
