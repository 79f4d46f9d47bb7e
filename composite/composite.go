// Package composite implements cell-level alpha compositing and the
// border-intersection glyph lookup used when two bordered elements overlap
// (spec.md §4.3).
package composite

import (
	"github.com/ember-tui/ggui/cell"
	"github.com/ember-tui/ggui/color"
	"github.com/ember-tui/ggui/style"
)

// Blend composites src over dst per spec §4.3: alpha 1 is identity on
// source, alpha 0 is identity on destination, otherwise each channel is
// blended independently. The glyph comes from src unless src's glyph is
// the default space (in which case dst's glyph shows through); encoder
// flags are cleared so the next encode pass recomputes them.
func Blend(dst, src cell.Cell) cell.Cell {
	if src.Foreground.A == 255 && src.Background.A == 255 {
		src.Flags = 0
		return src
	}
	if src.Foreground.A == 0 && src.Background.A == 0 {
		return dst
	}

	out := cell.Cell{
		Foreground: color.Blend(src.Foreground, dst.Foreground),
		Background: color.Blend(src.Background, dst.Background),
	}

	if src.Glyph != "" && src.Glyph != string(cell.Default) {
		out.Glyph = src.Glyph
		out.Flags = src.Flags &^ (cell.EncodeStart | cell.EncodeEnd)
	} else {
		out.Glyph = dst.Glyph
		out.Flags = dst.Flags &^ (cell.EncodeStart | cell.EncodeEnd)
	}
	return out
}

// Rect is an axis-aligned cell rectangle.
type Rect struct {
	X, Y, W, H int
}

// Intersect returns the overlap of a and b, with Ok=false if they do not
// overlap.
func (a Rect) Intersect(b Rect) (Rect, bool) {
	x0, y0 := max(a.X, b.X), max(a.Y, b.Y)
	x1, y1 := min(a.X+a.W, b.X+b.W), min(a.Y+a.H, b.Y+b.H)
	if x1 <= x0 || y1 <= y0 {
		return Rect{}, false
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}, true
}

// Interior shrinks rect by one cell on each side when border is enabled —
// the clip rectangle a child may contribute into (spec §4.3 "Clipping").
func Interior(rect Rect, borderEnabled bool) Rect {
	if !borderEnabled {
		return rect
	}
	if rect.W < 2 || rect.H < 2 {
		return Rect{X: rect.X, Y: rect.Y, W: 0, H: 0}
	}
	return Rect{X: rect.X + 1, Y: rect.Y + 1, W: rect.W - 2, H: rect.H - 2}
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// direction bits for the border-junction lookup.
const (
	dirUp = 1 << iota
	dirDown
	dirLeft
	dirRight
)

// BorderJunction returns the glyph for a point where mask records which of
// up/down/left/right directions continue a border line, built from set's
// corners/lines/T-junctions/cross (spec §4.3 "Post-process border
// intersection"). ok is false for masks with fewer than two directions,
// which leave the cell unchanged.
func BorderJunction(set style.BorderSet, up, down, left, right bool) (glyph string, ok bool) {
	mask := 0
	if up {
		mask |= dirUp
	}
	if down {
		mask |= dirDown
	}
	if left {
		mask |= dirLeft
	}
	if right {
		mask |= dirRight
	}

	table := map[int]string{
		dirUp | dirDown:                set.Vertical,
		dirLeft | dirRight:             set.Horizontal,
		dirDown | dirRight:             set.TopLeft,
		dirDown | dirLeft:              set.TopRight,
		dirUp | dirRight:               set.BottomLeft,
		dirUp | dirLeft:                set.BottomRight,
		dirUp | dirDown | dirRight:     set.TRight,
		dirUp | dirDown | dirLeft:      set.TLeft,
		dirDown | dirLeft | dirRight:   set.TDown,
		dirUp | dirLeft | dirRight:     set.TUp,
		dirUp | dirDown | dirLeft | dirRight: set.Cross,
	}
	glyph, ok = table[mask]
	return glyph, ok
}
