// Package postfx implements the post-processing pass applied after an
// element's children are composited: drop shadow, then opacity
// (spec.md §4.4).
package postfx

import (
	"math"

	"github.com/ember-tui/ggui/cell"
	"github.com/ember-tui/ggui/color"
	"github.com/ember-tui/ggui/style"
)

// Grid is a flat row-major buffer with its stride, the shape every
// post-processing step operates on.
type Grid struct {
	Cells  []cell.Cell
	Width  int
	Height int
}

func (g Grid) at(x, y int) cell.Cell {
	if x < 0 || y < 0 || x >= g.Width || y >= g.Height {
		return cell.Cell{}
	}
	return g.Cells[y*g.Width+x]
}

// Shadow blits buf into a scratch grid offset by sh.DX/DY, recolors every
// non-default cell in the shadow copy to sh.Color scaled by sh.Opacity and
// a linear falloff over sh.Length, then overlays the original buffer on
// top. The result is cropped back to buf's own width/height — per
// SPEC_FULL.md's resolution of the shadow-growth open question, a shadow
// never grows the element's reported size.
func Shadow(buf Grid, sh style.Shadow) Grid {
	if !sh.Enabled || sh.Opacity <= 0 {
		return buf
	}

	out := Grid{Width: buf.Width, Height: buf.Height, Cells: make([]cell.Cell, len(buf.Cells))}
	copy(out.Cells, buf.Cells)

	shadowColor := color.Opaque(sh.Color)

	for y := 0; y < buf.Height; y++ {
		for x := 0; x < buf.Width; x++ {
			sx, sy := x-sh.DX, y-sh.DY
			if sx < 0 || sy < 0 || sx >= buf.Width || sy >= buf.Height {
				continue
			}
			src := buf.at(sx, sy)
			if src.Glyph == "" || src.Glyph == string(cell.Default) {
				continue
			}
			// Only paint the shadow where the destination itself is still
			// default (i.e. hasn't been drawn over by the original
			// buffer's own content at this offset cell).
			dest := out.at(x, y)
			if dest.Glyph != "" && dest.Glyph != string(cell.Default) {
				continue
			}

			dist := distance(sh.DX, sh.DY)
			falloff := 1.0
			if sh.Length > 0 {
				falloff = 1 - clamp01(dist/float64(sh.Length))
			}
			alpha := sh.Opacity * falloff
			out.Cells[y*out.Width+x] = cell.Cell{
				Glyph:      string(cell.Default),
				Background: shadowColor.Scale(alpha),
				Foreground: shadowColor.Scale(alpha),
			}
		}
	}

	return out
}

// Opacity multiplies every cell's fg/bg alpha by factor. factor==1 is a
// documented no-op (spec §4.4).
func Opacity(buf Grid, factor float64) Grid {
	if factor >= 1 {
		return buf
	}
	out := Grid{Width: buf.Width, Height: buf.Height, Cells: make([]cell.Cell, len(buf.Cells))}
	for i, c := range buf.Cells {
		c.Foreground = c.Foreground.Scale(factor)
		c.Background = c.Background.Scale(factor)
		out.Cells[i] = c
	}
	return out
}

func distance(dx, dy int) float64 {
	fx, fy := float64(dx), float64(dy)
	return math.Sqrt(fx*fx + fy*fy)
}

func clamp01(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
