// Package canvas implements the pixel canvas and the animated-sprite
// terminal canvas of spec.md §4.8. Both are plain data types wired into
// an element's render pipeline through style.OnDraw (spec §9 design note:
// "widgets that need custom ... rendering register a function pointer in
// the style"), not through element subclassing.
package canvas

import (
	"github.com/ember-tui/ggui/cell"
	"github.com/ember-tui/ggui/color"
)

// Canvas is a plain RGB pixel grid an element paints pixel-by-pixel;
// OnDraw blits it into the element's cell buffer each render.
type Canvas struct {
	width, height int
	pixels        []color.RGB
}

// NewCanvas returns a width x height canvas, all pixels black.
func NewCanvas(width, height int) *Canvas {
	return &Canvas{width: width, height: height, pixels: make([]color.RGB, width*height)}
}

// Set paints the pixel at (x,y). Out-of-range coordinates are ignored.
func (c *Canvas) Set(x, y int, col color.RGB) {
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return
	}
	c.pixels[y*c.width+x] = col
}

// Get reads the pixel at (x,y), returning the zero color out of range.
func (c *Canvas) Get(x, y int) color.RGB {
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return color.RGB{}
	}
	return c.pixels[y*c.width+x]
}

// resize reallocates the pixel buffer, preserving the overlapping region —
// the supplemented STRETCH reaction from original_source/Canvas.cpp: a
// canvas reallocates its own buffer on resize rather than relying on the
// generic element stretch path.
func (c *Canvas) resize(width, height int) {
	next := make([]color.RGB, width*height)
	minW, minH := width, height
	if c.width < minW {
		minW = c.width
	}
	if c.height < minH {
		minH = c.height
	}
	for y := 0; y < minH; y++ {
		copy(next[y*width:y*width+minW], c.pixels[y*c.width:y*c.width+minW])
	}
	c.width, c.height = width, height
	c.pixels = next
}

// OnDraw is the style.OnDraw callback: it resizes on a width/height
// change and overwrites buf's background with the canvas's pixels.
func (c *Canvas) OnDraw(buf []cell.Cell, width, height int) []cell.Cell {
	if width != c.width || height != c.height {
		c.resize(width, height)
	}
	for i := range buf {
		if i >= len(c.pixels) {
			break
		}
		buf[i] = cell.Blank(buf[i].Foreground, color.Opaque(c.pixels[i]))
	}
	return buf
}
