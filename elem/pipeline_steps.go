package elem

import (
	"sort"

	"github.com/ember-tui/ggui/cell"
	"github.com/ember-tui/ggui/color"
	"github.com/ember-tui/ggui/composite"
	"github.com/ember-tui/ggui/stain"
	"github.com/ember-tui/ggui/style"
)

// resolveSize returns e's resolved width/height, evaluating percentage and
// viewport-relative scalars against e's parent (or the viewport, for the
// root) and logging a non-discriminant-scalar warning when a percentage
// produces a fractional cell count (spec §4.1).
func (p *Pipeline) resolveSize(e *Element) (int, int) {
	refW, refH := p.Viewport.Width, p.Viewport.Height
	if e.parent != Invalid {
		parent := p.Arena.Get(e.parent)
		refW, refH = parent.processedW, parent.processedH
	}

	w, nonIntW := e.Style.WidthScalar.Resolve(refW, p.Viewport.Width)
	h, nonIntH := e.Style.HeightScalar.Resolve(refH, p.Viewport.Height)
	if nonIntW || nonIntH {
		p.warn("percentage size resolved to a non-integer cell count", map[string]any{
			"name": e.Style.Name, "width": w, "height": h,
		})
	}

	if e.Style.AllowDynamicSize {
		dw, dh := p.dynamicSize(e)
		if dw > w {
			w = dw
		}
		if dh > h {
			h = dh
		}
	}

	if e.Style.MinWidth > w {
		w = e.Style.MinWidth
	}
	if e.Style.MinHeight > h {
		h = e.Style.MinHeight
	}

	return w, h
}

// dynamicSize computes the bounding box of e's displayed children plus
// border thickness, per spec §4.2 "Dynamic sizing".
func (p *Pipeline) dynamicSize(e *Element) (int, int) {
	maxRight, maxBottom := 0, 0
	for _, ch := range e.children {
		child := p.Arena.Get(ch)
		if !child.Displayed() {
			continue
		}
		cw, chh := p.resolveSize(child)
		cx, _ := child.Style.PosX.Resolve(e.processedW, p.Viewport.Width)
		cy, _ := child.Style.PosY.Resolve(e.processedH, p.Viewport.Height)
		if r := cx + cw; r > maxRight {
			maxRight = r
		}
		if b := cy + chh; b > maxBottom {
			maxBottom = b
		}
	}
	border := 0
	if e.Style.BorderEnabled {
		border = 2
	}
	return maxRight + border, maxBottom + border
}

// evaluateDynamicSizing is an empty hook called from Render. Percentage and
// viewport-relative sizes are resolved in resolveSize/dynamicSize, and
// position scalars in propagatePosition.
func (p *Pipeline) evaluateDynamicSizing(e *Element) {
}

// propagatePosition recomputes e.AbsolutePosition from its parent and
// pushes MOVE to every descendant (spec §3 invariant, §4.2 step 4).
func (p *Pipeline) propagatePosition(e *Element) {
	parentAbs := Position{}
	refW, refH := p.Viewport.Width, p.Viewport.Height
	if e.parent != Invalid {
		parent := p.Arena.Get(e.parent)
		parentAbs = parent.AbsolutePosition
		refW, refH = parent.processedW, parent.processedH
	}

	x, _ := e.Style.PosX.Resolve(refW, p.Viewport.Width)
	y, _ := e.Style.PosY.Resolve(refH, p.Viewport.Height)
	z := e.Style.Z

	e.AbsolutePosition = Position{X: parentAbs.X + x, Y: parentAbs.Y + y, Z: parentAbs.Z + z}

	for _, ch := range e.children {
		child := p.Arena.Get(ch)
		child.dirty.Dirty(stain.Move)
		p.propagatePosition(child)
	}
}

// repaint fills e's interior with the active state's colors (spec §4.2
// step 5).
func (p *Pipeline) repaint(e *Element) {
	colors := e.Style.ColorFor(e.activeState())
	fg := color.Opaque(colors.Text)
	bg := color.Opaque(colors.Background)

	startX, startY := 0, 0
	endX, endY := e.processedW, e.processedH
	if e.Style.BorderEnabled {
		startX, startY = 1, 1
		endX, endY = e.processedW-1, e.processedH-1
	}
	for y := startY; y < endY; y++ {
		for x := startX; x < endX; x++ {
			if x < 0 || y < 0 || x >= e.processedW || y >= e.processedH {
				continue
			}
			e.renderBuffer[y*e.processedW+x] = cell.Blank(fg, bg)
		}
	}

	if e.Style.Text != "" {
		p.drawText(e, startX, startY, endX, endY, fg, bg)
	}
}

// drawText lays e.Style.Text into its interior rectangle, wrapping at the
// content width when Wrap is set (SPEC_FULL.md's resolution of the `wrap`
// open question: intra-row wrapping only, independent of frame-level
// word-wrap).
func (p *Pipeline) drawText(e *Element, startX, startY, endX, endY int, fg, bg color.RGBA) {
	contentW := endX - startX
	if contentW <= 0 {
		return
	}
	graphemes := cell.Graphemes(e.Style.Text, fg, bg)

	x, y := startX, startY
	for _, g := range graphemes {
		if y >= endY {
			break
		}
		if x >= endX {
			if !e.Style.Wrap {
				break
			}
			x = startX
			y++
			if y >= endY {
				break
			}
		}
		e.renderBuffer[y*e.processedW+x] = g
		x++
	}
}

// drawBorder overdraws the border ring with e.Style.Border's glyphs and
// overlays the title starting one cell right of the top-left corner,
// truncated at the top-right corner cell itself (spec §4.2 step 6,
// SPEC_FULL.md §5 confirms truncation lands on the corner cell).
func (p *Pipeline) drawBorder(e *Element) {
	w, h := e.processedW, e.processedH
	if w < 2 || h < 2 {
		e.dirty.Clean(stain.Edge)
		return
	}
	colors := e.Style.ColorFor(e.activeState())
	fg := color.Opaque(colors.Border)
	bg := color.Opaque(colors.BorderBackground)
	b := e.Style.Border

	set := func(x, y int, glyph string) {
		e.renderBuffer[y*w+x] = cell.Cell{Glyph: glyph, Foreground: fg, Background: bg}
	}

	set(0, 0, b.TopLeft)
	set(w-1, 0, b.TopRight)
	set(0, h-1, b.BottomLeft)
	set(w-1, h-1, b.BottomRight)
	for x := 1; x < w-1; x++ {
		set(x, 0, b.Horizontal)
		set(x, h-1, b.Horizontal)
	}
	for y := 1; y < h-1; y++ {
		set(0, y, b.Vertical)
		set(w-1, y, b.Vertical)
	}

	if e.Style.Title != "" {
		graphemes := cell.Graphemes(e.Style.Title, fg, bg)
		x := 1
		for _, g := range graphemes {
			if x >= w-1 {
				break
			}
			e.renderBuffer[0*w+x] = g
			x++
		}
	}

	e.dirty.Clean(stain.Edge)
}

// compositeChildren sorts e's children by ascending z, recursively renders
// each displayed child whose rectangle intersects e, and blits it into e's
// buffer via alpha compositing (spec §4.2 step 7, §4.3).
func (p *Pipeline) compositeChildren(e *Element) {
	ordered := append([]Handle(nil), e.children...)
	sort.Slice(ordered, func(i, j int) bool {
		return p.Arena.Get(ordered[i]).Style.Z < p.Arena.Get(ordered[j]).Style.Z
	})

	parentRect := composite.Rect{X: 0, Y: 0, W: e.processedW, H: e.processedH}
	interior := composite.Interior(parentRect, e.Style.BorderEnabled)

	for _, ch := range ordered {
		child := p.Arena.Get(ch)
		if !child.Displayed() {
			continue
		}

		childBuf := p.Render(ch)
		if childBuf == nil {
			continue
		}

		localX := child.AbsolutePosition.X - e.AbsolutePosition.X
		localY := child.AbsolutePosition.Y - e.AbsolutePosition.Y

		if child.Style.AllowScrolling {
			if child.Style.Flow == style.FlowColumn {
				localY -= child.ScrollIndex
			} else {
				localX -= child.ScrollIndex
			}
		}

		childRect := composite.Rect{X: localX, Y: localY, W: child.processedW, H: child.processedH}
		clip, ok := childRect.Intersect(interior)
		if !ok {
			if !child.Style.AllowOverflow {
				p.warn("child rectangle does not intersect parent interior", map[string]any{
					"name": child.Style.Name,
				})
			}
			continue
		}

		for y := clip.Y; y < clip.Y+clip.H; y++ {
			for x := clip.X; x < clip.X+clip.W; x++ {
				cx, cy := x-localX, y-localY
				if cx < 0 || cy < 0 || cx >= child.processedW || cy >= child.processedH {
					continue
				}
				idx := y*e.processedW + x
				srcIdx := cy*child.processedW + cx
				e.renderBuffer[idx] = composite.Blend(e.renderBuffer[idx], childBuf[srcIdx])
			}
		}
	}
}
