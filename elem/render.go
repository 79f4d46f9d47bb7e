package elem

import (
	"github.com/ember-tui/ggui/cell"
	"github.com/ember-tui/ggui/color"
	"github.com/ember-tui/ggui/postfx"
	"github.com/ember-tui/ggui/stain"
	"github.com/ember-tui/ggui/style"
)

// Viewport is the terminal dimensions, used to resolve viewport-relative
// scalars and as the reference for the root element's percentage sizing.
type Viewport struct {
	Width, Height int
}

// Pipeline runs the nine-step render pipeline of spec §4.2 over one Arena.
// It is a value, not a method on Element, because several steps need
// sibling/parent context (class table, viewport) the Element itself
// doesn't hold.
type Pipeline struct {
	Arena    *Arena
	Classes  *style.ClassTable
	Viewport Viewport

	// Warn receives a message whenever a configuration error or layout
	// violation occurs (spec §7); nil disables reporting.
	Warn func(msg string, fields map[string]any)
}

func (p *Pipeline) warn(msg string, fields map[string]any) {
	if p.Warn != nil {
		p.Warn(msg, fields)
	}
}

// Render executes the pipeline for h and returns its composited,
// post-processed buffer. Hidden elements render an empty buffer and are
// not traversed further (spec §3 invariant).
func (p *Pipeline) Render(h Handle) []cell.Cell {
	e := p.Arena.Get(h)

	if !e.Displayed() {
		return nil
	}

	// Step 1: clean buffer is returned unchanged.
	if e.dirty.IsClean() {
		return e.postProcessBuffer
	}

	// Step 2: resolve classes.
	if e.dirty.Any(stain.Class) {
		p.Classes.Resolve(e.Style, e.classIDs)
		e.dirty.Clean(stain.Class)
		e.dirty.Dirty(stain.Color | stain.Edge | stain.Deep | stain.Stretch)
	}

	p.evaluateDynamicSizing(e)

	// Step 3: stretch — reallocate the buffer.
	if e.dirty.Any(stain.Stretch) {
		w, h2 := p.resolveSize(e)
		if w < 1 || h2 < 1 {
			p.warn("element resolved to a non-positive size, clamping to 1x1",
				map[string]any{"name": e.Style.Name, "width": w, "height": h2})
			if w < 1 {
				w = 1
			}
			if h2 < 1 {
				h2 = 1
			}
		}
		e.processedW, e.processedH = w, h2
		bg := e.Style.ColorFor(e.activeState()).Background
		e.renderBuffer = make([]cell.Cell, w*h2)
		for i := range e.renderBuffer {
			e.renderBuffer[i] = cell.Blank(color.RGBA{}, color.Opaque(bg))
		}
		e.dirty.Clean(stain.Stretch)
		e.dirty.Dirty(stain.Color | stain.Edge | stain.Deep | stain.Move)
	}

	// Step 4: move — recompute absolute position and propagate.
	if e.dirty.Any(stain.Move) {
		p.propagatePosition(e)
		e.dirty.Clean(stain.Move)
	}

	// Step 5: color — repaint interior with state-selected colors.
	if e.dirty.Any(stain.Color) {
		p.repaint(e)
		e.dirty.Clean(stain.Color)
	}

	// Step 6: edge — border + title.
	if e.dirty.Any(stain.Edge) && e.Style.BorderEnabled {
		p.drawBorder(e)
	}
	e.dirty.Clean(stain.Edge)

	// Step 7: deep — composite children.
	if e.dirty.Any(stain.Deep) {
		p.compositeChildren(e)
		e.dirty.Clean(stain.Deep)
	}

	if e.Style.OnDraw != nil {
		e.renderBuffer = e.Style.OnDraw(e.renderBuffer, e.processedW, e.processedH)
	}

	// Step 8: post-process (shadow, opacity).
	grid := postfx.Grid{Cells: append([]cell.Cell(nil), e.renderBuffer...), Width: e.processedW, Height: e.processedH}
	grid = postfx.Shadow(grid, e.Style.Shadow)
	grid = postfx.Opacity(grid, e.Style.Opacity)
	e.postProcessBuffer = grid.Cells

	e.dirty = stain.Clean

	return e.postProcessBuffer
}

func (e *Element) activeState() style.ColorState {
	if e.focused {
		return style.Focus
	}
	if e.hovered {
		return style.Hover
	}
	return style.Normal
}

