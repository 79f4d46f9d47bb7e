package elem

import (
	"github.com/ember-tui/ggui/cell"
	"github.com/ember-tui/ggui/stain"
	"github.com/ember-tui/ggui/style"
)

// Position is an absolute (x, y, z) cell coordinate.
type Position struct {
	X, Y, Z int
}

// Element is one node of the UI tree. It owns a Styling, a render buffer,
// a dirty mask, class IDs, and focus/hover state, per spec §3.
type Element struct {
	handle Handle
	arena  *Arena

	Style *style.Styling
	dirty stain.Stain

	classIDs []int

	renderBuffer      []cell.Cell
	postProcessBuffer []cell.Cell
	processedW, processedH int

	parent   Handle
	children []Handle

	focused, hovered bool

	// AbsolutePosition is parent.AbsolutePosition + Style.Position,
	// refreshed whenever MOVE is processed (spec §3 invariant).
	AbsolutePosition Position

	// ScrollIndex offsets a scrolling container's child origin along its
	// flow axis without reallocating the child's buffer (spec §4.2).
	ScrollIndex int

	// wiredChildren/wiredParent track how much of Style.Children/Style.Parent
	// (the delayed `childs`/`node` attributes, spec §3) have already been
	// turned into real arena parent/child links by ApplyChain.
	wiredChildren int
	wiredParent   bool
}

func newElement(a *Arena, h Handle) *Element {
	e := &Element{
		handle: h,
		arena:  a,
		Style:  style.NewStyling(),
		parent: Invalid,
	}
	e.dirty.Dirty(stain.Stretch | stain.Color | stain.Edge | stain.Deep | stain.Move)
	return e
}

// Handle returns e's own handle within its Arena.
func (e *Element) Handle() Handle { return e.handle }

// Parent returns e's parent handle, or Invalid for the root.
func (e *Element) Parent() Handle { return e.parent }

// Children returns e's child handles in insertion order (not yet z-sorted;
// the render pipeline sorts a copy before compositing).
func (e *Element) Children() []Handle { return e.children }

// AddChild appends child to e's child list and sets child's parent link,
// maintaining the invariant that a parent's child list contains a child
// exactly once (spec §3). It raises DEEP on e and MOVE on child's subtree
// root so absolute positions are recomputed on the next render.
func (e *Element) AddChild(child *Element) {
	if child.parent != Invalid {
		old := e.arena.Get(child.parent)
		old.removeChild(child.handle)
	}
	child.parent = e.handle
	e.children = append(e.children, child.handle)
	e.dirty.Dirty(stain.Deep)
	e.markAncestorsDeep()
	child.dirty.Dirty(stain.Move)
}

func (e *Element) removeChild(h Handle) {
	for i, c := range e.children {
		if c == h {
			e.children = append(e.children[:i], e.children[i+1:]...)
			break
		}
	}
}

// ApplyChain embeds an attribute chain into e's style and raises the
// resulting dirty bits on e. Any `childs`/`node` delayed attributes in the
// chain (style.NewChildren / style.NewNode) are resolved into real arena
// parent/child links here, since style.Ref is opaque to the style package
// and only elem knows how to turn one back into a Handle (spec §4.1
// "delayed pass").
func (e *Element) ApplyChain(chain style.Chain) {
	e.dirty.Dirty(chain.Embed(e.Style))
	e.markAncestorsDeep()
	e.wireDelayedRefs()
}

func (e *Element) wireDelayedRefs() {
	for _, ref := range e.Style.Children[e.wiredChildren:] {
		if h, ok := ref.(Handle); ok && e.arena.Valid(h) {
			e.AddChild(e.arena.Get(h))
		}
	}
	e.wiredChildren = len(e.Style.Children)

	if !e.wiredParent && e.Style.Parent != nil {
		if h, ok := e.Style.Parent.(Handle); ok && e.arena.Valid(h) {
			e.arena.Get(h).AddChild(e)
		}
		e.wiredParent = true
	}
}

// AddClass records a class ID to be resolved the next time CLASS is
// processed.
func (e *Element) AddClass(id int) {
	e.classIDs = append(e.classIDs, id)
	e.dirty.Dirty(stain.Class)
}

// Dirty returns e's current dirty mask.
func (e *Element) Dirty() stain.Stain { return e.dirty }

// MarkDirty raises bit on e directly — used by event handlers and timers
// that mutate an element outside the normal attribute-chain path (e.g. a
// click handler flipping a switch's text). It also raises DEEP on every
// ancestor so a clean parent doesn't short-circuit past e on the next
// render (spec §3: "dirties set during the cycle are picked up on the
// next cycle").
func (e *Element) MarkDirty(bit stain.Stain) {
	e.dirty.Dirty(bit)
	e.markAncestorsDeep()
}

func (e *Element) markAncestorsDeep() {
	for p := e.parent; p != Invalid; p = e.arena.Get(p).parent {
		e.arena.Get(p).dirty.Dirty(stain.Deep)
	}
}

// Displayed reports whether e currently participates in layout and
// compositing. A hidden element (display=false) contributes nothing and
// its subtree is not traversed during render (spec §3 invariant).
func (e *Element) Displayed() bool { return e.Style.Display }

// Focused reports whether e holds focus.
func (e *Element) Focused() bool { return e.focused }

// Hovered reports whether the pointer is over e.
func (e *Element) Hovered() bool { return e.hovered }

// SetFocused sets e's own focus flag directly (dispatcher-only — widget
// code should go through the dispatcher's focus transition instead of
// calling this directly, so hover is cleared consistently).
func (e *Element) SetFocused(v bool) {
	e.focused = v
	e.dirty.Dirty(stain.State | stain.Color)
	e.markAncestorsDeep()
}

// SetHovered sets e's own hover flag.
func (e *Element) SetHovered(v bool) {
	e.hovered = v
	e.dirty.Dirty(stain.State | stain.Color)
	e.markAncestorsDeep()
}

// Rect reports e's absolute rectangle using its last-processed size.
func (e *Element) Rect() (x, y, w, h int) {
	return e.AbsolutePosition.X, e.AbsolutePosition.Y, e.processedW, e.processedH
}

// Contains reports whether the absolute point (x,y) falls within e's
// rectangle.
func (e *Element) Contains(x, y int) bool {
	rx, ry, rw, rh := e.Rect()
	return x >= rx && x < rx+rw && y >= ry && y < ry+rh
}
