package style

import (
	"github.com/ember-tui/ggui/color"
	"github.com/ember-tui/ggui/stain"
)

// Attribute is one styling value in the chain produced by the `|`
// combinator (here: Chain.Append). Imprint writes the attribute into s and
// returns the dirty bit the write raises; Imprint is a no-op (and returns
// stain.Clean) when s already holds a higher-status value for the same
// field.
type Attribute interface {
	Order() Order
	Imprint(s *Styling) stain.Stain
}

// Chain is an append-only, owned sequence of attributes — the monoidal
// replacement for the teacher language's linked `|` chain (spec §9 design
// note: builders return owned values, no runtime pointer-address tests).
type Chain []Attribute

// Append returns a new Chain with a appended. Chain is a slice, so this is
// the usual append-and-possibly-reallocate; callers that build a style
// inline via Chain{}.Append(...).Append(...) get normal Go slice semantics.
func (c Chain) Append(a Attribute) Chain {
	return append(c, a)
}

// Embed runs the two-pass embedding described in spec §4.1: every instant
// attribute imprints first, then every delayed attribute (child/parent
// wiring, which needs the rest of the style already present).
func (c Chain) Embed(s *Styling) stain.Stain {
	var dirty stain.Stain
	for _, a := range c {
		if a.Order() == Instant {
			dirty |= a.Imprint(s)
		}
	}
	for _, a := range c {
		if a.Order() == Delayed {
			dirty |= a.Imprint(s)
		}
	}
	return dirty
}

type statused struct {
	status Status
	order  Order
}

func (s statused) Order() Order { return s.order }

// Position sets x, y, z as literal or dynamically-evaluated scalars.
type Position struct {
	statused
	X, Y, Z Scalar
}

func NewPosition(x, y, z Scalar, status Status) Position {
	return Position{statused{status, Instant}, x, y, z}
}

func (p Position) Imprint(s *Styling) stain.Stain {
	var d stain.Stain
	s.apply(fPosition, p.status, func() {
		s.PosX, s.PosY, s.PosZ = p.X, p.Y, p.Z
		if p.X.IsLiteral() {
			s.X, _ = p.X.Resolve(0, 0)
		}
		if p.Y.IsLiteral() {
			s.Y, _ = p.Y.Resolve(0, 0)
		}
		if p.Z.IsLiteral() {
			s.Z, _ = p.Z.Resolve(0, 0)
		}
		d = stain.Move
	})
	return d
}

// Width sets the width scalar.
type Width struct {
	statused
	Value Scalar
}

func NewWidth(v Scalar, status Status) Width { return Width{statused{status, Instant}, v} }

func (w Width) Imprint(s *Styling) stain.Stain {
	var d stain.Stain
	s.apply(fWidth, w.status, func() {
		s.WidthScalar = w.Value
		if w.Value.IsLiteral() {
			s.Width, _ = w.Value.Resolve(0, 0)
		}
		d = stain.Stretch
	})
	return d
}

// Height sets the height scalar.
type Height struct {
	statused
	Value Scalar
}

func NewHeight(v Scalar, status Status) Height { return Height{statused{status, Instant}, v} }

func (h Height) Imprint(s *Styling) stain.Stain {
	var d stain.Stain
	s.apply(fHeight, h.status, func() {
		s.HeightScalar = h.Value
		if h.Value.IsLiteral() {
			s.Height, _ = h.Value.Resolve(0, 0)
		}
		d = stain.Stretch
	})
	return d
}

// BorderEnabled toggles the border ring.
type BorderEnabled struct {
	statused
	Enabled bool
}

func NewBorderEnabled(enabled bool, status Status) BorderEnabled {
	return BorderEnabled{statused{status, Instant}, enabled}
}

func (b BorderEnabled) Imprint(s *Styling) stain.Stain {
	var d stain.Stain
	s.apply(fBorderEnabled, b.status, func() {
		s.BorderEnabled = b.Enabled
		d = stain.Edge
	})
	return d
}

// colorRole identifies which of the four roles within a ColorSet a Color
// attribute targets.
type colorRole int

const (
	RoleText colorRole = iota
	RoleBackground
	RoleBorder
	RoleBorderBackground
)

// ColorAttr sets a single color role for a single state variant.
type ColorAttr struct {
	statused
	State ColorState
	Role  colorRole
	Value color.RGB
}

func NewColor(state ColorState, role colorRole, value color.RGB, status Status) ColorAttr {
	return ColorAttr{statused{status, Instant}, state, role, value}
}

func (c ColorAttr) Imprint(s *Styling) stain.Stain {
	var d stain.Stain
	key := fieldKey(int(fColor) + int(c.State)*4 + int(c.Role))
	s.apply(key, c.status, func() {
		set := &s.Colors[c.State]
		switch c.Role {
		case RoleText:
			set.Text = c.Value
		case RoleBackground:
			set.Background = c.Value
		case RoleBorder:
			set.Border = c.Value
		case RoleBorderBackground:
			set.BorderBackground = c.Value
		}
		d = stain.Color
	})
	return d
}

// StyledBorder replaces the eleven border glyphs.
type StyledBorder struct {
	statused
	Glyphs BorderSet
}

func NewStyledBorder(glyphs BorderSet, status Status) StyledBorder {
	return StyledBorder{statused{status, Instant}, glyphs}
}

func (b StyledBorder) Imprint(s *Styling) stain.Stain {
	var d stain.Stain
	s.apply(fStyledBorder, b.status, func() {
		s.Border = b.Glyphs
		d = stain.Edge
	})
	return d
}

// FlowAttr sets row/column child layout direction.
type FlowAttr struct {
	statused
	Value Flow
}

func NewFlow(v Flow, status Status) FlowAttr { return FlowAttr{statused{status, Instant}, v} }

func (f FlowAttr) Imprint(s *Styling) stain.Stain {
	var d stain.Stain
	s.apply(fFlow, f.status, func() {
		s.Flow = f.Value
		d = stain.Deep
	})
	return d
}

// BoolField identifies one of the boolean layout toggles.
type BoolField int

const (
	FieldWrap BoolField = iota
	FieldAllowOverflow
	FieldAllowDynamicSize
	FieldAllowScrolling
)

// BoolAttr sets one of wrap / allow_overflow / allow_dynamic_size /
// allow_scrolling.
type BoolAttr struct {
	statused
	Field BoolField
	Value bool
}

func NewBool(field BoolField, value bool, status Status) BoolAttr {
	return BoolAttr{statused{status, Instant}, field, value}
}

func (b BoolAttr) Imprint(s *Styling) stain.Stain {
	var d stain.Stain
	keys := [...]fieldKey{fWrap, fAllowOverflow, fAllowDynamicSize, fAllowScrolling}
	s.apply(keys[b.Field], b.status, func() {
		switch b.Field {
		case FieldWrap:
			s.Wrap = b.Value
		case FieldAllowOverflow:
			s.AllowOverflow = b.Value
		case FieldAllowDynamicSize:
			s.AllowDynamicSize = b.Value
		case FieldAllowScrolling:
			s.AllowScrolling = b.Value
		}
		d = stain.Deep
	})
	return d
}

// MarginAttr sets the four-sided margin.
type MarginAttr struct {
	statused
	Value Margin
}

func NewMargin(m Margin, status Status) MarginAttr { return MarginAttr{statused{status, Instant}, m} }

func (m MarginAttr) Imprint(s *Styling) stain.Stain {
	var d stain.Stain
	s.apply(fMargin, m.status, func() {
		s.Margin = m.Value
		d = stain.Move
	})
	return d
}

// ShadowAttr sets the drop-shadow configuration.
type ShadowAttr struct {
	statused
	Value Shadow
}

func NewShadow(sh Shadow, status Status) ShadowAttr { return ShadowAttr{statused{status, Instant}, sh} }

func (sh ShadowAttr) Imprint(s *Styling) stain.Stain {
	var d stain.Stain
	s.apply(fShadow, sh.status, func() {
		s.Shadow = sh.Value
		d = stain.Color
	})
	return d
}

// OpacityAttr sets the element opacity (0..1).
type OpacityAttr struct {
	statused
	Value float64
}

func NewOpacity(v float64, status Status) OpacityAttr { return OpacityAttr{statused{status, Instant}, v} }

func (o OpacityAttr) Imprint(s *Styling) stain.Stain {
	var d stain.Stain
	s.apply(fOpacity, o.status, func() {
		s.Opacity = o.Value
		d = stain.Color
	})
	return d
}

// AlignAttr sets content alignment.
type AlignAttr struct {
	statused
	Value Align
}

func NewAlign(v Align, status Status) AlignAttr { return AlignAttr{statused{status, Instant}, v} }

func (a AlignAttr) Imprint(s *Styling) stain.Stain {
	var d stain.Stain
	s.apply(fAlign, a.status, func() {
		s.Align = a.Value
		d = stain.Deep
	})
	return d
}

// DisplayAttr shows or hides the element.
type DisplayAttr struct {
	statused
	Shown bool
}

func NewDisplay(shown bool, status Status) DisplayAttr { return DisplayAttr{statused{status, Instant}, shown} }

func (di DisplayAttr) Imprint(s *Styling) stain.Stain {
	var d stain.Stain
	s.apply(fDisplay, di.status, func() {
		s.Display = di.Shown
		d = stain.Deep
	})
	return d
}

// StringField identifies one of name / title / text.
type StringField int

const (
	FieldName StringField = iota
	FieldTitle
	FieldText
)

// StringAttr sets name, title, or text.
type StringAttr struct {
	statused
	Field StringField
	Value string
}

func NewString(field StringField, value string, status Status) StringAttr {
	return StringAttr{statused{status, Instant}, field, value}
}

func (t StringAttr) Imprint(s *Styling) stain.Stain {
	var d stain.Stain
	keys := [...]fieldKey{fName, fTitle, fText}
	bits := [...]stain.Stain{stain.Edge, stain.Edge, stain.Color}
	s.apply(keys[t.Field], t.status, func() {
		switch t.Field {
		case FieldName:
			s.Name = t.Value
		case FieldTitle:
			s.Title = t.Value
		case FieldText:
			s.Text = t.Value
		}
		d = bits[t.Field]
	})
	return d
}

// CallbackAttr registers a lifecycle callback. Callbacks never raise a
// dirty bit themselves — they run in response to lifecycle events, not
// render passes.
type CallbackAttr struct {
	statused
	Event LifecycleEvent
	Fn    func()
}

func NewCallback(event LifecycleEvent, fn func(), status Status) CallbackAttr {
	return CallbackAttr{statused{status, Instant}, event, fn}
}

func (c CallbackAttr) Imprint(s *Styling) stain.Stain {
	s.apply(fCallback+fieldKey(c.Event), c.status, func() {
		s.Callbacks[c.Event] = c.Fn
	})
	return stain.Clean
}

// ChildrenAttr wires a set of child element references. Delayed: it needs
// the rest of the style already embedded on the owner.
type ChildrenAttr struct {
	statused
	Handles []Ref
}

func NewChildren(handles []Ref, status Status) ChildrenAttr {
	return ChildrenAttr{statused{status, Delayed}, handles}
}

func (c ChildrenAttr) Imprint(s *Styling) stain.Stain {
	var d stain.Stain
	s.apply(fChildren, c.status, func() {
		s.Children = append(s.Children, c.Handles...)
		d = stain.Deep
	})
	return d
}

// MinSize sets a floor under a dynamic-size element's computed width and
// height (spec §9 open question, resolved: minimum wins).
type MinSize struct {
	statused
	Width, Height int
}

func NewMinSize(w, h int, status Status) MinSize {
	return MinSize{statused{status, Instant}, w, h}
}

func (m MinSize) Imprint(s *Styling) stain.Stain {
	var d stain.Stain
	s.apply(fMinSize, m.status, func() {
		s.MinWidth, s.MinHeight = m.Width, m.Height
		d = stain.Stretch
	})
	return d
}

// NodeAttr wires the parent reference. Delayed, same reasoning as
// ChildrenAttr.
type NodeAttr struct {
	statused
	Parent Ref
}

func NewNode(parent Ref, status Status) NodeAttr { return NodeAttr{statused{status, Delayed}, parent} }

func (n NodeAttr) Imprint(s *Styling) stain.Stain {
	var d stain.Stain
	s.apply(fNode, n.status, func() {
		s.Parent = n.Parent
		d = stain.Deep
	})
	return d
}
