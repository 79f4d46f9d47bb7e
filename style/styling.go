// Package style implements the styling attribute system and the resolved
// Styling aggregate bound to each element (spec.md §3/§4.1).
package style

import (
	"github.com/ember-tui/ggui/cell"
	"github.com/ember-tui/ggui/color"
	"github.com/ember-tui/ggui/stain"
)

// Status ranks how authoritative an attribute assignment is. When two
// assignments target the same field, the higher Status wins; equal status
// means the later assignment (later in the chain, or a later class in the
// ID-ordered class list) wins.
type Status int

const (
	Uninitialized Status = iota
	Initialized
	Value
)

// Order controls when an attribute is embedded. Delayed attributes (child
// and parent wiring) need the rest of the style already present on the
// owner before they run.
type Order int

const (
	Instant Order = iota
	Delayed
)

// ColorState selects which of the three color variants an attribute or a
// render pass targets.
type ColorState int

const (
	Normal ColorState = iota
	Hover
	Focus
)

// Flow picks the direction children are laid out and composited in.
type Flow int

const (
	FlowRow Flow = iota
	FlowColumn
)

// Align is the alignment of content within an element's interior.
type Align int

const (
	AlignLeft Align = iota
	AlignRight
	AlignCenter
	AlignUp
	AlignDown
)

// LifecycleEvent names one of an element's lifecycle callback slots.
type LifecycleEvent int

const (
	OnInit LifecycleEvent = iota
	OnDestroy
	OnHide
	OnShow
	OnClick
	OnDraw
)

// MaxZ is the documented finite z-order ceiling a `prioritize` attribute
// raises an element to. Resolves spec.md's open question about whether
// the language's integer-max sentinel or a separately declared maximum is
// the contract: this module always uses the finite, documented constant so
// compositing arithmetic (z + child z) never risks overflow.
const MaxZ = 1 << 20

// BorderSet is the eleven glyphs a styled border draws with: four corners,
// the two line glyphs, four T-junctions, and the cross used where two
// borders overlap.
type BorderSet struct {
	TopLeft, TopRight       string
	BottomLeft, BottomRight string
	Horizontal, Vertical    string
	TUp, TDown              string
	TLeft, TRight           string
	Cross                   string
}

// DefaultBorder is the single-line box-drawing border set used when no
// styled_border attribute overrides it.
var DefaultBorder = BorderSet{
	TopLeft: "┌", TopRight: "┐",
	BottomLeft: "└", BottomRight: "┘",
	Horizontal: "─", Vertical: "│",
	TUp: "┴", TDown: "┬", TLeft: "┤", TRight: "├",
	Cross: "┼",
}

// ColorSet is the four color roles an element paints with, for one of the
// three state variants (normal/hover/focus).
type ColorSet struct {
	Text             color.RGB
	Background       color.RGB
	Border           color.RGB
	BorderBackground color.RGB
}

// Shadow is the post-processing drop-shadow configuration.
type Shadow struct {
	Enabled   bool
	DX, DY    int
	Color     color.RGB
	Opacity   float64
	Length    int
}

// Margin is the four-sided spacing an element reserves around its border.
type Margin struct {
	Top, Bottom, Left, Right uint
}

// Ref is an opaque reference to an element, used for the delayed
// child/parent wiring attributes. style does not know the concrete element
// handle type (elem depends on style, not the reverse) so it stores the
// handle as an opaque value and the owner type-asserts it back.
type Ref interface{}

// Styling is the resolved, numeric style bound to one element. The Scalars
// set through NewWidth / NewHeight / NewPosition are kept in WidthScalar,
// HeightScalar and PosX/PosY/PosZ; the plain int fields are filled only for
// literal scalars. The elem render pipeline resolves the other evaluation
// types at render time and does not write the result back here.
type Styling struct {
	X, Y, Z int
	PosX, PosY, PosZ Scalar

	Width, Height       int
	WidthScalar, HeightScalar Scalar

	// MinWidth/MinHeight are an optional floor, usually supplied by a
	// "minimum-size" class, that a dynamic-size result is clamped up to
	// (SPEC_FULL.md resolves the dynamic-size-vs-minimum-size open
	// question in favor of the minimum winning).
	MinWidth, MinHeight int

	BorderEnabled bool
	Border        BorderSet

	Colors [3]ColorSet // indexed by ColorState

	Flow             Flow
	Wrap             bool
	AllowOverflow    bool
	AllowDynamicSize bool
	AllowScrolling   bool

	Margin Margin
	Shadow Shadow

	Opacity float64

	Align   Align
	Display bool

	Name, Title, Text string

	Callbacks [6]func() // indexed by LifecycleEvent; OnClick/OnDraw unused here, dispatch owns click
	OnDraw    func(buf []cell.Cell, w, h int) []cell.Cell

	Children []Ref
	Parent   Ref

	fieldStatus map[fieldKey]Status
}

// NewStyling returns a Styling with the spec's sane defaults: fully
// visible, opaque, default border glyphs, no margin.
func NewStyling() *Styling {
	return &Styling{
		Display:     true,
		Opacity:     1.0,
		Border:      DefaultBorder,
		fieldStatus: make(map[fieldKey]Status),
	}
}

type fieldKey int

const (
	fPosition fieldKey = iota
	fWidth
	fHeight
	fBorderEnabled
	fStyledBorder
	fFlow
	fWrap
	fAllowOverflow
	fAllowDynamicSize
	fAllowScrolling
	fMargin
	fShadow
	fOpacity
	fAlign
	fDisplay
	fName
	fTitle
	fText
	fChildren
	fNode
	fMinSize

	// fColor reserves 12 keys (3 states x 4 roles): fColor..fColor+11.
	fColor fieldKey = 100
	// fCallback reserves 6 keys (one per LifecycleEvent): fCallback..fCallback+5.
	fCallback fieldKey = 200
)

// apply runs fn and records newStatus for key only if newStatus is at
// least as authoritative as whatever is already recorded — "higher status
// wins; equal status means the later assignment wins" (spec §3). Returns
// whether fn ran.
func (s *Styling) apply(key fieldKey, newStatus Status, fn func()) bool {
	if s.fieldStatus == nil {
		s.fieldStatus = make(map[fieldKey]Status)
	}
	if newStatus < s.fieldStatus[key] {
		return false
	}
	fn()
	s.fieldStatus[key] = newStatus
	return true
}

// ColorFor returns the color role set for the given state, falling back to
// Normal if no role of a hover/focus variant was ever set.
func (s *Styling) ColorFor(state ColorState) ColorSet {
	if state != Normal {
		for role := 0; role < 4; role++ {
			if s.fieldStatus[fColor+fieldKey(int(state)*4+role)] > Uninitialized {
				return s.Colors[state]
			}
		}
		return s.Colors[Normal]
	}
	return s.Colors[state]
}
