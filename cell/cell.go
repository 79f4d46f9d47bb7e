// Package cell implements the UTF grid cell: the unit the render pipeline
// composites, the encoder runs together, and the frame emitter serializes.
package cell

import (
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	"github.com/ember-tui/ggui/color"
)

// Flags records encoder and decode state for a Cell.
type Flags uint8

const (
	// IsUnicode marks a cell whose glyph is a multi-byte grapheme rather
	// than a single ASCII byte.
	IsUnicode Flags = 1 << iota
	// EncodeStart marks the first cell of a run-length strip.
	EncodeStart
	// EncodeEnd marks the last cell of a run-length strip.
	EncodeEnd
)

// Has reports whether f contains bit.
func (f Flags) Has(bit Flags) bool { return f&bit != 0 }

// Default is the space glyph used to fill newly allocated buffers.
const Default = ' '

// Cell is one grid position: a glyph plus its foreground/background color
// and encoder flags. Cell is a value type and is never mutated once placed
// into a buffer — callers build a new Cell and overwrite the slot.
type Cell struct {
	Glyph      string
	Foreground color.RGBA
	Background color.RGBA
	Flags      Flags
}

// Blank returns a cell holding the default glyph with the given colors.
func Blank(fg, bg color.RGBA) Cell {
	return Cell{Glyph: string(Default), Foreground: fg, Background: bg}
}

// New builds a cell from a single rune, setting IsUnicode when the rune
// does not fit in one ASCII byte.
func New(r rune, fg, bg color.RGBA) Cell {
	c := Cell{Glyph: string(r), Foreground: fg, Background: bg}
	if r > 0x7f {
		c.Flags |= IsUnicode
	}
	return c
}

// Width reports how many terminal columns Glyph occupies (1 for most
// glyphs, 2 for wide CJK-style graphemes, 0 for zero-width combining
// marks). Column 2 cells should be followed by a continuation cell rather
// than packing a second glyph into the same column.
func (c Cell) Width() int {
	if c.Glyph == "" {
		return 1
	}
	return runewidth.StringWidth(c.Glyph)
}

// Graphemes splits s into one Cell per extended grapheme cluster, using
// uniseg so multi-rune clusters (emoji with modifiers, combining accents)
// occupy exactly one cell each instead of being split mid-cluster.
func Graphemes(s string, fg, bg color.RGBA) []Cell {
	var cells []Cell
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		grapheme := g.Str()
		c := Cell{Glyph: grapheme, Foreground: fg, Background: bg}
		if len(grapheme) > 1 {
			c.Flags |= IsUnicode
		}
		cells = append(cells, c)
	}
	return cells
}

// SameColor reports whether a and b share both foreground and background,
// the condition the encoder uses to merge adjacent cells into one run.
func SameColor(a, b Cell) bool {
	return a.Foreground == b.Foreground && a.Background == b.Background
}
