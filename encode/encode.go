// Package encode implements the run-length strip encoder and the ANSI
// frame emitter that turns a rendered buffer into bytes on the wire
// (spec.md §4.5).
package encode

import (
	"fmt"

	"github.com/ember-tui/ggui/cell"
	"github.com/ember-tui/ggui/color"
	"github.com/ember-tui/ggui/strops"
)

// Mark walks buf (width cells per row) and sets EncodeStart/EncodeEnd on
// the first and last cell of every maximal run of adjacent same-colored
// cells within a row. Runs never cross a row boundary, since rows are
// serialized with an explicit separator between them.
func Mark(buf []cell.Cell, width int) {
	if width <= 0 {
		return
	}
	for row := 0; row*width < len(buf); row++ {
		start := row * width
		end := start + width
		if end > len(buf) {
			end = len(buf)
		}
		runStart := start
		for i := start; i < end; i++ {
			buf[i].Flags &^= cell.EncodeStart | cell.EncodeEnd
			last := i == end-1
			boundary := last || !cell.SameColor(buf[i], buf[i+1])
			if i == runStart {
				buf[i].Flags |= cell.EncodeStart
			}
			if boundary {
				buf[i].Flags |= cell.EncodeEnd
				runStart = i + 1
			}
		}
	}
}

// Serialize renders a marked buffer (width cells per row) to the ANSI
// string spec §4.5 describes: CSI H prefix, per-strip foreground and
// background SGR commands followed by the strip's glyphs and a reset, rows
// joined directly when wordWrap is set or by a newline otherwise.
func Serialize(buf []cell.Cell, width int, wordWrap bool) string {
	var b strops.Builder
	b.Append(color.CursorHome)

	rows := (len(buf) + width - 1) / width
	for row := 0; row < rows; row++ {
		start := row * width
		end := start + width
		if end > len(buf) {
			end = len(buf)
		}
		if row > 0 && !wordWrap {
			b.Append("\n")
		}
		serializeRow(&b, buf[start:end])
	}
	return b.Flush()
}

func serializeRow(b *strops.Builder, row []cell.Cell) {
	i := 0
	for i < len(row) {
		j := i
		for j < len(row) && !row[j].Flags.Has(cell.EncodeEnd) {
			j++
		}
		if j >= len(row) {
			j = len(row) - 1
		}
		writeStrip(b, row[i:j+1])
		i = j + 1
	}
}

func writeStrip(b *strops.Builder, strip []cell.Cell) {
	if len(strip) == 0 {
		return
	}
	fg, bg := strip[0].Foreground.RGB(), strip[0].Background.RGB()
	b.Append(fg.SGRForeground())
	b.Append(bg.SGRBackground())
	for _, c := range strip {
		glyph := c.Glyph
		if glyph == "" {
			glyph = string(cell.Default)
		}
		b.Append(glyph)
	}
	b.Append(color.Reset)
}

// Decode returns a copy of buf. It neither reads the EncodeStart/EncodeEnd
// markers nor parses a serialized frame; the round-trip test uses it to
// check that marking leaves the cell sequence itself unchanged.
func Decode(buf []cell.Cell) []cell.Cell {
	out := make([]cell.Cell, len(buf))
	copy(out, buf)
	return out
}

// Emitter owns the single write call that puts a serialized frame on the
// output handle (spec §5: "terminal output handle: written only by the
// render thread").
type Emitter struct {
	Write func(frame string) error
}

// Emit serializes buf and performs the single write. A nil Write is a
// configuration error the caller already logged when constructing the
// engine; Emit turns it into a plain error here instead of panicking.
func (e Emitter) Emit(buf []cell.Cell, width int, wordWrap bool) error {
	if e.Write == nil {
		return fmt.Errorf("encode: no output handle configured")
	}
	Mark(buf, width)
	return e.Write(Serialize(buf, width, wordWrap))
}
