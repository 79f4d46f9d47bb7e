package canvas

import (
	"github.com/ember-tui/ggui/cell"
	"github.com/ember-tui/ggui/color"
	"github.com/ember-tui/ggui/internal/simdmath"
)

// Sprite is a fixed-speed animation loop over a sequence of frames, the
// per-slot unit the terminal canvas batches through internal/simdmath
// (spec.md §4.8). Offset staggers sprites that share a speed so they don't
// all land on the same frame at once; Speed scales how fast the tick
// counter advances for this sprite.
type Sprite struct {
	Frames []cell.Cell
	Offset int
	Speed  int
}

// FrameDistance is how many ticks the shared 0-255 tick counter spends on
// each frame: 256 / len(Frames), truncated. It is a power of two only when
// len(Frames) is; otherwise the last 256 % len(Frames) ticks of each cycle
// fall past the final frame's slice. AddFrame appends without adjusting
// the frame count.
func (s *Sprite) FrameDistance() int {
	if len(s.Frames) == 0 {
		return 0
	}
	return 256 / len(s.Frames)
}

// AddFrame appends a frame — the supplemented behavior from
// original_source/Sprite.cpp where writing a single cell to an animated
// slot pushes a new frame onto the loop instead of overwriting frame 0.
func (s *Sprite) AddFrame(c cell.Cell) {
	s.Frames = append(s.Frames, c)
}

// render blends between the below/above frames selected by tick, lerping
// foreground and background independently (spec §4.8: "mix blends the
// glyph's color channels toward the next frame").
func (s *Sprite) render(tick simdmath.SpriteTick) cell.Cell {
	if len(s.Frames) == 0 {
		return cell.Cell{}
	}
	if len(s.Frames) == 1 {
		return s.Frames[0]
	}
	below := s.Frames[tick.Below%len(s.Frames)]
	above := s.Frames[tick.Above%len(s.Frames)]
	return cell.Cell{
		Glyph:      below.Glyph,
		Foreground: color.Lerp(below.Foreground, above.Foreground, tick.Mix),
		Background: color.Lerp(below.Background, above.Background, tick.Mix),
	}
}
