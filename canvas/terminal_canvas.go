package canvas

import (
	"github.com/ember-tui/ggui/cell"
	"github.com/ember-tui/ggui/internal/simdmath"
)

// maxGroupSize bounds how many adjacent sprite slots the grouping pass
// batches into one simdmath call — spec §4.8's "power of two up to the
// SIMD width (4/8/16 floats)". The grouping walk is independent of the
// scalar-vs-vector math itself (spec §9 design note), so this stays fixed
// regardless of simdmath.Width().
const maxGroupSize = 16

// minGroupSize is the smallest unit the recursive split bottoms out at: a
// single slot, batched alone.
const minGroupSize = 1

// slot is one cell position on a TerminalCanvas: either a static cell or
// an animated Sprite.
type slot struct {
	sprite *Sprite
	static cell.Cell
}

func (s slot) animated() bool { return s.sprite != nil && len(s.sprite.Frames) >= 2 }

// TerminalCanvas is a grid of animated sprite cells composited into an
// element's buffer each tick (spec.md §4.8, §4.13).
type TerminalCanvas struct {
	width, height int
	slots         []slot
	groups        []int // groups[i] > 0 marks i as the start of a batch of that length
	rendered      []cell.Cell
}

// NewTerminalCanvas returns a width x height terminal canvas with every
// slot blank.
func NewTerminalCanvas(width, height int) *TerminalCanvas {
	tc := &TerminalCanvas{width: width, height: height}
	tc.slots = make([]slot, width*height)
	tc.rendered = make([]cell.Cell, width*height)
	tc.regroup()
	return tc
}

func (tc *TerminalCanvas) index(x, y int) (int, bool) {
	if x < 0 || y < 0 || x >= tc.width || y >= tc.height {
		return 0, false
	}
	return y*tc.width + x, true
}

// Set writes a single static cell at (x,y). Per the supplemented
// multi-frame behavior, a slot already holding a Sprite instead gains c as
// an additional frame rather than being overwritten — call SetSprite to
// replace a slot's animation outright.
func (tc *TerminalCanvas) Set(x, y int, c cell.Cell) {
	i, ok := tc.index(x, y)
	if !ok {
		return
	}
	if tc.slots[i].sprite != nil {
		tc.slots[i].sprite.AddFrame(c)
		tc.regroup()
		return
	}
	tc.slots[i].static = c
}

// SetSprite installs an animated sprite at (x,y), replacing whatever was
// there.
func (tc *TerminalCanvas) SetSprite(x, y int, sprite *Sprite) {
	i, ok := tc.index(x, y)
	if !ok {
		return
	}
	tc.slots[i].sprite = sprite
	tc.regroup()
}

// regroup recomputes the batching plan described in spec §4.8's "Grouping
// heuristic": walk the buffer from the end toward the start in steps of
// maxGroupSize; a window whose every slot is animated is recorded as one
// group at its start index, otherwise the window is bisected recursively
// down to single slots.
func (tc *TerminalCanvas) regroup() {
	n := len(tc.slots)
	groups := make([]int, n)
	for end := n; end > 0; {
		start := end - maxGroupSize
		if start < 0 {
			start = 0
		}
		splitGroup(tc.slots, start, end, groups)
		end = start
	}
	tc.groups = groups
}

func splitGroup(slots []slot, start, end int, groups []int) {
	n := end - start
	if n <= minGroupSize {
		for i := start; i < end; i++ {
			groups[i] = 1
		}
		return
	}
	if allAnimated(slots[start:end]) {
		groups[start] = n
		return
	}
	mid := start + n/2
	splitGroup(slots, start, mid, groups)
	splitGroup(slots, mid, end, groups)
}

func allAnimated(s []slot) bool {
	for _, sl := range s {
		if !sl.animated() {
			return false
		}
	}
	return true
}

// resize reallocates slots/rendered on a dimension change, preserving the
// overlapping region, and recomputes the grouping plan — the same STRETCH
// reaction as Canvas. It runs from OnDraw and raises no stain bit of its
// own.
func (tc *TerminalCanvas) resize(width, height int) {
	next := make([]slot, width*height)
	minW, minH := width, height
	if tc.width < minW {
		minW = tc.width
	}
	if tc.height < minH {
		minH = tc.height
	}
	for y := 0; y < minH; y++ {
		copy(next[y*width:y*width+minW], tc.slots[y*tc.width:y*tc.width+minW])
	}
	tc.width, tc.height = width, height
	tc.slots = next
	tc.rendered = make([]cell.Cell, width*height)
	tc.regroup()
}

// Advance recomputes every animated slot's cell for globalTick, batching
// adjacent animated slots through simdmath.ComputeTicks per the grouping
// plan. Static slots and single-frame sprites bypass the batch entirely.
func (tc *TerminalCanvas) Advance(globalTick int) {
	for i := 0; i < len(tc.slots); {
		length := tc.groups[i]
		if length == 0 {
			i++
			continue
		}
		tc.advanceGroup(globalTick, i, length)
		i += length
	}
}

func (tc *TerminalCanvas) advanceGroup(globalTick, start, length int) {
	group := tc.slots[start : start+length]
	if length == 1 {
		tc.rendered[start] = tc.renderSlot(globalTick, group[0])
		return
	}

	offsets := make([]int, length)
	speeds := make([]int, length)
	frameDistances := make([]int, length)
	frameCounts := make([]int, length)
	for j, sl := range group {
		if sl.sprite == nil {
			continue
		}
		offsets[j] = sl.sprite.Offset
		speeds[j] = sl.sprite.Speed
		frameDistances[j] = sl.sprite.FrameDistance()
		frameCounts[j] = len(sl.sprite.Frames)
	}
	ticks := simdmath.ComputeTicks(globalTick, offsets, speeds, frameDistances, frameCounts)
	for j, sl := range group {
		if sl.sprite == nil {
			tc.rendered[start+j] = sl.static
			continue
		}
		tc.rendered[start+j] = sl.sprite.render(ticks[j])
	}
}

func (tc *TerminalCanvas) renderSlot(globalTick int, sl slot) cell.Cell {
	if sl.sprite == nil {
		return sl.static
	}
	if len(sl.sprite.Frames) < 2 {
		return sl.sprite.render(simdmath.SpriteTick{})
	}
	ticks := simdmath.ComputeTicks(globalTick,
		[]int{sl.sprite.Offset}, []int{sl.sprite.Speed},
		[]int{sl.sprite.FrameDistance()}, []int{len(sl.sprite.Frames)})
	return sl.sprite.render(ticks[0])
}

// OnDraw is the style.OnDraw callback. It resizes to match the element's
// current buffer dimensions and copies the last Advance-computed frame
// into buf; callers drive animation by calling Advance once per scheduler
// tick (spec §4.16) before the next render.
func (tc *TerminalCanvas) OnDraw(buf []cell.Cell, width, height int) []cell.Cell {
	if width != tc.width || height != tc.height {
		tc.resize(width, height)
	}
	for i := range buf {
		if i >= len(tc.rendered) {
			break
		}
		if tc.rendered[i].Glyph != "" {
			buf[i] = tc.rendered[i]
		}
	}
	return buf
}
