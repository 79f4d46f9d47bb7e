package canvas

import (
	"testing"

	"github.com/ember-tui/ggui/cell"
)

func TestSetOnPlainSlotOverwritesStaticCell(t *testing.T) {
	tc := NewTerminalCanvas(2, 2)
	tc.Set(0, 0, cell.Cell{Glyph: "a"})
	tc.Set(0, 0, cell.Cell{Glyph: "b"})
	if tc.slots[0].static.Glyph != "b" {
		t.Errorf("expected second Set to overwrite, got %+v", tc.slots[0])
	}
}

func TestSetOnSpriteSlotAppendsFrame(t *testing.T) {
	tc := NewTerminalCanvas(2, 2)
	tc.SetSprite(0, 0, &Sprite{Frames: []cell.Cell{{Glyph: "a"}}})
	tc.Set(0, 0, cell.Cell{Glyph: "b"})

	frames := tc.slots[0].sprite.Frames
	if len(frames) != 2 || frames[1].Glyph != "b" {
		t.Errorf("expected Set to push a frame onto the existing sprite, got %+v", frames)
	}
}

func TestRegroupBatchesAdjacentAnimatedSlots(t *testing.T) {
	tc := NewTerminalCanvas(4, 1)
	for x := 0; x < 4; x++ {
		tc.SetSprite(x, 0, &Sprite{Frames: []cell.Cell{{Glyph: "a"}, {Glyph: "b"}}})
	}
	if tc.groups[0] != 4 {
		t.Errorf("expected all four animated slots grouped together, got groups=%v", tc.groups)
	}
}

func TestRegroupSplitsOnStaticSlot(t *testing.T) {
	tc := NewTerminalCanvas(3, 1)
	tc.SetSprite(0, 0, &Sprite{Frames: []cell.Cell{{Glyph: "a"}, {Glyph: "b"}}})
	tc.Set(1, 0, cell.Cell{Glyph: "x"})
	tc.SetSprite(2, 0, &Sprite{Frames: []cell.Cell{{Glyph: "a"}, {Glyph: "b"}}})

	total := 0
	for _, g := range tc.groups {
		total += g
	}
	if total != 3 {
		t.Errorf("expected every slot accounted for exactly once, got groups=%v summing to %d", tc.groups, total)
	}
	if tc.groups[1] != 1 {
		t.Errorf("expected the static slot to be its own group of one, got %v", tc.groups)
	}
}

func TestAdvanceRendersAnimatedAndStaticSlots(t *testing.T) {
	tc := NewTerminalCanvas(2, 1)
	tc.Set(0, 0, cell.Cell{Glyph: "s"})
	tc.SetSprite(1, 0, &Sprite{Frames: []cell.Cell{{Glyph: "a"}, {Glyph: "b"}}, Speed: 1})

	tc.Advance(0)
	if tc.rendered[0].Glyph != "s" {
		t.Errorf("expected static slot unchanged by Advance, got %+v", tc.rendered[0])
	}
	if tc.rendered[1].Glyph != "a" {
		t.Errorf("expected sprite slot at tick 0 to show frame 0, got %+v", tc.rendered[1])
	}
}

func TestResizeGrowthPreservesExistingSlots(t *testing.T) {
	tc := NewTerminalCanvas(2, 2)
	tc.Set(1, 1, cell.Cell{Glyph: "z"})
	tc.resize(3, 3)
	i, ok := tc.index(1, 1)
	if !ok || tc.slots[i].static.Glyph != "z" {
		t.Errorf("expected slot (1,1) preserved after growth, got %+v", tc.slots)
	}
}

func TestOnDrawCopiesRenderedFrameIntoBuffer(t *testing.T) {
	tc := NewTerminalCanvas(2, 1)
	tc.Set(0, 0, cell.Cell{Glyph: "q"})
	tc.Advance(0)

	buf := make([]cell.Cell, 2)
	out := tc.OnDraw(buf, 2, 1)
	if out[0].Glyph != "q" {
		t.Errorf("expected OnDraw to copy the rendered frame, got %+v", out[0])
	}
}
