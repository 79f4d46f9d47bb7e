package postfx

import (
	"testing"

	"github.com/ember-tui/ggui/cell"
	"github.com/ember-tui/ggui/color"
	"github.com/ember-tui/ggui/style"
)

func grid(w, h int) Grid {
	cells := make([]cell.Cell, w*h)
	for i := range cells {
		cells[i] = cell.Blank(color.RGBA{}, color.RGBA{A: 255})
	}
	return Grid{Cells: cells, Width: w, Height: h}
}

func TestOpacityNoOpAtOne(t *testing.T) {
	g := grid(2, 2)
	got := Opacity(g, 1.0)
	for i := range got.Cells {
		if got.Cells[i] != g.Cells[i] {
			t.Errorf("Opacity(1.0) should be a no-op at cell %d", i)
		}
	}
}

func TestOpacityScalesAlpha(t *testing.T) {
	g := grid(1, 1)
	got := Opacity(g, 0.5)
	if got.Cells[0].Background.A >= g.Cells[0].Background.A {
		t.Errorf("Opacity(0.5) should reduce alpha, got %d from %d",
			got.Cells[0].Background.A, g.Cells[0].Background.A)
	}
}

func TestShadowDisabledIsNoOp(t *testing.T) {
	g := grid(3, 3)
	got := Shadow(g, style.Shadow{Enabled: false})
	for i := range got.Cells {
		if got.Cells[i] != g.Cells[i] {
			t.Errorf("disabled shadow should not modify the grid")
		}
	}
}

func TestShadowKeepsOriginalSize(t *testing.T) {
	g := grid(4, 4)
	out := Shadow(g, style.Shadow{Enabled: true, DX: 1, DY: 1, Opacity: 1, Length: 2, Color: color.RGB{R: 10}})
	if out.Width != g.Width || out.Height != g.Height {
		t.Errorf("shadow changed buffer size: got %dx%d want %dx%d", out.Width, out.Height, g.Width, g.Height)
	}
}
