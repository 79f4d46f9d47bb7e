// Command demo builds a bordered window with a title, a button wired to a
// click handler, and a terminal-canvas sprite, driving the ggui render
// pipeline, event dispatcher, and canvas animator end to end
// (SPEC_FULL.md §4.19).
package main

import (
	"context"
	"fmt"

	"github.com/ember-tui/ggui"
	"github.com/ember-tui/ggui/canvas"
	"github.com/ember-tui/ggui/cell"
	"github.com/ember-tui/ggui/color"
	"github.com/ember-tui/ggui/event"
	"github.com/ember-tui/ggui/input"
	"github.com/ember-tui/ggui/style"
)

func main() {
	engine, err := ggui.New(ggui.Config{EnableMouse: true, WordWrap: true})
	if err != nil {
		fmt.Println("failed to start ggui:", err)
		return
	}

	root := engine.Arena.Get(engine.Root())
	root.ApplyChain(style.Chain{}.
		Append(style.NewBorderEnabled(true, style.Value)).
		Append(style.NewColor(style.Normal, style.RoleBorder, color.Named["cyan"], style.Value)).
		Append(style.NewColor(style.Normal, style.RoleBackground, color.Named["black"], style.Value)).
		Append(style.NewString(style.FieldTitle, "Demo", style.Value)),
	)

	button := engine.Arena.New()
	buttonEl := engine.Arena.Get(button)
	clicks := 0
	buttonText := func() string { return fmt.Sprintf("[ clicked %d times ]", clicks) }
	buttonEl.ApplyChain(style.Chain{}.
		Append(style.NewPosition(style.Px(2), style.Px(1), style.Px(0), style.Value)).
		Append(style.NewWidth(style.Px(24), style.Value)).
		Append(style.NewHeight(style.Px(1), style.Value)).
		Append(style.NewColor(style.Normal, style.RoleText, color.Named["white"], style.Value)).
		Append(style.NewColor(style.Normal, style.RoleBackground, color.Named["blue"], style.Value)).
		Append(style.NewColor(style.Focus, style.RoleBackground, color.Named["green"], style.Value)).
		Append(style.NewString(style.FieldText, buttonText(), style.Value)),
	)
	root.AddChild(buttonEl)

	engine.Dispatcher.Register(event.Action{
		ID:       "button-click",
		Host:     button,
		Criteria: input.MouseLeft | input.ClickSelect,
		Fn: func(in input.Input) (bool, error) {
			clicks++
			buttonEl.ApplyChain(style.Chain{}.Append(style.NewString(style.FieldText, buttonText(), style.Value)))
			engine.MarkDirty()
			return true, nil
		},
	})

	canvasHost := engine.Arena.New()
	canvasEl := engine.Arena.Get(canvasHost)
	tc := canvas.NewTerminalCanvas(8, 1)
	sprite := &canvas.Sprite{Speed: 1}
	frameColors := []color.RGB{color.Named["red"], color.Named["yellow"], color.Named["green"], color.Named["cyan"]}
	for _, c := range frameColors {
		sprite.AddFrame(cell.New('*', color.Opaque(c), color.RGBA{A: 255}))
	}
	tc.SetSprite(0, 0, sprite)
	engine.AddAnimator(tc)

	canvasEl.ApplyChain(style.Chain{}.
		Append(style.NewPosition(style.Px(2), style.Px(3), style.Px(0), style.Value)).
		Append(style.NewWidth(style.Px(8), style.Value)).
		Append(style.NewHeight(style.Px(1), style.Value)),
	)
	canvasEl.Style.OnDraw = tc.OnDraw
	root.AddChild(canvasEl)

	if err := engine.Run(context.Background()); err != nil && err != context.Canceled {
		fmt.Println("ggui exited:", err)
	}
}
