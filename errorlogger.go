package ggui

import (
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ember-tui/ggui/color"
	"github.com/ember-tui/ggui/elem"
	"github.com/ember-tui/ggui/memory"
	"github.com/ember-tui/ggui/style"
)

// errorConsoleLifetime is how long the in-UI error console stays visible
// after its last message (a repeated message also restarts the countdown),
// spec §7: "auto-dismissed after ≈ 30s".
const errorConsoleLifetime = 30 * time.Second

// ErrorLogger is the `_ERROR_LOGGER_` element spec.md §7 describes: an
// auto-created, auto-dismissed one-row element surfacing non-fatal
// errors to the user, coalescing identical consecutive messages with a
// repetition counter.
type ErrorLogger struct {
	mu sync.Mutex

	arena  *elem.Arena
	handle elem.Handle
	mem    *memory.List
	log    *logrus.Logger

	last    string
	repeats int
}

func newErrorLogger(arena *elem.Arena, root elem.Handle, mem *memory.List, log *logrus.Logger) *ErrorLogger {
	h := arena.New()
	el := arena.Get(h)
	el.ApplyChain(style.Chain{}.
		Append(style.NewPosition(style.Px(0), style.Px(0), style.Px(style.MaxZ), style.Value)).
		Append(style.NewWidth(style.Pct(100), style.Value)).
		Append(style.NewHeight(style.Px(1), style.Value)).
		Append(style.NewBool(style.FieldAllowOverflow, true, style.Value)).
		Append(style.NewColor(style.Normal, style.RoleText, color.Named["white"], style.Value)).
		Append(style.NewColor(style.Normal, style.RoleBackground, color.Named["red"], style.Value)).
		Append(style.NewDisplay(false, style.Value)),
	)
	arena.Get(root).AddChild(el)
	return &ErrorLogger{arena: arena, handle: h, mem: mem, log: log}
}

// Report logs msg at the given logrus level and surfaces it in the error
// console, coalescing it with the previous message if identical (spec §7:
// "identical consecutive messages are coalesced with a repetition
// counter") and (re)scheduling the auto-dismiss timer.
func (l *ErrorLogger) Report(level logrus.Level, msg string, fields logrus.Fields) {
	l.log.WithFields(fields).Log(level, msg)

	l.mu.Lock()
	defer l.mu.Unlock()

	if msg == l.last {
		l.repeats++
	} else {
		l.last = msg
		l.repeats = 1
	}

	text := msg
	if l.repeats > 1 {
		text = fmt.Sprintf("%s (x%d)", msg, l.repeats)
	}

	el := l.arena.Get(l.handle)
	el.ApplyChain(style.Chain{}.
		Append(style.NewString(style.FieldText, text, style.Value)).
		Append(style.NewDisplay(true, style.Value)),
	)

	l.mem.Add(memory.Job{
		ID:       "_ERROR_LOGGER_",
		Start:    time.Now(),
		Duration: errorConsoleLifetime,
		Prolong:  true,
		Fn:       l.dismiss,
	})
}

// dismiss is the single stable closure every auto-dismiss Job shares, so
// memory.List's Prolong coalescing (spec §4.9 step 1, compares by code
// pointer) merges repeated Report calls into one pending dismissal instead
// of stacking up one job per message.
func (l *ErrorLogger) dismiss() (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	el := l.arena.Get(l.handle)
	el.ApplyChain(style.Chain{}.Append(style.NewDisplay(false, style.Value)))
	l.last = ""
	l.repeats = 0
	return true, nil
}
