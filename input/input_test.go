package input

import (
	"testing"
	"time"
)

func feed(bytes []byte) []Input {
	raw := make(chan byte, len(bytes))
	for _, b := range bytes {
		raw <- b
	}
	close(raw)
	out := make(chan Input, 16)
	done := make(chan struct{})

	go func() {
		Translator{}.Run(raw, out, done)
		close(out)
	}()

	var got []Input
	for in := range out {
		got = append(got, in)
	}
	return got
}

func TestControlLetterExceptions(t *testing.T) {
	got := feed([]byte{8, 9, 13})
	want := []Criteria{Backspace | KeyPress, Tab | KeyPress, Enter | KeyPress | ClickSelect}
	if len(got) != len(want) {
		t.Fatalf("got %d events, want %d: %+v", len(got), len(want), got)
	}
	for i, w := range want {
		if got[i].Criteria != w {
			t.Errorf("event %d: got %v want %v", i, got[i].Criteria, w)
		}
	}
}

func TestControlLetterShiftsToLowercase(t *testing.T) {
	got := feed([]byte{1}) // Ctrl+A
	if len(got) != 1 {
		t.Fatalf("got %d events, want 1", len(got))
	}
	if got[0].Data != 'a' || !got[0].Criteria.Has(Control) {
		t.Errorf("got %+v, want Control with data 'a'", got[0])
	}
}

func TestPrintableShiftInference(t *testing.T) {
	got := feed([]byte{'A'})
	if len(got) != 1 || !got[0].Criteria.Has(Shift) {
		t.Errorf("expected uppercase byte to imply Shift, got %+v", got)
	}
}

func TestArrowKeys(t *testing.T) {
	got := feed([]byte{0x1b, '[', 'A', 0x1b, '[', 'B', 0x1b, '[', 'C', 0x1b, '[', 'D'})
	want := []Criteria{ArrowUp | KeyPress, ArrowDown | KeyPress, ArrowRight | KeyPress, ArrowLeft | KeyPress}
	if len(got) != len(want) {
		t.Fatalf("got %d events, want %d: %+v", len(got), len(want), got)
	}
	for i, w := range want {
		if got[i].Criteria != w {
			t.Errorf("event %d: got %v want %v", i, got[i].Criteria, w)
		}
	}
}

func TestShiftTab(t *testing.T) {
	got := feed([]byte{0x1b, '[', 'Z'})
	if len(got) != 1 || !got[0].Criteria.Has(ShiftTab) {
		t.Errorf("expected Shift+Tab, got %+v", got)
	}
}

func TestMouseLeftClickAtCoordinates(t *testing.T) {
	got := feed([]byte{0x1b, '[', 'M', 0x20, 32 + 5, 32 + 2})
	if len(got) != 1 {
		t.Fatalf("got %d events, want 1: %+v", len(got), got)
	}
	in := got[0]
	if !in.Criteria.Has(MouseLeft) || !in.Criteria.Has(ClickSelect) {
		t.Errorf("expected left-click select, got %+v", in)
	}
	if in.X != 5 || in.Y != 2 {
		t.Errorf("expected coordinates (5,2), got (%d,%d)", in.X, in.Y)
	}
}

func TestMouseModifierBits(t *testing.T) {
	// bit 2 (0x04) shift, bit 4 (0x10) control, button bits = release (3)
	got := feed([]byte{0x1b, '[', 'M', 0x04 | 0x10 | 0x03, 32 + 1, 32 + 1})
	if len(got) != 1 {
		t.Fatalf("got %d events, want 1", len(got))
	}
	in := got[0]
	if !in.Criteria.Has(Shift) || !in.Criteria.Has(Control) || !in.Criteria.Has(MouseRelease) {
		t.Errorf("expected shift+control release, got %+v", in)
	}
}

func TestAltByte(t *testing.T) {
	got := feed([]byte{0x1b, 'x'})
	if len(got) != 1 || !got[0].Criteria.Has(Alt) || got[0].Data != 'x' {
		t.Errorf("expected Alt+x, got %+v", got)
	}
}

func TestKeyboardStateSynthesizeRepostsHeldKeys(t *testing.T) {
	ks := NewKeyboardState()
	now := time.Unix(0, 0)
	ks.Observe([]Input{{Criteria: ArrowUp | KeyPress, Data: 0}}, now)

	if !ks.JustPressed(0) {
		t.Errorf("expected data 0 to read as just-pressed on its first observation")
	}

	reposted := ks.Synthesize()
	if len(reposted) != 1 {
		t.Fatalf("expected one synthetic repost, got %d", len(reposted))
	}

	reposted2 := ks.Synthesize()
	if len(reposted2) != 1 {
		t.Fatalf("expected the held key to still repost, got %d", len(reposted2))
	}
	if ks.JustPressed(0) {
		t.Errorf("expected data 0 to no longer be just-pressed on the second frame")
	}

	ks.Release(0)
	if ks.JustPressed(0) {
		t.Errorf("released key should not read as pressed")
	}
}
