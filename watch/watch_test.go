package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatchFiresOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "watched.txt")
	if err := os.WriteFile(path, []byte("initial"), 0o644); err != nil {
		t.Fatalf("seed file: %v", err)
	}

	w, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer w.Close()

	fired := make(chan struct{}, 1)
	if err := w.Watch(path, func() { fired <- struct{}{} }); err != nil {
		t.Fatalf("Watch: %v", err)
	}

	if err := os.WriteFile(path, []byte("changed"), 0o644); err != nil {
		t.Fatalf("rewrite file: %v", err)
	}

	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Errorf("expected watch handler to fire on write")
	}
}

func TestPollFallbackFiresOnModTimeAdvance(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "polled.txt")
	if err := os.WriteFile(path, []byte("a"), 0o644); err != nil {
		t.Fatalf("seed file: %v", err)
	}

	w := &Watcher{handlers: map[string]func(){}, polled: map[string]polledFile{}}
	info, _ := os.Stat(path)
	fired := false
	w.polled[path] = polledFile{modTime: info.ModTime(), fn: func() { fired = true }}

	time.Sleep(10 * time.Millisecond)
	future := time.Now().Add(time.Hour)
	if err := os.Chtimes(path, future, future); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	w.Poll()

	if !fired {
		t.Errorf("expected poll fallback to fire after modtime advanced")
	}
}

func TestCaptureStdoutObservesWrites(t *testing.T) {
	var got []byte
	restore, err := CaptureStdout(func(p []byte) {
		got = append(got, p...)
	})
	if err != nil {
		t.Fatalf("CaptureStdout: %v", err)
	}

	os.Stdout.WriteString("hello")
	restore()

	if string(got) != "hello" {
		t.Errorf("got %q, want %q", got, "hello")
	}
}
