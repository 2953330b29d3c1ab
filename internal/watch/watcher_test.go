package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcher_HintOnSessionWrite(t *testing.T) {
	claudeDir := t.TempDir()
	projDir := filepath.Join(claudeDir, "projects", "-home-user-a")
	if err := os.MkdirAll(projDir, 0o755); err != nil {
		t.Fatal(err)
	}

	w, err := New(claudeDir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer func() { _ = w.Close() }()

	path := filepath.Join(projDir, "s1.jsonl")
	if err := os.WriteFile(path, []byte(`{"type":"user"}`+"\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	select {
	case <-w.Hints:
	case <-time.After(3 * time.Second):
		t.Fatal("no hint after session file write")
	}
}

func TestWatcher_DebouncesBursts(t *testing.T) {
	claudeDir := t.TempDir()
	projDir := filepath.Join(claudeDir, "projects", "-home-user-a")
	if err := os.MkdirAll(projDir, 0o755); err != nil {
		t.Fatal(err)
	}

	w, err := New(claudeDir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer func() { _ = w.Close() }()

	path := filepath.Join(projDir, "s1.jsonl")
	for i := 0; i < 10; i++ {
		f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := f.WriteString(`{"type":"user"}` + "\n"); err != nil {
			t.Fatal(err)
		}
		_ = f.Close()
	}

	select {
	case <-w.Hints:
	case <-time.After(3 * time.Second):
		t.Fatal("no hint after burst")
	}

	// The burst collapses into at most one buffered hint.
	time.Sleep(500 * time.Millisecond)
	select {
	case <-w.Hints:
		// A second hint is possible if a write landed after the first
		// debounce window fired; more than that would mean no coalescing.
		select {
		case <-w.Hints:
			t.Error("hints not debounced")
		default:
		}
	default:
	}
}

func TestWatcher_MissingProjectsDir(t *testing.T) {
	w, err := New(filepath.Join(t.TempDir(), "nope"))
	if err != nil {
		t.Fatalf("New on missing dir: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}

func TestWatcher_CloseIdempotent(t *testing.T) {
	w, err := New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("first Close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
}
