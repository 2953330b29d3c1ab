package source

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, path string, mtime time.Time) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(`{"type":"user"}`+"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.Chtimes(path, mtime, mtime); err != nil {
		t.Fatal(err)
	}
}

func TestDiscover_OrderAndFiltering(t *testing.T) {
	claudeDir := t.TempDir()
	projects := filepath.Join(claudeDir, "projects")

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	writeFile(t, filepath.Join(projects, "-home-user-a", "old.jsonl"), base)
	writeFile(t, filepath.Join(projects, "-home-user-b", "new.jsonl"), base.Add(time.Hour))
	writeFile(t, filepath.Join(projects, "-home-user-a", "notes.txt"), base.Add(2*time.Hour))
	writeFile(t, filepath.Join(projects, "-home-user-a", "subagents", "sub.jsonl"), base.Add(3*time.Hour))

	files := Discover(claudeDir)

	if len(files) != 2 {
		t.Fatalf("len(files) = %d, want 2", len(files))
	}
	if filepath.Base(files[0].Path) != "new.jsonl" {
		t.Errorf("files[0] = %q, want new.jsonl first (newest)", files[0].Path)
	}
	if filepath.Base(files[1].Path) != "old.jsonl" {
		t.Errorf("files[1] = %q, want old.jsonl", files[1].Path)
	}
	if files[0].Size == 0 || files[0].Mtime == 0 {
		t.Error("stat data not captured during the walk")
	}
}

func TestDiscover_MissingRoot(t *testing.T) {
	files := Discover(filepath.Join(t.TempDir(), "does-not-exist"))
	if len(files) != 0 {
		t.Errorf("len(files) = %d, want 0", len(files))
	}
}

func TestPrettyProjectPath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"-home-user-myproj", "~/myproj"},
		{"-home-user-projects-gitlore", "~/projects-gitlore"},
		{"plain-name", "plain-name"},
		{"-opt-work", "-opt-work"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := PrettyProjectPath(tt.in); got != tt.want {
			t.Errorf("PrettyProjectPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
