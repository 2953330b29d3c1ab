package source

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// subagentMarker is the path segment Claude Code uses for internally spawned
// sub-sessions. Those files are excluded from discovery.
const subagentMarker = "subagents"

// DiscoveredFile is one candidate session file with the stat data discovery
// already paid for.
type DiscoveredFile struct {
	Path  string
	Size  int64
	Mtime int64 // unix nanos
}

// Discover walks <claudeDir>/projects for session JSONL files, excluding
// subagent sessions, and returns them ordered by modification time descending
// (newest first). A missing projects directory yields an empty list, not an
// error.
func Discover(claudeDir string) []DiscoveredFile {
	projectsDir := filepath.Join(claudeDir, "projects")

	info, err := os.Stat(projectsDir)
	if err != nil || !info.IsDir() {
		return nil
	}

	var files []DiscoveredFile

	_ = filepath.WalkDir(projectsDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil //nolint:nilerr // skip unreadable entries
		}
		if d.IsDir() {
			return nil
		}
		if filepath.Ext(path) != ".jsonl" {
			return nil
		}

		rel, _ := filepath.Rel(projectsDir, path)
		for _, seg := range strings.Split(rel, string(filepath.Separator)) {
			if seg == subagentMarker {
				return nil
			}
		}

		fi, err := d.Info()
		if err != nil {
			return nil //nolint:nilerr
		}

		files = append(files, DiscoveredFile{
			Path:  path,
			Size:  fi.Size(),
			Mtime: fi.ModTime().UnixNano(),
		})
		return nil
	})

	sort.Slice(files, func(i, j int) bool {
		return files[i].Mtime > files[j].Mtime
	})

	return files
}

// PrettyProjectPath turns an encoded project directory name like
// "-home-user-projects-gitlore" into something readable ("~/gitlore").
// Claude Code encodes the absolute cwd by replacing "/" with "-".
func PrettyProjectPath(project string) string {
	if !strings.HasPrefix(project, "-") {
		return project
	}
	parts := strings.Split(strings.TrimLeft(project, "-"), "-")
	if len(parts) >= 3 && parts[0] == "home" {
		return "~/" + strings.Join(parts[2:], "-")
	}
	return project
}
