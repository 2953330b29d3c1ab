// Package pipeline orchestrates session discovery, parsing, caching, and
// aggregation for one refresh cycle.
package pipeline

import (
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/theirongolddev/ccmonitor/internal/model"
	"github.com/theirongolddev/ccmonitor/internal/source"
)

// LoadResult holds the output of one discovery+parse cycle.
type LoadResult struct {
	Sessions   []model.SessionRecord
	TotalFiles int
}

// Load discovers and parses all session files under claudeDir. Files are
// parsed concurrently with a bounded worker pool; each SessionRecord is
// constructed independently so there is no shared mutable state across
// workers. The discovery order (newest first) is preserved in the result.
func Load(claudeDir string) *LoadResult {
	files := source.Discover(claudeDir)

	result := &LoadResult{TotalFiles: len(files)}
	if len(files) == 0 {
		return result
	}

	numWorkers := runtime.GOMAXPROCS(0)
	if numWorkers < 1 {
		numWorkers = 4
	}
	if numWorkers > len(files) {
		numWorkers = len(files)
	}

	work := make(chan int, len(files))
	sessions := make([]model.SessionRecord, len(files))
	var wg sync.WaitGroup

	for i := range files {
		work <- i
	}
	close(work)

	wg.Add(numWorkers)
	for w := 0; w < numWorkers; w++ {
		go func() {
			defer wg.Done()
			for idx := range work {
				sessions[idx] = source.ParseFile(files[idx])
			}
		}()
	}

	wg.Wait()

	result.Sessions = sessions
	return result
}

// CachePath returns the location of the SQLite parse cache.
func CachePath() string {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, "ccmonitor", "sessions.db")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".cache", "ccmonitor", "sessions.db")
}
