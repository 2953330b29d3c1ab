package pipeline

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/theirongolddev/ccmonitor/internal/model"
	"github.com/theirongolddev/ccmonitor/internal/source"
	"github.com/theirongolddev/ccmonitor/internal/store"
)

// CachedLoadResult extends LoadResult with cache metadata.
type CachedLoadResult struct {
	LoadResult
	CacheHits int
	Reparsed  int
}

// LoadWithCache discovers session files, diffs them against the cache by
// mtime and size, reparses only changed files, and returns the combined set
// in discovery order. Because re-parsing is idempotent and files only grow,
// serving an unchanged file from cache is indistinguishable from parsing it
// again.
func LoadWithCache(claudeDir string, cache *store.Cache) (*CachedLoadResult, error) {
	files := source.Discover(claudeDir)

	result := &CachedLoadResult{
		LoadResult: LoadResult{TotalFiles: len(files)},
	}
	if len(files) == 0 {
		return result, nil
	}

	tracked, err := cache.GetTrackedFiles()
	if err != nil {
		return nil, fmt.Errorf("reading cache: %w", err)
	}

	// Partition into unchanged and changed, remembering each file's slot so
	// discovery order survives the split.
	sessions := make([]model.SessionRecord, len(files))
	var toReparse []int
	var unchanged []string
	unchangedSlot := make(map[string]int)

	for i, f := range files {
		cached, ok := tracked[f.Path]
		if ok && cached.MtimeNs == f.Mtime && cached.SizeBytes == f.Size {
			unchanged = append(unchanged, f.Path)
			unchangedSlot[f.Path] = i
		} else {
			toReparse = append(toReparse, i)
		}
	}

	if len(unchanged) > 0 {
		cachedSessions, err := cache.LoadSessions(unchanged)
		if err != nil {
			return nil, fmt.Errorf("loading cached sessions: %w", err)
		}
		for path, s := range cachedSessions {
			sessions[unchangedSlot[path]] = s
		}
		// Cache rows missing despite a tracker hit get reparsed.
		for _, path := range unchanged {
			if _, ok := cachedSessions[path]; !ok {
				toReparse = append(toReparse, unchangedSlot[path])
			}
		}
	}

	// CacheHits and Reparsed always sum to TotalFiles.
	result.CacheHits = len(files) - len(toReparse)
	result.Reparsed = len(toReparse)

	if len(toReparse) > 0 {
		numWorkers := runtime.GOMAXPROCS(0)
		if numWorkers < 1 {
			numWorkers = 4
		}
		if numWorkers > len(toReparse) {
			numWorkers = len(toReparse)
		}

		work := make(chan int, len(toReparse))
		var wg sync.WaitGroup

		for _, idx := range toReparse {
			work <- idx
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

		// Persist fresh parses; a save failure only costs a reparse later.
		for _, idx := range toReparse {
			_ = cache.SaveSession(sessions[idx])
		}
	}

	live := make(map[string]struct{}, len(files))
	for _, f := range files {
		live[f.Path] = struct{}{}
	}
	_ = cache.Prune(live)

	result.Sessions = sessions
	return result, nil
}
