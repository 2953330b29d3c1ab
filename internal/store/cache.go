// Package store provides a SQLite-backed cache of parsed session records.
//
// The cache is strictly an optimization: re-parsing a session file is
// idempotent, so a cache entry keyed by mtime+size is always equivalent to a
// fresh parse. Deleting the database loses nothing.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // register sqlite driver

	"github.com/theirongolddev/ccmonitor/internal/model"
)

// Cache provides SQLite-backed session caching.
type Cache struct {
	db *sql.DB
}

// Open opens or creates the cache database at the given path.
func Open(dbPath string) (*Cache, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("opening cache db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Cache{db: db}, nil
}

// Close closes the cache database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// FileInfo holds the tracked mtime and size for a file.
type FileInfo struct {
	MtimeNs   int64
	SizeBytes int64
}

// GetTrackedFiles returns file_path -> FileInfo for all tracked files.
func (c *Cache) GetTrackedFiles() (map[string]FileInfo, error) {
	rows, err := c.db.Query("SELECT file_path, mtime_ns, size_bytes FROM file_tracker")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	result := make(map[string]FileInfo)
	for rows.Next() {
		var path string
		var fi FileInfo
		if err := rows.Scan(&path, &fi.MtimeNs, &fi.SizeBytes); err != nil {
			return nil, err
		}
		result[path] = fi
	}
	return result, rows.Err()
}

// SaveSession stores a parsed session, its message sequence, and its file
// tracking info. An existing entry for the same file path is replaced.
func (c *Cache) SaveSession(s model.SessionRecord) error {
	tx, err := c.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC().Format(time.RFC3339)

	_, err = tx.Exec(`INSERT OR REPLACE INTO sessions
		(file_path, session_id, project_path, model, started_at, last_activity,
		 input_tokens, output_tokens, cache_creation, cache_read,
		 message_count, user_messages, assistant_messages,
		 latest_context_used, context_window, file_size, file_mtime_ns, parsed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.FilePath, s.SessionID, s.ProjectPath, s.Model, s.StartedAt, s.LastActivity,
		s.TotalInputTokens, s.TotalOutputTokens, s.TotalCacheCreationTokens, s.TotalCacheReadTokens,
		s.MessageCount, s.UserMessageCount, s.AssistantMessageCount,
		s.LatestContextUsed, s.ContextWindowSize, s.FileSize, s.FileMtime.UnixNano(), now,
	)
	if err != nil {
		return err
	}

	if _, err = tx.Exec("DELETE FROM session_messages WHERE file_path = ?", s.FilePath); err != nil {
		return err
	}

	for i, m := range s.Messages {
		_, err = tx.Exec(`INSERT INTO session_messages
			(file_path, seq, timestamp, model, input_tokens, output_tokens,
			 cache_creation, cache_read, message_type)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			s.FilePath, i, m.Timestamp, m.Model, m.InputTokens, m.OutputTokens,
			m.CacheCreationTokens, m.CacheReadTokens, m.MessageType,
		)
		if err != nil {
			return err
		}
	}

	_, err = tx.Exec(`INSERT OR REPLACE INTO file_tracker (file_path, mtime_ns, size_bytes)
		VALUES (?, ?, ?)`,
		s.FilePath, s.FileMtime.UnixNano(), s.FileSize,
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// LoadSessions returns the cached records for the given file paths. Paths with
// no cache entry are silently absent from the result.
func (c *Cache) LoadSessions(paths []string) (map[string]model.SessionRecord, error) {
	result := make(map[string]model.SessionRecord, len(paths))

	for _, path := range paths {
		s, err := c.loadSession(path)
		if err != nil {
			if err == sql.ErrNoRows {
				continue
			}
			return nil, err
		}
		result[path] = s
	}

	return result, nil
}

func (c *Cache) loadSession(path string) (model.SessionRecord, error) {
	var s model.SessionRecord
	var mtimeNs int64

	err := c.db.QueryRow(`SELECT file_path, session_id, project_path, model,
			started_at, last_activity,
			input_tokens, output_tokens, cache_creation, cache_read,
			message_count, user_messages, assistant_messages,
			latest_context_used, context_window, file_size, file_mtime_ns
		FROM sessions WHERE file_path = ?`, path).Scan(
		&s.FilePath, &s.SessionID, &s.ProjectPath, &s.Model,
		&s.StartedAt, &s.LastActivity,
		&s.TotalInputTokens, &s.TotalOutputTokens,
		&s.TotalCacheCreationTokens, &s.TotalCacheReadTokens,
		&s.MessageCount, &s.UserMessageCount, &s.AssistantMessageCount,
		&s.LatestContextUsed, &s.ContextWindowSize, &s.FileSize, &mtimeNs,
	)
	if err != nil {
		return s, err
	}
	s.FileMtime = time.Unix(0, mtimeNs)

	rows, err := c.db.Query(`SELECT timestamp, model, input_tokens, output_tokens,
			cache_creation, cache_read, message_type
		FROM session_messages WHERE file_path = ? ORDER BY seq`, path)
	if err != nil {
		return s, err
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var m model.MessageStat
		if err := rows.Scan(&m.Timestamp, &m.Model, &m.InputTokens, &m.OutputTokens,
			&m.CacheCreationTokens, &m.CacheReadTokens, &m.MessageType); err != nil {
			return s, err
		}
		s.Messages = append(s.Messages, m)
	}

	return s, rows.Err()
}

// Prune removes cache entries for files that no longer exist on disk.
func (c *Cache) Prune(livePaths map[string]struct{}) error {
	rows, err := c.db.Query("SELECT file_path FROM file_tracker")
	if err != nil {
		return err
	}

	var stale []string
	for rows.Next() {
		var path string
		if err := rows.Scan(&path); err != nil {
			_ = rows.Close()
			return err
		}
		if _, ok := livePaths[path]; !ok {
			stale = append(stale, path)
		}
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return err
	}
	_ = rows.Close()

	for _, path := range stale {
		if _, err := c.db.Exec("DELETE FROM sessions WHERE file_path = ?", path); err != nil {
			return err
		}
		if _, err := c.db.Exec("DELETE FROM file_tracker WHERE file_path = ?", path); err != nil {
			return err
		}
	}
	return nil
}
