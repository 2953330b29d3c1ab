// Package source discovers and parses Claude Code JSONL session files.
package source

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/theirongolddev/ccmonitor/internal/config"
	"github.com/theirongolddev/ccmonitor/internal/model"
)

// RawEntry is a single line in a session JSONL file.
type RawEntry struct {
	Type      string      `json:"type"`
	Timestamp string      `json:"timestamp,omitempty"`
	Message   *RawMessage `json:"message,omitempty"`
}

// RawMessage is the assistant's message envelope.
type RawMessage struct {
	Model string    `json:"model"`
	Usage *RawUsage `json:"usage,omitempty"`
}

// RawUsage holds token counts from the API response. Absent fields decode
// to zero.
type RawUsage struct {
	InputTokens              int64 `json:"input_tokens"`
	OutputTokens             int64 `json:"output_tokens"`
	CacheCreationInputTokens int64 `json:"cache_creation_input_tokens"`
	CacheReadInputTokens     int64 `json:"cache_read_input_tokens"`
}

// ParseFile reads one session JSONL file into a SessionRecord.
//
// The format is external and uncontrolled, so parsing is tolerant: blank
// lines and lines that fail to decode are skipped, and a read error partway
// through returns whatever aggregated before it. One corrupt line never
// aborts the rest of the file.
func ParseFile(df DiscoveredFile) model.SessionRecord {
	session := model.SessionRecord{
		SessionID:         strings.TrimSuffix(filepath.Base(df.Path), ".jsonl"),
		ProjectPath:       filepath.Base(filepath.Dir(df.Path)),
		ContextWindowSize: config.DefaultContextWindow,
		FilePath:          df.Path,
		FileSize:          df.Size,
		FileMtime:         mtimeFromNanos(df.Mtime),
	}

	f, err := os.Open(df.Path)
	if err != nil {
		return session
	}
	defer func() { _ = f.Close() }()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 256*1024), 2*1024*1024)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var entry RawEntry
		if err := json.Unmarshal(line, &entry); err != nil {
			continue
		}

		if session.StartedAt == "" && entry.Timestamp != "" {
			session.StartedAt = entry.Timestamp
		}
		if entry.Timestamp != "" {
			// File order wins, not timestamp comparison: the log is
			// append-only so the last line is the newest activity.
			session.LastActivity = entry.Timestamp
		}

		session.MessageCount++

		switch entry.Type {
		case "user":
			session.UserMessageCount++

		case "assistant":
			session.AssistantMessageCount++
			applyAssistantEntry(&session, entry)
		}
	}

	// Scanner errors (I/O mid-file) are swallowed: partial totals are
	// better than none, and the next refresh cycle retries anyway.

	return session
}

func mtimeFromNanos(ns int64) time.Time {
	if ns == 0 {
		return time.Time{}
	}
	return time.Unix(0, ns)
}

func applyAssistantEntry(session *model.SessionRecord, entry RawEntry) {
	var modelID string
	usage := &RawUsage{}
	if entry.Message != nil {
		modelID = entry.Message.Model
		if entry.Message.Usage != nil {
			usage = entry.Message.Usage
		}
	}

	if modelID != "" {
		session.Model = modelID
		session.ContextWindowSize = config.ContextWindowFor(modelID)
	}

	session.TotalInputTokens += usage.InputTokens
	session.TotalOutputTokens += usage.OutputTokens
	session.TotalCacheCreationTokens += usage.CacheCreationInputTokens
	session.TotalCacheReadTokens += usage.CacheReadInputTokens

	// Overwrite, not accumulate: latest context fill only.
	session.LatestContextUsed = usage.InputTokens +
		usage.CacheCreationInputTokens + usage.CacheReadInputTokens

	session.Messages = append(session.Messages, model.MessageStat{
		Timestamp:           entry.Timestamp,
		Model:               modelID,
		InputTokens:         usage.InputTokens,
		OutputTokens:        usage.OutputTokens,
		CacheCreationTokens: usage.CacheCreationInputTokens,
		CacheReadTokens:     usage.CacheReadInputTokens,
		MessageType:         entry.Type,
	})
}
