// Package model defines the value types ccmonitor aggregates sessions into.
package model

import (
	"time"

	"github.com/theirongolddev/ccmonitor/internal/config"
)

// MessageStat holds token usage for a single assistant turn. Immutable once
// created; appended to a session's message sequence in file order.
type MessageStat struct {
	Timestamp           string
	Model               string
	InputTokens         int64
	OutputTokens        int64
	CacheCreationTokens int64
	CacheReadTokens     int64
	MessageType         string
}

// SessionRecord holds aggregated state for one session JSONL file.
// Records are rebuilt from scratch on every refresh cycle and never mutated
// after the parse that produced them.
type SessionRecord struct {
	SessionID    string
	ProjectPath  string
	Model        string // last seen wins
	StartedAt    string
	LastActivity string

	TotalInputTokens         int64
	TotalOutputTokens        int64
	TotalCacheCreationTokens int64
	TotalCacheReadTokens     int64

	MessageCount          int
	UserMessageCount      int
	AssistantMessageCount int

	Messages []MessageStat

	// LatestContextUsed is overwritten by each assistant turn, not summed:
	// it reflects the most recent context fill, not a cumulative count.
	LatestContextUsed int64
	ContextWindowSize int64

	FilePath  string
	FileSize  int64
	FileMtime time.Time
}

// TotalTokens returns combined input and output tokens.
func (s *SessionRecord) TotalTokens() int64 {
	return s.TotalInputTokens + s.TotalOutputTokens
}

// ContextUsagePct returns the latest context occupancy as a percentage of the
// model's window, clamped to [0, 100]. A zero window reports 0.
func (s *SessionRecord) ContextUsagePct() float64 {
	if s.ContextWindowSize == 0 {
		return 0
	}
	pct := float64(s.LatestContextUsed) / float64(s.ContextWindowSize) * 100
	if pct > 100 {
		return 100
	}
	// Negative counters slip through on malformed usage blocks; floor them.
	if pct < 0 {
		return 0
	}
	return pct
}

// EstimatedCost returns the estimated USD cost for this session, recomputed
// from the running token totals and the pricing registry on every call.
func (s *SessionRecord) EstimatedCost() float64 {
	return config.CalculateCost(
		s.Model,
		s.TotalInputTokens,
		s.TotalOutputTokens,
		s.TotalCacheCreationTokens,
		s.TotalCacheReadTokens,
	)
}

// TokensPerMinute returns throughput between the first and last message.
// Sessions with fewer than two messages, unparsable timestamps, or a
// non-positive elapsed time report 0.
func (s *SessionRecord) TokensPerMinute() float64 {
	if len(s.Messages) < 2 {
		return 0
	}
	first, err := ParseTimestamp(s.Messages[0].Timestamp)
	if err != nil {
		return 0
	}
	last, err := ParseTimestamp(s.Messages[len(s.Messages)-1].Timestamp)
	if err != nil {
		return 0
	}
	elapsedMin := last.Sub(first).Minutes()
	if elapsedMin <= 0 {
		return 0
	}
	return float64(s.TotalTokens()) / elapsedMin
}

// timestampLayouts are tried in order. Session files normally carry RFC3339
// with fractional seconds, but bare local timestamps have been observed.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
}

// ParseTimestamp parses an ISO-8601 timestamp from a session log.
func ParseTimestamp(ts string) (time.Time, error) {
	var err error
	for _, layout := range timestampLayouts {
		var t time.Time
		if t, err = time.Parse(layout, ts); err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}
