package pipeline

import (
	"math"
	"testing"
	"time"

	"github.com/theirongolddev/ccmonitor/internal/model"
)

func TestSummarize(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	sessions := []model.SessionRecord{
		{
			SessionID:                "a",
			Model:                    "claude-sonnet-4",
			TotalInputTokens:         1_000_000,
			TotalOutputTokens:        1_000_000,
			TotalCacheCreationTokens: 500,
			TotalCacheReadTokens:     300,
			MessageCount:             10,
			FileMtime:                now.Add(-10 * time.Minute),
		},
		{
			SessionID:         "b",
			Model:             "claude-opus-4",
			TotalInputTokens:  200,
			TotalOutputTokens: 100,
			MessageCount:      4,
			FileMtime:         now.Add(-3 * time.Hour),
		},
		{
			SessionID:    "c",
			MessageCount: 1,
			// no model, no mtime
		},
	}

	got := Summarize(sessions, now)

	if got.TotalSessions != 3 {
		t.Errorf("TotalSessions = %d, want 3", got.TotalSessions)
	}
	if got.ActiveSessions != 1 {
		t.Errorf("ActiveSessions = %d, want 1 (only a is within the hour)", got.ActiveSessions)
	}
	if got.TotalInputTokens != 1_000_200 {
		t.Errorf("TotalInputTokens = %d", got.TotalInputTokens)
	}
	if got.TotalOutputTokens != 1_000_100 {
		t.Errorf("TotalOutputTokens = %d", got.TotalOutputTokens)
	}
	if got.TotalMessages != 15 {
		t.Errorf("TotalMessages = %d, want 15", got.TotalMessages)
	}
	if len(got.ModelsUsed) != 2 {
		t.Errorf("ModelsUsed = %v, want 2 distinct", got.ModelsUsed)
	}

	// Session a alone is $18 plus cache; b adds opus rates
	wantCost := sessions[0].EstimatedCost() + sessions[1].EstimatedCost()
	if math.Abs(got.TotalCostUSD-wantCost) > 1e-9 {
		t.Errorf("TotalCostUSD = %v, want %v", got.TotalCostUSD, wantCost)
	}
}

func TestSummarize_Empty(t *testing.T) {
	got := Summarize(nil, time.Now())
	if got.TotalSessions != 0 || got.ActiveSessions != 0 || got.TotalTokens() != 0 {
		t.Errorf("empty summarize produced nonzero totals: %+v", got)
	}
}

func TestSortedModels(t *testing.T) {
	summary := model.UsageSummary{
		ModelsUsed: map[string]struct{}{
			"claude-sonnet-4": {},
			"claude-opus-4":   {},
			"claude-haiku-4":  {},
		},
	}
	got := SortedModels(summary)
	want := []string{"claude-haiku-4", "claude-opus-4", "claude-sonnet-4"}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
