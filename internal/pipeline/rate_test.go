package pipeline

import (
	"math"
	"testing"
	"time"

	"github.com/theirongolddev/ccmonitor/internal/config"
	"github.com/theirongolddev/ccmonitor/internal/model"
)

var testCeilings = config.RateConfig{
	RequestsPerMin:     50,
	InputTokensPerMin:  40_000,
	OutputTokensPerMin: 8_000,
}

func ts(t time.Time) string { return t.Format(time.RFC3339) }

func TestEstimateRate_WindowBoundary(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	messages := []model.MessageStat{
		{Timestamp: ts(now.Add(-5 * time.Minute)), InputTokens: 9999, OutputTokens: 9999},
		{Timestamp: ts(now.Add(-90 * time.Second)), InputTokens: 1111, OutputTokens: 1111},
		{Timestamp: ts(now.Add(-50 * time.Second)), InputTokens: 1000, OutputTokens: 400, CacheReadTokens: 500},
		{Timestamp: ts(now.Add(-10 * time.Second)), InputTokens: 2000, OutputTokens: 600, CacheCreationTokens: 300},
	}

	rw := EstimateRate(messages, now, testCeilings)

	if rw.Requests != 2 {
		t.Errorf("Requests = %d, want 2 (only last two inside 60s)", rw.Requests)
	}
	// Input counts cache creation and cache read tokens too
	if rw.InputTokens != 3800 {
		t.Errorf("InputTokens = %d, want 3800", rw.InputTokens)
	}
	if rw.OutputTokens != 1000 {
		t.Errorf("OutputTokens = %d, want 1000", rw.OutputTokens)
	}

	if math.Abs(rw.RequestsPct-4.0) > 1e-9 {
		t.Errorf("RequestsPct = %v, want 4.0", rw.RequestsPct)
	}
	if math.Abs(rw.InputPct-9.5) > 1e-9 {
		t.Errorf("InputPct = %v, want 9.5", rw.InputPct)
	}
	if math.Abs(rw.OutputPct-12.5) > 1e-9 {
		t.Errorf("OutputPct = %v, want 12.5", rw.OutputPct)
	}
}

func TestEstimateRate_MalformedTimestampsSkipped(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	messages := []model.MessageStat{
		{Timestamp: ts(now.Add(-30 * time.Second)), InputTokens: 100, OutputTokens: 10},
		{Timestamp: "garbage", InputTokens: 100, OutputTokens: 10},
		{Timestamp: ts(now.Add(-10 * time.Second)), InputTokens: 100, OutputTokens: 10},
	}

	rw := EstimateRate(messages, now, testCeilings)

	// Malformed timestamps do not terminate the scan.
	if rw.Requests != 2 {
		t.Errorf("Requests = %d, want 2", rw.Requests)
	}
}

func TestEstimateRate_PctClamped(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	messages := []model.MessageStat{
		{Timestamp: ts(now.Add(-time.Second)), InputTokens: 1_000_000, OutputTokens: 1_000_000},
	}

	rw := EstimateRate(messages, now, testCeilings)
	if rw.InputPct != 100 || rw.OutputPct != 100 {
		t.Errorf("pcts = %v/%v, want clamped to 100", rw.InputPct, rw.OutputPct)
	}
	if rw.MaxPct() != 100 {
		t.Errorf("MaxPct = %v, want 100", rw.MaxPct())
	}
}

func TestEstimateRate_ZeroCeilings(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	messages := []model.MessageStat{
		{Timestamp: ts(now.Add(-time.Second)), InputTokens: 100, OutputTokens: 100},
	}

	rw := EstimateRate(messages, now, config.RateConfig{})
	if rw.RequestsPct != 0 || rw.InputPct != 0 || rw.OutputPct != 0 {
		t.Errorf("zero ceilings should report 0%%: %+v", rw)
	}
}

func TestEstimateRate_Empty(t *testing.T) {
	rw := EstimateRate(nil, time.Now(), testCeilings)
	if rw.Requests != 0 || rw.InputTokens != 0 || rw.OutputTokens != 0 {
		t.Errorf("empty messages produced nonzero window: %+v", rw)
	}
}
