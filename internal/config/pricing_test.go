package config

import (
	"math"
	"testing"
)

func TestResolveFamily(t *testing.T) {
	tests := []struct {
		name  string
		model string
		want  string
	}{
		{"exact match", "claude-sonnet-4", "claude-sonnet-4"},
		{"dated release", "claude-opus-4-20250514", "claude-opus-4"},
		{"point release", "claude-sonnet-4-5-x", "claude-sonnet-4"},
		{"legacy exact", "claude-3-5-haiku", "claude-3-5-haiku"},
		{"legacy dated", "claude-3-5-sonnet-20241022", "claude-3-5-sonnet"},
		{"haiku point release", "claude-haiku-4-5", "claude-haiku-4"},
		{"unknown unchanged", "gpt-4o", "gpt-4o"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveFamily(tt.model)
			if got != tt.want {
				t.Errorf("ResolveFamily(%q) = %q, want %q", tt.model, got, tt.want)
			}
		})
	}
}

func TestContextWindowFor(t *testing.T) {
	if got := ContextWindowFor("claude-opus-4-20250514"); got != 200_000 {
		t.Errorf("ContextWindowFor = %d, want 200000", got)
	}
	if got := ContextWindowFor("totally-unknown"); got != DefaultContextWindow {
		t.Errorf("unknown model window = %d, want default %d", got, DefaultContextWindow)
	}
}

func TestCalculateCost_Sonnet(t *testing.T) {
	// 1M input at $3 + 1M output at $15
	got := CalculateCost("claude-sonnet-4", 1_000_000, 1_000_000, 0, 0)
	if math.Abs(got-18.00) > 1e-9 {
		t.Errorf("CalculateCost = %f, want 18.00", got)
	}
}

func TestCalculateCost_CacheTokens(t *testing.T) {
	// 1M cache write at $3.75 + 1M cache read at $0.30
	got := CalculateCost("claude-sonnet-4", 0, 0, 1_000_000, 1_000_000)
	if math.Abs(got-4.05) > 1e-9 {
		t.Errorf("CalculateCost = %f, want 4.05", got)
	}
}

func TestCalculateCost_UnknownModelUsesDefault(t *testing.T) {
	// Unknown families still produce a nonzero estimate at sonnet-tier rates.
	got := CalculateCost("mystery-model", 1_000_000, 0, 0, 0)
	if math.Abs(got-3.00) > 1e-9 {
		t.Errorf("CalculateCost = %f, want 3.00", got)
	}
}

func TestCalculateCost_Zero(t *testing.T) {
	if got := CalculateCost("claude-opus-4", 0, 0, 0, 0); got != 0 {
		t.Errorf("CalculateCost = %f, want 0", got)
	}
}
