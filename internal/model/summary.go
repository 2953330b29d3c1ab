package model

// UsageSummary is the fold of a collection of SessionRecords for one refresh
// cycle.
type UsageSummary struct {
	TotalSessions  int
	ActiveSessions int

	TotalInputTokens         int64
	TotalOutputTokens        int64
	TotalCacheCreationTokens int64
	TotalCacheReadTokens     int64

	TotalCostUSD  float64
	TotalMessages int

	ModelsUsed map[string]struct{}
}

// TotalTokens returns combined input and output tokens across all sessions.
func (u *UsageSummary) TotalTokens() int64 {
	return u.TotalInputTokens + u.TotalOutputTokens
}

// RateWindow holds the trailing-60s request and token rates for one session,
// each expressed against a configured ceiling.
type RateWindow struct {
	Requests     int
	InputTokens  int64
	OutputTokens int64

	RequestsPct float64
	InputPct    float64
	OutputPct   float64
}

// MaxPct returns the highest of the three utilization percentages.
func (r RateWindow) MaxPct() float64 {
	max := r.RequestsPct
	if r.InputPct > max {
		max = r.InputPct
	}
	if r.OutputPct > max {
		max = r.OutputPct
	}
	return max
}
