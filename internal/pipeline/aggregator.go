package pipeline

import (
	"sort"
	"time"

	"github.com/samber/lo"

	"github.com/theirongolddev/ccmonitor/internal/model"
)

// activeThreshold classifies a session as active when its file was modified
// this recently. Evaluated against "now" at aggregation time, not parse time.
const activeThreshold = time.Hour

// Summarize folds a collection of SessionRecords into one UsageSummary.
// Totals are the componentwise sum of the contributing sessions; each session
// contributes exactly once.
func Summarize(sessions []model.SessionRecord, now time.Time) model.UsageSummary {
	summary := model.UsageSummary{
		TotalSessions: len(sessions),
		ModelsUsed:    make(map[string]struct{}),
	}

	for i := range sessions {
		s := &sessions[i]

		summary.TotalInputTokens += s.TotalInputTokens
		summary.TotalOutputTokens += s.TotalOutputTokens
		summary.TotalCacheCreationTokens += s.TotalCacheCreationTokens
		summary.TotalCacheReadTokens += s.TotalCacheReadTokens
		summary.TotalCostUSD += s.EstimatedCost()
		summary.TotalMessages += s.MessageCount

		if s.Model != "" {
			summary.ModelsUsed[s.Model] = struct{}{}
		}

		if !s.FileMtime.IsZero() && now.Sub(s.FileMtime) < activeThreshold {
			summary.ActiveSessions++
		}
	}

	return summary
}

// SortedModels returns the distinct model identifiers of a summary in a
// stable order for display.
func SortedModels(summary model.UsageSummary) []string {
	models := lo.Keys(summary.ModelsUsed)
	sort.Strings(models)
	return models
}
