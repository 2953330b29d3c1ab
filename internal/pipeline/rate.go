package pipeline

import (
	"time"

	"github.com/theirongolddev/ccmonitor/internal/config"
	"github.com/theirongolddev/ccmonitor/internal/model"
)

// rateWindowSpan is the trailing window the rate estimator looks at.
const rateWindowSpan = 60 * time.Second

// EstimateRate computes a session's trailing-60s request and token rates
// against the configured per-minute ceilings, for throttle-risk display.
//
// Messages are time-ordered by construction, so the scan walks backward from
// the most recent message and stops at the first one older than the window.
// Malformed timestamps are skipped without aborting the scan.
func EstimateRate(messages []model.MessageStat, now time.Time, ceilings config.RateConfig) model.RateWindow {
	var rw model.RateWindow

	for i := len(messages) - 1; i >= 0; i-- {
		m := messages[i]
		ts, err := model.ParseTimestamp(m.Timestamp)
		if err != nil {
			continue
		}
		if now.Sub(ts) > rateWindowSpan {
			break
		}

		rw.Requests++
		rw.InputTokens += m.InputTokens + m.CacheCreationTokens + m.CacheReadTokens
		rw.OutputTokens += m.OutputTokens
	}

	rw.RequestsPct = ceilingPct(int64(rw.Requests), ceilings.RequestsPerMin)
	rw.InputPct = ceilingPct(rw.InputTokens, ceilings.InputTokensPerMin)
	rw.OutputPct = ceilingPct(rw.OutputTokens, ceilings.OutputTokensPerMin)

	return rw
}

func ceilingPct(used, ceiling int64) float64 {
	if ceiling <= 0 {
		return 0
	}
	pct := float64(used) / float64(ceiling) * 100
	if pct > 100 {
		return 100
	}
	return pct
}
