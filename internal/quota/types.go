package quota

import "encoding/json"

// PlanQuota is one subscription limit window.
type PlanQuota struct {
	Label       string
	ResetsAt    string // ISO-8601, may be empty
	utilization float64
}

// Utilization returns the window's utilization percentage, clamped to
// [0, 100].
func (q *PlanQuota) Utilization() float64 {
	if q.utilization < 0 {
		return 0
	}
	if q.utilization > 100 {
		return 100
	}
	return q.utilization
}

// PlanUsage holds subscription quota data from the OAuth usage API.
// Absent windows stay nil; fetch failures populate Err without discarding
// whatever windows were decoded.
type PlanUsage struct {
	FiveHour       *PlanQuota
	SevenDay       *PlanQuota
	SevenDaySonnet *PlanQuota
	SevenDayOpus   *PlanQuota
	Err            string
}

// Available reports whether any primary quota window was populated. It is
// independent of Err: partial data still displays.
func (p *PlanUsage) Available() bool {
	return p.FiveHour != nil || p.SevenDay != nil
}

// Windows returns the populated quota windows in display order.
func (p *PlanUsage) Windows() []*PlanQuota {
	var out []*PlanQuota
	for _, q := range []*PlanQuota{p.FiveHour, p.SevenDay, p.SevenDaySonnet, p.SevenDayOpus} {
		if q != nil {
			out = append(out, q)
		}
	}
	return out
}

// usageResponse is the raw body of GET /api/oauth/usage.
type usageResponse struct {
	FiveHour       *usageWindow `json:"five_hour"`
	SevenDay       *usageWindow `json:"seven_day"`
	SevenDaySonnet *usageWindow `json:"seven_day_sonnet"`
	SevenDayOpus   *usageWindow `json:"seven_day_opus"`
}

// usageWindow is one raw rate-limit window. Utilization has been observed as
// both number and string, so it is decoded defensively.
type usageWindow struct {
	Utilization json.Number `json:"utilization"`
	ResetsAt    string      `json:"resets_at"`
}

func newQuota(label string, w *usageWindow) *PlanQuota {
	if w == nil {
		return nil
	}
	util, _ := w.Utilization.Float64()
	return &PlanQuota{
		Label:       label,
		ResetsAt:    w.ResetsAt,
		utilization: util,
	}
}
