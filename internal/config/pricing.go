package config

import "strings"

// DefaultContextWindow is used when a model's family is not in the registry.
const DefaultContextWindow = 200_000

// ModelPricing holds per-million-token prices for a model family.
type ModelPricing struct {
	InputPerMTok      float64
	OutputPerMTok     float64
	CacheWritePerMTok float64
	CacheReadPerMTok  float64
}

// defaultPricing is applied to unknown model families. It is deliberately
// nonzero (sonnet-class rates) so unreported models show an estimate rather
// than a misleading $0.
var defaultPricing = ModelPricing{
	InputPerMTok:      3.00,
	OutputPerMTok:     15.00,
	CacheWritePerMTok: 3.75,
	CacheReadPerMTok:  0.30,
}

// ContextWindows maps model family names to context window sizes in tokens.
var ContextWindows = map[string]int64{
	"claude-opus-4":     200_000,
	"claude-sonnet-4":   200_000,
	"claude-haiku-4":    200_000,
	"claude-3-5-sonnet": 200_000,
	"claude-3-5-haiku":  200_000,
	"claude-3-opus":     200_000,
	"claude-3-sonnet":   200_000,
	"claude-3-haiku":    200_000,
}

// Pricing maps model family names to their per-MTok prices.
var Pricing = map[string]ModelPricing{
	"claude-opus-4": {
		InputPerMTok: 15.00, OutputPerMTok: 75.00,
		CacheWritePerMTok: 18.75, CacheReadPerMTok: 1.50,
	},
	"claude-sonnet-4": {
		InputPerMTok: 3.00, OutputPerMTok: 15.00,
		CacheWritePerMTok: 3.75, CacheReadPerMTok: 0.30,
	},
	"claude-haiku-4": {
		InputPerMTok: 0.80, OutputPerMTok: 4.00,
		CacheWritePerMTok: 1.00, CacheReadPerMTok: 0.08,
	},
	"claude-3-5-sonnet": {
		InputPerMTok: 3.00, OutputPerMTok: 15.00,
		CacheWritePerMTok: 3.75, CacheReadPerMTok: 0.30,
	},
	"claude-3-5-haiku": {
		InputPerMTok: 0.80, OutputPerMTok: 4.00,
		CacheWritePerMTok: 1.00, CacheReadPerMTok: 0.08,
	},
	"claude-3-opus": {
		InputPerMTok: 15.00, OutputPerMTok: 75.00,
		CacheWritePerMTok: 18.75, CacheReadPerMTok: 1.50,
	},
	"claude-3-sonnet": {
		InputPerMTok: 3.00, OutputPerMTok: 15.00,
		CacheWritePerMTok: 3.75, CacheReadPerMTok: 0.30,
	},
	"claude-3-haiku": {
		InputPerMTok: 0.25, OutputPerMTok: 1.25,
		CacheWritePerMTok: 0.30, CacheReadPerMTok: 0.03,
	},
}

// ResolveFamily maps a full model identifier like "claude-sonnet-4-5-20250929"
// to its pricing family. Longest matching known prefix wins; if no family is a
// prefix, trailing hyphen-delimited segments are stripped one at a time and each
// shorter candidate is tested against the registry. Unmatched identifiers are
// returned unchanged so callers fall back to default pricing. Never fails.
func ResolveFamily(modelID string) string {
	best := ""
	for family := range ContextWindows {
		if strings.HasPrefix(modelID, family) && len(family) > len(best) {
			best = family
		}
	}
	if best != "" {
		return best
	}

	parts := strings.Split(modelID, "-")
	for length := len(parts) - 1; length >= 2; length-- {
		candidate := strings.Join(parts[:length], "-")
		if _, ok := ContextWindows[candidate]; ok {
			return candidate
		}
	}

	return modelID
}

// ContextWindowFor returns the context window size for a full model identifier.
func ContextWindowFor(modelID string) int64 {
	if w, ok := ContextWindows[ResolveFamily(modelID)]; ok {
		return w
	}
	return DefaultContextWindow
}

// PricingFor returns the price table for a full model identifier, falling back
// to defaultPricing when the family is unknown.
func PricingFor(modelID string) ModelPricing {
	if p, ok := Pricing[ResolveFamily(modelID)]; ok {
		return p
	}
	return defaultPricing
}

// CalculateCost computes the estimated USD cost for the given token totals.
func CalculateCost(modelID string, inputTokens, outputTokens, cacheCreation, cacheRead int64) float64 {
	p := PricingFor(modelID)

	cost := float64(inputTokens) * p.InputPerMTok / 1_000_000
	cost += float64(outputTokens) * p.OutputPerMTok / 1_000_000
	cost += float64(cacheCreation) * p.CacheWritePerMTok / 1_000_000
	cost += float64(cacheRead) * p.CacheReadPerMTok / 1_000_000

	return cost
}
