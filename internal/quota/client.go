// Package quota fetches subscription plan usage from the Anthropic OAuth API.
//
// This is a boundary package: no error ever escapes a Fetch call. Missing
// credentials, transport failures, bad status codes, and undecodable bodies
// all land in the result's Err field so the rest of the dashboard keeps
// working with absent quota data.
package quota

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

const (
	defaultBaseURL = "https://api.anthropic.com"
	usagePath      = "/api/oauth/usage"
	requestTimeout = 10 * time.Second
	maxBodySize    = 1 << 20 // 1 MB
	betaHeader     = "oauth-2025-04-20"
)

// Window display labels.
const (
	labelFiveHour       = "5-Hour Session"
	labelSevenDay       = "Weekly (All Models)"
	labelSevenDaySonnet = "Weekly (Sonnet)"
	labelSevenDayOpus   = "Weekly (Opus)"
)

// Client fetches plan usage data.
type Client struct {
	baseURL       string
	explicitToken string
	configToken   string
	http          *http.Client
}

// NewClient creates a quota client. All arguments may be empty. The base URL
// resolves as ANTHROPIC_BASE_URL, then the configured value, then the
// production endpoint. explicitToken heads the credential discovery chain;
// configToken slots in below the CCMONITOR_OAUTH_TOKEN environment variable.
func NewClient(configBaseURL, explicitToken, configToken string) *Client {
	baseURL := os.Getenv("ANTHROPIC_BASE_URL")
	if baseURL == "" {
		baseURL = configBaseURL
	}
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL:       baseURL,
		explicitToken: explicitToken,
		configToken:   configToken,
		http:          &http.Client{},
	}
}

// Fetch performs one usage request and returns the decoded quota windows.
// The returned PlanUsage is never nil.
func (c *Client) Fetch(ctx context.Context) *PlanUsage {
	token := findOAuthToken(c.explicitToken, c.configToken)
	if token == "" {
		return &PlanUsage{
			Err: "no OAuth token found; run from within a Claude Code session, or set CCMONITOR_OAUTH_TOKEN",
		}
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+usagePath, nil)
	if err != nil {
		return &PlanUsage{Err: fmt.Sprintf("creating request: %v", err)}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("anthropic-beta", betaHeader)

	resp, err := c.http.Do(req)
	if err != nil {
		return &PlanUsage{Err: fmt.Sprintf("request failed: %v", err)}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &PlanUsage{Err: fmt.Sprintf("unexpected status %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return &PlanUsage{Err: fmt.Sprintf("reading response: %v", err)}
	}

	var raw usageResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return &PlanUsage{Err: fmt.Sprintf("parsing response: %v", err)}
	}

	return &PlanUsage{
		FiveHour:       newQuota(labelFiveHour, raw.FiveHour),
		SevenDay:       newQuota(labelSevenDay, raw.SevenDay),
		SevenDaySonnet: newQuota(labelSevenDaySonnet, raw.SevenDaySonnet),
		SevenDayOpus:   newQuota(labelSevenDayOpus, raw.SevenDayOpus),
	}
}
