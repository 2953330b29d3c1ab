package quota

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestFetch_Success(t *testing.T) {
	t.Setenv("ANTHROPIC_BASE_URL", "")
	var gotAuth, gotBeta string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/oauth/usage" {
			t.Errorf("path = %q", r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		gotBeta = r.Header.Get("anthropic-beta")

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"five_hour": {"utilization": 42.5, "resets_at": "2025-06-01T15:00:00Z"},
			"seven_day": {"utilization": "78.1", "resets_at": "2025-06-05T00:00:00Z"},
			"seven_day_sonnet": {"utilization": 10.0, "resets_at": ""},
			"seven_day_opus": {"utilization": 150.0, "resets_at": "2025-06-05T00:00:00Z"}
		}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-token", "")
	usage := client.Fetch(context.Background())

	if usage.Err != "" {
		t.Fatalf("Err = %q", usage.Err)
	}
	if !usage.Available() {
		t.Fatal("Available() = false")
	}

	if gotAuth != "Bearer test-token" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if gotBeta != "oauth-2025-04-20" {
		t.Errorf("anthropic-beta = %q", gotBeta)
	}

	if usage.FiveHour == nil || usage.FiveHour.Utilization() != 42.5 {
		t.Errorf("FiveHour = %+v", usage.FiveHour)
	}
	if usage.FiveHour.Label != "5-Hour Session" {
		t.Errorf("FiveHour.Label = %q", usage.FiveHour.Label)
	}
	// String-typed utilization decodes too
	if usage.SevenDay == nil || usage.SevenDay.Utilization() != 78.1 {
		t.Errorf("SevenDay = %+v", usage.SevenDay)
	}
	// Over-100 utilization is clamped on read
	if usage.SevenDayOpus.Utilization() != 100 {
		t.Errorf("SevenDayOpus.Utilization() = %v, want 100", usage.SevenDayOpus.Utilization())
	}

	if got := len(usage.Windows()); got != 4 {
		t.Errorf("len(Windows()) = %d, want 4", got)
	}
}

func TestFetch_ConfiguredValues(t *testing.T) {
	t.Setenv("ANTHROPIC_BASE_URL", "")
	t.Setenv("CCMONITOR_OAUTH_TOKEN", "")

	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"five_hour": {"utilization": 5, "resets_at": "2025-06-01T15:00:00Z"}}`))
	}))
	defer srv.Close()

	// Both values arrive the way the commands pass them from config.toml:
	// base_url as the first argument, oauth_token as the configured token.
	usage := NewClient(srv.URL, "", "config-token").Fetch(context.Background())

	if usage.Err != "" {
		t.Fatalf("Err = %q", usage.Err)
	}
	if gotAuth != "Bearer config-token" {
		t.Errorf("Authorization = %q, want config-sourced token", gotAuth)
	}
}

func TestFetch_BaseURLEnvBeatsConfigured(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"five_hour": {"utilization": 5, "resets_at": "2025-06-01T15:00:00Z"}}`))
	}))
	defer srv.Close()

	t.Setenv("ANTHROPIC_BASE_URL", srv.URL)

	usage := NewClient("http://127.0.0.1:0", "tok", "").Fetch(context.Background())

	if !usage.Available() {
		t.Fatalf("env base URL ignored: Err = %q", usage.Err)
	}
}

func TestFetch_PartialWindows(t *testing.T) {
	t.Setenv("ANTHROPIC_BASE_URL", "")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"five_hour": {"utilization": 5, "resets_at": "2025-06-01T15:00:00Z"}}`))
	}))
	defer srv.Close()

	usage := NewClient(srv.URL, "tok", "").Fetch(context.Background())

	if !usage.Available() {
		t.Fatal("Available() = false with five_hour present")
	}
	if usage.SevenDay != nil || usage.SevenDaySonnet != nil || usage.SevenDayOpus != nil {
		t.Error("absent windows should be nil")
	}
	if got := len(usage.Windows()); got != 1 {
		t.Errorf("len(Windows()) = %d, want 1", got)
	}
}

func TestFetch_HTTPError(t *testing.T) {
	t.Setenv("ANTHROPIC_BASE_URL", "")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	usage := NewClient(srv.URL, "tok", "").Fetch(context.Background())

	if usage.Available() {
		t.Error("Available() = true on 401")
	}
	if !strings.Contains(usage.Err, "401") {
		t.Errorf("Err = %q, want status mention", usage.Err)
	}
}

func TestFetch_BadBody(t *testing.T) {
	t.Setenv("ANTHROPIC_BASE_URL", "")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html>not json</html>"))
	}))
	defer srv.Close()

	usage := NewClient(srv.URL, "tok", "").Fetch(context.Background())

	if usage.Err == "" {
		t.Error("expected decode error in Err")
	}
	if usage.Available() {
		t.Error("Available() = true on undecodable body")
	}
}

func TestFetch_NoToken(t *testing.T) {
	t.Setenv("ANTHROPIC_BASE_URL", "")
	t.Setenv("CCMONITOR_OAUTH_TOKEN", "")
	t.Setenv("CLAUDE_SESSION_INGRESS_TOKEN_FILE", "")
	t.Setenv("CLAUDE_CODE_OAUTH_TOKEN_FILE_DESCRIPTOR", "")
	t.Setenv("CLAUDE_CONFIG_DIR", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	if tokenFromIngressFiles() != "" {
		t.Skip("machine-level ingress token present")
	}

	usage := NewClient("http://127.0.0.1:0", "", "").Fetch(context.Background())

	if usage.Available() {
		t.Error("Available() = true with no token")
	}
	if !strings.Contains(usage.Err, "no OAuth token") {
		t.Errorf("Err = %q, want no-token message", usage.Err)
	}
}
