package quota

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
)

// Credential discovery is a strict ordered fallback chain; the order encodes
// trust precedence (explicit override > process-supplied file > ambient local
// file > remote fallback paths) and must not be reordered.
//
//  1. CCMONITOR_OAUTH_TOKEN (explicit override)
//  2. oauth_token from config.toml
//  3. file named by CLAUDE_SESSION_INGRESS_TOKEN_FILE
//  4. fd named by CLAUDE_CODE_OAUTH_TOKEN_FILE_DESCRIPTOR, duplicated and read
//  5. .credentials.json in the Claude config dir
//  6. well-known session ingress token files
func findOAuthToken(explicit, configured string) string {
	lookups := []func() string{
		func() string { return strings.TrimSpace(explicit) },
		func() string { return strings.TrimSpace(os.Getenv("CCMONITOR_OAUTH_TOKEN")) },
		func() string { return strings.TrimSpace(configured) },
		tokenFromFileEnv,
		tokenFromFdEnv,
		tokenFromCredentialsFile,
		tokenFromIngressFiles,
	}

	for _, lookup := range lookups {
		if token := lookup(); token != "" {
			return token
		}
	}
	return ""
}

func tokenFromFileEnv() string {
	path := os.Getenv("CLAUDE_SESSION_INGRESS_TOKEN_FILE")
	if path == "" {
		return ""
	}
	data, err := os.ReadFile(path) //nolint:gosec // path is operator-supplied
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func tokenFromFdEnv() string {
	fdStr := os.Getenv("CLAUDE_CODE_OAUTH_TOKEN_FILE_DESCRIPTOR")
	if fdStr == "" {
		return ""
	}
	fd, err := strconv.Atoi(fdStr)
	if err != nil {
		return ""
	}

	// Dup so reading doesn't consume the descriptor Claude Code handed us.
	dup, err := syscall.Dup(fd)
	if err != nil {
		return ""
	}
	f := os.NewFile(uintptr(dup), "oauth-token")
	defer func() { _ = f.Close() }()

	data, err := io.ReadAll(io.LimitReader(f, 64*1024))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func tokenFromCredentialsFile() string {
	configDir := os.Getenv("CLAUDE_CONFIG_DIR")
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configDir = filepath.Join(home, ".claude")
	}

	data, err := os.ReadFile(filepath.Join(configDir, ".credentials.json")) //nolint:gosec
	if err != nil {
		return ""
	}

	var creds struct {
		AccessToken  string `json:"accessToken"`
		AccessToken2 string `json:"access_token"`
	}
	if err := json.Unmarshal(data, &creds); err != nil {
		return ""
	}
	if creds.AccessToken != "" {
		return strings.TrimSpace(creds.AccessToken)
	}
	return strings.TrimSpace(creds.AccessToken2)
}

func tokenFromIngressFiles() string {
	home, _ := os.UserHomeDir()
	candidates := []string{
		filepath.Join(home, ".claude", "remote", ".session_ingress_token"),
		"/home/claude/.claude/remote/.session_ingress_token",
		"/root/.claude/remote/.session_ingress_token",
	}
	for _, path := range candidates {
		data, err := os.ReadFile(path) //nolint:gosec // fixed well-known paths
		if err != nil {
			continue
		}
		if token := strings.TrimSpace(string(data)); token != "" {
			return token
		}
	}
	return ""
}
