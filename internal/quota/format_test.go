package quota

import (
	"testing"
	"time"
)

func TestFormatResetTime(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		resetsAt string
		want     string
	}{
		{"empty", "", ""},
		{"unparsable", "not-a-time", ""},
		{"past", "2025-06-01T11:00:00Z", "resetting..."},
		{"exactly now", "2025-06-01T12:00:00Z", "resetting..."},
		{"minutes only", "2025-06-01T12:45:00Z", "45m"},
		{"hours and minutes", "2025-06-01T14:30:00Z", "2h 30m"},
		{"days and hours", "2025-06-04T15:00:00Z", "3d 3h"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatResetTime(tt.resetsAt, now); got != tt.want {
				t.Errorf("FormatResetTime(%q) = %q, want %q", tt.resetsAt, got, tt.want)
			}
		})
	}
}
