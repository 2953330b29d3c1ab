package quota

import (
	"fmt"
	"time"

	"github.com/theirongolddev/ccmonitor/internal/model"
)

// FormatResetTime renders a reset timestamp as a countdown. Empty or
// unparsable input yields ""; a reset already in the past yields a fixed
// indicator.
func FormatResetTime(resetsAt string, now time.Time) string {
	if resetsAt == "" {
		return ""
	}
	reset, err := model.ParseTimestamp(resetsAt)
	if err != nil {
		return ""
	}

	total := int64(reset.Sub(now).Seconds())
	if total <= 0 {
		return "resetting..."
	}

	days := total / 86400
	hours := (total % 86400) / 3600
	minutes := (total % 3600) / 60

	if days > 0 {
		return fmt.Sprintf("%dd %dh", days, hours)
	}
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}
