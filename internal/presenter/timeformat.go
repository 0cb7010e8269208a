// Package presenter formats cache records for human-readable CLI output.
package presenter

import (
	"fmt"
	"time"
)

// FormatTimeSince formats a time duration as a human-readable "X ago" string.
// Returns formats like "5 minutes ago", "2.5 hours ago", or "3 days ago".
func FormatTimeSince(t time.Time) string {
	duration := time.Since(t)

	if duration < time.Hour {
		return fmt.Sprintf("%.0f minutes ago", duration.Minutes())
	} else if duration < 24*time.Hour {
		return fmt.Sprintf("%.1f hours ago", duration.Hours())
	}
	return fmt.Sprintf("%.0f days ago", duration.Hours()/24)
}
