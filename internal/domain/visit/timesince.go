package visit

import (
	"fmt"
	"time"
)

// TimeSince renders a human-relative age for feed entries, bucketed at
// day, hour and minute granularity.
func TimeSince(created, now time.Time) string {
	elapsed := now.Sub(created)

	if elapsed < time.Minute {
		return "Just now"
	}

	if days := int(elapsed.Hours() / 24); days > 0 {
		if days == 1 {
			return "1 day ago"
		}
		return fmt.Sprintf("%d days ago", days)
	}

	if hours := int(elapsed.Hours()); hours > 0 {
		if hours == 1 {
			return "1 hour ago"
		}
		return fmt.Sprintf("%d hours ago", hours)
	}

	minutes := int(elapsed.Minutes())
	if minutes == 1 {
		return "1 minute ago"
	}
	return fmt.Sprintf("%d minutes ago", minutes)
}
