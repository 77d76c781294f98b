package textutil

import (
	"fmt"
	"time"
)

// RelativeTime renders the delta between created and now as a human phrase
// such as "3 days ago". It returns an error when created is the zero time
// (the entity has not been persisted yet).
//
// Bucket boundaries at 30 and 7 days intentionally use > rather than >=, so
// exactly 30 days reads as weeks and exactly 7 days as days.
func RelativeTime(created, now time.Time) (string, error) {
	if created.IsZero() {
		return "", fmt.Errorf("timestamp has not been set")
	}

	delta := now.Sub(created)
	days := int(delta.Hours()) / 24
	secs := int(delta.Seconds())

	switch {
	case days >= 365:
		return plural(days/365, "year"), nil
	case days > 30:
		return plural(days/30, "month"), nil
	case days > 7:
		return plural(days/7, "week"), nil
	case days > 1:
		return fmt.Sprintf("%d days ago", days), nil
	case days == 1:
		return "1 day ago", nil
	case secs > 3600:
		return plural(secs/3600, "hour"), nil
	case secs > 60:
		return plural(secs/60, "minute"), nil
	case secs == 1:
		return "1 second ago", nil
	default:
		return fmt.Sprintf("%d seconds ago", secs), nil
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}
