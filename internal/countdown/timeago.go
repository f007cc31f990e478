package countdown

import (
	"fmt"
	"time"
)

// TimeAgo describes t relative to now in coarse buckets. Anything a day or
// older falls back to an absolute local timestamp.
func TimeAgo(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < 2*time.Minute:
		return "1 minute ago"
	case d < time.Hour:
		return fmt.Sprintf("%d minutes ago", int(d/time.Minute))
	case d < 2*time.Hour:
		return "1 hour ago"
	case d < 24*time.Hour:
		return fmt.Sprintf("%d hours ago", int(d/time.Hour))
	default:
		return t.Local().Format("Jan 2, 2006 3:04 PM")
	}
}
