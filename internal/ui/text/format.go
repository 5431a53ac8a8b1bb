package text

import (
	"fmt"
	"time"
)

// ClockTime formats an absolute timestamp for log rows: "14:32:01".
func ClockTime(t time.Time) string {
	return t.Format("15:04:05")
}

// FormatElapsed formats a duration as "42s", "3m10s", or "1h12m".
func FormatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	if h > 0 {
		return fmt.Sprintf("%dh%dm", h, m)
	}
	return fmt.Sprintf("%dm%ds", m, int(d.Seconds())%60)
}

// FormatSeconds renders an elapsed-seconds axis label: 9.4 -> "9s",
// 125 -> "2m5s".
func FormatSeconds(s float64) string {
	return FormatElapsed(time.Duration(s * float64(time.Second)))
}

// FormatRate renders messages per second: 0.049 -> "0.0/s", 12.3 -> "12.3/s".
func FormatRate(r float64) string {
	return fmt.Sprintf("%.1f/s", r)
}

// FormatCount abbreviates large counts: 12400 -> "12.4k".
func FormatCount(n int) string {
	switch {
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000)
	case n >= 1_000:
		return fmt.Sprintf("%.1fk", float64(n)/1_000)
	default:
		return fmt.Sprintf("%d", n)
	}
}
