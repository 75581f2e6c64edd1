package user

import "fmt"

// FormatElapsed renders a duration in milliseconds for batch summaries.
// Sub-second values stay in milliseconds, sub-minute values show one decimal
// when fractional, and larger values switch to the two most significant
// units, dropping a zero remainder.
func FormatElapsed(milliseconds int64) string {
	if milliseconds < 1000 {
		return fmt.Sprintf("%dms", milliseconds)
	}

	totalSeconds := milliseconds / 1000
	if totalSeconds < 60 {
		if milliseconds%1000 == 0 {
			return fmt.Sprintf("%d seconds", totalSeconds)
		}
		return fmt.Sprintf("%.1f seconds", float64(milliseconds)/1000)
	}

	minutes := totalSeconds / 60
	seconds := totalSeconds % 60
	if minutes < 60 {
		if seconds == 0 {
			return plural(minutes, "minute")
		}
		return plural(minutes, "minute") + " " + plural(seconds, "second")
	}

	hours := minutes / 60
	minutes = minutes % 60
	if hours < 24 {
		if minutes == 0 {
			return plural(hours, "hour")
		}
		return plural(hours, "hour") + " " + plural(minutes, "minute")
	}

	days := hours / 24
	hours = hours % 24
	if hours == 0 {
		return plural(days, "day")
	}
	return plural(days, "day") + " " + plural(hours, "hour")
}

func plural(n int64, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
