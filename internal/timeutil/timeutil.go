package timeutil

import "time"

// DateLayout defines the canonical date format (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// ClockLayout defines the canonical time-of-day format (HH:MM).
const ClockLayout = "15:04"

// IST is the fixed UTC+5:30 offset used for slot time-of-day checks.
// Slot windows are evaluated in this zone regardless of the offset a
// timestamp was encoded with.
var IST = time.FixedZone("IST", 5*3600+30*60)

// ParseDate parses a YYYY-MM-DD date string.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, value)
}

// FormatDate formats a time as YYYY-MM-DD in its current location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// FormatClock renders a timestamp as HH:MM in IST.
func FormatClock(t time.Time) string {
	return t.In(IST).Format(ClockLayout)
}
