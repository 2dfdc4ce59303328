package utils

import (
	"time"
)

const ISODateFormat = "2006-01-02"

// ParseISODate parses an ISO calendar date (the format trades are stored
// under).
func ParseISODate(dateStr string) (time.Time, error) {
	return time.Parse(ISODateFormat, dateStr)
}

// ParseClock parses an "HH:MM" wall-clock string into minutes after midnight.
// Used for the configurable market session window.
func ParseClock(clock string) (int, bool) {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return 0, false
	}
	return t.Hour()*60 + t.Minute(), true
}
