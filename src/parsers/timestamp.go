package parsers

import (
	"strings"
	"time"
)

// timestampFormats are tried in this exact order; the first successful parse
// wins. The order matters: it keeps day/month-ambiguous strings resolving
// deterministically.
var timestampFormats = []string{
	"01/02/2006 15:04:05", // MM/dd/yyyy HH:mm:ss
	"01/02/2006 15:04",    // MM/dd/yyyy HH:mm
	"2006-01-02 15:04:05", // yyyy-MM-dd HH:mm:ss
	"2006-01-02 15:04",    // yyyy-MM-dd HH:mm
}

// ParseTimestamp parses a raw broker date/time string as a wall-clock value in
// loc and converts it to UTC. When no candidate format matches it reports
// ok == false instead of an error, so the caller can record a row validation
// message rather than abort the file.
func ParseTimestamp(raw string, loc *time.Location) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}

	for _, format := range timestampFormats {
		if t, err := time.ParseInLocation(format, raw, loc); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}
