package helpers

import (
	"strings"

	"github.com/araddon/dateparse"
)

// DatePart returns the calendar date of a timestamp as YYYY-MM-DD. When the
// value cannot be parsed it falls back to the text before the first space
// and reports ok=false.
func DatePart(timestamp string) (date string, ok bool) {
	timestamp = strings.TrimSpace(timestamp)
	if timestamp == "" {
		return "", true
	}
	t, err := dateparse.ParseStrict(timestamp)
	if err == nil {
		return t.Format("2006-01-02"), true
	}
	date, _, _ = strings.Cut(timestamp, " ")
	return date, false
}
