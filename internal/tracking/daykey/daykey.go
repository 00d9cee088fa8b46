package daykey

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// The single source of truth for "does record X fall on day Y".
// Every calendar-driven lookup in the tracking packages goes through here.

var dateOnlyRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// layouts tried in order for full date-time values; the mobile clients send
// either RFC3339 or a zone-less timestamp with a "T" or space separator
var dateTimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
}

// ToDayKey converts a timestamp string to a "YYYY-MM-DD" key in the local
// time zone. A value that already is a bare date is returned unchanged, so
// that date-only values never get shifted through a date-time parser.
// Unparseable input yields an empty string, which matches no day.
func ToDayKey(timestamp string) string {
	ts := strings.TrimSpace(timestamp)
	if ts == "" {
		return ""
	}

	if dateOnlyRegex.MatchString(ts) {
		return ts
	}

	for _, layout := range dateTimeLayouts {
		if t, err := time.ParseInLocation(layout, ts, time.Local); err == nil {
			return FromTime(t)
		}
	}

	return ""
}

// FromTime builds a day key from the local-time year/month/day of t.
func FromTime(t time.Time) string {
	t = t.Local()
	return fmt.Sprintf("%04d-%02d-%02d", t.Year(), int(t.Month()), t.Day())
}

// SameDay reports whether both timestamps fall on the same local calendar
// day. Two malformed timestamps are never the same day.
func SameDay(a, b string) bool {
	keyA := ToDayKey(a)
	if keyA == "" {
		return false
	}
	return keyA == ToDayKey(b)
}
