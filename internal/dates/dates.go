package dates

import (
	"strings"
	"time"
)

// isoLayouts cover ISO-8601 input, tried before the known legacy formats.
// A trailing Z or explicit offset is accepted and then stripped: the
// canonical form is timezone-naive wall-clock time.
var isoLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// knownLayouts are the legacy date formats still accepted from clients,
// tried in order with first match winning.
var knownLayouts = []string{
	"02/01/2006",
	"02/01/2006, 15:04",
	"2006-01-02",
	"2006-01-02 15:04",
}

// ParseAny parses a heterogeneous date string into a canonical
// timezone-naive timestamp. Empty input yields nil, and so does input
// matching no supported format: the lenient-parse policy means callers
// must never treat nil as a validation failure.
func ParseAny(value string) *time.Time {
	s := strings.TrimSpace(value)
	if s == "" {
		return nil
	}

	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return naive(t)
		}
	}
	for _, layout := range knownLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return naive(t)
		}
	}
	return nil
}

// naive drops timezone information while keeping the wall-clock reading
// of the original offset.
func naive(t time.Time) *time.Time {
	out := time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
	return &out
}
