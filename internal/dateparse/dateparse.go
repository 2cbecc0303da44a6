// Package dateparse tolerantly parses the assorted date string formats
// found in EXTH publish-date records and OPF dc:date elements.
package dateparse

import "time"

// layouts are tried in order; the first one that parses the whole
// string wins.
var layouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006-01",
	"2006",
}

// Undefined is returned by Parse when no layout matches. Its year,
// 101, cannot collide with a real publication date.
var Undefined = time.Date(101, time.January, 1, 0, 0, 0, 0, time.UTC)

// Parse tries each known layout against s and returns the first
// successful result converted to UTC, or Undefined if none match.
func Parse(s string) time.Time {
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return Undefined
}

// IsDefined reports whether t is a value actually parsed from text,
// as opposed to the Undefined sentinel.
func IsDefined(t time.Time) bool {
	return !t.Equal(Undefined)
}
