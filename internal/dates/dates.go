// Package dates turns the free-text dates found in change-log titles into instants.
package dates

import (
	"regexp"
	"strings"
	"time"
)

// Sentinel is returned for empty or unparseable input. It is the zero time,
// which sorts before every real date.
var Sentinel = time.Time{}

// IsSentinel reports whether t is the unparseable-date sentinel.
func IsSentinel(t time.Time) bool { return t.Equal(Sentinel) }

var (
	ordinalRe    = regexp.MustCompile(`(?i)\b(\d{1,2})(st|nd|rd|th)\b`)
	whitespaceRe = regexp.MustCompile(`\s+`)
	septRe       = regexp.MustCompile(`(?i)\bsept\b`)
)

// layouts are tried in order; the first successful parse wins.
var layouts = []string{
	"2 January 2006",
	"2 Jan 2006",
	"2 January, 2006",
	"2 Jan, 2006",
	"January 2 2006",
	"January 2, 2006",
	"Jan 2 2006",
	"Jan 2, 2006",
	"Monday 2 January 2006",
	"Monday, 2 January 2006",
	"Mon 2 Jan 2006",
	"Mon, 2 Jan 2006",
	"Monday, January 2, 2006",
	"Mon, Jan 2, 2006",
	"2006-01-02",
	"2006/01/02",
	"1/2/2006",
	time.RFC3339,
	"January 2006",
	"Jan 2006",
	"2006",
}

// Parse never fails: empty or unrecognised input yields Sentinel. Results are UTC.
func Parse(s string) time.Time {
	s = Normalize(s)
	if s == "" {
		return Sentinel
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return Sentinel
}

// Normalize strips ordinal suffixes ("3rd" -> "3"), collapses whitespace and
// drops trailing punctuation.
func Normalize(s string) string {
	s = ordinalRe.ReplaceAllString(s, "$1")
	s = septRe.ReplaceAllString(s, "Sep")
	s = whitespaceRe.ReplaceAllString(strings.TrimSpace(s), " ")
	return strings.TrimRight(s, ".,;:")
}
