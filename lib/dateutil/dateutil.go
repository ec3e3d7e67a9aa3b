// Package dateutil parses the date formats found on the monitored
// portals. Every parser is total: bad input reports ok=false, never an
// error or a panic.
package dateutil

import (
	"strconv"
	"strings"
	"time"

	"horizon-monitoring/lib/timezone"
)

const DateFormat = "2006-01-02"

// genitive month names, the form used in running text ("12 maja 2025")
var polishMonths = map[string]time.Month{
	"stycznia":     time.January,
	"lutego":       time.February,
	"marca":        time.March,
	"kwietnia":     time.April,
	"maja":         time.May,
	"czerwca":      time.June,
	"lipca":        time.July,
	"sierpnia":     time.August,
	"września":     time.September,
	"października": time.October,
	"listopada":    time.November,
	"grudnia":      time.December,
}

// ParseISO parses "YYYY-MM-DD HH:MM" or "YYYY-MM-DD", trying the
// time-bearing format first.
func ParseISO(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.ParseInLocation("2006-01-02 15:04", s, timezone.Location); err == nil {
		return t, true
	}
	if t, err := time.ParseInLocation("2006-01-02", s, timezone.Location); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// ParsePolishDate parses the short "DD-MM-YYYY" form used in RCL result
// tables and project pages.
func ParsePolishDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation("02-01-2006", s, timezone.Location)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ParsePolishDateFull parses the long textual form used on Sejm process
// timelines, e.g. "12 maja 2025". Exactly three whitespace-separated
// tokens; the month must be a Polish genitive month name.
func ParsePolishDateFull(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	parts := strings.Fields(s)
	if len(parts) != 3 {
		return time.Time{}, false
	}

	day, err := strconv.Atoi(parts[0])
	if err != nil {
		return time.Time{}, false
	}
	month, ok := polishMonths[strings.ToLower(parts[1])]
	if !ok {
		return time.Time{}, false
	}
	year, err := strconv.Atoi(parts[2])
	if err != nil {
		return time.Time{}, false
	}
	if day < 1 || day > 31 {
		return time.Time{}, false
	}

	// time.Date normalizes overflow ("31 lutego" becomes March 3), so an
	// impossible calendar date has to be caught by round-tripping.
	t := time.Date(year, month, day, 0, 0, 0, 0, timezone.Location)
	if t.Day() != day || t.Month() != month {
		return time.Time{}, false
	}
	return t, true
}
