package dateutil

import (
	"testing"
	"time"

	"horizon-monitoring/lib/timezone"

	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, timezone.Location)
}

func TestParseISO(t *testing.T) {
	cases := []struct {
		in     string
		expect time.Time
		ok     bool
	}{
		{in: "2025-03-15", expect: day(2025, time.March, 15), ok: true},
		{in: "2025-03-15 14:30", expect: time.Date(2025, time.March, 15, 14, 30, 0, 0, timezone.Location), ok: true},
		{in: "  2025-03-15  ", expect: day(2025, time.March, 15), ok: true},
		{in: ""},
		{in: "   "},
		{in: "15-03-2025"},
		{in: "2025/03/15"},
		{in: "2025-13-40"},
		{in: "not a date"},
	}

	for _, test := range cases {
		got, ok := ParseISO(test.in)
		require.Equal(t, test.ok, ok, "input: %q", test.in)
		if test.ok {
			require.Equal(t, test.expect, got, "input: %q", test.in)
		}
	}
}

func TestParsePolishDate(t *testing.T) {
	cases := []struct {
		in     string
		expect time.Time
		ok     bool
	}{
		{in: "15-03-2025", expect: day(2025, time.March, 15), ok: true},
		{in: "01-01-2020", expect: day(2020, time.January, 1), ok: true},
		{in: " 15-03-2025 ", expect: day(2025, time.March, 15), ok: true},
		{in: ""},
		{in: "2025-03-15"},
		{in: "32-01-2025"},
		{in: "15-13-2025"},
		{in: "15.03.2025"},
	}

	for _, test := range cases {
		got, ok := ParsePolishDate(test.in)
		require.Equal(t, test.ok, ok, "input: %q", test.in)
		if test.ok {
			require.Equal(t, test.expect, got, "input: %q", test.in)
		}
	}
}

func TestParsePolishDateFull(t *testing.T) {
	cases := []struct {
		in     string
		expect time.Time
		ok     bool
	}{
		{in: "12 maja 2025", expect: day(2025, time.May, 12), ok: true},
		{in: "3 czerwca 2025", expect: day(2025, time.June, 3), ok: true},
		{in: "1 stycznia 2024", expect: day(2024, time.January, 1), ok: true},
		{in: "31 grudnia 2025", expect: day(2025, time.December, 31), ok: true},
		{in: "9 Września 2025", expect: day(2025, time.September, 9), ok: true},
		{in: "29 lutego 2024", expect: day(2024, time.February, 29), ok: true},
		{in: "  12 maja 2025  ", expect: day(2025, time.May, 12), ok: true},
		{in: ""},
		{in: "maja 2025"},
		{in: "12 may 2025"},
		{in: "12 maja"},
		{in: "dwunastego maja 2025"},
		{in: "12 maja 2025 roku"},
		{in: "0 maja x"},
		{in: "31 lutego 2025"},
		{in: "30 lutego 2024"},
		{in: "31 kwietnia 2025"},
		{in: "32 stycznia 2025"},
	}

	for _, test := range cases {
		got, ok := ParsePolishDateFull(test.in)
		require.Equal(t, test.ok, ok, "input: %q", test.in)
		if test.ok {
			require.Equal(t, test.expect, got, "input: %q", test.in)
		}
	}
}

// every parser must be total: arbitrary garbage reports !ok instead of
// panicking
func TestParsersNeverPanic(t *testing.T) {
	inputs := []string{
		"", " ", "\t\n", "-", "--", "a-b-c", "99-99-9999",
		"miesiąc dzień rok", "2025-03-15T14:30:00Z", "∞ maja 2025",
	}
	for _, in := range inputs {
		require.NotPanics(t, func() {
			ParseISO(in)
			ParsePolishDate(in)
			ParsePolishDateFull(in)
		}, "input: %q", in)
	}
}
