package cliutil

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"horizon-monitoring/lib/dateutil"
	"horizon-monitoring/lib/timezone"
)

func Fatal(message string, err error) {
	slog.Error(message, "err", err.Error())
	os.Exit(1)
}

// ParseDateRange parses the two positional YYYY-MM-DD arguments every
// monitoring command takes. Both dates are normalized to midnight so a
// range always covers whole days.
func ParseDateRange(startArg, endArg string) (time.Time, time.Time, error) {
	start, ok := dateutil.ParseISO(startArg)
	if !ok {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid start date %q, expected YYYY-MM-DD", startArg)
	}
	end, ok := dateutil.ParseISO(endArg)
	if !ok {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid end date %q, expected YYYY-MM-DD", endArg)
	}
	start = timezone.Midnight(start)
	end = timezone.Midnight(end)
	if start.After(end) {
		return time.Time{}, time.Time{}, fmt.Errorf("start date %s is after end date %s", startArg, endArg)
	}
	return start, end, nil
}
