package timezone

import "time"

var Location *time.Location

func init() {
	var err error
	Location, err = time.LoadLocation("Europe/Warsaw")
	if err != nil {
		panic(err)
	}
}

// force timezone to be Warsaw because the monitored portals publish
// dates in Polish local time and our servers are not guaranteed to run
// there; a range built in another zone would shift day boundaries.
func Now() time.Time {
	return time.Now().In(Location)
}

// Midnight truncates t to the start of its day in the Warsaw zone.
func Midnight(t time.Time) time.Time {
	t = t.In(Location)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, Location)
}
