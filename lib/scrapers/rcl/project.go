package rcl

import (
	"regexp"
	"time"

	"horizon-monitoring/lib/dateutil"
	"horizon-monitoring/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
)

var modificationDatePattern = regexp.MustCompile(`Data ostatniej modyfikacji:\s*(\d{2}-\d{2}-\d{4})`)

// ExtractModificationDates pulls every per-stage "last modified" date
// off a project detail page. Unparseable dates are dropped.
func ExtractModificationDates(doc *goquery.Document) []time.Time {
	var dates []time.Time
	doc.Find("div.small2").Each(func(_ int, div *goquery.Selection) {
		match := modificationDatePattern.FindStringSubmatch(htmlutil.Text(div))
		if match == nil {
			return
		}
		if date, ok := dateutil.ParsePolishDate(match[1]); ok {
			dates = append(dates, date)
		}
	})
	return dates
}

// LatestInRange returns the newest date within [start, end], both ends
// inclusive.
func LatestInRange(dates []time.Time, start, end time.Time) (time.Time, bool) {
	var latest time.Time
	found := false
	for _, d := range dates {
		if d.Before(start) || d.After(end) {
			continue
		}
		if !found || d.After(latest) {
			latest = d
			found = true
		}
	}
	return latest, found
}
