package htmlutil

import (
	"regexp"

	"horizon-monitoring/lib/textutil"

	"github.com/PuerkitoBio/goquery"
)

// Text returns the visible text of a selection with whitespace
// collapsed, the form we compare against prefixes and parse dates from.
func Text(sel *goquery.Selection) string {
	return textutil.CollapseSpace(sel.Text())
}

// FindLink returns the first anchor under sel whose href matches
// pattern, or nil when there is none.
func FindLink(sel *goquery.Selection, pattern *regexp.Regexp) *goquery.Selection {
	var found *goquery.Selection
	sel.Find("a").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		href, ok := a.Attr("href")
		if ok && pattern.MatchString(href) {
			found = a
			return false
		}
		return true
	})
	return found
}
