package rcl

import (
	"log/slog"
	"regexp"
	"strconv"
	"time"

	"horizon-monitoring/lib/dateutil"
	"horizon-monitoring/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
)

// SearchResult is one row of the portal's results table.
type SearchResult struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Number      string `json:"number"`
	UpdatedDate string `json:"updated_date"`
}

var projectLinkPattern = regexp.MustCompile(`/projekt/(\d+)`)
var saveProjectPattern = regexp.MustCompile(`/zapisz/projekt`)

// columnMap pins down where the interesting cells sit in a results row.
// The portal renders two layouts: with a leading save-project checkbox
// cell (all indices shifted by one) and without. Keeping the indices in
// one place makes the brittleness explicit.
type columnMap struct {
	title       int
	number      int
	updatedDate int
}

var plainColumns = columnMap{title: 0, number: 2, updatedDate: 4}
var checkboxColumns = columnMap{title: 1, number: 3, updatedDate: 5}

func (m columnMap) minCells() int { return m.updatedDate + 1 }

// ParseSearchResults extracts rows updated within [start, end], both
// ends inclusive, from the first table that looks like a results table.
// A page without one yields no rows; a bad row is skipped, not fatal.
func ParseSearchResults(doc *goquery.Document, start, end time.Time) []SearchResult {
	table := findResultsTable(doc)
	if table == nil {
		slog.Warn("no results table found on search page")
		return nil
	}

	var results []SearchResult
	table.Find("tr").Each(func(rowIdx int, row *goquery.Selection) {
		if rowIdx == 0 {
			// header
			return
		}
		result, ok := parseResultRow(rowIdx, row, start, end)
		if ok {
			results = append(results, result)
		}
	})
	return results
}

// the results table is recognized by its first data row carrying a
// project detail link
func findResultsTable(doc *goquery.Document) *goquery.Selection {
	var table *goquery.Selection
	doc.Find("table").EachWithBreak(func(_ int, t *goquery.Selection) bool {
		rows := t.Find("tr")
		if rows.Length() < 2 {
			return true
		}
		if htmlutil.FindLink(rows.Eq(1), projectLinkPattern) != nil {
			table = t
			return false
		}
		return true
	})
	return table
}

func parseResultRow(rowIdx int, row *goquery.Selection, start, end time.Time) (SearchResult, bool) {
	cells := row.Find("td, th")

	columns := plainColumns
	if cells.Length() > 0 && htmlutil.FindLink(cells.Eq(0), saveProjectPattern) != nil {
		columns = checkboxColumns
	}
	if cells.Length() < columns.minCells() {
		return SearchResult{}, false
	}

	titleLink := htmlutil.FindLink(cells.Eq(columns.title), projectLinkPattern)
	if titleLink == nil {
		// summary and separator rows carry no project link
		return SearchResult{}, false
	}

	href := titleLink.AttrOr("href", "")
	match := projectLinkPattern.FindStringSubmatch(href)
	if match == nil {
		return SearchResult{}, false
	}
	id, err := strconv.ParseInt(match[1], 10, 64)
	if err != nil {
		return SearchResult{}, false
	}

	updatedDateStr := htmlutil.Text(cells.Eq(columns.updatedDate))
	if updatedDateStr == "" {
		return SearchResult{}, false
	}
	updatedDate, ok := dateutil.ParsePolishDate(updatedDateStr)
	if !ok {
		slog.Warn("cannot parse updated date in results row",
			"row", rowIdx, "date", updatedDateStr)
		return SearchResult{}, false
	}

	if updatedDate.Before(start) || updatedDate.After(end) {
		return SearchResult{}, false
	}

	return SearchResult{
		ID:          id,
		Title:       htmlutil.Text(titleLink),
		Number:      htmlutil.Text(cells.Eq(columns.number)),
		UpdatedDate: updatedDateStr,
	}, true
}
