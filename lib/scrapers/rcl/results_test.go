package rcl

import (
	"strings"
	"testing"
	"time"

	"horizon-monitoring/lib/timezone"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, timezone.Location)
}

func parseDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

const checkboxTableHTML = `
<html><body>
<table>
  <tr><th></th><th>Tytuł</th><th>Rodzaj</th><th>Numer</th><th>Etap</th><th>Zaktualizowany</th></tr>
  <tr>
    <td><a href="/zapisz/projekt/555">zapisz</a></td>
    <td><a href="/projekt/555">Ustawa X</a></td>
    <td>projekt ustawy</td>
    <td>UD123</td>
    <td>Konsultacje</td>
    <td>15-03-2025</td>
  </tr>
</table>
</body></html>`

const plainTableHTML = `
<html><body>
<table><tr><td>nawigacja</td></tr><tr><td>menu</td></tr></table>
<table>
  <tr><th>Tytuł</th><th>Rodzaj</th><th>Numer</th><th>Etap</th><th>Zaktualizowany</th></tr>
  <tr>
    <td><a href="/projekt/101">Projekt A</a></td>
    <td>projekt</td>
    <td>UC1</td>
    <td>Opiniowanie</td>
    <td>01-03-2025</td>
  </tr>
  <tr>
    <td><a href="/projekt/102">Projekt B</a></td>
    <td>projekt</td>
    <td>UC2</td>
    <td>Opiniowanie</td>
    <td>31-03-2025</td>
  </tr>
  <tr>
    <td><a href="/projekt/103">Projekt C</a></td>
    <td>projekt</td>
    <td>UC3</td>
    <td>Opiniowanie</td>
    <td>01-04-2025</td>
  </tr>
  <tr>
    <td>Podsumowanie bez linku</td>
    <td></td><td></td><td></td><td></td>
  </tr>
  <tr>
    <td><a href="/projekt/104">Projekt D</a></td>
    <td>projekt</td>
    <td>UC4</td>
    <td>Opiniowanie</td>
    <td>data nieznana</td>
  </tr>
</table>
</body></html>`

func TestParseSearchResultsCheckboxLayout(t *testing.T) {
	doc := parseDoc(t, checkboxTableHTML)

	results := ParseSearchResults(doc, day(2025, time.March, 1), day(2025, time.March, 31))
	require.Len(t, results, 1)
	require.Equal(t, SearchResult{
		ID:          555,
		Title:       "Ustawa X",
		Number:      "UD123",
		UpdatedDate: "15-03-2025",
	}, results[0])
}

func TestParseSearchResultsPlainLayout(t *testing.T) {
	doc := parseDoc(t, plainTableHTML)

	// range boundaries are inclusive on both ends: rows dated exactly
	// at start and at end are kept
	results := ParseSearchResults(doc, day(2025, time.March, 1), day(2025, time.March, 31))
	require.Len(t, results, 2)
	require.Equal(t, int64(101), results[0].ID)
	require.Equal(t, int64(102), results[1].ID)
}

func TestParseSearchResultsSkipsBadRows(t *testing.T) {
	doc := parseDoc(t, plainTableHTML)

	// wide range: summary row (no link) and unparseable-date row are
	// skipped, the rest survive in document order
	results := ParseSearchResults(doc, day(2025, time.January, 1), day(2025, time.December, 31))
	require.Len(t, results, 3)
	require.Equal(t, []int64{101, 102, 103}, []int64{results[0].ID, results[1].ID, results[2].ID})
}

func TestParseSearchResultsNoTable(t *testing.T) {
	doc := parseDoc(t, `<html><body><p>Brak wyników</p></body></html>`)
	results := ParseSearchResults(doc, day(2025, time.January, 1), day(2025, time.December, 31))
	require.Empty(t, results)
}

func TestColumnMap(t *testing.T) {
	require.Equal(t, 5, plainColumns.minCells())
	require.Equal(t, 6, checkboxColumns.minCells())
	// checkbox layout is the plain layout shifted right by one
	require.Equal(t, plainColumns.title+1, checkboxColumns.title)
	require.Equal(t, plainColumns.number+1, checkboxColumns.number)
	require.Equal(t, plainColumns.updatedDate+1, checkboxColumns.updatedDate)
}
