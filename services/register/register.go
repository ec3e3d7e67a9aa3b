// Package register analyzes the KPRM legislative work register CSV:
// rows are filtered by publication date and searched for configured
// keywords grouped into categories.
package register

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"time"

	"horizon-monitoring/lib/dateutil"
	"horizon-monitoring/lib/textutil"
)

// Column headers searched for keywords when the caller does not pick
// its own set.
var DefaultSearchColumns = []string{
	"Cele projektu oraz informacja o przyczynach i potrzebie rozwiązań planowanych w projekcie",
	"Istota rozwiązań planowanych w projekcie, w tym proponowane środki realizacji",
	"Oddziaływanie na życie społeczne nowych regulacji prawnych",
	"Spodziewane skutki i następstwa projektowanych regulacji prawnych",
	"Tytuł",
}

const publicationDateColumn = "Data publikacji"

// ValidationError signals unusable analyzer input, like a missing
// register file.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Result is one register row that passed the filters. The CSV fields
// stay keyed by their header; match annotations are serialized
// alongside them with underscore-prefixed keys.
type Result struct {
	Fields            map[string]string
	MatchedKeywords   []string
	MatchedCategories []string
	MatchedColumns    map[string][]string
}

func (r Result) MarshalJSON() ([]byte, error) {
	flat := make(map[string]any, len(r.Fields)+3)
	for key, value := range r.Fields {
		flat[key] = value
	}
	if len(r.MatchedKeywords) > 0 {
		flat["_matched_keywords"] = r.MatchedKeywords
		flat["_matched_categories"] = r.MatchedCategories
		flat["_matched_columns"] = r.MatchedColumns
	}
	return json.Marshal(flat)
}

type Analyzer struct {
	registerFile string
}

func NewAnalyzer(registerFile string) *Analyzer {
	return &Analyzer{registerFile: registerFile}
}

// UnknownCategories returns the selected categories that do not exist
// in the keyword configuration.
func UnknownCategories(keywordsByCategory map[string][]string, selected []string) []string {
	var unknown []string
	for _, category := range selected {
		if _, ok := keywordsByCategory[category]; !ok {
			unknown = append(unknown, category)
		}
	}
	return unknown
}

// Analyze reads the register CSV and returns the rows published within
// [start, end] that match any keyword from the selected categories.
// With no keywords configured every row in the date range is returned.
// Rows whose publication date does not parse are skipped.
func (a *Analyzer) Analyze(
	start, end time.Time,
	keywordsByCategory map[string][]string,
	selectedCategories []string,
	searchColumns []string,
) ([]Result, error) {
	if selectedCategories == nil {
		selectedCategories = SortedCategories(keywordsByCategory)
	}
	if searchColumns == nil {
		searchColumns = DefaultSearchColumns
	}

	var allKeywords []string
	for _, category := range selectedCategories {
		allKeywords = append(allKeywords, keywordsByCategory[category]...)
	}

	file, err := os.Open(a.registerFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &ValidationError{Message: fmt.Sprintf("register file not found: %s", a.registerFile)}
		}
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading register header: %w", err)
	}

	// publication timestamps carry a time of day, so the range check is
	// half-open against the start of the day after end
	endExclusive := end.AddDate(0, 0, 1)

	var results []Result
	totalRows := 0
	inRange := 0

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading register row: %w", err)
		}
		totalRows++

		row := recordToRow(header, record)
		pubDate, ok := dateutil.ParseISO(row[publicationDateColumn])
		if !ok {
			continue
		}
		if pubDate.Before(start) || !pubDate.Before(endExclusive) {
			continue
		}
		inRange++

		if len(allKeywords) == 0 {
			results = append(results, Result{Fields: row})
			continue
		}

		if result, matched := matchRow(row, allKeywords, keywordsByCategory, selectedCategories, searchColumns); matched {
			results = append(results, result)
		}
	}

	slog.Info("analyzed register",
		"file", a.registerFile,
		"rows", totalRows,
		"in_range", inRange,
		"results", len(results))
	return results, nil
}

func recordToRow(header, record []string) map[string]string {
	row := make(map[string]string, len(header))
	for i, name := range header {
		if i < len(record) {
			row[name] = record[i]
		} else {
			row[name] = ""
		}
	}
	return row
}

func matchRow(
	row map[string]string,
	allKeywords []string,
	keywordsByCategory map[string][]string,
	selectedCategories []string,
	searchColumns []string,
) (Result, bool) {
	matchedSet := map[string]bool{}
	matchedColumns := map[string][]string{}

	for _, column := range searchColumns {
		matched := textutil.MatchKeywords(row[column], allKeywords, false)
		if len(matched) == 0 {
			continue
		}
		matchedColumns[column] = matched
		for _, keyword := range matched {
			matchedSet[keyword] = true
		}
	}
	if len(matchedSet) == 0 {
		return Result{}, false
	}

	matchedKeywords := make([]string, 0, len(matchedSet))
	for keyword := range matchedSet {
		matchedKeywords = append(matchedKeywords, keyword)
	}
	sort.Strings(matchedKeywords)

	var matchedCategories []string
	for _, category := range selectedCategories {
		for _, keyword := range keywordsByCategory[category] {
			if matchedSet[keyword] {
				matchedCategories = append(matchedCategories, category)
				break
			}
		}
	}

	return Result{
		Fields:            row,
		MatchedKeywords:   matchedKeywords,
		MatchedCategories: matchedCategories,
		MatchedColumns:    matchedColumns,
	}, true
}

// SortedCategories is the default category selection: every configured
// category in sorted order. Callers reporting which categories were
// analyzed must use the same order Analyze does.
func SortedCategories(keywordsByCategory map[string][]string) []string {
	categories := make([]string, 0, len(keywordsByCategory))
	for category := range keywordsByCategory {
		categories = append(categories, category)
	}
	sort.Strings(categories)
	return categories
}
