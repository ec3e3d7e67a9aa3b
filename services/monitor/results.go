package monitor

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"horizon-monitoring/lib/dateutil"
	"horizon-monitoring/lib/timezone"
	"horizon-monitoring/services/projectstore"
	"horizon-monitoring/services/register"
)

type dateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type searchArtifact struct {
	SearchDate string    `json:"search_date"`
	DateRange  dateRange `json:"date_range"`
	Results    any       `json:"results"`
}

type registerArtifact struct {
	SearchDate         string              `json:"search_date"`
	DateRange          dateRange           `json:"date_range"`
	SelectedCategories []string            `json:"selected_categories"`
	KeywordsByCategory map[string][]string `json:"keywords_by_category"`
	TotalResults       int                 `json:"total_results"`
	Results            []register.Result   `json:"results"`
}

// WriteSearchResults dumps a monitoring run to a dated JSON artifact.
func WriteSearchResults(path string, results any, start, end time.Time) error {
	return writeArtifact(path, searchArtifact{
		SearchDate: timezone.Now().Format(dateutil.DateFormat),
		DateRange: dateRange{
			Start: start.Format(dateutil.DateFormat),
			End:   end.Format(dateutil.DateFormat),
		},
		Results: results,
	})
}

// WriteRegisterResults dumps a register analysis together with the
// categories and keywords that produced it.
func WriteRegisterResults(
	path string,
	results []register.Result,
	start, end time.Time,
	selectedCategories []string,
	keywordsByCategory map[string][]string,
) error {
	selectedKeywords := make(map[string][]string, len(selectedCategories))
	for _, category := range selectedCategories {
		selectedKeywords[category] = keywordsByCategory[category]
	}
	return writeArtifact(path, registerArtifact{
		SearchDate: timezone.Now().Format("2006-01-02 15:04:05"),
		DateRange: dateRange{
			Start: start.Format(dateutil.DateFormat),
			End:   end.Format(dateutil.DateFormat),
		},
		SelectedCategories: selectedCategories,
		KeywordsByCategory: selectedKeywords,
		TotalResults:       len(results),
		Results:            results,
	})
}

// WriteProjectStubs writes discovered projects in the projects-file
// format so they can be pasted into the tracked list.
func WriteProjectStubs(path string, stubs []projectstore.TrackedItem) error {
	data, err := projectstore.EncodeProjects(stubs)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}
	slog.Info("wrote project stubs", "file", path, "count", len(stubs))
	return nil
}

func writeArtifact(path string, artifact any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(artifact); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return err
	}
	slog.Info("wrote results", "file", path)
	return nil
}
