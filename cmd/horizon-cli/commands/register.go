package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"horizon-monitoring/lib/cliutil"
	"horizon-monitoring/lib/scrapers/kprm"
	"horizon-monitoring/services/monitor"
	"horizon-monitoring/services/register"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(fetchRegisterCmd)
	rootCmd.AddCommand(analyzeRegisterCmd)
}

func registerCSVPath() string {
	return filepath.Join(dataDir, "Rejestr_20874195.csv")
}

var fetchRegisterCmd = &cobra.Command{
	Use:   "fetch-register",
	Short: "Downloads the KPRM legislative work register CSV.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if err := os.MkdirAll(dataDir, 0o755); err != nil {
			cliutil.Fatal("failed to create data directory", err)
		}

		fetcher := kprm.NewFetcher(kprm.RegisterURL, kprm.DirectCSVURL)
		if err := fetcher.Download(cmd.Context(), registerCSVPath()); err != nil {
			cliutil.Fatal("failed to download register", err)
		}
	},
}

var analyzeRegisterCmd = &cobra.Command{
	Use:   "analyze-register <start-date> <end-date> [category...]",
	Short: "Filters the downloaded register by publication date and the configured keyword categories.",
	Args:  cobra.MinimumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		start, end, err := cliutil.ParseDateRange(args[0], args[1])
		if err != nil {
			cliutil.Fatal("invalid date range", err)
		}

		keywordsByCategory, err := loadKeywords()
		if err != nil {
			cliutil.Fatal("failed to load keyword categories", err)
		}

		selected := args[2:]
		if len(selected) == 0 {
			selected = nil
		} else if unknown := register.UnknownCategories(keywordsByCategory, selected); len(unknown) > 0 {
			cliutil.Fatal("unknown categories", fmt.Errorf("%s", strings.Join(unknown, ", ")))
		}

		analyzer := register.NewAnalyzer(registerCSVPath())
		results, err := analyzer.Analyze(start, end, keywordsByCategory, selected, nil)
		if err != nil {
			cliutil.Fatal("analysis failed", err)
		}

		if len(results) > 0 {
			categories := selected
			if categories == nil {
				categories = register.SortedCategories(keywordsByCategory)
			}
			outputFile := filepath.Join(dataDir, "register_results.json")
			if err := monitor.WriteRegisterResults(outputFile, results, start, end, categories, keywordsByCategory); err != nil {
				cliutil.Fatal("failed to write results", err)
			}
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Number", "Title", "Published", "Categories", "Keywords"})
		for _, result := range results {
			t.AppendRow(table.Row{
				result.Fields["Numer projektu"],
				truncate(result.Fields["Tytuł"], 60),
				result.Fields["Data publikacji"],
				strings.Join(result.MatchedCategories, ", "),
				strings.Join(result.MatchedKeywords, ", "),
			})
		}
		t.Render()
	},
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
