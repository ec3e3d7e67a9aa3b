package commands

import (
	"os"
	"path/filepath"

	"horizon-monitoring/lib/browser"
	"horizon-monitoring/lib/cliutil"
	"horizon-monitoring/lib/scrapers/rcl"
	"horizon-monitoring/services/monitor"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(monitorTagsCmd)
}

var monitorTagsCmd = &cobra.Command{
	Use:   "monitor-tags <start-date> <end-date>",
	Short: "Searches RCL for projects carrying the configured subject tags, modified in the date range.",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		start, end, err := cliutil.ParseDateRange(args[0], args[1])
		if err != nil {
			cliutil.Fatal("invalid date range", err)
		}

		tags, err := loadTags()
		if err != nil {
			cliutil.Fatal("failed to load subject tags", err)
		}

		session, err := browser.Open(browser.Options{})
		if err != nil {
			cliutil.Fatal("failed to open browser", err)
		}
		defer session.Close()

		search := rcl.NewSearchSession(session, rcl.BaseURL, rcl.TagSearchTab)
		results, err := monitor.NewRCLTagMonitor(search).Monitor(cmd.Context(), tags, start, end)
		if err != nil {
			cliutil.Fatal("monitoring failed", err)
		}

		if len(results) > 0 {
			outputFile := filepath.Join(dataDir, "rcl_tag_results.json")
			if err := monitor.WriteSearchResults(outputFile, results, start, end); err != nil {
				cliutil.Fatal("failed to write results", err)
			}
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"ID", "Number", "Title", "Updated"})
		for _, result := range results {
			t.AppendRow(table.Row{result.ID, result.Number, result.Title, result.UpdatedDate})
		}
		t.Render()
	},
}
