package commands

import (
	"fmt"
	"path/filepath"

	"horizon-monitoring/lib/browser"
	"horizon-monitoring/lib/cliutil"
	"horizon-monitoring/lib/dateutil"
	"horizon-monitoring/lib/scrapers/rcl"
	"horizon-monitoring/lib/timezone"
	"horizon-monitoring/services/monitor"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(searchCmd)
}

var searchCmd = &cobra.Command{
	Use:   "search <start-date> <end-date>",
	Short: "Discovers RCL projects by UE act number or KPRM register number and emits tracked-item stubs.",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		start, end, err := cliutil.ParseDateRange(args[0], args[1])
		if err != nil {
			cliutil.Fatal("invalid date range", err)
		}

		queries, err := loadQueries()
		if err != nil {
			cliutil.Fatal("failed to load search queries", err)
		}

		session, err := browser.Open(browser.Options{})
		if err != nil {
			cliutil.Fatal("failed to open browser", err)
		}
		defer session.Close()

		search := rcl.NewSearchSession(session, rcl.BaseURL, rcl.QuerySearchTab)
		if err := search.Open(cmd.Context()); err != nil {
			cliutil.Fatal("failed to open search form", err)
		}

		stubs, err := monitor.NewRCLSearchMonitor(search).Monitor(cmd.Context(), queries, start, end)
		if err != nil {
			cliutil.Fatal("search failed", err)
		}

		if len(stubs) > 0 {
			name := fmt.Sprintf("rcl_search_results_%s.json", timezone.Now().Format(dateutil.DateFormat))
			outputFile := filepath.Join(dataDir, name)
			if err := monitor.WriteProjectStubs(outputFile, stubs); err != nil {
				cliutil.Fatal("failed to write results", err)
			}
		}

		renderTrackedItems(stubs)
	},
}
