package commands

import (
	"horizon-monitoring/lib/cliutil"
	"horizon-monitoring/lib/scrapers/sejm"
	"horizon-monitoring/services/monitor"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(monitorSejmCmd)
}

var monitorSejmCmd = &cobra.Command{
	Use:   "monitor-sejm <start-date> <end-date>",
	Short: "Checks the tracked Sejm prints for process stages in the date range (dates as YYYY-MM-DD).",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		start, end, err := cliutil.ParseDateRange(args[0], args[1])
		if err != nil {
			cliutil.Fatal("invalid date range", err)
		}

		client := sejm.NewClient(sejm.BaseURL)
		updated, err := monitor.NewSejmProjectMonitor(projectStore(), client).Monitor(cmd.Context(), start, end)
		if err != nil {
			cliutil.Fatal("monitoring failed", err)
		}

		renderTrackedItems(updated)
	},
}
