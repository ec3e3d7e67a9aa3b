package commands

import (
	"os"

	"horizon-monitoring/lib/cliutil"
	"horizon-monitoring/lib/scrapers/rcl"
	"horizon-monitoring/services/monitor"
	"horizon-monitoring/services/projectstore"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(monitorRCLCmd)
}

var monitorRCLCmd = &cobra.Command{
	Use:   "monitor-rcl <start-date> <end-date>",
	Short: "Checks the tracked RCL projects for modifications in the date range (dates as YYYY-MM-DD).",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		start, end, err := cliutil.ParseDateRange(args[0], args[1])
		if err != nil {
			cliutil.Fatal("invalid date range", err)
		}

		client, err := rcl.NewClient(rcl.BaseURL)
		if err != nil {
			cliutil.Fatal("failed to create rcl client", err)
		}

		updated, err := monitor.NewRCLProjectMonitor(projectStore(), client).Monitor(cmd.Context(), start, end)
		if err != nil {
			cliutil.Fatal("monitoring failed", err)
		}

		renderTrackedItems(updated)
	},
}

func renderTrackedItems(items []projectstore.TrackedItem) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"ID", "Number", "Title", "Last hit", "Stages"})
	for _, item := range items {
		t.AppendRow(table.Row{item.ID, item.Number, item.Title, item.LastHit, len(item.ReferredTo)})
	}
	t.Render()
}
