package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"horizon-monitoring/lib/restyutil"
	"horizon-monitoring/lib/scrapers/kprm"
	"horizon-monitoring/lib/scrapers/rcl"
	"horizon-monitoring/lib/scrapers/sejm"
	"horizon-monitoring/lib/telemetry"
	"horizon-monitoring/services/projectstore"

	"github.com/spf13/cobra"
)

var (
	configDir string
	dataDir   string
	verbose   bool
	debugHTTP bool
)

var rootCmd = &cobra.Command{
	Use:   "horizon-cli",
	Short: "horizon-cli monitors the Polish legislative process: RCL, the Sejm and the KPRM work register.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		telemetry.InitSlog(verbose)
		if debugHTTP {
			output := restyutil.NewFilesystemOutput(filepath.Join(dataDir, "http-dumps"))
			rcl.SetRestyInstrumentOutput(output)
			sejm.SetRestyInstrumentOutput(output)
			kprm.SetRestyInstrumentOutput(output)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "config", "directory holding the configuration files")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "data", "directory for downloaded data and results")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&debugHTTP, "debug-http", false, "dump http exchanges to <data-dir>/http-dumps")
}

func Execute(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func projectStore() *projectstore.Store {
	return projectstore.NewStore(filepath.Join(configDir, "projects.json"))
}
