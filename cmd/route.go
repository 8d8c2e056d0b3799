package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/encodeous/asabr/logging"
)

var routeCmd = &cobra.Command{
	Use:   "route",
	Short: "Dry-run route one bundle from a scenario and print each destination's arrival time and hop count",
	Run: func(cmd *cobra.Command, args []string) {
		slog.SetDefault(logging.New(verboseLevel(cmd)))
		scenario := readScenario()
		runRoute(&scenario, false)
	},
}

func init() {
	rootCmd.AddCommand(routeCmd)
	routeCmd.Flags().BoolP("verbose", "v", false, "verbose output")
	addBundleFlags(routeCmd)
}
