package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/encodeous/asabr/logging"
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Route and commit one bundle, printing each destination's arrival time and hop count",
	Run: func(cmd *cobra.Command, args []string) {
		slog.SetDefault(logging.New(verboseLevel(cmd)))
		scenario := readScenario()
		runRoute(&scenario, true)
	},
}

func init() {
	rootCmd.AddCommand(scheduleCmd)
	scheduleCmd.Flags().BoolP("verbose", "v", false, "verbose output")
	addBundleFlags(scheduleCmd)
}
