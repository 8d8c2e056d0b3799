package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var scenarioPath string

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "asabr",
	Short: "Schedule-aware bundle routing over a contact plan",
	Long: `asabr loads a DTN routing scenario — a contact plan plus the manager and
router mainframe it should be evaluated with — and can dry-run or commit
bundle routes against it from the command line.`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. Called once by main.main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&scenarioPath, "scenario", "s", "scenario.yaml", "routing scenario file")
}
