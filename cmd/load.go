package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/encodeous/asabr/config"
	"github.com/encodeous/asabr/logging"
)

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Parse and validate a scenario, printing a summary",
	Run: func(cmd *cobra.Command, args []string) {
		slog.SetDefault(logging.New(verboseLevel(cmd)))

		scenario := readScenario()
		built, err := scenario.Build()
		if err != nil {
			panic(err)
		}
		fmt.Printf("nodes: %d\n", built.Multigraph.NodeCount())
		fmt.Printf("contacts: %d\n", len(built.Plan.Contacts))
		fmt.Printf("mainframe: %s (distance=%s parenting=%s)\n",
			scenario.Router.Mainframe, scenario.Router.Distance, scenario.Router.Parenting)
	},
}

func init() {
	rootCmd.AddCommand(loadCmd)
	loadCmd.Flags().BoolP("verbose", "v", false, "verbose output")
}

func verboseLevel(cmd *cobra.Command) slog.Level {
	if ok, _ := cmd.Flags().GetBool("verbose"); ok {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

func readScenario() config.Scenario {
	f, err := os.Open(scenarioPath)
	if err != nil {
		panic(err)
	}
	defer f.Close()
	scenario, err := config.LoadScenario(f)
	if err != nil {
		panic(err)
	}
	if err := scenario.Validate(); err != nil {
		panic(err)
	}
	return scenario
}
