package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/encodeous/asabr/asabr"
	"github.com/encodeous/asabr/config"
	"github.com/encodeous/asabr/router"
)

var (
	bundleSource      int
	bundleDestination []int
	bundleSize        float64
	bundlePriority    int
	bundleExpiration  float64
	bundleNow         float64
	bundleExclude     []int
)

func addBundleFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&bundleSource, "from", 0, "source node id")
	cmd.Flags().IntSliceVar(&bundleDestination, "to", nil, "destination node id(s)")
	cmd.Flags().Float64Var(&bundleSize, "size", 1, "bundle size (volume)")
	cmd.Flags().IntVar(&bundlePriority, "priority", 0, "bundle priority")
	cmd.Flags().Float64Var(&bundleExpiration, "expires", 1e18, "bundle expiration time")
	cmd.Flags().Float64Var(&bundleNow, "now", 0, "current time")
	cmd.Flags().IntSliceVar(&bundleExclude, "exclude", nil, "node id(s) to exclude from the search")
}

func buildExcludedNodes() []asabr.NodeID {
	excluded := make([]asabr.NodeID, len(bundleExclude))
	for i, e := range bundleExclude {
		excluded[i] = asabr.NodeID(e)
	}
	return excluded
}

func buildBundle() asabr.Bundle {
	dests := make([]asabr.NodeID, len(bundleDestination))
	for i, d := range bundleDestination {
		dests[i] = asabr.NodeID(d)
	}
	return asabr.Bundle{
		Source:       asabr.NodeID(bundleSource),
		Destinations: dests,
		Priority:     asabr.Priority(bundlePriority),
		Size:         asabr.Volume(bundleSize),
		Expiration:   asabr.Date(bundleExpiration),
	}
}

func runRoute(scenario *config.Scenario, commit bool) {
	built, err := scenario.Build()
	if err != nil {
		panic(err)
	}
	bundle := buildBundle()
	out, err := built.Router.Route(context.Background(), asabr.Date(bundleNow), &bundle, buildExcludedNodes(), commit)
	if err != nil {
		panic(err)
	}
	printRoutingOutput(out)
}

func printRoutingOutput(out router.RoutingOutput) {
	for _, d := range out.Destinations {
		if !d.Reached {
			fmt.Printf("destination %d: unreachable\n", d.Node)
			continue
		}
		fmt.Printf("destination %d: arrival=%.3f hops=%d\n", d.Node, d.Arrival, d.HopCount)
	}
}
