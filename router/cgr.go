package router

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/encodeous/asabr/asabr"
	"github.com/encodeous/asabr/asabrerr"
	"github.com/encodeous/asabr/logging"
	"github.com/encodeous/asabr/metrics"
	"github.com/encodeous/asabr/pathfinding"
)

// Cgr is the contact-graph-routing mainframe: single-destination bundles,
// an alternative-path pathfinding backend (FirstEnding/FirstDepleted
// wrapping a Dijkstra variant), and a RoutingTable cache.
//
// VolumeAware controls whether the bundle's real size/priority are carried
// into the Dijkstra search itself. Plain CGR is not volume aware: it
// searches with size/priority dropped to zero, so every relaxation sees an
// unconstrained contact and the cheapest-arrival path wins regardless of
// whether it actually has room for the bundle; only the post-search dry run
// (and, on failure, the alternative-path retry loop) ever rejects a path for
// lack of volume. VolCGR sets VolumeAware, so the real bundle flows into
// every ContactManager.DryRun call the Dijkstra makes, and a contact without
// enough residual volume at the bundle's priority is excluded from
// consideration at relaxation time rather than discovered afterwards.
type Cgr struct {
	Pathfinding pathfinding.Pathfinding
	Storage     RouteStorage
	Log         *slog.Logger
	VolumeAware bool
}

func NewCgr(pf pathfinding.Pathfinding, storage RouteStorage) *Cgr {
	return &Cgr{Pathfinding: pf, Storage: storage, Log: slog.Default()}
}

func (c *Cgr) Route(ctx context.Context, now asabr.Date, bundle *asabr.Bundle, excludedNodes []asabr.NodeID, commit bool) (RoutingOutput, error) {
	metrics.CgrCalls.Add(1)
	if len(bundle.Destinations) != 1 {
		return RoutingOutput{}, fmt.Errorf("cgr requires exactly one destination, got %d: %w", len(bundle.Destinations), asabrerr.Infeasible)
	}
	dest := bundle.Destinations[0]
	nodes := c.Pathfinding.Multigraph().Nodes()

	if route, ok := c.Storage.Select(bundle, now, nodes, excludedNodes); ok {
		if verified, ok := DryRunPath(bundle, now, route.Destination, nodes, true); ok {
			c.Log.Debug(logging.EventCacheHit, "destination", dest)
			metrics.CacheHits.Add(1)
			return c.finish(bundle, now, verified, nodes, commit)
		}
		c.Log.Debug(logging.EventCacheMiss, "destination", dest)
		metrics.CacheMisses.Add(1)
	}

	searchBundle := bundle
	if !c.VolumeAware {
		// Not volume aware: drop size/priority before searching so the
		// Dijkstra picks the cheapest-arrival path irrespective of volume;
		// the dry run below is what actually enforces the real constraints.
		dropped := bundle.Clone()
		dropped.Size = 0
		dropped.Priority = 0
		searchBundle = &dropped
	}

	for attempt := 0; attempt < maxAlternatives; attempt++ {
		if err := checkCancelled(ctx); err != nil {
			return RoutingOutput{}, err
		}
		tree := c.Pathfinding.GetNext(now, bundle.Source, searchBundle, excludedNodes)
		stage := tree.ByDestination[dest]
		if stage == nil {
			c.Log.Debug(logging.EventRouteInfeasible, "destination", dest, "attempt", attempt)
			return unreachable(bundle, dest), nil
		}
		asabr.InitRoute(stage)
		verified, ok := DryRunPath(bundle, now, stage, nodes, true)
		if !ok {
			continue
		}
		c.Storage.Store(bundle, Route{Source: tree.Source, Destination: stage})
		c.Log.Debug(logging.EventRouteFound, "destination", dest, "attempt", attempt, "arrival", verified.AtTime)
		return c.finish(bundle, now, verified, nodes, commit)
	}
	c.Log.Debug(logging.EventRouteInfeasible, "destination", dest, "attempts", maxAlternatives)
	return unreachable(bundle, dest), nil
}

func (c *Cgr) finish(bundle *asabr.Bundle, now asabr.Date, verified *asabr.RouteStage, nodes asabr.NodeLookup, commit bool) (RoutingOutput, error) {
	result := Destination{Node: verified.ToNode, Reached: true, Arrival: verified.AtTime, HopCount: verified.HopCount}
	if commit {
		committed, ok := ScheduleUnicastPath(bundle, now, verified, nodes)
		if !ok {
			invariantf("cgr commit disagreed with its preceding dry run for destination %d", verified.ToNode)
		}
		result.Arrival = committed.AtTime
	}
	return RoutingOutput{Bundle: *bundle, Destinations: []Destination{result}}, nil
}
