package router

import (
	"context"
	"log/slog"

	"github.com/encodeous/asabr/asabr"
	"github.com/encodeous/asabr/logging"
	"github.com/encodeous/asabr/metrics"
	"github.com/encodeous/asabr/pathfinding"
)

// Spsn is the shortest-path-scheduling-network mainframe: multicast
// bundles, a single shortest-path-tree build per cache miss (rather than
// one pathfinding call per destination), and a Guard that remembers which
// destinations a bundle size could not previously reach.
type Spsn struct {
	Pathfinding pathfinding.Pathfinding
	Storage     TreeStorage
	Guard       *Guard
	Log         *slog.Logger
}

func NewSpsn(pf pathfinding.Pathfinding, storage TreeStorage, guard *Guard) *Spsn {
	return &Spsn{Pathfinding: pf, Storage: storage, Guard: guard, Log: slog.Default()}
}

func (s *Spsn) Route(ctx context.Context, now asabr.Date, bundle *asabr.Bundle, excludedNodes []asabr.NodeID, commit bool) (RoutingOutput, error) {
	metrics.SpsnCalls.Add(1)
	if len(bundle.Destinations) == 0 {
		return RoutingOutput{}, nil
	}
	nodes := s.Pathfinding.Multigraph().Nodes()

	if s.Guard.MustAbort(bundle) {
		out := RoutingOutput{Bundle: *bundle}
		for _, dest := range bundle.Destinations {
			out.Destinations = append(out.Destinations, Destination{Node: dest, Reached: false})
		}
		return out, nil
	}

	var tree *pathfinding.PathFindingOutput
	if cached, ok := s.Storage.Select(bundle, now, excludedNodes); ok {
		if s.coversAll(cached, bundle, now, nodes) {
			s.Log.Debug(logging.EventCacheHit, "destinations", len(bundle.Destinations))
			metrics.CacheHits.Add(1)
			tree = cached
		} else {
			s.Log.Debug(logging.EventCacheMiss, "destinations", len(bundle.Destinations))
			metrics.CacheMisses.Add(1)
		}
	}
	if tree == nil {
		if err := checkCancelled(ctx); err != nil {
			return RoutingOutput{}, err
		}
		built := s.Pathfinding.GetNext(now, bundle.Source, bundle, excludedNodes)
		for _, dest := range bundle.Destinations {
			built.InitForDestination(dest)
		}
		s.Storage.Store(bundle, &built)
		tree = &built
	}

	out := RoutingOutput{Bundle: *bundle}
	for _, dest := range bundle.Destinations {
		stage := tree.ByDestination[dest]
		if stage == nil {
			s.Log.Debug(logging.EventRouteInfeasible, "destination", dest)
			s.Guard.AddLimit(bundle, dest)
			out.Destinations = append(out.Destinations, Destination{Node: dest, Reached: false})
			continue
		}
		verified, ok := DryRunPath(bundle, now, stage, nodes, true)
		if !ok {
			s.Log.Debug(logging.EventRouteInfeasible, "destination", dest)
			s.Guard.AddLimit(bundle, dest)
			out.Destinations = append(out.Destinations, Destination{Node: dest, Reached: false})
			continue
		}
		s.Log.Debug(logging.EventRouteFound, "destination", dest, "arrival", verified.AtTime)
		result := Destination{Node: dest, Reached: true, Arrival: verified.AtTime, HopCount: verified.HopCount}
		if commit {
			committed, ok := ScheduleUnicastPath(bundle, now, stage, nodes)
			if !ok {
				invariantf("spsn commit disagreed with its preceding dry run for destination %d", dest)
			}
			result.Arrival = committed.AtTime
		}
		out.Destinations = append(out.Destinations, result)
	}
	return out, nil
}

// coversAll reports whether a cached tree still reaches every destination
// of bundle under a fresh dry run.
func (s *Spsn) coversAll(tree *pathfinding.PathFindingOutput, bundle *asabr.Bundle, now asabr.Date, nodes asabr.NodeLookup) bool {
	for _, dest := range bundle.Destinations {
		stage := tree.ByDestination[dest]
		if stage == nil {
			return false
		}
		if _, ok := DryRunPath(bundle, now, stage, nodes, true); !ok {
			return false
		}
	}
	return true
}
