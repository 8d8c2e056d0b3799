// Package router composes the pathfinding and storage layers into the
// three router mainframes (Cgr, VolCgr, Spsn): dry-run a candidate route or
// tree, optionally commit it by re-walking the chosen hops in schedule
// mode.
package router

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/encodeous/asabr/asabr"
	"github.com/encodeous/asabr/asabrerr"
	"github.com/encodeous/asabr/metrics"
	"github.com/encodeous/asabr/pathfinding"
)

// Route pairs the source stage of a tree with one destination stage
// reached from it; it is the unit RouteStorage persists.
type Route struct {
	Source      *asabr.RouteStage
	Destination *asabr.RouteStage
}

// RouteStorage caches single-destination routes (used by Cgr/VolCgr).
type RouteStorage interface {
	Select(bundle *asabr.Bundle, currTime asabr.Date, nodes asabr.NodeLookup, excludedNodes []asabr.NodeID) (Route, bool)
	Store(bundle *asabr.Bundle, route Route)
}

// TreeStorage caches whole shortest-path trees (used by Spsn).
type TreeStorage interface {
	Select(bundle *asabr.Bundle, currTime asabr.Date, excludedNodes []asabr.NodeID) (*pathfinding.PathFindingOutput, bool)
	Store(bundle *asabr.Bundle, tree *pathfinding.PathFindingOutput)
}

// Destination is one bundle destination's outcome within a RoutingOutput.
type Destination struct {
	Node     asabr.NodeID
	Reached  bool
	Arrival  asabr.Date
	HopCount asabr.HopCount
}

// RoutingOutput reports, per destination, whether and when a bundle was
// (or would be) delivered.
type RoutingOutput struct {
	Bundle       asabr.Bundle
	Destinations []Destination
}

// Router is implemented by every mainframe: Cgr, VolCgr, Spsn.
type Router interface {
	Route(ctx context.Context, now asabr.Date, bundle *asabr.Bundle, excludedNodes []asabr.NodeID, commit bool) (RoutingOutput, error)
}

const maxAlternatives = 16

// chainFromSource walks dest's via-chain back to the source and returns the
// stages ordered source-first.
func chainFromSource(dest *asabr.RouteStage) []*asabr.RouteStage {
	var chain []*asabr.RouteStage
	for cur := dest; cur != nil; {
		chain = append(chain, cur)
		if cur.Via == nil {
			break
		}
		cur = cur.Via.Parent
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}

// replayPath re-validates (dry run) or commits (schedule) the hop chain
// from dest's source down to dest, against the bundle and time supplied
// now rather than whatever was true when the path was first found.
func replayPath(bundle *asabr.Bundle, now asabr.Date, dest *asabr.RouteStage, nodes asabr.NodeLookup, withExclusions, commit bool) (*asabr.RouteStage, bool) {
	chain := chainFromSource(dest)
	if len(chain) == 0 {
		return nil, false
	}
	source := asabr.NewRouteStage(now, chain[0].ToNode, nil, *bundle)
	source.Cost = chain[0].Cost
	cur := source
	curBundle := *bundle

	for i := 1; i < len(chain); i++ {
		next := asabr.NewRouteStage(cur.AtTime, chain[i].ToNode, &asabr.ViaHop{Contact: chain[i].Via.Contact, Parent: cur}, curBundle)
		next.HopCount = cur.HopCount + 1
		next.Cost = chain[i].Cost
		var ok bool
		if commit {
			ok = next.Schedule(&curBundle, nodes)
		} else {
			ok = next.DryRun(&curBundle, nodes, withExclusions)
		}
		if !ok {
			return nil, false
		}
		curBundle = next.Bundle
		cur = next
	}
	return cur, true
}

// DryRunPath re-validates dest's path at (now, bundle) without mutating
// manager state.
func DryRunPath(bundle *asabr.Bundle, now asabr.Date, dest *asabr.RouteStage, nodes asabr.NodeLookup, withExclusions bool) (*asabr.RouteStage, bool) {
	return replayPath(bundle, now, dest, nodes, withExclusions, false)
}

// ScheduleUnicastPath commits dest's path at (now, bundle).
func ScheduleUnicastPath(bundle *asabr.Bundle, now asabr.Date, dest *asabr.RouteStage, nodes asabr.NodeLookup) (*asabr.RouteStage, bool) {
	return replayPath(bundle, now, dest, nodes, false, true)
}

func unreachable(bundle *asabr.Bundle, dest asabr.NodeID) RoutingOutput {
	return RoutingOutput{Bundle: *bundle, Destinations: []Destination{{Node: dest, Reached: false}}}
}

func checkCancelled(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}

func invariantf(format string, args ...any) error {
	err := fmt.Errorf(format+": %w", append(args, asabrerr.InvariantViolation)...)
	metrics.CommitFailures.Add(1)
	slog.Default().Error(err.Error())
	panic(err)
}
