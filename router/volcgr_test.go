package router_test

import (
	"context"
	"testing"

	"github.com/encodeous/asabr/asabr"
	"github.com/encodeous/asabr/contactmgr"
	"github.com/encodeous/asabr/distance"
	"github.com/encodeous/asabr/nodemgr"
	"github.com/encodeous/asabr/pathfinding"
	"github.com/encodeous/asabr/router"
	"github.com/encodeous/asabr/routestorage"
)

// buildVolumeDivergenceChain builds a diamond (0 -> {1,2} -> 3) where the
// direct-through-1 path is the cheapest by arrival time but its second hop
// is too small in volume to ever carry a 60-unit bundle, while the
// through-2 path is slower but has ample volume throughout.
func buildVolumeDivergenceChain(t *testing.T) *asabr.Multigraph {
	t.Helper()
	nodes := []asabr.Node{
		asabr.NewNode(asabr.NodeInfo{ID: 0}, nodemgr.NoManagement{}),
		asabr.NewNode(asabr.NodeInfo{ID: 1}, nodemgr.NoManagement{}),
		asabr.NewNode(asabr.NodeInfo{ID: 2}, nodemgr.NoManagement{}),
		asabr.NewNode(asabr.NodeInfo{ID: 3}, nodemgr.NoManagement{}),
	}
	c01, err := asabr.NewContact(asabr.ContactInfo{Tx: 0, Rx: 1, Start: 0, End: 1000}, contactmgr.NewEVLManager(10, 1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// total volume = rate*(end-start) = 1*50 = 50, too small for a 60-unit bundle.
	c13, err := asabr.NewContact(asabr.ContactInfo{Tx: 1, Rx: 3, Start: 0, End: 50}, contactmgr.NewEVLManager(1, 1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c02, err := asabr.NewContact(asabr.ContactInfo{Tx: 0, Rx: 2, Start: 0, End: 1000}, contactmgr.NewEVLManager(10, 10))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c23, err := asabr.NewContact(asabr.ContactInfo{Tx: 2, Rx: 3, Start: 0, End: 1000}, contactmgr.NewEVLManager(10, 10))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return asabr.NewMultigraph(nodes, []*asabr.Contact{c01, c13, c02, c23})
}

// TestCgrIgnoresVolumeDuringSearchAndFailsOnATooSmallContact shows plain
// CGR's constraint-dropping search: it always prefers the cheapest-arrival
// path (through the too-small contact c13) and never discovers the slower
// but feasible alternative, because NodeParenting without an alternative
// wrapper returns the same tree on every retry.
func TestCgrIgnoresVolumeDuringSearchAndFailsOnATooSmallContact(t *testing.T) {
	mg := buildVolumeDivergenceChain(t)
	pf := pathfinding.NewNodeParenting(mg, distance.SABR{}, false)
	cgr := router.NewCgr(pf, routestorage.NewRoutingTable(distance.SABR{}))

	bundle := asabr.Bundle{Source: 0, Destinations: []asabr.NodeID{3}, Size: 60, Expiration: asabr.MaxDate}
	out, err := cgr.Route(context.Background(), 0, &bundle, nil, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Destinations[0].Reached {
		t.Fatalf("expected plain CGR to fail to reach node 3, got %+v", out.Destinations[0])
	}
}

// TestVolCgrConsidersVolumeDuringSearchAndFindsTheFeasiblePath is the
// behavioral counterpart: with the real bundle flowing into the Dijkstra
// relaxation, VolCGR's search rejects the too-small contact at relaxation
// time and routes through the slower but feasible alternative instead.
func TestVolCgrConsidersVolumeDuringSearchAndFindsTheFeasiblePath(t *testing.T) {
	mg := buildVolumeDivergenceChain(t)
	pf := pathfinding.NewNodeParenting(mg, distance.SABR{}, false)
	vc := router.NewVolCgr(pf, routestorage.NewRoutingTable(distance.SABR{}))

	bundle := asabr.Bundle{Source: 0, Destinations: []asabr.NodeID{3}, Size: 60, Expiration: asabr.MaxDate}
	out, err := vc.Route(context.Background(), 0, &bundle, nil, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	dest := out.Destinations[0]
	if !dest.Reached {
		t.Fatalf("expected VolCGR to reach node 3 via the slower but feasible path, got %+v", dest)
	}
	if dest.HopCount != 2 {
		t.Fatalf("expected the 0->2->3 path (2 hops), got HopCount=%d", dest.HopCount)
	}
	if dest.Arrival != 32 {
		t.Fatalf("expected arrival 32 (tx 0->2: start=0,end=6,+10 delay=16; tx 2->3: start=16,end=22,+10 delay=32), got %v", dest.Arrival)
	}
}

func TestVolCgrRouteCommitConsumesVolume(t *testing.T) {
	mg := buildCgrChain(t)
	pf := pathfinding.NewNodeParenting(mg, distance.SABR{}, false)
	vc := router.NewVolCgr(pf, routestorage.NewRoutingTable(distance.SABR{}))

	bundle := asabr.Bundle{Source: 0, Destinations: []asabr.NodeID{2}, Size: 60, Expiration: asabr.MaxDate}
	first, err := vc.Route(context.Background(), 0, &bundle, nil, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !first.Destinations[0].Reached {
		t.Fatalf("expected the first commit to reach node 2, got %+v", first.Destinations[0])
	}

	huge := asabr.Bundle{Source: 0, Destinations: []asabr.NodeID{2}, Size: 950, Expiration: asabr.MaxDate}
	out, err := vc.Route(context.Background(), 0, &huge, nil, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Destinations[0].Reached {
		t.Fatalf("expected the second commit to fail once the contact's volume is exhausted")
	}
}
