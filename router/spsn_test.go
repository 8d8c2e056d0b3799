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

func buildSpsnStar(t *testing.T) *asabr.Multigraph {
	t.Helper()
	nodes := []asabr.Node{
		asabr.NewNode(asabr.NodeInfo{ID: 0}, nodemgr.NoManagement{}),
		asabr.NewNode(asabr.NodeInfo{ID: 1}, nodemgr.NoManagement{}),
		asabr.NewNode(asabr.NodeInfo{ID: 2}, nodemgr.NoManagement{}),
	}
	c01, err := asabr.NewContact(asabr.ContactInfo{Tx: 0, Rx: 1, Start: 0, End: 100}, contactmgr.NewEVLManager(10, 1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c02, err := asabr.NewContact(asabr.ContactInfo{Tx: 0, Rx: 2, Start: 0, End: 100}, contactmgr.NewEVLManager(10, 1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return asabr.NewMultigraph(nodes, []*asabr.Contact{c01, c02})
}

func TestSpsnRouteMulticastReachesAllDestinations(t *testing.T) {
	mg := buildSpsnStar(t)
	pf := pathfinding.NewNodeParenting(mg, distance.SABR{}, true)
	spsn := router.NewSpsn(pf, routestorage.NewTreeCache(false, false, 16, 0), router.NewGuard(false))

	bundle := asabr.Bundle{Source: 0, Destinations: []asabr.NodeID{1, 2}, Size: 5, Expiration: asabr.MaxDate}
	out, err := spsn.Route(context.Background(), 0, &bundle, nil, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Destinations) != 2 {
		t.Fatalf("expected 2 destination outcomes, got %d", len(out.Destinations))
	}
	for _, d := range out.Destinations {
		if !d.Reached {
			t.Fatalf("expected destination %d to be reached", d.Node)
		}
	}
}

func TestSpsnGuardSkipsKnownUnreachable(t *testing.T) {
	nodes := []asabr.Node{
		asabr.NewNode(asabr.NodeInfo{ID: 0}, nodemgr.NoManagement{}),
		asabr.NewNode(asabr.NodeInfo{ID: 1}, nodemgr.NoManagement{}),
	}
	mg := asabr.NewMultigraph(nodes, nil) // no contacts at all: node 1 is unreachable
	pf := pathfinding.NewNodeParenting(mg, distance.SABR{}, true)
	guard := router.NewGuard(false)
	spsn := router.NewSpsn(pf, routestorage.NewTreeCache(false, false, 16, 0), guard)

	bundle := asabr.Bundle{Source: 0, Destinations: []asabr.NodeID{1}, Size: 5, Expiration: asabr.MaxDate}
	if _, err := spsn.Route(context.Background(), 0, &bundle, nil, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	bigger := asabr.Bundle{Source: 0, Destinations: []asabr.NodeID{1}, Size: 50, Expiration: asabr.MaxDate}
	if !guard.MustAbort(&bigger) {
		t.Fatalf("expected the guard to abort a bundle at least as large as a known-unreachable one")
	}
}
