package pathfinding

import (
	"testing"

	"github.com/encodeous/asabr/asabr"
	"github.com/encodeous/asabr/contactmgr"
	"github.com/encodeous/asabr/distance"
	"github.com/encodeous/asabr/nodemgr"
)

func buildContactChain(t *testing.T) (*asabr.Multigraph, []*asabr.Contact) {
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
	c12, err := asabr.NewContact(asabr.ContactInfo{Tx: 1, Rx: 2, Start: 0, End: 100}, contactmgr.NewEVLManager(10, 1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	contacts := []*asabr.Contact{c01, c12}
	return asabr.NewMultigraph(nodes, contacts), contacts
}

func TestContactParentingReachesDestination(t *testing.T) {
	mg, _ := buildContactChain(t)
	pf := NewContactParenting(mg, distance.SABR{}, false)

	bundle := asabr.Bundle{Source: 0, Destinations: []asabr.NodeID{2}, Size: 5, Expiration: asabr.MaxDate}
	out := pf.GetNext(0, 0, &bundle, nil)

	dest := out.ByDestination[2]
	if dest == nil {
		t.Fatalf("expected node 2 to be reachable")
	}
	if dest.HopCount != 2 {
		t.Fatalf("expected a 2-hop path, got %d", dest.HopCount)
	}
}

// TestContactParentingExcludesNodesInPathOnlyMode mirrors
// TestNodeParentingExcludesNodesInPathOnlyMode: treeOutput=false is what
// Cgr/VolCgr actually use, and excludedNodes must still be honored there.
func TestContactParentingExcludesNodesInPathOnlyMode(t *testing.T) {
	mg, _ := buildContactChain(t)
	pf := NewContactParenting(mg, distance.SABR{}, false)

	bundle := asabr.Bundle{Source: 0, Destinations: []asabr.NodeID{2}, Size: 5, Expiration: asabr.MaxDate}
	out := pf.GetNext(0, 0, &bundle, []asabr.NodeID{1})

	if out.ByDestination[2] != nil {
		t.Fatalf("expected node 2 to be unreachable once the only path's middle node is excluded")
	}
}

func TestContactParentingClearsWorkAreaAfterRun(t *testing.T) {
	mg, contacts := buildContactChain(t)
	pf := NewContactParenting(mg, distance.SABR{}, true)

	bundle := asabr.Bundle{Source: 0, Destinations: []asabr.NodeID{2}, Size: 5, Expiration: asabr.MaxDate}
	pf.GetNext(0, 0, &bundle, nil)

	for _, c := range contacts {
		if c.WorkArea != nil {
			t.Fatalf("expected every contact's WorkArea to be cleared after GetNext returns")
		}
	}
}

func TestContactParentingTreeOutputStopsOnceBothSidesVisited(t *testing.T) {
	mg, _ := buildContactChain(t)
	pf := NewContactParenting(mg, distance.SABR{}, true)

	bundle := asabr.Bundle{Source: 0, Destinations: nil, Size: 5, Expiration: asabr.MaxDate}
	out := pf.GetNext(0, 0, &bundle, nil)

	if out.ByDestination[1] == nil || out.ByDestination[2] == nil {
		t.Fatalf("expected tree-mode run to reach every node")
	}
}
