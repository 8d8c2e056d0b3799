package pathfinding

import (
	"testing"

	"github.com/encodeous/asabr/asabr"
	"github.com/encodeous/asabr/contactmgr"
	"github.com/encodeous/asabr/distance"
	"github.com/encodeous/asabr/nodemgr"
)

func buildParallelContacts(t *testing.T) (*asabr.Multigraph, *asabr.Contact, *asabr.Contact) {
	t.Helper()
	nodes := []asabr.Node{
		asabr.NewNode(asabr.NodeInfo{ID: 0}, nodemgr.NoManagement{}),
		asabr.NewNode(asabr.NodeInfo{ID: 1}, nodemgr.NoManagement{}),
	}
	short, err := asabr.NewContact(asabr.ContactInfo{Tx: 0, Rx: 1, Start: 0, End: 10}, contactmgr.NewEVLManager(10, 1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	long, err := asabr.NewContact(asabr.ContactInfo{Tx: 0, Rx: 1, Start: 0, End: 50}, contactmgr.NewEVLManager(10, 1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	mg := asabr.NewMultigraph(nodes, []*asabr.Contact{short, long})
	return mg, short, long
}

func TestFirstEndingSuppressesPreviouslyUsedContact(t *testing.T) {
	mg, short, long := buildParallelContacts(t)
	fe := NewFirstEnding(NewNodeParenting(mg, distance.SABR{}, false))

	bundle := asabr.Bundle{Source: 0, Destinations: []asabr.NodeID{1}, Size: 5, Expiration: asabr.MaxDate}

	first := fe.GetNext(0, 0, &bundle, nil)
	firstContact := first.ByDestination[1].Via.Contact

	second := fe.GetNext(0, 0, &bundle, nil)
	secondContact := second.ByDestination[1].Via.Contact

	if firstContact == secondContact {
		t.Fatalf("expected the second route to avoid the contact used by the first")
	}
	if firstContact != short && firstContact != long {
		t.Fatalf("unexpected contact used on the first call")
	}
	if secondContact != short && secondContact != long {
		t.Fatalf("unexpected contact used on the second call")
	}
}

func TestFirstEndingStopsSuppressingExpiredContacts(t *testing.T) {
	mg, _, _ := buildParallelContacts(t)
	fe := NewFirstEnding(NewNodeParenting(mg, distance.SABR{}, false))

	bundle := asabr.Bundle{Source: 0, Destinations: []asabr.NodeID{1}, Size: 5, Expiration: asabr.MaxDate}
	fe.GetNext(0, 0, &bundle, nil)

	// by t=60 both contacts (ending at 10 and 50) have expired, so the
	// suppression entry recorded at t=0 must be dropped rather than
	// suppress a since-expired contact forever.
	out := fe.GetNext(60, 0, &bundle, nil)
	if out.ByDestination[1] != nil {
		t.Fatalf("expected no route once both contacts have expired, got %+v", out.ByDestination[1])
	}
	if len(fe.suppressionMap[1]) != 0 {
		t.Fatalf("expected the expired suppression entry to be dropped, got %d entries", len(fe.suppressionMap[1]))
	}
}
