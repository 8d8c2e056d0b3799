package asabr

import "testing"

func mgContact(t *testing.T, tx, rx NodeID, start, end Date) *Contact {
	t.Helper()
	c, err := NewContact(ContactInfo{Tx: tx, Rx: rx, Start: start, End: end}, &fakeManager{initOK: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return c
}

func TestMultigraphForEachContactOrdering(t *testing.T) {
	nodes := []Node{
		NewNode(NodeInfo{ID: 0}, nil),
		NewNode(NodeInfo{ID: 1}, nil),
	}
	c1 := mgContact(t, 0, 1, 10, 20)
	c2 := mgContact(t, 0, 1, 0, 5)
	mg := NewMultigraph(nodes, []*Contact{c1, c2})

	var seen []*Contact
	mg.ForEachContact(0, 1, 0, func(c *Contact) { seen = append(seen, c) })

	if len(seen) != 2 || seen[0] != c2 || seen[1] != c1 {
		t.Fatalf("expected contacts in ascending start order, got %v", seen)
	}
}

func TestMultigraphPruneSkipsExpiredContacts(t *testing.T) {
	nodes := []Node{
		NewNode(NodeInfo{ID: 0}, nil),
		NewNode(NodeInfo{ID: 1}, nil),
	}
	early := mgContact(t, 0, 1, 0, 5)
	later := mgContact(t, 0, 1, 10, 20)
	mg := NewMultigraph(nodes, []*Contact{early, later})

	var seen []*Contact
	mg.ForEachNextHop(0, 6, func(c *Contact) { seen = append(seen, c) })

	if len(seen) != 1 || seen[0] != later {
		t.Fatalf("expected only the live contact to be visited, got %v", seen)
	}
}

func TestMultigraphReceiversOf(t *testing.T) {
	nodes := []Node{
		NewNode(NodeInfo{ID: 0}, nil),
		NewNode(NodeInfo{ID: 1}, nil),
		NewNode(NodeInfo{ID: 2}, nil),
	}
	c1 := mgContact(t, 0, 1, 0, 5)
	c2 := mgContact(t, 0, 2, 0, 5)
	mg := NewMultigraph(nodes, []*Contact{c1, c2})

	got := mg.ReceiversOf(0)
	if len(got) != 2 {
		t.Fatalf("expected 2 receivers, got %v", got)
	}
}

func TestMultigraphApplyExclusions(t *testing.T) {
	nodes := []Node{
		NewNode(NodeInfo{ID: 0}, nil),
		NewNode(NodeInfo{ID: 1}, nil),
	}
	mg := NewMultigraph(nodes, nil)
	mg.ApplyExclusions([]NodeID{1})

	if mg.Nodes()[0].Info.Excluded {
		t.Fatalf("did not expect node 0 to be excluded")
	}
	if !mg.Nodes()[1].Info.Excluded {
		t.Fatalf("expected node 1 to be excluded")
	}
}
