package asabr

import "sort"

// receiver holds every contact from one transmitter to one particular
// receiver, sorted ascending by start, plus a lazy-pruning cursor: the index
// of the earliest contact that has not yet fully expired.
type receiver struct {
	node   NodeID
	toRx   []*Contact
	cursor int
}

// lazyPruneAndGetFirstIdx advances cursor past any contacts whose End has
// already passed currentTime, then returns the (possibly updated) cursor, or
// ok=false if nothing remains.
func (rv *receiver) lazyPruneAndGetFirstIdx(currentTime Date) (int, bool) {
	for rv.cursor < len(rv.toRx) && rv.toRx[rv.cursor].Info.End <= currentTime {
		rv.cursor++
	}
	if rv.cursor >= len(rv.toRx) {
		return 0, false
	}
	return rv.cursor, true
}

// sender holds, for one transmitter, the per-receiver contact lists.
type sender struct {
	node      NodeID
	receivers []receiver
}

// Multigraph is the time-varying graph of nodes and scheduled contacts.
// Contacts between any (tx, rx) pair are kept sorted ascending by start and
// are never removed, only skipped via the lazy-pruning cursor — this
// preserves back-pointers held by RouteStages built against earlier states.
type Multigraph struct {
	senders   []sender
	nodes     []Node
	nodeCount int
}

// NewMultigraph builds a Multigraph from a dense node list and an unordered
// contact list. Nodes and contacts are sorted; contacts are grouped by
// (tx, rx).
func NewMultigraph(nodes []Node, contacts []*Contact) *Multigraph {
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].Info.ID < nodes[j].Info.ID })
	sortedContacts := make([]*Contact, len(contacts))
	copy(sortedContacts, contacts)
	sort.Slice(sortedContacts, func(i, j int) bool { return sortedContacts[i].Less(sortedContacts[j]) })

	mg := &Multigraph{
		nodes:     nodes,
		nodeCount: len(nodes),
		senders:   make([]sender, len(nodes)),
	}
	for i := range mg.senders {
		mg.senders[i].node = NodeID(i)
	}

	for _, c := range sortedContacts {
		s := &mg.senders[c.Info.Tx]
		idx := -1
		for i := range s.receivers {
			if s.receivers[i].node == c.Info.Rx {
				idx = i
				break
			}
		}
		if idx == -1 {
			s.receivers = append(s.receivers, receiver{node: c.Info.Rx})
			idx = len(s.receivers) - 1
		}
		s.receivers[idx].toRx = append(s.receivers[idx].toRx, c)
	}
	return mg
}

// NodeCount returns the number of nodes in the graph.
func (mg *Multigraph) NodeCount() int { return mg.nodeCount }

// Nodes returns the dense node slice, usable by managers keyed off NodeID.
func (mg *Multigraph) Nodes() []Node { return mg.nodes }

// ForEachNextHop invokes visit for every live contact (end > atTime) leaving
// tx, advancing each receiver's prune cursor first. The multigraph performs
// no per-call allocation.
func (mg *Multigraph) ForEachNextHop(tx NodeID, atTime Date, visit func(c *Contact)) {
	s := &mg.senders[tx]
	for i := range s.receivers {
		rv := &s.receivers[i]
		idx, ok := rv.lazyPruneAndGetFirstIdx(atTime)
		if !ok {
			continue
		}
		for j := idx; j < len(rv.toRx); j++ {
			visit(rv.toRx[j])
		}
	}
}

// ReceiversOf returns the node IDs reachable as a receiver from tx,
// regardless of whether any contact to them is still live.
func (mg *Multigraph) ReceiversOf(tx NodeID) []NodeID {
	s := &mg.senders[tx]
	out := make([]NodeID, len(s.receivers))
	for i := range s.receivers {
		out[i] = s.receivers[i].node
	}
	return out
}

// ForEachContact visits every live contact (lazy-pruned against atTime) from
// tx to rx, in ascending start order.
func (mg *Multigraph) ForEachContact(tx, rx NodeID, atTime Date, visit func(c *Contact)) {
	s := &mg.senders[tx]
	for i := range s.receivers {
		rv := &s.receivers[i]
		if rv.node != rx {
			continue
		}
		idx, ok := rv.lazyPruneAndGetFirstIdx(atTime)
		if !ok {
			return
		}
		for j := idx; j < len(rv.toRx); j++ {
			visit(rv.toRx[j])
		}
		return
	}
}

// Prune advances every (tx, rx) cursor past contacts that have expired by
// now. Idempotent; callable lazily (ForEachNextHop already prunes on demand).
func (mg *Multigraph) Prune(now Date) {
	for si := range mg.senders {
		s := &mg.senders[si]
		for ri := range s.receivers {
			s.receivers[ri].lazyPruneAndGetFirstIdx(now)
		}
	}
}

// ApplyExclusions sets NodeInfo.Excluded on every node whose ID appears in
// exclusions.
func (mg *Multigraph) ApplyExclusions(exclusions []NodeID) {
	excluded := make(map[NodeID]bool, len(exclusions))
	for _, id := range exclusions {
		excluded[id] = true
	}
	for i := range mg.nodes {
		mg.nodes[i].Info.Excluded = excluded[mg.nodes[i].Info.ID]
	}
}
