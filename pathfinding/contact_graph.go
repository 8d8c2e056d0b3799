package pathfinding

import "github.com/encodeous/asabr/asabr"

// ContactParenting is the contact-graph Dijkstra variant: the Dijkstra
// relaxation target is a contact's work area rather than a node, which lets
// a route chain back through the specific contact it used rather than just
// the node it arrived at. TreeOutput additionally tracks how many nodes
// have been visited as a transmitter and as a receiver, stopping once every
// reachable node has been reached both ways.
type ContactParenting struct {
	graph      *asabr.Multigraph
	Distance   asabr.Distance
	TreeOutput bool

	visitedTx      []bool
	visitedRx      []bool
	visitedTxCount int
	visitedRxCount int
}

func NewContactParenting(graph *asabr.Multigraph, dist asabr.Distance, treeOutput bool) *ContactParenting {
	c := &ContactParenting{graph: graph, Distance: dist, TreeOutput: treeOutput}
	if treeOutput {
		c.visitedTx = make([]bool, graph.NodeCount())
		c.visitedRx = make([]bool, graph.NodeCount())
	}
	return c
}

func (p *ContactParenting) Multigraph() *asabr.Multigraph { return p.graph }

// updateIfCloser compares proposal against the contact's cached work area
// (if any) and, when strictly better, installs proposal as the new work
// area and reports it retained.
func updateIfCloser(proposal *asabr.RouteStage) (*asabr.RouteStage, bool) {
	via := proposal.Via
	if via == nil {
		return nil, false
	}
	c := via.Contact
	if c.WorkArea == nil {
		c.WorkArea = &asabr.ContactWorkArea{}
	}
	wa := c.WorkArea
	if wa.Best != nil && proposal.Cost.Compare(wa.Best.Cost) >= 0 {
		return nil, false
	}
	wa.Best = proposal
	return proposal, true
}

func (p *ContactParenting) GetNext(currentTime asabr.Date, source asabr.NodeID, bundle *asabr.Bundle, excludedNodes []asabr.NodeID) PathFindingOutput {
	// Exclusions are orthogonal to TreeOutput: honor a caller-supplied
	// excludedNodes set whether this call explores the full tree or hunts a
	// single path, matching HybridParenting's unconditional behavior.
	p.graph.ApplyExclusions(excludedNodes)
	if p.TreeOutput {
		for i := range p.visitedTx {
			p.visitedTx[i] = false
			p.visitedRx[i] = false
		}
		p.visitedTx[source] = true
		p.visitedRx[source] = true
		p.visitedTxCount = 1
		p.visitedRxCount = 1
	}
	nodes := p.graph.Nodes()

	sourceRoute := asabr.NewRouteStage(currentTime, source, nil, *bundle)
	sourceRoute.Cost = p.Distance.Initial(currentTime)

	out := newOutput(bundle, sourceRoute, excludedNodes, p.graph.NodeCount())
	out.ByDestination[source] = sourceRoute

	pq := &routeHeap{sourceRoute}
	var touchedContacts []*asabr.Contact

	for pq.Len() > 0 {
		from := heapPop(pq)
		txNode := from.ToNode

		if !p.TreeOutput && len(bundle.Destinations) > 0 && bundle.Destinations[0] == txNode {
			break
		}
		if p.TreeOutput && !p.visitedTx[txNode] {
			p.visitedTx[txNode] = true
			p.visitedTxCount++
		}

		for _, rx := range p.graph.ReceiversOf(txNode) {
			if nodes[rx].Info.Excluded {
				continue
			}
			proposal, ok := tryMakeHop(p.graph, nodes, p.Distance, from, bundle, txNode, rx)
			if !ok {
				continue
			}
			retained, kept := updateIfCloser(proposal)
			if !kept {
				continue
			}
			touchedContacts = append(touchedContacts, retained.Via.Contact)
			out.ByDestination[rx] = retained
			heapPush(pq, retained)

			if p.TreeOutput && !p.visitedRx[rx] {
				p.visitedRx[rx] = true
				p.visitedRxCount++
			}
		}

		if p.TreeOutput && p.visitedTxCount == p.visitedRxCount {
			break
		}
	}

	for _, c := range touchedContacts {
		c.WorkArea = nil
	}

	return out
}
