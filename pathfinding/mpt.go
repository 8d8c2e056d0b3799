package pathfinding

import "github.com/encodeous/asabr/asabr"

// HybridParenting is the multi-path-tracking (MPT) Dijkstra variant: rather
// than keeping a single best RouteStage per destination, it keeps a
// Pareto-style set of non-dominated stages: a proposal joins the set when it
// orders before a retained stage under the distance's Compare or when the
// distance's HybridOrd retains it, and the output reports the lowest-cost
// stage of each set. A later route stage can still be useful if, say, it carries
// fewer hops even though it arrives later — relevant once a node along the
// cheapest route gets excluded and the search must fall back to an
// alternative.
type HybridParenting struct {
	graph    *asabr.Multigraph
	Distance interface {
		asabr.Distance
		asabr.HybridOrd
	}
}

func NewHybridParenting(graph *asabr.Multigraph, dist interface {
	asabr.Distance
	asabr.HybridOrd
}) *HybridParenting {
	return &HybridParenting{graph: graph, Distance: dist}
}

func (p *HybridParenting) Multigraph() *asabr.Multigraph { return p.graph }

func (p *HybridParenting) GetNext(currentTime asabr.Date, source asabr.NodeID, bundle *asabr.Bundle, excludedNodes []asabr.NodeID) PathFindingOutput {
	p.graph.ApplyExclusions(excludedNodes)
	nodes := p.graph.Nodes()
	nodeCount := p.graph.NodeCount()

	sourceRoute := asabr.NewRouteStage(currentTime, source, nil, *bundle)
	sourceRoute.Cost = p.Distance.Initial(currentTime)

	byDestination := make([][]*asabr.RouteStage, nodeCount)
	byDestination[source] = []*asabr.RouteStage{sourceRoute}

	pq := &routeHeap{sourceRoute}

	for pq.Len() > 0 {
		from := heapPop(pq)
		txNode := from.ToNode
		if nodes[txNode].Info.Excluded {
			continue
		}

		for _, rx := range p.graph.ReceiversOf(txNode) {
			if nodes[rx].Info.Excluded {
				continue
			}
			proposal, ok := tryMakeHop(p.graph, nodes, p.Distance, from, bundle, txNode, rx)
			if !ok {
				continue
			}

			existing := byDestination[rx]
			kept := make([]*asabr.RouteStage, 0, len(existing))
			dominated := false
			for _, known := range existing {
				if p.Distance.MustPrune(proposal.Cost, known.Cost) {
					continue // known is dominated by proposal; drop it
				}
				kept = append(kept, known)
				if !p.Distance.CanRetain(proposal.Cost, known.Cost) && proposal.Cost.Compare(known.Cost) >= 0 {
					dominated = true
				}
			}
			if !dominated {
				kept = append(kept, proposal)
				heapPush(pq, proposal)
			}
			byDestination[rx] = kept
		}
	}

	out := newOutput(bundle, sourceRoute, excludedNodes, nodeCount)
	for i, routes := range byDestination {
		for _, r := range routes {
			if out.ByDestination[i] == nil || r.Cost.Compare(out.ByDestination[i].Cost) < 0 {
				out.ByDestination[i] = r
			}
		}
	}
	return out
}
