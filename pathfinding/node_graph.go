package pathfinding

import "github.com/encodeous/asabr/asabr"

// NodeParenting is the node-graph (SPSN v1) Dijkstra variant: at most one
// candidate RouteStage is retained per destination node, replaced whenever
// a strictly cheaper proposal arrives. TreeOutput selects whether get_next
// explores the whole graph (for tree-style callers) or stops as soon as the
// bundle's first destination is popped (path-only callers).
type NodeParenting struct {
	graph      *asabr.Multigraph
	Distance   asabr.Distance
	TreeOutput bool
}

func NewNodeParenting(graph *asabr.Multigraph, dist asabr.Distance, treeOutput bool) *NodeParenting {
	return &NodeParenting{graph: graph, Distance: dist, TreeOutput: treeOutput}
}

func (p *NodeParenting) Multigraph() *asabr.Multigraph { return p.graph }

func (p *NodeParenting) GetNext(currentTime asabr.Date, source asabr.NodeID, bundle *asabr.Bundle, excludedNodes []asabr.NodeID) PathFindingOutput {
	// Exclusions are orthogonal to TreeOutput: a caller-supplied excludedNodes
	// set must be honored whether this call is exploring the full tree or
	// hunting a single path, matching HybridParenting's unconditional behavior.
	p.graph.ApplyExclusions(excludedNodes)
	nodes := p.graph.Nodes()

	sourceRoute := asabr.NewRouteStage(currentTime, source, nil, *bundle)
	sourceRoute.Cost = p.Distance.Initial(currentTime)

	out := newOutput(bundle, sourceRoute, excludedNodes, p.graph.NodeCount())
	out.ByDestination[source] = sourceRoute

	pq := &routeHeap{sourceRoute}

	for pq.Len() > 0 {
		from := heapPop(pq)
		if from.IsDisabled {
			continue
		}
		txNode := from.ToNode
		if !p.TreeOutput && len(bundle.Destinations) > 0 && bundle.Destinations[0] == txNode {
			break
		}
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
			push := false
			if known := out.ByDestination[rx]; known != nil {
				if proposal.Cost.Compare(known.Cost) < 0 {
					known.IsDisabled = true
					push = true
				}
			} else {
				push = true
			}
			if push {
				out.ByDestination[rx] = proposal
				heapPush(pq, proposal)
			}
		}
	}

	return out
}
