// Package pathfinding implements the Dijkstra-style shortest-path variants
// used by the router mainframes: NodeParenting (one best stage per node),
// ContactParenting (one best stage per contact, enabling fuller tree
// coverage), HybridParenting (a Pareto-tracking multi-path variant), and the
// FirstEnding/FirstDepleted alternative-path wrappers that iteratively
// suppress the limiting contact of the previous route.
package pathfinding

import (
	"container/heap"

	"github.com/encodeous/asabr/asabr"
)

// PathFindingOutput is the result of one pathfinding pass: the source
// stage, and for every node ID, the best (or nil) RouteStage reaching it.
type PathFindingOutput struct {
	Bundle          asabr.Bundle
	Source          *asabr.RouteStage
	ExcludedNodes   []asabr.NodeID
	ByDestination   []*asabr.RouteStage
}

func newOutput(bundle *asabr.Bundle, source *asabr.RouteStage, excluded []asabr.NodeID, nodeCount int) PathFindingOutput {
	return PathFindingOutput{
		Bundle:        *bundle,
		Source:        source,
		ExcludedNodes: excluded,
		ByDestination: make([]*asabr.RouteStage, nodeCount),
	}
}

// InitForDestination walks the via-chain of the route to destination,
// registering forward pointers usable by RouteStage.Schedule/DryRun.
func (o *PathFindingOutput) InitForDestination(destination asabr.NodeID) {
	if route := o.ByDestination[destination]; route != nil {
		asabr.InitRoute(route)
	}
}

// Pathfinding finds, from a single source, the best stage reaching every
// other node in the multigraph for one bundle.
type Pathfinding interface {
	GetNext(currentTime asabr.Date, source asabr.NodeID, bundle *asabr.Bundle, excludedNodes []asabr.NodeID) PathFindingOutput
	Multigraph() *asabr.Multigraph
}

// routeHeap is a min-heap of route stages ordered by Cost, used by every
// Dijkstra variant below.
type routeHeap []*asabr.RouteStage

func (h routeHeap) Len() int            { return len(h) }
func (h routeHeap) Less(i, j int) bool  { return h[i].Cost.Compare(h[j].Cost) < 0 }
func (h routeHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *routeHeap) Push(x any)         { *h = append(*h, x.(*asabr.RouteStage)) }
func (h *routeHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

func heapPush(h *routeHeap, r *asabr.RouteStage) { heap.Push(h, r) }
func heapPop(h *routeHeap) *asabr.RouteStage     { return heap.Pop(h).(*asabr.RouteStage) }

// tryMakeHop scans every live contact from fromRoute's node to rx, keeping
// whichever yields the earliest arrival. Mirrors the teacher's try_make_hop:
// a node manager gate at tx and rx may reject a contact that would
// otherwise be feasible. Timing is anchored at fromRoute.AtTime (the
// arrival at tx via the predecessor stage), not the search's original
// currentTime, so a second hop can't be scheduled before the bundle
// actually gets there.
func tryMakeHop(mg *asabr.Multigraph, nodes asabr.NodeLookup, dist asabr.Distance, fromRoute *asabr.RouteStage, bundle *asabr.Bundle, tx, rx asabr.NodeID) (*asabr.RouteStage, bool) {
	var bestContact *asabr.Contact
	var bestHop asabr.TxEndHopData
	bestArrival := asabr.MaxDate
	found := false

	txNode := &nodes[tx]
	rxNode := &nodes[rx]

	mg.ForEachContact(tx, rx, fromRoute.AtTime, func(c *asabr.Contact) {
		if c.Suppressed {
			return
		}
		if c.Info.Start > bestArrival {
			return
		}
		sendBundle := bundle.Clone()
		_, sendingTime := txNode.Manager.DryRunProcess(fromRoute.AtTime, &sendBundle)
		hop, ok := c.Manager.DryRun(c.Info, sendingTime, &sendBundle)
		if !ok {
			return
		}
		if !txNode.Manager.DryRunTx(sendingTime, hop.TxStart, hop.TxEnd, &sendBundle) {
			return
		}
		arrival := hop.Arrival()
		if arrival >= bestArrival {
			return
		}
		if !rxNode.Manager.DryRunRx(hop.TxStart+hop.Delay, hop.TxEnd+hop.Delay, &sendBundle) {
			return
		}
		bestArrival = arrival
		bestContact = c
		bestHop = hop
		found = true
	})

	if !found {
		return nil, false
	}

	proposal := asabr.NewRouteStage(bestArrival, rx, &asabr.ViaHop{Contact: bestContact, Parent: fromRoute}, *bundle)
	proposal.HopCount = fromRoute.HopCount + 1
	proposal.CumulativeDelay = fromRoute.CumulativeDelay + bestHop.Delay
	expiration := fromRoute.Expiration
	if bestContact.Info.End-fromRoute.CumulativeDelay < expiration {
		expiration = bestContact.Info.End - fromRoute.CumulativeDelay
	}
	proposal.Expiration = expiration
	proposal.Cost = dist.Combine(fromRoute.Cost, bestContact, bestHop, proposal.HopCount)
	return proposal, true
}
