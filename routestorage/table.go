package routestorage

import (
	"net/netip"

	"github.com/gaissmai/bart"

	"github.com/encodeous/asabr/asabr"
	"github.com/encodeous/asabr/router"
)

// nodePrefix maps a NodeID onto a /32 IPv4 host prefix so it can key a
// bart.Table — the routing table is dense over destination node IDs, not
// actual IP space, but bart's compressed-trie lookup is a fit regardless
// given the teacher's own use of bart.Table for a similarly dense,
// integer-keyed forwarding table.
func nodePrefix(id asabr.NodeID) netip.Prefix {
	addr := netip.AddrFrom4([4]byte{byte(id >> 8), byte(id), 0, 0})
	return netip.PrefixFrom(addr, 32)
}

// RoutingTable caches, per destination, every route ever found to it;
// select() re-validates each by a fresh dry run and keeps only those still
// live, returning whichever remains best under the configured distance.
type RoutingTable struct {
	Distance asabr.Distance
	table    bart.Table[[]router.Route]
}

func NewRoutingTable(dist asabr.Distance) *RoutingTable {
	return &RoutingTable{Distance: dist}
}

func (t *RoutingTable) Store(bundle *asabr.Bundle, route router.Route) {
	if len(bundle.Destinations) == 0 {
		return
	}
	pfx := nodePrefix(bundle.Destinations[0])
	routes, _ := t.table.Get(pfx)
	routes = append(routes, route)
	t.table.Insert(pfx, routes)
}

func (t *RoutingTable) Select(bundle *asabr.Bundle, currTime asabr.Date, nodes asabr.NodeLookup, excludedNodes []asabr.NodeID) (router.Route, bool) {
	if len(bundle.Destinations) == 0 {
		return router.Route{}, false
	}
	pfx := nodePrefix(bundle.Destinations[0])
	routes, ok := t.table.Get(pfx)
	if !ok {
		return router.Route{}, false
	}

	var best router.Route
	var bestCandidate *asabr.RouteStage
	var found bool
	live := routes[:0]
	for _, route := range routes {
		if currTime > route.Destination.Expiration {
			continue
		}
		live = append(live, route)
		candidate, ok := router.DryRunPath(bundle, currTime, route.Destination, nodes, true)
		if !ok {
			continue
		}
		if !found || candidate.Cost.Compare(bestCandidate.Cost) < 0 {
			best = route
			bestCandidate = candidate
			found = true
		}
	}
	t.table.Insert(pfx, live)
	return best, found
}
