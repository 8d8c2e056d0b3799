package asabr

// ViaHop records the contact and parent route stage used to reach a
// RouteStage during pathfinding.
type ViaHop struct {
	Contact *Contact
	Parent  *RouteStage
}

// RouteStage is one hop of a provisional or final path. Stages form a chain
// via Via.Parent back to the source, and — once initialized — a forward
// index NextForDestination from any ancestor to the next stage on the path
// toward a given destination.
type RouteStage struct {
	ToNode           NodeID
	AtTime           Date
	IsDisabled       bool
	Via              *ViaHop
	HopCount         HopCount
	CumulativeDelay  Duration
	Expiration       Date
	Cost             Cost
	routeInitialized bool
	NextForDest      map[NodeID]*RouteStage
	Bundle           Bundle
}

// NewRouteStage constructs a fresh, uninitialized stage.
func NewRouteStage(atTime Date, toNode NodeID, via *ViaHop, bundle Bundle) *RouteStage {
	return &RouteStage{
		ToNode:      toNode,
		AtTime:      atTime,
		Via:         via,
		Expiration:  MaxDate,
		NextForDest: make(map[NodeID]*RouteStage),
		Bundle:      bundle,
	}
}

// Clone copies a stage's scalar fields and via-pointer, but starts with a
// fresh (empty) NextForDest index — used when lifting a Dijkstra work-area
// result into a tree/route's owned stage.
func (r *RouteStage) Clone() *RouteStage {
	c := NewRouteStage(r.AtTime, r.ToNode, r.Via, r.Bundle)
	c.IsDisabled = r.IsDisabled
	c.HopCount = r.HopCount
	c.CumulativeDelay = r.CumulativeDelay
	c.Expiration = r.Expiration
	c.Cost = r.Cost
	return c
}

// InitRoute walks the via-chain from route back to the source, registering
// each ancestor's NextForDest[destination] = the step that leads toward
// route. Idempotent.
func InitRoute(route *RouteStage) {
	if route.routeInitialized {
		return
	}
	destination := route.ToNode
	curr := route
	for curr != nil {
		via := curr.Via
		if via == nil {
			break
		}
		via.Parent.NextForDest[destination] = curr
		curr = via.Parent
	}
	route.routeInitialized = true
}

// NodeLookup resolves a Node by ID; supplied by callers (pathfinding,
// routing) as a plain slice since NodeIDs are dense array indices.
type NodeLookup = []Node

// Schedule commits the transmission of bundle across this stage's Via hop:
// processing at the tx node, the contact manager's Schedule, the tx node's
// ScheduleTx gate, and the rx node's ScheduleRx gate, in that order. Returns
// false if any gate rejects; on success AtTime becomes the arrival time at
// ToNode and Bundle is updated to whatever ScheduleProcess produced.
func (r *RouteStage) Schedule(bundle *Bundle, nodes NodeLookup) bool {
	if r.Via == nil {
		return false
	}
	via := r.Via
	contact := via.Contact
	info := contact.Info

	mutBundle := bundle.Clone()
	txNode := &nodes[contact.Info.Tx]
	rxNode := &nodes[contact.Info.Rx]

	newBundle, sendingTime := txNode.Manager.ScheduleProcess(r.AtTime, &mutBundle)
	mutBundle = newBundle

	res, ok := contact.Manager.Schedule(info, sendingTime, &mutBundle)
	if !ok {
		return false
	}
	if !txNode.Manager.ScheduleTx(sendingTime, res.TxStart, res.TxEnd, &mutBundle) {
		return false
	}
	arrival := res.Arrival()
	if arrival > bundle.Expiration {
		return false
	}
	if !rxNode.Manager.ScheduleRx(res.TxStart+res.Delay, res.TxEnd+res.Delay, &mutBundle) {
		return false
	}
	r.AtTime = arrival
	r.Bundle = mutBundle
	return true
}

// DryRun mirrors Schedule without mutating persistent manager state. When
// withExclusions is true, a rx node with NodeInfo.Excluded is treated as
// unreachable.
func (r *RouteStage) DryRun(bundle *Bundle, nodes NodeLookup, withExclusions bool) bool {
	if r.Via == nil {
		return false
	}
	via := r.Via
	contact := via.Contact
	info := contact.Info

	if withExclusions && nodes[contact.Info.Rx].Info.Excluded {
		return false
	}

	mutBundle := bundle.Clone()
	txNode := &nodes[contact.Info.Tx]
	rxNode := &nodes[contact.Info.Rx]

	newBundle, sendingTime := txNode.Manager.DryRunProcess(r.AtTime, &mutBundle)
	mutBundle = newBundle

	res, ok := contact.Manager.DryRun(info, sendingTime, &mutBundle)
	if !ok {
		return false
	}
	if !txNode.Manager.DryRunTx(sendingTime, res.TxStart, res.TxEnd, &mutBundle) {
		return false
	}
	arrival := res.Arrival()
	if arrival > bundle.Expiration {
		return false
	}
	if !rxNode.Manager.DryRunRx(res.TxStart+res.Delay, res.TxEnd+res.Delay, &mutBundle) {
		return false
	}
	r.AtTime = arrival
	r.Bundle = mutBundle
	return true
}
