package asabr

// Cost is an opaque, lexicographically-ordered progress cost produced by a
// distance strategy (see the distance package). Cost values are only ever
// compared against other values produced by the same strategy.
type Cost interface {
	// Compare returns <0 if the receiver is strictly better than other, 0 if
	// equal, >0 if worse.
	Compare(other Cost) int
}

// Distance is the pluggable cost strategy threaded through every Dijkstra
// variant: Initial seeds the cost at the source, Combine extends a cost
// across one more contact hop.
type Distance interface {
	Initial(now Date) Cost
	Combine(prev Cost, contact *Contact, hop TxEndHopData, hopCount HopCount) Cost
}

// HybridOrd is implemented by distances usable with hybrid (MPT) parenting:
// it decides whether a newly proposed cost belongs in a node's Pareto set
// alongside an already-retained cost, and whether the proposal instead
// dominates (and should prune) the retained one.
type HybridOrd interface {
	CanRetain(proposed, known Cost) bool
	MustPrune(proposed, known Cost) bool
}
