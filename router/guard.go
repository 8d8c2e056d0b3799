package router

import "github.com/encodeous/asabr/asabr"

// Guard remembers, per (destination, priority-or-zero) pair, the smallest
// bundle size known to be unreachable (anything at least that large is
// treated as unreachable too), so Spsn can skip a doomed
// pathfinding attempt outright instead of re-discovering the same failure.
type Guard struct {
	withPriorities bool
	knownLimits    map[guardKey]asabr.Volume
}

type guardKey struct {
	node     asabr.NodeID
	priority asabr.Priority
}

func NewGuard(withPriorities bool) *Guard {
	return &Guard{withPriorities: withPriorities, knownLimits: make(map[guardKey]asabr.Volume)}
}

func (g *Guard) key(dest asabr.NodeID, bundle *asabr.Bundle) guardKey {
	if g.withPriorities {
		return guardKey{node: dest, priority: bundle.Priority}
	}
	return guardKey{node: dest, priority: 0}
}

// MustAbort reports whether every destination of bundle is already known to
// be unreachable at this size.
func (g *Guard) MustAbort(bundle *asabr.Bundle) bool {
	unreachable := 0
	for _, dest := range bundle.Destinations {
		if limit, ok := g.knownLimits[g.key(dest, bundle)]; ok && bundle.Size >= limit {
			unreachable++
		}
	}
	return unreachable == len(bundle.Destinations)
}

// AddLimit records that bundle (or anything at least as large) could not
// reach dest.
func (g *Guard) AddLimit(bundle *asabr.Bundle, dest asabr.NodeID) {
	k := g.key(dest, bundle)
	if val, ok := g.knownLimits[k]; ok && val <= bundle.Size {
		return
	}
	g.knownLimits[k] = bundle.Size
}
