package router

import (
	"context"

	"github.com/encodeous/asabr/asabr"
	"github.com/encodeous/asabr/metrics"
	"github.com/encodeous/asabr/pathfinding"
)

// VolCgr is CGR with VolumeAware set: the routing loop is identical, but
// the real bundle (not a size/priority-dropped stand-in) flows into the
// Dijkstra search, so every relaxation's ContactManager.DryRun call enforces
// residual volume and priority budgets directly rather than leaving it to
// the post-search dry run alone. Grounded on original_source/src/routing/
// cgr.rs's route_unicast, whose "if we are not volume aware, we drop the
// constraints" comment marks exactly this size/priority zeroing as CGR's
// (not VolCGR's) behavior.
type VolCgr struct {
	*Cgr
}

func NewVolCgr(pf pathfinding.Pathfinding, storage RouteStorage) *VolCgr {
	c := NewCgr(pf, storage)
	c.VolumeAware = true
	return &VolCgr{Cgr: c}
}

// Route shadows Cgr.Route only to attribute its calls to the VolCgr
// counter instead of Cgr's; the routing logic itself is inherited.
func (v *VolCgr) Route(ctx context.Context, now asabr.Date, bundle *asabr.Bundle, excludedNodes []asabr.NodeID, commit bool) (RoutingOutput, error) {
	metrics.VolCgrCalls.Add(1)
	return v.Cgr.Route(ctx, now, bundle, excludedNodes, commit)
}
