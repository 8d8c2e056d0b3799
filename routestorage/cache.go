package routestorage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jellydator/ttlcache/v3"

	"github.com/encodeous/asabr/asabr"
	"github.com/encodeous/asabr/metrics"
	"github.com/encodeous/asabr/pathfinding"
)

type cacheEntry struct {
	bundle asabr.Bundle
	tree   *pathfinding.PathFindingOutput
}

// TreeCache caches whole shortest-path trees keyed by their exclusion set.
// A cached tree is reusable for a new bundle iff the new bundle's size and
// priority are no greater than the one that produced it (Bundle.Shadows);
// ttlcache's LRU-with-capacity eviction stands in for the teacher's FIFO
// deque once max_entries is exceeded.
type TreeCache struct {
	CheckSize     bool
	CheckPriority bool
	cache         *ttlcache.Cache[string, cacheEntry]
}

func NewTreeCache(checkSize, checkPriority bool, maxEntries int, ttl time.Duration) *TreeCache {
	cache := ttlcache.New[string, cacheEntry](
		ttlcache.WithTTL[string, cacheEntry](ttl),
		ttlcache.WithCapacity[string, cacheEntry](uint64(maxEntries)),
	)
	cache.OnEviction(func(_ context.Context, reason ttlcache.EvictionReason, _ *ttlcache.Item[string, cacheEntry]) {
		if reason == ttlcache.EvictionReasonCapacityReached {
			metrics.StorageEvictions.Add(1)
		}
	})
	go cache.Start()
	return &TreeCache{CheckSize: checkSize, CheckPriority: checkPriority, cache: cache}
}

func exclusionKey(excludedNodes []asabr.NodeID) string {
	var b strings.Builder
	for i, n := range excludedNodes {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "%d", n)
	}
	return b.String()
}

func (c *TreeCache) Select(bundle *asabr.Bundle, currTime asabr.Date, excludedNodes []asabr.NodeID) (*pathfinding.PathFindingOutput, bool) {
	item := c.cache.Get(exclusionKey(excludedNodes))
	if item == nil {
		return nil, false
	}
	entry := item.Value()
	if bundle.Shadows(entry.bundle, c.CheckSize, c.CheckPriority) {
		return nil, false
	}
	return entry.tree, true
}

func (c *TreeCache) Store(bundle *asabr.Bundle, tree *pathfinding.PathFindingOutput) {
	key := exclusionKey(tree.ExcludedNodes)
	c.cache.Set(key, cacheEntry{bundle: *bundle, tree: tree}, ttlcache.DefaultTTL)
}

func (c *TreeCache) Stop() {
	c.cache.Stop()
}
