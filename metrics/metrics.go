// Package metrics exposes the routing counters and histograms tracked
// across the router mainframes, following the teacher's perf package.
package metrics

import (
	"expvar"
	"net/http"

	"github.com/encodeous/metric"
)

var (
	CgrCalls    = metric.NewCounter("10s1s")
	VolCgrCalls = metric.NewCounter("10s1s")
	SpsnCalls   = metric.NewCounter("10s1s")

	CacheHits   = metric.NewCounter("10s1s")
	CacheMisses = metric.NewCounter("10s1s")

	StorageEvictions = metric.NewCounter("10s1s")

	OverbookedRejections = metric.NewCounter("10s1s")

	// CommitFailures should never increment: it fires only when a commit
	// disagrees with the dry run that preceded it, i.e. an
	// asabrerr.InvariantViolation.
	CommitFailures = metric.NewCounter("10s1s")

	RouteLatency = metric.NewHistogram("1m1s")
)

func init() {
	http.Handle("/debug/metrics", metric.Handler(metric.Exposed))
	expvar.Publish("asabr:CgrCalls", CgrCalls)
	expvar.Publish("asabr:VolCgrCalls", VolCgrCalls)
	expvar.Publish("asabr:SpsnCalls", SpsnCalls)
	expvar.Publish("asabr:CacheHits", CacheHits)
	expvar.Publish("asabr:CacheMisses", CacheMisses)
	expvar.Publish("asabr:StorageEvictions", StorageEvictions)
	expvar.Publish("asabr:OverbookedRejections", OverbookedRejections)
	expvar.Publish("asabr:CommitFailures", CommitFailures)
	expvar.Publish("asabr:RouteLatency (µs)", RouteLatency)
}
