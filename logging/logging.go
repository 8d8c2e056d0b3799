// Package logging sets up the structured logger shared across the router,
// pathfinding, and contact plan packages.
package logging

import (
	"log/slog"
	"os"

	"github.com/encodeous/tint"
)

// New builds a console logger at the given level, colorized and with a
// short time format, matching the console handler every long-running
// command in this module uses.
func New(level slog.Level) *slog.Logger {
	return slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		AddSource:  false,
		TimeFormat: "15:04:05",
	}))
}

// Routing event names, logged at Debug unless noted otherwise.
const (
	EventRouteFound      = "route_found"
	EventRouteInfeasible = "route_infeasible"
	EventOverbooked      = "route_overbooked"
	EventContactPruned   = "contact_pruned"
	EventCacheHit        = "cache_hit"
	EventCacheMiss       = "cache_miss"
)
