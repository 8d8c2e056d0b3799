// Package asabr holds the core schedule-aware bundle routing domain: node and
// contact descriptions, the bundle record, the time-varying multigraph, and
// the route-stage chains produced by pathfinding.
package asabr

// NodeID indexes into the node list; it is always dense over [0, node_count).
type NodeID uint16

// Date is an abstract monotonic point in time. The router never reads a wall
// clock: every Date value is supplied by the caller.
type Date = float64

// Duration is an abstract span of time, arithmetically interchangeable with Date.
type Duration = float64

// Priority is a small non-negative bundle priority level.
type Priority uint8

// Volume is a real-valued quantity of bytes (or bits, consistently with DataRate).
type Volume = float64

// DataRate is volume per unit duration.
type DataRate = float64

// HopCount counts contacts traversed by a route.
type HopCount = uint16

// MaxDate is used to mean "never expires".
const MaxDate Date = 1<<63 - 1
