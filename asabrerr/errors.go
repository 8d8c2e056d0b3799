// Package asabrerr enumerates the error taxonomy used across the router:
// expected, user-level routing outcomes (Infeasible, Expired, Overbooked,
// QueueFull), input errors (ParseError), and a fatal bug class
// (InvariantViolation) that is never recovered from.
package asabrerr

import "errors"

var (
	// ParseError marks a malformed contact plan: unknown marker, out of
	// range NodeID, or missing required tokens.
	ParseError = errors.New("parse error")

	// Infeasible means pathfinding found no route under the current
	// constraints. Expected and local to one routing call.
	Infeasible = errors.New("infeasible")

	// Expired means the bundle's expiration precedes any feasible arrival.
	Expired = errors.New("expired")

	// Overbooked means a priority budget is exhausted at the bundle's
	// priority level.
	Overbooked = errors.New("overbooked")

	// QueueFull is returned by ETO-style managers enforcing a queue bound;
	// the caller may retry later.
	QueueFull = errors.New("queue full")

	// InvariantViolation marks a manager or multigraph state inconsistency:
	// a bug, never recovered. Callers that observe this should treat the
	// router instance as poisoned.
	InvariantViolation = errors.New("invariant violation")
)
