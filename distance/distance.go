// Package distance provides the pluggable cost strategies used by the
// Dijkstra variants: Hop (fewest hops) and SABR (earliest arrival).
package distance

// compareFloat is the shared three-way comparator for cost tuples below.
func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
