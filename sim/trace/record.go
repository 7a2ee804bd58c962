// Package trace provides recording of the pace-aware stop-by search.
// It imports sim/ for curve export and must not import sim/planner/.
package trace

// SearchRecord captures a single bisection step of the stop-by search.
type SearchRecord struct {
	Iteration     int
	Lo            float64 // bracket before the step
	Hi            float64
	Candidate     float64 // "keep drinking until" hour that was evaluated
	ProjectedDose float64 // grams projected between now and Candidate
	ProjectedBAC  float64 // BAC at the target under that projection
	Accepted      bool    // ProjectedBAC <= threshold
}

// ShortcutRecord captures the early exit taken when BAC at the target is
// already above the threshold with no further drinking.
type ShortcutRecord struct {
	ProjectedBAC float64
	ExcessBAC    float64
	StopBy       float64
}
