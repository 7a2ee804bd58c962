package trace

import "math"

// SearchSummary aggregates statistics from a SearchTrace.
type SearchSummary struct {
	TotalIterations int
	AcceptedCount   int
	RejectedCount   int
	Shortcut        bool
	FinalCandidate  float64 // last accepted candidate (0 if none)
	FinalBracket    float64 // width of the bracket after the last step
	MaxProjectedBAC float64
}

// Summarize computes aggregate statistics from a SearchTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SearchTrace) *SearchSummary {
	summary := &SearchSummary{}
	if st == nil {
		return summary
	}
	summary.Shortcut = st.Shortcut != nil
	summary.TotalIterations = len(st.Iterations)

	for _, r := range st.Iterations {
		if r.Accepted {
			summary.AcceptedCount++
			summary.FinalCandidate = r.Candidate
		} else {
			summary.RejectedCount++
		}
		summary.MaxProjectedBAC = math.Max(summary.MaxProjectedBAC, r.ProjectedBAC)
	}

	if n := len(st.Iterations); n > 0 {
		last := st.Iterations[n-1]
		if last.Accepted {
			summary.FinalBracket = last.Hi - last.Candidate
		} else {
			summary.FinalBracket = last.Candidate - last.Lo
		}
	}
	return summary
}
