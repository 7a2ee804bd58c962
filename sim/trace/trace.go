package trace

// TraceLevel controls the verbosity of stop-by search tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelSearch captures every iteration of the pace-aware stop-by search.
	TraceLevelSearch TraceLevel = "search"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:   true,
	TraceLevelSearch: true,
	"":               true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// SearchTrace collects the records of one stop-by computation.
type SearchTrace struct {
	Level      TraceLevel
	Threshold  float64 // sober threshold the search compared against
	Target     float64 // hours from now the search projected to
	Shortcut   *ShortcutRecord
	Iterations []SearchRecord
}

// NewSearchTrace creates a SearchTrace ready for recording.
func NewSearchTrace(level TraceLevel) *SearchTrace {
	return &SearchTrace{
		Level:      level,
		Iterations: make([]SearchRecord, 0),
	}
}

// Enabled reports whether records should be collected. Safe on a nil trace.
func (st *SearchTrace) Enabled() bool {
	return st != nil && st.Level == TraceLevelSearch
}

// RecordIteration appends one bisection step.
func (st *SearchTrace) RecordIteration(record SearchRecord) {
	st.Iterations = append(st.Iterations, record)
}

// RecordShortcut marks that the search was skipped because the user is
// already over the threshold at the target.
func (st *SearchTrace) RecordShortcut(record ShortcutRecord) {
	st.Shortcut = &record
}
