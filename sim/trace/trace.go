package trace

import "sync"

// TraceLevel controls the verbosity of event tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelEvents captures every arrival attempt and help session.
	TraceLevelEvents TraceLevel = "events"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:   true,
	TraceLevelEvents: true,
	"":               true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// TraceConfig controls trace collection behavior.
type TraceConfig struct {
	Level TraceLevel
}

// Enabled reports whether records should be collected at all.
func (c TraceConfig) Enabled() bool {
	return c.Level == TraceLevelEvents
}

// SimulationTrace collects event records during a run. Students and the TA
// record from their own goroutines, so every method is safe for concurrent use.
// All methods are no-ops on a nil *SimulationTrace.
type SimulationTrace struct {
	Config TraceConfig

	mu       sync.Mutex
	arrivals []ArrivalRecord
	sessions []SessionRecord
}

// NewSimulationTrace creates a SimulationTrace ready for recording.
func NewSimulationTrace(config TraceConfig) *SimulationTrace {
	return &SimulationTrace{
		Config:   config,
		arrivals: make([]ArrivalRecord, 0),
		sessions: make([]SessionRecord, 0),
	}
}

// RecordArrival appends an arrival record.
func (st *SimulationTrace) RecordArrival(record ArrivalRecord) {
	if st == nil {
		return
	}
	st.mu.Lock()
	st.arrivals = append(st.arrivals, record)
	st.mu.Unlock()
}

// RecordSession appends a session record.
func (st *SimulationTrace) RecordSession(record SessionRecord) {
	if st == nil {
		return
	}
	st.mu.Lock()
	st.sessions = append(st.sessions, record)
	st.mu.Unlock()
}

// Arrivals returns a copy of the arrival records in recording order.
func (st *SimulationTrace) Arrivals() []ArrivalRecord {
	if st == nil {
		return nil
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	out := make([]ArrivalRecord, len(st.arrivals))
	copy(out, st.arrivals)
	return out
}

// Sessions returns a copy of the session records in recording order.
func (st *SimulationTrace) Sessions() []SessionRecord {
	if st == nil {
		return nil
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	out := make([]SessionRecord, len(st.sessions))
	copy(out, st.sessions)
	return out
}
