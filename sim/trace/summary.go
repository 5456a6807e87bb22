package trace

import (
	"fmt"
	"io"
	"sort"
	"time"
)

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalArrivals     int
	SeatedCount       int
	RejectedCount     int
	MaxOccupied       int
	TotalSessions     int
	MeanSession       time.Duration
	SessionsByStudent map[int]int // student ID → completed sessions
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		SessionsByStudent: make(map[int]int),
	}
	if st == nil {
		return summary
	}

	arrivals := st.Arrivals()
	summary.TotalArrivals = len(arrivals)
	for _, a := range arrivals {
		if a.Seated {
			summary.SeatedCount++
		} else {
			summary.RejectedCount++
		}
		if a.Occupied > summary.MaxOccupied {
			summary.MaxOccupied = a.Occupied
		}
	}

	sessions := st.Sessions()
	summary.TotalSessions = len(sessions)
	if len(sessions) > 0 {
		var total time.Duration
		for _, s := range sessions {
			summary.SessionsByStudent[s.StudentID]++
			total += s.Duration()
		}
		summary.MeanSession = total / time.Duration(len(sessions))
	}

	return summary
}

// Print writes the summary in the same block style as the help summary.
func (s *TraceSummary) Print(w io.Writer) {
	fmt.Fprintln(w, "=== Trace Summary ===")
	fmt.Fprintf(w, "Arrival Attempts     : %d\n", s.TotalArrivals)
	fmt.Fprintf(w, "Seated               : %d\n", s.SeatedCount)
	fmt.Fprintf(w, "Rejected (room full) : %d\n", s.RejectedCount)
	fmt.Fprintf(w, "Peak Occupancy       : %d chairs\n", s.MaxOccupied)
	fmt.Fprintf(w, "Help Sessions        : %d\n", s.TotalSessions)
	if s.TotalSessions > 0 {
		fmt.Fprintf(w, "Mean Session         : %v\n", s.MeanSession)
	}
	ids := make([]int, 0, len(s.SessionsByStudent))
	for id := range s.SessionsByStudent {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		fmt.Fprintf(w, "  Student %d sessions: %d\n", id, s.SessionsByStudent[id])
	}
}
