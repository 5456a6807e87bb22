// Package trace provides event recording for office-hours runs.
// This package has no dependencies on sim/ — it stores pure data types.
package trace

import "time"

// ArrivalRecord captures one arrival attempt at the hallway.
type ArrivalRecord struct {
	StudentID int
	At        time.Duration // offset from the start of the run
	Seated    bool          // false = every chair was taken
	Occupied  int           // chairs taken right after the attempt, read atomically with it
}

// SessionRecord captures one completed help session.
type SessionRecord struct {
	StudentID int
	Start     time.Duration
	End       time.Duration
}

// Duration returns how long the session lasted.
func (r SessionRecord) Duration() time.Duration {
	return r.End - r.Start
}
