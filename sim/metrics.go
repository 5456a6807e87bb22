// Reports the outcome of a run: which students got help.

package sim

import (
	"fmt"
	"io"
	"time"
)

// Outcome is one student's line in the help summary.
type Outcome struct {
	StudentID int
	Helped    bool
}

// Label returns "Helped" or "Not Helped".
func (o Outcome) Label() string {
	if o.Helped {
		return "Helped"
	}
	return "Not Helped"
}

// Summary is the helped-flag snapshot taken after every goroutine was joined.
type Summary struct {
	Policy   Policy
	Elapsed  time.Duration // wall clock from Run start to the snapshot
	Outcomes []Outcome     // in student ID order
}

// HelpedIDs returns the IDs of helped students in ascending order.
func (s *Summary) HelpedIDs() []int {
	return s.filter(true)
}

// NotHelpedIDs returns the IDs of students that were not helped.
func (s *Summary) NotHelpedIDs() []int {
	return s.filter(false)
}

// AllHelped reports whether every student was helped.
func (s *Summary) AllHelped() bool {
	return len(s.NotHelpedIDs()) == 0
}

func (s *Summary) filter(helped bool) []int {
	ids := make([]int, 0, len(s.Outcomes))
	for _, o := range s.Outcomes {
		if o.Helped == helped {
			ids = append(ids, o.StudentID)
		}
	}
	return ids
}

// Print writes the per-student help summary.
func (s *Summary) Print(w io.Writer) {
	fmt.Fprintln(w, "Help Summary:")
	for _, o := range s.Outcomes {
		fmt.Fprintf(w, "Student %d: %s\n", o.StudentID, o.Label())
	}
	fmt.Fprintf(w, "Helped %d of %d students in %v\n", len(s.HelpedIDs()), len(s.Outcomes), s.Elapsed.Round(time.Millisecond))
}
