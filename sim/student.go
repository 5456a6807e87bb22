// Defines the Student that seeks help from the TA, the Roster that owns every
// student of a run, and the student goroutine's loop.

package sim

import (
	"context"
	"math/rand"
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

// Student is one requester. Its ID is stable for the run. The helped flag is
// written only by the TA goroutine and flips false->true at most once; every
// other goroutine sees it through Helped().
type Student struct {
	id     int
	helped atomic.Bool
	done   *CompletionSignal
	state  atomic.Value // StudentState, written by the student goroutine
}

func newStudent(id int) *Student {
	st := &Student{id: id, done: NewCompletionSignal()}
	st.state.Store(StudentWorking)
	return st
}

// ID returns the 1-based student identifier.
func (st *Student) ID() int { return st.id }

// Helped reports whether the TA has finished a session with this student.
func (st *Student) Helped() bool { return st.helped.Load() }

// State returns the student's last reported lifecycle state.
func (st *Student) State() StudentState { return st.state.Load().(StudentState) }

func (st *Student) setState(s StudentState) { st.state.Store(s) }

// markHelped sets the helped flag. Returns true only for the first call.
func (st *Student) markHelped() bool {
	return st.helped.CompareAndSwap(false, true)
}

// Roster maps student IDs 1..N to their Student. It is sized once and never
// grows, so lookups need no lock.
type Roster struct {
	students []*Student
}

// NewRoster creates n students with IDs 1..n.
func NewRoster(n int) *Roster {
	r := &Roster{students: make([]*Student, n)}
	for i := range r.students {
		r.students[i] = newStudent(i + 1)
	}
	return r
}

// Len returns the number of students.
func (r *Roster) Len() int { return len(r.students) }

// Lookup returns the student with the given ID, or nil if none exists.
func (r *Roster) Lookup(id int) *Student {
	if id < 1 || id > len(r.students) {
		return nil
	}
	return r.students[id-1]
}

// Students returns the students in ID order. The returned slice is the
// roster's storage; callers MUST NOT modify it.
func (r *Roster) Students() []*Student {
	return r.students
}

// AllHelped reports whether every student's helped flag is set.
// An empty roster is trivially all helped.
func (r *Roster) AllHelped() bool {
	for _, st := range r.students {
		if !st.Helped() {
			return false
		}
	}
	return true
}

// Snapshot returns the helped flags in ID order.
func (r *Roster) Snapshot() []bool {
	out := make([]bool, len(r.students))
	for i, st := range r.students {
		out[i] = st.Helped()
	}
	return out
}

// runStudent is the requester loop: program, try for a chair, and either go
// back to programming (room full) or wait for the TA.
func (s *Simulator) runStudent(st *Student, rng *rand.Rand) {
	defer st.setState(StudentDone)
	logrus.Infof("Student %d is on the way to TA office", st.id)

	for s.running.Load() {
		st.setState(StudentWorking)
		s.work.SimulateWork(s.workCtx, rng)
		if !s.running.Load() {
			return
		}

		st.setState(StudentArriving)
		seated, occupied := s.enter(st.id)
		s.recordArrival(st.id, seated, occupied)
		if !seated {
			st.setState(StudentRejected)
			logrus.Infof("Student %d arrived but all waiting chairs are full. Resuming programming and will return later.", st.id)
			continue
		}

		st.setState(StudentSeated)
		logrus.Infof("Student %d is waiting seated at hallway", st.id)
		s.logChairs()
		s.arrivals.Post()

		// Once running is false the TA may already have stopped, so there is
		// no poster left for this signal unless the shutdown pass already ran.
		if !s.running.Load() {
			return
		}
		st.setState(StudentAwaitingService)
		_ = st.done.Wait(context.Background())
		st.setState(StudentServed)
		if !st.Helped() {
			logrus.Infof("Student %d released at shutdown while still seated", st.id)
		}

		if !s.cfg.continuous() {
			return
		}
	}
}
