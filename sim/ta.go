package sim

import (
	"context"
	"math/rand"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/tasim/sim/trace"
)

// runTA is the provider loop. It sleeps on the arrival signal, serves at most
// one student per wake, and stops only when a wake finds the room empty after
// shutdown has begun, so students still seated at shutdown are served first.
func (s *Simulator) runTA(rng *rand.Rand) {
	defer s.setTAState(ProviderStopped)

	for {
		s.setTAState(ProviderIdle)
		_ = s.arrivals.Wait(context.Background())
		s.setTAState(ProviderWoken)

		id, ok := s.room.ServeNext()
		if !ok {
			s.setTAState(ProviderEmpty)
			if !s.running.Load() {
				if s.roster.AllHelped() {
					logrus.Info("All students have been helped. TA is going back to sleep.")
				} else {
					logrus.Warn("TA is leaving before every student was helped.")
				}
				return
			}
			continue
		}

		s.setTAState(ProviderServing)
		s.help(id, rng)
	}
}

// help runs one session with student id and releases that student. The room
// lock is not held here; the session is not cut short by shutdown.
func (s *Simulator) help(id int, rng *rand.Rand) {
	logrus.Infof("TA is helping Student %d", id)
	s.logChairs()

	start := s.since()
	s.work.SimulateWork(context.Background(), rng)
	s.trace.RecordSession(trace.SessionRecord{StudentID: id, Start: start, End: s.since()})
	logrus.Infof("Session finished with Student %d.", id)

	st := s.roster.Lookup(id)
	if st == nil {
		logrus.Warnf("TA served unknown student %d; no one to release", id)
		return
	}
	st.markHelped()
	st.done.Post()
}

// TAState returns the TA's last reported lifecycle state.
func (s *Simulator) TAState() ProviderState {
	return s.taState.Load().(ProviderState)
}

func (s *Simulator) setTAState(state ProviderState) {
	s.taState.Store(state)
}
