// sim/simulator.go
package sim

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/inference-sim/tasim/sim/trace"
)

// Simulator runs one office-hours session: a TA goroutine, one goroutine per
// student, and the shutdown coordinator on the goroutine that calls Run.
// A Simulator runs at most once.
type Simulator struct {
	cfg      SimConfig
	room     Room
	arrivals *ArrivalSignal
	roster   *Roster
	work     WorkSimulator
	trace    *trace.SimulationTrace

	// per-goroutine RNGs, created up front because PartitionedRNG is not thread-safe
	taRNG       *rand.Rand
	studentRNGs []*rand.Rand

	running  atomic.Bool
	stopped  atomic.Bool
	started  atomic.Bool
	taState  atomic.Value // ProviderState
	workCtx  context.Context
	stopWork context.CancelFunc
	coord    *shutdownCoordinator
	start    time.Time
}

// Option customizes a Simulator at construction.
type Option func(*Simulator)

// WithRoom replaces the WaitingRoom. The room must never hold more than
// cfg.Capacity students, since the arrival signal is sized from it.
func WithRoom(r Room) Option {
	return func(s *Simulator) { s.room = r }
}

// WithWork replaces the random sleep used for programming and help sessions.
func WithWork(w WorkSimulator) Option {
	return func(s *Simulator) { s.work = w }
}

// WithTrace records arrival and session events into st.
func WithTrace(st *trace.SimulationTrace) Option {
	return func(s *Simulator) { s.trace = st }
}

// NewSimulator sizes a run for numStudents students.
// Returns an error wrapping ErrConfiguration for a bad count or config, and
// ErrResourceExhaustion when numStudents exceeds MaxStudents.
func NewSimulator(cfg SimConfig, numStudents int, opts ...Option) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if numStudents < 0 {
		return nil, fmt.Errorf("%w: student count must be non-negative, got %d", ErrConfiguration, numStudents)
	}
	if numStudents > MaxStudents {
		return nil, fmt.Errorf("%w: cannot allocate %d students (limit %d)", ErrResourceExhaustion, numStudents, MaxStudents)
	}

	s := &Simulator{
		cfg:      cfg,
		room:     NewWaitingRoom(cfg.Capacity),
		arrivals: NewArrivalSignal(int64(cfg.Capacity) + 1),
		roster:   NewRoster(numStudents),
		work:     NewRandomWork(cfg),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.room == nil || s.work == nil {
		panic("NewSimulator: room and work must not be nil")
	}

	rng := NewPartitionedRNG(NewSimulationKey(cfg.Seed))
	s.taRNG = rng.ForSubsystem(SubsystemTA)
	s.studentRNGs = make([]*rand.Rand, numStudents)
	for i := range s.studentRNGs {
		s.studentRNGs[i] = rng.ForSubsystem(SubsystemStudent(i + 1))
	}

	s.running.Store(true)
	s.taState.Store(ProviderIdle)
	s.workCtx, s.stopWork = context.WithCancel(context.Background())
	s.coord = &shutdownCoordinator{
		running:  &s.running,
		arrivals: s.arrivals,
		roster:   s.roster,
		stopWork: s.stopWork,
		interval: cfg.PollInterval,
	}
	return s, nil
}

// Run starts the TA and every student, waits until all students have been
// helped (or ctx is done, or a goroutine fails to start), wakes every blocked
// goroutine and joins them. The returned Summary reflects the helped flags
// after the join and is non-nil even when an error is returned.
func (s *Simulator) Run(ctx context.Context) (*Summary, error) {
	if !s.started.CompareAndSwap(false, true) {
		return nil, errors.New("simulator: Run called more than once")
	}
	defer s.stopWork()
	s.start = time.Now()

	if s.roster.Len() == 0 {
		logrus.Info("TA is sleeping. There are no students to help.")
		s.running.Store(false)
		s.stopped.Store(true)
		return s.summarize(), nil
	}

	var g errgroup.Group
	if s.cfg.MaxThreads > 0 {
		g.SetLimit(s.cfg.MaxThreads)
	}

	var runErr error
	if !g.TryGo(func() error { s.runTA(s.taRNG); return nil }) {
		runErr = fmt.Errorf("%w: TA", ErrThreadStart)
	}
	for i, st := range s.roster.Students() {
		if runErr != nil {
			break
		}
		rng := s.studentRNGs[i]
		if !g.TryGo(func() error { s.runStudent(st, rng); return nil }) {
			runErr = fmt.Errorf("%w: student %d of %d", ErrThreadStart, st.id, s.roster.Len())
		}
	}

	if runErr != nil {
		logrus.Errorf("%v", runErr)
		s.coord.shutdown("a goroutine failed to start")
	} else if err := s.coord.awaitHelped(ctx); err != nil {
		runErr = err
		s.coord.shutdown(fmt.Sprintf("interrupted (%v)", err))
	} else {
		s.coord.shutdown("every student has been helped")
	}

	_ = g.Wait()
	s.stopped.Store(true)
	return s.summarize(), runErr
}

// Phase reports whether the run is still going, winding down, or finished.
func (s *Simulator) Phase() Phase {
	switch {
	case s.stopped.Load():
		return PhaseStopped
	case s.running.Load():
		return PhaseRunning
	default:
		return PhaseStopping
	}
}

// Roster returns the run's students.
func (s *Simulator) Roster() *Roster { return s.roster }

// Trace returns the event trace, or nil if tracing is off.
func (s *Simulator) Trace() *trace.SimulationTrace { return s.trace }

func (s *Simulator) since() time.Duration {
	return time.Since(s.start)
}

// enter tries to seat id. Occupancy is only known for a *WaitingRoom; other
// rooms report 0.
func (s *Simulator) enter(id int) (seated bool, occupied int) {
	if wr, ok := s.room.(*WaitingRoom); ok {
		return wr.Enter(id)
	}
	return s.room.TryEnter(id), 0
}

func (s *Simulator) recordArrival(id int, seated bool, occupied int) {
	if s.trace == nil {
		return
	}
	s.trace.RecordArrival(trace.ArrivalRecord{StudentID: id, At: s.since(), Seated: seated, Occupied: occupied})
}

// logChairs prints the hallway at debug level. Rendering takes the room lock
// separately, so it may already reflect later arrivals.
func (s *Simulator) logChairs() {
	if !logrus.IsLevelEnabled(logrus.DebugLevel) {
		return
	}
	if r, ok := s.room.(fmt.Stringer); ok {
		logrus.Debugf("Student(s) waiting in the chairs : %s", r)
	}
}

func (s *Simulator) summarize() *Summary {
	helped := s.roster.Snapshot()
	out := &Summary{
		Policy:   s.cfg.Policy,
		Elapsed:  s.since(),
		Outcomes: make([]Outcome, len(helped)),
	}
	for i, h := range helped {
		out.Outcomes[i] = Outcome{StudentID: i + 1, Helped: h}
	}
	return out
}
