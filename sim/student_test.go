package sim

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inference-sim/tasim/sim/internal/testutil"
	"github.com/inference-sim/tasim/sim/trace"
)

// scriptedRoom answers TryEnter from a script (false = room full) and seats
// the student once the script is exhausted. Seated students are served FIFO.
// alwaysFull turns every attempt into a rejection.
type scriptedRoom struct {
	mu         sync.Mutex
	script     []bool
	alwaysFull bool
	hidden     bool // ServeNext never sees seated students
	queue      []int
	attempts   int
	onEnter    func(id int) // runs on the student goroutine after the seat is taken
}

func (r *scriptedRoom) TryEnter(id int) bool {
	r.mu.Lock()
	r.attempts++
	seat := !r.alwaysFull
	if len(r.script) > 0 {
		seat = r.script[0]
		r.script = r.script[1:]
	}
	if seat {
		r.queue = append(r.queue, id)
	}
	hook := r.onEnter
	r.mu.Unlock()

	if seat && hook != nil {
		hook(id)
	}
	return seat
}

func (r *scriptedRoom) ServeNext() (int, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.hidden || len(r.queue) == 0 {
		return 0, false
	}
	id := r.queue[0]
	r.queue = r.queue[1:]
	return id, true
}

func (r *scriptedRoom) Attempts() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.attempts
}

func TestNewRoster_AssignsOneBasedIDs(t *testing.T) {
	r := NewRoster(3)

	require.Equal(t, 3, r.Len())
	for i, st := range r.Students() {
		assert.Equal(t, i+1, st.ID())
		assert.False(t, st.Helped())
		assert.Equal(t, StudentWorking, st.State())
	}
	assert.Nil(t, r.Lookup(0))
	assert.Nil(t, r.Lookup(4))
	assert.Same(t, r.Students()[1], r.Lookup(2))
}

func TestRoster_AllHelped_TracksEveryFlag(t *testing.T) {
	r := NewRoster(2)
	assert.False(t, r.AllHelped())

	r.Lookup(1).markHelped()
	assert.False(t, r.AllHelped())
	assert.Equal(t, []bool{true, false}, r.Snapshot())

	r.Lookup(2).markHelped()
	assert.True(t, r.AllHelped())
}

func TestRoster_Empty_IsAllHelped(t *testing.T) {
	assert.True(t, NewRoster(0).AllHelped())
}

func TestStudent_MarkHelped_FlipsOnce(t *testing.T) {
	st := newStudent(1)

	assert.True(t, st.markHelped())
	assert.False(t, st.markHelped())
	assert.True(t, st.Helped())
}

func TestStudentLoop_RejectedArrival_RetriesWithoutBlocking(t *testing.T) {
	// GIVEN a room that turns the student away twice before seating them
	room := &scriptedRoom{script: []bool{false, false}}
	work := &testutil.FixedWork{}
	st := trace.NewSimulationTrace(trace.TraceConfig{Level: trace.TraceLevelEvents})
	s, err := NewSimulator(fastConfig(), 1, WithRoom(room), WithWork(work), WithTrace(st))
	require.NoError(t, err)

	// WHEN the run completes
	var summary *Summary
	testutil.RunWithTimeout(t, 5*time.Second, func() {
		summary, err = s.Run(context.Background())
	})

	// THEN the student programmed before each of its three attempts and was helped once
	require.NoError(t, err)
	assert.True(t, summary.AllHelped())
	assert.Equal(t, 3, room.Attempts())
	assert.Equal(t, int64(4), work.Calls(), "3 programming stretches + 1 help session")
	ts := trace.Summarize(st)
	assert.Equal(t, 2, ts.RejectedCount)
	assert.Equal(t, 1, ts.SeatedCount)
}

func TestStudentLoop_RoomAlwaysFull_NeverWaitsForService(t *testing.T) {
	// GIVEN a room that never has a free chair
	room := &scriptedRoom{alwaysFull: true}
	s, err := NewSimulator(fastConfig(), 2, WithRoom(room), WithWork(&testutil.FixedWork{D: time.Millisecond}))
	require.NoError(t, err)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	// WHEN the run is cut short by the context
	var summary *Summary
	testutil.RunWithTimeout(t, 5*time.Second, func() {
		summary, err = s.Run(ctx)
	})

	// THEN students kept retrying, nobody was helped, and everyone stopped
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Greater(t, room.Attempts(), 2)
	assert.Equal(t, []int{1, 2}, summary.NotHelpedIDs())
	for _, stu := range s.Roster().Students() {
		assert.Equal(t, StudentDone, stu.State())
	}
	assert.Equal(t, ProviderStopped, s.TAState())
}

func TestStudentLoop_SeatedAfterShutdown_DoesNotBlock(t *testing.T) {
	// GIVEN a room that starts the shutdown while the student is sitting down
	room := &scriptedRoom{}
	s, err := NewSimulator(fastConfig(), 1, WithRoom(room), WithWork(&testutil.FixedWork{}))
	require.NoError(t, err)
	room.onEnter = func(int) { s.coord.shutdown("closing while a student sits down") }

	// WHEN the run completes
	testutil.RunWithTimeout(t, 5*time.Second, func() {
		_, err = s.Run(context.Background())
	})

	// THEN the student left without consuming its completion signal,
	// and the TA still served the seated student before stopping
	require.NoError(t, err)
	stu := s.Roster().Lookup(1)
	assert.Equal(t, StudentDone, stu.State())
	assert.True(t, stu.done.IsSet(), "student must not have waited on its signal")
	assert.True(t, stu.Helped())
	assert.Equal(t, ProviderStopped, s.TAState())
}

func TestStudentLoop_ReleasedUnhelpedAtShutdown_LogsSeatedRelease(t *testing.T) {
	// GIVEN a student seated where the TA never finds them, and info logging captured
	defer logrus.SetLevel(logrus.GetLevel())
	logrus.SetLevel(logrus.InfoLevel)
	hook := logtest.NewGlobal()
	defer logrus.StandardLogger().ReplaceHooks(make(logrus.LevelHooks))

	room := &scriptedRoom{hidden: true}
	s, err := NewSimulator(fastConfig(), 1, WithRoom(room), WithWork(&testutil.FixedWork{}))
	require.NoError(t, err)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	// WHEN the run is cut short while the student waits
	var summary *Summary
	testutil.RunWithTimeout(t, 5*time.Second, func() {
		summary, err = s.Run(ctx)
	})

	// THEN the student is released by the shutdown pass and says so plainly
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	require.NotNil(t, summary)
	assert.Equal(t, []int{1}, summary.NotHelpedIDs())
	var messages []string
	for _, e := range hook.AllEntries() {
		messages = append(messages, e.Message)
	}
	assert.Contains(t, messages, "Student 1 released at shutdown while still seated")
}
