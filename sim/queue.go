// Implements the WaitingRoom, the hallway chairs where seated students wait
// for the TA. Students that find every chair taken go back to programming.

package sim

import (
	"fmt"
	"strings"
	"sync"
)

// Room is the pair of operations the TA and students need from the hallway.
// WaitingRoom is the only production implementation; tests substitute doubles
// to control interleavings.
type Room interface {
	// TryEnter seats id and reports true, or reports false if every chair is
	// taken. It never blocks waiting for a chair.
	TryEnter(id int) bool
	// ServeNext removes and returns the longest-seated id, or (0, false)
	// if the room is empty.
	ServeNext() (int, bool)
}

// WaitingRoom is a fixed-capacity circular FIFO of student IDs.
// All state is guarded by mu, which is only held for O(1) slot updates.
type WaitingRoom struct {
	mu       sync.Mutex
	seats    []int // student ID per chair, 0 = empty
	next     int   // chair the next arrival sits in
	head     int   // chair the TA serves next
	occupied int
}

// NewWaitingRoom creates a room with capacity chairs. Panics if capacity < 1.
func NewWaitingRoom(capacity int) *WaitingRoom {
	if capacity < 1 {
		panic(fmt.Sprintf("NewWaitingRoom: capacity must be positive, got %d", capacity))
	}
	return &WaitingRoom{seats: make([]int, capacity)}
}

// TryEnter seats id in the next free chair. Returns false without touching
// any state when the room is full; a rejected student keeps no place in line.
func (wr *WaitingRoom) TryEnter(id int) bool {
	seated, _ := wr.Enter(id)
	return seated
}

// Enter is TryEnter that also reports the chairs taken right after the
// attempt, read under the same lock.
func (wr *WaitingRoom) Enter(id int) (seated bool, occupied int) {
	wr.mu.Lock()
	defer wr.mu.Unlock()
	if wr.occupied == len(wr.seats) {
		return false, wr.occupied
	}
	wr.seats[wr.next] = id
	wr.next = (wr.next + 1) % len(wr.seats)
	wr.occupied++
	return true, wr.occupied
}

// ServeNext removes the student seated longest and frees its chair.
func (wr *WaitingRoom) ServeNext() (int, bool) {
	wr.mu.Lock()
	defer wr.mu.Unlock()
	if wr.occupied == 0 {
		return 0, false
	}
	id := wr.seats[wr.head]
	wr.seats[wr.head] = 0
	wr.head = (wr.head + 1) % len(wr.seats)
	wr.occupied--
	return id, true
}

// Occupied returns the number of taken chairs.
func (wr *WaitingRoom) Occupied() int {
	wr.mu.Lock()
	defer wr.mu.Unlock()
	return wr.occupied
}

// Capacity returns the number of chairs.
func (wr *WaitingRoom) Capacity() int {
	return len(wr.seats)
}

// Seats returns a copy of the chairs in chair order (not service order).
func (wr *WaitingRoom) Seats() []int {
	wr.mu.Lock()
	defer wr.mu.Unlock()
	out := make([]int, len(wr.seats))
	copy(out, wr.seats)
	return out
}

// String renders the chairs the way the hallway log line prints them,
// e.g. "[1] 4 [2] 0 [3] 7".
func (wr *WaitingRoom) String() string {
	seats := wr.Seats()
	var sb strings.Builder
	for i, id := range seats {
		if i > 0 {
			sb.WriteString(" ")
		}
		fmt.Fprintf(&sb, "[%d] %d", i+1, id)
	}
	return sb.String()
}
