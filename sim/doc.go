// Package sim provides the synchronization core of the office-hours simulator:
// one TA serving many students through a hallway with a fixed number of chairs.
//
// # Reading Guide
//
// Start with these files:
//   - queue.go: WaitingRoom, the bounded circular FIFO of seated students
//   - signal.go: ArrivalSignal (wakes the TA) and CompletionSignal (releases one student)
//   - student.go: Student, Roster and the student loop
//   - ta.go: the TA loop
//   - shutdown.go: the coordinator that stops the run and wakes every blocked goroutine
//   - simulator.go: construction, launch, and join
//
// # Concurrency Model
//
// Every student and the TA run on their own goroutine. A student never blocks
// to get a chair: TryEnter fails fast when the room is full and the student
// goes back to programming. Once seated, the student posts the arrival signal
// and blocks on its own completion signal. The TA blocks on the arrival
// signal, takes the longest-seated student, runs a session without holding
// the room lock, sets that student's helped flag and posts its completion
// signal.
//
// The run ends when every helped flag is set (polled by the coordinator), when
// the caller's context is done, or when a goroutine cannot be started. In every
// case the coordinator clears the running flag and then posts the arrival
// signal once and every completion signal once, so no goroutine stays blocked.
//
// Event tracing lives in sim/trace.
package sim
