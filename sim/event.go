package sim

// StudentState is the lifecycle state of a student goroutine.
//
//	Working -> Arriving -> Rejected -> Working
//	                    -> Seated -> AwaitingService -> Served -> Done (one-and-done)
//	                                                          -> Working (continuous)
type StudentState string

const (
	StudentWorking         StudentState = "working"
	StudentArriving        StudentState = "arriving"
	StudentRejected        StudentState = "rejected"
	StudentSeated          StudentState = "seated"
	StudentAwaitingService StudentState = "awaiting-service"
	StudentServed          StudentState = "served"
	StudentDone            StudentState = "done"
)

// ProviderState is the lifecycle state of the TA goroutine.
//
//	Idle -> Woken -> Empty   -> Idle
//	              -> Serving -> Idle
//	Stopped is terminal.
type ProviderState string

const (
	ProviderIdle    ProviderState = "idle"
	ProviderWoken   ProviderState = "woken"
	ProviderEmpty   ProviderState = "empty"
	ProviderServing ProviderState = "serving"
	ProviderStopped ProviderState = "stopped"
)

// Phase is the simulation-wide running state. The running/stopping split is
// carried by a single atomic flag; Stopped is reached once every goroutine
// has been joined.
type Phase string

const (
	PhaseRunning  Phase = "running"
	PhaseStopping Phase = "stopping"
	PhaseStopped  Phase = "stopped"
)
