package sim

import "errors"

// Error taxonomy for a simulation run. Callers match with errors.Is; the
// returned errors wrap one of these with the offending value.
var (
	// ErrConfiguration reports an invalid student count or simulation option.
	// No goroutines have been started when it is returned.
	ErrConfiguration = errors.New("invalid configuration")

	// ErrResourceExhaustion reports that the run could not be sized, e.g. the
	// student count exceeds MaxStudents. No goroutines have been started.
	ErrResourceExhaustion = errors.New("resource exhaustion")

	// ErrThreadStart reports that the TA or a student goroutine could not be
	// launched. Goroutines that did start have been woken and joined.
	ErrThreadStart = errors.New("failed to start goroutine")
)
