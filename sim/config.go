package sim

import (
	"fmt"
	"time"
)

// Policy selects what a student does after a help session.
type Policy string

const (
	// PolicyOneAndDone: a student leaves after its first help session.
	PolicyOneAndDone Policy = "one-and-done"
	// PolicyContinuous: a student goes back to programming and re-queues
	// until the simulation stops.
	PolicyContinuous Policy = "continuous"
)

// ValidPolicies is the set of recognized policy names.
// An empty string defaults to one-and-done.
var ValidPolicies = map[Policy]bool{"": true, PolicyOneAndDone: true, PolicyContinuous: true}

// IsValidPolicy reports whether name is a recognized policy.
func IsValidPolicy(name string) bool {
	return ValidPolicies[Policy(name)]
}

// MaxStudents is the largest student count a run can be sized for.
const MaxStudents = 1 << 16

// Defaults matching the classic sleeping-TA setup: three hallway chairs,
// programming and help sessions of 1..5 seconds, 100ms completion polling.
const (
	DefaultCapacity     = 3
	DefaultMaxWork      = 5
	DefaultTimeUnit     = time.Second
	DefaultPollInterval = 100 * time.Millisecond
	DefaultSeed         = 42
)

// SimConfig groups the knobs of a single office-hours run.
type SimConfig struct {
	Capacity     int           // hallway chairs (must be > 0)
	MaxWork      int           // work and session durations are uniform in [1, MaxWork] time units
	TimeUnit     time.Duration // length of one time unit (must be > 0)
	PollInterval time.Duration // completion polling interval of the coordinator (must be > 0)
	Policy       Policy        // one-and-done (default) or continuous
	Seed         int64         // master seed for work durations
	MaxThreads   int           // goroutine start budget for TA + students (0 = unlimited)
}

// DefaultSimConfig returns the configuration used when nothing is overridden.
func DefaultSimConfig() SimConfig {
	return SimConfig{
		Capacity:     DefaultCapacity,
		MaxWork:      DefaultMaxWork,
		TimeUnit:     DefaultTimeUnit,
		PollInterval: DefaultPollInterval,
		Policy:       PolicyOneAndDone,
		Seed:         DefaultSeed,
	}
}

// Validate checks field ranges. Errors wrap ErrConfiguration.
func (c SimConfig) Validate() error {
	if c.Capacity <= 0 {
		return fmt.Errorf("%w: capacity must be positive, got %d", ErrConfiguration, c.Capacity)
	}
	if c.MaxWork <= 0 {
		return fmt.Errorf("%w: max work must be positive, got %d", ErrConfiguration, c.MaxWork)
	}
	if c.TimeUnit <= 0 {
		return fmt.Errorf("%w: time unit must be positive, got %v", ErrConfiguration, c.TimeUnit)
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("%w: poll interval must be positive, got %v", ErrConfiguration, c.PollInterval)
	}
	if !ValidPolicies[c.Policy] {
		return fmt.Errorf("%w: unknown policy %q; valid: one-and-done, continuous", ErrConfiguration, c.Policy)
	}
	if c.MaxThreads < 0 {
		return fmt.Errorf("%w: max threads must be non-negative, got %d", ErrConfiguration, c.MaxThreads)
	}
	return nil
}

// continuous reports whether students re-queue after being helped.
func (c SimConfig) continuous() bool {
	return c.Policy == PolicyContinuous
}
