package sim

import (
	"context"
	"fmt"
	"hash/fnv"
	"math/rand"
	"time"
)

// === SimulationKey ===

// SimulationKey identifies the random stream of a run. Two runs with the same
// key draw the same sequence of durations per goroutine; goroutine
// interleaving is still up to the Go scheduler.
type SimulationKey int64

// NewSimulationKey creates a SimulationKey from a seed value.
func NewSimulationKey(seed int64) SimulationKey {
	return SimulationKey(seed)
}

// === Subsystem Constants ===

// SubsystemTA is the RNG subsystem for help session durations.
const SubsystemTA = "ta"

// SubsystemStudent returns the subsystem name for student id.
func SubsystemStudent(id int) string {
	return fmt.Sprintf("student_%d", id)
}

// === PartitionedRNG ===

// PartitionedRNG provides deterministic, isolated RNG instances per subsystem.
// Each subsystem seed is masterSeed XOR fnv1a64(subsystemName).
//
// Thread-safety: NOT thread-safe. Create every subsystem on the driver
// goroutine before handing the *rand.Rand to the goroutine that owns it.
type PartitionedRNG struct {
	key        SimulationKey
	subsystems map[string]*rand.Rand
}

// NewPartitionedRNG creates a PartitionedRNG from a SimulationKey.
func NewPartitionedRNG(key SimulationKey) *PartitionedRNG {
	return &PartitionedRNG{
		key:        key,
		subsystems: make(map[string]*rand.Rand),
	}
}

// ForSubsystem returns a deterministically-seeded RNG for the named subsystem.
// The same subsystem name always returns the same *rand.Rand instance (cached).
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	if rng, ok := p.subsystems[name]; ok {
		return rng
	}
	rng := rand.New(rand.NewSource(int64(p.key) ^ fnv1a64(name)))
	p.subsystems[name] = rng
	return rng
}

// Key returns the SimulationKey used to create this PartitionedRNG.
func (p *PartitionedRNG) Key() SimulationKey {
	return p.key
}

// fnv1a64 computes a 64-bit FNV-1a hash of the input string.
func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}

// === Work simulation ===

// WorkSimulator stands in for programming time and help sessions. It has no
// effect on shared state; it only takes time. Implementations must return
// promptly once ctx is done.
type WorkSimulator interface {
	SimulateWork(ctx context.Context, rng *rand.Rand)
}

// RandomWork sleeps for a uniform whole number of units in [1, MaxUnits].
type RandomWork struct {
	MaxUnits int
	Unit     time.Duration
}

// NewRandomWork builds the default WorkSimulator for cfg.
func NewRandomWork(cfg SimConfig) *RandomWork {
	return &RandomWork{MaxUnits: cfg.MaxWork, Unit: cfg.TimeUnit}
}

// Duration draws the next duration from rng.
func (w *RandomWork) Duration(rng *rand.Rand) time.Duration {
	return time.Duration(rng.Intn(w.MaxUnits)+1) * w.Unit
}

// SimulateWork sleeps for Duration(rng) or until ctx is done.
func (w *RandomWork) SimulateWork(ctx context.Context, rng *rand.Rand) {
	t := time.NewTimer(w.Duration(rng))
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}
