package sim

import (
	"context"
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// === SimulationKey Tests ===

func TestSimulationKey_Creation(t *testing.T) {
	tests := []struct {
		name string
		seed int64
	}{
		{"positive seed", 42},
		{"zero seed", 0},
		{"negative seed", -1},
		{"max int64", math.MaxInt64},
		{"min int64", math.MinInt64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := NewSimulationKey(tt.seed)
			if int64(key) != tt.seed {
				t.Errorf("NewSimulationKey(%d) = %d, want %d", tt.seed, key, tt.seed)
			}
		})
	}
}

// === PartitionedRNG Tests ===

func TestPartitionedRNG_DeterministicDerivation(t *testing.T) {
	// BDD: Same key+name produces same sequence
	rng1 := NewPartitionedRNG(NewSimulationKey(42))
	rng2 := NewPartitionedRNG(NewSimulationKey(42))

	for i := 0; i < 3; i++ {
		v1 := rng1.ForSubsystem(SubsystemTA).Float64()
		v2 := rng2.ForSubsystem(SubsystemTA).Float64()
		if v1 != v2 {
			t.Errorf("Value %d: got %v and %v, want identical", i, v1, v2)
		}
	}
}

func TestPartitionedRNG_SubsystemIsolation(t *testing.T) {
	// BDD: Drawing from student 1 doesn't affect student 2
	rngA := NewPartitionedRNG(NewSimulationKey(42))
	for i := 0; i < 10; i++ {
		rngA.ForSubsystem(SubsystemStudent(1)).Float64()
	}
	fresh := NewPartitionedRNG(NewSimulationKey(42))

	assert.Equal(t,
		fresh.ForSubsystem(SubsystemStudent(2)).Float64(),
		rngA.ForSubsystem(SubsystemStudent(2)).Float64(),
		"student 2 stream must not depend on draws from student 1")
}

func TestPartitionedRNG_Caching(t *testing.T) {
	rng := NewPartitionedRNG(NewSimulationKey(7))
	assert.Same(t, rng.ForSubsystem(SubsystemTA), rng.ForSubsystem(SubsystemTA))
	assert.Equal(t, SimulationKey(7), rng.Key())
}

func TestSubsystemStudent_Naming(t *testing.T) {
	assert.Equal(t, "student_0", SubsystemStudent(0))
	assert.Equal(t, "student_12", SubsystemStudent(12))
}

// === RandomWork Tests ===

func TestRandomWork_Duration_WithinBounds(t *testing.T) {
	// GIVEN the default 1..5 unit range
	w := &RandomWork{MaxUnits: 5, Unit: time.Millisecond}
	rng := rand.New(rand.NewSource(1))

	// WHEN many durations are drawn
	seen := make(map[time.Duration]bool)
	for i := 0; i < 1000; i++ {
		d := w.Duration(rng)
		// THEN every draw is a whole number of units in [1, 5]
		if d < time.Millisecond || d > 5*time.Millisecond || d%time.Millisecond != 0 {
			t.Fatalf("duration %v out of range", d)
		}
		seen[d] = true
	}
	assert.Len(t, seen, 5, "every value in [1, 5] should appear")
}

func TestRandomWork_SameSeed_SameDurations(t *testing.T) {
	w := NewRandomWork(SimConfig{MaxWork: 5, TimeUnit: time.Second})
	a := NewPartitionedRNG(NewSimulationKey(42)).ForSubsystem(SubsystemStudent(3))
	b := NewPartitionedRNG(NewSimulationKey(42)).ForSubsystem(SubsystemStudent(3))
	for i := 0; i < 20; i++ {
		assert.Equal(t, w.Duration(a), w.Duration(b))
	}
}

func TestRandomWork_SimulateWork_ReturnsOnCancel(t *testing.T) {
	// GIVEN work that would take an hour
	w := &RandomWork{MaxUnits: 1, Unit: time.Hour}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// WHEN the context is already cancelled
	start := time.Now()
	w.SimulateWork(ctx, rand.New(rand.NewSource(1)))

	// THEN it returns immediately
	assert.Less(t, time.Since(start), time.Second)
}
