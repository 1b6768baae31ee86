package testutil

import (
	"math/rand"
	"sync"
)

// Op is a randomly chosen pool operation.
type Op int

const (
	OpCreate Op = iota
	OpClone
	OpRelease
	OpLock
	OpShrink
	numOps
)

func (o Op) String() string {
	switch o {
	case OpCreate:
		return "create"
	case OpClone:
		return "clone"
	case OpRelease:
		return "release"
	case OpLock:
		return "lock"
	case OpShrink:
		return "shrink"
	default:
		return "unknown"
	}
}

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Op returns a pseudo-random operation. Creates and releases are weighted
// so that random sequences keep a non-trivial number of live elements.
func (r *RNG) Op() Op {
	r.mu.Lock()
	defer r.mu.Unlock()
	switch n := r.rand.Intn(10); {
	case n < 4:
		return OpCreate
	case n < 6:
		return OpClone
	case n < 9:
		return OpRelease
	default:
		return Op(int(OpLock) + r.rand.Intn(int(numOps-OpLock)))
	}
}

// HookRecorder records the order in which destroy hooks fire.
// It is thread-safe.
type HookRecorder struct {
	mu    sync.Mutex
	fired []string
}

// NewHookRecorder creates an empty recorder.
func NewHookRecorder() *HookRecorder {
	return &HookRecorder{}
}

// Hook returns a destroy hook that records name when it fires.
func (h *HookRecorder) Hook(name string) func() {
	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		h.fired = append(h.fired, name)
	}
}

// Fired returns the recorded names in firing order.
func (h *HookRecorder) Fired() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]string, len(h.fired))
	copy(out, h.fired)
	return out
}

// Count returns how often name fired.
func (h *HookRecorder) Count(name string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	n := 0
	for _, f := range h.fired {
		if f == name {
			n++
		}
	}
	return n
}

// Reset forgets all recorded firings.
func (h *HookRecorder) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.fired = nil
}
