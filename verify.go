package objslot

import (
	"fmt"

	"github.com/RoaringBitmap/roaring/v2"
)

// Verify audits the pool's internal invariants and returns the first
// violation found as an *InvariantError, or nil.
//
// It checks that Count matches the number of live slots, that every live
// slot holds at least one reference, and that the reuse queue names each
// dead slot exactly once. Verify is O(Capacity) and meant for tests and
// debugging.
func (p *Pool[T]) Verify() error {
	n := len(p.values)
	if len(p.generations) != n || len(p.refCounts) != n || len(p.hooks) != n {
		return &InvariantError{Index: InvalidIndex, Reason: "parallel slot slices differ in length"}
	}

	live := 0
	for i, ok := p.alive.NextSet(0); ok; i, ok = p.alive.NextSet(i + 1) {
		if i >= uint(n) {
			return &InvariantError{Index: uint32(i), Reason: "live bit beyond capacity"}
		}
		if p.refCounts[i] == 0 {
			return &InvariantError{Index: uint32(i), Reason: "live slot without references"}
		}
		live++
	}
	if live != p.count {
		return &InvariantError{
			Index:  InvalidIndex,
			Reason: fmt.Sprintf("count is %d but %d slots are live", p.count, live),
		}
	}

	queued := roaring.New()
	for index := range p.free.All() {
		if uint64(index) >= uint64(n) {
			return &InvariantError{Index: index, Reason: "queued index beyond capacity"}
		}
		if p.alive.Test(uint(index)) {
			return &InvariantError{Index: index, Reason: "live slot queued for reuse"}
		}
		if !queued.CheckedAdd(index) {
			return &InvariantError{Index: index, Reason: "index queued twice"}
		}
	}

	if dead := n - live; int(queued.GetCardinality()) != dead {
		for i := 0; i < n; i++ {
			if !p.alive.Test(uint(i)) && !queued.Contains(uint32(i)) {
				return &InvariantError{Index: uint32(i), Reason: "dead slot missing from reuse queue"}
			}
		}
	}
	return nil
}
