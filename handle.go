package objslot

import (
	"fmt"
	"math"
)

// InvalidIndex is the Index of an explicitly invalid Handle.
const InvalidIndex uint32 = math.MaxUint32

// Handle identifies one incarnation of a pool slot.
//
// Two handles are equal (==) iff both Index and Generation match. A handle is
// only meaningful against the pool that issued it; Pool.IsValidHandle is the
// authority on whether the slot it names is still alive.
type Handle struct {
	Index      uint32
	Generation uint32
}

// InvalidHandle returns the sentinel handle that never resolves.
func InvalidHandle() Handle {
	return Handle{Index: InvalidIndex}
}

// IsValid reports whether h is not the InvalidHandle sentinel.
// It says nothing about whether the slot is still alive.
func (h Handle) IsValid() bool {
	return h.Index != InvalidIndex
}

// Key packs the handle into a single uint64 suitable as a map key.
func (h Handle) Key() uint64 {
	return uint64(h.Index)<<32 | uint64(h.Generation)
}

// HandleFromKey is the inverse of Handle.Key.
func HandleFromKey(key uint64) Handle {
	return Handle{Index: uint32(key >> 32), Generation: uint32(key)}
}

func (h Handle) String() string {
	if !h.IsValid() {
		return "Handle(invalid)"
	}
	return fmt.Sprintf("Handle(%d@%d)", h.Index, h.Generation)
}
