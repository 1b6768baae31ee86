package objslot

import (
	"errors"
	"fmt"
)

var (
	// ErrCapacityExceeded is returned by TryCreate when the pool refuses
	// admission because MaxCapacity live elements already exist.
	ErrCapacityExceeded = errors.New("objslot: max capacity exceeded")

	// ErrRefCountUnderflow is the panic value (wrapped) raised when a
	// reference is released on a slot whose count is already zero.
	ErrRefCountUnderflow = errors.New("objslot: reference count underflow")

	// ErrSlotTableFull is the panic value (wrapped) raised when the slot table
	// would need an index equal to InvalidIndex.
	ErrSlotTableFull = errors.New("objslot: slot table full")

	// ErrCorrupt is wrapped by every InvariantError.
	ErrCorrupt = errors.New("objslot: pool invariant violated")
)

// InvariantError describes a broken pool invariant found by Verify.
//
// errors.Is(err, ErrCorrupt) reports true for every InvariantError.
type InvariantError struct {
	Index  uint32 // slot index the violation was found at, InvalidIndex if none
	Reason string
}

func (e *InvariantError) Error() string {
	if e.Index == InvalidIndex {
		return fmt.Sprintf("%s: %s", ErrCorrupt, e.Reason)
	}
	return fmt.Sprintf("%s: slot %d: %s", ErrCorrupt, e.Index, e.Reason)
}

func (e *InvariantError) Unwrap() error { return ErrCorrupt }
