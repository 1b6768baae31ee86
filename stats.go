package objslot

// Stats tracks pool occupancy.
//
// Note on semantics:
//   - Count: live elements
//   - Capacity: slot table size, dead slots included
//   - Reserved: slots the backing storage holds without reallocating
//   - FreeSlots: dead slots queued for reuse
//   - MaxCapacity: admission limit, 0 meaning unbounded
type Stats struct {
	Count       int
	Capacity    int
	Reserved    int
	FreeSlots   int
	MaxCapacity int
}

// DeadSlots returns the number of dead slots in the table.
func (s Stats) DeadSlots() int {
	return s.Capacity - s.Count
}
