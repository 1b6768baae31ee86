package objslot

import (
	"iter"
	"slices"

	"github.com/bits-and-blooms/bitset"
	"github.com/hupe1980/objslot/internal/assert"
	"github.com/hupe1980/objslot/internal/queue"
)

// Pool is a generational object pool for values of type T.
//
// Values live in one contiguous slice indexed by Handle.Index. Each slot
// carries a generation counter that is bumped when the slot dies, so handles
// to an earlier incarnation stop resolving once the index is reused. Slot
// lifetime is driven by reference counting through Ref and WeakRef.
//
// A Pool never evicts: lowering MaxCapacity only blocks new admissions.
//
// Pool is not safe for concurrent use. Every Ref and WeakRef derived from a
// pool must not be used after the pool itself is dropped or cleared.
type Pool[T any] struct {
	values      []T
	generations []uint32
	alive       *bitset.BitSet
	refCounts   []uint32
	hooks       []func()
	free        *queue.FIFO[uint32]

	count       int
	maxCapacity int
	epoch       uint64 // bumped by Clear

	logger  *Logger
	metrics MetricsCollector
}

// New creates an empty pool.
func New[T any](optFns ...Option) *Pool[T] {
	o := applyOptions(optFns)

	p := &Pool[T]{
		alive:       bitset.New(0),
		free:        queue.NewFIFO[uint32](0),
		maxCapacity: o.maxCapacity,
		logger:      o.logger,
		metrics:     o.metricsCollector,
	}
	if o.initialCapacity > 0 {
		p.Reserve(o.initialCapacity)
	}
	return p
}

// Create places v in the pool and returns the first strong reference to it.
//
// It returns the zero (invalid) Ref when CanCreate reports false.
func (p *Pool[T]) Create(v T) Ref[T] {
	if !p.CanCreate() {
		p.logger.LogRejected(p.count, p.maxCapacity)
		p.metrics.RecordRejected()
		return Ref[T]{}
	}
	h := p.AllocateSlot(v)
	p.AddRef(h)
	return NewRef(h, p)
}

// TryCreate is like Create but reports refused admission as
// ErrCapacityExceeded.
func (p *Pool[T]) TryCreate(v T) (Ref[T], error) {
	r := p.Create(v)
	if !r.IsValid() {
		return Ref[T]{}, ErrCapacityExceeded
	}
	return r, nil
}

// AllocateSlot stores v in a free slot and returns its handle.
//
// Indices released earlier are reused in the order they were released. The
// new slot starts with a reference count of 0 and no destroy hook; callers
// must AddRef it before handing it out. AllocateSlot does not consult
// CanCreate.
func (p *Pool[T]) AllocateSlot(v T) Handle {
	var h Handle
	index, reused := p.free.Pop()
	if reused {
		h = Handle{Index: index, Generation: p.generations[index]}
		p.values[index] = v
		p.refCounts[index] = 0
		p.hooks[index] = nil
	} else {
		n := len(p.values)
		assert.That(uint64(n) < uint64(InvalidIndex), ErrSlotTableFull, "%d slots in use", n)
		h = Handle{Index: uint32(n)}
		p.values = append(p.values, v)
		p.generations = append(p.generations, 0)
		p.refCounts = append(p.refCounts, 0)
		p.hooks = append(p.hooks, nil)
	}
	p.alive.Set(uint(h.Index))
	p.count++

	p.logger.LogCreate(h, reused)
	p.metrics.RecordCreate(h.Index)
	return h
}

// Get returns a pointer to the value addressed by h.
//
// The pointer stays valid until the next call that reallocates the pool's
// storage: AllocateSlot or Create past the reserved capacity, Reserve,
// ShrinkToFit or Clear.
func (p *Pool[T]) Get(h Handle) (*T, bool) {
	if !p.IsValidHandle(h) {
		return nil, false
	}
	return &p.values[h.Index], true
}

// Value returns a copy of the value addressed by h.
func (p *Pool[T]) Value(h Handle) (T, bool) {
	if !p.IsValidHandle(h) {
		var zero T
		return zero, false
	}
	return p.values[h.Index], true
}

// IsValidHandle reports whether h is in range, its slot is alive and the
// slot's generation matches.
func (p *Pool[T]) IsValidHandle(h Handle) bool {
	if uint64(h.Index) >= uint64(len(p.values)) {
		return false
	}
	if !p.alive.Test(uint(h.Index)) {
		return false
	}
	return p.generations[h.Index] == h.Generation
}

// RefCount returns the strong reference count of h, or 0 if h is invalid.
func (p *Pool[T]) RefCount(h Handle) uint32 {
	if !p.IsValidHandle(h) {
		return 0
	}
	return p.refCounts[h.Index]
}

// Count returns the number of live elements.
func (p *Pool[T]) Count() int { return p.count }

// Capacity returns the size of the slot table, dead slots included.
func (p *Pool[T]) Capacity() int { return len(p.values) }

// FreeSlots returns the number of dead slots waiting for reuse.
func (p *Pool[T]) FreeSlots() int { return p.free.Len() }

// SetMaxCapacity limits the number of live elements Create admits.
// 0 means unbounded. Existing elements above the new limit are kept.
func (p *Pool[T]) SetMaxCapacity(n int) {
	p.maxCapacity = max(n, 0)
	if p.maxCapacity > 0 && p.count > p.maxCapacity {
		p.logger.LogMaxCapacity(p.count, p.maxCapacity)
	}
}

// MaxCapacity returns the admission limit, 0 meaning unbounded.
func (p *Pool[T]) MaxCapacity() int { return p.maxCapacity }

// CanCreate reports whether Create would admit a new element.
func (p *Pool[T]) CanCreate() bool {
	return p.maxCapacity == 0 || p.count < p.maxCapacity
}

// AddRef increments the reference count of h. Invalid handles are ignored.
func (p *Pool[T]) AddRef(h Handle) {
	if !p.IsValidHandle(h) {
		return
	}
	p.refCounts[h.Index]++
}

// ReleaseRef decrements the reference count of h and removes the element
// when the count reaches zero. Invalid handles are ignored.
//
// Releasing a valid handle whose count is already zero panics with an error
// wrapping ErrRefCountUnderflow.
func (p *Pool[T]) ReleaseRef(h Handle) {
	if !p.IsValidHandle(h) {
		return
	}
	assert.That(p.refCounts[h.Index] > 0, ErrRefCountUnderflow, "release of %s", h)
	p.refCounts[h.Index]--
	if p.refCounts[h.Index] == 0 {
		p.remove(h.Index)
	}
}

// remove kills the slot at index. The destroy hook runs first, while the
// slot is still valid, and may create or release other elements.
func (p *Pool[T]) remove(index uint32) {
	if fn := p.hooks[index]; fn != nil {
		p.hooks[index] = nil
		epoch := p.epoch
		fn()
		if p.epoch != epoch {
			// The hook cleared the pool; the slot is gone already.
			return
		}
	}

	var zero T
	p.values[index] = zero // Zero out for GC
	p.alive.Clear(uint(index))
	p.generations[index]++
	p.refCounts[index] = 0
	p.free.Push(index)
	p.count--

	p.logger.LogRemove(index, p.generations[index])
	p.metrics.RecordRemove(index)
}

// SetOnDestroyCallback sets the destroy hook of h's slot, replacing any
// previous hook. Invalid handles are ignored.
//
// The hook belongs to the slot, not to a reference: every Ref to the slot
// shares it and the last setter wins. It fires exactly once, synchronously,
// when the element is removed or the pool is cleared.
func (p *Pool[T]) SetOnDestroyCallback(h Handle, fn func()) {
	if !p.IsValidHandle(h) {
		return
	}
	p.hooks[h.Index] = fn
}

// ClearOnDestroyCallback removes the destroy hook of h's slot.
func (p *Pool[T]) ClearOnDestroyCallback(h Handle) {
	if !p.IsValidHandle(h) {
		return
	}
	p.hooks[h.Index] = nil
}

// ForEach calls fn for every live element in ascending index order.
func (p *Pool[T]) ForEach(fn func(h Handle, v *T)) {
	for h, v := range p.All() {
		fn(h, v)
	}
}

// ForEachValue calls fn with a copy of every live element in ascending index
// order.
func (p *Pool[T]) ForEachValue(fn func(h Handle, v T)) {
	for h, v := range p.All() {
		fn(h, *v)
	}
}

// All yields every live element in ascending index order.
func (p *Pool[T]) All() iter.Seq2[Handle, *T] {
	return func(yield func(Handle, *T) bool) {
		for i, ok := p.alive.NextSet(0); ok && i < uint(len(p.values)); i, ok = p.alive.NextSet(i + 1) {
			h := Handle{Index: uint32(i), Generation: p.generations[i]}
			if !yield(h, &p.values[i]) {
				return
			}
		}
	}
}

// Clear fires the destroy hook of every live element in ascending index
// order, then drops all storage.
//
// Handles and references issued before Clear are not notified. They fail
// validation until an equal handle is issued again, after which they alias
// the new element.
func (p *Pool[T]) Clear() {
	count, capacity := p.count, len(p.values)

	for i, ok := p.alive.NextSet(0); ok && i < uint(len(p.hooks)); i, ok = p.alive.NextSet(i + 1) {
		if fn := p.hooks[i]; fn != nil {
			p.hooks[i] = nil
			fn()
		}
	}

	p.values = nil
	p.generations = nil
	p.refCounts = nil
	p.hooks = nil
	p.alive = bitset.New(0)
	p.free.Reset()
	p.count = 0
	p.epoch++

	p.logger.LogClear(count, capacity)
	p.metrics.RecordClear(count)
}

// Reserve grows the backing storage to hold at least n slots without
// reallocating. It never shrinks and does not change Capacity.
func (p *Pool[T]) Reserve(n int) {
	if n <= cap(p.values) {
		return
	}
	extra := n - len(p.values)
	p.values = slices.Grow(p.values, extra)
	p.generations = slices.Grow(p.generations, extra)
	p.refCounts = slices.Grow(p.refCounts, extra)
	p.hooks = slices.Grow(p.hooks, extra)
	if p.alive.Len() < uint(n) {
		grown := bitset.New(uint(n))
		grown.InPlaceUnion(p.alive)
		p.alive = grown
	}
}

// ShrinkToFit drops the run of dead slots at the end of the slot table.
//
// Live elements keep their indices, so every outstanding handle stays valid.
// Freed indices beyond the new end are discarded from the reuse queue.
//
// Trimmed slots lose their generation: when the table later grows over them
// again the new slots start at generation 0, so stale handles into the
// trimmed range may resolve to the new elements.
func (p *Pool[T]) ShrinkToFit() {
	size := len(p.values)
	for size > 0 && !p.alive.Test(uint(size-1)) {
		size--
	}
	if size == len(p.values) {
		return
	}
	from := len(p.values)

	p.values = shrink(p.values, size)
	p.generations = shrink(p.generations, size)
	p.refCounts = shrink(p.refCounts, size)
	p.hooks = shrink(p.hooks, size)
	if size == 0 {
		p.alive = bitset.New(0)
	} else {
		p.alive.Shrink(uint(size - 1))
	}

	limit := uint32(size)
	p.free.Retain(func(index uint32) bool { return index < limit })

	p.logger.LogShrink(from, size)
}

// Stats returns a point-in-time summary of the pool.
func (p *Pool[T]) Stats() Stats {
	return Stats{
		Count:       p.count,
		Capacity:    len(p.values),
		Reserved:    cap(p.values),
		FreeSlots:   p.free.Len(),
		MaxCapacity: p.maxCapacity,
	}
}

// shrink returns a copy of s[:n] with no spare capacity.
func shrink[S ~[]E, E any](s S, n int) S {
	if n == 0 {
		return nil
	}
	out := make(S, n)
	copy(out, s[:n])
	return out
}
