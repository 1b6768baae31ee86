package objslot

// WeakRef observes a pool element without keeping it alive.
//
// It never changes the reference count. Lock upgrades it to a Ref after
// checking, through the slot generation, that the element has not died or
// been replaced. The zero WeakRef is expired.
type WeakRef[T any] struct {
	handle Handle
	pool   *Pool[T]
}

// NewWeakRef wraps h as a weak reference into p.
func NewWeakRef[T any](h Handle, p *Pool[T]) WeakRef[T] {
	if p == nil {
		return WeakRef[T]{}
	}
	return WeakRef[T]{handle: h, pool: p}
}

// Handle returns the observed handle, or InvalidHandle for an empty WeakRef.
func (w WeakRef[T]) Handle() Handle {
	if w.pool == nil {
		return InvalidHandle()
	}
	return w.handle
}

// IsExpired reports whether the observed element is gone.
func (w WeakRef[T]) IsExpired() bool {
	return w.pool == nil || !w.pool.IsValidHandle(w.handle)
}

// Lock returns a new strong reference if the element is still alive.
func (w WeakRef[T]) Lock() (Ref[T], bool) {
	if w.IsExpired() {
		return Ref[T]{}, false
	}
	w.pool.AddRef(w.handle)
	return NewRef(w.handle, w.pool), true
}

// Reset empties w.
func (w *WeakRef[T]) Reset() {
	*w = WeakRef[T]{handle: InvalidHandle()}
}

// Equal reports whether w and o observe the same handle of the same pool.
func (w WeakRef[T]) Equal(o WeakRef[T]) bool {
	return w.pool == o.pool && w.Handle() == o.Handle()
}
