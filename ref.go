package objslot

// Ref is a strong, shared-ownership reference to one pool element.
//
// Go has no copy constructors or destructors, so ownership changes are
// explicit: Clone is a copy (the reference count goes up), Release drops the
// reference (the count goes down and the element dies at zero), and Move
// transfers ownership without touching the count. Copying a Ref value with
// plain assignment does NOT take a reference; both copies then share one
// count and only one of them may be released.
//
// The zero Ref is invalid.
type Ref[T any] struct {
	handle Handle
	pool   *Pool[T]
}

// NewRef wraps h without incrementing its reference count. It is the
// building block for creation entry points that have already set the count.
func NewRef[T any](h Handle, p *Pool[T]) Ref[T] {
	if p == nil {
		return Ref[T]{}
	}
	return Ref[T]{handle: h, pool: p}
}

// Handle returns the handle r refers to, or InvalidHandle for an empty Ref.
func (r Ref[T]) Handle() Handle {
	if r.pool == nil {
		return InvalidHandle()
	}
	return r.handle
}

// Pool returns the pool r belongs to, nil for an empty Ref.
func (r Ref[T]) Pool() *Pool[T] { return r.pool }

// IsValid reports whether the element r refers to is still alive.
func (r Ref[T]) IsValid() bool {
	return r.pool != nil && r.pool.IsValidHandle(r.handle)
}

// Get returns a pointer to the element, or nil if r is invalid.
func (r Ref[T]) Get() *T {
	if r.pool == nil {
		return nil
	}
	v, _ := r.pool.Get(r.handle)
	return v
}

// Value returns a copy of the element.
func (r Ref[T]) Value() (T, bool) {
	if r.pool == nil {
		var zero T
		return zero, false
	}
	return r.pool.Value(r.handle)
}

// UseCount returns the element's strong reference count, 0 if invalid.
func (r Ref[T]) UseCount() uint32 {
	if r.pool == nil {
		return 0
	}
	return r.pool.RefCount(r.handle)
}

// Clone returns a new strong reference to the same element.
// Cloning an invalid Ref yields another reference that fails IsValid.
func (r Ref[T]) Clone() Ref[T] {
	if r.IsValid() {
		r.pool.AddRef(r.handle)
	}
	return r
}

// Assign makes r refer to src's element, releasing whatever r held before.
// Assigning a Ref to itself changes nothing.
func (r *Ref[T]) Assign(src Ref[T]) {
	if r.Equal(src) {
		return
	}
	r.Release()
	*r = src.Clone()
}

// Move transfers r's reference to the returned Ref and leaves r empty.
// The reference count is unchanged.
func (r *Ref[T]) Move() Ref[T] {
	out := *r
	*r = Ref[T]{handle: InvalidHandle()}
	return out
}

// Release drops r's reference and leaves r empty. If r was the last strong
// reference, the element is removed before Release returns.
func (r *Ref[T]) Release() {
	if r.IsValid() {
		r.pool.ReleaseRef(r.handle)
	}
	*r = Ref[T]{handle: InvalidHandle()}
}

// Reset is an alias for Release.
func (r *Ref[T]) Reset() { r.Release() }

// SetOnDestroy sets the destroy hook of the element. The hook is shared by
// every Ref to the same element; the last call wins.
func (r Ref[T]) SetOnDestroy(fn func()) {
	if r.pool == nil {
		return
	}
	r.pool.SetOnDestroyCallback(r.handle, fn)
}

// ClearOnDestroy removes the destroy hook of the element.
func (r Ref[T]) ClearOnDestroy() {
	if r.pool == nil {
		return
	}
	r.pool.ClearOnDestroyCallback(r.handle)
}

// Weak returns a weak reference to the element. The count is unchanged.
func (r Ref[T]) Weak() WeakRef[T] {
	return NewWeakRef(r.handle, r.pool)
}

// Equal reports whether r and o refer to the same handle of the same pool.
// Two empty Refs are equal.
func (r Ref[T]) Equal(o Ref[T]) bool {
	return r.pool == o.pool && r.Handle() == o.Handle()
}

func (r Ref[T]) String() string {
	return "Ref" + r.Handle().String()[len("Handle"):]
}
