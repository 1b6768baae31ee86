// Package registry provides one objslot.Pool per element type.
//
// A Registry replaces a process-wide singleton: the caller owns it, passes it
// to whoever needs pools, and decides its lifetime. It is not safe for
// concurrent use.
package registry

import (
	"reflect"

	"github.com/hupe1980/objslot"
)

// Registry maps element types to their pools.
type Registry struct {
	pools    map[reflect.Type]any
	order    []reflect.Type
	clear    []func()
	poolOpts []objslot.Option
	logger   *objslot.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithPoolOptions sets options applied to every pool the registry creates.
// Options are shared: a metrics collector passed here observes every pool.
func WithPoolOptions(opts ...objslot.Option) Option {
	return func(r *Registry) {
		r.poolOpts = append(r.poolOpts, opts...)
	}
}

// WithLogger gives every pool a child of logger tagged with its element type.
func WithLogger(logger *objslot.Logger) Option {
	return func(r *Registry) {
		r.logger = logger
	}
}

// New creates an empty registry.
func New(opts ...Option) *Registry {
	r := &Registry{
		pools: make(map[reflect.Type]any),
	}
	for _, fn := range opts {
		if fn != nil {
			fn(r)
		}
	}
	return r
}

// PoolFor returns the pool for T, creating it on first use.
func PoolFor[T any](r *Registry) *objslot.Pool[T] {
	typ := reflect.TypeFor[T]()
	if p, ok := r.pools[typ]; ok {
		return p.(*objslot.Pool[T])
	}

	opts := append([]objslot.Option(nil), r.poolOpts...)
	if r.logger != nil {
		opts = append(opts, objslot.WithLogger(r.logger.With("type", typ.String())))
	}
	p := objslot.New[T](opts...)

	r.pools[typ] = p
	r.order = append(r.order, typ)
	r.clear = append(r.clear, p.Clear)
	return p
}

// Create places v in T's pool and returns its first strong reference.
//
// It returns the zero (invalid) Ref when the pool refuses admission.
func Create[T any](r *Registry, v T) objslot.Ref[T] {
	return PoolFor[T](r).Create(v)
}

// Types returns the registered element types in registration order.
func (r *Registry) Types() []reflect.Type {
	return append([]reflect.Type(nil), r.order...)
}

// Len returns the number of registered pools.
func (r *Registry) Len() int { return len(r.order) }

// Clear clears every pool in registration order. The pools stay registered.
func (r *Registry) Clear() {
	for _, fn := range r.clear {
		fn()
	}
}
