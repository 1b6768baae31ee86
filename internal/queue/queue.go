// Package queue provides the FIFO queue used to recycle slot indices.
package queue

import "iter"

// minGrow is the smallest backing size allocated on first push.
const minGrow = 8

// FIFO is a first-in first-out queue backed by a growable ring buffer.
// Optimized: value-based storage, no per-element allocation.
//
// FIFO is not safe for concurrent use.
type FIFO[T any] struct {
	items []T // ring storage, len(items) is the ring size
	head  int // position of the front element
	n     int // number of queued elements
}

// NewFIFO initializes a new queue with room for capacity elements.
func NewFIFO[T any](capacity int) *FIFO[T] {
	if capacity < 0 {
		capacity = 0
	}
	return &FIFO[T]{
		items: make([]T, capacity),
	}
}

// Len returns the number of queued elements.
func (q *FIFO[T]) Len() int { return q.n }

// Empty reports whether the queue holds no elements.
func (q *FIFO[T]) Empty() bool { return q.n == 0 }

// Push appends v at the back of the queue.
func (q *FIFO[T]) Push(v T) {
	if q.n == len(q.items) {
		q.grow()
	}
	q.items[(q.head+q.n)%len(q.items)] = v
	q.n++
}

// Pop removes and returns the front element.
func (q *FIFO[T]) Pop() (T, bool) {
	var zero T
	if q.n == 0 {
		return zero, false
	}
	v := q.items[q.head]
	q.items[q.head] = zero
	q.head = (q.head + 1) % len(q.items)
	q.n--
	if q.n == 0 {
		q.head = 0
	}
	return v, true
}

// Front returns the front element without removing it.
func (q *FIFO[T]) Front() (T, bool) {
	if q.n == 0 {
		var zero T
		return zero, false
	}
	return q.items[q.head], true
}

// Retain keeps only the elements for which keep returns true.
// Relative order of the kept elements is preserved.
func (q *FIFO[T]) Retain(keep func(T) bool) {
	var zero T
	size := len(q.items)
	w := 0
	for r := 0; r < q.n; r++ {
		v := q.items[(q.head+r)%size]
		if keep(v) {
			q.items[(q.head+w)%size] = v
			w++
		}
	}
	for i := w; i < q.n; i++ {
		q.items[(q.head+i)%size] = zero
	}
	q.n = w
	if q.n == 0 {
		q.head = 0
	}
}

// All yields the queued elements from front to back.
func (q *FIFO[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := 0; i < q.n; i++ {
			if !yield(q.items[(q.head+i)%len(q.items)]) {
				return
			}
		}
	}
}

// Reset clears the queue and releases its backing storage.
func (q *FIFO[T]) Reset() {
	q.items = nil
	q.head = 0
	q.n = 0
}

// grow doubles the ring and unrolls it so the front sits at position 0.
func (q *FIFO[T]) grow() {
	size := max(minGrow, 2*len(q.items))
	items := make([]T, size)
	for i := 0; i < q.n; i++ {
		items[i] = q.items[(q.head+i)%len(q.items)]
	}
	q.items = items
	q.head = 0
}
