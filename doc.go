// Package objslot provides a generational object pool for Go.
//
// A Pool stores values of one type in contiguous slices and hands out
// Handles (index + generation) instead of pointers. Element lifetime is
// managed by reference counting: Create returns a strong Ref, Clone shares
// it, Release drops it, and the element is removed synchronously when the
// last strong reference goes away. A WeakRef observes an element without
// keeping it alive and can be upgraded with Lock while the element lives.
//
// # Quick Start
//
//	pool := objslot.New[Mesh](objslot.WithMaxCapacity(1024))
//
//	box := pool.Create(Mesh{Name: "Box"})
//	box.SetOnDestroy(func() { fmt.Println("box destroyed") })
//
//	alias := box.Clone()   // UseCount() == 2
//	weak := box.Weak()     // UseCount() unchanged
//
//	box.Release()          // UseCount() == 1
//	alias.Release()        // prints "box destroyed"
//
//	_, ok := weak.Lock()   // ok == false
//
// # Handles and Generations
//
// Every slot carries a generation counter that is incremented each time the
// element in it dies. A Handle is valid only while its index is in range, the
// slot is alive and the generations match, so stale handles are detected
// even after the index has been reused.
//
// Freed indices are reused first-in first-out: the first index freed is the
// first one handed out again.
//
// # Destroy Hooks
//
// Each slot holds at most one destroy hook. It belongs to the slot, so all
// Refs to an element share it and the most recent SetOnDestroy wins. The hook
// fires exactly once, synchronously, either when the last strong reference is
// released or when the pool is cleared.
//
// Hooks may create and release other elements of the same pool. While the
// hook runs, the dying element is still valid and its index is not reused.
//
// # Capacity Control
//
// SetMaxCapacity gates Create without ever evicting; Reserve pre-sizes
// storage; ShrinkToFit trims trailing dead slots without moving live ones.
//
// # Concurrency
//
// A Pool and its references are not safe for concurrent use. Callers that
// share a pool between goroutines must synchronize externally.
//
// # Contract Violations
//
// Releasing a reference whose slot count is already zero panics with an
// error wrapping ErrRefCountUnderflow. All other misuse (stale handles,
// refused admission, empty references) is reported through zero values and
// false results.
package objslot
