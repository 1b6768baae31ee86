package objslot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/objslot/testutil"
)

type mesh struct {
	Name        string
	VertexCount uint32
}

func TestPool_CreateGet(t *testing.T) {
	p := New[mesh]()

	box := p.Create(mesh{Name: "Box", VertexCount: 8})
	require.True(t, box.IsValid())

	v, ok := p.Get(box.Handle())
	require.True(t, ok)
	assert.Equal(t, "Box", v.Name)
	assert.Equal(t, uint32(8), v.VertexCount)

	// Writes through the pointer are visible to later lookups.
	v.VertexCount = 24
	got, ok := p.Value(box.Handle())
	require.True(t, ok)
	assert.Equal(t, uint32(24), got.VertexCount)

	assert.Equal(t, 1, p.Count())
	assert.Equal(t, 1, p.Capacity())
	assert.Equal(t, uint32(1), p.RefCount(box.Handle()))
}

func TestPool_AllocateSlot(t *testing.T) {
	p := New[int]()

	h := p.AllocateSlot(7)
	assert.Equal(t, Handle{Index: 0, Generation: 0}, h)
	assert.True(t, p.IsValidHandle(h))
	assert.Equal(t, uint32(0), p.RefCount(h), "allocation alone takes no reference")
	assert.Equal(t, 1, p.Count())

	p.AddRef(h)
	assert.Equal(t, uint32(1), p.RefCount(h))
	p.ReleaseRef(h)
	assert.False(t, p.IsValidHandle(h))
	assert.Equal(t, 0, p.Count())
}

func TestPool_IsValidHandle(t *testing.T) {
	p := New[int]()
	a := p.Create(1)
	b := p.Create(2)
	stale := a.Handle()
	a.Release()

	tests := []struct {
		name string
		h    Handle
		want bool
	}{
		{"live", b.Handle(), true},
		{"out of range", Handle{Index: 5}, false},
		{"sentinel", InvalidHandle(), false},
		{"dead slot", stale, false},
		{"future generation", Handle{Index: 1, Generation: 1}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.IsValidHandle(tt.h))
		})
	}

	c := p.Create(3)
	assert.Equal(t, uint32(0), c.Handle().Index)
	assert.Equal(t, uint32(1), c.Handle().Generation)
	assert.False(t, p.IsValidHandle(stale), "stale handle must not alias the reused slot")
}

func TestPool_InvalidHandleAccessors(t *testing.T) {
	p := New[int]()
	h := Handle{Index: 3}

	v, ok := p.Get(h)
	assert.Nil(t, v)
	assert.False(t, ok)

	_, ok = p.Value(h)
	assert.False(t, ok)
	assert.Equal(t, uint32(0), p.RefCount(h))

	assert.NotPanics(t, func() {
		p.AddRef(h)
		p.ReleaseRef(h)
		p.SetOnDestroyCallback(h, func() {})
		p.ClearOnDestroyCallback(h)
	})
	assert.Equal(t, 0, p.Count())
}

func TestPool_GenerationBump(t *testing.T) {
	p := New[int]()
	r := p.Create(1)
	h := r.Handle()

	r.Release()
	assert.Equal(t, uint32(1), p.generations[h.Index])
	assert.False(t, p.IsValidHandle(h))

	r = p.Create(2)
	assert.Equal(t, h.Index, r.Handle().Index)
	r.Release()
	assert.Equal(t, uint32(2), p.generations[h.Index])
}

func TestPool_FIFOReuse(t *testing.T) {
	p := New[string]()
	a := p.Create("A")
	b := p.Create("B")
	require.Equal(t, uint32(0), a.Handle().Index)
	require.Equal(t, uint32(1), b.Handle().Index)

	a.Release()
	b.Release()

	c := p.Create("C")
	d := p.Create("D")
	assert.Equal(t, uint32(0), c.Handle().Index)
	assert.Equal(t, uint32(1), d.Handle().Index)
	assert.Equal(t, 2, p.Capacity())

	t.Run("reverse release order", func(t *testing.T) {
		d.Release()
		c.Release()
		e := p.Create("E")
		f := p.Create("F")
		assert.Equal(t, uint32(1), e.Handle().Index)
		assert.Equal(t, uint32(0), f.Handle().Index)
	})
}

func TestPool_AdmissionControl(t *testing.T) {
	p := New[int](WithMaxCapacity(2))
	assert.Equal(t, 2, p.MaxCapacity())

	a := p.Create(1)
	b := p.Create(2)
	require.True(t, a.IsValid())
	require.True(t, b.IsValid())

	assert.False(t, p.CanCreate())
	c := p.Create(3)
	assert.False(t, c.IsValid())
	assert.Equal(t, InvalidHandle(), c.Handle())
	assert.Equal(t, 2, p.Count())

	_, err := p.TryCreate(4)
	assert.ErrorIs(t, err, ErrCapacityExceeded)

	a.Release()
	assert.True(t, p.CanCreate())
	d, err := p.TryCreate(5)
	require.NoError(t, err)
	assert.True(t, d.IsValid())
	assert.Equal(t, 2, p.Count())
}

func TestPool_SetMaxCapacityBelowCount(t *testing.T) {
	p := New[int]()
	refs := []Ref[int]{p.Create(1), p.Create(2), p.Create(3)}

	p.SetMaxCapacity(1)
	assert.Equal(t, 3, p.Count(), "lowering the limit never evicts")
	assert.False(t, p.CanCreate())
	for _, r := range refs {
		assert.True(t, r.IsValid())
	}

	refs[0].Release()
	refs[1].Release()
	assert.False(t, p.CanCreate(), "still at the limit")
	refs[2].Release()
	assert.True(t, p.CanCreate())

	p.SetMaxCapacity(0)
	assert.Equal(t, 0, p.MaxCapacity())
	assert.True(t, p.CanCreate())

	p.SetMaxCapacity(-4)
	assert.Equal(t, 0, p.MaxCapacity())
}

func TestPool_ForEach(t *testing.T) {
	p := New[string]()
	a := p.Create("a")
	b := p.Create("b")
	c := p.Create("c")
	_ = c
	a.Release()
	b.Release()
	d := p.Create("d") // reuses index 0
	_ = d

	var names []string
	var indices []uint32
	p.ForEach(func(h Handle, v *string) {
		assert.True(t, p.IsValidHandle(h))
		names = append(names, *v)
		indices = append(indices, h.Index)
		*v += "!"
	})
	assert.Equal(t, []string{"d", "c"}, names, "index order, not creation order")
	assert.Equal(t, []uint32{0, 2}, indices)

	var values []string
	p.ForEachValue(func(_ Handle, v string) {
		values = append(values, v)
	})
	assert.Equal(t, []string{"d!", "c!"}, values)
}

func TestPool_AllEarlyBreak(t *testing.T) {
	p := New[int]()
	for i := 0; i < 5; i++ {
		p.Create(i)
	}
	var seen []int
	for _, v := range p.All() {
		if *v == 2 {
			break
		}
		seen = append(seen, *v)
	}
	assert.Equal(t, []int{0, 1}, seen)
}

func TestPool_Clear(t *testing.T) {
	rec := testutil.NewHookRecorder()
	p := New[string]()

	a := p.Create("a")
	b := p.Create("b")
	c := p.Create("c")
	a.SetOnDestroy(rec.Hook("a"))
	b.SetOnDestroy(rec.Hook("b"))
	c.SetOnDestroy(rec.Hook("c"))
	_ = b.Clone() // keep b alive with two references
	dead := p.Create("dead")
	dead.SetOnDestroy(rec.Hook("dead"))
	dead.Release()
	rec.Reset()

	p.Clear()
	assert.Equal(t, []string{"a", "b", "c"}, rec.Fired())
	assert.Equal(t, 0, p.Count())
	assert.Equal(t, 0, p.Capacity())
	assert.Equal(t, 0, p.FreeSlots())
	assert.False(t, a.IsValid())

	// Releasing dangling references after Clear is a no-op.
	assert.NotPanics(t, func() {
		a.Release()
		b.Release()
	})
	assert.Len(t, rec.Fired(), 3)

	e := p.Create("e")
	assert.Equal(t, Handle{Index: 0, Generation: 0}, e.Handle())
	require.NoError(t, p.Verify())
}

func TestPool_Reserve(t *testing.T) {
	p := New[int]()
	p.Reserve(64)
	assert.Equal(t, 0, p.Capacity())
	assert.GreaterOrEqual(t, p.Stats().Reserved, 64)

	r := p.Create(1)
	v := r.Get()
	for i := 0; i < 63; i++ {
		p.Create(i)
	}
	assert.Same(t, v, r.Get(), "no reallocation within the reserved capacity")

	p.Reserve(8) // never shrinks
	assert.GreaterOrEqual(t, p.Stats().Reserved, 64)

	q := New[int](WithInitialCapacity(16))
	assert.GreaterOrEqual(t, q.Stats().Reserved, 16)
	assert.Equal(t, 0, q.Capacity())
	require.NoError(t, p.Verify())
}

func TestPool_ShrinkToFit(t *testing.T) {
	t.Run("trims trailing dead slots", func(t *testing.T) {
		p := New[int]()
		a := p.Create(0)
		b := p.Create(1)
		c := p.Create(2)
		ha, hb := a.Handle(), b.Handle()

		c.Release()
		p.ShrinkToFit()

		assert.Equal(t, 2, p.Capacity())
		assert.True(t, p.IsValidHandle(ha))
		assert.True(t, p.IsValidHandle(hb))
		assert.Equal(t, ha, a.Handle())
		assert.Equal(t, 0, p.FreeSlots())
		require.NoError(t, p.Verify())

		// Index 2 is gone, so the next element gets a brand-new slot there.
		d := p.Create(3)
		assert.Equal(t, Handle{Index: 2, Generation: 0}, d.Handle())
	})

	t.Run("keeps interior holes", func(t *testing.T) {
		p := New[int]()
		refs := make([]Ref[int], 5)
		for i := range refs {
			refs[i] = p.Create(i)
		}
		refs[1].Release()
		refs[3].Release()
		refs[4].Release()

		p.ShrinkToFit()
		assert.Equal(t, 3, p.Capacity())
		assert.Equal(t, 1, p.FreeSlots(), "only index 1 remains queued")
		require.NoError(t, p.Verify())

		r := p.Create(9)
		assert.Equal(t, uint32(1), r.Handle().Index)
		assert.Equal(t, uint32(1), r.Handle().Generation)
	})

	t.Run("all dead", func(t *testing.T) {
		p := New[int]()
		a := p.Create(0)
		b := p.Create(1)
		a.Release()
		b.Release()

		p.ShrinkToFit()
		assert.Equal(t, 0, p.Capacity())
		assert.Equal(t, 0, p.FreeSlots())
		require.NoError(t, p.Verify())
	})

	t.Run("nothing to trim", func(t *testing.T) {
		p := New[int]()
		a := p.Create(0)
		p.Create(1)
		a.Release()

		p.ShrinkToFit()
		assert.Equal(t, 2, p.Capacity())
		assert.Equal(t, 1, p.FreeSlots())
	})
}

func TestPool_Stats(t *testing.T) {
	p := New[int](WithMaxCapacity(10))
	a := p.Create(1)
	p.Create(2)
	a.Release()

	s := p.Stats()
	assert.Equal(t, 1, s.Count)
	assert.Equal(t, 2, s.Capacity)
	assert.Equal(t, 1, s.FreeSlots)
	assert.Equal(t, 1, s.DeadSlots())
	assert.Equal(t, 10, s.MaxCapacity)
}

func TestPool_ReleaseUnderflowPanics(t *testing.T) {
	p := New[int]()
	h := p.AllocateSlot(1) // count 0, never referenced

	defer func() {
		r := recover()
		require.NotNil(t, r)
		err, ok := r.(error)
		require.True(t, ok)
		assert.ErrorIs(t, err, ErrRefCountUnderflow)
	}()
	p.ReleaseRef(h)
}
