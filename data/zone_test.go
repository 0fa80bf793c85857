package data

import "testing"

type testRec struct {
	id int
}

func TestZone_Alloc(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		z := NewZone()
		rec := &testRec{id: 7}

		ptr := z.Alloc(rec)
		if ptr.IsNull() {
			t.Fatal("allocated pointer should not be null")
		}
		if uint32(ptr)&0x3 != 0 {
			t.Errorf("low tag bits not zero: %032b", uint32(ptr))
		}

		got := SharedSpace().Record(ptr)
		if got != any(rec) {
			t.Errorf("Record returned %v, want %v", got, rec)
		}
	})

	t.Run("page ownership", func(t *testing.T) {
		z := NewZone()
		ptr := z.Alloc(&testRec{})

		page := SharedSpace().PageOf(ptr)
		if page == nil {
			t.Fatal("PageOf returned nil for live pointer")
		}
		if page.Zone() != z {
			t.Error("page not owned by allocating zone")
		}
	})

	t.Run("distinct handles", func(t *testing.T) {
		z := NewZone()
		seen := make(map[Ptr]bool)
		for i := 0; i < 500; i++ {
			ptr := z.Alloc(&testRec{id: i})
			if seen[ptr] {
				t.Fatalf("duplicate handle %s", ptr)
			}
			seen[ptr] = true
		}
		if z.PageCount() < 2 {
			t.Errorf("expected multiple pages, got %d", z.PageCount())
		}
	})

	t.Run("records survive page boundaries", func(t *testing.T) {
		z := NewZone()
		ptrs := make([]Ptr, 300)
		for i := range ptrs {
			ptrs[i] = z.Alloc(&testRec{id: i})
		}
		for i, ptr := range ptrs {
			rec := SharedSpace().Record(ptr).(*testRec)
			if rec.id != i {
				t.Fatalf("record %d: got id %d", i, rec.id)
			}
		}
	})
}

func TestZone_Owner(t *testing.T) {
	z := NewZone()
	if z.Owner() != nil {
		t.Error("fresh zone should have no owner")
	}

	owner := &testRec{id: 1}
	z.SetOwner(owner)

	ptr := z.Alloc(&testRec{id: 2})
	page := SharedSpace().PageOf(ptr)
	if page.Zone().Owner() != any(owner) {
		t.Error("owner not recoverable through page table")
	}
}

func TestZone_AllocUint32Slice(t *testing.T) {
	t.Run("zeroed and sized", func(t *testing.T) {
		z := NewZone()
		s := z.AllocUint32Slice(16)
		if len(s) != 16 {
			t.Fatalf("expected length=16, got %d", len(s))
		}
		if cap(s) != 16 {
			t.Errorf("expected capacity=16, got %d", cap(s))
		}
		for i, w := range s {
			if w != 0 {
				t.Errorf("word at index %d not zero: %d", i, w)
			}
		}
	})

	t.Run("zero size", func(t *testing.T) {
		z := NewZone()
		if s := z.AllocUint32Slice(0); s != nil {
			t.Error("expected nil for zero size")
		}
	})

	t.Run("oversized request gets dedicated chunk", func(t *testing.T) {
		z := NewZone()
		s := z.AllocUint32Slice(sliceChunkWords * 2)
		if len(s) != sliceChunkWords*2 {
			t.Fatalf("expected length=%d, got %d", sliceChunkWords*2, len(s))
		}
	})

	t.Run("allocations do not alias", func(t *testing.T) {
		z := NewZone()
		a := z.AllocUint32Slice(8)
		b := z.AllocUint32Slice(8)
		for i := range a {
			a[i] = 0xAAAAAAAA
		}
		for i, w := range b {
			if w != 0 {
				t.Fatalf("second slice dirtied at %d: %x", i, w)
			}
		}
	})
}

func TestZone_Invalidate(t *testing.T) {
	z := NewZone()
	ptr := z.Alloc(&testRec{id: 3})

	z.Invalidate()

	if !z.IsInvalidated() {
		t.Fatal("zone should report invalidated")
	}
	// Records stay readable until the zone is reset.
	if rec := SharedSpace().Record(ptr).(*testRec); rec.id != 3 {
		t.Errorf("record unreadable after invalidate: %v", rec)
	}
	if _, err := z.TryAlloc(&testRec{}); err != ErrZoneInvalidated {
		t.Errorf("expected ErrZoneInvalidated, got %v", err)
	}
}

func TestZone_Reset(t *testing.T) {
	z := NewZone()
	ptr := z.Alloc(&testRec{id: 9})

	z.Reset()

	if !z.IsInvalidated() {
		t.Fatal("reset zone should report invalidated")
	}
	if rec := SharedSpace().Record(ptr); rec != nil {
		t.Errorf("record not released on reset: %v", rec)
	}
	if _, err := z.TryAlloc(&testRec{}); err != ErrZoneInvalidated {
		t.Errorf("expected ErrZoneInvalidated, got %v", err)
	}
}
