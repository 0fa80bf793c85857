package data

import "testing"

func TestSharedSpace_NullReserved(t *testing.T) {
	z := NewZone()
	for i := 0; i < pageSlots+1; i++ {
		if ptr := z.Alloc(&testRec{id: i}); ptr.IsNull() {
			t.Fatal("allocation returned the null handle")
		}
	}
}

func TestSpace_RecordNullPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic on null dereference")
		}
	}()
	SharedSpace().Record(0)
}

func TestSpace_PageOfUnmapped(t *testing.T) {
	// A handle far past everything allocated so far.
	far := ptrFromSlot((maxPages - 1) << pageShift)
	if page := SharedSpace().PageOf(far); page != nil {
		t.Errorf("expected nil page for unmapped handle, got %v", page)
	}
}

func TestPtr_String(t *testing.T) {
	if got := Ptr(0).String(); got != "Ptr(null)" {
		t.Errorf("unexpected null representation %q", got)
	}
	z := NewZone()
	ptr := z.Alloc(&testRec{})
	if ptr.String() == "Ptr(null)" {
		t.Error("live handle rendered as null")
	}
}
