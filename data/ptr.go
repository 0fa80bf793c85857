package data

import "fmt"

// Ptr is a compact handle to a record slot in the shared Space.
//
// A Ptr encodes a slot index shifted left by two bits, so the low two bits
// of every valid handle are zero. Higher layers rely on this to pack a tag
// into the handle without disturbing the addressable part. The zero Ptr is
// reserved and never returned by an allocation.
type Ptr uint32

// tagBits is the number of low bits kept clear for tags packed by callers.
const tagBits = 2

// IsNull reports whether p is the reserved null handle.
func (p Ptr) IsNull() bool { return p == 0 }

// Slot returns the global slot index encoded in p.
func (p Ptr) Slot() uint32 { return uint32(p) >> tagBits }

// pageIndex returns the index of the page containing p.
func (p Ptr) pageIndex() uint32 { return p.Slot() >> pageShift }

// pageSlot returns the slot index of p within its page.
func (p Ptr) pageSlot() uint32 { return p.Slot() & pageMask }

// String returns a debug representation of the handle.
func (p Ptr) String() string {
	if p.IsNull() {
		return "Ptr(null)"
	}
	return fmt.Sprintf("Ptr(%d:%d)", p.pageIndex(), p.pageSlot())
}

func ptrFromSlot(slot uint32) Ptr {
	return Ptr(slot << tagBits)
}
