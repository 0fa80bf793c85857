package data

import (
	"errors"
	"fmt"

	"github.com/bits-and-blooms/bitset"
)

var (
	// ErrSpaceExhausted is returned when the shared space has no room for
	// another page.
	ErrSpaceExhausted = errors.New("data: shared space exhausted")
	// ErrZoneInvalidated is returned when allocating from a zone that has
	// been torn down.
	ErrZoneInvalidated = errors.New("data: zone invalidated")
)

// sliceChunkWords is the default chunk size (in uint32 words) for the raw
// slice arena carried by each zone.
const sliceChunkWords = 8192

// Zone is a bump allocator over pages of the shared space.
//
// Records allocated from a zone stay live until the zone as a whole is reset;
// there is no per-record free. A zone additionally hands out raw []uint32
// slices from chunked backing arrays, used by tables for bucket storage.
type Zone struct {
	space   *Space
	owner   any
	pages   *bitset.BitSet
	current *Page
	invalid bool

	chunks   [][]uint32
	chunkOff int
}

// NewZone creates a zone over the shared space.
func NewZone() *Zone {
	return &Zone{
		space: SharedSpace(),
		pages: bitset.New(8),
	}
}

// Owner returns the value registered as this zone's owner, or nil.
func (z *Zone) Owner() any { return z.owner }

// SetOwner registers the owning object, typically a subgraph. The owner is
// recovered through PageOf for any Ptr allocated here.
func (z *Zone) SetOwner(owner any) { z.owner = owner }

// IsInvalidated reports whether the zone has been invalidated or reset.
func (z *Zone) IsInvalidated() bool { return z.invalid }

// TryAlloc stores rec in a fresh slot and returns its handle.
func (z *Zone) TryAlloc(rec any) (Ptr, error) {
	if z.invalid {
		return 0, ErrZoneInvalidated
	}
	if z.current == nil || len(z.current.recs) == pageSlots {
		page, err := z.space.allocPage(z)
		if err != nil {
			return 0, err
		}
		z.current = page
		z.pages.Set(uint(page.index))
	}
	page := z.current
	slot := uint32(len(page.recs))
	page.recs = append(page.recs, rec)
	return ptrFromSlot(page.index<<pageShift | slot), nil
}

// Alloc is TryAlloc for call sites where allocation failure is a fatal
// condition.
func (z *Zone) Alloc(rec any) Ptr {
	p, err := z.TryAlloc(rec)
	if err != nil {
		panic(fmt.Sprintf("data: %v", err))
	}
	return p
}

// AllocUint32Slice returns a zeroed slice of n words drawn from the zone's
// chunked backing arrays. The slice stays valid until the zone is reset.
// Slices that outgrow their chunk are simply abandoned to the next reset.
func (z *Zone) AllocUint32Slice(n int) []uint32 {
	if n <= 0 {
		return nil
	}
	if z.invalid {
		panic(fmt.Sprintf("data: %v", ErrZoneInvalidated))
	}
	if len(z.chunks) == 0 || z.chunkOff+n > len(z.chunks[len(z.chunks)-1]) {
		words := sliceChunkWords
		if n > words {
			words = n
		}
		z.chunks = append(z.chunks, make([]uint32, words))
		z.chunkOff = 0
	}
	chunk := z.chunks[len(z.chunks)-1]
	out := chunk[z.chunkOff : z.chunkOff+n : z.chunkOff+n]
	z.chunkOff += n
	return out
}

// Invalidate marks the zone dead without releasing its storage. Records stay
// readable, but weak references into the zone now evaluate as absent and
// further allocation fails.
func (z *Zone) Invalidate() { z.invalid = true }

// Reset invalidates the zone and releases all of its storage at once. Any
// outstanding Ptr into the zone becomes dangling; dereferencing one afterwards
// is a caller error.
func (z *Zone) Reset() {
	z.invalid = true
	z.space.mu.Lock()
	for i, ok := z.pages.NextSet(0); ok; i, ok = z.pages.NextSet(i + 1) {
		page := z.space.pages[i]
		for s := range page.recs {
			page.recs[s] = nil
		}
	}
	z.space.mu.Unlock()
	z.current = nil
	z.chunks = nil
	z.chunkOff = 0
}

// PageCount returns the number of pages the zone has claimed.
func (z *Zone) PageCount() int { return int(z.pages.Count()) }
