package data

import (
	"fmt"
	"sync"
)

const (
	// pageShift determines the number of record slots per page.
	pageShift = 7
	// pageSlots is the number of record slots in a single page.
	pageSlots = 1 << pageShift
	pageMask  = pageSlots - 1

	// maxPages bounds the shared space. Together with pageShift this keeps
	// every slot index within the 30 bits a Ptr can address.
	maxPages = 1 << 23
)

// Page is a fixed-size run of record slots owned by a single zone.
type Page struct {
	index uint32
	zone  *Zone
	recs  []any
}

// Index returns the page's position in the shared space.
func (p *Page) Index() uint32 { return p.index }

// Zone returns the zone that owns this page, or nil for the reserved page.
func (p *Page) Zone() *Zone { return p.zone }

// Space is the process-shared paged record region. All zones allocate their
// pages from the same space, which is what lets a bare Ptr be mapped back to
// its owning zone.
type Space struct {
	mu    sync.Mutex
	pages []*Page
}

var (
	sharedOnce  sync.Once
	sharedSpace *Space
)

// SharedSpace returns the process-wide record space. The first page is
// reserved so that the null Ptr never resolves to a live record.
func SharedSpace() *Space {
	sharedOnce.Do(func() {
		reserved := &Page{index: 0, recs: make([]any, pageSlots)}
		sharedSpace = &Space{pages: []*Page{reserved}}
	})
	return sharedSpace
}

// Record returns the record stored at p. Dereferencing the null handle or a
// handle that was never allocated is a contract violation.
func (s *Space) Record(p Ptr) any {
	if p.IsNull() {
		panic("data: dereference of null pointer")
	}
	page := s.PageOf(p)
	if page == nil {
		panic(fmt.Sprintf("data: dereference of unmapped pointer %s", p))
	}
	return page.recs[p.pageSlot()]
}

// PageOf returns the page containing p, or nil if p lies outside the space.
func (s *Space) PageOf(p Ptr) *Page {
	idx := p.pageIndex()
	s.mu.Lock()
	defer s.mu.Unlock()
	if idx >= uint32(len(s.pages)) {
		return nil
	}
	return s.pages[idx]
}

// allocPage appends a fresh page owned by z.
func (s *Space) allocPage(z *Zone) (*Page, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.pages) >= maxPages {
		return nil, ErrSpaceExhausted
	}
	page := &Page{
		index: uint32(len(s.pages)),
		zone:  z,
		recs:  make([]any, 0, pageSlots),
	}
	s.pages = append(s.pages, page)
	return page, nil
}
