package table

import (
	"hash/maphash"

	"github.com/hupe1980/attrgraph/data"
)

const (
	// initialMaskWidth yields 16 buckets on first insert.
	initialMaskWidth = 4
	// maxMaskWidth caps bucket growth at 2^30 buckets. Past the cap, chains
	// lengthen instead of the table growing further.
	maxMaskWidth = 30
)

// Options configures a Table.
type Options[K comparable, V any] struct {
	// Hash overrides the default seeded identity hash.
	Hash func(K) uint64

	// Equal overrides direct key comparison. Setting it switches the table
	// from identity matching to stored-hash-plus-callback matching.
	Equal func(K, K) bool

	// DidRemoveKey is invoked with the stored key whenever an entry is
	// removed, replaced, or torn down with the table.
	DidRemoveKey func(K)

	// DidRemoveValue is the value counterpart of DidRemoveKey.
	DidRemoveValue func(V)

	// Zone supplies an externally owned allocation zone. The table will not
	// reset it on Close; without one the table lazily creates a private zone.
	Zone *data.Zone
}

type entry[K comparable, V any] struct {
	key   K
	value V
	hash  uint64
	next  uint32
}

// Table is a chaining hash table with index-linked entries.
// The zero value is not usable; construct with New.
type Table[K comparable, V any] struct {
	hash           func(K) uint64
	equal          func(K, K) bool
	didRemoveKey   func(K)
	didRemoveValue func(V)

	zone     *data.Zone
	ownsZone bool

	buckets   []uint32
	entries   []entry[K, V]
	spare     uint32
	count     int
	mask      uint64
	maskWidth uint32
	identity  bool
}

// New creates a table. Without options it hashes by key identity, compares
// with ==, and owns a private zone created on first insert.
func New[K comparable, V any](optFns ...func(o *Options[K, V])) *Table[K, V] {
	opts := Options[K, V]{}

	for _, fn := range optFns {
		fn(&opts)
	}

	t := &Table[K, V]{
		hash:           opts.Hash,
		equal:          opts.Equal,
		didRemoveKey:   opts.DidRemoveKey,
		didRemoveValue: opts.DidRemoveValue,
		zone:           opts.Zone,
		ownsZone:       opts.Zone == nil,
		identity:       opts.Equal == nil,
	}

	if t.hash == nil {
		seed := maphash.MakeSeed()
		t.hash = func(key K) uint64 { return maphash.Comparable(seed, key) }
	}
	if t.equal == nil {
		t.equal = func(a, b K) bool { return a == b }
	}

	return t
}

// Len returns the number of live entries.
func (t *Table[K, V]) Len() int { return t.count }

// Lookup returns the value stored under key.
func (t *Table[K, V]) Lookup(key K) (V, bool) {
	_, v, ok := t.LookupEntry(key)
	return v, ok
}

// LookupEntry returns the stored key and value for key. The returned key is
// the canonical instance held by the table, which may differ from the probe
// key when a custom equality function is in use.
func (t *Table[K, V]) LookupEntry(key K) (K, V, bool) {
	var zeroK K
	var zeroV V
	if t.count == 0 {
		return zeroK, zeroV, false
	}

	h := t.hash(key)
	i := t.buckets[h&t.mask]

	if t.identity {
		for ; i != 0; i = t.entries[i].next {
			if t.entries[i].key == key {
				return t.entries[i].key, t.entries[i].value, true
			}
		}
	} else {
		for ; i != 0; i = t.entries[i].next {
			if t.entries[i].hash == h && t.equal(t.entries[i].key, key) {
				return t.entries[i].key, t.entries[i].value, true
			}
		}
	}

	return zeroK, zeroV, false
}

// Insert stores value under key. An existing entry with an equal key is
// replaced in place, its old key and value handed to the removal callbacks
// first; the chain position is preserved. Returns true for a fresh insertion
// and false for a replacement.
func (t *Table[K, V]) Insert(key K, value V) bool {
	if t.buckets == nil {
		t.createBuckets()
	}

	h := t.hash(key)

	for i := t.buckets[h&t.mask]; i != 0; i = t.entries[i].next {
		e := &t.entries[i]
		if e.hash == h && t.equal(e.key, key) {
			if t.didRemoveKey != nil {
				t.didRemoveKey(e.key)
			}
			if t.didRemoveValue != nil {
				t.didRemoveValue(e.value)
			}
			e.key = key
			e.value = value
			return false
		}
	}

	if t.count+1 > 4<<t.maskWidth {
		t.growBuckets()
	}

	i := t.spare
	if i != 0 {
		t.spare = t.entries[i].next
	} else {
		t.entries = append(t.entries, entry[K, V]{})
		i = uint32(len(t.entries) - 1)
	}

	e := &t.entries[i]
	e.key = key
	e.value = value
	e.hash = h

	bucket := h & t.mask
	e.next = t.buckets[bucket]
	t.buckets[bucket] = i

	t.count++

	return true
}

// Remove deletes the entry stored under key, invoking the removal callbacks
// and recycling the entry through the free list. Returns false when no entry
// matched.
func (t *Table[K, V]) Remove(key K) bool {
	if t.count == 0 {
		return false
	}

	h := t.hash(key)
	bucket := h & t.mask
	prev := uint32(0)

	for i := t.buckets[bucket]; i != 0; i = t.entries[i].next {
		e := &t.entries[i]

		var match bool
		if t.identity {
			match = e.key == key
		} else {
			match = e.hash == h && t.equal(e.key, key)
		}

		if match {
			if prev == 0 {
				t.buckets[bucket] = e.next
			} else {
				t.entries[prev].next = e.next
			}
			if t.didRemoveKey != nil {
				t.didRemoveKey(e.key)
			}
			if t.didRemoveValue != nil {
				t.didRemoveValue(e.value)
			}
			var zeroK K
			var zeroV V
			e.key = zeroK
			e.value = zeroV
			e.next = t.spare
			t.spare = i
			t.count--
			return true
		}

		prev = i
	}

	return false
}

// ForEach visits every live entry, bucket by bucket and most recently
// inserted first within a chain. The table must not be mutated during
// iteration.
func (t *Table[K, V]) ForEach(visit func(key K, value V)) {
	if t.count == 0 {
		return
	}
	for b := range t.buckets {
		for i := t.buckets[b]; i != 0; i = t.entries[i].next {
			visit(t.entries[i].key, t.entries[i].value)
		}
	}
}

// Close tears the table down. Removal callbacks run once per live entry, key
// before value. A privately owned zone is reset; an externally supplied zone
// is left untouched.
func (t *Table[K, V]) Close() {
	if (t.didRemoveKey != nil || t.didRemoveValue != nil) && t.count > 0 {
		t.ForEach(func(key K, value V) {
			if t.didRemoveKey != nil {
				t.didRemoveKey(key)
			}
			if t.didRemoveValue != nil {
				t.didRemoveValue(value)
			}
		})
	}
	if t.ownsZone && t.zone != nil {
		t.zone.Reset()
		t.zone = nil
	}
	t.buckets = nil
	t.entries = nil
	t.spare = 0
	t.count = 0
	t.mask = 0
	t.maskWidth = 0
}

// createBuckets performs the lazy first allocation: an empty table holds no
// zone memory at all.
func (t *Table[K, V]) createBuckets() {
	if t.zone == nil {
		t.zone = data.NewZone()
	}
	t.maskWidth = initialMaskWidth
	t.mask = 1<<initialMaskWidth - 1
	t.buckets = t.zone.AllocUint32Slice(1 << initialMaskWidth)
	// entry index 0 is the nil link
	t.entries = make([]entry[K, V], 1, 1<<initialMaskWidth)
}

// growBuckets doubles the bucket array and relinks every entry into it.
// Entries are never copied, only their chain links change. The old array is
// abandoned to the zone.
func (t *Table[K, V]) growBuckets() {
	if t.maskWidth >= maxMaskWidth {
		return
	}

	t.maskWidth++
	t.mask = 1<<t.maskWidth - 1

	oldBuckets := t.buckets
	newBuckets := t.zone.AllocUint32Slice(1 << t.maskWidth)

	for b := range oldBuckets {
		i := oldBuckets[b]
		for i != 0 {
			next := t.entries[i].next
			bucket := t.entries[i].hash & t.mask
			t.entries[i].next = newBuckets[bucket]
			newBuckets[bucket] = i
			i = next
		}
	}

	t.buckets = newBuckets
}
