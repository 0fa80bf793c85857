// Package table implements the chaining hash table used for identity-keyed
// graph bookkeeping (visited sets, observer registries, interning).
//
// Entries live in an index-addressed slab and chains are linked by entry
// index, not pointer, so the table never hands the garbage collector a web of
// small objects. Bucket arrays come from a data.Zone; removed entries are
// recycled through a free list and only returned to the allocator when the
// whole table is closed.
//
// The comparison strategy is fixed at construction: with no custom equality
// function the table compares keys directly and ignores the stored hash, the
// fast path for handle-shaped keys. Supplying an equality function switches
// every probe to a stored-hash check followed by the callback.
package table
