// Package hash provides the hash functions used by attribute bookkeeping
// tables.
//
// Mix64 is a finalizer-style bit mixer suited to handle-shaped keys whose
// entropy sits in a few low bits. String is the classic multiply-by-33 string
// hash. Both are cheap, deterministic, and allocation-free, which matters on
// the lookup hot path.
package hash
