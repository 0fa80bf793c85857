// Package data provides the paged record space that backs attribute storage.
//
// All records live in a single process-shared Space divided into fixed-size
// pages. Each page is owned by exactly one Zone, and each Zone belongs to one
// owner (typically a subgraph). Records are addressed by Ptr handles rather
// than raw pointers; the low two bits of every handle are zero so that higher
// layers can pack a kind tag into them.
//
// Zones are bump allocators: individual records are never freed, the whole
// zone is reclaimed at once via Reset. This gives cheap allocation, good
// locality for records created together, and O(1) bulk teardown.
package data
