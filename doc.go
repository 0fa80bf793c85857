// Package attrgraph provides the identity and lookup core of an incremental
// dependency-graph engine.
//
// Values are modeled as graph nodes called attributes. An AttributeID is a
// compact tagged handle that designates either a directly stored node, an
// indirect node whose target can be rebound at runtime, or nothing at all.
// Because the handle is a single 32-bit word it is free to copy and compare,
// and resolving it to the node it currently designates is a short, bounded
// walk over the indirection chain.
//
// # Attributes and resolution
//
// Attributes are created inside a Subgraph, which owns their backing storage:
//
//	g := attrgraph.New()
//	sg := g.NewSubgraph()
//
//	direct := sg.CreateAttribute(g.Intern("Point", 16), pt)
//	alias := sg.CreateIndirect(direct)
//
//	res := alias.Resolve(attrgraph.TraversalNone)
//	// res.ID == direct
//
// Resolve accepts an OR-combinable option set controlling dependency
// registration, nil assertions, mutable-reference handling, weak-reference
// collapse, and hop reporting. See TraversalOptions.
//
// # Bookkeeping tables
//
// The table subpackage provides the arena-backed associative table used for
// identity-keyed bookkeeping throughout the engine; the data subpackage
// provides the paged zone allocator that backs both node storage and table
// buckets.
//
// The package is not internally synchronized. Graph mutation is expected to
// be serialized by an external evaluation scheduler.
package attrgraph
