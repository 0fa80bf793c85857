package attrgraph

import (
	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/attrgraph/data"
)

// Subgraph groups related attributes over one zone. All nodes created here
// share the zone's lifetime: they stay live until the subgraph is closed and
// are then reclaimed in bulk.
type Subgraph struct {
	graph  *Graph
	zone   *data.Zone
	attrs  *roaring.Bitmap
	index  int
	logger *Logger
}

// NewSubgraph creates a subgraph with a fresh zone.
func (g *Graph) NewSubgraph() *Subgraph {
	sg := &Subgraph{
		graph: g,
		zone:  data.NewZone(),
		attrs: roaring.New(),
		index: len(g.subgraphs),
	}
	sg.zone.SetOwner(sg)
	sg.logger = g.logger.WithSubgraph(sg.index)
	g.subgraphs = append(g.subgraphs, sg)

	sg.logger.Debug("subgraph created")

	return sg
}

// Graph returns the owning graph.
func (s *Subgraph) Graph() *Graph { return s.graph }

// CreateAttribute allocates a direct node holding value and returns its
// reference.
func (s *Subgraph) CreateAttribute(typ *Type, value any) AttributeID {
	ptr := s.zone.Alloc(&Node{typ: typ, value: value})
	s.attrs.Add(ptr.Slot())
	return FromNode(ptr)
}

// IndirectOptions represents the options for creating an indirect node.
type IndirectOptions struct {
	// Mutable allows the node to be rebound after creation.
	Mutable bool

	// Weak marks an absent target as a normal outcome for traversals that
	// evaluate weak references.
	Weak bool

	// Size declares the byte size of the referenced value. Negative means
	// unknown.
	Size int

	// Dependency is the attribute to notify when a mutable node is rebound.
	Dependency AttributeID
}

// CreateIndirect allocates an indirect node designating target and returns
// its reference.
func (s *Subgraph) CreateIndirect(target AttributeID, optFns ...func(o *IndirectOptions)) AttributeID {
	opts := IndirectOptions{
		Size:       -1,
		Dependency: NilAttribute,
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.Dependency.IsValid() && !opts.Mutable {
		panic("attrgraph: dependency set on immutable indirect node")
	}

	node := &IndirectNode{
		target:     target,
		dependency: opts.Dependency,
		mutable:    opts.Mutable,
		weak:       opts.Weak,
		byteSize:   opts.Size,
	}

	ptr := s.zone.Alloc(node)
	s.attrs.Add(ptr.Slot())
	return FromIndirectNode(ptr)
}

// Contains reports whether the attribute was created in this subgraph.
func (s *Subgraph) Contains(a AttributeID) bool {
	if a.IsNil() || a == 0 {
		return false
	}
	return s.attrs.Contains(a.Ptr().Slot())
}

// AttributeCount returns the number of attributes created here.
func (s *Subgraph) AttributeCount() uint64 { return s.attrs.GetCardinality() }

// IsInvalidated reports whether the subgraph has been invalidated or closed.
func (s *Subgraph) IsInvalidated() bool { return s.zone.IsInvalidated() }

// Invalidate marks the subgraph dead without releasing storage. Weak
// references into it evaluate as absent from now on.
func (s *Subgraph) Invalidate() {
	s.zone.Invalidate()
	s.graph.notifyInvalidated(s)
	s.logger.Debug("subgraph invalidated")
}

// Close invalidates the subgraph and releases its zone in bulk. References
// into a closed subgraph must no longer be resolved.
func (s *Subgraph) Close() {
	s.graph.notifyInvalidated(s)
	s.zone.Reset()
	s.logger.Debug("subgraph closed", "attributes", s.attrs.GetCardinality())
}
