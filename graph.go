package attrgraph

import (
	"github.com/hupe1980/attrgraph/internal/hash"
	"github.com/hupe1980/attrgraph/table"
)

// DependencyTracker receives one callback per indirect hop taken by a
// traversal running with TraversalUpdateDependencies. The evaluation
// scheduler installs its edge bookkeeping here.
type DependencyTracker interface {
	UpdateDependency(indirect AttributeID)
}

// Options represents the options for configuring a Graph.
type Options struct {
	// Logger receives subgraph lifecycle events. Defaults to a no-op logger.
	Logger *Logger

	// DependencyTracker is invoked during traversals that update
	// dependencies. Optional.
	DependencyTracker DependencyTracker
}

// Graph owns subgraphs and the graph-wide type descriptor intern table. The
// propagation scheduler that walks dependency edges lives above this layer;
// the graph only provides identity and storage.
type Graph struct {
	logger    *Logger
	deps      DependencyTracker
	subgraphs []*Subgraph
	types     *table.Table[string, *Type]
	observers *table.Table[AttributeID, func()]
}

// New creates an empty graph.
func New(optFns ...func(o *Options)) *Graph {
	opts := Options{
		Logger: NoopLogger(),
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &Graph{
		logger: opts.Logger,
		deps:   opts.DependencyTracker,
		types: table.New[string, *Type](func(o *table.Options[string, *Type]) {
			o.Hash = hash.String
			o.Equal = func(a, b string) bool { return a == b }
		}),
		// References are handles, so the registry hashes the raw bits and
		// keeps the identity compare path.
		observers: table.New[AttributeID, func()](func(o *table.Options[AttributeID, func()]) {
			o.Hash = func(a AttributeID) uint64 { return hash.Mix64(uint64(a)) }
		}),
	}
}

// SetDependencyTracker installs or replaces the dependency tracker.
func (g *Graph) SetDependencyTracker(deps DependencyTracker) { g.deps = deps }

// Intern returns the canonical type descriptor for name, creating it on
// first use. Descriptors are canonical per graph, so they compare by
// identity. The size recorded at first intern wins.
func (g *Graph) Intern(name string, byteSize int) *Type {
	if typ, ok := g.types.Lookup(name); ok {
		return typ
	}
	typ := NewType(name, byteSize)
	g.types.Insert(name, typ)
	return typ
}

// Observe registers fn to run once when a's subgraph is invalidated or
// closed. Observing an attribute again replaces its callback.
func (g *Graph) Observe(a AttributeID, fn func()) {
	if !a.IsValid() {
		panic("attrgraph: observe on invalid attribute")
	}
	g.observers.Insert(a, fn)
}

// Unobserve drops the callback registered for a, reporting whether one was
// present.
func (g *Graph) Unobserve(a AttributeID) bool { return g.observers.Remove(a) }

// notifyInvalidated fires and drops the observers of every attribute owned
// by s. Callbacks run after the removal so they can re-observe.
func (g *Graph) notifyInvalidated(s *Subgraph) {
	if g.observers.Len() == 0 {
		return
	}

	var ids []AttributeID
	var fns []func()
	g.observers.ForEach(func(a AttributeID, fn func()) {
		if s.Contains(a) {
			ids = append(ids, a)
			fns = append(fns, fn)
		}
	})

	for i, a := range ids {
		g.observers.Remove(a)
		fns[i]()
	}
}

// Subgraphs returns all subgraphs created on this graph, including
// invalidated ones.
func (g *Graph) Subgraphs() []*Subgraph { return g.subgraphs }

// Close tears down every subgraph and the intern table.
func (g *Graph) Close() {
	for _, sg := range g.subgraphs {
		if !sg.zone.IsInvalidated() {
			sg.Close()
		}
	}
	g.types.Close()
	g.observers.Close()
}
