package attrgraph

// Type describes the value type of an attribute. Types are interned per
// graph so that descriptor pointers can be compared by identity.
type Type struct {
	name     string
	byteSize int
}

// NewType creates a descriptor. Pass a negative size when the value size is
// not statically known.
func NewType(name string, byteSize int) *Type {
	return &Type{name: name, byteSize: byteSize}
}

// Name returns the type's name.
func (t *Type) Name() string { return t.name }

// ValueSize returns the byte size of values of this type, if known.
func (t *Type) ValueSize() (int, bool) {
	if t == nil || t.byteSize < 0 {
		return 0, false
	}
	return t.byteSize, true
}

// Node is a directly stored attribute: a value slot plus its type
// descriptor. Nodes live in their subgraph's zone and are only ever reached
// through an AttributeID.
type Node struct {
	typ   *Type
	value any
}

// Type returns the node's value type descriptor.
func (n *Node) Type() *Type { return n.typ }

// Value returns the node's current value.
func (n *Node) Value() any { return n.value }

// SetValue replaces the node's value. Propagating the change to dependents
// is the scheduler's job, not this layer's.
func (n *Node) SetValue(value any) { n.value = value }

// IndirectNode is a rebindable reference node. It designates a current
// target attribute and may be rebound by the graph at any time; outstanding
// AttributeIDs naming the indirect node stay valid across rebinding.
type IndirectNode struct {
	target     AttributeID
	dependency AttributeID
	mutable    bool
	weak       bool
	byteSize   int
}

// Target returns the attribute the node currently designates.
func (n *IndirectNode) Target() AttributeID { return n.target }

// IsMutable reports whether the node may be rebound after creation.
func (n *IndirectNode) IsMutable() bool { return n.mutable }

// IsWeak reports whether an absent target is a normal outcome for this node
// rather than a contract violation.
func (n *IndirectNode) IsWeak() bool { return n.weak }

// Size returns the declared byte size of the referenced value, if one was
// declared at creation.
func (n *IndirectNode) Size() (int, bool) {
	if n.byteSize < 0 {
		return 0, false
	}
	return n.byteSize, true
}

// Dependency returns the attribute registered to be invalidated when this
// node is rebound, or NilAttribute.
func (n *IndirectNode) Dependency() AttributeID { return n.dependency }

// SetDependency registers the attribute to notify on rebinding. Only mutable
// nodes carry a dependency.
func (n *IndirectNode) SetDependency(dep AttributeID) {
	if !n.mutable {
		panic("attrgraph: dependency set on immutable indirect node")
	}
	n.dependency = dep
}

// Rebind redirects the node at a new target. Rebinding an immutable node is
// a contract violation.
func (n *IndirectNode) Rebind(target AttributeID) {
	if !n.mutable {
		panic("attrgraph: rebind of immutable indirect node")
	}
	n.target = target
}
