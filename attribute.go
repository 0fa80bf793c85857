package attrgraph

import (
	"fmt"

	"github.com/hupe1980/attrgraph/data"
)

// Kind classifies what an AttributeID designates.
type Kind uint32

const (
	// KindDirect designates a directly stored Node.
	KindDirect Kind = 0
	// KindIndirect designates an IndirectNode.
	KindIndirect Kind = 1
	// KindNil designates nothing.
	KindNil Kind = 2
)

const kindMask = 0x3

// String returns the kind's name.
func (k Kind) String() string {
	switch k {
	case KindDirect:
		return "direct"
	case KindIndirect:
		return "indirect"
	case KindNil:
		return "nil"
	default:
		return fmt.Sprintf("Kind(%d)", uint32(k))
	}
}

// AttributeID identifies an attribute: a data.Ptr with the kind packed into
// its two reserved low bits. It is a single word, so copying and comparing
// are free and the engine passes it everywhere by value.
type AttributeID uint32

// NilAttribute is the singleton identifier that designates no attribute.
const NilAttribute = AttributeID(KindNil)

// FromNode tags a node handle as a direct attribute reference.
func FromNode(p data.Ptr) AttributeID {
	return AttributeID(p) | AttributeID(KindDirect)
}

// FromIndirectNode tags an indirect-node handle as an indirect reference.
func FromIndirectNode(p data.Ptr) AttributeID {
	return AttributeID(p) | AttributeID(KindIndirect)
}

// Kind returns the reference's kind tag.
func (a AttributeID) Kind() Kind { return Kind(a & kindMask) }

// WithKind returns a copy with the kind tag replaced and the handle bits
// untouched. It reinterprets the same backing record under another kind
// without reallocating.
func (a AttributeID) WithKind(k Kind) AttributeID {
	return a&^kindMask | AttributeID(k)
}

// IsDirect reports whether the reference designates a Node.
func (a AttributeID) IsDirect() bool { return a.Kind() == KindDirect }

// IsIndirect reports whether the reference designates an IndirectNode.
func (a AttributeID) IsIndirect() bool { return a.Kind() == KindIndirect }

// IsNil reports whether the reference designates nothing.
func (a AttributeID) IsNil() bool { return a.Kind() == KindNil }

// IsValid reports whether the reference designates some attribute.
func (a AttributeID) IsValid() bool { return !a.IsNil() && a != 0 }

// Ptr returns the untagged storage handle.
func (a AttributeID) Ptr() data.Ptr { return data.Ptr(a &^ kindMask) }

// ToNode dereferences a direct reference. Calling it on any other kind is a
// contract violation.
func (a AttributeID) ToNode() *Node {
	if !a.IsDirect() {
		panic(fmt.Sprintf("attrgraph: ToNode on %s attribute", a.Kind()))
	}
	return data.SharedSpace().Record(a.Ptr()).(*Node)
}

// ToIndirectNode dereferences an indirect reference. Calling it on any other
// kind is a contract violation.
func (a AttributeID) ToIndirectNode() *IndirectNode {
	if !a.IsIndirect() {
		panic(fmt.Sprintf("attrgraph: ToIndirectNode on %s attribute", a.Kind()))
	}
	return data.SharedSpace().Record(a.Ptr()).(*IndirectNode)
}

// Subgraph returns the subgraph owning the referenced node, recovered
// through the page table of the shared space. Nil references own nothing.
func (a AttributeID) Subgraph() *Subgraph {
	if a.IsNil() || a == 0 {
		return nil
	}
	page := data.SharedSpace().PageOf(a.Ptr())
	if page == nil || page.Zone() == nil {
		return nil
	}
	sg, _ := page.Zone().Owner().(*Subgraph)
	return sg
}

// Size returns the byte size of the referenced value when it is statically
// knowable for this kind of node.
func (a AttributeID) Size() (int, bool) {
	switch a.Kind() {
	case KindDirect:
		return a.ToNode().Type().ValueSize()
	case KindIndirect:
		return a.ToIndirectNode().Size()
	default:
		return 0, false
	}
}

// String returns a debug representation.
func (a AttributeID) String() string {
	if a.IsNil() {
		return "nil"
	}
	return fmt.Sprintf("%s:%s", a.Kind(), a.Ptr())
}
