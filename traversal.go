package attrgraph

import "fmt"

// TraversalOptions is an OR-combinable set of flags controlling resolution.
type TraversalOptions uint32

const (
	// TraversalNone resolves with default behavior.
	TraversalNone TraversalOptions = 0

	// TraversalUpdateDependencies registers the evaluation context as a
	// dependent of every indirect node before it is followed, so a later
	// rebinding invalidates the dependent. Registration happens exactly
	// once per indirect hop.
	TraversalUpdateDependencies TraversalOptions = 1 << 0

	// TraversalAssertNotNil guarantees the resolved attribute is not nil,
	// otherwise traps. A nil dependency here is always an upstream
	// bookkeeping bug, never a transient condition.
	TraversalAssertNotNil TraversalOptions = 1 << 1

	// TraversalSkipMutableReference stops traversal at any mutable indirect
	// node instead of forcing dynamic resolution. The returned attribute
	// may therefore be a mutable indirect node.
	TraversalSkipMutableReference TraversalOptions = 1 << 2

	// TraversalReportIndirectionInOffset makes the returned offset count
	// the indirections collapsed; it stays 0 when the start was already
	// direct or nil.
	TraversalReportIndirectionInOffset TraversalOptions = 1 << 3

	// TraversalEvaluateWeakReferences, when TraversalAssertNotNil is not
	// also set, resolves to the nil attribute whenever a weak reference
	// evaluates to an absent target.
	TraversalEvaluateWeakReferences TraversalOptions = 1 << 4
)

// maxResolveHops bounds an indirection walk. Chains anywhere near this long
// mean corrupted graph state, not a deep but healthy graph.
const maxResolveHops = 1024

// OffsetAttributeID is a resolved reference: the terminal attribute plus the
// number of indirection hops collapsed to reach it.
type OffsetAttributeID struct {
	ID     AttributeID
	Offset uint32
}

// Resolve follows indirections from a until it reaches the attribute the
// reference currently designates, as directed by opts.
func (a AttributeID) Resolve(opts TraversalOptions) OffsetAttributeID {
	// Fast path for the two terminal kinds.
	switch a.Kind() {
	case KindDirect:
		return OffsetAttributeID{ID: a}
	case KindNil:
		if opts&TraversalAssertNotNil != 0 {
			panic("attrgraph: resolved nil attribute")
		}
		return OffsetAttributeID{ID: NilAttribute}
	}
	return a.ResolveSlow(opts)
}

// ResolveSlow is Resolve's uncommon path. It is a separate entry point so
// call sites with an inline cache can keep their hot path small; results are
// identical to Resolve for identical inputs.
func (a AttributeID) ResolveSlow(opts TraversalOptions) OffsetAttributeID {
	current := a
	hops := uint32(0)

	for {
		switch current.Kind() {
		case KindNil:
			if opts&TraversalAssertNotNil != 0 {
				panic("attrgraph: resolved nil attribute")
			}
			return OffsetAttributeID{ID: NilAttribute, Offset: reportedOffset(opts, hops)}

		case KindDirect:
			return OffsetAttributeID{ID: current, Offset: reportedOffset(opts, hops)}

		case KindIndirect:
			node := current.ToIndirectNode()

			if node.mutable && opts&TraversalSkipMutableReference != 0 {
				return OffsetAttributeID{ID: current, Offset: reportedOffset(opts, hops)}
			}

			if opts&TraversalUpdateDependencies != 0 {
				updateDependency(current)
			}

			target := node.target
			if node.weak &&
				opts&TraversalEvaluateWeakReferences != 0 &&
				opts&TraversalAssertNotNil == 0 &&
				weakTargetAbsent(target) {
				// The weak node itself is not followed, so it does not
				// count toward the offset.
				return OffsetAttributeID{ID: NilAttribute, Offset: reportedOffset(opts, hops)}
			}

			hops++
			if hops > maxResolveHops {
				panic(fmt.Sprintf("attrgraph: indirection chain exceeds %d hops", maxResolveHops))
			}
			current = target

		default:
			panic(fmt.Sprintf("attrgraph: invalid attribute kind %d", current.Kind()))
		}
	}
}

// Traverses reports whether resolving a under opts reaches other. It walks
// the same chain as Resolve but short-circuits on the first match instead of
// materializing an offset.
func (a AttributeID) Traverses(other AttributeID, opts TraversalOptions) bool {
	current := a
	hops := uint32(0)

	for {
		if current == other {
			return true
		}

		switch current.Kind() {
		case KindNil:
			if opts&TraversalAssertNotNil != 0 {
				panic("attrgraph: resolved nil attribute")
			}
			return false

		case KindDirect:
			return false

		case KindIndirect:
			node := current.ToIndirectNode()

			if node.mutable && opts&TraversalSkipMutableReference != 0 {
				return false
			}

			if opts&TraversalUpdateDependencies != 0 {
				updateDependency(current)
			}

			target := node.target
			if node.weak &&
				opts&TraversalEvaluateWeakReferences != 0 &&
				opts&TraversalAssertNotNil == 0 &&
				weakTargetAbsent(target) {
				return other.IsNil()
			}

			hops++
			if hops > maxResolveHops {
				panic(fmt.Sprintf("attrgraph: indirection chain exceeds %d hops", maxResolveHops))
			}
			current = target

		default:
			panic(fmt.Sprintf("attrgraph: invalid attribute kind %d", current.Kind()))
		}
	}
}

// reportedOffset encodes the hop count for the caller: zero unless reporting
// was requested and at least one indirection was collapsed.
func reportedOffset(opts TraversalOptions, hops uint32) uint32 {
	if opts&TraversalReportIndirectionInOffset == 0 || hops == 0 {
		return 0
	}
	return hops
}

// updateDependency routes a hop through the graph's dependency tracker, when
// one is installed.
func updateDependency(indirect AttributeID) {
	sg := indirect.Subgraph()
	if sg == nil || sg.graph == nil || sg.graph.deps == nil {
		return
	}
	sg.graph.deps.UpdateDependency(indirect)
}

// weakTargetAbsent reports whether a weak target no longer designates a live
// node: either it is nil or its zone has been invalidated.
func weakTargetAbsent(target AttributeID) bool {
	if target.IsNil() || target == 0 {
		return true
	}
	sg := target.Subgraph()
	return sg != nil && sg.zone.IsInvalidated()
}
