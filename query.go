package silo

import "github.com/siloworks/silo/observer"

// QueryNode is one node of the query DAG the sparse-set storage strategy
// evaluates over (spec.md §4.5), grounded on
// original_source/src/SparseSet/Query.h's IQueryNode. Archetype-mode Views
// do not build this DAG — each candidate archetype's signature is tested
// against the queried component types directly — so QueryNode only appears behind
// sparse-set Worlds.
type QueryNode interface {
	// validEntities returns the entities currently satisfying this node, in
	// the node's canonical order.
	validEntities() []EntityID

	// hasEntity reports membership without materializing the full slice.
	hasEntity(e EntityID) bool

	// guaranteedComponents is the set of component types every entity
	// returned by validEntities is certain to carry, used by Query
	// construction to reject typed accessors the DAG cannot actually
	// guarantee (spec.md §4.5 construction-time check).
	guaranteedComponents() map[TypeKey]struct{}

	// changed fires whenever a structural change to this node (or any of
	// its children) may have altered validEntities's result.
	changed() *observer.Event
}

// leafQueryNode wraps a single component store, matching
// original_source's SparseSetNode<T>.
type leafQueryNode struct {
	store componentStore
}

func newLeafQueryNode(store componentStore) *leafQueryNode {
	return &leafQueryNode{store: store}
}

func (n *leafQueryNode) validEntities() []EntityID { return n.store.indices() }
func (n *leafQueryNode) hasEntity(e EntityID) bool { return n.store.hasEntity(e) }
func (n *leafQueryNode) guaranteedComponents() map[TypeKey]struct{} {
	return map[TypeKey]struct{}{n.store.typeKey(): {}}
}
func (n *leafQueryNode) changed() *observer.Event { return n.store.changed() }

// intersectionQueryNode is the AND combinator: an entity is valid only if
// every child considers it valid. Iterates the smallest child's
// validEntities for efficiency, matching original_source's IntersectionNode.
type intersectionQueryNode struct {
	children []QueryNode
	onChange observer.Event
}

func newIntersectionQueryNode(children ...QueryNode) *intersectionQueryNode {
	n := &intersectionQueryNode{children: children}
	for _, c := range children {
		c.changed().Subscribe(func() { n.onChange.Invoke() })
	}
	return n
}

func (n *intersectionQueryNode) smallestChild() QueryNode {
	if len(n.children) == 0 {
		return nil
	}
	smallest := n.children[0]
	smallestLen := len(smallest.validEntities())
	for _, c := range n.children[1:] {
		if l := len(c.validEntities()); l < smallestLen {
			smallest, smallestLen = c, l
		}
	}
	return smallest
}

func (n *intersectionQueryNode) validEntities() []EntityID {
	smallest := n.smallestChild()
	if smallest == nil {
		return nil
	}
	out := make([]EntityID, 0, len(smallest.validEntities()))
	for _, e := range smallest.validEntities() {
		if n.hasEntity(e) {
			out = append(out, e)
		}
	}
	return out
}

func (n *intersectionQueryNode) hasEntity(e EntityID) bool {
	for _, c := range n.children {
		if !c.hasEntity(e) {
			return false
		}
	}
	return true
}

func (n *intersectionQueryNode) guaranteedComponents() map[TypeKey]struct{} {
	out := map[TypeKey]struct{}{}
	for _, c := range n.children {
		for k := range c.guaranteedComponents() {
			out[k] = struct{}{}
		}
	}
	return out
}

func (n *intersectionQueryNode) changed() *observer.Event { return &n.onChange }

// differenceQueryNode is the A\B combinator: valid entities are those the
// main node considers valid and the exclusion node does not, matching
// original_source's DifferenceNode. It guarantees only main's components —
// exclusion's components are, by construction, absent.
type differenceQueryNode struct {
	main, exclusion QueryNode
	onChange        observer.Event
}

func newDifferenceQueryNode(main, exclusion QueryNode) *differenceQueryNode {
	n := &differenceQueryNode{main: main, exclusion: exclusion}
	main.changed().Subscribe(func() { n.onChange.Invoke() })
	exclusion.changed().Subscribe(func() { n.onChange.Invoke() })
	return n
}

func (n *differenceQueryNode) validEntities() []EntityID {
	all := n.main.validEntities()
	out := make([]EntityID, 0, len(all))
	for _, e := range all {
		if !n.exclusion.hasEntity(e) {
			out = append(out, e)
		}
	}
	return out
}

func (n *differenceQueryNode) hasEntity(e EntityID) bool {
	return n.main.hasEntity(e) && !n.exclusion.hasEntity(e)
}

func (n *differenceQueryNode) guaranteedComponents() map[TypeKey]struct{} {
	return n.main.guaranteedComponents()
}

func (n *differenceQueryNode) changed() *observer.Event { return &n.onChange }

// unionQueryNode is the OR combinator (spec.md §6 supplemented feature — not
// present in original_source, added because a query DAG with AND and
// DIFFERENCE but no OR cannot express "entities with A or B"). Its
// guaranteed components are the intersection of its children's guarantees:
// a type every branch already guarantees is still guaranteed no matter
// which branch admitted a given entity; a type only some branches guarantee
// is not safe to bind.
type unionQueryNode struct {
	children []QueryNode
	onChange observer.Event
}

func newUnionQueryNode(children ...QueryNode) *unionQueryNode {
	n := &unionQueryNode{children: children}
	for _, c := range children {
		c.changed().Subscribe(func() { n.onChange.Invoke() })
	}
	return n
}

func (n *unionQueryNode) validEntities() []EntityID {
	seen := map[EntityID]struct{}{}
	var out []EntityID
	for _, c := range n.children {
		for _, e := range c.validEntities() {
			if _, ok := seen[e]; !ok {
				seen[e] = struct{}{}
				out = append(out, e)
			}
		}
	}
	return out
}

func (n *unionQueryNode) hasEntity(e EntityID) bool {
	for _, c := range n.children {
		if c.hasEntity(e) {
			return true
		}
	}
	return false
}

func (n *unionQueryNode) guaranteedComponents() map[TypeKey]struct{} {
	if len(n.children) == 0 {
		return map[TypeKey]struct{}{}
	}
	out := map[TypeKey]struct{}{}
	for k := range n.children[0].guaranteedComponents() {
		out[k] = struct{}{}
	}
	for _, c := range n.children[1:] {
		g := c.guaranteedComponents()
		for k := range out {
			if _, ok := g[k]; !ok {
				delete(out, k)
			}
		}
	}
	return out
}

func (n *unionQueryNode) changed() *observer.Event { return &n.onChange }
