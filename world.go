package silo

import "fmt"

// World is the authoritative registry of entities and owner of storages
// (spec.md §4.4). Both storage strategies — archetypeWorld and sparseWorld —
// implement it, so the query engine and the scheduler are written once
// against the interface and work unmodified against either storage strategy
// (spec.md §1's "invariants that make them interchangeable at the
// behavioral level").
type World interface {
	// CreateEntity returns a recycled ID if one is available, else extends
	// the monotonic counter. The entity exists, componentless, from this
	// call onward.
	CreateEntity() EntityID

	// CreateEntities creates n componentless entities in one call (spec.md
	// §6 supplemented batch-creation feature).
	CreateEntities(n int) []EntityID

	// DeleteEntity removes e from every storage that holds a component for
	// it and frees its ID for reuse. Fails with EntityNotRegisteredError if
	// e is not registered.
	DeleteEntity(e EntityID) error

	// IsRegistered reports whether e is live: minted and not yet deleted.
	IsRegistered(e EntityID) bool

	// SetParent records parent as child's parent and registers callback as
	// parent's destroy callback (see entityRegistry.setParent). DeleteEntity
	// on parent invokes callback with parent's ID, after parent's components
	// have been removed from storage. Fails with EntityRelationError if child
	// already has a parent. Matches the teacher's entity.go semantics:
	// SetParent(parent, cb) on the child registers cb as parent's destroy
	// callback.
	SetParent(child, parent EntityID, callback EntityDestroyCallback) error

	// entities returns the implementation's entity registry, for use by the
	// generic Component[T] helper functions that need to type-switch to the
	// concrete World.
	entities() *entityRegistry

	// generation returns a counter bumped on every structural change
	// (entity creation/deletion, component add/remove). ViewCache uses it
	// to invalidate memoized view results without subscribing to every
	// individual component store's change event (spec.md §6 cache feature).
	generation() uint64
}

// componentTypeName is a small helper so errors can name a type without
// every call site importing reflect.
func componentTypeName[C Component]() string {
	return fmt.Sprintf("%T", *new(C))
}
