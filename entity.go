package silo

import "container/heap"

// EntityID is the opaque integer identity the World mints for each entity
// (spec.md §3). It carries no data of its own.
type EntityID uint64

// EntityDestroyCallback is registered on a parent entity through SetParent
// and is invoked, with the parent's ID, when that parent entity is deleted
// (spec.md §6 supplemented relationship feature, grounded in the teacher's
// entity.go).
type EntityDestroyCallback func(EntityID)

// entityIDHeap is a min-heap of freed EntityIDs, the Go idiom for the same
// "always take the smallest available" behavior original_source gets for
// free from std::set::begin() on availableEntityIDs.
type entityIDHeap []EntityID

func (h entityIDHeap) Len() int            { return len(h) }
func (h entityIDHeap) Less(i, j int) bool  { return h[i] < h[j] }
func (h entityIDHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *entityIDHeap) Push(x interface{}) { *h = append(*h, x.(EntityID)) }
func (h *entityIDHeap) Pop() interface{} {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// entityRegistry is the ID-allocation and parent/child bookkeeping shared by
// both World implementations. original_source duplicates CreateEntity,
// DeleteEntity, and IsEntityRegistered verbatim between
// Archetype/World.cpp and SparseSet/World.cpp; this module factors the
// duplicate out once via composition, matching spec.md §3's identical
// Lifecycle table for both storage strategies.
type entityRegistry struct {
	nextID    EntityID
	available entityIDHeap
	freed     map[EntityID]struct{}

	parent    map[EntityID]EntityID
	onDestroy map[EntityID]EntityDestroyCallback
}

func newEntityRegistry() entityRegistry {
	return entityRegistry{
		freed:     make(map[EntityID]struct{}),
		parent:    make(map[EntityID]EntityID),
		onDestroy: make(map[EntityID]EntityDestroyCallback),
	}
}

// create returns a recycled ID if one is available (smallest first), else
// extends the monotonic counter.
func (r *entityRegistry) create() EntityID {
	if len(r.available) > 0 {
		id := heap.Pop(&r.available).(EntityID)
		delete(r.freed, id)
		return id
	}
	id := r.nextID
	r.nextID++
	return id
}

// release frees id for reuse, clears its relationships, and returns the
// destroy callback registered on id as a parent (if any) so the caller can
// invoke it. Both World implementations invoke it after id's components
// have been removed from storage.
func (r *entityRegistry) release(id EntityID) EntityDestroyCallback {
	cb := r.onDestroy[id]
	delete(r.onDestroy, id)
	delete(r.parent, id)

	heap.Push(&r.available, id)
	r.freed[id] = struct{}{}
	return cb
}

func (r *entityRegistry) isRegistered(id EntityID) bool {
	if id >= r.nextID {
		return false
	}
	_, freed := r.freed[id]
	return !freed
}

// setParent records that child's destroy callback belongs to parent. Fails
// if child already has a parent (spec.md §6 / errors.go EntityRelationError).
func (r *entityRegistry) setParent(child, parent EntityID, callback EntityDestroyCallback) error {
	if existing, ok := r.parent[child]; ok {
		return EntityRelationError{Child: child, Parent: existing}
	}
	r.parent[child] = parent
	r.onDestroy[parent] = callback
	return nil
}
