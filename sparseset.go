package silo

import (
	"math"

	"github.com/siloworks/silo/observer"
)

// sparsePageSize matches original_source/src/SparseSet/SparseSet.h's fixed
// page size.
const sparsePageSize = 1024

const absentDenseIndex = math.MaxUint32

// componentStore is the type-erased capability every per-component-type
// sparse-set storage exposes to the World and to query leaf nodes. Its only
// implementation is sparseSet[T]; archetype mode acts on whole archetypes
// and stores its values in typedColumn[T], which implements the separate
// column interface instead. Downcasting to the concrete *sparseSet[T] to
// read or write a value happens once at the API boundary (Component[T]
// helpers), never on every element access — spec.md §9 design note.
type componentStore interface {
	typeKey() TypeKey
	hasEntity(e EntityID) bool
	deleteEntity(e EntityID) bool
	size() int
	indices() []EntityID
	changed() *observer.Event
}

// sparseSet is a paged sparse→dense index over EntityID, storing component
// values of type T densely. It is the storage primitive for sparse-set-mode
// Worlds (spec.md §4.2), grounded directly on
// original_source/src/SparseSet/SparseSet.h.
type sparseSet[T Component] struct {
	key TypeKey

	pages         [][]uint32 // sparse[entity/pageSize][entity%pageSize] -> dense index, or absentDenseIndex
	dense         []T
	denseToSparse []EntityID

	onUpdated observer.Event
}

func newSparseSet[T Component](key TypeKey) *sparseSet[T] {
	return &sparseSet[T]{key: key}
}

func (s *sparseSet[T]) typeKey() TypeKey         { return s.key }
func (s *sparseSet[T]) changed() *observer.Event { return &s.onUpdated }

func (s *sparseSet[T]) pageIndex(e EntityID) (page int, offset int) {
	return int(e / sparsePageSize), int(e % sparsePageSize)
}

func (s *sparseSet[T]) denseIndexOf(e EntityID) (uint32, bool) {
	page, offset := s.pageIndex(e)
	if page >= len(s.pages) || s.pages[page] == nil {
		return 0, false
	}
	idx := s.pages[page][offset]
	if idx == absentDenseIndex {
		return 0, false
	}
	return idx, true
}

// set inserts value for e if absent, or overwrites the existing value in
// place. onUpdated fires only on insertion, matching spec.md §4.2.
func (s *sparseSet[T]) set(e EntityID, value T) {
	page, offset := s.pageIndex(e)
	if page >= len(s.pages) {
		grown := make([][]uint32, page+1)
		copy(grown, s.pages)
		s.pages = grown
	}
	if s.pages[page] == nil {
		p := make([]uint32, sparsePageSize)
		for i := range p {
			p[i] = absentDenseIndex
		}
		s.pages[page] = p
	}

	if idx := s.pages[page][offset]; idx != absentDenseIndex {
		s.dense[idx] = value
		return
	}

	idx := uint32(len(s.dense))
	s.pages[page][offset] = idx
	s.dense = append(s.dense, value)
	s.denseToSparse = append(s.denseToSparse, e)
	s.onUpdated.Invoke()
}

// get returns a mutable pointer to e's value, or nil if absent. The pointer
// is only valid until the next structural mutation of this set (set of a new
// entity, or delete) since both may reallocate or relocate dense.
func (s *sparseSet[T]) get(e EntityID) *T {
	idx, ok := s.denseIndexOf(e)
	if !ok {
		return nil
	}
	return &s.dense[idx]
}

func (s *sparseSet[T]) has(e EntityID) bool {
	_, ok := s.denseIndexOf(e)
	return ok
}

func (s *sparseSet[T]) hasEntity(e EntityID) bool { return s.has(e) }

// delete removes e's value via swap-remove with the last dense slot,
// repointing the moved element's sparse entry and clearing e's. No-op if e
// is absent. Returns whether anything was removed.
func (s *sparseSet[T]) delete(e EntityID) bool {
	idx, ok := s.denseIndexOf(e)
	if !ok {
		return false
	}

	last := uint32(len(s.dense) - 1)
	if idx != last {
		movedEntity := s.denseToSparse[last]
		s.dense[idx] = s.dense[last]
		s.denseToSparse[idx] = movedEntity

		mp, mo := s.pageIndex(movedEntity)
		s.pages[mp][mo] = idx
	}

	s.dense = s.dense[:last]
	s.denseToSparse = s.denseToSparse[:last]

	ep, eo := s.pageIndex(e)
	s.pages[ep][eo] = absentDenseIndex

	s.onUpdated.Invoke()
	return true
}

func (s *sparseSet[T]) deleteEntity(e EntityID) bool { return s.delete(e) }

func (s *sparseSet[T]) size() int { return len(s.dense) }

// indices returns the owning entity of each dense slot, in dense order —
// the canonical leaf-node iteration order (spec.md §4.5 tie-break rule).
func (s *sparseSet[T]) indices() []EntityID {
	out := make([]EntityID, len(s.denseToSparse))
	copy(out, s.denseToSparse)
	return out
}
