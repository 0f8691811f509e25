package silo

// This file binds typed component pointers to the query results produced by
// either storage strategy. Go's lack of variadic generics means there is no
// single GetView[T...]; instead, as with every other typed accessor in this
// module, each arity gets its own free function (spec.md §9 design note),
// matching the fixed-arity "_generated.go" convention the retrieved ECS
// examples use for the same reason.

// Iter1 is a single-component view iterator, usable directly in a Go 1.23
// range-over-func for loop: for e, c := range iter { ... }.
type Iter1[T1 Component] func(yield func(EntityID, *T1) bool)

// Iter2 is a two-component view iterator.
type Iter2[T1, T2 Component] func(yield func(EntityID, *T1, *T2) bool)

// Iter3 is a three-component view iterator.
type Iter3[T1, T2, T3 Component] func(yield func(EntityID, *T1, *T2, *T3) bool)

// Iter4 is a four-component view iterator.
type Iter4[T1, T2, T3, T4 Component] func(yield func(EntityID, *T1, *T2, *T3, *T4) bool)

// GetView1 returns an iterator over every entity carrying a T1, regardless
// of storage strategy.
func GetView1[T1 Component](w World) (Iter1[T1], error) {
	switch ww := w.(type) {
	case *sparseWorld:
		store1 := getOrCreateStore[T1](ww)
		return func(yield func(EntityID, *T1) bool) {
			for _, e := range store1.indices() {
				if v := store1.get(e); v != nil && !yield(e, v) {
					return
				}
			}
		}, nil
	case *archetypeWorld:
		key1 := keyOf[T1]()
		return func(yield func(EntityID, *T1) bool) {
			for _, t := range ww.tablesWithAll(key1) {
				col := mustColumn[T1](t, key1)
				for row, e := range t.entities {
					if !yield(e, col.get(row)) {
						return
					}
				}
			}
		}, nil
	default:
		return nil, unsupportedWorldError(w)
	}
}

// GetView2 returns an iterator over every entity carrying both a T1 and a
// T2.
func GetView2[T1, T2 Component](w World) (Iter2[T1, T2], error) {
	switch ww := w.(type) {
	case *sparseWorld:
		s1 := getOrCreateStore[T1](ww)
		s2 := getOrCreateStore[T2](ww)
		sig := NewSignature(keyOf[T1](), keyOf[T2]())
		entities := ww.views.GetOrCompute(sig.mapKey(), func() []EntityID {
			return newIntersectionQueryNode(newLeafQueryNode(s1), newLeafQueryNode(s2)).validEntities()
		})
		return func(yield func(EntityID, *T1, *T2) bool) {
			for _, e := range entities {
				v1, v2 := s1.get(e), s2.get(e)
				if v1 == nil || v2 == nil {
					continue
				}
				if !yield(e, v1, v2) {
					return
				}
			}
		}, nil
	case *archetypeWorld:
		key1, key2 := keyOf[T1](), keyOf[T2]()
		return func(yield func(EntityID, *T1, *T2) bool) {
			for _, t := range ww.tablesWithAll(key1, key2) {
				c1 := mustColumn[T1](t, key1)
				c2 := mustColumn[T2](t, key2)
				for row, e := range t.entities {
					if !yield(e, c1.get(row), c2.get(row)) {
						return
					}
				}
			}
		}, nil
	default:
		return nil, unsupportedWorldError(w)
	}
}

// GetView3 returns an iterator over every entity carrying a T1, a T2, and a
// T3.
func GetView3[T1, T2, T3 Component](w World) (Iter3[T1, T2, T3], error) {
	switch ww := w.(type) {
	case *sparseWorld:
		s1 := getOrCreateStore[T1](ww)
		s2 := getOrCreateStore[T2](ww)
		s3 := getOrCreateStore[T3](ww)
		sig := NewSignature(keyOf[T1](), keyOf[T2](), keyOf[T3]())
		entities := ww.views.GetOrCompute(sig.mapKey(), func() []EntityID {
			return newIntersectionQueryNode(newLeafQueryNode(s1), newLeafQueryNode(s2), newLeafQueryNode(s3)).validEntities()
		})
		return func(yield func(EntityID, *T1, *T2, *T3) bool) {
			for _, e := range entities {
				v1, v2, v3 := s1.get(e), s2.get(e), s3.get(e)
				if v1 == nil || v2 == nil || v3 == nil {
					continue
				}
				if !yield(e, v1, v2, v3) {
					return
				}
			}
		}, nil
	case *archetypeWorld:
		key1, key2, key3 := keyOf[T1](), keyOf[T2](), keyOf[T3]()
		return func(yield func(EntityID, *T1, *T2, *T3) bool) {
			for _, t := range ww.tablesWithAll(key1, key2, key3) {
				c1 := mustColumn[T1](t, key1)
				c2 := mustColumn[T2](t, key2)
				c3 := mustColumn[T3](t, key3)
				for row, e := range t.entities {
					if !yield(e, c1.get(row), c2.get(row), c3.get(row)) {
						return
					}
				}
			}
		}, nil
	default:
		return nil, unsupportedWorldError(w)
	}
}

// GetView4 returns an iterator over every entity carrying a T1, a T2, a T3,
// and a T4.
func GetView4[T1, T2, T3, T4 Component](w World) (Iter4[T1, T2, T3, T4], error) {
	switch ww := w.(type) {
	case *sparseWorld:
		s1 := getOrCreateStore[T1](ww)
		s2 := getOrCreateStore[T2](ww)
		s3 := getOrCreateStore[T3](ww)
		s4 := getOrCreateStore[T4](ww)
		sig := NewSignature(keyOf[T1](), keyOf[T2](), keyOf[T3](), keyOf[T4]())
		entities := ww.views.GetOrCompute(sig.mapKey(), func() []EntityID {
			return newIntersectionQueryNode(
				newLeafQueryNode(s1), newLeafQueryNode(s2), newLeafQueryNode(s3), newLeafQueryNode(s4),
			).validEntities()
		})
		return func(yield func(EntityID, *T1, *T2, *T3, *T4) bool) {
			for _, e := range entities {
				v1, v2, v3, v4 := s1.get(e), s2.get(e), s3.get(e), s4.get(e)
				if v1 == nil || v2 == nil || v3 == nil || v4 == nil {
					continue
				}
				if !yield(e, v1, v2, v3, v4) {
					return
				}
			}
		}, nil
	case *archetypeWorld:
		key1, key2, key3, key4 := keyOf[T1](), keyOf[T2](), keyOf[T3](), keyOf[T4]()
		return func(yield func(EntityID, *T1, *T2, *T3, *T4) bool) {
			for _, t := range ww.tablesWithAll(key1, key2, key3, key4) {
				c1 := mustColumn[T1](t, key1)
				c2 := mustColumn[T2](t, key2)
				c3 := mustColumn[T3](t, key3)
				c4 := mustColumn[T4](t, key4)
				for row, e := range t.entities {
					if !yield(e, c1.get(row), c2.get(row), c3.get(row), c4.get(row)) {
						return
					}
				}
			}
		}, nil
	default:
		return nil, unsupportedWorldError(w)
	}
}

func mustColumn[T Component](t *archetypeTable, key TypeKey) *typedColumn[T] {
	c, ok := t.column(key)
	if !ok {
		return nil
	}
	return c.(*typedColumn[T])
}

// tablesWithAll returns every table whose signature contains every key
// given, found by intersecting componentTables's per-type table sets rather
// than scanning every table (spec.md §4.4's GetView contract).
func (w *archetypeWorld) tablesWithAll(keys ...TypeKey) []*archetypeTable {
	w.mu.RLock()
	defer w.mu.RUnlock()

	if len(keys) == 0 {
		return nil
	}
	var smallest map[*archetypeTable]struct{}
	for _, k := range keys {
		set, ok := w.componentTables[k]
		if !ok {
			return nil
		}
		if smallest == nil || len(set) < len(smallest) {
			smallest = set
		}
	}

	out := make([]*archetypeTable, 0, len(smallest))
	for t := range smallest {
		all := true
		for _, k := range keys {
			if !t.signature.Has(k) {
				all = false
				break
			}
		}
		if all {
			out = append(out, t)
		}
	}
	return out
}

// QueryNodeFor returns the sparse-set leaf node backing component type T, so
// callers can compose it with Intersect, Difference, and Union before
// handing the resulting root to View1WithRoot (spec.md §4.5's query DAG).
// The node DAG is sparse-set-only; archetype-mode Worlds reject this since a
// whole-table signature test makes the DAG unnecessary there.
func QueryNodeFor[T Component](w World) (QueryNode, error) {
	ww, ok := w.(*sparseWorld)
	if !ok {
		return nil, unsupportedWorldError(w)
	}
	return newLeafQueryNode(getOrCreateStore[T](ww)), nil
}

// Intersect builds the AND combinator over nodes (spec.md §4.5).
func Intersect(nodes ...QueryNode) QueryNode { return newIntersectionQueryNode(nodes...) }

// Difference builds the A\B combinator: entities main admits minus entities
// exclusion admits.
func Difference(main, exclusion QueryNode) QueryNode { return newDifferenceQueryNode(main, exclusion) }

// Union builds the OR combinator over nodes (spec.md §6 supplemented
// feature).
func Union(nodes ...QueryNode) QueryNode { return newUnionQueryNode(nodes...) }

// View1WithRoot iterates every entity root admits, fetching its T1 from w.
// root must guarantee T1 — that is, every entity root.validEntities()
// returns must actually carry a T1 — or View1WithRoot returns
// ComponentNotGuaranteedError without iterating anything.
//
// Even when T1 is guaranteed by construction, View1WithRoot still walks
// root.validEntities() once up front and confirms each of them is actually
// present in store1, returning EntityMissingFromStorageError on the first
// one that is not — original_source/src/SparseSet/Query.h's constructor
// runs the same runtime check ("Ensure all entities in validEntities exist
// in all SparseSets") rather than trusting guaranteedComponents() alone and
// silently skipping a mismatch during iteration.
func View1WithRoot[T1 Component](w World, root QueryNode) (Iter1[T1], error) {
	ww, ok := w.(*sparseWorld)
	if !ok {
		return nil, unsupportedWorldError(w)
	}
	key1 := keyOf[T1]()
	if _, guaranteed := root.guaranteedComponents()[key1]; !guaranteed {
		return nil, ComponentNotGuaranteedError{Type: registry.typeOf(key1)}
	}
	store1 := getOrCreateStore[T1](ww)
	entities := root.validEntities()
	for _, e := range entities {
		if !store1.hasEntity(e) {
			return nil, EntityMissingFromStorageError{Entity: e, Type: registry.typeOf(key1)}
		}
	}
	return func(yield func(EntityID, *T1) bool) {
		for _, e := range entities {
			if v := store1.get(e); !yield(e, v) {
				return
			}
		}
	}, nil
}
