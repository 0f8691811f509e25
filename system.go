package silo

// systemFunc is the uniform internal shape every system registration
// constructor below reduces to: given the World to read/write and the
// CommandBuffer structural changes should be deferred through, run one
// tick's worth of work. Engine never sees any of the richer per-entity
// signatures below directly — those exist only so the caller doesn't have
// to hand-write a view loop for every system.
//
// original_source's Engine::RegisterSystem is a template overloaded on
// whether it takes a thread count, dispatching at compile time; Go has no
// function-signature-overload dispatch, so each shape here gets its own,
// distinctly named constructor instead (spec.md §9 design note).
type systemFunc func(w World, cb *CommandBuffer) error

// PlainSystem wraps a function that operates on the whole World directly —
// the escape hatch for systems too general to express as a per-entity
// query (singleton bookkeeping, whole-world invariant checks).
func PlainSystem(fn func(World) error) systemFunc {
	return func(w World, cb *CommandBuffer) error { return fn(w) }
}

// CommandSystem is PlainSystem with direct access to the group's
// CommandBuffer, for systems that need to queue structural changes without
// iterating any particular query.
func CommandSystem(fn func(World, *CommandBuffer) error) systemFunc {
	return fn
}

// QuerySystem1 runs fn once per entity carrying a T1, reading and mutating
// its component in place. Component mutation through a QuerySystem's
// pointer is immediate, not deferred — only structural changes (add/remove/
// create/destroy) need a CommandBuffer.
func QuerySystem1[T1 Component](fn func(EntityID, *T1) error) systemFunc {
	return func(w World, cb *CommandBuffer) error {
		view, err := GetView1[T1](w)
		if err != nil {
			return err
		}
		var ferr error
		view(func(e EntityID, c1 *T1) bool {
			if err := fn(e, c1); err != nil {
				ferr = err
				return false
			}
			return true
		})
		return ferr
	}
}

// QuerySystem2 is QuerySystem1 over entities carrying a T1 and a T2.
func QuerySystem2[T1, T2 Component](fn func(EntityID, *T1, *T2) error) systemFunc {
	return func(w World, cb *CommandBuffer) error {
		view, err := GetView2[T1, T2](w)
		if err != nil {
			return err
		}
		var ferr error
		view(func(e EntityID, c1 *T1, c2 *T2) bool {
			if err := fn(e, c1, c2); err != nil {
				ferr = err
				return false
			}
			return true
		})
		return ferr
	}
}

// QuerySystem3 is QuerySystem1 over entities carrying a T1, a T2, and a T3.
func QuerySystem3[T1, T2, T3 Component](fn func(EntityID, *T1, *T2, *T3) error) systemFunc {
	return func(w World, cb *CommandBuffer) error {
		view, err := GetView3[T1, T2, T3](w)
		if err != nil {
			return err
		}
		var ferr error
		view(func(e EntityID, c1 *T1, c2 *T2, c3 *T3) bool {
			if err := fn(e, c1, c2, c3); err != nil {
				ferr = err
				return false
			}
			return true
		})
		return ferr
	}
}

// QuerySystem4 is QuerySystem1 over entities carrying a T1, a T2, a T3, and
// a T4.
func QuerySystem4[T1, T2, T3, T4 Component](fn func(EntityID, *T1, *T2, *T3, *T4) error) systemFunc {
	return func(w World, cb *CommandBuffer) error {
		view, err := GetView4[T1, T2, T3, T4](w)
		if err != nil {
			return err
		}
		var ferr error
		view(func(e EntityID, c1 *T1, c2 *T2, c3 *T3, c4 *T4) bool {
			if err := fn(e, c1, c2, c3, c4); err != nil {
				ferr = err
				return false
			}
			return true
		})
		return ferr
	}
}

// QueryCommandSystem1 is QuerySystem1 with the group's CommandBuffer also
// passed to fn, for per-entity systems that sometimes need to queue a
// structural change (e.g. destroy the entity they are visiting).
func QueryCommandSystem1[T1 Component](fn func(EntityID, *T1, *CommandBuffer) error) systemFunc {
	return func(w World, cb *CommandBuffer) error {
		view, err := GetView1[T1](w)
		if err != nil {
			return err
		}
		var ferr error
		view(func(e EntityID, c1 *T1) bool {
			if err := fn(e, c1, cb); err != nil {
				ferr = err
				return false
			}
			return true
		})
		return ferr
	}
}

// QueryCommandSystem2 is QueryCommandSystem1 over two component types.
func QueryCommandSystem2[T1, T2 Component](fn func(EntityID, *T1, *T2, *CommandBuffer) error) systemFunc {
	return func(w World, cb *CommandBuffer) error {
		view, err := GetView2[T1, T2](w)
		if err != nil {
			return err
		}
		var ferr error
		view(func(e EntityID, c1 *T1, c2 *T2) bool {
			if err := fn(e, c1, c2, cb); err != nil {
				ferr = err
				return false
			}
			return true
		})
		return ferr
	}
}

// ThreadedQuerySystem1 is QuerySystem1 partitioned across pool's workers.
// fn runs concurrently for disjoint entity ranges, so it must not touch
// state shared across entities without its own synchronization; structural
// changes still belong on the CommandBuffer passed to a
// QueryCommandSystem, never attempted directly from inside fn.
//
// Matches original_source's templated threaded RegisterSystem: a query's
// matching entities are snapshotted once (single-threaded), then handed to
// the pool in min(start+chunkSize, count) chunks.
func ThreadedQuerySystem1[T1 Component](pool *workerPool, fn func(EntityID, *T1)) systemFunc {
	return func(w World, cb *CommandBuffer) error {
		view, err := GetView1[T1](w)
		if err != nil {
			return err
		}
		var entities []EntityID
		var ptrs []*T1
		view(func(e EntityID, c1 *T1) bool {
			entities = append(entities, e)
			ptrs = append(ptrs, c1)
			return true
		})
		pool.RunChunked(len(entities), func(start, end int) {
			for i := start; i < end; i++ {
				fn(entities[i], ptrs[i])
			}
		})
		return nil
	}
}

// ThreadedQuerySystem2 is ThreadedQuerySystem1 over two component types.
func ThreadedQuerySystem2[T1, T2 Component](pool *workerPool, fn func(EntityID, *T1, *T2)) systemFunc {
	return func(w World, cb *CommandBuffer) error {
		view, err := GetView2[T1, T2](w)
		if err != nil {
			return err
		}
		var entities []EntityID
		var p1 []*T1
		var p2 []*T2
		view(func(e EntityID, c1 *T1, c2 *T2) bool {
			entities = append(entities, e)
			p1 = append(p1, c1)
			p2 = append(p2, c2)
			return true
		})
		pool.RunChunked(len(entities), func(start, end int) {
			for i := start; i < end; i++ {
				fn(entities[i], p1[i], p2[i])
			}
		})
		return nil
	}
}
