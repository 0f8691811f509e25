package silo

import "sort"

// systemEntry is one registered system within a systemGroup: its run
// function plus the priority it was registered at and the Engine-minted
// SystemID handle RetireSystem uses to remove it later.
type systemEntry struct {
	id       SystemID
	priority int
	fn       systemFunc
}

// systemGroup is a priority-ordered list of systems that run together under
// one CallSystemGroup, followed by one auto-flush of the group's
// CommandBuffer (spec.md §4.7). Grounded on
// original_source/src/Engine.h's SystemGroup struct (`systems`, `dirty`):
// membership is keyed by the Engine's SystemGroupID, not by a name, so
// systemGroup itself carries no identity of its own — it is just the
// systems-plus-dirty-flag pair the original defines. A dirty flag means
// re-sorting after a RegisterSystem or RetireSystem only happens once,
// lazily, right before the next CallSystemGroup — not on every mutation.
type systemGroup struct {
	entries  []systemEntry
	dirty    bool
	commands *CommandBuffer
}

func newSystemGroup() *systemGroup {
	return &systemGroup{commands: NewCommandBuffer()}
}

// register appends an entry under the already-minted id (Engine owns
// SystemID allocation, since original_source's nextSystemID is global
// across the whole Engine, not scoped to one group).
func (g *systemGroup) register(id SystemID, priority int, fn systemFunc) {
	g.entries = append(g.entries, systemEntry{id: id, priority: priority, fn: fn})
	g.dirty = true
}

func (g *systemGroup) retire(id SystemID) bool {
	for i, e := range g.entries {
		if e.id == id {
			g.entries = append(g.entries[:i], g.entries[i+1:]...)
			return true
		}
	}
	return false
}

// ensureSorted re-sorts entries by descending priority if anything changed
// since the last sort. Ties keep registration order (sort.SliceStable),
// matching spec.md §4.7's tie-break rule.
func (g *systemGroup) ensureSorted() {
	if !g.dirty {
		return
	}
	sort.SliceStable(g.entries, func(i, j int) bool {
		return g.entries[i].priority > g.entries[j].priority
	})
	g.dirty = false
}

// run executes every entry in priority order against w, sharing one
// CommandBuffer across the whole group, then flushes it exactly once. A
// system error aborts the remaining systems in this call but the
// CommandBuffer is still flushed, since earlier systems in the group may
// have already queued valid work.
func (g *systemGroup) run(w World) error {
	g.ensureSorted()

	var runErr error
	for _, e := range g.entries {
		if err := e.fn(w, g.commands); err != nil {
			runErr = err
			break
		}
	}

	if flushErr := g.commands.Flush(w); flushErr != nil && runErr == nil {
		runErr = flushErr
	}
	return runErr
}
