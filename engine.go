package silo

import "go.uber.org/zap"

// SystemGroupID is an opaque handle to a system group, minted fresh by
// every CreateSystemGroup call. Matches original_source/src/Engine.h's
// `using SystemGroupID = size_t` and its monotonic nextSystemGroupID
// counter — there is no name-based identity for a group.
type SystemGroupID uint64

// SystemID is an opaque handle to one registered system, unique across the
// whole Engine (not just within its group), matching original_source's
// `using SystemID = size_t` and Engine::nextSystemID.
type SystemID uint64

// Engine ties a World to its system groups and shared worker pool, matching
// original_source/src/Engine.h's Engine class: CreateSystemGroup,
// RegisterSystem, RetireSystem, RetireSystemGroup, and CallSystemGroup.
type Engine struct {
	world World
	pool  *workerPool

	groups        map[SystemGroupID]*systemGroup
	systemToGroup map[SystemID]SystemGroupID

	nextGroupID  SystemGroupID
	nextSystemID SystemID
}

// NewEngine constructs an Engine over world with a worker pool of the given
// size. Pass 0 to use Config.defaultWorkers.
func NewEngine(world World, workers int) *Engine {
	if workers <= 0 {
		workers = Config.defaultWorkers
	}
	e := &Engine{
		world:         world,
		pool:          newWorkerPool(workers),
		groups:        make(map[SystemGroupID]*systemGroup),
		systemToGroup: make(map[SystemID]SystemGroupID),
	}
	Config.logger.Debug("engine created", zap.Int("workers", workers))
	return e
}

// World returns the Engine's underlying World.
func (e *Engine) World() World { return e.world }

// Pool returns the Engine's worker pool, for callers building
// ThreadedQuerySystem* registrations.
func (e *Engine) Pool() *workerPool { return e.pool }

// CreateSystemGroup allocates a fresh, empty group and returns its opaque
// ID. Every call mints a new SystemGroupID from a monotonic counter —
// matches original_source/src/Engine.h's `nextSystemGroupID++`, which has
// no name-dedup concept at all, unlike the teacher's map-by-name groups.
func (e *Engine) CreateSystemGroup() SystemGroupID {
	id := e.nextGroupID
	e.nextGroupID++
	e.groups[id] = newSystemGroup()
	Config.logger.Debug("system group created", zap.Uint64("group", uint64(id)))
	return id
}

// RetireSystemGroup removes group and every system registered in it. Any
// queued, unflushed commands in that group's CommandBuffer are discarded.
// Retiring an unknown or already-retired group is a no-op.
func (e *Engine) RetireSystemGroup(group SystemGroupID) {
	g, ok := e.groups[group]
	if !ok {
		return
	}
	for _, entry := range g.entries {
		delete(e.systemToGroup, entry.id)
	}
	delete(e.groups, group)
	Config.logger.Debug("system group retired", zap.Uint64("group", uint64(group)))
}

// RegisterSystem adds fn to group at priority. Registering against an
// unknown or already-retired group is a no-op that returns false alongside
// the zero SystemID — callers driving groups dynamically should confirm
// with HasSystemGroup first. Higher priority runs earlier within the
// group. The returned handle is usable with RetireSystem.
func (e *Engine) RegisterSystem(group SystemGroupID, priority int, fn systemFunc) (SystemID, bool) {
	g, ok := e.groups[group]
	if !ok {
		return 0, false
	}
	id := e.nextSystemID
	e.nextSystemID++
	g.register(id, priority, fn)
	e.systemToGroup[id] = group
	return id, true
}

// RetireSystem removes the system identified by handle, resolving its
// owning group internally via the Engine's handle→group map — matches
// original_source's single-argument RetireSystem(SystemID), which looks the
// group up through systemToGroup rather than asking the caller to track it.
// Reports whether a system was actually removed.
func (e *Engine) RetireSystem(handle SystemID) bool {
	group, ok := e.systemToGroup[handle]
	if !ok {
		return false
	}
	g, ok := e.groups[group]
	if !ok {
		delete(e.systemToGroup, handle)
		return false
	}
	removed := g.retire(handle)
	if removed {
		delete(e.systemToGroup, handle)
	}
	return removed
}

// CallSystemGroup runs every system in group, in descending-priority order,
// against the Engine's World, then flushes that group's CommandBuffer
// exactly once (spec.md §4.7's auto-flush-after-CallSystemGroup policy). A
// group that does not exist is a no-op, not an error — callers that want to
// be warned should check with HasSystemGroup first.
func (e *Engine) CallSystemGroup(group SystemGroupID) error {
	g, ok := e.groups[group]
	if !ok {
		return nil
	}
	Config.logger.Debug("system group dispatch", zap.Uint64("group", uint64(group)), zap.Int("systems", len(g.entries)))
	if err := g.run(e.world); err != nil {
		Config.logger.Error("system group aborted", zap.Uint64("group", uint64(group)), zap.Error(err))
		return err
	}
	return nil
}

// HasSystemGroup reports whether group was created and not yet retired.
func (e *Engine) HasSystemGroup(group SystemGroupID) bool {
	_, ok := e.groups[group]
	return ok
}

// Shutdown stops the Engine's worker pool, waiting for in-flight chunks to
// finish. Call it once, when the Engine itself is being torn down — not
// between ticks.
func (e *Engine) Shutdown() {
	e.pool.Stop()
	Config.logger.Debug("engine shut down")
}
