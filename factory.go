package silo

// factory is the single package-level constructor surface, matching the
// teacher's factory.go var Factory factory idiom: one object so call sites
// read Factory.NewX(...) instead of a scatter of bare top-level New
// functions.
type factory struct{}

// Factory is the package's constructor entry point.
var Factory factory

// NewArchetypeWorld builds an archetype-mode World.
func (f factory) NewArchetypeWorld() World { return NewArchetypeWorld() }

// NewSparseWorld builds a sparse-set-mode World.
func (f factory) NewSparseWorld() World { return NewSparseWorld() }

// NewEngine builds an Engine over world with the given worker count (0 for
// Config.defaultWorkers).
func (f factory) NewEngine(world World, workers int) *Engine {
	return NewEngine(world, workers)
}

// NewCommandBuffer builds a standalone CommandBuffer, for callers that want
// to queue mutations outside of an Engine-run system group (tests, one-off
// scripted setup).
func (f factory) NewCommandBuffer() *CommandBuffer { return NewCommandBuffer() }

// NewViewCache builds a standalone ViewCache over world with room for
// Config's default cache size, for callers memoizing their own query keys
// outside of GetView2-4's built-in per-signature cache (every sparse-set
// World already carries one of these internally).
func (f factory) NewViewCache(world World) *ViewCache {
	return NewViewCache(world, Config.defaultCacheSize)
}

// FactoryNewCache builds a generic SimpleCache with the given capacity.
func FactoryNewCache[T any](capacity int) Cache[T] {
	return NewSimpleCache[T](capacity)
}
