package silo

// Cache is a generic key/index store, grounded on the teacher's cache.go.
// ViewCache below is its consumer in this module: memoizing the entity list
// a multi-component GetView's intersection scan computed, so a system that
// calls the same view every tick does not redo the scan when nothing in the
// World has changed since the last call. Every sparseWorld carries one
// internally, keyed by queried Signature, for GetView2-4; Factory.NewViewCache
// also hands out standalone ones for callers with their own query keys.
type Cache[T any] interface {
	GetIndex(key string) (int, bool)
	GetItem(index int) *T
	Register(key string, item T) (int, error)
	Clear()
}

// SimpleCache is a fixed-capacity Cache backed by a slice and a key index.
// Its shape (map for lookup, slice for storage, capacity check before
// growth) follows the teacher's SimpleCache; the capacity-exhausted case
// reports through this module's own CacheFullError instead of the teacher's
// ad hoc fmt.Errorf, matching how every other fallible operation in this
// package fails with a typed error (errors.go).
type SimpleCache[T any] struct {
	index       map[string]int
	items       []T
	maxCapacity int
}

// NewSimpleCache constructs a SimpleCache that rejects registrations past
// maxCapacity.
func NewSimpleCache[T any](maxCapacity int) *SimpleCache[T] {
	return &SimpleCache[T]{
		index:       make(map[string]int),
		maxCapacity: maxCapacity,
	}
}

var _ Cache[any] = &SimpleCache[any]{}

func (c *SimpleCache[T]) GetIndex(key string) (int, bool) {
	idx, ok := c.index[key]
	return idx, ok
}

func (c *SimpleCache[T]) GetItem(index int) *T {
	return &c.items[index]
}

// Register stores item under key and returns its slot, failing with
// CacheFullError once maxCapacity items are already held.
func (c *SimpleCache[T]) Register(key string, item T) (int, error) {
	if len(c.items) >= c.maxCapacity {
		return -1, CacheFullError{Capacity: c.maxCapacity}
	}
	c.items = append(c.items, item)
	c.index[key] = len(c.items) - 1
	return len(c.items) - 1, nil
}

func (c *SimpleCache[T]) Clear() {
	c.items = nil
	c.index = make(map[string]int)
}

// cachedResult pairs a memoized entity list with the World generation it
// was computed at.
type cachedResult struct {
	entities   []EntityID
	generation uint64
}

// ViewCache memoizes GetView's entity-matching step, keyed by an arbitrary
// caller-chosen key (typically the component signature string). A cached
// entry is valid exactly as long as the owning World's generation counter
// has not advanced, which is a coarser invalidation than subscribing to
// every relevant component store's change event, but requires no
// bookkeeping per view (spec.md §6 cache feature — not present in
// original_source, which recomputes every GetView call).
type ViewCache struct {
	w     World
	cache *SimpleCache[cachedResult]
}

// NewViewCache builds a ViewCache over w with room for maxEntries distinct
// query keys.
func NewViewCache(w World, maxEntries int) *ViewCache {
	return &ViewCache{w: w, cache: NewSimpleCache[cachedResult](maxEntries)}
}

// GetOrCompute returns the cached entity list for key if it is still valid,
// otherwise calls compute, caches its result against the World's current
// generation, and returns that.
func (c *ViewCache) GetOrCompute(key string, compute func() []EntityID) []EntityID {
	gen := c.w.generation()
	if idx, ok := c.cache.GetIndex(key); ok {
		entry := c.cache.GetItem(idx)
		if entry.generation == gen {
			return entry.entities
		}
		entry.entities = compute()
		entry.generation = gen
		return entry.entities
	}

	result := cachedResult{entities: compute(), generation: gen}
	if _, err := c.cache.Register(key, result); err != nil {
		// Cache is full; return the freshly computed result uncached
		// rather than failing the caller's query.
		return result.entities
	}
	return result.entities
}

// Clear discards every memoized entry, forcing the next GetOrCompute call
// for each key to recompute.
func (c *ViewCache) Clear() { c.cache.Clear() }
