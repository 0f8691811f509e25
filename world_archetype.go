package silo

import (
	"sync"

	"go.uber.org/zap"
)

// archetypeWorld is the archetype / SoA-table storage strategy (spec.md
// §4.3-4.4), grounded on original_source/src/Archetype/World.h. Entities with
// identical signatures share one archetypeTable; adding or removing a
// component transitions an entity from one table to another, carrying its
// existing values along.
type archetypeWorld struct {
	mu sync.RWMutex

	entityReg entityRegistry

	// tables is keyed by Signature.mapKey() so structurally identical
	// signatures always resolve to the same table, matching
	// original_source's map<set<type_index>, Archetype>.
	tables map[string]*archetypeTable

	// entityTable locates the table (if any) an entity currently lives in.
	// A registered entity with no entry here is componentless.
	entityTable map[EntityID]*archetypeTable

	// componentTables indexes which tables contain a given component type,
	// for GetView's table-scan (spec.md §4.4's componentToArchetypes).
	componentTables map[TypeKey]map[*archetypeTable]struct{}

	gen uint64
}

// NewArchetypeWorld constructs an empty archetype-mode World.
func NewArchetypeWorld() World {
	return &archetypeWorld{
		entityReg:       newEntityRegistry(),
		tables:          make(map[string]*archetypeTable),
		entityTable:     make(map[EntityID]*archetypeTable),
		componentTables: make(map[TypeKey]map[*archetypeTable]struct{}),
	}
}

func (w *archetypeWorld) entities() *entityRegistry { return &w.entityReg }
func (w *archetypeWorld) generation() uint64        { return w.gen }

func (w *archetypeWorld) CreateEntity() EntityID {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.gen++
	return w.entityReg.create()
}

func (w *archetypeWorld) CreateEntities(n int) []EntityID {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.gen++
	out := make([]EntityID, n)
	for i := range out {
		out[i] = w.entityReg.create()
	}
	return out
}

func (w *archetypeWorld) DeleteEntity(e EntityID) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.gen++
	if !w.entityReg.isRegistered(e) {
		return EntityNotRegisteredError{Entity: e}
	}
	if t, ok := w.entityTable[e]; ok {
		t.remove(e)
		delete(w.entityTable, e)
		if t.size() == 0 {
			w.dropTable(t)
		}
	}
	if cb := w.entityReg.release(e); cb != nil {
		cb(e)
	}
	return nil
}

func (w *archetypeWorld) IsRegistered(e EntityID) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.entityReg.isRegistered(e)
}

func (w *archetypeWorld) SetParent(child, parent EntityID, callback EntityDestroyCallback) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.entityReg.setParent(child, parent, callback)
}

func (w *archetypeWorld) dropTable(t *archetypeTable) {
	delete(w.tables, t.signature.mapKey())
	for _, key := range t.signature.Keys() {
		if set, ok := w.componentTables[key]; ok {
			delete(set, t)
			if len(set) == 0 {
				delete(w.componentTables, key)
			}
		}
	}
}

func (w *archetypeWorld) getOrCreateTable(sig Signature) *archetypeTable {
	mapKey := sig.mapKey()
	if t, ok := w.tables[mapKey]; ok {
		return t
	}
	t := newArchetypeTable(sig)
	w.tables[mapKey] = t
	for _, key := range sig.Keys() {
		set, ok := w.componentTables[key]
		if !ok {
			set = make(map[*archetypeTable]struct{})
			w.componentTables[key] = set
		}
		set[t] = struct{}{}
	}
	Config.logger.Debug("archetype table created", zap.Int("componentTypes", sig.Len()))
	return t
}

// transition is original_source's TransferEntity: move e from whatever
// table it is currently in (possibly none) into the table for newSig,
// extracting e's current column values, merging in overrides, and dropping
// the old table if it becomes empty.
func (w *archetypeWorld) transition(e EntityID, newSig Signature, overrides map[TypeKey]any) {
	w.gen++
	values := make(map[TypeKey]any, newSig.Len())
	for k, v := range overrides {
		values[k] = v
	}

	if old, ok := w.entityTable[e]; ok {
		extracted := old.remove(e)
		for k, v := range extracted {
			if _, already := values[k]; !already && newSig.Has(k) {
				values[k] = v
			}
		}
		if old.size() == 0 {
			w.dropTable(old)
		}
	}

	newTable := w.getOrCreateTable(newSig)
	newTable.insert(e, values)
	w.entityTable[e] = newTable
}

func (w *archetypeWorld) signatureOf(e EntityID) Signature {
	if t, ok := w.entityTable[e]; ok {
		return t.signature
	}
	return NewSignature()
}

// addComponentValue inserts value as e's T, or overwrites e's existing T in
// place if it already has one (spec.md §4.4's "inserts or replaces"). Either
// way it goes through transition, which for the overwrite case resolves to
// the same signature e is already in: e is removed from its table and
// re-appended as the last row of the table for that signature with the new
// value. If e was the table's only row, that table is dropped and a fresh
// one with the same signature is created for it.
func (w *archetypeWorld) addComponentValue(e EntityID, key TypeKey, value any) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.entityReg.isRegistered(e) {
		return EntityNotRegisteredError{Entity: e}
	}
	newSig := w.signatureOf(e).With(key)
	w.transition(e, newSig, map[TypeKey]any{key: value})
	return nil
}

// removeComponentValue detaches key from e. A no-op, not an error, if e does
// not currently carry key (spec.md §4.4: "No-op if C not present").
func (w *archetypeWorld) removeComponentValue(e EntityID, key TypeKey) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.entityReg.isRegistered(e) {
		return EntityNotRegisteredError{Entity: e}
	}
	t, ok := w.entityTable[e]
	if !ok || !t.signature.Has(key) {
		return nil
	}
	newSig := t.signature.Without(key)
	w.transition(e, newSig, nil)
	return nil
}

// columnAndRow locates e's column for key and its row within that column,
// for the typed Component[T] accessor functions in componentapi.go to
// downcast once at the boundary.
func (w *archetypeWorld) columnAndRow(e EntityID, key TypeKey) (column, int, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	t, ok := w.entityTable[e]
	if !ok {
		return nil, 0, false
	}
	row, ok := t.rowOfEntity(e)
	if !ok {
		return nil, 0, false
	}
	col, ok := t.column(key)
	if !ok {
		return nil, 0, false
	}
	return col, row, true
}

func (w *archetypeWorld) hasComponentKey(e EntityID, key TypeKey) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	t, ok := w.entityTable[e]
	return ok && t.signature.Has(key)
}
