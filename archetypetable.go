package silo

// column is the type-erased capability an archetypeTable needs from one of
// its per-component-type value slices, grounded on
// original_source/src/Archetype/Archetype.h's ComponentStore (a raw
// void*-and-size pair, here replaced with a generic slice behind an
// interface — the same "downcast once at the boundary" shape as
// componentStore in sparseset.go).
type column interface {
	typeKey() TypeKey
	length() int
	appendAny(v any)
	at(row int) any
	swapRemove(row int)
}

// typedColumn is the concrete, generic backing store for one component
// type's values within a single archetypeTable.
type typedColumn[T Component] struct {
	key  TypeKey
	data []T
}

func newTypedColumn[T Component](key TypeKey) column {
	return &typedColumn[T]{key: key}
}

func (c *typedColumn[T]) typeKey() TypeKey { return c.key }
func (c *typedColumn[T]) length() int      { return len(c.data) }

func (c *typedColumn[T]) appendAny(v any) {
	c.data = append(c.data, v.(T))
}

func (c *typedColumn[T]) at(row int) any {
	return c.data[row]
}

func (c *typedColumn[T]) get(row int) *T {
	return &c.data[row]
}

// swapRemove moves the last row into row's slot and shrinks by one, matching
// every other structural-removal primitive in this module (sparseSet.delete
// does the same swap-remove).
func (c *typedColumn[T]) swapRemove(row int) {
	last := len(c.data) - 1
	c.data[row] = c.data[last]
	c.data = c.data[:last]
}

// archetypeTable is one archetype: a dense, columnar store holding every
// entity that carries exactly the component types named by signature, one
// column per type, rows kept in lockstep across all columns. Grounded on
// original_source/src/Archetype/Archetype.h's Archetype class; the
// per-entity mutex there is not needed here since archetypeWorld serializes
// structural mutation at the World level (spec.md §4.3).
type archetypeTable struct {
	signature Signature
	columns   map[TypeKey]column
	entities  []EntityID
	rowOf     map[EntityID]int
}

func newArchetypeTable(sig Signature) *archetypeTable {
	t := &archetypeTable{
		signature: sig,
		columns:   make(map[TypeKey]column, sig.Len()),
		rowOf:     make(map[EntityID]int),
	}
	for _, key := range sig.Keys() {
		t.columns[key] = registry.newColumn(key)
	}
	return t
}

func (t *archetypeTable) size() int { return len(t.entities) }

func (t *archetypeTable) has(e EntityID) bool {
	_, ok := t.rowOf[e]
	return ok
}

func (t *archetypeTable) rowOfEntity(e EntityID) (int, bool) {
	row, ok := t.rowOf[e]
	return row, ok
}

// insert appends e as a new row, taking one value per column from values.
// values must carry an entry for every key in t.signature; it is the
// caller's job (the transition algorithm in world_archetype.go) to have
// assembled that map completely.
func (t *archetypeTable) insert(e EntityID, values map[TypeKey]any) {
	row := len(t.entities)
	t.entities = append(t.entities, e)
	t.rowOf[e] = row
	for key, col := range t.columns {
		col.appendAny(values[key])
	}
}

// remove deletes e's row via swap-remove and returns the value that was in
// each of its columns, so the transition algorithm can carry them into the
// entity's next table.
func (t *archetypeTable) remove(e EntityID) map[TypeKey]any {
	row, ok := t.rowOf[e]
	if !ok {
		return nil
	}

	extracted := make(map[TypeKey]any, len(t.columns))
	for key, col := range t.columns {
		extracted[key] = col.at(row)
		col.swapRemove(row)
	}

	last := len(t.entities) - 1
	moved := t.entities[last]
	t.entities[row] = moved
	t.entities = t.entities[:last]
	if moved != e {
		t.rowOf[moved] = row
	}
	delete(t.rowOf, e)

	return extracted
}

func (t *archetypeTable) column(key TypeKey) (column, bool) {
	c, ok := t.columns[key]
	return c, ok
}
