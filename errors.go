package silo

import (
	"fmt"
	"reflect"
)

// EntityNotRegisteredError is returned when an operation references an entity
// ID that has never been created, or has been deleted and not yet reused.
type EntityNotRegisteredError struct {
	Entity EntityID
}

func (e EntityNotRegisteredError) Error() string {
	return fmt.Sprintf("entity %d is not registered", e.Entity)
}

// ComponentTypeMismatchError describes a component type that is not part of
// an archetype table's signature. No function in this package returns it:
// archetype-mode lookups of a type the entity's table lacks report
// ComponentNotFoundError instead.
type ComponentTypeMismatchError struct {
	Type      reflect.Type
	Signature Signature
}

func (e ComponentTypeMismatchError) Error() string {
	return fmt.Sprintf("component type %s is not part of signature %s", e.Type, e.Signature)
}

// ComponentNotGuaranteedError is returned when a Query is constructed asking
// for a component that its root node's guarantees do not include.
type ComponentNotGuaranteedError struct {
	Type reflect.Type
}

func (e ComponentNotGuaranteedError) Error() string {
	return fmt.Sprintf("component type %s is not guaranteed by this query's root node", e.Type)
}

// EntityMissingFromStorageError is a construction-time consistency failure: a
// query's root node lists an entity that one of its bound storages does not
// have.
type EntityMissingFromStorageError struct {
	Entity EntityID
	Type   reflect.Type
}

func (e EntityMissingFromStorageError) Error() string {
	return fmt.Sprintf("entity %d missing from storage for component %s", e.Entity, e.Type)
}

// WorkerPoolStoppedError is returned by workerPool.Submit after the worker
// pool has been stopped.
type WorkerPoolStoppedError struct{}

func (e WorkerPoolStoppedError) Error() string {
	return "worker pool has stopped accepting tasks"
}

// LockedStorageError describes a structural operation attempted while a
// storage is locked for iteration. No function in this package returns it;
// storages are not locked while a view iterates them.
type LockedStorageError struct{}

func (e LockedStorageError) Error() string {
	return "storage is currently locked"
}

// ComponentNotFoundError is returned by operations that require a component
// the entity does not carry. RemoveComponent treats this case as a no-op;
// this error is reserved for APIs that require the component to be present.
type ComponentNotFoundError struct {
	Type reflect.Type
}

func (e ComponentNotFoundError) Error() string {
	return fmt.Sprintf("component does not exist on entity: %s", e.Type)
}

// EntityRelationError is returned by SetParent when the child already has a
// parent assigned.
type EntityRelationError struct {
	Child, Parent EntityID
}

func (e EntityRelationError) Error() string {
	return fmt.Sprintf("entity %d already has parent %d", e.Child, e.Parent)
}

// CacheFullError is returned by SimpleCache.Register once a cache has
// reached the capacity it was constructed with.
type CacheFullError struct {
	Capacity int
}

func (e CacheFullError) Error() string {
	return fmt.Sprintf("silo: cache at maximum capacity (%d)", e.Capacity)
}
