package silo

// Component is any plain value type usable as component data. There are no
// methods to implement; the constraint exists so call sites read as ECS code
// rather than generic container code.
type Component interface {
	any
}

// TypeKey is the stable identity the type registry assigns to a component
// type on first observation. Keys are assigned in increasing order, which
// gives them a total order for free and makes a sorted []TypeKey a canonical
// signature.
type TypeKey uint32
