package silo

import "fmt"

// AddComponent attaches a value of type T to e, inserting it if e does not
// yet carry a T or overwriting the existing value in place if it does
// (spec.md §4.4's addComponent<C>(e,v): "inserts or replaces"). It fails
// with EntityNotRegisteredError if e does not exist.
//
// AddComponent, like every typed accessor in this file, is a free generic
// function rather than a World interface method: Go does not let an
// interface method introduce a type parameter of its own, so the
// downcast to the concrete archetypeWorld or sparseWorld happens here, once,
// at this API boundary (spec.md §9 design note).
func AddComponent[T Component](w World, e EntityID, value T) error {
	switch ww := w.(type) {
	case *archetypeWorld:
		return ww.addComponentValue(e, keyOf[T](), value)
	case *sparseWorld:
		if !ww.entityReg.isRegistered(e) {
			return EntityNotRegisteredError{Entity: e}
		}
		store := getOrCreateStore[T](ww)
		store.set(e, value)
		ww.gen++
		return nil
	default:
		return unsupportedWorldError(w)
	}
}

// RemoveComponent detaches T from e. It fails with
// EntityNotRegisteredError if e does not exist; removing a T that e does not
// carry is a no-op (spec.md §4.4: "No-op if C not present"; §7's recoverable
// "removeComponent on absent component" case).
func RemoveComponent[T Component](w World, e EntityID) error {
	switch ww := w.(type) {
	case *archetypeWorld:
		return ww.removeComponentValue(e, keyOf[T]())
	case *sparseWorld:
		if !ww.entityReg.isRegistered(e) {
			return EntityNotRegisteredError{Entity: e}
		}
		store := getOrCreateStore[T](ww)
		if store.delete(e) {
			ww.gen++
		}
		return nil
	default:
		return unsupportedWorldError(w)
	}
}

// HasComponent reports whether e currently carries a T. A non-existent
// entity simply has no components, so this never errors.
func HasComponent[T Component](w World, e EntityID) bool {
	key := keyOf[T]()
	switch ww := w.(type) {
	case *archetypeWorld:
		return ww.hasComponentKey(e, key)
	case *sparseWorld:
		store := ww.storeFor(key)
		return store != nil && store.hasEntity(e)
	default:
		return false
	}
}

// GetComponent returns a pointer to e's T value, for in-place mutation. The
// pointer is only valid until the next structural change to e (an
// AddComponent/RemoveComponent call on e or on any entity sharing its
// storage) — callers that need to hold a value across such a change should
// copy it out first.
//
// GetComponent fails with EntityNotRegisteredError or ComponentNotFoundError.
func GetComponent[T Component](w World, e EntityID) (*T, error) {
	switch ww := w.(type) {
	case *archetypeWorld:
		if !ww.entityReg.isRegistered(e) {
			return nil, EntityNotRegisteredError{Entity: e}
		}
		key := keyOf[T]()
		col, row, ok := ww.columnAndRow(e, key)
		if !ok {
			return nil, ComponentNotFoundError{Type: registry.typeOf(key)}
		}
		return col.(*typedColumn[T]).get(row), nil
	case *sparseWorld:
		if !ww.entityReg.isRegistered(e) {
			return nil, EntityNotRegisteredError{Entity: e}
		}
		store := getOrCreateStore[T](ww)
		ptr := store.get(e)
		if ptr == nil {
			return nil, ComponentNotFoundError{Type: registry.typeOf(keyOf[T]())}
		}
		return ptr, nil
	default:
		return nil, unsupportedWorldError(w)
	}
}

// TryGetComponent is GetComponent without the error return, for call sites
// that already know e is live and only need to branch on presence (spec.md
// §6 supplemented convenience, grounded on the teacher's
// component_accessor.go access-without-error idiom).
func TryGetComponent[T Component](w World, e EntityID) (*T, bool) {
	ptr, err := GetComponent[T](w, e)
	if err != nil {
		return nil, false
	}
	return ptr, true
}

// unsupportedWorldError guards against a third World implementation being
// plugged into these accessors without being taught to them. Both
// NewArchetypeWorld and NewSparseWorld route through the cases above, so
// this is unreachable via the public API.
func unsupportedWorldError(w World) error {
	return fmt.Errorf("silo: unsupported World implementation %T", w)
}
