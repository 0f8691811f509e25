package silo

import "testing"

func TestEntityRegistryCreate(t *testing.T) {
	r := newEntityRegistry()

	first := r.create()
	second := r.create()
	third := r.create()

	if first != 0 || second != 1 || third != 2 {
		t.Fatalf("want 0,1,2 got %d,%d,%d", first, second, third)
	}
}

func TestEntityRegistryReleaseAndReuse(t *testing.T) {
	r := newEntityRegistry()
	a := r.create()
	b := r.create()
	c := r.create()

	r.release(b)

	if r.isRegistered(b) {
		t.Fatalf("expected %d to be unregistered after release", b)
	}
	if !r.isRegistered(a) || !r.isRegistered(c) {
		t.Fatalf("expected %d and %d to remain registered", a, c)
	}

	// The smallest freed ID comes back first, ahead of extending the
	// monotonic counter.
	recycled := r.create()
	if recycled != b {
		t.Fatalf("want recycled id %d got %d", b, recycled)
	}

	next := r.create()
	if next != 3 {
		t.Fatalf("want next id 3 got %d", next)
	}
}

func TestEntityRegistrySmallestFreedFirst(t *testing.T) {
	r := newEntityRegistry()
	for i := 0; i < 5; i++ {
		r.create()
	}
	r.release(3)
	r.release(1)
	r.release(4)

	got := r.create()
	if got != 1 {
		t.Fatalf("want smallest freed id 1, got %d", got)
	}
	got = r.create()
	if got != 3 {
		t.Fatalf("want next smallest freed id 3, got %d", got)
	}
}

func TestEntityRegistryIsRegisteredUnknown(t *testing.T) {
	r := newEntityRegistry()
	r.create()
	if r.isRegistered(99) {
		t.Fatal("expected unminted id to be unregistered")
	}
}

func TestEntityRegistrySetParent(t *testing.T) {
	r := newEntityRegistry()
	parent := r.create()
	child := r.create()

	fired := false
	err := r.setParent(child, parent, func(EntityID) { fired = true })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cb := r.release(parent)
	if cb == nil {
		t.Fatal("expected release(parent) to return the registered callback")
	}
	cb(parent)
	if !fired {
		t.Fatal("expected destroy callback to fire")
	}
}

func TestEntityRegistrySetParentAlreadyHasParent(t *testing.T) {
	r := newEntityRegistry()
	p1 := r.create()
	p2 := r.create()
	child := r.create()

	if err := r.setParent(child, p1, func(EntityID) {}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := r.setParent(child, p2, func(EntityID) {})
	if _, ok := err.(EntityRelationError); !ok {
		t.Fatalf("want EntityRelationError, got %v (%T)", err, err)
	}
}
