package silo

import "testing"

func TestSimpleCacheRegisterAndGet(t *testing.T) {
	c := NewSimpleCache[string](2)

	idx, err := c.Register("a", "hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := c.GetItem(idx); *got != "hello" {
		t.Fatalf("want hello got %s", *got)
	}

	if _, ok := c.GetIndex("missing"); ok {
		t.Fatal("expected missing key to not be found")
	}
}

func TestSimpleCacheMaxCapacity(t *testing.T) {
	c := NewSimpleCache[int](1)
	if _, err := c.Register("a", 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err := c.Register("b", 2)
	full, ok := err.(CacheFullError)
	if !ok {
		t.Fatalf("want CacheFullError, got %v (%T)", err, err)
	}
	if full.Capacity != 1 {
		t.Fatalf("want capacity 1 in the error, got %d", full.Capacity)
	}
}

func TestSimpleCacheClear(t *testing.T) {
	c := NewSimpleCache[int](4)
	c.Register("a", 1)
	c.Clear()
	if _, ok := c.GetIndex("a"); ok {
		t.Fatal("expected Clear to drop all entries")
	}
}

func TestViewCacheRecomputesOnGenerationChange(t *testing.T) {
	w := NewSparseWorld()
	e := w.CreateEntity()
	AddComponent(w, e, Position{})

	vc := NewViewCache(w, 8)
	calls := 0
	compute := func() []EntityID {
		calls++
		view, _ := GetView1[Position](w)
		var out []EntityID
		view(func(id EntityID, _ *Position) bool { out = append(out, id); return true })
		return out
	}

	first := vc.GetOrCompute("position", compute)
	second := vc.GetOrCompute("position", compute)
	if calls != 1 {
		t.Fatalf("want 1 compute call for an unchanged world, got %d", calls)
	}
	if len(first) != 1 || len(second) != 1 {
		t.Fatalf("want 1 entity in both results, got %v and %v", first, second)
	}

	e2 := w.CreateEntity()
	AddComponent(w, e2, Position{})

	third := vc.GetOrCompute("position", compute)
	if calls != 2 {
		t.Fatalf("want a recompute after the world's generation advanced, got %d calls", calls)
	}
	if len(third) != 2 {
		t.Fatalf("want 2 entities after adding one, got %d", len(third))
	}
}
