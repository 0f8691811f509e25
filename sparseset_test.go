package silo

import "testing"

func TestSparseSetSetGet(t *testing.T) {
	s := newSparseSet[int](0)
	s.set(5, 42)
	s.set(1200, 7) // crosses a page boundary

	if got := s.get(5); got == nil || *got != 42 {
		t.Fatalf("want 42 at entity 5, got %v", got)
	}
	if got := s.get(1200); got == nil || *got != 7 {
		t.Fatalf("want 7 at entity 1200, got %v", got)
	}
	if s.get(6) != nil {
		t.Fatal("expected absent entity to return nil")
	}
}

func TestSparseSetOverwriteInPlace(t *testing.T) {
	s := newSparseSet[int](0)
	s.set(5, 1)
	s.set(5, 2)

	if s.size() != 1 {
		t.Fatalf("want size 1 after overwrite, got %d", s.size())
	}
	if got := s.get(5); *got != 2 {
		t.Fatalf("want overwritten value 2, got %d", *got)
	}
}

func TestSparseSetDeleteSwapRemove(t *testing.T) {
	s := newSparseSet[int](0)
	s.set(1, 10)
	s.set(2, 20)
	s.set(3, 30)

	if !s.delete(1) {
		t.Fatal("expected delete to report success")
	}
	if s.has(1) {
		t.Fatal("expected entity 1 to be gone")
	}
	if !s.has(2) || !s.has(3) {
		t.Fatal("expected entities 2 and 3 to survive the swap-remove")
	}
	if s.size() != 2 {
		t.Fatalf("want size 2, got %d", s.size())
	}
	if got := s.get(2); *got != 20 {
		t.Fatalf("expected entity 2's value to survive relocation, got %d", *got)
	}
}

func TestSparseSetDeleteAbsentIsNoop(t *testing.T) {
	s := newSparseSet[int](0)
	s.set(1, 10)
	if s.delete(99) {
		t.Fatal("expected deleting an absent entity to report false")
	}
	if s.size() != 1 {
		t.Fatalf("want size unchanged at 1, got %d", s.size())
	}
}

func TestSparseSetIndicesDenseOrder(t *testing.T) {
	s := newSparseSet[int](0)
	s.set(3, 0)
	s.set(7, 0)
	s.set(2, 0)

	idx := s.indices()
	want := []EntityID{3, 7, 2}
	if len(idx) != len(want) {
		t.Fatalf("want %d indices got %d", len(want), len(idx))
	}
	for i := range want {
		if idx[i] != want[i] {
			t.Fatalf("want dense order %v got %v", want, idx)
		}
	}
}

func TestSparseSetChangedFiresOnInsertAndDelete(t *testing.T) {
	s := newSparseSet[int](0)
	fired := 0
	s.changed().Subscribe(func() { fired++ })

	s.set(1, 1)
	if fired != 1 {
		t.Fatalf("want 1 notification after insert, got %d", fired)
	}

	s.set(1, 2) // overwrite, not insert
	if fired != 1 {
		t.Fatalf("want no extra notification on overwrite, got %d", fired)
	}

	s.delete(1)
	if fired != 2 {
		t.Fatalf("want 2nd notification after delete, got %d", fired)
	}
}
