package silo

import "testing"

func TestMaskMarkUnmarkHas(t *testing.T) {
	var m Mask
	m.Mark(3)
	m.Mark(130) // forces growth past one word

	if !m.Has(3) || !m.Has(130) {
		t.Fatal("expected both marked bits to be set")
	}
	if m.Has(4) {
		t.Fatal("expected unmarked bit to be unset")
	}

	m.Unmark(3)
	if m.Has(3) {
		t.Fatal("expected unmarked bit to be cleared")
	}
}

func TestMaskContainsAll(t *testing.T) {
	var a, b Mask
	a.Mark(1)
	a.Mark(2)
	a.Mark(200)
	b.Mark(1)
	b.Mark(200)

	if !a.ContainsAll(b) {
		t.Fatal("expected a to contain all of b")
	}
	if b.ContainsAll(a) {
		t.Fatal("expected b to not contain all of a")
	}
}

func TestMaskContainsAnyNone(t *testing.T) {
	var a, b Mask
	a.Mark(5)
	b.Mark(6)

	if a.ContainsAny(b) {
		t.Fatal("expected disjoint masks to share no bit")
	}
	if !a.ContainsNone(b) {
		t.Fatal("expected ContainsNone to hold for disjoint masks")
	}

	b.Mark(5)
	if !a.ContainsAny(b) {
		t.Fatal("expected overlap to be detected")
	}
}

func TestSignatureCanonicalOrderAndDedup(t *testing.T) {
	sig := NewSignature(5, 1, 3, 1, 5)
	keys := sig.Keys()
	if len(keys) != 3 {
		t.Fatalf("want 3 unique keys, got %d", len(keys))
	}
	for i := 1; i < len(keys); i++ {
		if keys[i-1] >= keys[i] {
			t.Fatalf("keys not in ascending order: %v", keys)
		}
	}
}

func TestSignatureWithWithout(t *testing.T) {
	sig := NewSignature(1, 2)
	withThree := sig.With(3)
	if !withThree.Has(3) || !withThree.Has(1) || !withThree.Has(2) {
		t.Fatalf("expected With to add without dropping existing keys: %v", withThree.Keys())
	}
	if sig.Has(3) {
		t.Fatal("expected With to not mutate the receiver")
	}

	withoutOne := withThree.Without(1)
	if withoutOne.Has(1) {
		t.Fatal("expected Without to remove the key")
	}
	if withoutOne.Len() != 2 {
		t.Fatalf("want len 2 got %d", withoutOne.Len())
	}
}

func TestSignatureMapKeyStableAcrossInsertionOrder(t *testing.T) {
	a := NewSignature(3, 1, 2)
	b := NewSignature(2, 3, 1)
	if a.mapKey() != b.mapKey() {
		t.Fatalf("expected identical signatures to map to the same key regardless of insertion order: %q vs %q", a.mapKey(), b.mapKey())
	}
}
