package silo

import (
	"testing"

	"github.com/siloworks/silo/observer"
)

// inconsistentNode is a QueryNode stub whose guaranteedComponents lies about
// what validEntities actually returns, used to exercise View1WithRoot's
// runtime consistency check independently of whatever real query node shapes
// happen to keep their guarantees honest today.
type inconsistentNode struct {
	entities   []EntityID
	guaranteed TypeKey
	onChange   observer.Event
}

func (n *inconsistentNode) validEntities() []EntityID { return n.entities }
func (n *inconsistentNode) hasEntity(e EntityID) bool {
	for _, x := range n.entities {
		if x == e {
			return true
		}
	}
	return false
}
func (n *inconsistentNode) guaranteedComponents() map[TypeKey]struct{} {
	return map[TypeKey]struct{}{n.guaranteed: {}}
}
func (n *inconsistentNode) changed() *observer.Event { return &n.onChange }

func TestQueryIntersectionNode(t *testing.T) {
	w := NewSparseWorld().(*sparseWorld)
	a := w.CreateEntity()
	b := w.CreateEntity()
	c := w.CreateEntity()

	AddComponent(w, a, Position{})
	AddComponent(w, a, Velocity{})
	AddComponent(w, b, Position{})
	AddComponent(w, c, Velocity{})

	posNode, _ := QueryNodeFor[Position](w)
	velNode, _ := QueryNodeFor[Velocity](w)
	root := Intersect(posNode, velNode)

	got := root.validEntities()
	if len(got) != 1 || got[0] != a {
		t.Fatalf("want only entity %d, got %v", a, got)
	}
	if !root.hasEntity(a) || root.hasEntity(b) || root.hasEntity(c) {
		t.Fatal("hasEntity disagrees with validEntities")
	}
}

func TestQueryDifferenceNode(t *testing.T) {
	w := NewSparseWorld().(*sparseWorld)
	a := w.CreateEntity()
	b := w.CreateEntity()

	AddComponent(w, a, Position{})
	AddComponent(w, a, Velocity{})
	AddComponent(w, b, Position{})

	posNode, _ := QueryNodeFor[Position](w)
	velNode, _ := QueryNodeFor[Velocity](w)
	root := Difference(posNode, velNode)

	got := root.validEntities()
	if len(got) != 1 || got[0] != b {
		t.Fatalf("want only entity %d (Position without Velocity), got %v", b, got)
	}
}

func TestQueryUnionNode(t *testing.T) {
	w := NewSparseWorld().(*sparseWorld)
	a := w.CreateEntity()
	b := w.CreateEntity()
	c := w.CreateEntity()

	AddComponent(w, a, Position{})
	AddComponent(w, b, Velocity{})
	// c has neither

	posNode, _ := QueryNodeFor[Position](w)
	velNode, _ := QueryNodeFor[Velocity](w)
	root := Union(posNode, velNode)

	if !root.hasEntity(a) || !root.hasEntity(b) || root.hasEntity(c) {
		t.Fatal("expected union to admit entities with either component and reject entities with neither")
	}
	if len(root.validEntities()) != 2 {
		t.Fatalf("want 2 entities got %d", len(root.validEntities()))
	}
}

func TestQueryGuaranteedComponents(t *testing.T) {
	w := NewSparseWorld().(*sparseWorld)
	posNode, _ := QueryNodeFor[Position](w)
	velNode, _ := QueryNodeFor[Velocity](w)

	inter := Intersect(posNode, velNode)
	g := inter.guaranteedComponents()
	if _, ok := g[keyOf[Position]()]; !ok {
		t.Fatal("expected intersection to guarantee Position")
	}
	if _, ok := g[keyOf[Velocity]()]; !ok {
		t.Fatal("expected intersection to guarantee Velocity")
	}

	diff := Difference(posNode, velNode)
	dg := diff.guaranteedComponents()
	if _, ok := dg[keyOf[Position]()]; !ok {
		t.Fatal("expected difference to guarantee its main node's component")
	}
	if _, ok := dg[keyOf[Velocity]()]; ok {
		t.Fatal("expected difference to not guarantee its excluded component")
	}
}

func TestQueryUnionGuaranteesIntersectionOfChildren(t *testing.T) {
	w := NewSparseWorld().(*sparseWorld)
	a := w.CreateEntity()
	b := w.CreateEntity()

	AddComponent(w, a, Position{})
	AddComponent(w, a, Velocity{})
	AddComponent(w, b, Position{})
	AddComponent(w, b, Health{})

	posVelNode := Intersect(mustNode(QueryNodeFor[Position](w)), mustNode(QueryNodeFor[Velocity](w)))
	posHealthNode := Intersect(mustNode(QueryNodeFor[Position](w)), mustNode(QueryNodeFor[Health](w)))
	root := Union(posVelNode, posHealthNode)

	g := root.guaranteedComponents()
	if _, ok := g[keyOf[Position]()]; !ok {
		t.Fatal("expected union to guarantee Position, common to every branch")
	}
	if _, ok := g[keyOf[Velocity]()]; ok {
		t.Fatal("expected union to not guarantee Velocity, absent from one branch")
	}
	if _, ok := g[keyOf[Health]()]; ok {
		t.Fatal("expected union to not guarantee Health, absent from one branch")
	}

	view, err := View1WithRoot[Position](w, root)
	if err != nil {
		t.Fatalf("expected Position to be accepted as guaranteed by union, got: %v", err)
	}
	count := 0
	view(func(EntityID, *Position) bool { count++; return true })
	if count != 2 {
		t.Fatalf("want 2 entities got %d", count)
	}
}

func mustNode(n QueryNode, err error) QueryNode {
	if err != nil {
		panic(err)
	}
	return n
}

func TestViewWithRootRejectsEntityMissingFromStorage(t *testing.T) {
	w := NewSparseWorld().(*sparseWorld)
	a := w.CreateEntity()
	AddComponent(w, a, Position{})
	ghost := EntityID(999999)

	root := &inconsistentNode{entities: []EntityID{a, ghost}, guaranteed: keyOf[Position]()}

	_, err := View1WithRoot[Position](w, root)
	missing, ok := err.(EntityMissingFromStorageError)
	if !ok {
		t.Fatalf("want EntityMissingFromStorageError, got %v (%T)", err, err)
	}
	if missing.Entity != ghost {
		t.Fatalf("want the entity missing from storage (%d) named in the error, got %d", ghost, missing.Entity)
	}
}

func TestViewWithRootRejectsUnguaranteedComponent(t *testing.T) {
	w := NewSparseWorld()
	velNode, _ := QueryNodeFor[Velocity](w)

	_, err := View1WithRoot[Position](w, velNode)
	if _, ok := err.(ComponentNotGuaranteedError); !ok {
		t.Fatalf("want ComponentNotGuaranteedError, got %v (%T)", err, err)
	}
}
