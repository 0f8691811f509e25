/*
Package silo is an Entity-Component-System core runtime with two
interchangeable storage strategies: an archetype (SoA table) store, and a
paged sparse-set store with a composable AND/OR/difference query engine.

Core Concepts:

  - Entity: an opaque EntityID minted by a World.
  - Component: any plain Go value type attached to an entity.
  - World: the entity registry and owner of component storage, either
    archetype-based or sparse-set-based behind the same interface.
  - Engine: ties a World to priority-ordered system groups, each identified
    by an opaque SystemGroupID, and a shared worker pool.

Basic Usage:

	world := silo.Factory.NewArchetypeWorld()
	e := world.CreateEntity()
	silo.AddComponent(world, e, Position{X: 1, Y: 2})
	silo.AddComponent(world, e, Velocity{X: 0.5})

	engine := silo.Factory.NewEngine(world, 4)
	update := engine.CreateSystemGroup()
	engine.RegisterSystem(update, 0, silo.QuerySystem2(
		func(_ silo.EntityID, pos *Position, vel *Velocity) error {
			pos.X += vel.X
			pos.Y += vel.Y
			return nil
		},
	))
	engine.CallSystemGroup(update)

Either World implementation can be swapped in without touching system code:
silo.Factory.NewSparseWorld() satisfies the same World interface and the
same QuerySystem/GetView accessors.

Engines log archetype creation, system group dispatch, and worker pool
lifecycle through a zap.Logger; silo.Config.SetLogger replaces the default
no-op logger.
*/
package silo
