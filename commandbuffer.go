package silo

import "sync"

// CommandBuffer is the deferred-mutation queue systems write to instead of
// touching a World directly while it may be running on several worker
// goroutines at once (spec.md §4.6). Every system group flushes its
// CommandBuffer, single-writer, immediately after the group's systems have
// all returned — grounded on the teacher's operation_queue.go deferral idiom
// and original_source/src/CommandBuffer.h's mutex-guarded AddCommand and
// Flush. Operations are kept exactly as queued; none are merged or
// deduplicated.
type CommandBuffer struct {
	mu  sync.Mutex
	ops []func(World) error
}

// NewCommandBuffer constructs an empty CommandBuffer.
func NewCommandBuffer() *CommandBuffer {
	return &CommandBuffer{}
}

func (b *CommandBuffer) add(op func(World) error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.ops = append(b.ops, op)
}

// CreateEntity queues entity creation. If assign is non-nil, it is called
// with the new EntityID at flush time.
func (b *CommandBuffer) CreateEntity(assign func(EntityID)) {
	b.add(func(w World) error {
		id := w.CreateEntity()
		if assign != nil {
			assign(id)
		}
		return nil
	})
}

// DestroyEntity queues e's deletion.
func (b *CommandBuffer) DestroyEntity(e EntityID) {
	b.add(func(w World) error { return w.DeleteEntity(e) })
}

// CommandAddComponent queues attaching value to e. It is a free function,
// like every other typed accessor in this module, since CommandBuffer's
// queued closures can't carry a method type parameter.
func CommandAddComponent[T Component](b *CommandBuffer, e EntityID, value T) {
	b.add(func(w World) error { return AddComponent[T](w, e, value) })
}

// CommandRemoveComponent queues detaching a T from e.
func CommandRemoveComponent[T Component](b *CommandBuffer, e EntityID) {
	b.add(func(w World) error { return RemoveComponent[T](w, e) })
}

// Pending reports how many operations are queued.
func (b *CommandBuffer) Pending() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.ops)
}

// Flush takes every queued operation off the queue and applies them to w,
// in the order they were queued. If an operation fails, Flush returns its
// error at once and the operations queued after it are discarded without
// being applied. Flush is meant to be called by one goroutine at a
// time between system group runs; it does not itself prevent a concurrent
// add from racing a concurrent flush, since the scheduler's
// auto-flush-after-CallSystemGroup policy already guarantees systems never
// run while a flush is in progress.
func (b *CommandBuffer) Flush(w World) error {
	b.mu.Lock()
	ops := b.ops
	b.ops = nil
	b.mu.Unlock()

	for _, op := range ops {
		if err := op(w); err != nil {
			return err
		}
	}
	return nil
}
