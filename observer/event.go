// Package observer implements the event/observer primitive the query engine
// subscribes to for change notification (spec.md §6): subscribe, unsubscribe,
// and invoke, with reentrant use during an active invocation treated as a
// hard error rather than undefined behavior.
//
// The original implementation (original_source/src/Utilities/Events.h) keyed
// subscriptions by the raw memory address of the listener and callback, which
// the spec's design notes (§9) flag as fragile. This package instead hands
// back an opaque Subscription on Subscribe; Unsubscribe consumes it.
package observer

import "sync"

// ReentrancyError is returned when Subscribe, Unsubscribe, or Invoke is
// called while an Invoke of the same Event is already running — including
// from inside a callback the same Invoke is calling.
type ReentrancyError struct{}

func (ReentrancyError) Error() string {
	return "event is already invoking; reentrant subscribe/unsubscribe/invoke is not allowed"
}

// Subscription is an opaque handle returned by Subscribe. It is only valid
// for the Event that produced it.
type Subscription struct {
	id uint64
}

// Event is a zero-argument observer: callbacks registered via Subscribe are
// all invoked, in unspecified order, when Invoke is called. It is the
// primitive query nodes use to propagate change notification up the query
// DAG (spec.md §4.5); query nodes never pass payloads through it, so it
// carries no argument type parameter.
type Event struct {
	mu        sync.Mutex
	running   bool
	nextID    uint64
	callbacks map[uint64]func()
}

// Subscribe registers fn to be called on every future Invoke, returning a
// handle usable with Unsubscribe. Subscribing while Invoke is running fails
// with ReentrancyError.
func (e *Event) Subscribe(fn func()) (Subscription, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.running {
		return Subscription{}, ReentrancyError{}
	}
	if e.callbacks == nil {
		e.callbacks = make(map[uint64]func())
	}
	e.nextID++
	id := e.nextID
	e.callbacks[id] = fn
	return Subscription{id: id}, nil
}

// Unsubscribe removes the callback associated with sub. Unsubscribing an
// already-removed or zero-value Subscription is a no-op. Unsubscribing while
// Invoke is running fails with ReentrancyError.
func (e *Event) Unsubscribe(sub Subscription) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.running {
		return ReentrancyError{}
	}
	delete(e.callbacks, sub.id)
	return nil
}

// Invoke calls every currently-subscribed callback in unspecified order.
// Invoking an Event that is already invoking (including recursively from
// within one of its own callbacks) fails with ReentrancyError instead of
// deadlocking or re-entering.
func (e *Event) Invoke() error {
	e.mu.Lock()
	if e.running {
		e.mu.Unlock()
		return ReentrancyError{}
	}
	e.running = true
	callbacks := make([]func(), 0, len(e.callbacks))
	for _, cb := range e.callbacks {
		callbacks = append(callbacks, cb)
	}
	e.mu.Unlock()

	defer func() {
		e.mu.Lock()
		e.running = false
		e.mu.Unlock()
	}()

	for _, cb := range callbacks {
		cb()
	}
	return nil
}
