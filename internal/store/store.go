// Package store holds the pieces every state store shares: the subscriber
// list, the fire-and-forget persistence helper, and the load lifecycle.
package store

import (
	"context"
	"log"
	"sync"

	"mealplex/internal/storage"
)

// State tracks a store's load lifecycle.
type State int

const (
	Uninitialized State = iota
	Loading
	Ready
)

// Listener is a change callback. It receives no payload; subscribers re-read
// the store's current state.
type Listener func()

type listenerEntry struct {
	id int
	fn Listener
}

// Notifier keeps the subscriber list for a store. Listeners are invoked in
// registration order. The list is snapshotted before iteration, so an
// unsubscribe during a notification pass does not affect listeners already
// scheduled to run in that pass.
type Notifier struct {
	mu        sync.Mutex
	listeners []listenerEntry
	nextID    int
}

// Subscribe registers a listener and returns its unsubscribe function.
func (n *Notifier) Subscribe(l Listener) func() {
	n.mu.Lock()
	id := n.nextID
	n.nextID++
	n.listeners = append(n.listeners, listenerEntry{id: id, fn: l})
	n.mu.Unlock()

	return func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		for i, e := range n.listeners {
			if e.id == id {
				n.listeners = append(n.listeners[:i], n.listeners[i+1:]...)
				return
			}
		}
	}
}

// Notify invokes every currently registered listener.
func (n *Notifier) Notify() {
	n.mu.Lock()
	snapshot := make([]listenerEntry, len(n.listeners))
	copy(snapshot, n.listeners)
	n.mu.Unlock()

	for _, e := range snapshot {
		e.fn()
	}
}

// Saver writes store state through a Gateway without blocking the mutator
// that triggered the write. Failures are logged and otherwise dropped; this
// is a best-effort, at-most-once durability guarantee. Callers must pass a
// value that will not be mutated after the call (a copy or a freshly built
// snapshot). Writes to the same key are applied in the order they were
// issued, so the last snapshot saved is the last one persisted.
type Saver struct {
	gateway storage.Gateway
	wg      sync.WaitGroup

	mu    sync.Mutex
	tails map[string]chan struct{}
}

// NewSaver creates a Saver over the given gateway.
func NewSaver(gateway storage.Gateway) *Saver {
	return &Saver{
		gateway: gateway,
		tails:   make(map[string]chan struct{}),
	}
}

// Save persists value under key in the background. Each write waits for the
// previous write to the same key, so a slow earlier save cannot overwrite a
// newer snapshot.
func (s *Saver) Save(key string, value any) {
	done := make(chan struct{})
	s.mu.Lock()
	prev := s.tails[key]
	s.tails[key] = done
	s.mu.Unlock()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer close(done)
		if prev != nil {
			<-prev
		}
		if err := s.gateway.Save(context.Background(), key, value); err != nil {
			log.Printf("Failed to save %s: %v", key, err)
		}
	}()
}

// Wait blocks until all saves issued so far have completed. Used at shutdown
// and by tests.
func (s *Saver) Wait() {
	s.wg.Wait()
}
