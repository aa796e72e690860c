// Package favorites owns the list of liked dishes from the discovery view.
package favorites

import (
	"context"
	"log"
	"sync"

	"mealplex/internal/dish"
	"mealplex/internal/storage"
	"mealplex/internal/store"
)

const favoritesKey = "favorites"

// Store is the favorites state store. Entries are dish snapshots, unique by
// dish id. There is deliberately no update or removal operation.
type Store struct {
	mu       sync.Mutex
	state    store.State
	dishes   []dish.Dish
	gateway  storage.Gateway
	notifier store.Notifier
	saver    *store.Saver
}

// NewStore creates an empty favorites store over the given gateway.
func NewStore(gateway storage.Gateway) *Store {
	return &Store{
		gateway: gateway,
		saver:   store.NewSaver(gateway),
	}
}

// Init loads persisted favorites and fires one notification.
func (s *Store) Init(ctx context.Context) {
	s.mu.Lock()
	s.state = store.Loading
	s.mu.Unlock()

	var loaded []dish.Dish
	if found, err := s.gateway.Load(ctx, favoritesKey, &loaded); err != nil {
		log.Printf("Failed to load %s, starting empty: %v", favoritesKey, err)
	} else if found {
		s.mu.Lock()
		s.dishes = loaded
		s.mu.Unlock()
	}

	s.mu.Lock()
	s.state = store.Ready
	s.mu.Unlock()
	s.notifier.Notify()
}

// State reports the load lifecycle state.
func (s *Store) State() store.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe registers a change listener and returns its unsubscribe function.
func (s *Store) Subscribe(l store.Listener) func() {
	return s.notifier.Subscribe(l)
}

// Flush waits for outstanding persistence writes.
func (s *Store) Flush() {
	s.saver.Wait()
}

// Favorites returns a copy of the liked-dish list.
func (s *Store) Favorites() []dish.Dish {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]dish.Dish(nil), s.dishes...)
}

// Add inserts a dish snapshot. Duplicate ids are ignored; persistence and
// notification happen only on actual insertion.
func (s *Store) Add(d dish.Dish) {
	s.mu.Lock()
	for _, existing := range s.dishes {
		if existing.ID == d.ID {
			s.mu.Unlock()
			return
		}
	}
	s.dishes = append(s.dishes, d)
	snapshot := append([]dish.Dish(nil), s.dishes...)
	s.mu.Unlock()

	s.saver.Save(favoritesKey, snapshot)
	s.notifier.Notify()
}
