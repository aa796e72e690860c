// Package preferences owns the active dietary filters.
package preferences

import (
	"context"
	"log"
	"sync"

	"mealplex/internal/dish"
	"mealplex/internal/storage"
	"mealplex/internal/store"
)

const preferencesKey = "preferences"

type persisted struct {
	DietaryFilters []dish.Diet `json:"dietaryFilters"`
}

// Store holds the set of active diet filters. The set is never empty: the
// last remaining filter cannot be toggled off.
type Store struct {
	mu       sync.Mutex
	state    store.State
	filters  []dish.Diet
	gateway  storage.Gateway
	notifier store.Notifier
	saver    *store.Saver
}

// NewStore creates a preferences store with all three diets active.
func NewStore(gateway storage.Gateway) *Store {
	return &Store{
		filters: append([]dish.Diet(nil), dish.AllDiets...),
		gateway: gateway,
		saver:   store.NewSaver(gateway),
	}
}

// Init loads persisted filters. A persisted empty list is ignored to keep
// the non-empty invariant. Fires one notification on completion.
func (s *Store) Init(ctx context.Context) {
	s.mu.Lock()
	s.state = store.Loading
	s.mu.Unlock()

	var loaded persisted
	if found, err := s.gateway.Load(ctx, preferencesKey, &loaded); err != nil {
		log.Printf("Failed to load %s, keeping defaults: %v", preferencesKey, err)
	} else if found && len(loaded.DietaryFilters) > 0 {
		s.mu.Lock()
		s.filters = loaded.DietaryFilters
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

// Filters returns a copy of the active filter set.
func (s *Store) Filters() []dish.Diet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]dish.Diet(nil), s.filters...)
}

// ToggleFilter removes d when present and more than one filter remains
// active, or adds it when absent. Toggling the last active filter off is
// silently rejected; the store still persists and notifies, matching the
// other unconditional mutators.
func (s *Store) ToggleFilter(d dish.Diet) {
	s.mu.Lock()
	idx := -1
	for i, f := range s.filters {
		if f == d {
			idx = i
			break
		}
	}
	if idx >= 0 {
		if len(s.filters) > 1 {
			s.filters = append(s.filters[:idx], s.filters[idx+1:]...)
		}
	} else {
		s.filters = append(s.filters, d)
	}
	snapshot := persisted{DietaryFilters: append([]dish.Diet(nil), s.filters...)}
	s.mu.Unlock()

	s.saver.Save(preferencesKey, snapshot)
	s.notifier.Notify()
}

// SetAllFilters resets the set to all three diet values.
func (s *Store) SetAllFilters() {
	s.mu.Lock()
	s.filters = append([]dish.Diet(nil), dish.AllDiets...)
	snapshot := persisted{DietaryFilters: append([]dish.Diet(nil), s.filters...)}
	s.mu.Unlock()

	s.saver.Save(preferencesKey, snapshot)
	s.notifier.Notify()
}
