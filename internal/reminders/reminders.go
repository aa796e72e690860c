// Package reminders owns the list of timestamped text reminders.
package reminders

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"mealplex/internal/storage"
	"mealplex/internal/store"
)

const remindersKey = "reminders"

// Reminder is a text note with an optional due time. A nil Date means the
// reminder is permanently untimed.
type Reminder struct {
	ID   string     `json:"id"`
	Text string     `json:"text"`
	Date *time.Time `json:"date,omitempty"`
}

// Store is the reminders state store.
type Store struct {
	mu        sync.Mutex
	state     store.State
	reminders []Reminder
	gateway   storage.Gateway
	notifier  store.Notifier
	saver     *store.Saver
}

// NewStore creates an empty reminders store over the given gateway.
func NewStore(gateway storage.Gateway) *Store {
	return &Store{
		gateway: gateway,
		saver:   store.NewSaver(gateway),
	}
}

// Init loads persisted reminders and fires one notification.
func (s *Store) Init(ctx context.Context) {
	s.mu.Lock()
	s.state = store.Loading
	s.mu.Unlock()

	var loaded []Reminder
	if found, err := s.gateway.Load(ctx, remindersKey, &loaded); err != nil {
		log.Printf("Failed to load %s, starting empty: %v", remindersKey, err)
	} else if found {
		s.mu.Lock()
		s.reminders = loaded
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

// Reminders returns a copy of the current list.
func (s *Store) Reminders() []Reminder {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Reminder(nil), s.reminders...)
}

// Add creates a reminder with a fresh id. A nil due time leaves it untimed.
func (s *Store) Add(text string, due *time.Time) Reminder {
	r := Reminder{ID: uuid.NewString(), Text: text}
	if due != nil {
		d := due.UTC()
		r.Date = &d
	}

	s.mu.Lock()
	s.reminders = append(s.reminders, r)
	snapshot := append([]Reminder(nil), s.reminders...)
	s.mu.Unlock()

	s.saver.Save(remindersKey, snapshot)
	s.notifier.Notify()
	return r
}

// Remove deletes the reminder with the given id.
func (s *Store) Remove(id string) {
	s.mu.Lock()
	kept := s.reminders[:0]
	for _, r := range s.reminders {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	s.reminders = kept
	snapshot := append([]Reminder(nil), s.reminders...)
	s.mu.Unlock()

	s.saver.Save(remindersKey, snapshot)
	s.notifier.Notify()
}

// Partition splits reminders into upcoming (untimed, or due at/after now)
// and past (due before now). Pure view computation; the store never mutates
// based on time.
func Partition(reminders []Reminder, now time.Time) (upcoming, past []Reminder) {
	for _, r := range reminders {
		if r.Date != nil && r.Date.Before(now) {
			past = append(past, r)
		} else {
			upcoming = append(upcoming, r)
		}
	}
	return upcoming, past
}
