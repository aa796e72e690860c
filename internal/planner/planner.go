// Package planner owns the meal plan (date -> slot -> dish ids) and the list
// of user-created custom dishes.
package planner

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"mealplex/internal/dish"
	"mealplex/internal/storage"
	"mealplex/internal/store"
)

const (
	planKey   = "planner"
	customKey = "customDishes"
)

// DishList is an ordered set of dish ids for one meal slot. Older app
// versions persisted a single id instead of a list; unmarshalling wraps that
// legacy form in a one-element list.
type DishList []string

// UnmarshalJSON accepts either a JSON array of ids or a bare id string.
func (l *DishList) UnmarshalJSON(data []byte) error {
	var ids []string
	if err := json.Unmarshal(data, &ids); err == nil {
		*l = ids
		return nil
	}
	var single string
	if err := json.Unmarshal(data, &single); err != nil {
		return fmt.Errorf("dish list is neither array nor string: %w", err)
	}
	*l = DishList{single}
	return nil
}

// DayPlan maps meal slots to their dish ids. Empty slots are absent.
type DayPlan map[dish.MealSlot]DishList

// Plan maps ISO date keys (YYYY-MM-DD) to day plans. Entries are created
// lazily on first add.
type Plan map[string]DayPlan

// Clone returns a deep copy of the plan.
func (p Plan) Clone() Plan {
	out := make(Plan, len(p))
	for date, day := range p {
		dayCopy := make(DayPlan, len(day))
		for slot, ids := range day {
			dayCopy[slot] = append(DishList(nil), ids...)
		}
		out[date] = dayCopy
	}
	return out
}

// Store is the planner state store. All reads and mutations go through its
// methods; returned collections are copies.
type Store struct {
	mu       sync.Mutex
	state    store.State
	plan     Plan
	custom   []dish.Dish
	gateway  storage.Gateway
	notifier store.Notifier
	saver    *store.Saver

	now func() time.Time
}

// NewStore creates an empty planner store over the given gateway.
func NewStore(gateway storage.Gateway) *Store {
	return &Store{
		plan:    make(Plan),
		gateway: gateway,
		saver:   store.NewSaver(gateway),
		now:     time.Now,
	}
}

// Init loads persisted state. Deserialization failures fall back to the
// empty defaults. Fires one notification on completion.
func (s *Store) Init(ctx context.Context) {
	s.mu.Lock()
	s.state = store.Loading
	s.mu.Unlock()

	var plan Plan
	if found, err := s.gateway.Load(ctx, planKey, &plan); err != nil {
		log.Printf("Failed to load %s, starting empty: %v", planKey, err)
	} else if found {
		s.mu.Lock()
		s.plan = plan
		s.mu.Unlock()
	}

	var custom []dish.Dish
	if found, err := s.gateway.Load(ctx, customKey, &custom); err != nil {
		log.Printf("Failed to load %s, starting empty: %v", customKey, err)
	} else if found {
		s.mu.Lock()
		s.custom = custom
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

// Flush waits for outstanding persistence writes. Used at shutdown.
func (s *Store) Flush() {
	s.saver.Wait()
}

// Plan returns a deep copy of the current plan.
func (s *Store) Plan() Plan {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.plan.Clone()
}

// CustomDishes returns a copy of the user-created dish list.
func (s *Store) CustomDishes() []dish.Dish {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]dish.Dish(nil), s.custom...)
}

// AddCustomDish creates a custom dish, or returns the existing one when a
// dish with the same name (ignoring case) already exists. Persists and
// notifies only on actual creation.
func (s *Store) AddCustomDish(name, image string) dish.Dish {
	s.mu.Lock()
	for _, d := range s.custom {
		if strings.EqualFold(d.Name, name) {
			s.mu.Unlock()
			return d
		}
	}

	newDish := dish.Dish{
		ID:          fmt.Sprintf("custom-%d", s.now().UnixMilli()),
		Name:        name,
		Image:       image,
		Cuisine:     "Custom",
		Slots:       append([]dish.MealSlot(nil), dish.Slots...),
		Diet:        dish.Veg,
		Ingredients: []string{},
	}
	s.custom = append(s.custom, newDish)
	snapshot := append([]dish.Dish(nil), s.custom...)
	s.mu.Unlock()

	s.saver.Save(customKey, snapshot)
	s.notifier.Notify()
	return newDish
}

// ImportDish registers a fully-formed dish (e.g. clipped from a URL) as a
// custom dish. Idempotent by case-insensitive name, like AddCustomDish.
func (s *Store) ImportDish(d dish.Dish) dish.Dish {
	s.mu.Lock()
	for _, existing := range s.custom {
		if strings.EqualFold(existing.Name, d.Name) {
			s.mu.Unlock()
			return existing
		}
	}

	d.ID = fmt.Sprintf("custom-%d", s.now().UnixMilli())
	if d.Cuisine == "" {
		d.Cuisine = "Custom"
	}
	if len(d.Slots) == 0 {
		d.Slots = append([]dish.MealSlot(nil), dish.Slots...)
	}
	if d.Diet == "" {
		d.Diet = dish.Veg
	}
	s.custom = append(s.custom, d)
	snapshot := append([]dish.Dish(nil), s.custom...)
	s.mu.Unlock()

	s.saver.Save(customKey, snapshot)
	s.notifier.Notify()
	return d
}

// UpdateCustomDish renames a custom dish in place. Unknown ids are a no-op,
// but the store still persists and notifies.
func (s *Store) UpdateCustomDish(id, name string) {
	s.mu.Lock()
	for i := range s.custom {
		if s.custom[i].ID == id {
			s.custom[i].Name = name
			break
		}
	}
	snapshot := append([]dish.Dish(nil), s.custom...)
	s.mu.Unlock()

	s.saver.Save(customKey, snapshot)
	s.notifier.Notify()
}

// DeleteCustomDish removes a custom dish by id. Notifies unconditionally.
func (s *Store) DeleteCustomDish(id string) {
	s.mu.Lock()
	kept := s.custom[:0]
	for _, d := range s.custom {
		if d.ID != id {
			kept = append(kept, d)
		}
	}
	s.custom = kept
	snapshot := append([]dish.Dish(nil), s.custom...)
	s.mu.Unlock()

	s.saver.Save(customKey, snapshot)
	s.notifier.Notify()
}

// DishesForDate returns the dish ids planned for date+slot, or an empty list
// when nothing is planned.
func (s *Store) DishesForDate(date string, slot dish.MealSlot) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	day, ok := s.plan[date]
	if !ok {
		return []string{}
	}
	return append([]string{}, day[slot]...)
}

// AddDishToDate appends dishID to the date+slot list, creating the date
// entry lazily. Duplicate ids within a slot are suppressed; persistence and
// notification only happen when the plan actually changed.
func (s *Store) AddDishToDate(date string, slot dish.MealSlot, dishID string) {
	s.mu.Lock()
	day, ok := s.plan[date]
	if !ok {
		day = make(DayPlan)
		s.plan[date] = day
	}
	for _, id := range day[slot] {
		if id == dishID {
			s.mu.Unlock()
			return
		}
	}
	day[slot] = append(day[slot], dishID)
	snapshot := s.plan.Clone()
	s.mu.Unlock()

	s.saver.Save(planKey, snapshot)
	s.notifier.Notify()
}

// RemoveDishFromDate filters dishID out of the date+slot list. Missing dates
// or slots are a no-op.
func (s *Store) RemoveDishFromDate(date string, slot dish.MealSlot, dishID string) {
	s.mu.Lock()
	day, ok := s.plan[date]
	if !ok {
		s.mu.Unlock()
		return
	}
	ids, ok := day[slot]
	if !ok {
		s.mu.Unlock()
		return
	}
	kept := ids[:0]
	for _, id := range ids {
		if id != dishID {
			kept = append(kept, id)
		}
	}
	day[slot] = kept
	snapshot := s.plan.Clone()
	s.mu.Unlock()

	s.saver.Save(planKey, snapshot)
	s.notifier.Notify()
}
