// Package shopping owns the shopping list: manual items, items generated
// from the meal plan, and the heuristic ingredient categorization.
package shopping

import (
	"context"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"mealplex/internal/dish"
	"mealplex/internal/planner"
	"mealplex/internal/storage"
	"mealplex/internal/store"
)

const listKey = "shoppingList"

// Item is one shopping-list entry.
type Item struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Checked     bool     `json:"checked"`
	Category    Category `json:"category"`
	Quantity    string   `json:"quantity,omitempty"`
	FromMeals   []string `json:"fromMeals,omitempty"`
	IsGenerated bool     `json:"isGenerated,omitempty"`
}

// Store is the shopping-list state store.
type Store struct {
	mu       sync.Mutex
	state    store.State
	items    []Item
	gateway  storage.Gateway
	notifier store.Notifier
	saver    *store.Saver
}

// NewStore creates an empty shopping store over the given gateway.
func NewStore(gateway storage.Gateway) *Store {
	return &Store{
		gateway: gateway,
		saver:   store.NewSaver(gateway),
	}
}

// Init loads the persisted list. Items persisted before categorization
// existed get their category back-filled by the categorizer. Fires one
// notification on completion.
func (s *Store) Init(ctx context.Context) {
	s.mu.Lock()
	s.state = store.Loading
	s.mu.Unlock()

	var items []Item
	if found, err := s.gateway.Load(ctx, listKey, &items); err != nil {
		log.Printf("Failed to load %s, starting empty: %v", listKey, err)
	} else if found {
		for i := range items {
			if !items[i].Category.Valid() {
				items[i].Category = Categorize(items[i].Name)
			}
		}
		s.mu.Lock()
		s.items = items
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

// Items returns a copy of the current item list.
func (s *Store) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Item(nil), s.items...)
}

// ItemsByCategory groups all items into the six fixed buckets, preserving
// insertion order within each bucket. Every bucket is present in the result,
// empty or not.
func (s *Store) ItemsByCategory() map[Category][]Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	grouped := make(map[Category][]Item, len(Categories))
	for _, cat := range Categories {
		grouped[cat] = []Item{}
	}
	for _, item := range s.items {
		grouped[item.Category] = append(grouped[item.Category], item)
	}
	return grouped
}

// AddItem creates an unchecked item. An empty or unknown category runs the
// categorizer against the name, so every stored item lands in one of the six
// buckets.
func (s *Store) AddItem(name string, category Category) Item {
	if !category.Valid() {
		category = Categorize(name)
	}
	item := Item{
		ID:       uuid.NewString(),
		Name:     name,
		Checked:  false,
		Category: category,
	}

	s.mu.Lock()
	s.items = append(s.items, item)
	snapshot := append([]Item(nil), s.items...)
	s.mu.Unlock()

	s.saver.Save(listKey, snapshot)
	s.notifier.Notify()
	return item
}

// AddItemWithDetails accepts a fully-formed item minus id, for programmatic
// additions. An empty or unknown category is back-filled by the categorizer.
func (s *Store) AddItemWithDetails(item Item) Item {
	item.ID = uuid.NewString()
	if !item.Category.Valid() {
		item.Category = Categorize(item.Name)
	}

	s.mu.Lock()
	s.items = append(s.items, item)
	snapshot := append([]Item(nil), s.items...)
	s.mu.Unlock()

	s.saver.Save(listKey, snapshot)
	s.notifier.Notify()
	return item
}

// ToggleItem flips the checked flag of the item with the given id.
func (s *Store) ToggleItem(id string) {
	s.mu.Lock()
	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].Checked = !s.items[i].Checked
			break
		}
	}
	snapshot := append([]Item(nil), s.items...)
	s.mu.Unlock()

	s.saver.Save(listKey, snapshot)
	s.notifier.Notify()
}

// RemoveItem deletes the item with the given id.
func (s *Store) RemoveItem(id string) {
	s.removeWhere(func(i Item) bool { return i.ID == id })
}

// ClearChecked removes all checked items.
func (s *Store) ClearChecked() {
	s.removeWhere(func(i Item) bool { return i.Checked })
}

// ClearGenerated removes all auto-generated items.
func (s *Store) ClearGenerated() {
	s.removeWhere(func(i Item) bool { return i.IsGenerated })
}

func (s *Store) removeWhere(drop func(Item) bool) {
	s.mu.Lock()
	kept := s.items[:0]
	for _, item := range s.items {
		if !drop(item) {
			kept = append(kept, item)
		}
	}
	s.items = kept
	snapshot := append([]Item(nil), s.items...)
	s.mu.Unlock()

	s.saver.Save(listKey, snapshot)
	s.notifier.Notify()
}

// GenerateFromPlan scans `days` consecutive dates starting at startDate,
// resolves every planned dish against the combined catalog (custom dishes
// take precedence), and accumulates each trimmed ingredient string together
// with the dish names that reference it. Previously generated items are
// replaced wholesale; manual items survive and suppress generated duplicates
// by case-insensitive name. Returns the number of newly generated items.
//
// Ingredient keys are the trimmed verbatim strings: two ingredients differing
// only in case or inner whitespace stay distinct. Checked state on old
// generated items is lost on regeneration.
func (s *Store) GenerateFromPlan(plan planner.Plan, customDishes []dish.Dish, startDate time.Time, days int) int {
	type accumulated struct {
		category Category
		meals    map[string]struct{}
		order    int
	}
	ingredients := make(map[string]*accumulated)
	nextOrder := 0

	for i := 0; i < days; i++ {
		dateKey := startDate.AddDate(0, 0, i).Format("2006-01-02")
		day, ok := plan[dateKey]
		if !ok {
			continue
		}
		for _, slot := range dish.Slots {
			for _, dishID := range day[slot] {
				d, ok := dish.Resolve(customDishes, dishID)
				if !ok {
					continue
				}
				for _, ing := range d.Ingredients {
					name := strings.TrimSpace(ing)
					acc, ok := ingredients[name]
					if !ok {
						acc = &accumulated{
							category: Categorize(name),
							meals:    make(map[string]struct{}),
							order:    nextOrder,
						}
						nextOrder++
						ingredients[name] = acc
					}
					acc.meals[d.Name] = struct{}{}
				}
			}
		}
	}

	// Stable output order: first occurrence in the scan window.
	names := make([]string, 0, len(ingredients))
	for name := range ingredients {
		names = append(names, name)
	}
	sort.Slice(names, func(a, b int) bool {
		return ingredients[names[a]].order < ingredients[names[b]].order
	})

	s.mu.Lock()
	manual := make([]Item, 0, len(s.items))
	for _, item := range s.items {
		if !item.IsGenerated {
			manual = append(manual, item)
		}
	}

	generated := make([]Item, 0, len(names))
	for _, name := range names {
		existsManual := false
		for _, m := range manual {
			if strings.EqualFold(m.Name, name) {
				existsManual = true
				break
			}
		}
		if existsManual {
			continue
		}

		acc := ingredients[name]
		meals := make([]string, 0, len(acc.meals))
		for meal := range acc.meals {
			meals = append(meals, meal)
		}
		sort.Strings(meals)

		generated = append(generated, Item{
			ID:          uuid.NewString(),
			Name:        name,
			Checked:     false,
			Category:    acc.category,
			FromMeals:   meals,
			IsGenerated: true,
		})
	}

	s.items = append(manual, generated...)
	snapshot := append([]Item(nil), s.items...)
	s.mu.Unlock()

	s.saver.Save(listKey, snapshot)
	s.notifier.Notify()
	return len(generated)
}
