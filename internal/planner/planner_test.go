package planner

import (
	"context"
	"testing"
	"time"

	"mealplex/internal/dish"
	"mealplex/internal/storage"
	"mealplex/internal/store"
)

func newTestStore() *Store {
	s := NewStore(storage.NewMemoryGateway())
	// Deterministic, strictly increasing clock so generated ids never collide.
	tick := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time {
		tick = tick.Add(time.Millisecond)
		return tick
	}
	return s
}

func TestAddDishToDate(t *testing.T) {
	t.Run("Idempotent", func(t *testing.T) {
		s := newTestStore()
		s.AddDishToDate("2025-06-02", dish.Dinner, "3")
		s.AddDishToDate("2025-06-02", dish.Dinner, "3")

		ids := s.DishesForDate("2025-06-02", dish.Dinner)
		if len(ids) != 1 || ids[0] != "3" {
			t.Errorf("Expected slot to hold ['3'] exactly once, got %v", ids)
		}
	})

	t.Run("NoNotifyOnDuplicate", func(t *testing.T) {
		s := newTestStore()
		s.AddDishToDate("2025-06-02", dish.Dinner, "3")

		calls := 0
		s.Subscribe(func() { calls++ })
		s.AddDishToDate("2025-06-02", dish.Dinner, "3")

		if calls != 0 {
			t.Errorf("Expected no notification for duplicate add, got %d", calls)
		}
	})

	t.Run("OrderPreserved", func(t *testing.T) {
		s := newTestStore()
		s.AddDishToDate("2025-06-02", dish.Breakfast, "101")
		s.AddDishToDate("2025-06-02", dish.Breakfast, "104")

		ids := s.DishesForDate("2025-06-02", dish.Breakfast)
		if len(ids) != 2 || ids[0] != "101" || ids[1] != "104" {
			t.Errorf("Expected ['101' '104'], got %v", ids)
		}
	})
}

func TestDishesForDate(t *testing.T) {
	t.Run("EmptyWhenAbsent", func(t *testing.T) {
		s := newTestStore()
		ids := s.DishesForDate("2025-06-09", dish.Lunch)
		if ids == nil {
			t.Fatal("Expected empty list, got nil")
		}
		if len(ids) != 0 {
			t.Errorf("Expected empty list, got %v", ids)
		}
	})

	t.Run("LegacySingleIDValue", func(t *testing.T) {
		gw := storage.NewMemoryGateway()
		// Old versions stored a bare id instead of a list.
		legacy := map[string]map[string]any{
			"2025-06-02": {"dinner": "4"},
		}
		if err := gw.Save(context.Background(), "planner", legacy); err != nil {
			t.Fatalf("Failed to seed legacy plan: %v", err)
		}

		s := NewStore(gw)
		s.Init(context.Background())

		ids := s.DishesForDate("2025-06-02", dish.Dinner)
		if len(ids) != 1 || ids[0] != "4" {
			t.Errorf("Expected legacy value wrapped as ['4'], got %v", ids)
		}
	})
}

func TestRemoveDishFromDate(t *testing.T) {
	s := newTestStore()
	s.AddDishToDate("2025-06-02", dish.Lunch, "1")
	s.AddDishToDate("2025-06-02", dish.Lunch, "2")

	s.RemoveDishFromDate("2025-06-02", dish.Lunch, "1")
	ids := s.DishesForDate("2025-06-02", dish.Lunch)
	if len(ids) != 1 || ids[0] != "2" {
		t.Errorf("Expected ['2'] after removal, got %v", ids)
	}

	// Missing dates and slots are no-ops, not errors.
	s.RemoveDishFromDate("2025-01-01", dish.Lunch, "1")
	s.RemoveDishFromDate("2025-06-02", dish.Snack, "1")
}

func TestAddCustomDish(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		s := newTestStore()
		d := s.AddCustomDish("Bread Butter", "")

		if d.Diet != dish.Veg {
			t.Errorf("Expected diet veg, got %s", d.Diet)
		}
		if len(d.Slots) != 4 {
			t.Errorf("Expected all 4 slots, got %v", d.Slots)
		}
		if d.Ingredients == nil || len(d.Ingredients) != 0 {
			t.Errorf("Expected empty ingredient list, got %v", d.Ingredients)
		}
		if len(d.ID) < len("custom-") || d.ID[:7] != "custom-" {
			t.Errorf("Expected id with custom- prefix, got %s", d.ID)
		}
	})

	t.Run("CaseInsensitiveIdempotency", func(t *testing.T) {
		s := newTestStore()
		first := s.AddCustomDish("Bread Butter", "")
		second := s.AddCustomDish("bread butter", "")

		if first.ID != second.ID {
			t.Errorf("Expected same dish id both times, got %s and %s", first.ID, second.ID)
		}
		if len(s.CustomDishes()) != 1 {
			t.Errorf("Expected 1 custom dish, got %d", len(s.CustomDishes()))
		}
	})

	t.Run("NoNotifyOnExisting", func(t *testing.T) {
		s := newTestStore()
		s.AddCustomDish("Pancake", "")

		calls := 0
		s.Subscribe(func() { calls++ })
		s.AddCustomDish("PANCAKE", "")

		if calls != 0 {
			t.Errorf("Expected no notification for existing dish, got %d", calls)
		}
	})
}

func TestUpdateDeleteCustomDish(t *testing.T) {
	s := newTestStore()
	d := s.AddCustomDish("Poha", "")

	s.UpdateCustomDish(d.ID, "Kanda Poha")
	dishes := s.CustomDishes()
	if len(dishes) != 1 || dishes[0].Name != "Kanda Poha" {
		t.Errorf("Expected renamed dish, got %v", dishes)
	}

	// Unknown ids still notify (documented behavior).
	calls := 0
	s.Subscribe(func() { calls++ })
	s.UpdateCustomDish("missing", "x")
	s.DeleteCustomDish("missing")
	if calls != 2 {
		t.Errorf("Expected 2 notifications for no-op update/delete, got %d", calls)
	}

	s.DeleteCustomDish(d.ID)
	if len(s.CustomDishes()) != 0 {
		t.Errorf("Expected empty custom dish list after delete, got %v", s.CustomDishes())
	}
}

func TestImportDish(t *testing.T) {
	s := newTestStore()
	d := s.ImportDish(dish.Dish{
		Name:        "Shakshuka",
		Ingredients: []string{"Eggs", "Tomato", "Onion"},
		SourceURL:   "https://example.com/shakshuka",
	})

	if d.ID[:7] != "custom-" {
		t.Errorf("Expected custom- id, got %s", d.ID)
	}
	if d.Cuisine != "Custom" {
		t.Errorf("Expected cuisine Custom, got %s", d.Cuisine)
	}
	if len(d.Slots) != 4 {
		t.Errorf("Expected all slots by default, got %v", d.Slots)
	}

	again := s.ImportDish(dish.Dish{Name: "shakshuka"})
	if again.ID != d.ID {
		t.Errorf("Expected import to be idempotent by name, got %s and %s", d.ID, again.ID)
	}
}

func TestSubscribeNoReplay(t *testing.T) {
	s := newTestStore()
	s.AddDishToDate("2025-06-02", dish.Dinner, "3")

	calls := 0
	s.Subscribe(func() { calls++ })
	if calls != 0 {
		t.Errorf("Expected no replay of prior mutations, got %d calls", calls)
	}

	s.AddDishToDate("2025-06-02", dish.Dinner, "4")
	if calls != 1 {
		t.Errorf("Expected 1 notification for new mutation, got %d", calls)
	}
}

func TestSubscriberSeesPostMutationState(t *testing.T) {
	s := newTestStore()
	var seen []string
	s.Subscribe(func() {
		seen = s.DishesForDate("2025-06-02", dish.Dinner)
	})

	s.AddDishToDate("2025-06-02", dish.Dinner, "3")
	if len(seen) != 1 || seen[0] != "3" {
		t.Errorf("Expected subscriber to observe post-mutation value, got %v", seen)
	}
}

func TestPersistenceRoundTrip(t *testing.T) {
	gw := storage.NewMemoryGateway()

	s := NewStore(gw)
	s.AddDishToDate("2025-06-02", dish.Dinner, "3")
	s.AddCustomDish("Upma", "")
	s.Flush()

	reloaded := NewStore(gw)
	if reloaded.State() != store.Uninitialized {
		t.Fatalf("Expected Uninitialized before Init, got %v", reloaded.State())
	}
	reloaded.Init(context.Background())
	if reloaded.State() != store.Ready {
		t.Fatalf("Expected Ready after Init, got %v", reloaded.State())
	}

	ids := reloaded.DishesForDate("2025-06-02", dish.Dinner)
	if len(ids) != 1 || ids[0] != "3" {
		t.Errorf("Expected reloaded plan to hold ['3'], got %v", ids)
	}
	if len(reloaded.CustomDishes()) != 1 {
		t.Errorf("Expected 1 reloaded custom dish, got %d", len(reloaded.CustomDishes()))
	}
}
