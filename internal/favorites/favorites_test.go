package favorites

import (
	"context"
	"testing"

	"mealplex/internal/dish"
	"mealplex/internal/storage"
)

func TestAddIsIdempotentByID(t *testing.T) {
	s := NewStore(storage.NewMemoryGateway())
	d := dish.Dish{ID: "3", Name: "Palak Paneer"}

	s.Add(d)
	s.Add(d)

	if len(s.Favorites()) != 1 {
		t.Errorf("Expected 1 favorite, got %d", len(s.Favorites()))
	}
}

func TestNoNotifyOnDuplicate(t *testing.T) {
	s := NewStore(storage.NewMemoryGateway())
	d := dish.Dish{ID: "3", Name: "Palak Paneer"}
	s.Add(d)

	calls := 0
	s.Subscribe(func() { calls++ })
	s.Add(d)
	if calls != 0 {
		t.Errorf("Expected no notification for duplicate, got %d", calls)
	}

	s.Add(dish.Dish{ID: "4", Name: "Biryani"})
	if calls != 1 {
		t.Errorf("Expected 1 notification for new favorite, got %d", calls)
	}
}

func TestPersistenceRoundTrip(t *testing.T) {
	gw := storage.NewMemoryGateway()

	s := NewStore(gw)
	s.Add(dish.Dish{ID: "101", Name: "Classic Pancakes", Diet: dish.Egg})
	s.Flush()

	reloaded := NewStore(gw)
	reloaded.Init(context.Background())
	favs := reloaded.Favorites()
	if len(favs) != 1 || favs[0].Name != "Classic Pancakes" {
		t.Errorf("Expected reloaded favorite, got %v", favs)
	}
}
