package dish

import "strings"

// MealSlot is one of the four fixed daily meal categories.
type MealSlot string

const (
	Breakfast MealSlot = "breakfast"
	Lunch     MealSlot = "lunch"
	Dinner    MealSlot = "dinner"
	Snack     MealSlot = "snack"
)

// Slots lists all meal slots in day order.
var Slots = []MealSlot{Breakfast, Lunch, Dinner, Snack}

// Valid reports whether s is one of the four known slots.
func (s MealSlot) Valid() bool {
	switch s {
	case Breakfast, Lunch, Dinner, Snack:
		return true
	}
	return false
}

// Diet classifies a dish for the dietary filters.
type Diet string

const (
	Veg    Diet = "veg"
	NonVeg Diet = "non-veg"
	Egg    Diet = "egg"
)

// AllDiets lists every diet value.
var AllDiets = []Diet{Veg, NonVeg, Egg}

// Valid reports whether d is a known diet value.
func (d Diet) Valid() bool {
	switch d {
	case Veg, NonVeg, Egg:
		return true
	}
	return false
}

// Dish is a named food item, either from the static catalog or user-created.
// Catalog dishes are read-only; custom dishes carry a "custom-" prefixed id
// and are owned by the planner store.
type Dish struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Description  string     `json:"description"`
	Image        string     `json:"image"`
	Cuisine      string     `json:"cuisine"`
	Slots        []MealSlot `json:"type,omitempty"`
	Diet         Diet       `json:"diet,omitempty"`
	Ingredients  []string   `json:"ingredients,omitempty"`
	Instructions string     `json:"instructions,omitempty"`
	SourceURL    string     `json:"sourceUrl,omitempty"`
}

// Resolve looks up a dish id in the combined catalog, custom dishes taking
// precedence over static catalog entries on id collision.
func Resolve(custom []Dish, id string) (Dish, bool) {
	for _, d := range custom {
		if d.ID == id {
			return d, true
		}
	}
	for _, d := range Catalog {
		if d.ID == id {
			return d, true
		}
	}
	return Dish{}, false
}

// FindByName returns the first dish whose name matches, ignoring case.
func FindByName(dishes []Dish, name string) (Dish, bool) {
	for _, d := range dishes {
		if strings.EqualFold(d.Name, name) {
			return d, true
		}
	}
	return Dish{}, false
}
