package mealdb

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"mealplex/internal/dish"
)

const omeletteJSON = `{"meals":[{
	"idMeal":"52958",
	"strMeal":"Spanish Omelette",
	"strCategory":"Breakfast",
	"strArea":"Spanish",
	"strInstructions":"Beat the eggs.",
	"strMealThumb":"https://example.test/omelette.jpg",
	"strTags":"Egg,Breakfast",
	"strIngredient1":"Eggs",
	"strMeasure1":"4",
	"strIngredient2":"Potato",
	"strMeasure2":"2 large",
	"strIngredient3":"",
	"strMeasure3":null
}]}`

func TestSearch(t *testing.T) {
	t.Run("NameHit", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/search.php" {
				t.Errorf("Unexpected path %s", r.URL.Path)
			}
			w.Write([]byte(omeletteJSON))
		}))
		defer srv.Close()

		c := NewClient(srv.URL)
		dishes, err := c.Search(context.Background(), "omelette")
		if err != nil {
			t.Fatalf("Search failed: %v", err)
		}
		if len(dishes) != 1 {
			t.Fatalf("Expected 1 dish, got %d", len(dishes))
		}

		d := dishes[0]
		if d.ID != "52958" || d.Name != "Spanish Omelette" {
			t.Errorf("Unexpected dish identity: %+v", d)
		}
		if d.Diet != dish.Egg {
			t.Errorf("Expected diet egg, got %s", d.Diet)
		}
		if len(d.Slots) != 1 || d.Slots[0] != dish.Breakfast {
			t.Errorf("Expected breakfast slot, got %v", d.Slots)
		}
		if len(d.Ingredients) != 2 {
			t.Fatalf("Expected 2 ingredients, got %v", d.Ingredients)
		}
		if d.Ingredients[0] != "4 Eggs" || d.Ingredients[1] != "2 large Potato" {
			t.Errorf("Expected measure-prefixed ingredients, got %v", d.Ingredients)
		}
	})

	t.Run("FallbackToAreaFilterWithHydration", func(t *testing.T) {
		var paths []string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			paths = append(paths, r.URL.Path)
			switch r.URL.Path {
			case "/search.php":
				w.Write([]byte(`{"meals":null}`))
			case "/filter.php":
				w.Write([]byte(`{"meals":[{"idMeal":"52958","strMeal":"Spanish Omelette","strMealThumb":"x"}]}`))
			case "/lookup.php":
				w.Write([]byte(omeletteJSON))
			default:
				t.Errorf("Unexpected path %s", r.URL.Path)
			}
		}))
		defer srv.Close()

		c := NewClient(srv.URL)
		dishes, err := c.Search(context.Background(), "Spanish")
		if err != nil {
			t.Fatalf("Search failed: %v", err)
		}
		if len(dishes) != 1 || dishes[0].Instructions != "Beat the eggs." {
			t.Errorf("Expected hydrated dish from lookup, got %v", dishes)
		}
		if len(paths) != 3 {
			t.Errorf("Expected search -> filter -> lookup, got %v", paths)
		}
	})
}

func TestRandomAndLookupAbsent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"meals":null}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	d, err := c.Random(context.Background())
	if err != nil {
		t.Fatalf("Random failed: %v", err)
	}
	if d != nil {
		t.Errorf("Expected nil dish for empty response, got %v", d)
	}

	d, err = c.Lookup(context.Background(), "99999")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if d != nil {
		t.Errorf("Expected nil dish for unknown id, got %v", d)
	}
}

func TestCategories(t *testing.T) {
	long := make([]byte, 150)
	for i := range long {
		long[i] = 'x'
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"categories":[{"strCategory":"Beef","strCategoryThumb":"b.jpg","strCategoryDescription":"` + string(long) + `"}]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	cats, err := c.Categories(context.Background())
	if err != nil {
		t.Fatalf("Categories failed: %v", err)
	}
	if len(cats) != 1 || cats[0].Name != "Beef" {
		t.Fatalf("Expected Beef category, got %v", cats)
	}
	if len(cats[0].Description) != 103 {
		t.Errorf("Expected description truncated to 100 chars plus ellipsis, got %d", len(cats[0].Description))
	}
}

func TestCategoriesTruncationKeepsRunesWhole(t *testing.T) {
	// 40 three-byte runes, so byte 100 lands inside a rune.
	long := strings.Repeat("あ", 40)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"categories":[{"strCategory":"Beef","strCategoryThumb":"b.jpg","strCategoryDescription":"` + long + `"}]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	cats, err := c.Categories(context.Background())
	if err != nil {
		t.Fatalf("Categories failed: %v", err)
	}
	desc := cats[0].Description
	if !utf8.ValidString(desc) {
		t.Errorf("Expected valid UTF-8 after truncation, got %q", desc)
	}
	if !strings.HasSuffix(desc, "...") {
		t.Errorf("Expected ellipsis suffix, got %q", desc)
	}
}

func TestMapDiet(t *testing.T) {
	cases := []struct {
		category, tags, title string
		want                  dish.Diet
	}{
		{"Dessert", "", "Chicken Pie", dish.NonVeg}, // title meat keyword wins
		{"Beef", "", "Rendang", dish.NonVeg},        // category check
		{"Miscellaneous", "", "Paneer Tikka", dish.Veg},
		{"Side", "Vegetarian", "Coleslaw", dish.Veg},
		{"Breakfast", "", "Egg Bhurji", dish.Egg},
		{"Dessert", "", "Chocolate Cake", dish.Veg}, // ambiguous-category fallback
		{"Miscellaneous", "", "Mystery Stew", dish.NonVeg},
	}
	for _, c := range cases {
		if got := mapDiet(c.category, c.tags, c.title); got != c.want {
			t.Errorf("mapDiet(%q, %q, %q) = %s, want %s", c.category, c.tags, c.title, got, c.want)
		}
	}
}
