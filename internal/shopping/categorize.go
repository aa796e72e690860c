package shopping

import "strings"

// Category is one of the six fixed shopping-list buckets.
type Category string

const (
	Produce Category = "produce"
	Dairy   Category = "dairy"
	Protein Category = "protein"
	Grains  Category = "grains"
	Pantry  Category = "pantry"
	Other   Category = "other"
)

// Categories lists all buckets in display order. Categorize tests keyword
// tables in this order (minus Other), so the first matching category wins.
var Categories = []Category{Produce, Dairy, Protein, Grains, Pantry, Other}

// Valid reports whether c is one of the six buckets.
func (c Category) Valid() bool {
	switch c {
	case Produce, Dairy, Protein, Grains, Pantry, Other:
		return true
	}
	return false
}

var categoryKeywords = map[Category][]string{
	Produce: {"spinach", "tomato", "onion", "garlic", "potato", "avocado", "lemon", "berry", "fruit", "vegetable", "carrot", "pepper", "lettuce", "cucumber", "mushroom", "broccoli", "celery", "ginger", "herbs", "cilantro", "parsley", "basil", "mint", "strawberr", "blueberr"},
	Dairy:   {"milk", "cream", "cheese", "butter", "yogurt", "paneer", "ghee", "curd", "whipped"},
	Protein: {"chicken", "beef", "pork", "fish", "egg", "tofu", "mutton", "bacon", "sausage", "shrimp", "salmon", "meat"},
	Grains:  {"rice", "bread", "flour", "pasta", "noodle", "oat", "cereal", "wheat", "batter", "waffle", "pancake", "sourdough", "bun"},
	Pantry:  {"oil", "salt", "sugar", "spice", "sauce", "syrup", "vinegar", "soy", "chickpea", "lentil", "bean", "canned", "maple", "honey", "mustard", "seeds", "chili", "flakes", "mix"},
}

// Categorize assigns an ingredient name to a bucket by case-insensitive
// substring match against each category's keyword table, in fixed order.
// This is a heuristic with known false positives; unmatched names go to
// Other.
func Categorize(name string) Category {
	lower := strings.ToLower(name)
	for _, cat := range Categories {
		if cat == Other {
			continue
		}
		for _, kw := range categoryKeywords[cat] {
			if strings.Contains(lower, kw) {
				return cat
			}
		}
	}
	return Other
}
