package dish

// Catalog is the built-in dish collection shipped with the app. Entries are
// static data; callers must not mutate them.
var Catalog = []Dish{
	{
		ID:           "1",
		Name:         "Butter Chicken",
		Description:  "Tender chicken in a rich, creamy tomato sauce.",
		Image:        "https://images.unsplash.com/photo-1603894584373-5ac82b2ae398?auto=format&fit=crop&w=800&q=80",
		Cuisine:      "North Indian",
		Slots:        []MealSlot{Lunch, Dinner},
		Diet:         NonVeg,
		Ingredients:  []string{"Chicken", "Butter", "Tomato Puree", "Cream", "Spices"},
		Instructions: "1. Marinate chicken. 2. Cook chicken. 3. Prepare tomato gravy with butter and spices. 4. Mix chicken with gravy and simmer.",
	},
	{
		ID:           "2",
		Name:         "Masala Dosa",
		Description:  "Crispy rice crepe filled with spiced potato masala.",
		Image:        "https://images.unsplash.com/photo-1589302168068-964664d93dc0?auto=format&fit=crop&w=800&q=80",
		Cuisine:      "South Indian",
		Slots:        []MealSlot{Breakfast, Lunch, Dinner},
		Diet:         Veg,
		Ingredients:  []string{"Rice Batter", "Potato", "Onion", "Mustard Seeds"},
		Instructions: "1. Ferment rice batter. 2. Prepare potato masala. 3. Spread batter on hot griddle. 4. Add stuffing and roll.",
	},
	{
		ID:          "3",
		Name:        "Palak Paneer",
		Description: "Cottage cheese cubes in a smooth spinach gravy.",
		Image:       "https://images.unsplash.com/photo-1601050690597-df0568f70950?auto=format&fit=crop&w=800&q=80",
		Cuisine:     "North Indian",
		Slots:       []MealSlot{Lunch, Dinner},
		Diet:        Veg,
		Ingredients: []string{"Spinach", "Paneer", "Cream", "Garlic", "Spices"},
	},
	{
		ID:          "4",
		Name:        "Biryani",
		Description: "Fragrant rice dish with aromatic spices and herbs.",
		Image:       "https://images.unsplash.com/photo-1633945274405-b6c8069047b0?auto=format&fit=crop&w=800&q=80",
		Cuisine:     "Hyderabadi",
		Slots:       []MealSlot{Lunch, Dinner},
		Diet:        NonVeg,
		Ingredients: []string{"Basmati Rice", "Chicken/Mutton", "Saffron", "Spices", "Yoghurt"},
	},
	{
		ID:          "5",
		Name:        "Chole Bhature",
		Description: "Spicy chickpea curry served with fried bread.",
		Image:       "https://images.unsplash.com/photo-1626074353765-517a681e40be?auto=format&fit=crop&w=800&q=80",
		Cuisine:     "Punjabi",
		Slots:       []MealSlot{Breakfast, Lunch},
		Diet:        Veg,
		Ingredients: []string{"Chickpeas", "Flour", "Spices", "Oil"},
	},
	{
		ID:          "6",
		Name:        "Vada Pav",
		Description: "Deep fried potato dumpling placed inside a bread bun.",
		Image:       "https://images.unsplash.com/photo-1626132647523-66f5bf380027?auto=format&fit=crop&w=800&q=80",
		Cuisine:     "Maharashtrian",
		Slots:       []MealSlot{Snack, Breakfast},
		Diet:        Veg,
		Ingredients: []string{"Potato", "Gram Flour", "Bread Bun", "Garlic Chutney"},
	},
	{
		ID:           "101",
		Name:         "Classic Pancakes",
		Description:  "Fluffy pancakes served with butter and maple syrup.",
		Image:        "https://images.unsplash.com/photo-1567620905732-2d1ec7ab7445?auto=format&fit=crop&w=800&q=80",
		Cuisine:      "American",
		Slots:        []MealSlot{Breakfast},
		Diet:         Egg,
		Ingredients:  []string{"Flour", "Milk", "Eggs", "Maple Syrup", "Butter"},
		Instructions: "1. Mix dry ingredients. 2. Whisk wet ingredients. 3. Combine. 4. Cook on griddle until bubbly.",
	},
	{
		ID:          "102",
		Name:        "Bacon & Eggs",
		Description: "Crispy bacon rashers with sunny-side up eggs.",
		Image:       "https://images.unsplash.com/photo-1606850979803-db7d4778bc0f?auto=format&fit=crop&w=800&q=80",
		Cuisine:     "American",
		Slots:       []MealSlot{Breakfast},
		Diet:        NonVeg,
		Ingredients: []string{"Eggs", "Bacon", "Bread", "Butter"},
	},
	{
		ID:          "103",
		Name:        "Avocado Toast",
		Description: "Smashed avocado on toasted sourdough bread.",
		Image:       "https://images.unsplash.com/photo-1588137372308-15f75323ca8d?auto=format&fit=crop&w=800&q=80",
		Cuisine:     "American",
		Slots:       []MealSlot{Breakfast},
		Diet:        Veg,
		Ingredients: []string{"Avocado", "Sourdough Bread", "Chili Flakes", "Lemon", "Olive Oil"},
	},
	{
		ID:          "104",
		Name:        "Waffles",
		Description: "Golden Belgian waffles topped with fresh berries.",
		Image:       "https://images.unsplash.com/photo-1562376552-0d160a2f238d?auto=format&fit=crop&w=800&q=80",
		Cuisine:     "American",
		Slots:       []MealSlot{Breakfast},
		Diet:        Egg,
		Ingredients: []string{"Waffle Mix", "Strawberries", "Blueberries", "Whipped Cream"},
	},
}
