// Package mealdb is a client for TheMealDB public recipe API. Responses are
// mapped into the app's Dish shape, including the diet and meal-slot
// heuristics used by the discovery views.
package mealdb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"mealplex/internal/dish"
)

// DefaultBaseURL is the free-tier API endpoint.
const DefaultBaseURL = "https://www.themealdb.com/api/json/v1/1"

// hydrateLimit caps how many filter-endpoint hits get a detail lookup, to
// avoid spamming the API.
const hydrateLimit = 5

// Client is a TheMealDB API client.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a Client. An empty baseURL selects the public API.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// apiMeal holds one meal record. The API returns flat objects of strings and
// nulls, including the strIngredient1..20 / strMeasure1..20 pairs.
type apiMeal map[string]*string

func (m apiMeal) get(key string) string {
	if v, ok := m[key]; ok && v != nil {
		return *v
	}
	return ""
}

type mealsResponse struct {
	Meals []apiMeal `json:"meals"`
}

func (c *Client) fetchMeals(ctx context.Context, path string) ([]apiMeal, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("mealdb api error: status %d", resp.StatusCode)
	}

	var out mealsResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return out.Meals, nil
}

// Search finds full dish records for a free-text query: a name search first,
// then area and category filters as fallbacks. Filter hits only carry id,
// name and image, so they are hydrated via per-id lookups, capped at 5.
func (c *Client) Search(ctx context.Context, query string) ([]dish.Dish, error) {
	q := url.QueryEscape(query)

	meals, err := c.fetchMeals(ctx, "/search.php?s="+q)
	if err != nil {
		return nil, err
	}
	if len(meals) > 0 {
		return transformAll(meals), nil
	}

	meals, err = c.fetchMeals(ctx, "/filter.php?a="+q)
	if err != nil {
		return nil, err
	}
	if len(meals) == 0 {
		meals, err = c.fetchMeals(ctx, "/filter.php?c="+q)
		if err != nil {
			return nil, err
		}
	}

	return c.hydrate(ctx, meals, hydrateLimit)
}

// Random fetches a single random dish.
func (c *Client) Random(ctx context.Context) (*dish.Dish, error) {
	meals, err := c.fetchMeals(ctx, "/random.php")
	if err != nil {
		return nil, err
	}
	if len(meals) == 0 {
		return nil, nil
	}
	d := transformMeal(meals[0])
	return &d, nil
}

// Lookup fetches the full record for a meal id, or nil when unknown.
func (c *Client) Lookup(ctx context.Context, id string) (*dish.Dish, error) {
	meals, err := c.fetchMeals(ctx, "/lookup.php?i="+url.QueryEscape(id))
	if err != nil {
		return nil, err
	}
	if len(meals) == 0 {
		return nil, nil
	}
	d := transformMeal(meals[0])
	return &d, nil
}

// CategorySummary describes one browsable recipe category.
type CategorySummary struct {
	Name        string `json:"name"`
	Image       string `json:"image"`
	Description string `json:"description"`
}

type categoriesResponse struct {
	Categories []struct {
		Name        string `json:"strCategory"`
		Thumb       string `json:"strCategoryThumb"`
		Description string `json:"strCategoryDescription"`
	} `json:"categories"`
}

// Categories lists the API's recipe categories with truncated descriptions.
func (c *Client) Categories(ctx context.Context) ([]CategorySummary, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/categories.php", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("mealdb api error: status %d", resp.StatusCode)
	}

	var out categoriesResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	summaries := make([]CategorySummary, 0, len(out.Categories))
	for _, cat := range out.Categories {
		desc := cat.Description
		if len(desc) > 100 {
			desc = truncateUTF8(desc, 100) + "..."
		}
		summaries = append(summaries, CategorySummary{
			Name:        cat.Name,
			Image:       cat.Thumb,
			Description: desc,
		})
	}
	return summaries, nil
}

// MealsByCategory fetches up to limit full dish records for a category.
func (c *Client) MealsByCategory(ctx context.Context, category string, limit int) ([]dish.Dish, error) {
	meals, err := c.fetchMeals(ctx, "/filter.php?c="+url.QueryEscape(category))
	if err != nil {
		return nil, err
	}
	return c.hydrate(ctx, meals, limit)
}

// hydrate fetches full records for filter-endpoint results, which only carry
// id, name and image. Failed lookups are skipped.
func (c *Client) hydrate(ctx context.Context, meals []apiMeal, limit int) ([]dish.Dish, error) {
	if len(meals) > limit {
		meals = meals[:limit]
	}

	dishes := make([]dish.Dish, 0, len(meals))
	for _, m := range meals {
		id := m.get("idMeal")
		if id == "" {
			continue
		}
		full, err := c.Lookup(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to hydrate meal %s: %w", id, err)
		}
		if full != nil {
			dishes = append(dishes, *full)
		}
	}
	return dishes, nil
}

func transformAll(meals []apiMeal) []dish.Dish {
	dishes := make([]dish.Dish, 0, len(meals))
	for _, m := range meals {
		dishes = append(dishes, transformMeal(m))
	}
	return dishes
}

func transformMeal(m apiMeal) dish.Dish {
	category := m.get("strCategory")
	return dish.Dish{
		ID:           m.get("idMeal"),
		Name:         m.get("strMeal"),
		Description:  strings.TrimSpace(m.get("strArea") + " " + category),
		Image:        m.get("strMealThumb"),
		Cuisine:      m.get("strArea"),
		Slots:        mapSlots(category),
		Diet:         mapDiet(category, m.get("strTags"), m.get("strMeal")),
		Ingredients:  extractIngredients(m),
		Instructions: m.get("strInstructions"),
	}
}

// extractIngredients joins the measure and ingredient columns
// (strIngredient1..20 / strMeasure1..20) into "measure name" strings.
func extractIngredients(m apiMeal) []string {
	var ingredients []string
	for i := 1; i <= 20; i++ {
		item := strings.TrimSpace(m.get(fmt.Sprintf("strIngredient%d", i)))
		if item == "" {
			continue
		}
		measure := strings.TrimSpace(m.get(fmt.Sprintf("strMeasure%d", i)))
		if measure != "" {
			ingredients = append(ingredients, measure+" "+item)
		} else {
			ingredients = append(ingredients, item)
		}
	}
	return ingredients
}

var meatKeywords = []string{"chicken", "beef", "pork", "bacon", "ham", "sausage", "steak", "lamb", "meat", "fish", "prawn", "crab", "shrimp", "burger", "seafood"}

// mapDiet classifies an API meal into the three-value diet enum. The rules
// run in a fixed order: title meat keywords, explicit veg keywords,
// category/tag checks, egg check, ambiguous-category fallback.
func mapDiet(category, tags, title string) dish.Diet {
	cat := strings.ToLower(category)
	tagStr := strings.ToLower(tags)
	titleLower := strings.ToLower(title)

	for _, kw := range meatKeywords {
		if strings.Contains(titleLower, kw) {
			return dish.NonVeg
		}
	}

	for _, kw := range []string{"paneer", "tofu", "vegetable", "dal"} {
		if strings.Contains(titleLower, kw) {
			return dish.Veg
		}
	}

	switch cat {
	case "beef", "chicken", "lamb", "pork", "seafood", "goat":
		return dish.NonVeg
	case "vegetarian", "vegan":
		return dish.Veg
	}
	if strings.Contains(tagStr, "vegetarian") {
		return dish.Veg
	}

	if strings.Contains(tagStr, "egg") || strings.Contains(titleLower, "egg") || cat == "breakfast" {
		if strings.Contains(titleLower, "egg") || strings.Contains(titleLower, "omelette") {
			return dish.Egg
		}
	}

	switch cat {
	case "pasta", "starter", "side", "dessert":
		// Safer assumption when no meat keyword was found.
		return dish.Veg
	}

	return dish.NonVeg
}

// truncateUTF8 cuts s to at most max bytes without splitting a rune.
func truncateUTF8(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

// mapSlots maps an API category to meal slots.
func mapSlots(category string) []dish.MealSlot {
	switch strings.ToLower(category) {
	case "breakfast":
		return []dish.MealSlot{dish.Breakfast}
	case "starter", "side", "dessert":
		return []dish.MealSlot{dish.Snack}
	}
	return []dish.MealSlot{dish.Lunch, dish.Dinner}
}
