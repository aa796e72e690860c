// Package api exposes the stores over HTTP for app clients.
package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"mealplex/internal/app"
	"mealplex/internal/assistant"
	"mealplex/internal/calendar"
	"mealplex/internal/dish"
	"mealplex/internal/metrics"
	"mealplex/internal/reminders"
	"mealplex/internal/shopping"
)

// Handler handles HTTP requests against the assembled application.
type Handler struct {
	app *app.App
	now func() time.Time
}

// NewHandler creates a new Handler.
func NewHandler(a *app.App) *Handler {
	return &Handler{app: a, now: time.Now}
}

// Health reports runtime stats and the size of the data directory.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, metrics.GetSysHealth(h.app.Cfg.DataDir))
}

// GetPlan returns the full meal plan keyed by date.
func (h *Handler) GetPlan(c *gin.Context) {
	c.JSON(http.StatusOK, h.app.Planner.Plan())
}

// GetDishesForDate returns the dish ids scheduled for one date and slot.
func (h *Handler) GetDishesForDate(c *gin.Context) {
	slot := dish.MealSlot(c.Param("slot"))
	if !slot.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown meal slot: " + c.Param("slot")})
		return
	}
	c.JSON(http.StatusOK, gin.H{"dishIds": h.app.Planner.DishesForDate(c.Param("date"), slot)})
}

// AddDishToDate schedules a dish for a date and slot.
func (h *Handler) AddDishToDate(c *gin.Context) {
	slot := dish.MealSlot(c.Param("slot"))
	if !slot.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown meal slot: " + c.Param("slot")})
		return
	}

	var body struct {
		DishID string `json:"dishId"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.DishID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "dishId is required"})
		return
	}

	h.app.Planner.AddDishToDate(c.Param("date"), slot, body.DishID)
	c.JSON(http.StatusOK, gin.H{"dishIds": h.app.Planner.DishesForDate(c.Param("date"), slot)})
}

// RemoveDishFromDate unschedules a dish from a date and slot.
func (h *Handler) RemoveDishFromDate(c *gin.Context) {
	slot := dish.MealSlot(c.Param("slot"))
	if !slot.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown meal slot: " + c.Param("slot")})
		return
	}

	h.app.Planner.RemoveDishFromDate(c.Param("date"), slot, c.Param("dishId"))
	c.JSON(http.StatusOK, gin.H{"dishIds": h.app.Planner.DishesForDate(c.Param("date"), slot)})
}

// GetDishes returns the built-in catalog followed by custom dishes.
func (h *Handler) GetDishes(c *gin.Context) {
	custom := h.app.Planner.CustomDishes()
	all := make([]dish.Dish, 0, len(dish.Catalog)+len(custom))
	all = append(all, dish.Catalog...)
	all = append(all, custom...)
	c.JSON(http.StatusOK, all)
}

// GetCustomDishes returns only the user-created dishes.
func (h *Handler) GetCustomDishes(c *gin.Context) {
	c.JSON(http.StatusOK, h.app.Planner.CustomDishes())
}

// CreateCustomDish adds a custom dish by name.
func (h *Handler) CreateCustomDish(c *gin.Context) {
	var body struct {
		Name  string `json:"name"`
		Image string `json:"image"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}
	c.JSON(http.StatusOK, h.app.Planner.AddCustomDish(body.Name, body.Image))
}

// UpdateCustomDish renames a custom dish.
func (h *Handler) UpdateCustomDish(c *gin.Context) {
	var body struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}
	h.app.Planner.UpdateCustomDish(c.Param("id"), body.Name)
	c.JSON(http.StatusOK, h.app.Planner.CustomDishes())
}

// DeleteCustomDish removes a custom dish.
func (h *Handler) DeleteCustomDish(c *gin.Context) {
	h.app.Planner.DeleteCustomDish(c.Param("id"))
	c.JSON(http.StatusOK, h.app.Planner.CustomDishes())
}

// GetShoppingList returns shopping items, optionally grouped by category.
func (h *Handler) GetShoppingList(c *gin.Context) {
	if c.Query("grouped") == "true" {
		c.JSON(http.StatusOK, h.app.Shopping.ItemsByCategory())
		return
	}
	c.JSON(http.StatusOK, h.app.Shopping.Items())
}

// AddShoppingItem adds one item; category is inferred when omitted.
func (h *Handler) AddShoppingItem(c *gin.Context) {
	var body struct {
		Name     string `json:"name"`
		Category string `json:"category"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}
	category := shopping.Category(body.Category)
	if body.Category != "" && !category.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "category must be one of produce, dairy, protein, grains, pantry, other"})
		return
	}
	c.JSON(http.StatusOK, h.app.Shopping.AddItem(body.Name, category))
}

// ToggleShoppingItem flips an item's checked state.
func (h *Handler) ToggleShoppingItem(c *gin.Context) {
	h.app.Shopping.ToggleItem(c.Param("id"))
	c.JSON(http.StatusOK, h.app.Shopping.Items())
}

// DeleteShoppingItem removes one item.
func (h *Handler) DeleteShoppingItem(c *gin.Context) {
	h.app.Shopping.RemoveItem(c.Param("id"))
	c.JSON(http.StatusOK, h.app.Shopping.Items())
}

// ClearCheckedItems removes every checked item.
func (h *Handler) ClearCheckedItems(c *gin.Context) {
	h.app.Shopping.ClearChecked()
	c.JSON(http.StatusOK, h.app.Shopping.Items())
}

// ClearGeneratedItems removes every generated item.
func (h *Handler) ClearGeneratedItems(c *gin.Context) {
	h.app.Shopping.ClearGenerated()
	c.JSON(http.StatusOK, h.app.Shopping.Items())
}

// GenerateShoppingList rebuilds generated items from the planned week.
func (h *Handler) GenerateShoppingList(c *gin.Context) {
	var body struct {
		StartDate string `json:"startDate"`
		Days      int    `json:"days"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	start := h.now()
	if body.StartDate != "" {
		parsed, err := time.Parse("2006-01-02", body.StartDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "startDate must be YYYY-MM-DD"})
			return
		}
		start = parsed
	}
	days := body.Days
	if days <= 0 {
		days = 7
	}

	count := h.app.Shopping.GenerateFromPlan(h.app.Planner.Plan(), h.app.Planner.CustomDishes(), start, days)
	c.JSON(http.StatusOK, gin.H{"generated": count, "items": h.app.Shopping.Items()})
}

// GetReminders returns reminders split into upcoming and past.
func (h *Handler) GetReminders(c *gin.Context) {
	upcoming, past := reminders.Partition(h.app.Reminders.Reminders(), h.now())
	c.JSON(http.StatusOK, gin.H{"upcoming": upcoming, "past": past})
}

// CreateReminder adds a reminder, optionally with a due time.
func (h *Handler) CreateReminder(c *gin.Context) {
	var body struct {
		Text string     `json:"text"`
		Date *time.Time `json:"date"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text is required"})
		return
	}
	c.JSON(http.StatusOK, h.app.Reminders.Add(body.Text, body.Date))
}

// DeleteReminder removes a reminder.
func (h *Handler) DeleteReminder(c *gin.Context) {
	h.app.Reminders.Remove(c.Param("id"))
	c.JSON(http.StatusOK, h.app.Reminders.Reminders())
}

// GetFavorites returns the favorited dishes.
func (h *Handler) GetFavorites(c *gin.Context) {
	c.JSON(http.StatusOK, h.app.Favorites.Favorites())
}

// AddFavorite stores a dish snapshot as a favorite.
func (h *Handler) AddFavorite(c *gin.Context) {
	var d dish.Dish
	if err := c.ShouldBindJSON(&d); err != nil || d.ID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "dish with id is required"})
		return
	}
	h.app.Favorites.Add(d)
	c.JSON(http.StatusOK, h.app.Favorites.Favorites())
}

// GetPreferences returns the active dietary filters.
func (h *Handler) GetPreferences(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"dietaryFilters": h.app.Preferences.Filters()})
}

// ToggleDietaryFilter flips one filter; the last active filter cannot be
// removed.
func (h *Handler) ToggleDietaryFilter(c *gin.Context) {
	var body struct {
		Diet string `json:"diet"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || !dish.Diet(body.Diet).Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "diet must be one of veg, non-veg, egg"})
		return
	}
	h.app.Preferences.ToggleFilter(dish.Diet(body.Diet))
	c.JSON(http.StatusOK, gin.H{"dietaryFilters": h.app.Preferences.Filters()})
}

// ResetPreferences re-enables every dietary filter.
func (h *Handler) ResetPreferences(c *gin.Context) {
	h.app.Preferences.SetAllFilters()
	c.JSON(http.StatusOK, gin.H{"dietaryFilters": h.app.Preferences.Filters()})
}

// SearchRecipes queries TheMealDB by name with area and category fallbacks.
func (h *Handler) SearchRecipes(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "q is required"})
		return
	}

	results, err := h.app.MealDB.Search(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "recipe search failed: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, results)
}

// RandomRecipe returns one random recipe from TheMealDB.
func (h *Handler) RandomRecipe(c *gin.Context) {
	d, err := h.app.MealDB.Random(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "recipe lookup failed: " + err.Error()})
		return
	}
	if d == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no recipe available"})
		return
	}
	c.JSON(http.StatusOK, d)
}

// GetRecipe looks up one TheMealDB recipe by id.
func (h *Handler) GetRecipe(c *gin.Context) {
	d, err := h.app.MealDB.Lookup(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "recipe lookup failed: " + err.Error()})
		return
	}
	if d == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
		return
	}
	c.JSON(http.StatusOK, d)
}

// GetRecipeCategories lists TheMealDB categories.
func (h *Handler) GetRecipeCategories(c *gin.Context) {
	cats, err := h.app.MealDB.Categories(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "category lookup failed: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, cats)
}

// GetRecipesByCategory lists recipes in one TheMealDB category.
func (h *Handler) GetRecipesByCategory(c *gin.Context) {
	results, err := h.app.MealDB.MealsByCategory(c.Request.Context(), c.Param("name"), 10)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "category lookup failed: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, results)
}

// Chat routes a free-text message through the assistant.
func (h *Handler) Chat(c *gin.Context) {
	if h.app.Assistant == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "assistant is not configured"})
		return
	}

	var body struct {
		Message string              `json:"message"`
		History []assistant.Message `json:"history"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Message == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message is required"})
		return
	}

	reply, err := h.app.Assistant.Chat(c.Request.Context(), body.Message, body.History)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "assistant failed: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"reply": reply})
}

// ClipRecipe imports a recipe from a URL as a custom dish.
func (h *Handler) ClipRecipe(c *gin.Context) {
	if h.app.Clipper == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "clipper is not configured"})
		return
	}

	var body struct {
		URL string `json:"url"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.URL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "url is required"})
		return
	}

	clipped, err := h.app.Clipper.ClipURL(c.Request.Context(), body.URL)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "clip failed: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, clipped)
}

// ExportCalendar streams the week's meals as an iCalendar file.
func (h *Handler) ExportCalendar(c *gin.Context) {
	start := h.now()
	if s := c.Query("start"); s != "" {
		parsed, err := time.Parse("2006-01-02", s)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "start must be YYYY-MM-DD"})
			return
		}
		start = parsed
	}

	events := calendar.BuildWeekEvents(h.app.Planner.Plan(), start, 7, h.app.DishName)
	if len(events) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "no meals planned for this week"})
		return
	}

	c.Header("Content-Type", "text/calendar; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="mealplex-week.ics"`)
	if err := calendar.WriteICS(c.Writer, events, h.now()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "export failed: " + err.Error()})
	}
}
