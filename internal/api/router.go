package api

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewRouter builds the gin engine with CORS and every route registered.
func NewRouter(h *Handler) *gin.Engine {
	r := gin.Default()

	// Configure CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:8081"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", h.Health)

	r.GET("/plan", h.GetPlan)
	r.GET("/plan/:date/:slot", h.GetDishesForDate)
	r.POST("/plan/:date/:slot", h.AddDishToDate)
	r.DELETE("/plan/:date/:slot/:dishId", h.RemoveDishFromDate)

	r.GET("/dishes", h.GetDishes)
	r.GET("/dishes/custom", h.GetCustomDishes)
	r.POST("/dishes/custom", h.CreateCustomDish)
	r.PUT("/dishes/custom/:id", h.UpdateCustomDish)
	r.DELETE("/dishes/custom/:id", h.DeleteCustomDish)

	r.GET("/shopping", h.GetShoppingList)
	r.POST("/shopping", h.AddShoppingItem)
	r.POST("/shopping/generate", h.GenerateShoppingList)
	r.POST("/shopping/clear-checked", h.ClearCheckedItems)
	r.POST("/shopping/clear-generated", h.ClearGeneratedItems)
	r.POST("/shopping/:id/toggle", h.ToggleShoppingItem)
	r.DELETE("/shopping/:id", h.DeleteShoppingItem)

	r.GET("/reminders", h.GetReminders)
	r.POST("/reminders", h.CreateReminder)
	r.DELETE("/reminders/:id", h.DeleteReminder)

	r.GET("/favorites", h.GetFavorites)
	r.POST("/favorites", h.AddFavorite)

	r.GET("/preferences", h.GetPreferences)
	r.POST("/preferences/toggle", h.ToggleDietaryFilter)
	r.POST("/preferences/reset", h.ResetPreferences)

	r.GET("/recipes/search", h.SearchRecipes)
	r.GET("/recipes/random", h.RandomRecipe)
	r.GET("/recipes/categories", h.GetRecipeCategories)
	r.GET("/recipes/categories/:name", h.GetRecipesByCategory)
	r.GET("/recipes/:id", h.GetRecipe)

	r.POST("/assistant/chat", h.Chat)
	r.POST("/clip", h.ClipRecipe)

	r.GET("/calendar/week.ics", h.ExportCalendar)

	return r
}
