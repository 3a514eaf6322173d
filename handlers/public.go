package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sirajbinsyed/menuzy/config"
	"github.com/sirajbinsyed/menuzy/models"
)

// ListCategories returns all active restaurant classification categories
func ListCategories(c *gin.Context) {
	var categories []models.Category
	config.DB.Where("is_active = ?", true).Order("name").Find(&categories)
	c.JSON(http.StatusOK, gin.H{
		"count":      len(categories),
		"categories": categories,
	})
}

// ListRestaurants returns all active restaurants (public)
func ListRestaurants(c *gin.Context) {
	var restaurants []models.Restaurant
	query := config.DB.Preload("Category").Where("is_active = ?", true)

	// Search by name, description or address
	if q := c.Query("q"); q != "" {
		like := "%" + q + "%"
		query = query.Where("name LIKE ? OR description LIKE ? OR address LIKE ?", like, like, like)
	}
	if categoryID := c.Query("category_id"); categoryID != "" {
		query = query.Where("category_id = ?", categoryID)
	}

	query.Order("rating desc, name").Find(&restaurants)
	c.JSON(http.StatusOK, gin.H{
		"count":       len(restaurants),
		"restaurants": restaurants,
	})
}

// GetRestaurant returns a single restaurant
func GetRestaurant(c *gin.Context) {
	var restaurant models.Restaurant
	err := config.DB.Preload("Category").
		Where("is_active = ?", true).
		First(&restaurant, c.Param("id")).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"restaurant": restaurant})
}

// GetMenu returns a restaurant's menu grouped by menu category, both levels
// ordered by display_order (public)
func GetMenu(c *gin.Context) {
	restaurantID := c.Param("id")
	var restaurant models.Restaurant
	if err := config.DB.Where("is_active = ?", true).First(&restaurant, restaurantID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		return
	}

	var categories []models.MenuCategory
	config.DB.Where("restaurant_id = ? AND is_active = ?", restaurantID, true).
		Order("display_order").Find(&categories)

	itemQuery := config.DB.Where("restaurant_id = ?", restaurantID)
	if c.Query("is_vegetarian") == "true" {
		itemQuery = itemQuery.Where("is_vegetarian = ?", true)
	}
	if c.Query("is_vegan") == "true" {
		itemQuery = itemQuery.Where("is_vegan = ?", true)
	}
	if c.Query("available") == "true" {
		itemQuery = itemQuery.Where("is_available = ?", true)
	}
	var items []models.MenuItem
	itemQuery.Order("display_order").Find(&items)

	itemsByCategory := map[uint][]models.MenuItem{}
	for _, item := range items {
		itemsByCategory[item.MenuCategoryID] = append(itemsByCategory[item.MenuCategoryID], item)
	}

	// Count only what the grouped menu shows: items under an inactive
	// category are not emitted.
	shown := 0
	menu := make([]gin.H, 0, len(categories))
	for _, cat := range categories {
		menu = append(menu, gin.H{
			"category": cat,
			"items":    itemsByCategory[cat.ID],
		})
		shown += len(itemsByCategory[cat.ID])
	}

	c.JSON(http.StatusOK, gin.H{
		"restaurant": restaurant.Name,
		"count":      shown,
		"menu":       menu,
	})
}
