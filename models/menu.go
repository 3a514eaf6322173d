package models

import "time"

// MenuCategory groups items inside one restaurant's menu. DisplayOrder is
// unique per restaurant and drives presentation sequence.
type MenuCategory struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	RestaurantID uint      `json:"restaurant_id" gorm:"not null;uniqueIndex:idx_menu_category_order"`
	Name         string    `json:"name" gorm:"not null"`
	Description  string    `json:"description"`
	DisplayOrder int       `json:"display_order" gorm:"not null;uniqueIndex:idx_menu_category_order"`
	IsActive     bool      `json:"is_active" gorm:"default:true"`
	CreatedAt    time.Time `json:"created_at"`
}

// MenuItem belongs to exactly one restaurant and one of that restaurant's
// menu categories. Price holds at least one size-label entry; DisplayOrder is
// unique per (restaurant, category).
type MenuItem struct {
	ID             uint       `json:"id" gorm:"primaryKey"`
	RestaurantID   uint       `json:"restaurant_id" gorm:"not null;uniqueIndex:idx_menu_item_order"`
	MenuCategoryID uint       `json:"menu_category_id" gorm:"not null;uniqueIndex:idx_menu_item_order"`
	Name           string     `json:"name" gorm:"not null"`
	Description    string     `json:"description"`
	Price          PriceMap   `json:"price" gorm:"type:json;not null"`
	ImageURL       string     `json:"image_url"`
	IsVegetarian   bool       `json:"is_vegetarian" gorm:"default:false"`
	IsVegan        bool       `json:"is_vegan" gorm:"default:false"`
	IsGlutenFree   bool       `json:"is_gluten_free" gorm:"default:false"`
	Ingredients    StringList `json:"ingredients" gorm:"type:json"`
	Allergens      StringList `json:"allergens" gorm:"type:json"`
	IsAvailable    bool       `json:"is_available" gorm:"default:true"`
	DisplayOrder   int        `json:"display_order" gorm:"not null;uniqueIndex:idx_menu_item_order"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}
