package models

import "time"

type Restaurant struct {
	ID             uint           `json:"id" gorm:"primaryKey"`
	OwnerID        uint           `json:"owner_id" gorm:"not null"`
	Owner          User           `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
	CategoryID     uint           `json:"category_id" gorm:"not null;index"`
	Category       Category       `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Name           string         `json:"name" gorm:"not null"`
	Description    string         `json:"description"`
	Address        string         `json:"address" gorm:"not null"`
	Latitude       *float64       `json:"latitude"`
	Longitude      *float64       `json:"longitude"`
	Phone          string         `json:"phone"`
	Email          string         `json:"email"`
	ImageURL       string         `json:"image_url"`
	OpeningHours   JSONMap        `json:"opening_hours,omitempty" gorm:"type:json"`
	IsActive       bool           `json:"is_active" gorm:"default:true"`
	Rating         float64        `json:"rating" gorm:"default:0"`
	TotalReviews   int            `json:"total_reviews" gorm:"default:0"`
	MenuCategories []MenuCategory `json:"menu_categories,omitempty" gorm:"foreignKey:RestaurantID"`
	MenuItems      []MenuItem     `json:"menu_items,omitempty" gorm:"foreignKey:RestaurantID"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}
