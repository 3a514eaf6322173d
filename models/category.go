package models

import "time"

// Category classifies a restaurant (Pizza, Cafe, Asian, ...). Not to be
// confused with MenuCategory, which groups items inside one restaurant's menu.
type Category struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"uniqueIndex;not null"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	IsActive    bool      `json:"is_active" gorm:"default:true"`
	CreatedAt   time.Time `json:"created_at"`
}

// DefaultCategories is the stock classification set installed on first boot.
func DefaultCategories() []Category {
	return []Category{
		{Name: "Fast Food", Description: "Quick service restaurants", Icon: "🍔"},
		{Name: "Fine Dining", Description: "Upscale dining experience", Icon: "🍽️"},
		{Name: "Cafe", Description: "Coffee shops and light meals", Icon: "☕"},
		{Name: "Pizza", Description: "Pizza restaurants", Icon: "🍕"},
		{Name: "Asian", Description: "Asian cuisine", Icon: "🥢"},
		{Name: "Italian", Description: "Italian cuisine", Icon: "🍝"},
		{Name: "Mexican", Description: "Mexican cuisine", Icon: "🌮"},
		{Name: "Indian", Description: "Indian cuisine", Icon: "🍛"},
		{Name: "Desserts", Description: "Dessert and sweet shops", Icon: "🍰"},
		{Name: "Healthy", Description: "Health-focused restaurants", Icon: "🥗"},
	}
}
