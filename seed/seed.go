// Package seed loads the demo catalog through the same validation and
// transaction path as any other batch, so the sample data can never leave
// the store half-applied.
package seed

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/sirajbinsyed/menuzy/catalog"
	"github.com/sirajbinsyed/menuzy/models"
)

func floatPtr(v float64) *float64 { return &v }

// weekHours builds an opening-hours map with the same open/close times for
// every listed weekday.
func weekHours(open, close string, days ...string) models.JSONMap {
	hours := models.JSONMap{}
	for _, day := range days {
		hours[day] = map[string]interface{}{"open": open, "close": close}
	}
	return hours
}

// SampleBatch returns the demo catalog: one super admin, two restaurant
// admins with a restaurant each, and a small menu per restaurant.
// Classification category IDs are resolved by name before building the
// batch, so the sample survives a store where IDs differ.
func SampleBatch(db *gorm.DB) (*catalog.Batch, error) {
	pizzaID, err := categoryID(db, "Pizza")
	if err != nil {
		return nil, err
	}
	asianID, err := categoryID(db, "Asian")
	if err != nil {
		return nil, err
	}

	weekdays := []string{"monday", "tuesday", "wednesday", "thursday", "friday"}

	return &catalog.Batch{
		Users: []catalog.UserRecord{
			{Ref: "admin", Email: "admin@menuzy.com", FullName: "Menuzy Admin", Role: models.RoleSuperAdmin},
			{Ref: "luigi", Email: "luigi@trattoria.example", FullName: "Luigi Moretti", Phone: "+39 055 123456", Role: models.RoleRestaurantAdmin},
			{Ref: "aiko", Email: "aiko@sakura.example", FullName: "Aiko Tanaka", Phone: "+81 3 5550 1234", Role: models.RoleRestaurantAdmin},
			{Ref: "sam", Email: "sam@example.com", FullName: "Sam Carter", Role: models.RoleCustomer},
		},
		Restaurants: []catalog.RestaurantRecord{
			{
				Ref:          "trattoria",
				OwnerRef:     "luigi",
				CategoryID:   pizzaID,
				Name:         "Luigi's Trattoria",
				Description:  "Wood-fired pizza and homemade pasta",
				Address:      "12 Via Roma, Florence",
				Latitude:     floatPtr(43.7696),
				Longitude:    floatPtr(11.2558),
				Phone:        "+39 055 123456",
				Email:        "info@trattoria.example",
				OpeningHours: weekHours("11:30", "22:30", append(weekdays, "saturday")...),
			},
			{
				Ref:          "sakura",
				OwnerRef:     "aiko",
				CategoryID:   asianID,
				Name:         "Sakura Ramen House",
				Description:  "Tonkotsu and shoyu ramen, small sides",
				Address:      "3-9-5 Shibuya, Tokyo",
				Latitude:     floatPtr(35.6595),
				Longitude:    floatPtr(139.7005),
				Phone:        "+81 3 5550 1234",
				OpeningHours: weekHours("11:00", "21:00", weekdays...),
			},
		},
		MenuCategories: []catalog.MenuCategoryRecord{
			{Ref: "pizzas", RestaurantRef: "trattoria", Name: "Pizzas", Description: "From the wood oven", DisplayOrder: 1},
			{Ref: "pastas", RestaurantRef: "trattoria", Name: "Pastas", DisplayOrder: 2},
			{Ref: "ramen", RestaurantRef: "sakura", Name: "Ramen", DisplayOrder: 1},
			{Ref: "sides", RestaurantRef: "sakura", Name: "Sides", DisplayOrder: 2},
		},
		MenuItems: []catalog.MenuItemRecord{
			{
				RestaurantRef: "trattoria", MenuCategoryRef: "pizzas",
				Name:        "Margherita",
				Description: "Tomato, mozzarella, basil",
				Price:       models.PriceMap{"regular": 8.5, "large": 11.0},
				Ingredients: models.StringList{"tomato", "mozzarella", "basil", "olive oil"},
				Allergens:   models.StringList{"gluten", "milk"},
				IsVegetarian: true, DisplayOrder: 1,
			},
			{
				RestaurantRef: "trattoria", MenuCategoryRef: "pizzas",
				Name:        "Diavola",
				Description: "Spicy salami, chili oil",
				Price:       models.PriceMap{"regular": 10.0, "large": 13.0},
				Ingredients: models.StringList{"tomato", "mozzarella", "spicy salami", "chili oil"},
				Allergens:   models.StringList{"gluten", "milk"},
				DisplayOrder: 2,
			},
			{
				RestaurantRef: "trattoria", MenuCategoryRef: "pastas",
				Name:        "Tagliatelle al Ragù",
				Price:       models.PriceMap{"regular": 12.0},
				Ingredients: models.StringList{"tagliatelle", "beef ragù", "parmesan"},
				Allergens:   models.StringList{"gluten", "milk", "egg"},
				DisplayOrder: 1,
			},
			{
				RestaurantRef: "sakura", MenuCategoryRef: "ramen",
				Name:        "Tonkotsu Ramen",
				Description: "Pork broth, chashu, soft egg",
				Price:       models.PriceMap{"regular": 9.5, "large": 12.0},
				Ingredients: models.StringList{"pork broth", "noodles", "chashu", "egg", "scallion"},
				Allergens:   models.StringList{"gluten", "egg", "soy"},
				DisplayOrder: 1,
			},
			{
				RestaurantRef: "sakura", MenuCategoryRef: "sides",
				Name:        "Edamame",
				Price:       models.PriceMap{"regular": 3.5},
				Ingredients: models.StringList{"soybeans", "sea salt"},
				Allergens:   models.StringList{"soy"},
				IsVegetarian: true, IsVegan: true, IsGlutenFree: true,
				DisplayOrder: 2,
			},
		},
	}, nil
}

// Run loads the sample catalog once. A store that already holds restaurants
// is left untouched, so the seed is safe to enable permanently.
func Run(ctx context.Context, db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Restaurant{}).Count(&count).Error; err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	if count > 0 {
		logrus.Info("Seed skipped, catalog already populated")
		return nil
	}

	batch, err := SampleBatch(db)
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}

	result := catalog.NewLoader(db).Load(ctx, batch)
	if !result.OK {
		return fmt.Errorf("seed batch %s not committed: state %s, %d error(s)",
			result.BatchID, result.State, len(result.Errors))
	}
	logrus.WithFields(logrus.Fields{
		"batch_id": result.BatchID,
		"records":  batch.Size(),
	}).Info("✅ Sample catalog loaded")
	return nil
}

func categoryID(db *gorm.DB, name string) (uint, error) {
	var cat models.Category
	if err := db.Where("name = ?", name).First(&cat).Error; err != nil {
		return 0, fmt.Errorf("category %q: %w", name, err)
	}
	return cat.ID, nil
}
