package catalog

import (
	"github.com/sirajbinsyed/menuzy/models"
)

// A Batch is a set of catalog records submitted together for one load call.
// Records reference each other with string ref handles (owner_ref,
// restaurant_ref, menu_category_ref) and reference rows already in the store
// with numeric IDs (owner_id, restaurant_id, menu_category_id). Exactly one
// side of each reference must be set.
type Batch struct {
	Users          []UserRecord         `json:"users"`
	Restaurants    []RestaurantRecord   `json:"restaurants"`
	MenuCategories []MenuCategoryRecord `json:"menu_categories"`
	MenuItems      []MenuItemRecord     `json:"menu_items"`
}

// Size returns the total number of records in the batch.
func (b *Batch) Size() int {
	return len(b.Users) + len(b.Restaurants) + len(b.MenuCategories) + len(b.MenuItems)
}

type UserRecord struct {
	Ref      string          `json:"ref,omitempty"`
	Email    string          `json:"email"`
	FullName string          `json:"full_name"`
	Phone    string          `json:"phone,omitempty"`
	Role     models.UserRole `json:"role"`
}

type RestaurantRecord struct {
	Ref          string         `json:"ref,omitempty"`
	OwnerRef     string         `json:"owner_ref,omitempty"`
	OwnerID      uint           `json:"owner_id,omitempty"`
	CategoryID   uint           `json:"category_id"`
	Name         string         `json:"name"`
	Description  string         `json:"description,omitempty"`
	Address      string         `json:"address"`
	Latitude     *float64       `json:"latitude,omitempty"`
	Longitude    *float64       `json:"longitude,omitempty"`
	Phone        string         `json:"phone,omitempty"`
	Email        string         `json:"email,omitempty"`
	ImageURL     string         `json:"image_url,omitempty"`
	OpeningHours models.JSONMap `json:"opening_hours,omitempty"`
}

type MenuCategoryRecord struct {
	Ref           string `json:"ref,omitempty"`
	RestaurantRef string `json:"restaurant_ref,omitempty"`
	RestaurantID  uint   `json:"restaurant_id,omitempty"`
	Name          string `json:"name"`
	Description   string `json:"description,omitempty"`
	DisplayOrder  int    `json:"display_order"`
}

type MenuItemRecord struct {
	Ref             string            `json:"ref,omitempty"`
	RestaurantRef   string            `json:"restaurant_ref,omitempty"`
	RestaurantID    uint              `json:"restaurant_id,omitempty"`
	MenuCategoryRef string            `json:"menu_category_ref,omitempty"`
	MenuCategoryID  uint              `json:"menu_category_id,omitempty"`
	Name            string            `json:"name"`
	Description     string            `json:"description,omitempty"`
	Price           models.PriceMap   `json:"price"`
	ImageURL        string            `json:"image_url,omitempty"`
	IsVegetarian    bool              `json:"is_vegetarian,omitempty"`
	IsVegan         bool              `json:"is_vegan,omitempty"`
	IsGlutenFree    bool              `json:"is_gluten_free,omitempty"`
	Ingredients     models.StringList `json:"ingredients,omitempty"`
	Allergens       models.StringList `json:"allergens,omitempty"`
	DisplayOrder    int               `json:"display_order"`
}

// EntityID pairs a record's batch ref (if any) with the identifier the store
// assigned to it.
type EntityID struct {
	Ref string `json:"ref,omitempty"`
	ID  uint   `json:"id"`
}

// AssignedIDs lists the generated identifiers for every inserted row, in
// batch order per kind.
type AssignedIDs struct {
	Users          []EntityID `json:"users,omitempty"`
	Restaurants    []EntityID `json:"restaurants,omitempty"`
	MenuCategories []EntityID `json:"menu_categories,omitempty"`
	MenuItems      []EntityID `json:"menu_items,omitempty"`
}

// LoadResult is the outcome of one load call. Either IDs is populated (the
// whole batch committed) or Errors is (nothing was persisted).
type LoadResult struct {
	OK      bool              `json:"ok"`
	BatchID string            `json:"batch_id"`
	State   models.BatchState `json:"state"`
	IDs     *AssignedIDs      `json:"ids,omitempty"`
	Errors  []ResultError     `json:"errors,omitempty"`
}

// HasKind reports whether any recorded error is of the given kind.
func (r *LoadResult) HasKind(kind string) bool {
	for _, e := range r.Errors {
		if e.Kind == kind {
			return true
		}
	}
	return false
}
