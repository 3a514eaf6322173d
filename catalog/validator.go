package catalog

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	"github.com/sirajbinsyed/menuzy/models"
)

// fieldCheck validates scalar field shapes (email). Same library gin uses
// for binding tags, so HTTP and in-process callers get identical rules.
var fieldCheck = validator.New()

// Validator checks a whole batch before any persistence happens: referential
// integrity across the batch and the store, field constraints, and
// display-order uniqueness. It collects every violation it finds rather than
// failing fast, so callers see all problems in one pass.
type Validator struct {
	db *gorm.DB
}

func NewValidator(db *gorm.DB) *Validator {
	return &Validator{db: db}
}

// refLabel identifies a record in error reports: its ref handle when the
// batch assigned one, its position otherwise.
func refLabel(ref string, i int) string {
	if ref != "" {
		return ref
	}
	return fmt.Sprintf("#%d", i)
}

// entityKey normalizes a reference (in-batch ref or store ID) so ownership
// of categories and items can be compared across both forms. In-batch
// records have no store ID yet, so the two namespaces cannot alias.
func entityKey(ref string, id uint) string {
	if ref != "" {
		return "ref:" + ref
	}
	return fmt.Sprintf("id:%d", id)
}

// Validate returns every violation found in the batch. The error return is
// reserved for store access failures during validation; it does not indicate
// an invalid batch.
func (v *Validator) Validate(b *Batch) ([]*ValidationError, error) {
	var violations []*ValidationError
	add := func(entity, ref, field, reason string) {
		violations = append(violations, &ValidationError{Entity: entity, Ref: ref, Field: field, Reason: reason})
	}

	userCache := map[uint]*models.User{}
	categoryCache := map[uint]bool{}
	restaurantCache := map[uint]bool{}
	menuCatCache := map[uint]*models.MenuCategory{}

	// ── Users ───────────────────────────────────────────────────────────────
	userRefs := map[string]*UserRecord{}
	batchEmails := map[string]int{}
	for i := range b.Users {
		u := &b.Users[i]
		label := refLabel(u.Ref, i)

		if u.Ref != "" {
			if _, dup := userRefs[u.Ref]; dup {
				add("user", label, "ref", "duplicate ref in batch")
			} else {
				userRefs[u.Ref] = u
			}
		}
		if err := fieldCheck.Var(u.Email, "required,email"); err != nil {
			add("user", label, "email", "must be a valid email address")
		} else {
			batchEmails[u.Email]++
		}
		if u.FullName == "" {
			add("user", label, "full_name", "required")
		}
		if !u.Role.Valid() {
			add("user", label, "role", "must be one of: customer, restaurant_admin, super_admin")
		}
	}
	// Uniqueness within the batch: report every record carrying a duped email
	for i := range b.Users {
		u := &b.Users[i]
		if batchEmails[u.Email] > 1 {
			add("user", refLabel(u.Ref, i), "email", "duplicate email in batch")
		}
	}
	// Uniqueness against the store
	for i := range b.Users {
		u := &b.Users[i]
		if u.Email == "" {
			continue
		}
		var count int64
		if err := v.db.Model(&models.User{}).Where("email = ?", u.Email).Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			add("user", refLabel(u.Ref, i), "email", "already registered")
		}
	}

	// ── Restaurants ─────────────────────────────────────────────────────────
	restaurantRefs := map[string]*RestaurantRecord{}
	for i := range b.Restaurants {
		r := &b.Restaurants[i]
		label := refLabel(r.Ref, i)

		if r.Ref != "" {
			if _, dup := restaurantRefs[r.Ref]; dup {
				add("restaurant", label, "ref", "duplicate ref in batch")
			} else {
				restaurantRefs[r.Ref] = r
			}
		}
		if r.Name == "" {
			add("restaurant", label, "name", "required")
		}
		if r.Address == "" {
			add("restaurant", label, "address", "required")
		}

		switch {
		case r.OwnerRef != "" && r.OwnerID != 0:
			add("restaurant", label, "owner_id", "exactly one of owner_ref and owner_id must be set")
		case r.OwnerRef == "" && r.OwnerID == 0:
			add("restaurant", label, "owner_id", "required")
		case r.OwnerRef != "":
			owner, ok := userRefs[r.OwnerRef]
			if !ok {
				add("restaurant", label, "owner_ref", "not found")
			} else if !owner.Role.CanOwnRestaurant() {
				add("restaurant", label, "owner_ref", fmt.Sprintf("user role %q cannot own a restaurant", owner.Role))
			}
		default:
			owner, err := v.userByID(userCache, r.OwnerID)
			if err != nil {
				return nil, err
			}
			if owner == nil {
				add("restaurant", label, "owner_id", "not found")
			} else if !owner.Role.CanOwnRestaurant() {
				add("restaurant", label, "owner_id", fmt.Sprintf("user role %q cannot own a restaurant", owner.Role))
			}
		}

		if r.CategoryID == 0 {
			add("restaurant", label, "category_id", "required")
		} else {
			ok, err := v.categoryExists(categoryCache, r.CategoryID)
			if err != nil {
				return nil, err
			}
			if !ok {
				add("restaurant", label, "category_id", "not found")
			}
		}
	}

	// ── Menu categories ─────────────────────────────────────────────────────
	menuCatRefs := map[string]*MenuCategoryRecord{}
	catOrderSeen := map[string]int{}
	for i := range b.MenuCategories {
		mc := &b.MenuCategories[i]
		label := refLabel(mc.Ref, i)

		if mc.Ref != "" {
			if _, dup := menuCatRefs[mc.Ref]; dup {
				add("menu_category", label, "ref", "duplicate ref in batch")
			} else {
				menuCatRefs[mc.Ref] = mc
			}
		}
		if mc.Name == "" {
			add("menu_category", label, "name", "required")
		}
		if mc.DisplayOrder < 0 {
			add("menu_category", label, "display_order", "must be a non-negative integer")
		}

		ok, err := v.checkRestaurantRef(restaurantCache, restaurantRefs, "menu_category", label, "restaurant", mc.RestaurantRef, mc.RestaurantID, add)
		if err != nil {
			return nil, err
		}
		if ok {
			catOrderSeen[fmt.Sprintf("%s/%d", entityKey(mc.RestaurantRef, mc.RestaurantID), mc.DisplayOrder)]++
		}
	}
	for i := range b.MenuCategories {
		mc := &b.MenuCategories[i]
		key := fmt.Sprintf("%s/%d", entityKey(mc.RestaurantRef, mc.RestaurantID), mc.DisplayOrder)
		if catOrderSeen[key] > 1 {
			add("menu_category", refLabel(mc.Ref, i), "display_order", "duplicate display_order for restaurant in batch")
		}
	}
	for i := range b.MenuCategories {
		mc := &b.MenuCategories[i]
		if mc.RestaurantID == 0 {
			continue // in-batch restaurant, store cannot hold a sibling yet
		}
		var count int64
		err := v.db.Model(&models.MenuCategory{}).
			Where("restaurant_id = ? AND display_order = ?", mc.RestaurantID, mc.DisplayOrder).
			Count(&count).Error
		if err != nil {
			return nil, err
		}
		if count > 0 {
			add("menu_category", refLabel(mc.Ref, i), "display_order", "already used in restaurant")
		}
	}

	// ── Menu items ──────────────────────────────────────────────────────────
	itemOrderSeen := map[string]int{}
	itemOrderKey := make([]string, len(b.MenuItems))
	for i := range b.MenuItems {
		mi := &b.MenuItems[i]
		label := refLabel(mi.Ref, i)

		if mi.Name == "" {
			add("menu_item", label, "name", "required")
		}
		if len(mi.Price) == 0 {
			add("menu_item", label, "price", "must contain at least one entry")
		}
		for size, amount := range mi.Price {
			if amount <= 0 {
				add("menu_item", label, "price", fmt.Sprintf("price for %q must be greater than zero", size))
			}
		}
		if mi.DisplayOrder < 0 {
			add("menu_item", label, "display_order", "must be a non-negative integer")
		}

		restOK, err := v.checkRestaurantRef(restaurantCache, restaurantRefs, "menu_item", label, "restaurant", mi.RestaurantRef, mi.RestaurantID, add)
		if err != nil {
			return nil, err
		}

		catOK := false
		switch {
		case mi.MenuCategoryRef != "" && mi.MenuCategoryID != 0:
			add("menu_item", label, "menu_category_id", "exactly one of menu_category_ref and menu_category_id must be set")
		case mi.MenuCategoryRef == "" && mi.MenuCategoryID == 0:
			add("menu_item", label, "menu_category_id", "required")
		case mi.MenuCategoryRef != "":
			mc, ok := menuCatRefs[mi.MenuCategoryRef]
			if !ok {
				add("menu_item", label, "menu_category_ref", "not found")
			} else if restOK && entityKey(mc.RestaurantRef, mc.RestaurantID) != entityKey(mi.RestaurantRef, mi.RestaurantID) {
				add("menu_item", label, "menu_category_ref", "category belongs to a different restaurant")
			} else {
				catOK = true
			}
		default:
			mc, err := v.menuCategoryByID(menuCatCache, mi.MenuCategoryID)
			if err != nil {
				return nil, err
			}
			if mc == nil {
				add("menu_item", label, "menu_category_id", "not found")
			} else if restOK && (mi.RestaurantRef != "" || mc.RestaurantID != mi.RestaurantID) {
				// An in-batch restaurant cannot own a pre-existing category.
				add("menu_item", label, "menu_category_id", "category belongs to a different restaurant")
			} else {
				catOK = true
			}
		}

		if restOK && catOK {
			key := fmt.Sprintf("%s/%s/%d",
				entityKey(mi.RestaurantRef, mi.RestaurantID),
				entityKey(mi.MenuCategoryRef, mi.MenuCategoryID),
				mi.DisplayOrder)
			itemOrderKey[i] = key
			itemOrderSeen[key]++
		}
	}
	for i := range b.MenuItems {
		mi := &b.MenuItems[i]
		if itemOrderKey[i] != "" && itemOrderSeen[itemOrderKey[i]] > 1 {
			add("menu_item", refLabel(mi.Ref, i), "display_order", "duplicate display_order for category in batch")
		}
	}
	for i := range b.MenuItems {
		mi := &b.MenuItems[i]
		if mi.RestaurantID == 0 || mi.MenuCategoryID == 0 {
			continue
		}
		var count int64
		err := v.db.Model(&models.MenuItem{}).
			Where("restaurant_id = ? AND menu_category_id = ? AND display_order = ?",
				mi.RestaurantID, mi.MenuCategoryID, mi.DisplayOrder).
			Count(&count).Error
		if err != nil {
			return nil, err
		}
		if count > 0 {
			add("menu_item", refLabel(mi.Ref, i), "display_order", "already used in category")
		}
	}

	return violations, nil
}

// checkRestaurantRef validates the one-of restaurant reference shared by
// menu categories and menu items. It reports true when the reference
// resolves cleanly.
func (v *Validator) checkRestaurantRef(
	cache map[uint]bool,
	refs map[string]*RestaurantRecord,
	entity, label, fieldBase, ref string,
	id uint,
	add func(entity, ref, field, reason string),
) (bool, error) {
	switch {
	case ref != "" && id != 0:
		add(entity, label, fieldBase+"_id", "exactly one of "+fieldBase+"_ref and "+fieldBase+"_id must be set")
	case ref == "" && id == 0:
		add(entity, label, fieldBase+"_id", "required")
	case ref != "":
		if _, ok := refs[ref]; !ok {
			add(entity, label, fieldBase+"_ref", "not found")
			return false, nil
		}
		return true, nil
	default:
		ok, err := v.restaurantExists(cache, id)
		if err != nil {
			return false, err
		}
		if !ok {
			add(entity, label, fieldBase+"_id", "not found")
			return false, nil
		}
		return true, nil
	}
	return false, nil
}

func (v *Validator) userByID(cache map[uint]*models.User, id uint) (*models.User, error) {
	if u, hit := cache[id]; hit {
		return u, nil
	}
	var u models.User
	err := v.db.First(&u, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		cache[id] = nil
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	cache[id] = &u
	return &u, nil
}

func (v *Validator) menuCategoryByID(cache map[uint]*models.MenuCategory, id uint) (*models.MenuCategory, error) {
	if mc, hit := cache[id]; hit {
		return mc, nil
	}
	var mc models.MenuCategory
	err := v.db.First(&mc, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		cache[id] = nil
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	cache[id] = &mc
	return &mc, nil
}

func (v *Validator) categoryExists(cache map[uint]bool, id uint) (bool, error) {
	if ok, hit := cache[id]; hit {
		return ok, nil
	}
	var count int64
	if err := v.db.Model(&models.Category{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	cache[id] = count > 0
	return count > 0, nil
}

func (v *Validator) restaurantExists(cache map[uint]bool, id uint) (bool, error) {
	if ok, hit := cache[id]; hit {
		return ok, nil
	}
	var count int64
	if err := v.db.Model(&models.Restaurant{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	cache[id] = count > 0
	return count > 0, nil
}
