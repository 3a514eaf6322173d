package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/sirajbinsyed/menuzy/models"
	"github.com/sirajbinsyed/menuzy/statemachine"
)

// Loader validates and persists catalog batches. One Load call is one
// transaction: either every record in the batch becomes visible or none
// does. The caller bounds the call with a context deadline; an expired
// deadline aborts the transaction and reports a TimeoutError.
type Loader struct {
	db        *gorm.DB
	validator *Validator
	log       *logrus.Entry
}

func NewLoader(db *gorm.DB) *Loader {
	return &Loader{
		db:        db,
		validator: NewValidator(db),
		log:       logrus.WithField("component", "catalog.loader"),
	}
}

// Load runs the Validator over the batch and, if it is clean, persists all
// records in dependency order (users, restaurants, menu categories, menu
// items) inside a single transaction. The returned LoadResult carries either
// the assigned identifiers or the full list of errors; partial writes never
// survive. Every call is journaled as a LoadRecord.
func (l *Loader) Load(ctx context.Context, batch *Batch) *LoadResult {
	result := &LoadResult{
		BatchID: uuid.NewString(),
		State:   models.BatchReceived,
	}
	log := l.log.WithFields(logrus.Fields{"batch_id": result.BatchID, "records": batch.Size()})

	violations, err := l.validator.Validate(batch)
	if err != nil {
		// The store failed mid-validation; nothing was written. The reason
		// marks the abort so journal readers can tell it apart from a
		// rejection for batch violations.
		l.advance(result, models.BatchValidated)
		l.advance(result, models.BatchRejected)
		re := toResultError(classifyTxError(err))
		re.Reason = "validation aborted: " + err.Error()
		result.Errors = []ResultError{re}
		l.journal(batch, result)
		log.WithError(err).Error("Validation aborted by store failure")
		return result
	}
	l.advance(result, models.BatchValidated)

	if len(violations) > 0 {
		l.advance(result, models.BatchRejected)
		for _, ve := range violations {
			result.Errors = append(result.Errors, toResultError(ve))
		}
		l.journal(batch, result)
		log.WithField("violations", len(violations)).Warn("Batch rejected")
		return result
	}

	l.advance(result, models.BatchPersisting)
	ids := &AssignedIDs{}
	// sqlite transactions are serializable, so two concurrent loads cannot
	// both believe an email or display_order slot is free. Whichever commits
	// second fails on the unique index and rolls back whole.
	txErr := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return l.persist(tx, batch, ids)
	})
	if txErr != nil {
		l.advance(result, models.BatchRolledBack)
		result.Errors = []ResultError{toResultError(classifyTxError(txErr))}
		l.journal(batch, result)
		log.WithError(txErr).Warn("Batch rolled back")
		return result
	}

	l.advance(result, models.BatchCommitted)
	result.OK = true
	result.IDs = ids
	l.journal(batch, result)
	log.Info("Batch committed")
	return result
}

// persist inserts the batch inside tx in explicit dependency order, resolving
// ref handles to the identifiers assigned by earlier stages.
func (l *Loader) persist(tx *gorm.DB, batch *Batch, ids *AssignedIDs) error {
	userIDs := map[string]uint{}
	restaurantIDs := map[string]uint{}
	menuCategoryIDs := map[string]uint{}

	for _, rec := range batch.Users {
		user := models.User{
			Email:    rec.Email,
			FullName: rec.FullName,
			Phone:    rec.Phone,
			Role:     rec.Role,
			IsActive: true,
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		if rec.Ref != "" {
			userIDs[rec.Ref] = user.ID
		}
		ids.Users = append(ids.Users, EntityID{Ref: rec.Ref, ID: user.ID})
	}

	for _, rec := range batch.Restaurants {
		ownerID := rec.OwnerID
		if rec.OwnerRef != "" {
			ownerID = userIDs[rec.OwnerRef]
		}
		restaurant := models.Restaurant{
			OwnerID:      ownerID,
			CategoryID:   rec.CategoryID,
			Name:         rec.Name,
			Description:  rec.Description,
			Address:      rec.Address,
			Latitude:     rec.Latitude,
			Longitude:    rec.Longitude,
			Phone:        rec.Phone,
			Email:        rec.Email,
			ImageURL:     rec.ImageURL,
			OpeningHours: rec.OpeningHours,
			IsActive:     true,
		}
		if err := tx.Create(&restaurant).Error; err != nil {
			return err
		}
		if rec.Ref != "" {
			restaurantIDs[rec.Ref] = restaurant.ID
		}
		ids.Restaurants = append(ids.Restaurants, EntityID{Ref: rec.Ref, ID: restaurant.ID})
	}

	for _, rec := range batch.MenuCategories {
		restaurantID := rec.RestaurantID
		if rec.RestaurantRef != "" {
			restaurantID = restaurantIDs[rec.RestaurantRef]
		}
		category := models.MenuCategory{
			RestaurantID: restaurantID,
			Name:         rec.Name,
			Description:  rec.Description,
			DisplayOrder: rec.DisplayOrder,
			IsActive:     true,
		}
		if err := tx.Create(&category).Error; err != nil {
			return err
		}
		if rec.Ref != "" {
			menuCategoryIDs[rec.Ref] = category.ID
		}
		ids.MenuCategories = append(ids.MenuCategories, EntityID{Ref: rec.Ref, ID: category.ID})
	}

	for _, rec := range batch.MenuItems {
		restaurantID := rec.RestaurantID
		if rec.RestaurantRef != "" {
			restaurantID = restaurantIDs[rec.RestaurantRef]
		}
		menuCategoryID := rec.MenuCategoryID
		if rec.MenuCategoryRef != "" {
			menuCategoryID = menuCategoryIDs[rec.MenuCategoryRef]
		}
		item := models.MenuItem{
			RestaurantID:   restaurantID,
			MenuCategoryID: menuCategoryID,
			Name:           rec.Name,
			Description:    rec.Description,
			Price:          rec.Price,
			ImageURL:       rec.ImageURL,
			IsVegetarian:   rec.IsVegetarian,
			IsVegan:        rec.IsVegan,
			IsGlutenFree:   rec.IsGlutenFree,
			Ingredients:    rec.Ingredients,
			Allergens:      rec.Allergens,
			IsAvailable:    true,
			DisplayOrder:   rec.DisplayOrder,
		}
		if err := tx.Create(&item).Error; err != nil {
			return err
		}
		ids.MenuItems = append(ids.MenuItems, EntityID{Ref: rec.Ref, ID: item.ID})
	}

	return nil
}

// advance moves the result to the next batch state, enforcing the state
// machine. An illegal transition is a bug in the loader itself, not in the
// batch, so it is logged loudly instead of failing the load.
func (l *Loader) advance(result *LoadResult, to models.BatchState) {
	if err := statemachine.CanTransition(result.State, to); err != nil {
		l.log.WithError(err).WithField("batch_id", result.BatchID).Error("Illegal batch state transition")
	}
	result.State = to
}

// journal records the terminal outcome of a load call. The journal write
// deliberately does not use the caller's context: a timed-out load must
// still be auditable.
func (l *Loader) journal(batch *Batch, result *LoadResult) {
	record := models.LoadRecord{
		BatchID:        result.BatchID,
		State:          result.State,
		Users:          len(batch.Users),
		Restaurants:    len(batch.Restaurants),
		MenuCategories: len(batch.MenuCategories),
		MenuItems:      len(batch.MenuItems),
	}
	for _, e := range result.Errors {
		record.Errors = append(record.Errors, e.String())
	}
	if err := l.db.Create(&record).Error; err != nil {
		l.log.WithError(err).WithField("batch_id", result.BatchID).Error("Failed to journal load")
	}
}
