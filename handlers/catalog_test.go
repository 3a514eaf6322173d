package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/sirajbinsyed/menuzy/catalog"
	"github.com/sirajbinsyed/menuzy/config"
	"github.com/sirajbinsyed/menuzy/models"
	"github.com/sirajbinsyed/menuzy/routes"
)

// newTestRouter wires the real routes against a fresh in-memory store.
func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Restaurant{},
		&models.MenuCategory{},
		&models.MenuItem{},
		&models.LoadRecord{},
	))
	config.DB = db

	r := gin.New()
	routes.SetupRoutes(r)
	return r
}

func seedCategory(t *testing.T, name string) uint {
	t.Helper()
	cat := models.Category{Name: name, IsActive: true}
	require.NoError(t, config.DB.Create(&cat).Error)
	return cat.ID
}

func postBatch(t *testing.T, r *gin.Engine, batch *catalog.Batch) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(batch)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/catalog/load", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func demoBatch(categoryID uint) *catalog.Batch {
	return &catalog.Batch{
		Users: []catalog.UserRecord{
			{Ref: "owner", Email: "owner@demo.example", FullName: "Demo Owner", Role: models.RoleRestaurantAdmin},
		},
		Restaurants: []catalog.RestaurantRecord{
			{Ref: "r1", OwnerRef: "owner", CategoryID: categoryID, Name: "Demo Diner", Address: "1 Demo Way"},
		},
		MenuCategories: []catalog.MenuCategoryRecord{
			{Ref: "mains", RestaurantRef: "r1", Name: "Mains", DisplayOrder: 1},
		},
		MenuItems: []catalog.MenuItemRecord{
			{RestaurantRef: "r1", MenuCategoryRef: "mains", Name: "Pancakes",
				Price: models.PriceMap{"regular": 6.0}, DisplayOrder: 1},
		},
	}
}

func TestLoadBatchEndpointCommits(t *testing.T) {
	r := newTestRouter(t)
	categoryID := seedCategory(t, "Cafe")

	w := postBatch(t, r, demoBatch(categoryID))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var result catalog.LoadResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.True(t, result.OK)
	assert.Equal(t, models.BatchCommitted, result.State)
	require.NotNil(t, result.IDs)
	assert.Len(t, result.IDs.MenuItems, 1)

	// The committed batch is publicly visible
	list := get(r, "/api/restaurants?q=Demo")
	require.Equal(t, http.StatusOK, list.Code)
	assert.Contains(t, list.Body.String(), "Demo Diner")
}

func TestLoadBatchEndpointRejectsAndJournals(t *testing.T) {
	r := newTestRouter(t)
	categoryID := seedCategory(t, "Pizza")

	batch := demoBatch(categoryID)
	batch.Restaurants[0].OwnerRef = ""
	batch.Restaurants[0].OwnerID = 999

	w := postBatch(t, r, batch)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var result catalog.LoadResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.False(t, result.OK)
	assert.Equal(t, models.BatchRejected, result.State)
	require.NotEmpty(t, result.Errors)
	assert.Equal(t, catalog.KindValidation, result.Errors[0].Kind)

	// Rejected batches leave no catalog rows but stay auditable
	var restaurants int64
	config.DB.Model(&models.Restaurant{}).Count(&restaurants)
	assert.Zero(t, restaurants)

	journal := get(r, "/api/catalog/loads/"+result.BatchID)
	require.Equal(t, http.StatusOK, journal.Code)
	assert.Contains(t, journal.Body.String(), string(models.BatchRejected))
}

func TestLoadBatchEndpointBadRequest(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/catalog/load", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	empty := postBatch(t, r, &catalog.Batch{})
	assert.Equal(t, http.StatusBadRequest, empty.Code)
}

func TestGetMenuGroupsByCategory(t *testing.T) {
	r := newTestRouter(t)
	categoryID := seedCategory(t, "Asian")

	batch := demoBatch(categoryID)
	batch.MenuCategories = append(batch.MenuCategories, catalog.MenuCategoryRecord{
		Ref: "desserts", RestaurantRef: "r1", Name: "Desserts", DisplayOrder: 2,
	})
	batch.MenuItems = append(batch.MenuItems, catalog.MenuItemRecord{
		RestaurantRef: "r1", MenuCategoryRef: "desserts", Name: "Mochi",
		Price: models.PriceMap{"regular": 4.0}, DisplayOrder: 1,
	})
	w := postBatch(t, r, batch)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var result catalog.LoadResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	restaurantID := result.IDs.Restaurants[0].ID

	menu := get(r, fmt.Sprintf("/api/restaurants/%d/menu", restaurantID))
	require.Equal(t, http.StatusOK, menu.Code)

	var payload struct {
		Restaurant string `json:"restaurant"`
		Count      int    `json:"count"`
		Menu       []struct {
			Category models.MenuCategory `json:"category"`
			Items    []models.MenuItem   `json:"items"`
		} `json:"menu"`
	}
	require.NoError(t, json.Unmarshal(menu.Body.Bytes(), &payload))
	assert.Equal(t, "Demo Diner", payload.Restaurant)
	assert.Equal(t, 2, payload.Count)
	require.Len(t, payload.Menu, 2)
	assert.Equal(t, "Mains", payload.Menu[0].Category.Name)
	assert.Equal(t, "Desserts", payload.Menu[1].Category.Name)
	require.Len(t, payload.Menu[1].Items, 1)
	assert.Equal(t, "Mochi", payload.Menu[1].Items[0].Name)
}

func TestGetMenuCountExcludesInactiveCategories(t *testing.T) {
	r := newTestRouter(t)
	categoryID := seedCategory(t, "Mexican")

	batch := demoBatch(categoryID)
	batch.MenuCategories = append(batch.MenuCategories, catalog.MenuCategoryRecord{
		Ref: "seasonal", RestaurantRef: "r1", Name: "Seasonal", DisplayOrder: 2,
	})
	batch.MenuItems = append(batch.MenuItems, catalog.MenuItemRecord{
		RestaurantRef: "r1", MenuCategoryRef: "seasonal", Name: "Elote",
		Price: models.PriceMap{"regular": 3.0}, DisplayOrder: 1,
	})
	w := postBatch(t, r, batch)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var result catalog.LoadResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	restaurantID := result.IDs.Restaurants[0].ID
	seasonalID := result.IDs.MenuCategories[1].ID

	require.NoError(t, config.DB.Model(&models.MenuCategory{}).
		Where("id = ?", seasonalID).Update("is_active", false).Error)

	menu := get(r, fmt.Sprintf("/api/restaurants/%d/menu", restaurantID))
	require.Equal(t, http.StatusOK, menu.Code)

	var payload struct {
		Count int `json:"count"`
		Menu  []struct {
			Category models.MenuCategory `json:"category"`
		} `json:"menu"`
	}
	require.NoError(t, json.Unmarshal(menu.Body.Bytes(), &payload))
	require.Len(t, payload.Menu, 1, "inactive category must not be emitted")
	assert.Equal(t, "Mains", payload.Menu[0].Category.Name)
	assert.Equal(t, 1, payload.Count, "count must match the items actually shown")
}

func TestStateMachineInfo(t *testing.T) {
	r := newTestRouter(t)
	w := get(r, "/api/state-machine")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), string(models.BatchCommitted))
	assert.Contains(t, w.Body.String(), string(models.BatchRolledBack))
}

func TestDashboardStats(t *testing.T) {
	r := newTestRouter(t)
	categoryID := seedCategory(t, "Healthy")
	require.Equal(t, http.StatusCreated, postBatch(t, r, demoBatch(categoryID)).Code)

	w := get(r, "/api/catalog/stats")
	require.Equal(t, http.StatusOK, w.Code)

	var stats map[string]int64
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, int64(1), stats["total_users"])
	assert.Equal(t, int64(1), stats["total_restaurants"])
	assert.Equal(t, int64(1), stats["total_menu_items"])
}
