package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sirajbinsyed/menuzy/catalog"
	"github.com/sirajbinsyed/menuzy/config"
	"github.com/sirajbinsyed/menuzy/models"
	"github.com/sirajbinsyed/menuzy/statemachine"
)

// defaultLoadTimeout bounds a load call when the caller does not supply
// timeout_ms.
const defaultLoadTimeout = 5 * time.Second

// LoadBatch accepts a catalog batch and runs it through the loader. The
// response mirrors the LoadResult: assigned IDs on success, the full error
// list otherwise. Nothing is persisted on failure.
func LoadBatch(c *gin.Context) {
	var batch catalog.Batch
	if err := c.ShouldBindJSON(&batch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if batch.Size() == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Batch contains no records"})
		return
	}

	timeout := defaultLoadTimeout
	if ms := c.Query("timeout_ms"); ms != "" {
		n, err := strconv.Atoi(ms)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "timeout_ms must be a positive integer"})
			return
		}
		timeout = time.Duration(n) * time.Millisecond
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
	defer cancel()

	result := catalog.NewLoader(config.DB).Load(ctx, &batch)
	c.JSON(loadStatus(result), result)
}

// loadStatus maps a load outcome to an HTTP status code.
func loadStatus(result *catalog.LoadResult) int {
	switch {
	case result.OK:
		return http.StatusCreated
	case result.HasKind(catalog.KindTimeout):
		return http.StatusGatewayTimeout
	case result.HasKind(catalog.KindStore):
		return http.StatusConflict
	default:
		return http.StatusUnprocessableEntity
	}
}

// ListLoadRecords returns the load journal, newest first
func ListLoadRecords(c *gin.Context) {
	var records []models.LoadRecord
	query := config.DB
	if state := c.Query("state"); state != "" {
		query = query.Where("state = ?", state)
	}
	query.Order("created_at desc").Limit(100).Find(&records)
	c.JSON(http.StatusOK, gin.H{"count": len(records), "loads": records})
}

// GetLoadRecord returns one journaled load by its batch ID
func GetLoadRecord(c *gin.Context) {
	var record models.LoadRecord
	if err := config.DB.Where("batch_id = ?", c.Param("batchId")).First(&record).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Load not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"load": record})
}

// DashboardStats returns catalog-wide counts
func DashboardStats(c *gin.Context) {
	var users, restaurants, menuCategories, menuItems int64
	config.DB.Model(&models.User{}).Where("is_active = ?", true).Count(&users)
	config.DB.Model(&models.Restaurant{}).Where("is_active = ?", true).Count(&restaurants)
	config.DB.Model(&models.MenuCategory{}).Count(&menuCategories)
	config.DB.Model(&models.MenuItem{}).Count(&menuItems)

	c.JSON(http.StatusOK, gin.H{
		"total_users":           users,
		"total_restaurants":     restaurants,
		"total_menu_categories": menuCategories,
		"total_menu_items":      menuItems,
	})
}

// GetStateMachineInfo returns the batch lifecycle for informational purposes
func GetStateMachineInfo(c *gin.Context) {
	transitions := statemachine.GetAllTransitions()
	info := make([]gin.H, 0, len(transitions))
	for _, t := range transitions {
		info = append(info, gin.H{
			"from":    t.From,
			"to":      t.To,
			"trigger": t.Trigger,
		})
	}
	c.JSON(http.StatusOK, gin.H{
		"state_machine":   info,
		"terminal_states": []models.BatchState{models.BatchCommitted, models.BatchRejected, models.BatchRolledBack},
		"description":     "Catalog Batch Load Lifecycle State Machine",
	})
}
