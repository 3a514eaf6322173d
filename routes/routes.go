package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/sirajbinsyed/menuzy/handlers"
)

func SetupRoutes(r *gin.Engine) {
	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		public.GET("/categories", handlers.ListCategories)
		public.GET("/restaurants", handlers.ListRestaurants)
		public.GET("/restaurants/:id", handlers.GetRestaurant)
		public.GET("/restaurants/:id/menu", handlers.GetMenu)

		// State machine info (great for docs/Postman)
		public.GET("/state-machine", handlers.GetStateMachineInfo)
	}

	// ── Catalog loading ────────────────────────────────────────────
	load := r.Group("/api/catalog")
	{
		load.POST("/load", handlers.LoadBatch)
		load.GET("/loads", handlers.ListLoadRecords)
		load.GET("/loads/:batchId", handlers.GetLoadRecord)
		load.GET("/stats", handlers.DashboardStats)
	}
}
