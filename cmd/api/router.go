package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"replenish-backend/internal/shared/middleware"
	"replenish-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupRulesRoutes(v1, c)
		setupAllocationRoutes(v1, c)
		setupPlanRoutes(v1, c)
		setupInventoryRoutes(v1, c)
	}

	return router
}

func setupRulesRoutes(v1 *gin.RouterGroup, c *container.Container) {
	rules := v1.Group("/rules")
	{
		rules.POST("", c.RulesHandler.CreateTemplate)
		rules.GET("", c.RulesHandler.ListTemplates)
		rules.GET("/active", c.RulesHandler.GetActive)
		rules.GET("/:id", c.RulesHandler.GetTemplate)
		rules.PUT("/:id", c.RulesHandler.UpdateTemplate)
		rules.POST("/:id/activate", c.RulesHandler.Activate)
	}
}

func setupAllocationRoutes(v1 *gin.RouterGroup, c *container.Container) {
	v1.POST("/allocations/run", c.AllocHandler.RunAllocation)
}

func setupPlanRoutes(v1 *gin.RouterGroup, c *container.Container) {
	plans := v1.Group("/plans")
	{
		plans.POST("", c.ShipmentHandler.GeneratePlan)
		plans.GET("/:id", c.ShipmentHandler.GetPlan)
		plans.PATCH("/:id/lines/:sku", c.ShipmentHandler.AdjustLine)
		plans.GET("/:id/export", c.ShipmentHandler.ExportPlan)
	}
}

func setupInventoryRoutes(v1 *gin.RouterGroup, c *container.Container) {
	inventory := v1.Group("/inventory")
	{
		inventory.POST("/import", c.InvHandler.ImportStocks)
		inventory.GET("/:sku", c.InvHandler.GetWarehouseStock)
	}
}

func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		checkCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
		defer cancel()

		dbStatus := "up"
		if err := c.DB.HealthCheck(checkCtx); err != nil {
			dbStatus = "down"
		}

		cacheStatus := "up"
		if err := c.Cache.Ping(checkCtx); err != nil {
			cacheStatus = "down"
		}

		status := http.StatusOK
		overall := "ok"
		if dbStatus == "down" {
			status = http.StatusServiceUnavailable
			overall = "degraded"
		}

		ctx.JSON(status, gin.H{
			"status":   overall,
			"database": dbStatus,
			"cache":    cacheStatus,
			"version":  c.Config.App.Version,
		})
	}
}
