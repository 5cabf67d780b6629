package main

import (
	"github.com/hibiken/asynq"

	inventoryJob "replenish-backend/internal/domains/inventory/job"
	shipmentJob "replenish-backend/internal/domains/shipment/job"
	"replenish-backend/internal/shared"
	"replenish-backend/pkg/container"
)

// HandlerRegistry holds all job handlers
type HandlerRegistry struct {
	generatePlan *shipmentJob.GeneratePlanHandler
	prunePlans   *shipmentJob.PrunePlansHandler
	stockSync    *inventoryJob.StockSyncHandler
}

// initializeHandlers creates all job handlers with their dependencies
func initializeHandlers(c *container.Container) *HandlerRegistry {
	return &HandlerRegistry{
		generatePlan: shipmentJob.NewGeneratePlanHandler(c.ShipmentService),
		prunePlans:   shipmentJob.NewPrunePlansHandler(c.ShipmentService),
		stockSync:    inventoryJob.NewStockSyncHandler(c.InvService),
	}
}

// RegisterHandlers registers all handlers with the mux
func (h *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(shared.TypePlanGenerate, h.generatePlan.ProcessTask)
	mux.HandleFunc(shared.TypePlanPrune, h.prunePlans.ProcessTask)
	mux.HandleFunc(shared.TypeInventorySync, h.stockSync.ProcessTask)
}
