package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"

	"replenish-backend/internal/domains/inventory/service"
	"replenish-backend/internal/shared"
	"replenish-backend/pkg/logger"
)

// StockSyncHandler rewrites the cached availability snapshot from the
// database, keeping dashboard reads off the hot path.
type StockSyncHandler struct {
	svc service.ServiceInterface
}

func NewStockSyncHandler(svc service.ServiceInterface) *StockSyncHandler {
	return &StockSyncHandler{svc: svc}
}

func (h *StockSyncHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload shared.InventorySyncPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Error("InventorySync: failed to unmarshal payload", err)
		return fmt.Errorf("unmarshal InventorySync payload: %w", err)
	}

	count, err := h.svc.RefreshAvailabilityCache(ctx)
	if err != nil {
		// DB errors are transient, let asynq retry.
		logger.Error("InventorySync: refresh failed", err)
		return err
	}

	logger.Info("InventorySync: cache refreshed", map[string]interface{}{
		"skus": count,
		"sku":  payload.SKU,
	})

	return nil
}
