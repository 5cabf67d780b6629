package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"

	"replenish-backend/internal/domains/shipment/service"
	"replenish-backend/internal/shared"
	"replenish-backend/pkg/logger"
)

// PrunePlansHandler removes plans past the retention window.
type PrunePlansHandler struct {
	svc service.ServiceInterface
}

func NewPrunePlansHandler(svc service.ServiceInterface) *PrunePlansHandler {
	return &PrunePlansHandler{svc: svc}
}

func (h *PrunePlansHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload shared.PlanPrunePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Error("PlanPrune: failed to unmarshal payload", err)
		return fmt.Errorf("unmarshal PlanPrune payload: %w", err)
	}

	if payload.RetentionDays <= 0 {
		err := fmt.Errorf("PlanPrune: retention_days must be positive, got %d", payload.RetentionDays)
		logger.Error("PlanPrune: invalid payload", err)
		return err
	}

	removed, err := h.svc.PrunePlans(ctx, payload.RetentionDays)
	if err != nil {
		logger.Error("PlanPrune: prune failed", err)
		return err
	}

	logger.Info("PlanPrune: completed", map[string]interface{}{
		"removed":        removed,
		"retention_days": payload.RetentionDays,
	})

	return nil
}
