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

// GeneratePlanHandler runs the nightly plan calculation.
type GeneratePlanHandler struct {
	svc service.ServiceInterface
}

func NewGeneratePlanHandler(svc service.ServiceInterface) *GeneratePlanHandler {
	return &GeneratePlanHandler{svc: svc}
}

// ProcessTask generates and stores a plan over the payload's SKUs, or
// the whole active catalog when the list is empty.
func (h *GeneratePlanHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload shared.PlanGeneratePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Error("PlanGenerate: failed to unmarshal payload", err)
		return fmt.Errorf("unmarshal PlanGenerate payload: %w", err)
	}

	plan, err := h.svc.GeneratePlan(ctx, payload.SKUs)
	if err != nil {
		logger.Error("PlanGenerate: plan generation failed", err)
		return err
	}

	logger.Info("PlanGenerate: plan stored", map[string]interface{}{
		"plan_id":   plan.ID.String(),
		"lines":     len(plan.Lines),
		"shippable": plan.Summary.TotalItems,
	})

	return nil
}
