package shared

// Asynq task types and queue names shared between the API (enqueue side)
// and the worker (handler side).
const (
	TypePlanGenerate  = "plan:generate"
	TypeInventorySync = "inventory:sync"
	TypePlanPrune     = "plan:prune"

	QueueHigh    = "high"
	QueueDefault = "default"
	QueueLow     = "low"
)

// PlanGeneratePayload triggers a full plan calculation. An empty SKU list
// means "plan the whole active catalog".
type PlanGeneratePayload struct {
	SKUs []string `json:"skus,omitempty"`
}

// InventorySyncPayload refreshes the cached stock snapshot.
type InventorySyncPayload struct {
	SKU string `json:"sku,omitempty"` // empty = all SKUs
}

// PlanPrunePayload removes plans older than RetentionDays.
type PlanPrunePayload struct {
	RetentionDays int `json:"retention_days"`
}
