package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"replenish-backend/internal/domains/shipment/model"
)

// RepositoryInterface persists shipment plans. A plan round-trips with
// its full line detail, rules snapshot, and summary.
type RepositoryInterface interface {
	SavePlan(ctx context.Context, plan *model.ShipmentPlan) error
	GetPlan(ctx context.Context, id uuid.UUID) (*model.ShipmentPlan, error)
	ReplaceLines(ctx context.Context, plan *model.ShipmentPlan) error
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
