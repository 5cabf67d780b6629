package repository

import (
	"context"

	"github.com/google/uuid"

	"replenish-backend/internal/domains/rules/model"
)

// RepositoryInterface is the load/save collaborator for planning rules
// templates. Services receive rules through this boundary; nothing reads
// a global.
type RepositoryInterface interface {
	Create(ctx context.Context, rules *model.PlanningRules) error
	Update(ctx context.Context, rules *model.PlanningRules) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.PlanningRules, error)
	List(ctx context.Context) ([]model.PlanningRules, error)
	GetActive(ctx context.Context) (*model.PlanningRules, error)
	Activate(ctx context.Context, id uuid.UUID) error
}
