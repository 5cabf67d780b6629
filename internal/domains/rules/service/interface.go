package service

import (
	"context"

	"github.com/google/uuid"

	"replenish-backend/internal/domains/rules/model"
)

type ServiceInterface interface {
	CreateTemplate(ctx context.Context, req model.SaveRulesRequest) (*model.PlanningRules, []model.FieldError, error)
	UpdateTemplate(ctx context.Context, id uuid.UUID, req model.SaveRulesRequest) (*model.PlanningRules, []model.FieldError, error)
	GetTemplate(ctx context.Context, id uuid.UUID) (*model.PlanningRules, error)
	ListTemplates(ctx context.Context) ([]model.PlanningRules, error)
	GetActive(ctx context.Context) (*model.PlanningRules, error)
	Activate(ctx context.Context, id uuid.UUID) error
	EnsureDefault(ctx context.Context, defaults model.PlanningRules) error
}
