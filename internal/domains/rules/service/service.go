package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"replenish-backend/internal/domains/rules/model"
	"replenish-backend/internal/domains/rules/repository"
	"replenish-backend/pkg/cache"
	"replenish-backend/pkg/logger"
)

const (
	activeRulesCacheKey = "rules:active"
	activeRulesCacheTTL = 10 * time.Minute
)

type RulesService struct {
	repo  repository.RepositoryInterface
	cache cache.Cache
}

// NewService creates a new planning rules service
func NewService(repo repository.RepositoryInterface, cache cache.Cache) ServiceInterface {
	return &RulesService{
		repo:  repo,
		cache: cache,
	}
}

// CreateTemplate validates and persists a new rules template. Field-level
// range violations are returned to the caller, not treated as a failure.
func (s *RulesService) CreateTemplate(ctx context.Context, req model.SaveRulesRequest) (*model.PlanningRules, []model.FieldError, error) {
	rules := req.ToRules()
	if fieldErrs := rules.Validate(); len(fieldErrs) > 0 {
		return nil, fieldErrs, nil
	}

	now := time.Now()
	rules.ID = uuid.New()
	rules.CreatedAt = now
	rules.UpdatedAt = now

	if err := s.repo.Create(ctx, &rules); err != nil {
		return nil, nil, fmt.Errorf("failed to create rules template: %w", err)
	}

	return &rules, nil, nil
}

// UpdateTemplate validates and saves changes to an existing template.
func (s *RulesService) UpdateTemplate(ctx context.Context, id uuid.UUID, req model.SaveRulesRequest) (*model.PlanningRules, []model.FieldError, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	rules := req.ToRules()
	if fieldErrs := rules.Validate(); len(fieldErrs) > 0 {
		return nil, fieldErrs, nil
	}

	rules.ID = current.ID
	rules.IsActive = current.IsActive
	rules.CreatedAt = current.CreatedAt
	rules.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, &rules); err != nil {
		return nil, nil, fmt.Errorf("failed to update rules template: %w", err)
	}

	if rules.IsActive {
		s.invalidateActiveCache(ctx)
	}

	return &rules, nil, nil
}

func (s *RulesService) GetTemplate(ctx context.Context, id uuid.UUID) (*model.PlanningRules, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *RulesService) ListTemplates(ctx context.Context) ([]model.PlanningRules, error) {
	return s.repo.List(ctx)
}

// GetActive returns the active template, serving from cache when possible.
// Cache failures are non-fatal; the repository is the source of truth.
func (s *RulesService) GetActive(ctx context.Context) (*model.PlanningRules, error) {
	var cached model.PlanningRules
	found, err := s.cache.Get(ctx, activeRulesCacheKey, &cached)
	if err != nil {
		logger.Error("rules: cache read failed", err)
	}
	if found {
		return &cached, nil
	}

	rules, err := s.repo.GetActive(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, activeRulesCacheKey, rules, activeRulesCacheTTL); err != nil {
		logger.Error("rules: cache write failed", err)
	}

	return rules, nil
}

// EnsureDefault seeds a first template when the table is empty, so a
// fresh deployment can plan immediately without a manual setup step.
// Existing templates are never touched.
func (s *RulesService) EnsureDefault(ctx context.Context, defaults model.PlanningRules) error {
	existing, err := s.repo.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to check for existing templates: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	if fieldErrs := defaults.Validate(); len(fieldErrs) > 0 {
		return fmt.Errorf("%w: default template out of range: %v", model.ErrInvalidRules, fieldErrs)
	}

	now := time.Now()
	defaults.ID = uuid.New()
	defaults.CreatedAt = now
	defaults.UpdatedAt = now

	if err := s.repo.Create(ctx, &defaults); err != nil {
		return fmt.Errorf("failed to seed default template: %w", err)
	}
	if err := s.repo.Activate(ctx, defaults.ID); err != nil {
		return fmt.Errorf("failed to activate default template: %w", err)
	}

	logger.Info("rules: seeded default template", map[string]interface{}{
		"id":   defaults.ID.String(),
		"name": defaults.Name,
	})

	return nil
}

func (s *RulesService) Activate(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Activate(ctx, id); err != nil {
		return err
	}

	s.invalidateActiveCache(ctx)
	return nil
}

func (s *RulesService) invalidateActiveCache(ctx context.Context) {
	if err := s.cache.Delete(ctx, activeRulesCacheKey); err != nil {
		logger.Error("rules: cache invalidation failed", err)
	}
}
