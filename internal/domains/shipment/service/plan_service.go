package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	invRepo "replenish-backend/internal/domains/inventory/repository"
	productRepo "replenish-backend/internal/domains/product/repository"
	rulesService "replenish-backend/internal/domains/rules/service"
	salesRepo "replenish-backend/internal/domains/sales/repository"
	"replenish-backend/internal/domains/shipment/model"
	"replenish-backend/internal/domains/shipment/repository"
	"replenish-backend/pkg/logger"
)

type PlanService struct {
	calculator  *Calculator
	adjuster    *Adjuster
	repo        repository.RepositoryInterface
	rules       rulesService.ServiceInterface
	salesRepo   salesRepo.RepositoryInterface
	invRepo     invRepo.RepositoryInterface
	productRepo productRepo.RepositoryInterface
}

// NewService creates a new shipment plan service
func NewService(
	calculator *Calculator,
	adjuster *Adjuster,
	repo repository.RepositoryInterface,
	rules rulesService.ServiceInterface,
	sales salesRepo.RepositoryInterface,
	inventory invRepo.RepositoryInterface,
	products productRepo.RepositoryInterface,
) ServiceInterface {
	return &PlanService{
		calculator:  calculator,
		adjuster:    adjuster,
		repo:        repo,
		rules:       rules,
		salesRepo:   sales,
		invRepo:     inventory,
		productRepo: products,
	}
}

// GeneratePlan implements ServiceInterface.GeneratePlan.
func (s *PlanService) GeneratePlan(ctx context.Context, skus []string) (*model.ShipmentPlan, error) {
	rules, err := s.rules.GetActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load active rules: %w", err)
	}

	if len(skus) == 0 {
		skus, err = s.productRepo.ListActiveSKUs(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list active SKUs: %w", err)
		}
	}

	inputs, err := s.buildInputs(ctx, skus, rules.LookBackDays)
	if err != nil {
		return nil, err
	}

	plan := s.calculator.CalculatePlan(inputs, *rules)

	if err := s.repo.SavePlan(ctx, &plan); err != nil {
		return nil, fmt.Errorf("failed to save shipment plan: %w", err)
	}

	logger.Info("shipment: plan generated", map[string]interface{}{
		"plan_id":        plan.ID.String(),
		"lines":          len(plan.Lines),
		"shippable":      plan.Summary.TotalItems,
		"total_quantity": plan.Summary.TotalQuantity,
	})

	return &plan, nil
}

// buildInputs joins velocity, availability, and catalog data into one
// calculator input per requested SKU, preserving the request order. A
// SKU missing from any source still gets an input with that part zeroed.
func (s *PlanService) buildInputs(ctx context.Context, skus []string, lookBackDays int) ([]model.PlanInput, error) {
	velocities, err := s.salesRepo.GetVelocitiesBySKUs(ctx, lookBackDays, skus)
	if err != nil {
		return nil, fmt.Errorf("failed to load sales velocities: %w", err)
	}
	velocityBySKU := make(map[string]float64, len(velocities))
	for _, v := range velocities {
		velocityBySKU[v.SKU] = v.AverageDailySales
	}

	availability, err := s.invRepo.GetAvailability(ctx, skus)
	if err != nil {
		return nil, fmt.Errorf("failed to load stock availability: %w", err)
	}
	availableBySKU := make(map[string]int, len(availability))
	for _, a := range availability {
		availableBySKU[a.SKU] = a.Available
	}

	catalog, err := s.productRepo.GetBySKUs(ctx, skus)
	if err != nil {
		return nil, fmt.Errorf("failed to load product catalog: %w", err)
	}

	inputs := make([]model.PlanInput, 0, len(skus))
	for _, sku := range skus {
		input := model.PlanInput{SKU: sku}

		if avg, ok := velocityBySKU[sku]; ok {
			input.AvgDailySales = avg
			input.HasVelocity = true
		}
		input.Available = availableBySKU[sku]
		if product, ok := catalog[sku]; ok {
			input.UnitPrice = product.UnitPrice
			input.HasPrice = true
		}

		inputs = append(inputs, input)
	}

	return inputs, nil
}

// GetPlan implements ServiceInterface.GetPlan.
func (s *PlanService) GetPlan(ctx context.Context, id uuid.UUID) (*model.ShipmentPlan, error) {
	return s.repo.GetPlan(ctx, id)
}

// AdjustLine implements ServiceInterface.AdjustLine.
func (s *PlanService) AdjustLine(ctx context.Context, planID uuid.UUID, sku string, newQuantity int) (*model.ShipmentPlan, error) {
	plan, err := s.repo.GetPlan(ctx, planID)
	if err != nil {
		return nil, err
	}

	adjusted, err := s.adjuster.Adjust(*plan, sku, newQuantity, plan.Rules)
	if err != nil {
		return nil, err
	}

	if err := s.repo.ReplaceLines(ctx, &adjusted); err != nil {
		return nil, fmt.Errorf("failed to persist adjusted plan: %w", err)
	}

	logger.Info("shipment: line adjusted", map[string]interface{}{
		"plan_id":      planID.String(),
		"sku":          sku,
		"new_quantity": newQuantity,
	})

	return &adjusted, nil
}

// ExportCSV implements ServiceInterface.ExportCSV.
func (s *PlanService) ExportCSV(ctx context.Context, planID uuid.UUID) ([]byte, string, error) {
	plan, err := s.repo.GetPlan(ctx, planID)
	if err != nil {
		return nil, "", err
	}

	data, err := WriteCSV(*plan)
	if err != nil {
		return nil, "", fmt.Errorf("failed to render csv export: %w", err)
	}

	return data, ExportFilename(*plan, "csv"), nil
}

// ExportExcel implements ServiceInterface.ExportExcel.
func (s *PlanService) ExportExcel(ctx context.Context, planID uuid.UUID) (*excelize.File, string, error) {
	plan, err := s.repo.GetPlan(ctx, planID)
	if err != nil {
		return nil, "", err
	}

	f, err := WriteExcel(*plan)
	if err != nil {
		return nil, "", fmt.Errorf("failed to render excel export: %w", err)
	}

	return f, ExportFilename(*plan, "xlsx"), nil
}

// PrunePlans implements ServiceInterface.PrunePlans.
func (s *PlanService) PrunePlans(ctx context.Context, retentionDays int) (int64, error) {
	cutoff := time.Now().UTC().AddDate(0, 0, -retentionDays)

	removed, err := s.repo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to prune shipment plans: %w", err)
	}

	if removed > 0 {
		logger.Info("shipment: plans pruned", map[string]interface{}{
			"removed": removed,
			"cutoff":  cutoff.Format(time.RFC3339),
		})
	}

	return removed, nil
}
