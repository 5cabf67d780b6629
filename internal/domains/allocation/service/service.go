package service

import (
	"context"
	"fmt"

	"replenish-backend/internal/domains/allocation/model"
	invRepo "replenish-backend/internal/domains/inventory/repository"
	productRepo "replenish-backend/internal/domains/product/repository"
	salesRepo "replenish-backend/internal/domains/sales/repository"
	"replenish-backend/pkg/logger"
)

type AllocationService struct {
	engine      *Engine
	salesRepo   salesRepo.RepositoryInterface
	invRepo     invRepo.RepositoryInterface
	productRepo productRepo.RepositoryInterface
}

// NewService creates a new allocation service
func NewService(
	engine *Engine,
	sales salesRepo.RepositoryInterface,
	inventory invRepo.RepositoryInterface,
	products productRepo.RepositoryInterface,
) ServiceInterface {
	return &AllocationService{
		engine:      engine,
		salesRepo:   sales,
		invRepo:     inventory,
		productRepo: products,
	}
}

// RunAllocation implements Service.RunAllocation.
func (s *AllocationService) RunAllocation(ctx context.Context, lookBackDays int) (*model.RunAllocationResponse, error) {
	sales, err := s.salesRepo.GetChannelSales(ctx, lookBackDays)
	if err != nil {
		return nil, fmt.Errorf("failed to load channel sales: %w", err)
	}

	stocks, err := s.invRepo.GetWarehouseStocks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load warehouse stocks: %w", err)
	}

	fbaStock, err := s.invRepo.GetFBAStock(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load FBA stock: %w", err)
	}

	results := s.engine.Allocate(sales, stocks, fbaStock)

	// SKUs the engine skipped: present in sales, absent from results.
	resultSKUs := make(map[string]struct{}, len(results))
	for _, res := range results {
		resultSKUs[res.SKU] = struct{}{}
	}
	var skipped []string
	for _, sale := range sales {
		if _, ok := resultSKUs[sale.SKU]; !ok {
			skipped = append(skipped, sale.SKU)
		}
	}

	skus := make([]string, 0, len(results))
	for _, res := range results {
		skus = append(skus, res.SKU)
	}
	catalog, err := s.productRepo.GetBySKUs(ctx, skus)
	if err != nil {
		return nil, fmt.Errorf("failed to load product catalog: %w", err)
	}

	candidates := FilterShippable(results, catalog)

	logger.Info("allocation: run complete", map[string]interface{}{
		"skus_in":    len(sales),
		"results":    len(results),
		"skipped":    len(skipped),
		"candidates": len(candidates),
	})

	return &model.RunAllocationResponse{
		Results:     results,
		Candidates:  candidates,
		SkippedSKUs: skipped,
	}, nil
}
