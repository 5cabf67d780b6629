package service

import (
	"context"

	"replenish-backend/internal/domains/allocation/model"
)

type ServiceInterface interface {
	// RunAllocation pulls the current sales, stock, and FBA on-hand data
	// and runs the allocation engine over it.
	RunAllocation(ctx context.Context, lookBackDays int) (*model.RunAllocationResponse, error)
}
