package repository

import (
	"context"

	"replenish-backend/internal/domains/inventory/model"
)

type RepositoryInterface interface {
	// GetWarehouseStocks returns the MAIN/RSL/LOGI position for every SKU.
	GetWarehouseStocks(ctx context.Context) ([]model.WarehouseStock, error)

	// GetWarehouseStock returns one SKU's position.
	GetWarehouseStock(ctx context.Context, sku string) (*model.WarehouseStock, error)

	// GetAvailability returns the consolidated stock view, optionally
	// restricted to the given SKUs (nil = all).
	GetAvailability(ctx context.Context, skus []string) ([]model.StockAvailability, error)

	// GetFBAStock returns current FBA-channel on-hand units per SKU.
	GetFBAStock(ctx context.Context) (map[string]int, error)

	// ReplaceWarehouseStocks swaps in a full stock snapshot and records
	// the import job, atomically.
	ReplaceWarehouseStocks(ctx context.Context, job *model.ImportJob, stocks []model.WarehouseStock) error
}
