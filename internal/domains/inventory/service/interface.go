package service

import (
	"context"
	"io"

	"replenish-backend/internal/domains/inventory/model"
)

type ServiceInterface interface {
	// ImportStocks parses an xlsx stock snapshot and replaces the
	// warehouse_stocks table with it.
	ImportStocks(ctx context.Context, filename string, file io.Reader) (*model.ImportResult, error)

	// GetWarehouseStock returns one SKU's MAIN/RSL/LOGI position.
	GetWarehouseStock(ctx context.Context, sku string) (*model.WarehouseStock, error)

	// RefreshAvailabilityCache rewrites the cached consolidated stock
	// snapshot used by dashboards and the worker.
	RefreshAvailabilityCache(ctx context.Context) (int, error)
}
