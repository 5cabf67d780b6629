package repository

import (
	"context"

	"replenish-backend/internal/domains/product/model"
)

type RepositoryInterface interface {
	// GetBySKUs returns catalog entries keyed by SKU. SKUs without a
	// catalog entry are simply absent; callers treat that as missing
	// metadata, not an error.
	GetBySKUs(ctx context.Context, skus []string) (map[string]model.Product, error)

	// ListActiveSKUs returns every active catalog SKU.
	ListActiveSKUs(ctx context.Context) ([]string, error)
}
