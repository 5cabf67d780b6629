package repository

import (
	"context"

	"replenish-backend/internal/domains/sales/model"
)

// RepositoryInterface reads the order history the planning engines consume.
// Both methods aggregate over a look-back window of whole days ending now.
type RepositoryInterface interface {
	// GetChannelSales returns per-SKU unit totals split by channel.
	GetChannelSales(ctx context.Context, lookBackDays int) ([]model.ChannelSales, error)

	// GetVelocitiesBySKUs returns per-SKU average daily sales plus the
	// dated history behind the average, restricted to the given SKUs.
	// SKUs with no orders in the window are absent from the result.
	GetVelocitiesBySKUs(ctx context.Context, lookBackDays int, skus []string) ([]model.VelocityRecord, error)
}
