package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"replenish-backend/internal/domains/product/model"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL repository
func NewRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) GetBySKUs(ctx context.Context, skus []string) (map[string]model.Product, error) {
	if len(skus) == 0 {
		return map[string]model.Product{}, nil
	}

	query := `
		SELECT sku, title, width_cm, height_cm, depth_cm, weight_grams,
		       unit_price, is_active, updated_at
		FROM products
		WHERE sku = ANY($1)
	`

	rows, err := r.pool.Query(ctx, query, skus)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	out := make(map[string]model.Product, len(skus))
	for rows.Next() {
		var p model.Product
		err := rows.Scan(
			&p.SKU,
			&p.Title,
			&p.Dimensions.WidthCm,
			&p.Dimensions.HeightCm,
			&p.Dimensions.DepthCm,
			&p.Dimensions.WeightGrams,
			&p.UnitPrice,
			&p.IsActive,
			&p.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product row: %w", err)
		}
		out[p.SKU] = p
	}

	return out, rows.Err()
}

func (r *postgresRepository) ListActiveSKUs(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT sku FROM products WHERE is_active = true ORDER BY sku`)
	if err != nil {
		return nil, fmt.Errorf("failed to list active SKUs: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var sku string
		if err := rows.Scan(&sku); err != nil {
			return nil, fmt.Errorf("failed to scan SKU row: %w", err)
		}
		out = append(out, sku)
	}

	return out, rows.Err()
}
