package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"replenish-backend/internal/domains/sales/model"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL repository
func NewRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

// GetChannelSales aggregates the sales_records table into per-SKU channel
// totals. The FBA channel is identified by channel = 'fba'; everything
// else counts as "other".
func (r *postgresRepository) GetChannelSales(ctx context.Context, lookBackDays int) ([]model.ChannelSales, error) {
	query := `
		SELECT
			sku,
			COALESCE(SUM(quantity) FILTER (WHERE channel = 'fba'), 0)  AS fba_units,
			COALESCE(SUM(quantity) FILTER (WHERE channel <> 'fba'), 0) AS other_units,
			COALESCE(SUM(quantity), 0)                                 AS total_units
		FROM sales_records
		WHERE sold_at >= $1
		GROUP BY sku
		ORDER BY sku
	`

	since := time.Now().AddDate(0, 0, -lookBackDays)

	rows, err := r.pool.Query(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("failed to query channel sales: %w", err)
	}
	defer rows.Close()

	var out []model.ChannelSales
	for rows.Next() {
		var cs model.ChannelSales
		if err := rows.Scan(&cs.SKU, &cs.FBAUnits, &cs.OtherUnits, &cs.TotalUnits); err != nil {
			return nil, fmt.Errorf("failed to scan channel sales row: %w", err)
		}
		out = append(out, cs)
	}

	return out, rows.Err()
}

// GetVelocitiesBySKUs computes average daily sales as total units over
// the full window length, not over the days that happened to have orders;
// a SKU that sold 30 units on one day of a 30-day window averages 1/day.
func (r *postgresRepository) GetVelocitiesBySKUs(ctx context.Context, lookBackDays int, skus []string) ([]model.VelocityRecord, error) {
	if lookBackDays <= 0 {
		return nil, fmt.Errorf("look back days must be positive, got %d", lookBackDays)
	}
	if len(skus) == 0 {
		return nil, nil
	}

	query := `
		SELECT sku, sold_at::date AS sale_date, SUM(quantity) AS quantity
		FROM sales_records
		WHERE sold_at >= $1
		  AND sku = ANY($2)
		GROUP BY sku, sold_at::date
		ORDER BY sku, sale_date
	`

	since := time.Now().AddDate(0, 0, -lookBackDays)

	rows, err := r.pool.Query(ctx, query, since, skus)
	if err != nil {
		return nil, fmt.Errorf("failed to query sales velocities: %w", err)
	}
	defer rows.Close()

	var out []model.VelocityRecord
	var current *model.VelocityRecord
	totals := map[string]int{}

	for rows.Next() {
		var (
			sku  string
			date time.Time
			qty  int
		)
		if err := rows.Scan(&sku, &date, &qty); err != nil {
			return nil, fmt.Errorf("failed to scan velocity row: %w", err)
		}

		if current == nil || current.SKU != sku {
			out = append(out, model.VelocityRecord{SKU: sku})
			current = &out[len(out)-1]
		}
		current.History = append(current.History, model.DailySale{Date: date, Quantity: qty})
		totals[sku] += qty
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		out[i].AverageDailySales = float64(totals[out[i].SKU]) / float64(lookBackDays)
	}

	return out, nil
}
