package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"replenish-backend/internal/domains/inventory/model"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL repository
func NewRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) GetWarehouseStocks(ctx context.Context) ([]model.WarehouseStock, error) {
	query := `
		SELECT sku, main_qty, rsl_qty, logi_qty, total_qty, updated_at
		FROM warehouse_stocks
		ORDER BY sku
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query warehouse stocks: %w", err)
	}
	defer rows.Close()

	var out []model.WarehouseStock
	for rows.Next() {
		var ws model.WarehouseStock
		if err := rows.Scan(&ws.SKU, &ws.MainQty, &ws.RslQty, &ws.LogiQty, &ws.TotalQty, &ws.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan warehouse stock row: %w", err)
		}
		out = append(out, ws)
	}

	return out, rows.Err()
}

func (r *postgresRepository) GetWarehouseStock(ctx context.Context, sku string) (*model.WarehouseStock, error) {
	query := `
		SELECT sku, main_qty, rsl_qty, logi_qty, total_qty, updated_at
		FROM warehouse_stocks
		WHERE sku = $1
	`

	var ws model.WarehouseStock
	err := r.pool.QueryRow(ctx, query, sku).Scan(
		&ws.SKU, &ws.MainQty, &ws.RslQty, &ws.LogiQty, &ws.TotalQty, &ws.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrStockNotFound
		}
		return nil, fmt.Errorf("failed to get warehouse stock: %w", err)
	}

	return &ws, nil
}

func (r *postgresRepository) GetAvailability(ctx context.Context, skus []string) ([]model.StockAvailability, error) {
	// available_qty is a generated column (on_hand - reserved).
	query := `
		SELECT sku, on_hand_qty, reserved_qty, available_qty
		FROM stock_availability
		WHERE ($1::text[] IS NULL OR sku = ANY($1))
		ORDER BY sku
	`

	rows, err := r.pool.Query(ctx, query, skus)
	if err != nil {
		return nil, fmt.Errorf("failed to query stock availability: %w", err)
	}
	defer rows.Close()

	var out []model.StockAvailability
	for rows.Next() {
		var sa model.StockAvailability
		if err := rows.Scan(&sa.SKU, &sa.OnHand, &sa.Reserved, &sa.Available); err != nil {
			return nil, fmt.Errorf("failed to scan availability row: %w", err)
		}
		out = append(out, sa)
	}

	return out, rows.Err()
}

func (r *postgresRepository) GetFBAStock(ctx context.Context) (map[string]int, error) {
	rows, err := r.pool.Query(ctx, `SELECT sku, on_hand_qty FROM fba_stock`)
	if err != nil {
		return nil, fmt.Errorf("failed to query fba stock: %w", err)
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var (
			sku string
			qty int
		)
		if err := rows.Scan(&sku, &qty); err != nil {
			return nil, fmt.Errorf("failed to scan fba stock row: %w", err)
		}
		out[sku] = qty
	}

	return out, rows.Err()
}

// ReplaceWarehouseStocks swaps the snapshot inside one transaction: the
// old rows are removed, the new ones bulk-inserted via the COPY protocol,
// and the import job recorded. Readers never observe a half-applied
// snapshot.
func (r *postgresRepository) ReplaceWarehouseStocks(ctx context.Context, job *model.ImportJob, stocks []model.WarehouseStock) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM warehouse_stocks`); err != nil {
		return fmt.Errorf("failed to clear warehouse stocks: %w", err)
	}

	columns := []string{"sku", "main_qty", "rsl_qty", "logi_qty", "total_qty", "updated_at"}
	copyRows := make([][]interface{}, len(stocks))
	for i, ws := range stocks {
		copyRows[i] = []interface{}{ws.SKU, ws.MainQty, ws.RslQty, ws.LogiQty, ws.TotalQty, ws.UpdatedAt}
	}

	copyCount, err := tx.CopyFrom(
		ctx,
		pgx.Identifier{"warehouse_stocks"},
		columns,
		pgx.CopyFromRows(copyRows),
	)
	if err != nil {
		return fmt.Errorf("failed to batch insert warehouse stocks: %w", err)
	}
	if copyCount != int64(len(stocks)) {
		return fmt.Errorf("expected to insert %d rows, but inserted %d", len(stocks), copyCount)
	}

	if _, err := tx.Exec(ctx,
		`INSERT INTO import_jobs (id, filename, rows_total, rows_applied, created_at) VALUES ($1, $2, $3, $4, $5)`,
		job.ID, job.Filename, job.RowsTotal, job.RowsApplied, job.CreatedAt,
	); err != nil {
		return fmt.Errorf("failed to record import job: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit stock import: %w", err)
	}

	return nil
}
