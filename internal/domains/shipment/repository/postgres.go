package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"replenish-backend/internal/domains/shipment/model"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL repository
func NewRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

var lineColumns = []string{
	"plan_id", "position", "sku", "current_stock", "avg_daily_sales",
	"target_quantity", "final_quantity", "toou_qty", "logi_qty",
	"unit_price", "reasoning", "warnings", "can_ship", "manually_adjusted",
}

func lineCopyRows(plan *model.ShipmentPlan) [][]interface{} {
	rows := make([][]interface{}, len(plan.Lines))
	for i, line := range plan.Lines {
		rows[i] = []interface{}{
			plan.ID, i, line.SKU, line.CurrentStock, line.AvgDailySales,
			line.TargetQuantity, line.FinalQuantity, line.ToouQty, line.LogiQty,
			line.UnitPrice, line.Reasoning, line.Warnings, line.CanShip, line.ManuallyAdjusted,
		}
	}
	return rows
}

// SavePlan stores the plan header (rules snapshot + summary) and bulk
// inserts its lines via the COPY protocol, all in one transaction.
func (r *postgresRepository) SavePlan(ctx context.Context, plan *model.ShipmentPlan) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO shipment_plans (
			id, created_at,
			rules_id, rules_name, look_back_days, target_cover_days,
			min_units_per_sku, max_units_per_sku, safety_stock_percent,
			total_items, total_quantity, estimated_value, summary_warnings
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	_, err = tx.Exec(ctx, query,
		plan.ID, plan.CreatedAt,
		plan.Rules.ID, plan.Rules.Name, plan.Rules.LookBackDays, plan.Rules.TargetCoverDays,
		plan.Rules.MinUnitsPerSKU, plan.Rules.MaxUnitsPerSKU, plan.Rules.SafetyStockPercent,
		plan.Summary.TotalItems, plan.Summary.TotalQuantity, plan.Summary.EstimatedValue, plan.Summary.Warnings,
	)
	if err != nil {
		return fmt.Errorf("failed to insert shipment plan: %w", err)
	}

	copyCount, err := tx.CopyFrom(
		ctx,
		pgx.Identifier{"shipment_plan_lines"},
		lineColumns,
		pgx.CopyFromRows(lineCopyRows(plan)),
	)
	if err != nil {
		return fmt.Errorf("failed to batch insert plan lines: %w", err)
	}
	if copyCount != int64(len(plan.Lines)) {
		return fmt.Errorf("expected to insert %d lines, but inserted %d", len(plan.Lines), copyCount)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit shipment plan: %w", err)
	}

	return nil
}

func (r *postgresRepository) GetPlan(ctx context.Context, id uuid.UUID) (*model.ShipmentPlan, error) {
	query := `
		SELECT id, created_at,
		       rules_id, rules_name, look_back_days, target_cover_days,
		       min_units_per_sku, max_units_per_sku, safety_stock_percent,
		       total_items, total_quantity, estimated_value, summary_warnings
		FROM shipment_plans
		WHERE id = $1
	`

	var plan model.ShipmentPlan
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&plan.ID, &plan.CreatedAt,
		&plan.Rules.ID, &plan.Rules.Name, &plan.Rules.LookBackDays, &plan.Rules.TargetCoverDays,
		&plan.Rules.MinUnitsPerSKU, &plan.Rules.MaxUnitsPerSKU, &plan.Rules.SafetyStockPercent,
		&plan.Summary.TotalItems, &plan.Summary.TotalQuantity, &plan.Summary.EstimatedValue, &plan.Summary.Warnings,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrPlanNotFound
		}
		return nil, fmt.Errorf("failed to get shipment plan: %w", err)
	}

	lines, err := r.getLines(ctx, id)
	if err != nil {
		return nil, err
	}
	plan.Lines = lines

	return &plan, nil
}

func (r *postgresRepository) getLines(ctx context.Context, planID uuid.UUID) ([]model.ShipmentLine, error) {
	query := `
		SELECT sku, current_stock, avg_daily_sales,
		       target_quantity, final_quantity, toou_qty, logi_qty,
		       unit_price, reasoning, warnings, can_ship, manually_adjusted
		FROM shipment_plan_lines
		WHERE plan_id = $1
		ORDER BY position
	`

	rows, err := r.pool.Query(ctx, query, planID)
	if err != nil {
		return nil, fmt.Errorf("failed to query plan lines: %w", err)
	}
	defer rows.Close()

	var out []model.ShipmentLine
	for rows.Next() {
		var line model.ShipmentLine
		if err := rows.Scan(
			&line.SKU, &line.CurrentStock, &line.AvgDailySales,
			&line.TargetQuantity, &line.FinalQuantity, &line.ToouQty, &line.LogiQty,
			&line.UnitPrice, &line.Reasoning, &line.Warnings, &line.CanShip, &line.ManuallyAdjusted,
		); err != nil {
			return nil, fmt.Errorf("failed to scan plan line: %w", err)
		}
		out = append(out, line)
	}

	return out, rows.Err()
}

// ReplaceLines swaps the stored line set and summary after a manual
// adjustment. The whole line set is rewritten so storage always mirrors
// the in-memory plan value.
func (r *postgresRepository) ReplaceLines(ctx context.Context, plan *model.ShipmentPlan) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
		UPDATE shipment_plans
		SET total_items = $2, total_quantity = $3, estimated_value = $4, summary_warnings = $5
		WHERE id = $1
	`, plan.ID, plan.Summary.TotalItems, plan.Summary.TotalQuantity, plan.Summary.EstimatedValue, plan.Summary.Warnings)
	if err != nil {
		return fmt.Errorf("failed to update plan summary: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrPlanNotFound
	}

	if _, err := tx.Exec(ctx, `DELETE FROM shipment_plan_lines WHERE plan_id = $1`, plan.ID); err != nil {
		return fmt.Errorf("failed to clear plan lines: %w", err)
	}

	copyCount, err := tx.CopyFrom(
		ctx,
		pgx.Identifier{"shipment_plan_lines"},
		lineColumns,
		pgx.CopyFromRows(lineCopyRows(plan)),
	)
	if err != nil {
		return fmt.Errorf("failed to batch insert plan lines: %w", err)
	}
	if copyCount != int64(len(plan.Lines)) {
		return fmt.Errorf("expected to insert %d lines, but inserted %d", len(plan.Lines), copyCount)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit plan update: %w", err)
	}

	return nil
}

func (r *postgresRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `
		DELETE FROM shipment_plan_lines
		WHERE plan_id IN (SELECT id FROM shipment_plans WHERE created_at < $1)
	`, cutoff); err != nil {
		return 0, fmt.Errorf("failed to delete expired plan lines: %w", err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM shipment_plans WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired plans: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit plan prune: %w", err)
	}

	return tag.RowsAffected(), nil
}
