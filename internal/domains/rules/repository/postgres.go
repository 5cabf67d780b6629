package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"replenish-backend/internal/domains/rules/model"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL repository
func NewRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) Create(ctx context.Context, rules *model.PlanningRules) error {
	query := `
		INSERT INTO planning_rules (
			id, name, look_back_days, target_cover_days,
			min_units_per_sku, max_units_per_sku, safety_stock_percent,
			is_active, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.pool.Exec(ctx, query,
		rules.ID,
		rules.Name,
		rules.LookBackDays,
		rules.TargetCoverDays,
		rules.MinUnitsPerSKU,
		rules.MaxUnitsPerSKU,
		rules.SafetyStockPercent,
		rules.IsActive,
		rules.CreatedAt,
		rules.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert planning rules: %w", err)
	}

	return nil
}

func (r *postgresRepository) Update(ctx context.Context, rules *model.PlanningRules) error {
	query := `
		UPDATE planning_rules SET
			name = $2,
			look_back_days = $3,
			target_cover_days = $4,
			min_units_per_sku = $5,
			max_units_per_sku = $6,
			safety_stock_percent = $7,
			updated_at = $8
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		rules.ID,
		rules.Name,
		rules.LookBackDays,
		rules.TargetCoverDays,
		rules.MinUnitsPerSKU,
		rules.MaxUnitsPerSKU,
		rules.SafetyStockPercent,
		rules.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update planning rules: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrRulesNotFound
	}

	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.PlanningRules, error) {
	query := `
		SELECT id, name, look_back_days, target_cover_days,
		       min_units_per_sku, max_units_per_sku, safety_stock_percent,
		       is_active, created_at, updated_at
		FROM planning_rules
		WHERE id = $1
	`

	rules, err := r.scanRow(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrRulesNotFound
		}
		return nil, fmt.Errorf("failed to get planning rules: %w", err)
	}

	return rules, nil
}

func (r *postgresRepository) List(ctx context.Context) ([]model.PlanningRules, error) {
	query := `
		SELECT id, name, look_back_days, target_cover_days,
		       min_units_per_sku, max_units_per_sku, safety_stock_percent,
		       is_active, created_at, updated_at
		FROM planning_rules
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list planning rules: %w", err)
	}
	defer rows.Close()

	var out []model.PlanningRules
	for rows.Next() {
		rules, err := r.scanRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan planning rules row: %w", err)
		}
		out = append(out, *rules)
	}

	return out, rows.Err()
}

func (r *postgresRepository) GetActive(ctx context.Context) (*model.PlanningRules, error) {
	query := `
		SELECT id, name, look_back_days, target_cover_days,
		       min_units_per_sku, max_units_per_sku, safety_stock_percent,
		       is_active, created_at, updated_at
		FROM planning_rules
		WHERE is_active = true
		LIMIT 1
	`

	rules, err := r.scanRow(r.pool.QueryRow(ctx, query))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrNoActiveRules
		}
		return nil, fmt.Errorf("failed to get active planning rules: %w", err)
	}

	return rules, nil
}

// Activate marks one template active and deactivates the rest in a single
// transaction so there is never more than one active template.
func (r *postgresRepository) Activate(ctx context.Context, id uuid.UUID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `UPDATE planning_rules SET is_active = false WHERE is_active = true`); err != nil {
		return fmt.Errorf("failed to deactivate planning rules: %w", err)
	}

	tag, err := tx.Exec(ctx, `UPDATE planning_rules SET is_active = true, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to activate planning rules: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrRulesNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit activation: %w", err)
	}

	return nil
}

func (r *postgresRepository) scanRow(row pgx.Row) (*model.PlanningRules, error) {
	var rules model.PlanningRules
	err := row.Scan(
		&rules.ID,
		&rules.Name,
		&rules.LookBackDays,
		&rules.TargetCoverDays,
		&rules.MinUnitsPerSKU,
		&rules.MaxUnitsPerSKU,
		&rules.SafetyStockPercent,
		&rules.IsActive,
		&rules.CreatedAt,
		&rules.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rules, nil
}
