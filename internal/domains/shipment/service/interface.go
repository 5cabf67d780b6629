package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"replenish-backend/internal/domains/shipment/model"
)

type ServiceInterface interface {
	// GeneratePlan calculates and persists a plan over the given SKUs
	// (empty = whole active catalog) using the active planning rules.
	GeneratePlan(ctx context.Context, skus []string) (*model.ShipmentPlan, error)

	// GetPlan loads a stored plan with its full line detail.
	GetPlan(ctx context.Context, id uuid.UUID) (*model.ShipmentPlan, error)

	// AdjustLine applies a manual quantity override to one line and
	// persists the replaced line set.
	AdjustLine(ctx context.Context, planID uuid.UUID, sku string, newQuantity int) (*model.ShipmentPlan, error)

	// ExportCSV renders a stored plan's shippable rows as CSV and
	// returns the bytes plus the dated filename.
	ExportCSV(ctx context.Context, planID uuid.UUID) ([]byte, string, error)

	// ExportExcel renders a stored plan's shippable rows as a workbook.
	ExportExcel(ctx context.Context, planID uuid.UUID) (*excelize.File, string, error)

	// PrunePlans deletes plans older than retentionDays and returns the
	// number removed.
	PrunePlans(ctx context.Context, retentionDays int) (int64, error)
}
