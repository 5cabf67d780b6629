package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	rulesModel "replenish-backend/internal/domains/rules/model"
)

// ShipmentLine is the per-SKU outcome of one plan calculation. Reasoning
// is an append-only audit trail; an override never rewrites earlier
// entries, it replaces the line with a copy carrying one more entry.
type ShipmentLine struct {
	SKU              string          `json:"sku"`
	CurrentStock     int             `json:"current_stock"`
	AvgDailySales    float64         `json:"avg_daily_sales"`
	TargetQuantity   int             `json:"target_quantity"`
	FinalQuantity    int             `json:"final_quantity"`
	ToouQty          int             `json:"toou_qty"`
	LogiQty          int             `json:"logi_qty"`
	UnitPrice        decimal.Decimal `json:"unit_price"`
	Reasoning        []string        `json:"reasoning"`
	Warnings         []string        `json:"warnings,omitempty"`
	CanShip          bool            `json:"can_ship"`
	ManuallyAdjusted bool            `json:"manually_adjusted"`
}

// PlanSummary aggregates a plan's lines. It is always recomputed from
// scratch over the full line set, never adjusted incrementally.
type PlanSummary struct {
	TotalItems     int             `json:"total_items"`
	TotalQuantity  int             `json:"total_quantity"`
	EstimatedValue decimal.Decimal `json:"estimated_value"`
	Warnings       []string        `json:"warnings,omitempty"`
}

// ShipmentPlan is a value: any mutation produces a new plan with a fresh
// summary. Lines keep the input SKU order.
type ShipmentPlan struct {
	ID        uuid.UUID                `json:"id"`
	CreatedAt time.Time                `json:"created_at"`
	Rules     rulesModel.PlanningRules `json:"rules"`
	Lines     []ShipmentLine           `json:"lines"`
	Summary   PlanSummary              `json:"summary"`
}

// LineBySKU returns the line for sku, or false when the plan has none.
func (p ShipmentPlan) LineBySKU(sku string) (ShipmentLine, bool) {
	for _, line := range p.Lines {
		if line.SKU == sku {
			return line, true
		}
	}
	return ShipmentLine{}, false
}

// PlanInput is one SKU's raw material for the calculator. HasVelocity
// separates "no sales record for the window" from "tracked SKU that
// happened to sell zero": only the former triggers the minimum-units
// fallback. A missing availability record reads as zero stock.
type PlanInput struct {
	SKU           string
	AvgDailySales float64
	HasVelocity   bool
	Available     int
	UnitPrice     decimal.Decimal
	HasPrice      bool
}

// ExportRow is the filtered shape handed to the export writers: one row
// per non-zero bucket of each line with FinalQuantity > 0.
type ExportRow struct {
	SKU      string
	Bucket   string
	Quantity int
}
