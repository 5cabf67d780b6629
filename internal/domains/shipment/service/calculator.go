package service

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	rulesModel "replenish-backend/internal/domains/rules/model"
	"replenish-backend/internal/domains/shipment/model"
)

// Line warnings. The summary deduplicates on first appearance, so the
// exact strings matter: two SKUs emitting the same warning collapse to
// one summary entry.
const (
	WarnNoSalesData       = "no sales data available"
	WarnInsufficientStock = "insufficient stock to meet minimum"
	WarnNoStock           = "no stock available"
)

// Calculator turns sales velocity, available stock, and planning rules
// into a shipment plan. It is stateless and safe for concurrent use;
// lines are computed independently with no cross-SKU competition for
// stock.
type Calculator struct {
	split SplitPolicy
}

// NewCalculator creates a calculator with the given bucket-split policy.
func NewCalculator(split SplitPolicy) *Calculator {
	return &Calculator{split: split}
}

// maxFromSafetyStock is the shippable ceiling after reserving the
// safety-stock percentage of on-hand stock.
func maxFromSafetyStock(currentStock int, safetyStockPercent float64) int {
	return int(math.Floor(float64(currentStock) * (1 - safetyStockPercent/100)))
}

// CalculatePlan produces one line per input, in input order. Missing
// velocity or availability reads as zero; the line is still emitted so
// the plan covers every requested SKU.
func (c *Calculator) CalculatePlan(inputs []model.PlanInput, rules rulesModel.PlanningRules) model.ShipmentPlan {
	lines := make([]model.ShipmentLine, 0, len(inputs))
	for _, input := range inputs {
		lines = append(lines, c.calculateLine(input, rules))
	}

	plan := model.ShipmentPlan{
		ID:        uuid.New(),
		CreatedAt: time.Now().UTC(),
		Rules:     rules,
		Lines:     lines,
	}
	plan.Summary = Summarize(plan.Lines)

	return plan
}

func (c *Calculator) calculateLine(input model.PlanInput, rules rulesModel.PlanningRules) model.ShipmentLine {
	line := model.ShipmentLine{
		SKU:           input.SKU,
		CurrentStock:  input.Available,
		AvgDailySales: input.AvgDailySales,
	}
	if input.HasPrice {
		line.UnitPrice = input.UnitPrice
	}

	// Step 1: target from velocity, or the per-SKU minimum when the SKU
	// has no sales history. A velocity record with a zero average is
	// still a record: the SKU is tracked, it just did not sell, so the
	// minimum clamp below handles it without a missing-data warning.
	if input.HasVelocity {
		line.TargetQuantity = int(math.Ceil(input.AvgDailySales * float64(rules.TargetCoverDays)))
		line.Reasoning = append(line.Reasoning, fmt.Sprintf(
			"target %d units covers %d days at %.2f units/day",
			line.TargetQuantity, rules.TargetCoverDays, input.AvgDailySales))
	} else {
		line.TargetQuantity = rules.MinUnitsPerSKU
		line.Reasoning = append(line.Reasoning, fmt.Sprintf(
			"no sales history, fell back to minimum of %d units", rules.MinUnitsPerSKU))
		line.Warnings = append(line.Warnings, WarnNoSalesData)
	}

	// Step 2: clamp the target into the per-SKU unit bounds.
	if line.TargetQuantity < rules.MinUnitsPerSKU {
		line.TargetQuantity = rules.MinUnitsPerSKU
		line.Reasoning = append(line.Reasoning, fmt.Sprintf(
			"raised to minimum of %d units", rules.MinUnitsPerSKU))
	} else if line.TargetQuantity > rules.MaxUnitsPerSKU {
		line.TargetQuantity = rules.MaxUnitsPerSKU
		line.Reasoning = append(line.Reasoning, fmt.Sprintf(
			"capped at maximum of %d units", rules.MaxUnitsPerSKU))
	}

	// Step 3: the safety-stock buffer holds back a percentage of on-hand
	// stock from shipping.
	maxShippable := maxFromSafetyStock(line.CurrentStock, rules.SafetyStockPercent)
	recommended := line.TargetQuantity
	if maxShippable < recommended {
		recommended = maxShippable
		line.Reasoning = append(line.Reasoning, fmt.Sprintf(
			"reduced to %d units by %.0f%% safety stock buffer", recommended, rules.SafetyStockPercent))
		if recommended < rules.MinUnitsPerSKU {
			line.Warnings = append(line.Warnings, WarnInsufficientStock)
		}
	}

	// Step 4: a SKU with no stock at all ships nothing, whatever its
	// velocity says.
	if line.CurrentStock == 0 {
		recommended = 0
		line.Warnings = append(line.Warnings, WarnNoStock)
	}
	if recommended < 0 {
		recommended = 0
	}

	line.FinalQuantity = recommended
	line.CanShip = recommended > 0 && line.CurrentStock > 0
	line.ToouQty, line.LogiQty = c.split.Split(recommended)

	return line
}

// Summarize recomputes a plan summary over the full line set. Warnings
// are deduplicated keeping first-appearance order; the non-shippable
// count is appended last. A line without a catalog price contributes
// zero to the estimated value.
func Summarize(lines []model.ShipmentLine) model.PlanSummary {
	summary := model.PlanSummary{EstimatedValue: decimal.Zero}

	seen := make(map[string]bool)
	notShippable := 0

	for _, line := range lines {
		if line.CanShip {
			summary.TotalItems++
		} else {
			notShippable++
		}
		summary.TotalQuantity += line.FinalQuantity

		summary.EstimatedValue = summary.EstimatedValue.Add(
			line.UnitPrice.Mul(decimal.NewFromInt(int64(line.FinalQuantity))))

		for _, w := range line.Warnings {
			if !seen[w] {
				seen[w] = true
				summary.Warnings = append(summary.Warnings, w)
			}
		}
	}

	if notShippable > 0 {
		summary.Warnings = append(summary.Warnings, fmt.Sprintf(
			"%d SKUs cannot be shipped", notShippable))
	}

	return summary
}
