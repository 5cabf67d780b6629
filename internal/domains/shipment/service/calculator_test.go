package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	rulesModel "replenish-backend/internal/domains/rules/model"
	"replenish-backend/internal/domains/shipment/model"
)

func testRules() rulesModel.PlanningRules {
	return rulesModel.PlanningRules{
		Name:               "default",
		LookBackDays:       30,
		TargetCoverDays:    14,
		MinUnitsPerSKU:     10,
		MaxUnitsPerSKU:     500,
		SafetyStockPercent: 20,
	}
}

func newTestCalculator() *Calculator {
	return NewCalculator(DefaultSplitPolicy())
}

func TestCalculatePlan_SteadySeller(t *testing.T) {
	// 5 units/day over 14 cover days wants 70; the 20% safety buffer on
	// 100 units allows 80, so the target ships in full, split 35/35.
	inputs := []model.PlanInput{
		{SKU: "SKU-1", AvgDailySales: 5, HasVelocity: true, Available: 100},
	}

	plan := newTestCalculator().CalculatePlan(inputs, testRules())

	require.Len(t, plan.Lines, 1)
	line := plan.Lines[0]
	assert.Equal(t, 70, line.TargetQuantity)
	assert.Equal(t, 70, line.FinalQuantity)
	assert.True(t, line.CanShip)
	assert.False(t, line.ManuallyAdjusted)
	assert.Equal(t, 35, line.ToouQty)
	assert.Equal(t, 35, line.LogiQty)
	assert.Empty(t, line.Warnings)
	assert.NotEmpty(t, line.Reasoning)

	assert.Equal(t, 1, plan.Summary.TotalItems)
	assert.Equal(t, 70, plan.Summary.TotalQuantity)
	assert.Empty(t, plan.Summary.Warnings)
}

func TestCalculatePlan_NoSalesHistoryFallsBackToMinimum(t *testing.T) {
	inputs := []model.PlanInput{
		{SKU: "SKU-1", Available: 100},
	}

	plan := newTestCalculator().CalculatePlan(inputs, testRules())

	require.Len(t, plan.Lines, 1)
	line := plan.Lines[0]
	assert.Equal(t, 10, line.TargetQuantity)
	assert.Equal(t, 10, line.FinalQuantity)
	assert.Contains(t, line.Warnings, WarnNoSalesData)
	assert.Contains(t, plan.Summary.Warnings, WarnNoSalesData)
}

func TestCalculatePlan_ZeroVelocityRecordIsNotMissingData(t *testing.T) {
	// A tracked SKU that sold nothing over the window has a velocity
	// record with a zero average. It is raised to the minimum like any
	// low target, not flagged as missing sales data.
	inputs := []model.PlanInput{
		{SKU: "SKU-1", AvgDailySales: 0, HasVelocity: true, Available: 100},
	}

	plan := newTestCalculator().CalculatePlan(inputs, testRules())

	require.Len(t, plan.Lines, 1)
	line := plan.Lines[0]
	assert.Equal(t, 10, line.TargetQuantity)
	assert.Equal(t, 10, line.FinalQuantity)
	assert.NotContains(t, line.Warnings, WarnNoSalesData)
	assert.Contains(t, line.Reasoning, "raised to minimum of 10 units")
	assert.Empty(t, plan.Summary.Warnings)
}

func TestCalculatePlan_ZeroStockShipsNothing(t *testing.T) {
	// Velocity does not matter when there is nothing on hand.
	inputs := []model.PlanInput{
		{SKU: "SKU-1", AvgDailySales: 12, HasVelocity: true},
	}

	plan := newTestCalculator().CalculatePlan(inputs, testRules())

	require.Len(t, plan.Lines, 1)
	line := plan.Lines[0]
	assert.Equal(t, 0, line.FinalQuantity)
	assert.False(t, line.CanShip)
	assert.Contains(t, line.Warnings, WarnNoStock)
	assert.Equal(t, 0, line.ToouQty)
	assert.Equal(t, 0, line.LogiQty)
	assert.Contains(t, plan.Summary.Warnings, "1 SKUs cannot be shipped")
}

func TestCalculatePlan_TargetClampedToMax(t *testing.T) {
	rules := testRules()
	rules.MaxUnitsPerSKU = 50

	inputs := []model.PlanInput{
		{SKU: "SKU-1", AvgDailySales: 10, HasVelocity: true, Available: 1000},
	}

	plan := newTestCalculator().CalculatePlan(inputs, rules)

	require.Len(t, plan.Lines, 1)
	line := plan.Lines[0]
	// ceil(10*14)=140 before the clamp
	assert.Equal(t, 50, line.TargetQuantity)
	assert.Equal(t, 50, line.FinalQuantity)
	assert.Contains(t, line.Reasoning, "capped at maximum of 50 units")
}

func TestCalculatePlan_SafetyStockCapsBelowMinimum(t *testing.T) {
	// Only 10 on hand with a 20% buffer allows 8, under the 10-unit
	// minimum: the line still ships 8 but carries the warning.
	inputs := []model.PlanInput{
		{SKU: "SKU-1", AvgDailySales: 5, HasVelocity: true, Available: 10},
	}

	plan := newTestCalculator().CalculatePlan(inputs, testRules())

	require.Len(t, plan.Lines, 1)
	line := plan.Lines[0]
	assert.Equal(t, 70, line.TargetQuantity)
	assert.Equal(t, 8, line.FinalQuantity)
	assert.True(t, line.CanShip)
	assert.Contains(t, line.Warnings, WarnInsufficientStock)
}

func TestCalculatePlan_FractionalVelocityRoundsUp(t *testing.T) {
	inputs := []model.PlanInput{
		{SKU: "SKU-1", AvgDailySales: 0.5, HasVelocity: true, Available: 100},
	}

	plan := newTestCalculator().CalculatePlan(inputs, testRules())

	require.Len(t, plan.Lines, 1)
	// ceil(0.5*14)=7, raised to the 10-unit minimum
	assert.Equal(t, 10, plan.Lines[0].TargetQuantity)
	assert.Contains(t, plan.Lines[0].Reasoning, "raised to minimum of 10 units")
}

func TestCalculatePlan_EstimatedValueFromUnitPrices(t *testing.T) {
	inputs := []model.PlanInput{
		{SKU: "PRICED", AvgDailySales: 5, HasVelocity: true, Available: 100,
			UnitPrice: decimal.NewFromFloat(2.50), HasPrice: true},
		{SKU: "UNPRICED", AvgDailySales: 5, HasVelocity: true, Available: 100},
	}

	plan := newTestCalculator().CalculatePlan(inputs, testRules())

	// 70 units at 2.50; the unpriced line contributes nothing.
	assert.True(t, plan.Summary.EstimatedValue.Equal(decimal.NewFromInt(175)),
		"estimated value = %s", plan.Summary.EstimatedValue)
}

func TestCalculatePlan_SummaryDedupesWarningsFirstAppearance(t *testing.T) {
	inputs := []model.PlanInput{
		{SKU: "A"},
		{SKU: "B"},
		{SKU: "C", AvgDailySales: 3, HasVelocity: true, Available: 50},
	}

	plan := newTestCalculator().CalculatePlan(inputs, testRules())

	// A and B emit the same three warnings (no sales, the minimum cannot
	// be met, no stock); each appears once, in first-appearance order,
	// with the shippability count last.
	assert.Equal(t, []string{
		WarnNoSalesData,
		WarnInsufficientStock,
		WarnNoStock,
		"2 SKUs cannot be shipped",
	}, plan.Summary.Warnings)
}

func TestCalculatePlan_LineInvariants(t *testing.T) {
	rules := testRules()
	inputs := []model.PlanInput{
		{SKU: "A", AvgDailySales: 5, HasVelocity: true, Available: 100},
		{SKU: "B", AvgDailySales: 0.3, HasVelocity: true, Available: 7},
		{SKU: "C", Available: 200},
		{SKU: "D", AvgDailySales: 50, HasVelocity: true},
		{SKU: "E", AvgDailySales: 1, HasVelocity: true, Available: 1},
	}

	plan := newTestCalculator().CalculatePlan(inputs, rules)

	require.Len(t, plan.Lines, len(inputs))
	for _, line := range plan.Lines {
		assert.GreaterOrEqual(t, line.FinalQuantity, 0, "sku %s", line.SKU)
		assert.Equal(t, line.FinalQuantity, line.ToouQty+line.LogiQty, "sku %s", line.SKU)
		if line.CurrentStock > 0 {
			ceiling := maxFromSafetyStock(line.CurrentStock, rules.SafetyStockPercent)
			assert.LessOrEqual(t, line.FinalQuantity, ceiling, "sku %s", line.SKU)
		} else {
			assert.Equal(t, 0, line.FinalQuantity, "sku %s", line.SKU)
			assert.False(t, line.CanShip, "sku %s", line.SKU)
		}
	}
}

func TestCalculatePlan_Deterministic(t *testing.T) {
	inputs := []model.PlanInput{
		{SKU: "A", AvgDailySales: 5, HasVelocity: true, Available: 100},
		{SKU: "B", Available: 30},
	}
	rules := testRules()

	calc := newTestCalculator()
	first := calc.CalculatePlan(inputs, rules)
	second := calc.CalculatePlan(inputs, rules)

	assert.Equal(t, first.Lines, second.Lines)
	assert.Equal(t, first.Summary, second.Summary)
}

func TestSplitPolicy_BucketsSumExactly(t *testing.T) {
	policy := DefaultSplitPolicy()
	for _, qty := range []int{0, 1, 2, 3, 7, 70, 99, 1000} {
		toou, logi := policy.Split(qty)
		assert.Equal(t, qty, toou+logi, "qty %d", qty)
		assert.GreaterOrEqual(t, toou, 0, "qty %d", qty)
		assert.GreaterOrEqual(t, logi, 0, "qty %d", qty)
	}

	// Odd quantities put the extra unit in the LOGI bucket.
	toou, logi := policy.Split(7)
	assert.Equal(t, 3, toou)
	assert.Equal(t, 4, logi)
}
