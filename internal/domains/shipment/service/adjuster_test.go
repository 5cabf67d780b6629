package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"replenish-backend/internal/domains/shipment/model"
)

func planForAdjusting(t *testing.T) model.ShipmentPlan {
	t.Helper()

	inputs := []model.PlanInput{
		{SKU: "SKU-1", AvgDailySales: 5, HasVelocity: true, Available: 100},
		{SKU: "SKU-2", AvgDailySales: 2, HasVelocity: true, Available: 40},
	}
	return newTestCalculator().CalculatePlan(inputs, testRules())
}

func TestAdjust_OverridesLine(t *testing.T) {
	adjuster := NewAdjuster(DefaultSplitPolicy())
	plan := planForAdjusting(t)

	original, ok := plan.LineBySKU("SKU-1")
	require.True(t, ok)
	require.Equal(t, 70, original.FinalQuantity)

	adjusted, err := adjuster.Adjust(plan, "SKU-1", 45, plan.Rules)
	require.NoError(t, err)

	line, ok := adjusted.LineBySKU("SKU-1")
	require.True(t, ok)
	assert.Equal(t, 45, line.FinalQuantity)
	assert.True(t, line.ManuallyAdjusted)
	assert.True(t, line.CanShip)

	// Buckets re-split so they keep summing to the new quantity.
	assert.Equal(t, 22, line.ToouQty)
	assert.Equal(t, 23, line.LogiQty)

	// The audit trail keeps every prior entry and gains exactly one.
	require.Len(t, line.Reasoning, len(original.Reasoning)+1)
	assert.Equal(t, original.Reasoning, line.Reasoning[:len(original.Reasoning)])
	assert.Equal(t, "manually adjusted to 45 units", line.Reasoning[len(line.Reasoning)-1])

	// Summary recomputed over the new line set.
	assert.Equal(t, 45+28, adjusted.Summary.TotalQuantity)
}

func TestAdjust_RejectsNegativeQuantity(t *testing.T) {
	adjuster := NewAdjuster(DefaultSplitPolicy())
	plan := planForAdjusting(t)

	_, err := adjuster.Adjust(plan, "SKU-1", -1, plan.Rules)
	assert.ErrorIs(t, err, model.ErrNegativeQuantity)
}

func TestAdjust_RejectsUnknownSKU(t *testing.T) {
	adjuster := NewAdjuster(DefaultSplitPolicy())
	plan := planForAdjusting(t)

	_, err := adjuster.Adjust(plan, "NOPE", 5, plan.Rules)
	assert.ErrorIs(t, err, model.ErrLineNotFound)
}

func TestAdjust_RejectsQuantityAboveSafetyCeiling(t *testing.T) {
	adjuster := NewAdjuster(DefaultSplitPolicy())

	// 100 on hand with a 50% buffer allows at most 50.
	rules := testRules()
	rules.SafetyStockPercent = 50

	inputs := []model.PlanInput{
		{SKU: "SKU-1", AvgDailySales: 5, HasVelocity: true, Available: 100},
	}
	plan := newTestCalculator().CalculatePlan(inputs, rules)

	_, err := adjuster.Adjust(plan, "SKU-1", 60, rules)
	require.Error(t, err)

	exceeds, ok := model.IsExceedsSafetyStock(err)
	require.True(t, ok)
	assert.Equal(t, 50, exceeds.Max)
}

func TestAdjust_LeavesOriginalPlanUntouched(t *testing.T) {
	adjuster := NewAdjuster(DefaultSplitPolicy())
	plan := planForAdjusting(t)

	before, ok := plan.LineBySKU("SKU-1")
	require.True(t, ok)

	adjusted, err := adjuster.Adjust(plan, "SKU-1", 12, plan.Rules)
	require.NoError(t, err)

	after, ok := plan.LineBySKU("SKU-1")
	require.True(t, ok)
	assert.Equal(t, before, after, "input plan must not change")

	adjustedLine, ok := adjusted.LineBySKU("SKU-1")
	require.True(t, ok)
	assert.NotEqual(t, before.FinalQuantity, adjustedLine.FinalQuantity)
}

func TestAdjust_ToZeroMakesLineNonShippable(t *testing.T) {
	adjuster := NewAdjuster(DefaultSplitPolicy())
	plan := planForAdjusting(t)

	adjusted, err := adjuster.Adjust(plan, "SKU-2", 0, plan.Rules)
	require.NoError(t, err)

	line, ok := adjusted.LineBySKU("SKU-2")
	require.True(t, ok)
	assert.Equal(t, 0, line.FinalQuantity)
	assert.False(t, line.CanShip)
	assert.Equal(t, 0, line.ToouQty)
	assert.Equal(t, 0, line.LogiQty)

	assert.Equal(t, 1, adjusted.Summary.TotalItems)
	assert.Contains(t, adjusted.Summary.Warnings, "1 SKUs cannot be shipped")
}
