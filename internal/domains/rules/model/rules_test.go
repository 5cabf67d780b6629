package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRules() PlanningRules {
	return PlanningRules{
		Name:               "default",
		LookBackDays:       30,
		TargetCoverDays:    14,
		MinUnitsPerSKU:     0,
		MaxUnitsPerSKU:     1000,
		SafetyStockPercent: 20,
	}
}

func TestPlanningRules_Validate_Valid(t *testing.T) {
	assert.Empty(t, validRules().Validate())

	// Boundary values are all inside the allowed ranges.
	boundary := PlanningRules{
		LookBackDays:       365,
		TargetCoverDays:    90,
		MinUnitsPerSKU:     1000,
		MaxUnitsPerSKU:     10000,
		SafetyStockPercent: 100,
	}
	assert.Empty(t, boundary.Validate())
}

func TestPlanningRules_Validate_OneErrorPerField(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*PlanningRules)
		field  string
	}{
		{"look back too low", func(r *PlanningRules) { r.LookBackDays = 0 }, "look_back_days"},
		{"look back too high", func(r *PlanningRules) { r.LookBackDays = 366 }, "look_back_days"},
		{"cover days too low", func(r *PlanningRules) { r.TargetCoverDays = 0 }, "target_cover_days"},
		{"cover days too high", func(r *PlanningRules) { r.TargetCoverDays = 91 }, "target_cover_days"},
		{"min units negative", func(r *PlanningRules) { r.MinUnitsPerSKU = -1 }, "min_units_per_sku"},
		{"min units too high", func(r *PlanningRules) { r.MinUnitsPerSKU = 1001; r.MaxUnitsPerSKU = 2000 }, "min_units_per_sku"},
		{"max units too high", func(r *PlanningRules) { r.MaxUnitsPerSKU = 10001 }, "max_units_per_sku"},
		{"safety stock negative", func(r *PlanningRules) { r.SafetyStockPercent = -0.5 }, "safety_stock_percent"},
		{"safety stock above 100", func(r *PlanningRules) { r.SafetyStockPercent = 100.5 }, "safety_stock_percent"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rules := validRules()
			tt.mutate(&rules)

			errs := rules.Validate()
			require.Len(t, errs, 1)
			assert.Equal(t, tt.field, errs[0].Field)
			assert.NotEmpty(t, errs[0].Message)
		})
	}
}

func TestPlanningRules_Validate_MaxBelowMin(t *testing.T) {
	rules := validRules()
	rules.MinUnitsPerSKU = 100
	rules.MaxUnitsPerSKU = 50

	errs := rules.Validate()
	require.Len(t, errs, 1)
	assert.Equal(t, "max_units_per_sku", errs[0].Field)
}

func TestPlanningRules_Validate_MultipleFields(t *testing.T) {
	rules := PlanningRules{
		LookBackDays:       0,
		TargetCoverDays:    0,
		MinUnitsPerSKU:     -5,
		MaxUnitsPerSKU:     20000,
		SafetyStockPercent: 150,
	}

	errs := rules.Validate()
	require.Len(t, errs, 5)

	// Flattened output is sorted by field name so API responses are stable.
	for i := 1; i < len(errs); i++ {
		assert.Less(t, errs[i-1].Field, errs[i].Field)
	}
}

func TestPlanningRules_IsValid(t *testing.T) {
	assert.True(t, validRules().IsValid())

	broken := validRules()
	broken.TargetCoverDays = 0
	assert.False(t, broken.IsValid())
}
