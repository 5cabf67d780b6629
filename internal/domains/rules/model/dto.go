package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// SaveRulesRequest creates or updates a planning rules template.
type SaveRulesRequest struct {
	Name               string  `json:"name"`
	LookBackDays       int     `json:"look_back_days"`
	TargetCoverDays    int     `json:"target_cover_days"`
	MinUnitsPerSKU     int     `json:"min_units_per_sku"`
	MaxUnitsPerSKU     int     `json:"max_units_per_sku"`
	SafetyStockPercent float64 `json:"safety_stock_percent"`
}

// Validate checks the request shape. Range checks on the planning fields
// belong to PlanningRules.Validate so the two surfaces cannot drift.
func (r SaveRulesRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			validation.Length(1, 100).Error("name must be 1-100 characters"),
		),
	)
}

// ToRules maps the request onto a rules value for range validation and
// persistence.
func (r SaveRulesRequest) ToRules() PlanningRules {
	return PlanningRules{
		Name:               r.Name,
		LookBackDays:       r.LookBackDays,
		TargetCoverDays:    r.TargetCoverDays,
		MinUnitsPerSKU:     r.MinUnitsPerSKU,
		MaxUnitsPerSKU:     r.MaxUnitsPerSKU,
		SafetyStockPercent: r.SafetyStockPercent,
	}
}
