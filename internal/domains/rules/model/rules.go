package model

import (
	"errors"
	"sort"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// PlanningRules is the set of bounds-checked parameters one planning run
// is executed with. A run receives its rules as an explicit value; there
// is no process-wide default.
type PlanningRules struct {
	ID                 uuid.UUID `json:"id"`
	Name               string    `json:"name"`
	LookBackDays       int       `json:"look_back_days"`
	TargetCoverDays    int       `json:"target_cover_days"`
	MinUnitsPerSKU     int       `json:"min_units_per_sku"`
	MaxUnitsPerSKU     int       `json:"max_units_per_sku"`
	SafetyStockPercent float64   `json:"safety_stock_percent"`
	IsActive           bool      `json:"is_active"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// FieldError is one field-level validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Validate checks every field independently against its allowed range and
// returns one error per violated field, sorted by field name. An empty
// slice means the rules are usable. It never panics.
func (r PlanningRules) Validate() []FieldError {
	// Threshold rules in ozzo skip zero values, so the two fields whose
	// lower bound is 1 carry Required as well, and the cross-field max
	// check runs as a By rule which is never skipped.
	err := validation.ValidateStruct(&r,
		validation.Field(&r.LookBackDays,
			validation.Required.Error("must be at least 1 day"),
			validation.Min(1).Error("must be at least 1 day"),
			validation.Max(365).Error("must be at most 365 days"),
		),
		validation.Field(&r.TargetCoverDays,
			validation.Required.Error("must be at least 1 day"),
			validation.Min(1).Error("must be at least 1 day"),
			validation.Max(90).Error("must be at most 90 days"),
		),
		validation.Field(&r.MinUnitsPerSKU,
			validation.Min(0).Error("must not be negative"),
			validation.Max(1000).Error("must be at most 1000 units"),
		),
		validation.Field(&r.MaxUnitsPerSKU,
			validation.By(r.validateMaxUnits),
		),
		validation.Field(&r.SafetyStockPercent,
			validation.Min(0.0).Error("must not be negative"),
			validation.Max(100.0).Error("must be at most 100 percent"),
		),
	)

	if err == nil {
		return nil
	}

	// ozzo returns a field->error map; flatten it into a deterministic slice.
	fieldErrs, ok := err.(validation.Errors)
	if !ok {
		return []FieldError{{Field: "rules", Message: err.Error()}}
	}

	fields := make([]string, 0, len(fieldErrs))
	for field := range fieldErrs {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	out := make([]FieldError, 0, len(fields))
	for _, field := range fields {
		out = append(out, FieldError{Field: field, Message: fieldErrs[field].Error()})
	}
	return out
}

func (r PlanningRules) validateMaxUnits(value interface{}) error {
	max, _ := value.(int)
	if max < r.MinUnitsPerSKU {
		return errors.New("must not be below min_units_per_sku")
	}
	if max > 10000 {
		return errors.New("must be at most 10000 units")
	}
	return nil
}

// IsValid reports whether the rules pass every range check.
func (r PlanningRules) IsValid() bool {
	return len(r.Validate()) == 0
}
