package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// CalculatePlanRequest optionally narrows a plan run to specific SKUs.
// An empty list plans the whole active catalog.
type CalculatePlanRequest struct {
	SKUs []string `json:"skus,omitempty"`
}

func (r CalculatePlanRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.SKUs, validation.Each(validation.Required, validation.Length(1, 64))),
	)
}

// AdjustLineRequest carries a manual quantity override for one plan line.
type AdjustLineRequest struct {
	NewQuantity *int `json:"new_quantity"`
}

func (r AdjustLineRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.NewQuantity, validation.NotNil.Error("new_quantity is required")),
	)
}
