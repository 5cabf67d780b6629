package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Dimensions are the physical measurements used for shipping-size
// classification: centimeters for the sides, grams for the weight.
type Dimensions struct {
	WidthCm     float64 `json:"width_cm"`
	HeightCm    float64 `json:"height_cm"`
	DepthCm     float64 `json:"depth_cm"`
	WeightGrams float64 `json:"weight_grams"`
}

// Product is one catalog entry.
type Product struct {
	SKU        string          `json:"sku"`
	Title      string          `json:"title"`
	Dimensions Dimensions      `json:"dimensions"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	IsActive   bool            `json:"is_active"`
	UpdatedAt  time.Time       `json:"updated_at"`
}
