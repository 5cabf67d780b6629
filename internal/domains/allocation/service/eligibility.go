package service

import (
	allocModel "replenish-backend/internal/domains/allocation/model"
	invModel "replenish-backend/internal/domains/inventory/model"
	productModel "replenish-backend/internal/domains/product/model"
)

// Mail-size limits: centimeters for the sides, grams for the weight.
const (
	mailMaxWidthCm   = 34.0
	mailMaxHeightCm  = 25.0
	mailMaxDepthCm   = 3.0
	mailMaxWeightG   = 1000.0
	size60MaxTotalCm = 60.0
)

// Classify maps product dimensions to a shipping-size category. It is
// total: every input, including all-zero dimensions, lands in exactly one
// category. A missing catalog entry defaults every dimension to 0 and so
// classifies as mail-size; callers must treat that as a degraded signal.
func Classify(dims productModel.Dimensions) allocModel.SizeCategory {
	if dims.WidthCm <= mailMaxWidthCm &&
		dims.HeightCm <= mailMaxHeightCm &&
		dims.DepthCm <= mailMaxDepthCm &&
		dims.WeightGrams <= mailMaxWeightG {
		return allocModel.SizeMail
	}

	if dims.WidthCm+dims.HeightCm+dims.DepthCm <= size60MaxTotalCm {
		return allocModel.Size60
	}

	return allocModel.SizeOther
}

// IsEligible reports whether a size category can be shipped through the
// replenishment pipeline.
func IsEligible(category allocModel.SizeCategory) bool {
	return category == allocModel.SizeMail || category == allocModel.Size60
}

// FilterShippable expands allocations into per-warehouse shipment
// candidates: one candidate per non-zero sourcing bucket, tagged with the
// product's size category. Zero-transfer allocations emit nothing.
func FilterShippable(
	allocations []allocModel.AllocationResult,
	catalog map[string]productModel.Product,
) []allocModel.ShipmentCandidate {
	var candidates []allocModel.ShipmentCandidate

	for _, alloc := range allocations {
		if alloc.FromMain == 0 && alloc.FromLogi == 0 {
			continue
		}

		product, known := catalog[alloc.SKU]
		category := Classify(product.Dimensions)
		eligible := IsEligible(category)

		if alloc.FromMain > 0 {
			candidates = append(candidates, allocModel.ShipmentCandidate{
				SKU:       alloc.SKU,
				Warehouse: invModel.WarehouseMain,
				Quantity:  alloc.FromMain,
				Category:  category,
				Eligible:  eligible,
				DimsKnown: known,
			})
		}
		if alloc.FromLogi > 0 {
			candidates = append(candidates, allocModel.ShipmentCandidate{
				SKU:       alloc.SKU,
				Warehouse: invModel.WarehouseLogi,
				Quantity:  alloc.FromLogi,
				Category:  category,
				Eligible:  eligible,
				DimsKnown: known,
			})
		}
	}

	return candidates
}
