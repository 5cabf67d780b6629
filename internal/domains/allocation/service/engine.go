package service

import (
	"fmt"
	"math"

	allocModel "replenish-backend/internal/domains/allocation/model"
	invModel "replenish-backend/internal/domains/inventory/model"
	salesModel "replenish-backend/internal/domains/sales/model"
)

// SourcingPolicy is the warehouse-sourcing rule: transfers come from MAIN
// down to the RSL reference level, then from LOGI. RSL stock itself is
// never shipped; it only sets the MAIN threshold.
type SourcingPolicy struct{}

// DefaultSourcingPolicy returns the MAIN-to-RSL-threshold rule.
func DefaultSourcingPolicy() SourcingPolicy {
	return SourcingPolicy{}
}

// Source splits transferQty across MAIN and LOGI. The LOGI bucket is
// capped at actual LOGI stock, so fromMain+fromLogi can fall short of
// transferQty; callers read the difference as a shortfall.
func (SourcingPolicy) Source(transferQty int, stock invModel.WarehouseStock) (fromMain, fromLogi int) {
	if transferQty <= 0 {
		return 0, 0
	}

	shippable := stock.MainQty - stock.RslQty
	if transferQty <= shippable {
		return transferQty, 0
	}

	fromMain = shippable
	if fromMain < 0 {
		fromMain = 0
	}

	fromLogi = transferQty - fromMain
	if fromLogi > stock.LogiQty {
		fromLogi = stock.LogiQty
	}

	return fromMain, fromLogi
}

// Engine converts channel sales history and multi-warehouse stock into
// per-SKU FBA transfer quantities. It is stateless and safe for
// concurrent use.
type Engine struct {
	sourcing SourcingPolicy
}

// NewEngine creates an allocation engine with the given sourcing policy.
func NewEngine(sourcing SourcingPolicy) *Engine {
	return &Engine{sourcing: sourcing}
}

// Allocate processes every SKU in sales, in input order.
//
// A SKU is skipped entirely (no result emitted) when it has no warehouse
// stock, zero total stock, or zero total sales: there is either nothing
// to ship or no channel ratio to derive. Callers treat an absent SKU as
// "no transfer needed or possible".
func (e *Engine) Allocate(
	sales []salesModel.ChannelSales,
	stocks []invModel.WarehouseStock,
	currentFBAStock map[string]int,
) []allocModel.AllocationResult {
	stockBySKU := make(map[string]invModel.WarehouseStock, len(stocks))
	for _, s := range stocks {
		stockBySKU[s.SKU] = s
	}

	results := make([]allocModel.AllocationResult, 0, len(sales))

	for _, sale := range sales {
		stock, ok := stockBySKU[sale.SKU]
		if !ok || stock.TotalQty == 0 {
			continue
		}
		if sale.TotalUnits == 0 {
			continue
		}

		fbaRatio := float64(sale.FBAUnits) / float64(sale.TotalUnits)
		otherRatio := float64(sale.OtherUnits) / float64(sale.TotalUnits)

		// The ratio alone would over-allocate idle stock when the FBA
		// share is small in percentage but smaller still in counted
		// units, so the allocation is capped at what FBA actually sold.
		theoretical := int(math.Floor(float64(stock.TotalQty) * fbaRatio))
		requiredQty := theoretical
		if sale.FBAUnits < requiredQty {
			requiredQty = sale.FBAUnits
		}

		currentQty := currentFBAStock[sale.SKU]

		transferQty := requiredQty - currentQty
		if transferQty < 0 {
			transferQty = 0
		}

		fromMain, fromLogi := e.sourcing.Source(transferQty, stock)

		result := allocModel.AllocationResult{
			SKU:          sale.SKU,
			FBARatio:     fbaRatio,
			OtherRatio:   otherRatio,
			RequiredQty:  requiredQty,
			CurrentQty:   currentQty,
			TransferQty:  transferQty,
			FromMain:     fromMain,
			FromLogi:     fromLogi,
			ShortfallQty: transferQty - fromMain - fromLogi,
		}

		if result.ShortfallQty > 0 {
			result.TransferQty = fromMain + fromLogi
			result.Warnings = append(result.Warnings, fmt.Sprintf(
				"short %d units: LOGI stock cannot cover the remaining transfer", result.ShortfallQty))
		}

		results = append(results, result)
	}

	return results
}
