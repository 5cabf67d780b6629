package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	invModel "replenish-backend/internal/domains/inventory/model"
	salesModel "replenish-backend/internal/domains/sales/model"
)

func newTestEngine() *Engine {
	return NewEngine(DefaultSourcingPolicy())
}

func TestEngine_Allocate_ChannelRatioAndSourcing(t *testing.T) {
	// FBA sold 40 of 100 units; 100 units of stock give a theoretical
	// allocation of 40, capped at the 40 FBA units actually sold. With 10
	// already at FBA, 30 transfer, fully covered by MAIN above the RSL
	// threshold (50-20=30).
	sales := []salesModel.ChannelSales{
		{SKU: "SKU-1", FBAUnits: 40, OtherUnits: 60, TotalUnits: 100},
	}
	stocks := []invModel.WarehouseStock{
		{SKU: "SKU-1", MainQty: 50, RslQty: 20, LogiQty: 30, TotalQty: 100},
	}

	results := newTestEngine().Allocate(sales, stocks, map[string]int{"SKU-1": 10})

	require.Len(t, results, 1)
	res := results[0]
	assert.InDelta(t, 0.4, res.FBARatio, 1e-9)
	assert.InDelta(t, 0.6, res.OtherRatio, 1e-9)
	assert.Equal(t, 40, res.RequiredQty)
	assert.Equal(t, 10, res.CurrentQty)
	assert.Equal(t, 30, res.TransferQty)
	assert.Equal(t, 30, res.FromMain)
	assert.Equal(t, 0, res.FromLogi)
	assert.Equal(t, 0, res.ShortfallQty)
}

func TestEngine_Allocate_SkipsUnfulfillableSKUs(t *testing.T) {
	sales := []salesModel.ChannelSales{
		{SKU: "NO-STOCK", FBAUnits: 5, OtherUnits: 5, TotalUnits: 10},
		{SKU: "ZERO-STOCK", FBAUnits: 5, OtherUnits: 5, TotalUnits: 10},
		{SKU: "NO-SALES", FBAUnits: 0, OtherUnits: 0, TotalUnits: 0},
		{SKU: "OK", FBAUnits: 10, OtherUnits: 0, TotalUnits: 10},
	}
	stocks := []invModel.WarehouseStock{
		{SKU: "ZERO-STOCK", TotalQty: 0},
		{SKU: "NO-SALES", MainQty: 10, TotalQty: 10},
		{SKU: "OK", MainQty: 10, TotalQty: 10},
	}

	results := newTestEngine().Allocate(sales, stocks, nil)

	require.Len(t, results, 1)
	assert.Equal(t, "OK", results[0].SKU)
}

func TestEngine_Allocate_CappedAtChannelUnits(t *testing.T) {
	// High stock with a small FBA share: floor(1000*0.1)=100 would
	// over-allocate; the cap holds it at the 10 units FBA actually sold.
	sales := []salesModel.ChannelSales{
		{SKU: "SKU-1", FBAUnits: 10, OtherUnits: 90, TotalUnits: 100},
	}
	stocks := []invModel.WarehouseStock{
		{SKU: "SKU-1", MainQty: 1000, RslQty: 0, LogiQty: 0, TotalQty: 1000},
	}

	results := newTestEngine().Allocate(sales, stocks, nil)

	require.Len(t, results, 1)
	assert.Equal(t, 10, results[0].RequiredQty)
	assert.Equal(t, 10, results[0].TransferQty)
}

func TestEngine_Allocate_NoTransferWhenFBACovered(t *testing.T) {
	sales := []salesModel.ChannelSales{
		{SKU: "SKU-1", FBAUnits: 20, OtherUnits: 20, TotalUnits: 40},
	}
	stocks := []invModel.WarehouseStock{
		{SKU: "SKU-1", MainQty: 40, TotalQty: 40},
	}

	// FBA already holds more than required: transfer clamps to 0 and the
	// sourcing split stays (0,0).
	results := newTestEngine().Allocate(sales, stocks, map[string]int{"SKU-1": 50})

	require.Len(t, results, 1)
	assert.Equal(t, 0, results[0].TransferQty)
	assert.Equal(t, 0, results[0].FromMain)
	assert.Equal(t, 0, results[0].FromLogi)
}

func TestEngine_Allocate_SpillsToLogi(t *testing.T) {
	// MAIN above the RSL threshold covers only 5; the rest comes from LOGI.
	sales := []salesModel.ChannelSales{
		{SKU: "SKU-1", FBAUnits: 30, OtherUnits: 0, TotalUnits: 30},
	}
	stocks := []invModel.WarehouseStock{
		{SKU: "SKU-1", MainQty: 25, RslQty: 20, LogiQty: 40, TotalQty: 85},
	}

	results := newTestEngine().Allocate(sales, stocks, nil)

	require.Len(t, results, 1)
	res := results[0]
	assert.Equal(t, 30, res.TransferQty)
	assert.Equal(t, 5, res.FromMain)
	assert.Equal(t, 25, res.FromLogi)
	assert.Equal(t, 0, res.ShortfallQty)
}

func TestEngine_Allocate_MainBelowThreshold(t *testing.T) {
	// MAIN is already below the RSL reference level: nothing ships from
	// MAIN and LOGI carries the whole transfer.
	sales := []salesModel.ChannelSales{
		{SKU: "SKU-1", FBAUnits: 10, OtherUnits: 0, TotalUnits: 10},
	}
	stocks := []invModel.WarehouseStock{
		{SKU: "SKU-1", MainQty: 5, RslQty: 20, LogiQty: 50, TotalQty: 75},
	}

	results := newTestEngine().Allocate(sales, stocks, nil)

	require.Len(t, results, 1)
	assert.Equal(t, 0, results[0].FromMain)
	assert.Equal(t, 10, results[0].FromLogi)
}

func TestEngine_Allocate_LogiShortfallSurfaced(t *testing.T) {
	sales := []salesModel.ChannelSales{
		{SKU: "SKU-1", FBAUnits: 50, OtherUnits: 0, TotalUnits: 50},
	}
	stocks := []invModel.WarehouseStock{
		{SKU: "SKU-1", MainQty: 10, RslQty: 0, LogiQty: 15, TotalQty: 25},
	}

	results := newTestEngine().Allocate(sales, stocks, nil)

	require.Len(t, results, 1)
	res := results[0]
	// Demand was 25 (total stock cap): floor(25*1.0)=25, min(25,50)=25.
	// MAIN gives 10, LOGI caps at 15, so the transfer is fully covered.
	assert.Equal(t, 25, res.TransferQty)
	assert.Equal(t, 10, res.FromMain)
	assert.Equal(t, 15, res.FromLogi)
	assert.Equal(t, 0, res.ShortfallQty)
}

func TestEngine_Allocate_ShortfallWarning(t *testing.T) {
	// RSL pins most of MAIN and LOGI is thin: the warehouses cannot cover
	// the transfer. The transfer shrinks to the sourced amount and the
	// gap is surfaced instead of silently dropped.
	sales := []salesModel.ChannelSales{
		{SKU: "SKU-1", FBAUnits: 40, OtherUnits: 10, TotalUnits: 50},
	}
	stocks := []invModel.WarehouseStock{
		{SKU: "SKU-1", MainQty: 30, RslQty: 25, LogiQty: 5, TotalQty: 60},
	}

	results := newTestEngine().Allocate(sales, stocks, nil)

	require.Len(t, results, 1)
	res := results[0]
	// floor(60*0.8)=48, capped at 40 FBA units; MAIN gives 5, LOGI 5.
	assert.Equal(t, 40, res.RequiredQty)
	assert.Equal(t, 5, res.FromMain)
	assert.Equal(t, 5, res.FromLogi)
	assert.Equal(t, 10, res.TransferQty)
	assert.Equal(t, 30, res.ShortfallQty)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "short 30 units")
}

func TestEngine_Allocate_BucketInvariants(t *testing.T) {
	sales := []salesModel.ChannelSales{
		{SKU: "A", FBAUnits: 7, OtherUnits: 13, TotalUnits: 20},
		{SKU: "B", FBAUnits: 100, OtherUnits: 1, TotalUnits: 101},
		{SKU: "C", FBAUnits: 3, OtherUnits: 0, TotalUnits: 3},
	}
	stocks := []invModel.WarehouseStock{
		{SKU: "A", MainQty: 11, RslQty: 4, LogiQty: 2, TotalQty: 17},
		{SKU: "B", MainQty: 9, RslQty: 30, LogiQty: 14, TotalQty: 53},
		{SKU: "C", MainQty: 1, RslQty: 0, LogiQty: 0, TotalQty: 1},
	}

	results := newTestEngine().Allocate(sales, stocks, map[string]int{"A": 1})

	require.NotEmpty(t, results)
	for _, res := range results {
		assert.Equal(t, res.TransferQty, res.FromMain+res.FromLogi, "sku %s", res.SKU)
		assert.GreaterOrEqual(t, res.FromMain, 0, "sku %s", res.SKU)
		assert.GreaterOrEqual(t, res.FromLogi, 0, "sku %s", res.SKU)
	}
}

func TestEngine_Allocate_PreservesInputOrder(t *testing.T) {
	sales := []salesModel.ChannelSales{
		{SKU: "Z", FBAUnits: 1, OtherUnits: 0, TotalUnits: 1},
		{SKU: "A", FBAUnits: 1, OtherUnits: 0, TotalUnits: 1},
		{SKU: "M", FBAUnits: 1, OtherUnits: 0, TotalUnits: 1},
	}
	stocks := []invModel.WarehouseStock{
		{SKU: "A", MainQty: 5, TotalQty: 5},
		{SKU: "M", MainQty: 5, TotalQty: 5},
		{SKU: "Z", MainQty: 5, TotalQty: 5},
	}

	results := newTestEngine().Allocate(sales, stocks, nil)

	require.Len(t, results, 3)
	assert.Equal(t, "Z", results[0].SKU)
	assert.Equal(t, "A", results[1].SKU)
	assert.Equal(t, "M", results[2].SKU)
}
