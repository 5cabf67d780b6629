package model

import (
	"time"

	"github.com/google/uuid"
)

// Warehouse codes used by the sourcing rule. RSL holds reference stock
// that is never shipped from; it only sets the MAIN shipping threshold.
const (
	WarehouseMain = "MAIN"
	WarehouseRSL  = "RSL"
	WarehouseLogi = "LOGI"
	WarehouseToou = "TOOU"
)

// WarehouseStock is the per-SKU stock position across the three
// allocation warehouses.
type WarehouseStock struct {
	SKU       string    `json:"sku"`
	MainQty   int       `json:"main_qty"`
	RslQty    int       `json:"rsl_qty"`
	LogiQty   int       `json:"logi_qty"`
	TotalQty  int       `json:"total_qty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StockAvailability is the consolidated single-warehouse view the
// shipment calculator consumes. Available is on-hand minus reserved.
type StockAvailability struct {
	SKU       string `json:"sku"`
	OnHand    int    `json:"on_hand"`
	Reserved  int    `json:"reserved"`
	Available int    `json:"available"`
}

// ImportJob records one spreadsheet upload.
type ImportJob struct {
	ID          uuid.UUID `json:"id"`
	Filename    string    `json:"filename"`
	RowsTotal   int       `json:"rows_total"`
	RowsApplied int       `json:"rows_applied"`
	CreatedAt   time.Time `json:"created_at"`
}
