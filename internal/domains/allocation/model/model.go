package model

// AllocationResult is the per-SKU outcome of one allocation run. Results
// are created fresh each run and never mutated afterwards.
type AllocationResult struct {
	SKU          string   `json:"sku"`
	FBARatio     float64  `json:"fba_ratio"`
	OtherRatio   float64  `json:"other_ratio"`
	RequiredQty  int      `json:"required_qty"`
	CurrentQty   int      `json:"current_qty"`
	TransferQty  int      `json:"transfer_qty"`
	FromMain     int      `json:"from_main"`
	FromLogi     int      `json:"from_logi"`
	ShortfallQty int      `json:"shortfall_qty"`
	Warnings     []string `json:"warnings,omitempty"`
}

// SizeCategory is the shipping-size class a product falls into.
type SizeCategory string

const (
	SizeMail  SizeCategory = "mail-size"
	Size60    SizeCategory = "60-size"
	SizeOther SizeCategory = "other"
)

// ShipmentCandidate is one warehouse bucket of an allocation, tagged with
// the product's shipping-size classification.
type ShipmentCandidate struct {
	SKU       string       `json:"sku"`
	Warehouse string       `json:"warehouse"`
	Quantity  int          `json:"quantity"`
	Category  SizeCategory `json:"category"`
	Eligible  bool         `json:"eligible"`
	// DimsKnown is false when the catalog had no dimensions and the
	// classification fell back to zero measurements. Treat Eligible as a
	// degraded signal in that case.
	DimsKnown bool `json:"dims_known"`
}
