package service

import "math"

// SplitPolicy divides a final quantity across the two outbound transfer
// buckets (TOOU and LOGI). The remainder always lands in the LOGI bucket
// so the two halves sum exactly to the input regardless of rounding.
type SplitPolicy struct {
	ToouRatio float64
}

// DefaultSplitPolicy returns the even 50/50 split.
func DefaultSplitPolicy() SplitPolicy {
	return SplitPolicy{ToouRatio: 0.5}
}

// Split returns (toouQty, logiQty) with toouQty+logiQty == quantity.
func (p SplitPolicy) Split(quantity int) (toouQty, logiQty int) {
	if quantity <= 0 {
		return 0, 0
	}
	toouQty = int(math.Floor(float64(quantity) * p.ToouRatio))
	return toouQty, quantity - toouQty
}
