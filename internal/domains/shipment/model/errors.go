package model

import (
	"errors"
	"fmt"
)

var (
	ErrPlanNotFound     = errors.New("shipment plan not found")
	ErrLineNotFound     = errors.New("shipment plan has no line for this SKU")
	ErrNegativeQuantity = errors.New("quantity cannot be negative")
)

// ExceedsSafetyStockError rejects a manual override above the
// safety-stock-adjusted maximum; Max carries the allowed ceiling so the
// caller can surface it.
type ExceedsSafetyStockError struct {
	Max int
}

func (e *ExceedsSafetyStockError) Error() string {
	return fmt.Sprintf("exceeds available stock after safety buffer (max %d)", e.Max)
}

// IsExceedsSafetyStock extracts the typed error when err wraps one.
func IsExceedsSafetyStock(err error) (*ExceedsSafetyStockError, bool) {
	var target *ExceedsSafetyStockError
	if errors.As(err, &target) {
		return target, true
	}
	return nil, false
}
