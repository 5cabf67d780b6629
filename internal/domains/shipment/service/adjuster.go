package service

import (
	"fmt"

	rulesModel "replenish-backend/internal/domains/rules/model"
	"replenish-backend/internal/domains/shipment/model"
)

// Adjuster applies manual quantity overrides to plan lines. Plans are
// treated as values: a successful override returns a new plan with the
// line replaced and the summary recomputed, and the input plan is never
// touched, so a validation failure leaves the caller holding the
// original plan unchanged.
type Adjuster struct {
	split SplitPolicy
}

// NewAdjuster creates an adjuster that re-splits the overridden quantity
// with the given policy, keeping the bucket-sum invariant intact.
func NewAdjuster(split SplitPolicy) *Adjuster {
	return &Adjuster{split: split}
}

// Adjust overrides the final quantity of the sku line. Validation runs
// in order: negative quantity, then line existence, then the
// safety-stock ceiling of the matched line.
func (a *Adjuster) Adjust(plan model.ShipmentPlan, sku string, newQuantity int, rules rulesModel.PlanningRules) (model.ShipmentPlan, error) {
	if newQuantity < 0 {
		return plan, model.ErrNegativeQuantity
	}

	idx := -1
	for i := range plan.Lines {
		if plan.Lines[i].SKU == sku {
			idx = i
			break
		}
	}
	if idx == -1 {
		return plan, model.ErrLineNotFound
	}

	line := plan.Lines[idx]
	maxAllowed := maxFromSafetyStock(line.CurrentStock, rules.SafetyStockPercent)
	if newQuantity > maxAllowed {
		return plan, &model.ExceedsSafetyStockError{Max: maxAllowed}
	}

	adjusted := line
	adjusted.FinalQuantity = newQuantity
	adjusted.ManuallyAdjusted = true
	adjusted.CanShip = newQuantity > 0 && line.CurrentStock > 0
	adjusted.ToouQty, adjusted.LogiQty = a.split.Split(newQuantity)

	// Copy the audit trail before appending so the old plan's slice is
	// never shared with the new line.
	adjusted.Reasoning = make([]string, len(line.Reasoning), len(line.Reasoning)+1)
	copy(adjusted.Reasoning, line.Reasoning)
	adjusted.Reasoning = append(adjusted.Reasoning, fmt.Sprintf("manually adjusted to %d units", newQuantity))

	next := plan
	next.Lines = make([]model.ShipmentLine, len(plan.Lines))
	copy(next.Lines, plan.Lines)
	next.Lines[idx] = adjusted
	next.Summary = Summarize(next.Lines)

	return next, nil
}
