package estimate

import (
	"github.com/google/uuid"
)

// Priority is the urgency tier assigned to a service line item.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// ValidPriorities maps every accepted priority tier.
var ValidPriorities = map[Priority]bool{
	PriorityHigh:   true,
	PriorityMedium: true,
	PriorityLow:    true,
}

// ServiceItem is one priced, quantified unit of work on an estimate.
// Items are produced by parsing inspection report text or added manually
// during estimate review.
type ServiceItem struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Quantity    int       `json:"quantity"`
	UnitPrice   float64   `json:"unit_price"`
	Priority    Priority  `json:"priority"`
}

// Subtotal returns quantity times unit price. Subtotals are never stored;
// they are always recomputed from the line so stored and derived totals
// cannot drift.
func (it ServiceItem) Subtotal() float64 {
	return float64(it.Quantity) * it.UnitPrice
}

// Total returns the grand total across items.
func Total(items []ServiceItem) float64 {
	var sum float64
	for _, it := range items {
		sum += it.Subtotal()
	}
	return sum
}

// ItemPatch holds optional field overrides for a ServiceItem. Nil fields
// are left unchanged.
type ItemPatch struct {
	Name        *string
	Description *string
	Quantity    *int
	UnitPrice   *float64
	Priority    *Priority
}

// Apply returns a copy of the item with the patch's non-nil fields applied.
// The item's ID is never changed; IDs stay stable across an editing session.
func (it ServiceItem) Apply(p ItemPatch) ServiceItem {
	out := it
	if p.Name != nil {
		out.Name = *p.Name
	}
	if p.Description != nil {
		out.Description = *p.Description
	}
	if p.Quantity != nil {
		out.Quantity = *p.Quantity
	}
	if p.UnitPrice != nil {
		out.UnitPrice = *p.UnitPrice
	}
	if p.Priority != nil {
		out.Priority = *p.Priority
	}
	return out
}
