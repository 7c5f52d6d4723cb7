// Package ledger keeps the ordered list of deductible line items that reduce the
// commission base.
package ledger

import (
	"fjacquet/commission-calc/internal/calcerror"
	"fjacquet/commission-calc/internal/models"

	"github.com/shopspring/decimal"
)

// Ledger is an ordered list of deductibles. The zero value is an empty ledger.
// Item validation (required title, percentage range) belongs to the form layer.
type Ledger struct {
	items []models.DeductibleItem
}

// New creates a ledger from existing items, applying split defaults.
func New(items ...models.DeductibleItem) *Ledger {
	l := &Ledger{items: make([]models.DeductibleItem, 0, len(items))}
	for _, item := range items {
		l.Add(item)
	}
	return l
}

// Add appends an item; blank advisor/company percentages default to 50.
func (l *Ledger) Add(item models.DeductibleItem) {
	l.items = append(l.items, item.WithDefaults())
}

// Remove deletes the item at index, keeping the order of the rest.
func (l *Ledger) Remove(index int) error {
	if index < 0 || index >= len(l.items) {
		return &calcerror.IndexError{Index: index, Len: len(l.items)}
	}
	l.items = append(l.items[:index], l.items[index+1:]...)
	return nil
}

// Total sums the parsed amount of every item.
func (l *Ledger) Total() decimal.Decimal {
	return Sum(l.items)
}

// Len returns the number of items.
func (l *Ledger) Len() int {
	return len(l.items)
}

// Items returns a copy of the items in order.
func (l *Ledger) Items() []models.DeductibleItem {
	out := make([]models.DeductibleItem, len(l.items))
	copy(out, l.items)
	return out
}

// Sum totals the amounts of items without building a ledger.
func Sum(items []models.DeductibleItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Amount.Decimal())
	}
	return total
}
