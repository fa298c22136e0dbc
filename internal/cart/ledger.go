// Package cart implements the cart ledger: an ordered collection of line
// items keyed by (product id, color, size). Line items with the same key are
// merged, never duplicated.
package cart

import (
	"github.com/shopspring/decimal"

	"github.com/younglord3302/Lumina/internal/catalog"
)

// Key identifies a line item: one product in one specific variant.
type Key struct {
	ProductID int
	Color     string
	Size      string
}

// LineItem is a product snapshot plus quantity and the selected variant.
type LineItem struct {
	Product       catalog.Product
	Quantity      int
	SelectedColor string
	SelectedSize  string
}

// Key returns the identity key of the line item.
func (li LineItem) Key() Key {
	return Key{ProductID: li.Product.ID, Color: li.SelectedColor, Size: li.SelectedSize}
}

// Subtotal is price × quantity for this line.
func (li LineItem) Subtotal() decimal.Decimal {
	return li.Product.Price.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// Ledger holds the cart state. Insertion order is preserved for display;
// key lookups are backed by an index so merges are O(1). Not safe for
// concurrent use; all mutation happens on the UI event loop.
type Ledger struct {
	items []LineItem
	index map[Key]int
}

// NewLedger returns an empty cart.
func NewLedger() *Ledger {
	return &Ledger{index: make(map[Key]int)}
}

// Add resolves the variant and merges into an existing line item when the key
// matches, otherwise appends a new line with quantity 1. It returns the
// resulting line item.
func (l *Ledger) Add(p catalog.Product, explicitColor, explicitSize string) LineItem {
	color, size := ResolveVariant(p, explicitColor, explicitSize)
	key := Key{ProductID: p.ID, Color: color, Size: size}

	if i, ok := l.index[key]; ok {
		l.items[i].Quantity++
		return l.items[i]
	}

	li := LineItem{Product: p, Quantity: 1, SelectedColor: color, SelectedSize: size}
	l.index[key] = len(l.items)
	l.items = append(l.items, li)
	return li
}

// Remove deletes the line item exactly matching the key. Removing an absent
// key is a no-op.
func (l *Ledger) Remove(productID int, color, size string) {
	key := Key{ProductID: productID, Color: color, Size: size}
	i, ok := l.index[key]
	if !ok {
		return
	}
	l.items = append(l.items[:i], l.items[i+1:]...)
	delete(l.index, key)
	for j := i; j < len(l.items); j++ {
		l.index[l.items[j].Key()] = j
	}
}

// UpdateQuantity applies a quantity delta to the matching line item. A delta
// that would take the quantity to zero or below leaves the item unchanged;
// deletion is only ever explicit via Remove.
func (l *Ledger) UpdateQuantity(productID int, delta int, color, size string) {
	key := Key{ProductID: productID, Color: color, Size: size}
	i, ok := l.index[key]
	if !ok {
		return
	}
	if q := l.items[i].Quantity + delta; q > 0 {
		l.items[i].Quantity = q
	}
}

// Items returns the line items in insertion order. The returned slice is the
// ledger's backing array; callers must not mutate it.
func (l *Ledger) Items() []LineItem {
	return l.items
}

// Len reports the number of distinct line items.
func (l *Ledger) Len() int {
	return len(l.items)
}

// Total sums price × quantity over all line items.
func (l *Ledger) Total() decimal.Decimal {
	total := decimal.Zero
	for _, li := range l.items {
		total = total.Add(li.Subtotal())
	}
	return total
}

// Count sums quantities across line items, for the cart badge.
func (l *Ledger) Count() int {
	n := 0
	for _, li := range l.items {
		n += li.Quantity
	}
	return n
}
