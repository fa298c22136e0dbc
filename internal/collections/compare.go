package collections

import (
	"github.com/younglord3302/Lumina/internal/cart"
	"github.com/younglord3302/Lumina/internal/catalog"
)

// MaxCompare is the side-by-side comparison limit.
const MaxCompare = 4

// CompareSet is an ordered collection of up to MaxCompare full product
// snapshots. Variant selections for the comparison view are held here,
// separate from any product-detail selection, so picking a color in one view
// never leaks into the other. Any membership change re-defaults every
// remaining member's selection to its first declared variant.
type CompareSet struct {
	products   []catalog.Product
	selections map[int]Selection
}

// Selection is a transient per-product variant choice within the comparison.
type Selection struct {
	Color string
	Size  string
}

// NewCompareSet returns an empty comparison.
func NewCompareSet() *CompareSet {
	return &CompareSet{selections: make(map[int]Selection)}
}

// Add appends the product unless it is already present or the set is full.
// A full set reports ok=false so the caller can show a notice; it is not an
// error and the set is left unchanged.
func (c *CompareSet) Add(p catalog.Product) (ok bool) {
	if c.Contains(p.ID) {
		return true
	}
	if len(c.products) >= MaxCompare {
		return false
	}
	c.products = append(c.products, p)
	c.resetSelections()
	return true
}

// Toggle removes the product if present, otherwise attempts an Add subject to
// the cap. The return mirrors Add for the add path and is true on removal.
func (c *CompareSet) Toggle(p catalog.Product) (ok bool) {
	if c.Contains(p.ID) {
		c.Remove(p.ID)
		return true
	}
	return c.Add(p)
}

// Remove drops the product unconditionally; absent ids are a no-op.
func (c *CompareSet) Remove(id int) {
	for i, p := range c.products {
		if p.ID == id {
			c.products = append(c.products[:i], c.products[i+1:]...)
			c.resetSelections()
			return
		}
	}
}

// Contains reports membership by product id.
func (c *CompareSet) Contains(id int) bool {
	for _, p := range c.products {
		if p.ID == id {
			return true
		}
	}
	return false
}

// Products returns the compared products in insertion order.
func (c *CompareSet) Products() []catalog.Product {
	out := make([]catalog.Product, len(c.products))
	copy(out, c.products)
	return out
}

// Len reports the comparison size.
func (c *CompareSet) Len() int {
	return len(c.products)
}

// Select records a variant choice for one compared product. Unknown ids are
// ignored.
func (c *CompareSet) Select(id int, color, size string) {
	if !c.Contains(id) {
		return
	}
	c.selections[id] = Selection{Color: color, Size: size}
}

// SelectionFor returns the current variant choice for a compared product.
func (c *CompareSet) SelectionFor(id int) Selection {
	return c.selections[id]
}

// resetSelections re-defaults every member to its first declared variant,
// matching the resolver default applied eagerly.
func (c *CompareSet) resetSelections() {
	c.selections = make(map[int]Selection, len(c.products))
	for _, p := range c.products {
		color, size := cart.ResolveVariant(p, "", "")
		c.selections[p.ID] = Selection{Color: color, Size: size}
	}
}
