package cart

import "github.com/younglord3302/Lumina/internal/catalog"

// ResolveVariant determines the effective color and size for a product.
// An explicit selection wins; otherwise the product's first declared variant
// is used; products without variant lists resolve to empty strings. The quick
// add path and the detail/compare paths both go through here so defaulting
// behaves identically everywhere.
func ResolveVariant(p catalog.Product, explicitColor, explicitSize string) (color, size string) {
	color = explicitColor
	if color == "" {
		color = p.DefaultColor()
	}
	size = explicitSize
	if size == "" {
		size = p.DefaultSize()
	}
	return color, size
}
