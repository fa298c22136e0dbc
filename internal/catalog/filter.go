package catalog

import "strings"

// Filter is the derived storefront view over the catalog: a case-insensitive
// name search, a category selector ("All" or empty passes everything) and an
// optional favorites-only restriction. It is a pure projection; callers
// recompute it whenever any input changes.
type Filter struct {
	Query         string
	Category      string
	FavoritesOnly bool
}

// Apply returns the products passing the filter, preserving catalog order.
// isFavorite supplies favorites membership and may be nil when FavoritesOnly
// is false.
func (f Filter) Apply(products []Product, isFavorite func(id int) bool) []Product {
	query := strings.ToLower(f.Query)
	var out []Product
	for _, p := range products {
		if query != "" && !strings.Contains(strings.ToLower(p.Name), query) {
			continue
		}
		if f.Category != "" && f.Category != "All" && p.Category != f.Category {
			continue
		}
		if f.FavoritesOnly && (isFavorite == nil || !isFavorite(p.ID)) {
			continue
		}
		out = append(out, p)
	}
	return out
}
