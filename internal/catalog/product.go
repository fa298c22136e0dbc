// Package catalog holds the static product catalog: the read-only root data
// source for every storefront view. Products are loaded once at startup from
// the embedded catalog data and never mutated afterwards.
package catalog

import (
	"github.com/shopspring/decimal"
)

// Review is a customer review owned by exactly one product.
type Review struct {
	ID      string `yaml:"id"`
	User    string `yaml:"user"`
	Rating  int    `yaml:"rating"` // 1..5 inclusive
	Comment string `yaml:"comment"`
	Date    string `yaml:"date"`
}

// Product is an immutable catalog entry. Colors and Sizes are optional,
// ordered variant lists; the first entry of each is the default variant.
type Product struct {
	ID          int             `yaml:"id"`
	Name        string          `yaml:"name"`
	Price       decimal.Decimal `yaml:"price"`
	Category    string          `yaml:"category"`
	Image       string          `yaml:"image"`
	Description string          `yaml:"description"`
	Features    []string        `yaml:"features"`
	Reviews     []Review        `yaml:"reviews"`
	Colors      []string        `yaml:"colors,omitempty"`
	Sizes       []string        `yaml:"sizes,omitempty"`
}

// DefaultColor returns the first declared color, or "" if none.
func (p Product) DefaultColor() string {
	if len(p.Colors) > 0 {
		return p.Colors[0]
	}
	return ""
}

// DefaultSize returns the first declared size, or "" if none.
func (p Product) DefaultSize() string {
	if len(p.Sizes) > 0 {
		return p.Sizes[0]
	}
	return ""
}

// AverageRating computes the mean review rating, 0 when unreviewed.
func (p Product) AverageRating() float64 {
	if len(p.Reviews) == 0 {
		return 0
	}
	sum := 0
	for _, r := range p.Reviews {
		sum += r.Rating
	}
	return float64(sum) / float64(len(p.Reviews))
}
