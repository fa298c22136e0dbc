package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/younglord3302/Lumina/internal/catalog"
)

var (
	catalogCategory string
	catalogSearch   string
)

// catalogCmd lists the product catalog
var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List the product catalog",
	RunE:  runCatalog,
}

func init() {
	catalogCmd.Flags().StringVarP(&catalogCategory, "category", "c", "All", "Filter by category")
	catalogCmd.Flags().StringVarP(&catalogSearch, "search", "s", "", "Filter by name substring")
}

func runCatalog(cmd *cobra.Command, args []string) error {
	store, err := catalog.Load()
	if err != nil {
		return err
	}

	filter := catalog.Filter{Query: catalogSearch, Category: catalogCategory}
	products := filter.Apply(store.All(), nil)
	if len(products) == 0 {
		fmt.Println("no products match")
		return nil
	}

	for _, p := range products {
		variants := ""
		if len(p.Colors) > 0 {
			variants = fmt.Sprintf("  colors: %d", len(p.Colors))
		}
		if len(p.Sizes) > 0 {
			variants += fmt.Sprintf("  sizes: %d", len(p.Sizes))
		}
		fmt.Printf("%3d  %-32s %-12s $%8s  %.1f★ (%d)%s\n",
			p.ID, p.Name, p.Category, p.Price.StringFixed(2),
			p.AverageRating(), len(p.Reviews), variants)
	}
	return nil
}
