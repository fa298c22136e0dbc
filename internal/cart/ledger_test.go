package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younglord3302/Lumina/internal/catalog"
)

func headphones() catalog.Product {
	return catalog.Product{
		ID:       1,
		Name:     "Lumina Alpha Headphones",
		Price:    decimal.NewFromInt(349),
		Category: "Audio",
		Colors:   []string{"Matte Black", "Silver", "Navy Blue"},
	}
}

func backpack() catalog.Product {
	return catalog.Product{
		ID:       6,
		Name:     "Nomad Backpack",
		Price:    decimal.NewFromInt(129),
		Category: "Accessories",
		Colors:   []string{"Charcoal", "Olive Green", "Navy"},
		Sizes:    []string{"20L", "30L"},
	}
}

func lamp() catalog.Product {
	return catalog.Product{ID: 5, Name: "Zenith Smart Lamp", Price: decimal.NewFromInt(89), Category: "Home"}
}

func TestResolveVariant(t *testing.T) {
	tests := []struct {
		name          string
		product       catalog.Product
		color, size   string
		wantC, wantS  string
	}{
		{"explicit wins over defaults", backpack(), "Navy", "30L", "Navy", "30L"},
		{"explicit color only", backpack(), "Navy", "", "Navy", "20L"},
		{"defaults to first declared", headphones(), "", "", "Matte Black", ""},
		{"no variants declared", lamp(), "", "", "", ""},
		{"explicit preserved even if undeclared", lamp(), "Red", "XL", "Red", "XL"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, s := ResolveVariant(tt.product, tt.color, tt.size)
			assert.Equal(t, tt.wantC, c)
			assert.Equal(t, tt.wantS, s)
		})
	}
}

func TestAdd_MergesOnMatchingKey(t *testing.T) {
	l := NewLedger()
	l.Add(headphones(), "", "")
	l.Add(headphones(), "", "")

	require.Equal(t, 1, l.Len())
	li := l.Items()[0]
	assert.Equal(t, 2, li.Quantity)
	assert.Equal(t, "Matte Black", li.SelectedColor)
}

func TestAdd_DistinctVariantsAreDistinctLines(t *testing.T) {
	l := NewLedger()
	l.Add(headphones(), "", "")
	l.Add(headphones(), "Silver", "")

	require.Equal(t, 2, l.Len())
	assert.Equal(t, "Matte Black", l.Items()[0].SelectedColor)
	assert.Equal(t, "Silver", l.Items()[1].SelectedColor)
	assert.Equal(t, 2, l.Count())
}

func TestAdd_QuickAddDefaultsFirstColor(t *testing.T) {
	l := NewLedger()
	li := l.Add(headphones(), "", "")

	require.Equal(t, 1, l.Len())
	assert.Equal(t, "Matte Black", li.SelectedColor)
	assert.Equal(t, 1, li.Quantity)
}

func TestUpdateQuantity_FloorsAtOne(t *testing.T) {
	l := NewLedger()
	l.Add(lamp(), "", "")

	l.UpdateQuantity(5, -1, "", "")
	require.Equal(t, 1, l.Len())
	assert.Equal(t, 1, l.Items()[0].Quantity, "decrement at 1 must be a no-op, not a delete")

	l.UpdateQuantity(5, 3, "", "")
	assert.Equal(t, 4, l.Items()[0].Quantity)

	l.UpdateQuantity(5, -10, "", "")
	assert.Equal(t, 4, l.Items()[0].Quantity, "delta past zero leaves quantity unchanged")
}

func TestUpdateQuantity_UnknownKeyIsNoop(t *testing.T) {
	l := NewLedger()
	l.Add(lamp(), "", "")
	l.UpdateQuantity(99, 1, "", "")
	assert.Equal(t, 1, l.Items()[0].Quantity)
}

func TestRemove_ExactKeyOnly(t *testing.T) {
	l := NewLedger()
	l.Add(headphones(), "", "")
	l.Add(headphones(), "Silver", "")
	l.Add(lamp(), "", "")

	l.Remove(1, "Matte Black", "")
	require.Equal(t, 2, l.Len())
	assert.Equal(t, "Silver", l.Items()[0].SelectedColor)

	// Wrong variant: no-op.
	l.Remove(1, "Navy Blue", "")
	assert.Equal(t, 2, l.Len())

	// Merge after a middle removal still finds the reindexed line.
	l.Add(lamp(), "", "")
	assert.Equal(t, 2, l.Len())
	assert.Equal(t, 2, l.Items()[1].Quantity)
}

func TestTotalAndCount(t *testing.T) {
	l := NewLedger()
	assert.True(t, l.Total().IsZero())
	assert.Zero(t, l.Count())

	l.Add(headphones(), "", "")
	l.Add(headphones(), "", "")
	l.Add(backpack(), "Navy", "30L")

	// 2×349 + 129
	assert.True(t, l.Total().Equal(decimal.NewFromInt(827)), "total = %s", l.Total())
	assert.Equal(t, 3, l.Count())
	assert.Equal(t, 2, l.Len())
}
