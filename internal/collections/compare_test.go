package collections

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younglord3302/Lumina/internal/catalog"
)

func product(id int, colors ...string) catalog.Product {
	return catalog.Product{ID: id, Colors: colors}
}

func TestCompare_CapAtFour(t *testing.T) {
	c := NewCompareSet()
	for id := 1; id <= 4; id++ {
		require.True(t, c.Add(product(id)))
	}

	assert.False(t, c.Add(product(5)), "fifth distinct product must be refused")
	assert.Equal(t, 4, c.Len())
	assert.False(t, c.Contains(5))

	// Re-adding an existing member is fine even at the cap.
	assert.True(t, c.Add(product(2)))
	assert.Equal(t, 4, c.Len())
}

func TestCompare_ToggleSemantics(t *testing.T) {
	c := NewCompareSet()
	p := product(1, "Black", "White")

	assert.True(t, c.Toggle(p))
	assert.True(t, c.Contains(1))

	assert.True(t, c.Toggle(p))
	assert.False(t, c.Contains(1))
	assert.Zero(t, c.Len())
}

func TestCompare_MembershipChangeResetsSelections(t *testing.T) {
	c := NewCompareSet()
	hp := product(1, "Matte Black", "Silver")
	bp := catalog.Product{ID: 6, Colors: []string{"Charcoal"}, Sizes: []string{"20L", "30L"}}
	c.Add(hp)
	c.Add(bp)

	c.Select(1, "Silver", "")
	assert.Equal(t, Selection{Color: "Silver"}, c.SelectionFor(1))

	// Removing another member resets every remaining selection to defaults.
	c.Remove(6)
	assert.Equal(t, Selection{Color: "Matte Black"}, c.SelectionFor(1))

	// Adding resets too.
	c.Select(1, "Silver", "")
	c.Add(bp)
	assert.Equal(t, Selection{Color: "Matte Black"}, c.SelectionFor(1))
	assert.Equal(t, Selection{Color: "Charcoal", Size: "20L"}, c.SelectionFor(6))
}

func TestCompare_SelectUnknownIDIgnored(t *testing.T) {
	c := NewCompareSet()
	c.Select(42, "Red", "")
	assert.Equal(t, Selection{}, c.SelectionFor(42))
}

func TestCompare_RemoveKeepsOrder(t *testing.T) {
	c := NewCompareSet()
	c.Add(product(1))
	c.Add(product(2))
	c.Add(product(3))

	c.Remove(2)
	got := c.Products()
	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0].ID)
	assert.Equal(t, 3, got[1].ID)
}
