package catalog

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func names(products []Product) []string {
	var out []string
	for _, p := range products {
		out = append(out, p.Name)
	}
	return out
}

func TestFilter_SearchIsCaseInsensitiveSubstring(t *testing.T) {
	s, err := Load()
	require.NoError(t, err)

	got := Filter{Query: "watch", Category: "All"}.Apply(s.All(), nil)
	want := []string{"Chronos Minimalist Watch"}
	if diff := cmp.Diff(want, names(got)); diff != "" {
		t.Errorf("search mismatch (-want +got):\n%s", diff)
	}

	got = Filter{Query: "WATCH"}.Apply(s.All(), nil)
	if diff := cmp.Diff(want, names(got)); diff != "" {
		t.Errorf("uppercase search mismatch (-want +got):\n%s", diff)
	}
}

func TestFilter_CategoryExactMatch(t *testing.T) {
	s, err := Load()
	require.NoError(t, err)

	got := Filter{Category: "Audio"}.Apply(s.All(), nil)
	want := []string{"Lumina Alpha Headphones", "Orbit Floating Speaker"}
	if diff := cmp.Diff(want, names(got)); diff != "" {
		t.Errorf("category mismatch (-want +got):\n%s", diff)
	}

	// "All" and empty both pass everything.
	require.Len(t, Filter{Category: "All"}.Apply(s.All(), nil), s.Len())
	require.Len(t, Filter{}.Apply(s.All(), nil), s.Len())
}

func TestFilter_FavoritesOnly(t *testing.T) {
	s, err := Load()
	require.NoError(t, err)

	favs := map[int]bool{2: true, 6: true}
	got := Filter{FavoritesOnly: true}.Apply(s.All(), func(id int) bool { return favs[id] })
	want := []string{"Chronos Minimalist Watch", "Nomad Backpack"}
	if diff := cmp.Diff(want, names(got)); diff != "" {
		t.Errorf("favorites mismatch (-want +got):\n%s", diff)
	}

	// Favorites-only with no membership func matches nothing.
	require.Empty(t, Filter{FavoritesOnly: true}.Apply(s.All(), nil))
}

func TestFilter_Conjunction(t *testing.T) {
	s, err := Load()
	require.NoError(t, err)

	favs := map[int]bool{1: true, 2: true}
	got := Filter{Query: "lumina", Category: "Audio", FavoritesOnly: true}.
		Apply(s.All(), func(id int) bool { return favs[id] })
	require.Len(t, got, 1)
	require.Equal(t, 1, got[0].ID)
}
