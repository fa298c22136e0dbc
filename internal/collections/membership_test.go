package collections

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestToggle_RoundTripIsIdempotent(t *testing.T) {
	s := NewMembershipSet()

	assert.True(t, s.Toggle(7))
	assert.True(t, s.Contains(7))

	assert.False(t, s.Toggle(7))
	assert.False(t, s.Contains(7))
	assert.Zero(t, s.Len())
}

func TestIDs_PreserveInsertionOrder(t *testing.T) {
	s := NewMembershipSet()
	s.Toggle(3)
	s.Toggle(1)
	s.Toggle(2)
	s.Toggle(1) // remove from the middle

	if diff := cmp.Diff([]int{3, 2}, s.IDs()); diff != "" {
		t.Errorf("IDs mismatch (-want +got):\n%s", diff)
	}

	s.Toggle(1) // re-add goes to the end
	if diff := cmp.Diff([]int{3, 2, 1}, s.IDs()); diff != "" {
		t.Errorf("IDs after re-add mismatch (-want +got):\n%s", diff)
	}
}

func TestSets_AreIndependent(t *testing.T) {
	favorites := NewMembershipSet()
	wishlist := NewMembershipSet()

	favorites.Toggle(4)
	assert.True(t, favorites.Contains(4))
	assert.False(t, wishlist.Contains(4))
}
