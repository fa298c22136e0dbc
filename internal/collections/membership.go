// Package collections provides the storefront's membership collections:
// toggle-based product-id sets (favorites, wishlist) and the bounded compare
// set of product snapshots.
package collections

// MembershipSet is a set of product ids with toggle semantics. Membership
// tests are O(1); iteration order is insertion order so list views stay
// stable across toggles of other ids.
type MembershipSet struct {
	order []int
	index map[int]struct{}
}

// NewMembershipSet returns an empty set.
func NewMembershipSet() *MembershipSet {
	return &MembershipSet{index: make(map[int]struct{})}
}

// Toggle adds the id if absent and removes it if present. It reports whether
// the id is a member after the call.
func (s *MembershipSet) Toggle(id int) bool {
	if _, ok := s.index[id]; ok {
		s.remove(id)
		return false
	}
	s.index[id] = struct{}{}
	s.order = append(s.order, id)
	return true
}

// Contains reports membership.
func (s *MembershipSet) Contains(id int) bool {
	_, ok := s.index[id]
	return ok
}

// IDs returns the member ids in insertion order.
func (s *MembershipSet) IDs() []int {
	out := make([]int, len(s.order))
	copy(out, s.order)
	return out
}

// Len reports the number of members.
func (s *MembershipSet) Len() int {
	return len(s.order)
}

func (s *MembershipSet) remove(id int) {
	delete(s.index, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			return
		}
	}
}
