package querycodec

// Set is a set of strings that remembers insertion order, so iterating it
// (and therefore encoding it) is stable.
type Set struct {
	items   []string
	members map[string]struct{}
}

// NewSet returns a set holding items, duplicates dropped.
func NewSet(items ...string) *Set {
	s := &Set{members: make(map[string]struct{}, len(items))}
	for _, item := range items {
		s.Add(item)
	}
	return s
}

// Add inserts item. It reports whether the item was new.
func (s *Set) Add(item string) bool {
	if s.members == nil {
		s.members = make(map[string]struct{})
	}
	if _, ok := s.members[item]; ok {
		return false
	}
	s.members[item] = struct{}{}
	s.items = append(s.items, item)
	return true
}

// Has reports membership.
func (s *Set) Has(item string) bool {
	if s == nil {
		return false
	}
	_, ok := s.members[item]
	return ok
}

// Len returns the number of members.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.items)
}

// Items returns the members in insertion order.
func (s *Set) Items() []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s.items))
	copy(out, s.items)
	return out
}
