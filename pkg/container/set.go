package container

// Set is a presence-only view over Map using a zero-size sentinel value.
type Set struct {
	m *Map[struct{}]
}

// NewSet constructs a set with at least the requested capacity.
func NewSet(capacity int) *Set {
	return &Set{m: NewMap[struct{}](capacity)}
}

// Add inserts key and reports whether it was newly added.
func (s *Set) Add(key string) bool {
	_, replaced := s.m.Put(key, struct{}{})
	return !replaced
}

// Remove deletes key and reports whether it was present.
func (s *Set) Remove(key string) bool {
	_, removed := s.m.Remove(key)
	return removed
}

// Contains reports whether key is in the set.
func (s *Set) Contains(key string) bool {
	return s.m.ContainsKey(key)
}

// Len returns the number of members.
func (s *Set) Len() int {
	return s.m.Len()
}
