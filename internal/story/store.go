package story

// ChangeFunc is notified after the position moves from prev to next.
type ChangeFunc func(prev, next int)

// Store owns the playback position. Every mutation clamps to the catalog;
// out of range requests are ignored without error.
type Store struct {
	catalog   *Catalog
	current   int
	listeners []ChangeFunc
}

func NewStore(c *Catalog) *Store { return &Store{catalog: c} }

func (s *Store) Catalog() *Catalog { return s.catalog }
func (s *Store) Current() int      { return s.current }
func (s *Store) Chapter() Chapter  { return s.catalog.At(s.current) }
func (s *Store) AtFirst() bool     { return s.current == 0 }
func (s *Store) AtLast() bool      { return s.current == s.catalog.Last() }

// OnChange registers fn. Listeners run synchronously, in registration
// order, before the mutating call returns.
func (s *Store) OnChange(fn ChangeFunc) { s.listeners = append(s.listeners, fn) }

// Advance moves to the next chapter unless already at the last one.
func (s *Store) Advance() bool {
	if s.AtLast() {
		return false
	}
	return s.set(s.current + 1)
}

// Retreat moves to the previous chapter unless already at the first one.
func (s *Store) Retreat() bool {
	if s.AtFirst() {
		return false
	}
	return s.set(s.current - 1)
}

// JumpTo selects chapter i directly when it is in range.
func (s *Store) JumpTo(i int) bool {
	if !s.catalog.Contains(i) || i == s.current {
		return false
	}
	return s.set(i)
}

func (s *Store) set(next int) bool {
	prev := s.current
	s.current = next
	for _, fn := range s.listeners {
		fn(prev, next)
	}
	return true
}
