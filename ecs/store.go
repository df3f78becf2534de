package ecs

// Store is a typed component arena: values are kept densely for iteration
// and located through a sparse entity index.
//
// Pointers returned by Get and passed to Each are valid until the next Set
// of a new entity or Remove on the same store.
type Store[T any] struct {
	dense    []T
	entities []Entity
	sparse   map[Entity]int
}

// NewStore returns an empty store.
func NewStore[T any]() *Store[T] {
	return &Store[T]{sparse: make(map[Entity]int)}
}

// Set stores v for e, replacing any previous value.
// Complexity: O(1) amortized
func (s *Store[T]) Set(e Entity, v T) {
	if i, ok := s.sparse[e]; ok {
		s.dense[i] = v
		return
	}
	s.sparse[e] = len(s.dense)
	s.dense = append(s.dense, v)
	s.entities = append(s.entities, e)
}

// Get returns a pointer to e's value.
func (s *Store[T]) Get(e Entity) (*T, bool) {
	i, ok := s.sparse[e]
	if !ok {
		return nil, false
	}
	return &s.dense[i], true
}

// Has reports whether e has a value.
func (s *Store[T]) Has(e Entity) bool {
	_, ok := s.sparse[e]
	return ok
}

// Remove deletes e's value by swapping the last element into its slot.
// Complexity: O(1)
func (s *Store[T]) Remove(e Entity) bool {
	i, ok := s.sparse[e]
	if !ok {
		return false
	}
	last := len(s.dense) - 1
	if i != last {
		s.dense[i] = s.dense[last]
		s.entities[i] = s.entities[last]
		s.sparse[s.entities[i]] = i
	}
	var zero T
	s.dense[last] = zero
	s.dense = s.dense[:last]
	s.entities = s.entities[:last]
	delete(s.sparse, e)

	return true
}

// Len returns the number of stored values.
func (s *Store[T]) Len() int { return len(s.dense) }

// Entities returns the entities holding a value, in dense order.
func (s *Store[T]) Entities() []Entity {
	return append([]Entity(nil), s.entities...)
}

// Each calls fn for every value in dense order. fn must not add or remove
// values of this store.
func (s *Store[T]) Each(fn func(Entity, *T)) {
	for i := range s.dense {
		fn(s.entities[i], &s.dense[i])
	}
}
