package ecs

// Store pairs an EntityPool with one typed record per slot. Records are
// allocated once and reused; lookups reject stale IDs.
type Store[T any] struct {
	pool    *EntityPool
	records []T
}

func NewStore[T any](capacity int) *Store[T] {
	return &Store[T]{
		pool:    NewEntityPool(capacity),
		records: make([]T, capacity),
	}
}

// Acquire reserves a slot and returns its record for the caller to reset.
func (s *Store[T]) Acquire() (EntityID, *T, error) {
	id, err := s.pool.Create()
	if err != nil {
		return 0, nil, err
	}
	return id, &s.records[id.Index()], nil
}

// Get returns the record for id, or false if id is stale.
func (s *Store[T]) Get(id EntityID) (*T, bool) {
	if !s.pool.Alive(id) {
		return nil, false
	}
	return &s.records[id.Index()], true
}

// Release frees id. The record stays in place for reuse.
func (s *Store[T]) Release(id EntityID) bool {
	return s.pool.Destroy(id)
}

func (s *Store[T]) Alive(id EntityID) bool { return s.pool.Alive(id) }
func (s *Store[T]) Len() int               { return s.pool.Active() }
func (s *Store[T]) Cap() int               { return s.pool.Capacity() }
func (s *Store[T]) Free() int              { return s.pool.Free() }
