package ecs

// Each visits live records in slot order. fn may release the visited ID;
// slots released during the walk are skipped.
func (s *Store[T]) Each(fn func(EntityID, *T)) {
	for i := uint32(0); i < s.pool.nextIndex; i++ {
		id, ok := s.pool.Current(i)
		if !ok {
			continue
		}
		fn(id, &s.records[i])
	}
}

// Find returns the first live record in slot order matching pred.
func (s *Store[T]) Find(pred func(EntityID, *T) bool) (EntityID, *T, bool) {
	for i := uint32(0); i < s.pool.nextIndex; i++ {
		id, ok := s.pool.Current(i)
		if !ok {
			continue
		}
		if pred(id, &s.records[i]) {
			return id, &s.records[i], true
		}
	}
	return 0, nil, false
}
