// internal/schedule/store.go
package schedule

import "sync/atomic"

// Store holds the current model and lets a refresh swap in a freshly
// built one. Each model stays immutable; readers always see one
// coherent snapshot.
type Store struct {
	current atomic.Pointer[Model]
}

func NewStore(m *Model) *Store {
	s := &Store{}
	s.current.Store(m)
	return s
}

// Model returns the current snapshot.
func (s *Store) Model() *Model {
	return s.current.Load()
}

// Swap replaces the current snapshot.
func (s *Store) Swap(m *Model) {
	s.current.Store(m)
}
