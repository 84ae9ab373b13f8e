package result

import "sync"

// Store holds the objects detected for the active image in detection order.
// Objects are only ever appended until the Store is cleared at the start of a
// new input cycle.  Store is safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	objects []DetectedObject
}

// NewStore returns an empty Store
func NewStore() *Store {
	return &Store{}
}

// Add appends an object to the store, no deduplication is done on ID
func (s *Store) Add(obj DetectedObject) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects = append(s.objects, obj)
}

// AddAll appends all objects in the order given
func (s *Store) AddAll(objs []DetectedObject) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects = append(s.objects, objs...)
}

// Clear removes all objects from the store
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects = nil
}

// All returns a copy of the stored objects in insertion order
func (s *Store) All() []DetectedObject {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]DetectedObject, len(s.objects))
	copy(out, s.objects)

	return out
}

// Len returns the number of stored objects
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}
