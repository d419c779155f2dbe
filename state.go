package wijjit

import "sync"

// StateStore is a string key/value store shared between widgets and app
// code. Bindable widgets sync their value through it, and every write
// fires the change callback so the app can mark itself dirty.
type StateStore struct {
	mu       sync.RWMutex
	values   map[string]string
	onChange func(key, value string)
}

// NewStateStore creates an empty store.
func NewStateStore() *StateStore {
	return &StateStore{values: make(map[string]string)}
}

// OnChange registers the callback fired on every Set that changes a value.
func (s *StateStore) OnChange(fn func(key, value string)) {
	s.mu.Lock()
	s.onChange = fn
	s.mu.Unlock()
}

// Get returns the value for key and whether it is present.
func (s *StateStore) Get(key string) (string, bool) {
	s.mu.RLock()
	v, ok := s.values[key]
	s.mu.RUnlock()
	return v, ok
}

// GetOr returns the value for key, or fallback when absent.
func (s *StateStore) GetOr(key, fallback string) string {
	if v, ok := s.Get(key); ok {
		return v
	}
	return fallback
}

// Set writes a value. Writing the value a key already holds is a no-op and
// does not fire the change callback.
func (s *StateStore) Set(key, value string) {
	s.mu.Lock()
	if old, ok := s.values[key]; ok && old == value {
		s.mu.Unlock()
		return
	}
	s.values[key] = value
	fn := s.onChange
	s.mu.Unlock()
	if fn != nil {
		fn(key, value)
	}
}

// Delete removes a key. Absent keys are a no-op.
func (s *StateStore) Delete(key string) {
	s.mu.Lock()
	_, ok := s.values[key]
	if ok {
		delete(s.values, key)
	}
	fn := s.onChange
	s.mu.Unlock()
	if ok && fn != nil {
		fn(key, "")
	}
}

// Keys returns all present keys, in no particular order.
func (s *StateStore) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.values))
	for k := range s.values {
		out = append(out, k)
	}
	return out
}

// Len returns the number of stored keys.
func (s *StateStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.values)
}
