package state

import "sync"

// Memory is a process-local Store. Values live until cleared or the process exits.
type Memory[V any] struct {
	mu       sync.Mutex
	sessions map[int64]V
}

// NewMemory constructs an empty in-memory store.
func NewMemory[V any]() *Memory[V] {
	return &Memory[V]{sessions: make(map[int64]V)}
}

var _ Store[struct{}] = (*Memory[struct{}])(nil)

// Get returns the session for a user if it exists.
func (m *Memory[V]) Get(userID int64) (V, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.sessions[userID]
	return v, ok
}

// Set stores the session for a user, overwriting any prior one.
func (m *Memory[V]) Set(userID int64, v V) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[userID] = v
}

// Take removes the session for a user and returns it.
func (m *Memory[V]) Take(userID int64) (V, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.sessions[userID]
	if ok {
		delete(m.sessions, userID)
	}
	return v, ok
}

// Clear removes the entire session for a user.
func (m *Memory[V]) Clear(userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, userID)
}

// ClearIf removes the user's session when match reports true for it.
func (m *Memory[V]) ClearIf(userID int64, match func(V) bool) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.sessions[userID]
	if !ok || !match(v) {
		return false
	}
	delete(m.sessions, userID)
	return true
}

// InProgress reports whether the user currently has a stored session.
func (m *Memory[V]) InProgress(userID int64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.sessions[userID]
	return ok
}

// Len returns the number of users with a stored session.
func (m *Memory[V]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
