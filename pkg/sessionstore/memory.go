package sessionstore

import (
	"context"
	"sync"
)

// Memory is an in-process session store. Nothing survives a restart;
// intended for tests and short-lived tools that should not leave a
// session behind.
type Memory[U any] struct {
	mu       sync.RWMutex
	token    string
	user     U
	hasToken bool
	hasUser  bool
}

// NewMemory creates an empty in-memory session store.
func NewMemory[U any]() *Memory[U] {
	return &Memory[U]{}
}

// Token returns the stored auth token.
func (m *Memory[U]) Token(_ context.Context) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.hasToken {
		return "", ErrNotFound
	}
	return m.token, nil
}

// SetToken stores the auth token.
func (m *Memory[U]) SetToken(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.token = token
	m.hasToken = true
	return nil
}

// ClearToken removes the stored token.
func (m *Memory[U]) ClearToken(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.token = ""
	m.hasToken = false
	return nil
}

// User returns the cached user.
func (m *Memory[U]) User(_ context.Context) (U, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.hasUser {
		var zero U
		return zero, ErrNotFound
	}
	return m.user, nil
}

// SetUser caches the user.
func (m *Memory[U]) SetUser(_ context.Context, user U) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.user = user
	m.hasUser = true
	return nil
}

// ClearUser removes the cached user.
func (m *Memory[U]) ClearUser(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var zero U
	m.user = zero
	m.hasUser = false
	return nil
}

// IsAuthenticated reports whether a token is present.
func (m *Memory[U]) IsAuthenticated(_ context.Context) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.hasToken, nil
}

// Clear removes both keys.
func (m *Memory[U]) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var zero U
	m.token = ""
	m.user = zero
	m.hasToken = false
	m.hasUser = false
	return nil
}

var _ Store[any] = (*Memory[any])(nil)
