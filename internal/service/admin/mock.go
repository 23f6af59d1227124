package admin

import (
	"context"
	"sort"
	"sync"
)

// MockStore implements Store with an in-memory map.
type MockStore struct {
	mu       sync.Mutex
	profiles map[string]Profile
	Err      error
}

// NewMockStore creates an empty mock store.
func NewMockStore() *MockStore {
	return &MockStore{profiles: make(map[string]Profile)}
}

// Seed inserts a profile directly.
func (m *MockStore) Seed(p Profile) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profiles[p.UserID] = p
}

func (m *MockStore) Save(_ context.Context, p Profile) error {
	if m.Err != nil {
		return m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profiles[p.UserID] = p
	return nil
}

func (m *MockStore) Get(_ context.Context, userID string) (*Profile, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.profiles[userID]
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

func (m *MockStore) List(_ context.Context) ([]Profile, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Profile, 0, len(m.profiles))
	for _, p := range m.profiles {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (m *MockStore) Update(_ context.Context, userID string, patch ProfilePatch) error {
	if m.Err != nil {
		return m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.profiles[userID]
	if !ok {
		return ErrNotFound
	}
	if patch.FullName != nil {
		p.FullName = *patch.FullName
	}
	if patch.Phone != nil {
		p.Phone = *patch.Phone
	}
	if patch.Role != nil {
		p.Role = *patch.Role
	}
	m.profiles[userID] = p
	return nil
}

func (m *MockStore) Delete(_ context.Context, userID string) error {
	if m.Err != nil {
		return m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.profiles[userID]; !ok {
		return ErrNotFound
	}
	delete(m.profiles, userID)
	return nil
}

// Compile-time interface check
var _ Store = (*MockStore)(nil)
