package provider

import (
	"context"
	"sync"
)

// MockProviderService implements Service for unit tests.
type MockProviderService struct {
	mu       sync.RWMutex
	profiles map[string]*PublicProfile
	Err      error

	// Writes counts persisted availability writes, for asserting that
	// toggles hit the store once each.
	Writes int
}

// NewMockProviderService creates a new mock service.
func NewMockProviderService() *MockProviderService {
	return &MockProviderService{profiles: make(map[string]*PublicProfile)}
}

// Put seeds a provider.
func (m *MockProviderService) Put(p *PublicProfile) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profiles[p.UserID] = p
}

func (m *MockProviderService) Get(_ context.Context, userID string) (*PublicProfile, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.profiles[userID]
	if !ok {
		return nil, ErrNotFound
	}
	return p, nil
}

func (m *MockProviderService) EnsureDetails(_ context.Context, userID string) error {
	if m.Err != nil {
		return m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.profiles[userID]; !ok {
		m.profiles[userID] = &PublicProfile{
			UserID:  userID,
			Details: Details{UserID: userID, Available: true},
		}
	}
	return nil
}

func (m *MockProviderService) Setup(_ context.Context, userID string, params SetupParams) error {
	if m.Err != nil {
		return m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.profiles[userID]
	if !ok {
		return ErrNotFound
	}
	p.Details.Description = params.Description
	p.Details.ExperienceYears = params.ExperienceYears
	p.Details.Lat = params.Lat
	p.Details.Lng = params.Lng
	p.Details.Available = true
	return nil
}

func (m *MockProviderService) SetAvailability(_ context.Context, userID string, available bool) error {
	if m.Err != nil {
		return m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.profiles[userID]
	if !ok {
		return ErrNotFound
	}
	p.Details.Available = available
	m.Writes++
	return nil
}

func (m *MockProviderService) Toggle(_ context.Context, userID string) (bool, error) {
	if m.Err != nil {
		return false, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.profiles[userID]
	if !ok {
		return false, ErrNotFound
	}
	p.Details.Available = !p.Details.Available
	m.Writes++
	return p.Details.Available, nil
}

// Compile-time interface check
var _ Service = (*MockProviderService)(nil)
