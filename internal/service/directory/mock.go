package directory

import (
	"context"
)

// MockStore implements Store in memory for unit tests. Call counters allow
// asserting which fetches were issued.
type MockStore struct {
	Details  []Details
	Profiles map[string]Profile
	Labels   map[string][]string
	// Links maps category id to linked user ids.
	Links map[string][]string

	Err error

	AllDetailsCalls   int
	DetailsByIDsCalls int
}

func (m *MockStore) ProviderIDsByCategory(_ context.Context, categoryID string) ([]string, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Links[categoryID], nil
}

func (m *MockStore) AllDetails(_ context.Context) ([]Details, error) {
	m.AllDetailsCalls++
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Details, nil
}

func (m *MockStore) DetailsByIDs(_ context.Context, userIDs []string) ([]Details, error) {
	m.DetailsByIDsCalls++
	if m.Err != nil {
		return nil, m.Err
	}
	want := make(map[string]struct{}, len(userIDs))
	for _, id := range userIDs {
		want[id] = struct{}{}
	}
	var out []Details
	for _, d := range m.Details {
		if _, ok := want[d.UserID]; ok {
			out = append(out, d)
		}
	}
	return out, nil
}

func (m *MockStore) ProfilesByIDs(_ context.Context, userIDs []string) (map[string]Profile, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	out := make(map[string]Profile, len(userIDs))
	for _, id := range userIDs {
		if p, ok := m.Profiles[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

func (m *MockStore) CategoryNamesByIDs(_ context.Context, userIDs []string) (map[string][]string, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	out := make(map[string][]string, len(userIDs))
	for _, id := range userIDs {
		if l, ok := m.Labels[id]; ok {
			out[id] = l
		}
	}
	return out, nil
}

// Compile-time interface check
var _ Store = (*MockStore)(nil)
