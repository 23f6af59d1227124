package catalog

import (
	"context"
)

// MockCatalogService implements Service for unit tests.
type MockCatalogService struct {
	Categories []Category
	Err        error
}

func (m *MockCatalogService) List(_ context.Context) ([]Category, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Categories, nil
}

func (m *MockCatalogService) BySlug(_ context.Context, slug string) (*Category, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	for i := range m.Categories {
		if m.Categories[i].Slug == slug {
			return &m.Categories[i], nil
		}
	}
	return nil, ErrNotFound
}

// Compile-time interface check
var _ Service = (*MockCatalogService)(nil)
