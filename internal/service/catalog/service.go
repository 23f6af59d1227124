package catalog

import (
	"context"
	"errors"
)

// ErrNotFound indicates no category matches the given slug.
var ErrNotFound = errors.New("category not found")

// Category is a labeled service type used for filtering and display.
type Category struct {
	ID   string
	Name string
	Slug string
	Icon string
}

// Service reads the category catalog. Categories are immutable reference
// data, unique by slug.
type Service interface {
	List(ctx context.Context) ([]Category, error)
	BySlug(ctx context.Context, slug string) (*Category, error)
}
