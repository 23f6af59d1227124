package categories

// ListInput has no parameters; the full catalog is always returned.
type ListInput struct{}
