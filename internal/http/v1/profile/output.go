package profile

// GetOutput wraps the caller's profile.
type GetOutput struct {
	Body Profile
}

// CompleteOutput wraps the stored profile.
type CompleteOutput struct {
	Body Profile
}
