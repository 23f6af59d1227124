package profile

// GetInput has no parameters; the caller's own profile is returned.
type GetInput struct{}

// CompleteInput fills the profile after sign-up.
type CompleteInput struct {
	Body struct {
		FullName string `json:"fullName" minLength:"1" maxLength:"200" doc:"Display name"`
		Phone    string `json:"phone" maxLength:"32" doc:"Contact phone"`
		Role     string `json:"role" enum:"customer,provider" doc:"Marketplace role"`
	}
}
