package admin

// ListUsersInput has no parameters; every profile is returned.
type ListUsersInput struct{}

// UpdateUserInput patches a user's profile. Only provided fields change.
type UpdateUserInput struct {
	ID   string `path:"id" doc:"User identifier"`
	Body struct {
		FullName *string `json:"fullName,omitempty" maxLength:"200" doc:"Display name"`
		Phone    *string `json:"phone,omitempty" maxLength:"32" doc:"Contact phone"`
		Role     *string `json:"role,omitempty" enum:"customer,provider,admin" doc:"Marketplace role"`
	}
}

// DeleteUserInput identifies the profile to remove.
type DeleteUserInput struct {
	ID string `path:"id" doc:"User identifier"`
}
