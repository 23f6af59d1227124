package admin

// ListUsersData is the user table response body.
type ListUsersData struct {
	Users []User `json:"users" doc:"All profiles, newest first"`
}

// ListUsersOutput wraps the user table response.
type ListUsersOutput struct {
	Body ListUsersData
}
