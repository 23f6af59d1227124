package admin

import "github.com/homefix/homefix-api/internal/platform/timeutil"

// User is one row in the admin user table.
type User struct {
	UserID    string        `json:"userId" doc:"User identifier"`
	FullName  string        `json:"fullName" doc:"Display name"`
	Phone     string        `json:"phone" doc:"Contact phone"`
	Role      string        `json:"role" doc:"Marketplace role" enum:"customer,provider,admin"`
	CreatedAt timeutil.Time `json:"createdAt" doc:"Sign-up time"`
}
