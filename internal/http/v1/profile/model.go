package profile

import "github.com/homefix/homefix-api/internal/platform/timeutil"

// Profile is the caller's own profile.
type Profile struct {
	UserID    string        `json:"userId" doc:"User identifier"`
	FullName  string        `json:"fullName" doc:"Display name" example:"Sara Ali"`
	Phone     string        `json:"phone" doc:"Contact phone"`
	Role      string        `json:"role" doc:"Marketplace role" enum:"customer,provider,admin"`
	AvatarURL string        `json:"avatarUrl,omitempty" doc:"Avatar image URL"`
	CreatedAt timeutil.Time `json:"createdAt" doc:"Profile creation time"`
}
