package provider

import (
	"context"
	"errors"
	"time"
)

// Service errors
var (
	ErrNotFound = errors.New("provider not found")
)

// Details holds a provider's service description and location. Coordinates
// are pointer-typed; a provider without both never ranks by proximity.
type Details struct {
	UserID          string
	Description     string
	ExperienceYears int
	Lat             *float64
	Lng             *float64
	Available       bool
	CreatedAt       time.Time
}

// PublicProfile is the joined view shown on a provider's public page.
type PublicProfile struct {
	UserID     string
	FullName   string
	Phone      string
	AvatarURL  string
	Details    Details
	Categories []string
}

// SetupParams for completing or editing a provider's service profile.
// Category links are replaced wholesale with CategoryIDs.
type SetupParams struct {
	Description     string
	ExperienceYears int
	Lat             *float64
	Lng             *float64
	CategoryIDs     []string
}

// Service manages provider details.
type Service interface {
	// Get returns the joined public profile, or ErrNotFound when the
	// profile or details row is missing.
	Get(ctx context.Context, userID string) (*PublicProfile, error)
	// EnsureDetails creates an empty details row if none exists yet.
	EnsureDetails(ctx context.Context, userID string) error
	// Setup writes the service profile and marks the provider available.
	Setup(ctx context.Context, userID string, params SetupParams) error
	// SetAvailability persists the online/offline flag. Callers must not
	// flip local state before this returns nil.
	SetAvailability(ctx context.Context, userID string, available bool) error
	// Toggle atomically flips the flag and returns the new value.
	Toggle(ctx context.Context, userID string) (bool, error)
}
