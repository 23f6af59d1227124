// Package admin manages user profiles: post-signup completion, the caller's
// own profile, and the admin user management surface.
package admin

import (
	"context"
	"errors"
	"time"

	"github.com/homefix/homefix-api/internal/platform/logging"
)

// Service errors
var (
	ErrNotFound    = errors.New("profile not found")
	ErrInvalidRole = errors.New("invalid role")
)

// Role is a user's marketplace role.
type Role string

// Roles. Admin grants access to the user management routes.
const (
	RoleCustomer Role = "customer"
	RoleProvider Role = "provider"
	RoleAdmin    Role = "admin"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleProvider, RoleAdmin:
		return true
	}
	return false
}

// Profile is a user profile document.
type Profile struct {
	UserID    string
	FullName  string
	Phone     string
	Role      Role
	AvatarURL string
	CreatedAt time.Time
}

// IsAdmin reports whether the profile grants admin access.
func (p *Profile) IsAdmin() bool {
	return p != nil && p.Role == RoleAdmin
}

// ProfilePatch carries partial updates; nil fields are left untouched.
type ProfilePatch struct {
	FullName *string
	Phone    *string
	Role     *Role
}

// Store is the profile persistence surface.
type Store interface {
	// Save creates or overwrites a profile keyed by user id.
	Save(ctx context.Context, p Profile) error
	// Get returns a profile or ErrNotFound.
	Get(ctx context.Context, userID string) (*Profile, error)
	// List returns all profiles, newest first.
	List(ctx context.Context) ([]Profile, error)
	// Update applies a patch to a profile, or ErrNotFound.
	Update(ctx context.Context, userID string, patch ProfilePatch) error
	// Delete removes a profile, or ErrNotFound.
	Delete(ctx context.Context, userID string) error
}

// DetailsEnsurer creates a provider's empty details row if none exists.
type DetailsEnsurer interface {
	EnsureDetails(ctx context.Context, userID string) error
}

// Service is the profile API consumed by the HTTP layer.
type Service interface {
	// Complete fills the profile after sign-up. The provider role also
	// creates the empty provider details row.
	Complete(ctx context.Context, userID, fullName, phone string, role Role) (*Profile, error)
	// ByUserID returns the caller's own profile, or ErrNotFound.
	ByUserID(ctx context.Context, userID string) (*Profile, error)
	// List returns all profiles, newest first.
	List(ctx context.Context) ([]Profile, error)
	// Update applies a patch; an invalid role is rejected before any write.
	Update(ctx context.Context, userID string, patch ProfilePatch) error
	// Delete removes a profile.
	Delete(ctx context.Context, userID string) error
}

// Manager implements Service over a Store.
type Manager struct {
	store   Store
	details DetailsEnsurer
}

// New constructs a Manager. details may be nil when provider onboarding is
// not wired.
func New(store Store, details DetailsEnsurer) *Manager {
	return &Manager{store: store, details: details}
}

// Complete fills the profile after sign-up.
func (m *Manager) Complete(ctx context.Context, userID, fullName, phone string, role Role) (*Profile, error) {
	if !role.Valid() {
		return nil, ErrInvalidRole
	}
	p := Profile{
		UserID:    userID,
		FullName:  fullName,
		Phone:     phone,
		Role:      role,
		CreatedAt: time.Now().UTC(),
	}
	if err := m.store.Save(ctx, p); err != nil {
		logging.LogAuditEvent(ctx, "create", userID, "profile", userID, "failure", nil)
		return nil, err
	}
	logging.LogAuditEvent(ctx, "create", userID, "profile", userID, "success",
		map[string]any{"role": string(role)})

	if role == RoleProvider && m.details != nil {
		if err := m.details.EnsureDetails(ctx, userID); err != nil {
			return nil, err
		}
	}
	return &p, nil
}

// ByUserID returns the caller's own profile.
func (m *Manager) ByUserID(ctx context.Context, userID string) (*Profile, error) {
	return m.store.Get(ctx, userID)
}

// List returns all profiles, newest first.
func (m *Manager) List(ctx context.Context) ([]Profile, error) {
	return m.store.List(ctx)
}

// Update applies a patch to a profile.
func (m *Manager) Update(ctx context.Context, userID string, patch ProfilePatch) error {
	if patch.Role != nil && !patch.Role.Valid() {
		return ErrInvalidRole
	}
	if err := m.store.Update(ctx, userID, patch); err != nil {
		logging.LogAuditEvent(ctx, "update", userID, "profile", userID, "failure", nil)
		return err
	}
	logging.LogAuditEvent(ctx, "update", userID, "profile", userID, "success", nil)
	return nil
}

// Delete removes a profile.
func (m *Manager) Delete(ctx context.Context, userID string) error {
	if err := m.store.Delete(ctx, userID); err != nil {
		logging.LogAuditEvent(ctx, "delete", userID, "profile", userID, "failure", nil)
		return err
	}
	logging.LogAuditEvent(ctx, "delete", userID, "profile", userID, "success", nil)
	return nil
}

// Compile-time interface check
var _ Service = (*Manager)(nil)
