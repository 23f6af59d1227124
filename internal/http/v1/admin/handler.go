package admin

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/homefix/homefix-api/internal/platform/auth"
	"github.com/homefix/homefix-api/internal/platform/timeutil"
	adminsvc "github.com/homefix/homefix-api/internal/service/admin"
)

// Register registers the admin user management endpoints. Every route
// requires the admin role.
func Register(api huma.API, svc adminsvc.Service) {
	bearer := []map[string][]string{
		{"bearerAuth": {}},
	}

	huma.Register(api, huma.Operation{
		OperationID: "admin-list-users",
		Method:      http.MethodGet,
		Path:        "/admin/users",
		Summary:     "List all users",
		Description: "Returns every profile, newest first.",
		Tags:        []string{"Admin"},
		Security:    bearer,
	}, func(ctx context.Context, _ *ListUsersInput) (*ListUsersOutput, error) {
		if err := requireAdmin(ctx, svc); err != nil {
			return nil, err
		}

		profiles, err := svc.List(ctx)
		if err != nil {
			return nil, huma.Error500InternalServerError("internal error")
		}
		out := make([]User, len(profiles))
		for i, p := range profiles {
			out[i] = User{
				UserID:    p.UserID,
				FullName:  p.FullName,
				Phone:     p.Phone,
				Role:      string(p.Role),
				CreatedAt: timeutil.Time{Time: p.CreatedAt},
			}
		}
		return &ListUsersOutput{Body: ListUsersData{Users: out}}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "admin-update-user",
		Method:        http.MethodPatch,
		Path:          "/admin/users/{id}",
		Summary:       "Update a user",
		Description:   "Patches a user's name, phone, or role. Only provided fields change.",
		Tags:          []string{"Admin"},
		DefaultStatus: http.StatusNoContent,
		Security:      bearer,
	}, func(ctx context.Context, input *UpdateUserInput) (*struct{}, error) {
		if err := requireAdmin(ctx, svc); err != nil {
			return nil, err
		}

		var patch adminsvc.ProfilePatch
		patch.FullName = input.Body.FullName
		patch.Phone = input.Body.Phone
		if input.Body.Role != nil {
			role := adminsvc.Role(*input.Body.Role)
			patch.Role = &role
		}
		if err := svc.Update(ctx, input.ID, patch); err != nil {
			switch {
			case errors.Is(err, adminsvc.ErrNotFound):
				return nil, huma.Error404NotFound("user not found")
			case errors.Is(err, adminsvc.ErrInvalidRole):
				return nil, huma.Error422UnprocessableEntity("invalid role")
			default:
				return nil, huma.Error500InternalServerError("internal error")
			}
		}
		return nil, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "admin-delete-user",
		Method:        http.MethodDelete,
		Path:          "/admin/users/{id}",
		Summary:       "Delete a user",
		Description:   "Removes a user's profile.",
		Tags:          []string{"Admin"},
		DefaultStatus: http.StatusNoContent,
		Security:      bearer,
	}, func(ctx context.Context, input *DeleteUserInput) (*struct{}, error) {
		if err := requireAdmin(ctx, svc); err != nil {
			return nil, err
		}

		if err := svc.Delete(ctx, input.ID); err != nil {
			if errors.Is(err, adminsvc.ErrNotFound) {
				return nil, huma.Error404NotFound("user not found")
			}
			return nil, huma.Error500InternalServerError("internal error")
		}
		return nil, nil
	})
}

// requireAdmin resolves the caller's profile and checks the admin role.
func requireAdmin(ctx context.Context, svc adminsvc.Service) error {
	user := auth.UserFromContext(ctx)

	p, err := svc.ByUserID(ctx, user.UID)
	if err != nil {
		if errors.Is(err, adminsvc.ErrNotFound) {
			return huma.Error403Forbidden("admin access required")
		}
		return huma.Error500InternalServerError("internal error")
	}
	if !p.IsAdmin() {
		return huma.Error403Forbidden("admin access required")
	}
	return nil
}
