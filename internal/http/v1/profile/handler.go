package profile

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/homefix/homefix-api/internal/platform/auth"
	"github.com/homefix/homefix-api/internal/platform/timeutil"
	adminsvc "github.com/homefix/homefix-api/internal/service/admin"
)

// Register registers the caller's own profile endpoints.
func Register(api huma.API, svc adminsvc.Service) {
	huma.Register(api, huma.Operation{
		OperationID: "get-profile",
		Method:      http.MethodGet,
		Path:        "/profile",
		Summary:     "Get own profile",
		Description: "Returns the authenticated user's profile.",
		Tags:        []string{"Profile"},
		Security: []map[string][]string{
			{"bearerAuth": {}},
		},
	}, func(ctx context.Context, _ *GetInput) (*GetOutput, error) {
		user := auth.UserFromContext(ctx)

		p, err := svc.ByUserID(ctx, user.UID)
		if err != nil {
			if errors.Is(err, adminsvc.ErrNotFound) {
				return nil, huma.Error404NotFound("profile not found")
			}
			return nil, huma.Error500InternalServerError("internal error")
		}
		return &GetOutput{Body: toHTTPProfile(p)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "complete-profile",
		Method:      http.MethodPut,
		Path:        "/profile",
		Summary:     "Complete own profile",
		Description: "Fills the profile after sign-up. The provider role also creates an empty provider details row.",
		Tags:        []string{"Profile"},
		Security: []map[string][]string{
			{"bearerAuth": {}},
		},
	}, func(ctx context.Context, input *CompleteInput) (*CompleteOutput, error) {
		user := auth.UserFromContext(ctx)

		p, err := svc.Complete(ctx, user.UID, input.Body.FullName, input.Body.Phone, adminsvc.Role(input.Body.Role))
		if err != nil {
			if errors.Is(err, adminsvc.ErrInvalidRole) {
				return nil, huma.Error422UnprocessableEntity("invalid role")
			}
			return nil, huma.Error500InternalServerError("internal error")
		}
		return &CompleteOutput{Body: toHTTPProfile(p)}, nil
	})
}

func toHTTPProfile(p *adminsvc.Profile) Profile {
	return Profile{
		UserID:    p.UserID,
		FullName:  p.FullName,
		Phone:     p.Phone,
		Role:      string(p.Role),
		AvatarURL: p.AvatarURL,
		CreatedAt: timeutil.Time{Time: p.CreatedAt},
	}
}
