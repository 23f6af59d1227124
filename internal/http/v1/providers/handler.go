package providers

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/homefix/homefix-api/internal/platform/auth"
	"github.com/homefix/homefix-api/internal/platform/timeutil"
	adminsvc "github.com/homefix/homefix-api/internal/service/admin"
	directorysvc "github.com/homefix/homefix-api/internal/service/directory"
	providersvc "github.com/homefix/homefix-api/internal/service/provider"
)

// Directory is the read side consumed by the listing routes.
type Directory interface {
	List(ctx context.Context, categorySlug string) []directorysvc.Summary
	Nearby(ctx context.Context, lat, lng float64, limit int) []directorysvc.Ranked
	MapProviders(ctx context.Context) []directorysvc.MapProvider
}

// Register registers provider listing, public page, and self-service routes.
func Register(api huma.API, dir Directory, svc providersvc.Service, profiles adminsvc.Service) {
	huma.Register(api, huma.Operation{
		OperationID: "list-providers",
		Method:      http.MethodGet,
		Path:        "/providers",
		Summary:     "List providers",
		Description: "Returns provider cards for the search page, optionally filtered by category slug. An unknown slug yields an empty list.",
		Tags:        []string{"Providers"},
	}, func(ctx context.Context, input *ListInput) (*ListOutput, error) {
		rows := dir.List(ctx, input.Category)
		out := make([]Summary, len(rows))
		for i, r := range rows {
			out[i] = Summary{
				ID:          r.ID,
				Name:        r.Name,
				Phone:       r.Phone,
				Category:    r.CategoryLabel,
				Distance:    r.DistanceLabel,
				Description: r.Description,
				Available:   r.Available,
			}
		}
		return &ListOutput{Body: ListData{Providers: out}}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "nearby-providers",
		Method:      http.MethodGet,
		Path:        "/providers/nearby",
		Summary:     "Rank providers by proximity",
		Description: "Returns available, located providers ranked by ascending approximate distance from the requester.",
		Tags:        []string{"Providers"},
	}, func(ctx context.Context, input *NearbyInput) (*NearbyOutput, error) {
		rows := dir.Nearby(ctx, input.Lat, input.Lng, input.Limit)
		out := make([]RankedProvider, len(rows))
		for i, r := range rows {
			out[i] = RankedProvider{
				ID:         r.ID,
				Name:       r.Name,
				Category:   r.CategoryLabel,
				DistanceKm: r.DistanceKm,
				Available:  r.Available,
			}
		}
		return &NearbyOutput{Body: NearbyData{Providers: out}}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "map-providers",
		Method:      http.MethodGet,
		Path:        "/providers/map",
		Summary:     "List providers for the map view",
		Description: "Returns every available provider with a location, as map markers.",
		Tags:        []string{"Providers"},
	}, func(ctx context.Context, _ *MapInput) (*MapOutput, error) {
		rows := dir.MapProviders(ctx)
		out := make([]MapMarker, len(rows))
		for i, r := range rows {
			out[i] = MapMarker{
				ID:          r.ID,
				Name:        r.Name,
				Phone:       r.Phone,
				Description: r.Description,
				Lat:         r.Lat,
				Lng:         r.Lng,
				Available:   r.Available,
				Categories:  r.Categories,
			}
		}
		return &MapOutput{Body: MapData{Providers: out}}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-provider",
		Method:      http.MethodGet,
		Path:        "/providers/{id}",
		Summary:     "Get a provider's public page",
		Description: "Returns the joined public profile for a provider.",
		Tags:        []string{"Providers"},
	}, func(ctx context.Context, input *GetInput) (*GetOutput, error) {
		p, err := svc.Get(ctx, input.ID)
		if err != nil {
			if errors.Is(err, providersvc.ErrNotFound) {
				return nil, huma.Error404NotFound("provider not found")
			}
			return nil, huma.Error500InternalServerError("internal error")
		}
		return &GetOutput{Body: PublicProfile{
			ID:              p.UserID,
			Name:            p.FullName,
			Phone:           p.Phone,
			AvatarURL:       p.AvatarURL,
			Description:     p.Details.Description,
			ExperienceYears: p.Details.ExperienceYears,
			Available:       p.Details.Available,
			Categories:      p.Categories,
			MemberSince:     timeutil.Time{Time: p.Details.CreatedAt},
		}}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "update-provider-details",
		Method:        http.MethodPut,
		Path:          "/provider/details",
		Summary:       "Update own service profile",
		Description:   "Writes the caller's service description, experience, location, and category links, and marks them available.",
		Tags:          []string{"Providers"},
		DefaultStatus: http.StatusNoContent,
		Security: []map[string][]string{
			{"bearerAuth": {}},
		},
	}, func(ctx context.Context, input *DetailsUpdateInput) (*struct{}, error) {
		user := auth.UserFromContext(ctx)
		if err := requireProviderRole(ctx, profiles, user.UID); err != nil {
			return nil, err
		}

		if err := svc.EnsureDetails(ctx, user.UID); err != nil {
			return nil, huma.Error500InternalServerError("internal error")
		}
		err := svc.Setup(ctx, user.UID, providersvc.SetupParams{
			Description:     input.Body.Description,
			ExperienceYears: input.Body.ExperienceYears,
			Lat:             input.Body.Lat,
			Lng:             input.Body.Lng,
			CategoryIDs:     input.Body.CategoryIDs,
		})
		if err != nil {
			return nil, huma.Error500InternalServerError("internal error")
		}
		return nil, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "set-provider-availability",
		Method:      http.MethodPut,
		Path:        "/provider/availability",
		Summary:     "Set or toggle own availability",
		Description: "Persists the online flag. Omitting the desired state toggles the current one. The response carries the persisted value; callers must not assume the flip before it returns.",
		Tags:        []string{"Providers"},
		Security: []map[string][]string{
			{"bearerAuth": {}},
		},
	}, func(ctx context.Context, input *AvailabilityInput) (*AvailabilityOutput, error) {
		user := auth.UserFromContext(ctx)
		if err := requireProviderRole(ctx, profiles, user.UID); err != nil {
			return nil, err
		}

		var (
			value bool
			err   error
		)
		if input.Body.Available != nil {
			value = *input.Body.Available
			err = svc.SetAvailability(ctx, user.UID, value)
		} else {
			value, err = svc.Toggle(ctx, user.UID)
		}
		if err != nil {
			if errors.Is(err, providersvc.ErrNotFound) {
				return nil, huma.Error404NotFound("provider details not found")
			}
			return nil, huma.Error500InternalServerError("internal error")
		}
		return &AvailabilityOutput{Body: AvailabilityData{Available: value}}, nil
	})
}

// requireProviderRole gates the self-service routes to the provider role.
func requireProviderRole(ctx context.Context, profiles adminsvc.Service, userID string) error {
	p, err := profiles.ByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, adminsvc.ErrNotFound) {
			return huma.Error403Forbidden("provider role required")
		}
		return huma.Error500InternalServerError("internal error")
	}
	if p.Role != adminsvc.RoleProvider {
		return huma.Error403Forbidden("provider role required")
	}
	return nil
}
