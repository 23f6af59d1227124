package providers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	humachi "github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/homefix/homefix-api/internal/platform/auth"
	applog "github.com/homefix/homefix-api/internal/platform/logging"
	appmiddleware "github.com/homefix/homefix-api/internal/platform/middleware"
	"github.com/homefix/homefix-api/internal/platform/respond"
	adminsvc "github.com/homefix/homefix-api/internal/service/admin"
	catalogsvc "github.com/homefix/homefix-api/internal/service/catalog"
	directorysvc "github.com/homefix/homefix-api/internal/service/directory"
	providersvc "github.com/homefix/homefix-api/internal/service/provider"
)

func ptr[T any](v T) *T { return &v }

type fixtures struct {
	providers *providersvc.MockProviderService
	profiles  *adminsvc.MockStore
}

func newTestRouter(t *testing.T) (chi.Router, *fixtures) {
	t.Helper()

	catalog := &catalogsvc.MockCatalogService{Categories: []catalogsvc.Category{
		{ID: "cat1", Name: "Plumber", Slug: "plumber"},
	}}
	store := &directorysvc.MockStore{
		Details: []directorysvc.Details{
			{UserID: "p1", Description: "Pipes and drains", Lat: ptr(33.6844), Lng: ptr(73.0479)},
			{UserID: "p2"},
		},
		Profiles: map[string]directorysvc.Profile{
			"p1": {UserID: "p1", FullName: "Ahmad Khan", Phone: "0300"},
		},
		Labels: map[string][]string{"p1": {"Plumber"}},
		Links:  map[string][]string{"cat1": {"p1"}},
	}
	dir := directorysvc.New(store, catalog, 4)

	providers := providersvc.NewMockProviderService()
	profiles := adminsvc.NewMockStore()

	router := chi.NewRouter()
	router.Use(
		appmiddleware.RequestID(),
		chimiddleware.RealIP,
		applog.RequestLogger(),
		respond.Recoverer(),
	)
	api := humachi.New(router, huma.DefaultConfig("ProvidersTest", "test"))
	verifier := &auth.MockVerifier{User: auth.TestUser()}
	api.UseMiddleware(auth.NewAuthMiddleware(api, verifier))
	Register(api, dir, providers, adminsvc.New(profiles, nil))

	return router, &fixtures{providers: providers, profiles: profiles}
}

func TestListProviders(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/providers", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var body ListData
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("json unmarshal: %v", err)
	}
	if len(body.Providers) != 2 {
		t.Fatalf("expected 2 providers, got %d", len(body.Providers))
	}
	byID := map[string]Summary{}
	for _, p := range body.Providers {
		byID[p.ID] = p
	}
	if byID["p1"].Name != "Ahmad Khan" || byID["p1"].Distance != "Nearby" {
		t.Errorf("join not applied: %+v", byID["p1"])
	}
	if byID["p2"].Name != "Unknown" || byID["p2"].Category != "General" ||
		byID["p2"].Distance != "Unknown" || byID["p2"].Description != "No description provided" {
		t.Errorf("defaults not applied: %+v", byID["p2"])
	}
}

func TestListProvidersUnknownSlugEmpty(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/providers?category=welder", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var body ListData
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("json unmarshal: %v", err)
	}
	if len(body.Providers) != 0 {
		t.Errorf("unknown slug must yield empty list, got %+v", body.Providers)
	}
}

func TestNearbyProviders(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/providers/nearby?lat=33.6844&lng=73.0479", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var body NearbyData
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("json unmarshal: %v", err)
	}
	// p2 has no coordinates and must not rank.
	if len(body.Providers) != 1 || body.Providers[0].ID != "p1" {
		t.Fatalf("expected only p1, got %+v", body.Providers)
	}
	if body.Providers[0].DistanceKm != 0 {
		t.Errorf("expected zero distance at the same point, got %f", body.Providers[0].DistanceKm)
	}
}

func TestNearbyProvidersMissingCoordinates(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/providers/nearby", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestMapProvidersExcludesUnlocated(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/providers/map", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var body MapData
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("json unmarshal: %v", err)
	}
	if len(body.Providers) != 1 || body.Providers[0].ID != "p1" {
		t.Errorf("expected only the located provider, got %+v", body.Providers)
	}
}

func TestGetProviderNotFound(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/providers/ghost", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestGetProviderSuccess(t *testing.T) {
	router, f := newTestRouter(t)
	f.providers.Put(&providersvc.PublicProfile{
		UserID:   "p1",
		FullName: "Ahmad Khan",
		Phone:    "0300",
		Details: providersvc.Details{
			UserID:          "p1",
			Description:     "Pipes and drains",
			ExperienceYears: 7,
			Available:       true,
		},
		Categories: []string{"Plumber"},
	})

	req := httptest.NewRequest(http.MethodGet, "/providers/p1", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var body PublicProfile
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("json unmarshal: %v", err)
	}
	if body.Name != "Ahmad Khan" || body.ExperienceYears != 7 || !body.Available {
		t.Errorf("unexpected profile: %+v", body)
	}
}

func TestUpdateDetailsRequiresAuth(t *testing.T) {
	router, _ := newTestRouter(t)

	body := `{"description":"x","experienceYears":1,"categoryIds":[]}`
	req := httptest.NewRequest(http.MethodPut, "/provider/details", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func TestUpdateDetailsRequiresProviderRole(t *testing.T) {
	router, f := newTestRouter(t)
	f.profiles.Seed(adminsvc.Profile{UserID: "test-user-123", Role: adminsvc.RoleCustomer})

	body := `{"description":"x","experienceYears":1,"categoryIds":[]}`
	req := httptest.NewRequest(http.MethodPut, "/provider/details", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer valid-token")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestUpdateDetailsSuccess(t *testing.T) {
	router, f := newTestRouter(t)
	f.profiles.Seed(adminsvc.Profile{UserID: "test-user-123", Role: adminsvc.RoleProvider})

	body := `{"description":"Wiring and fixtures","experienceYears":5,"lat":33.7,"lng":73.0,"categoryIds":["cat1"]}`
	req := httptest.NewRequest(http.MethodPut, "/provider/details", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer valid-token")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d: %s", resp.Code, resp.Body.String())
	}

	p, err := f.providers.Get(req.Context(), "test-user-123")
	if err != nil {
		t.Fatalf("details row not created: %v", err)
	}
	if p.Details.Description != "Wiring and fixtures" || !p.Details.Available {
		t.Errorf("setup not applied: %+v", p.Details)
	}
}

func TestAvailabilityToggle(t *testing.T) {
	router, f := newTestRouter(t)
	f.profiles.Seed(adminsvc.Profile{UserID: "test-user-123", Role: adminsvc.RoleProvider})
	f.providers.Put(&providersvc.PublicProfile{
		UserID:  "test-user-123",
		Details: providersvc.Details{UserID: "test-user-123", Available: true},
	})

	req := httptest.NewRequest(http.MethodPut, "/provider/availability", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer valid-token")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var body AvailabilityData
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("json unmarshal: %v", err)
	}
	if body.Available {
		t.Error("expected toggle to flip true to false")
	}
}

func TestAvailabilityExplicitSet(t *testing.T) {
	router, f := newTestRouter(t)
	f.profiles.Seed(adminsvc.Profile{UserID: "test-user-123", Role: adminsvc.RoleProvider})
	f.providers.Put(&providersvc.PublicProfile{
		UserID:  "test-user-123",
		Details: providersvc.Details{UserID: "test-user-123", Available: false},
	})

	req := httptest.NewRequest(http.MethodPut, "/provider/availability", strings.NewReader(`{"available":true}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer valid-token")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var body AvailabilityData
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("json unmarshal: %v", err)
	}
	if !body.Available {
		t.Error("expected persisted value true")
	}
}

func TestAvailabilityMissingDetailsRow(t *testing.T) {
	router, f := newTestRouter(t)
	f.profiles.Seed(adminsvc.Profile{UserID: "test-user-123", Role: adminsvc.RoleProvider})

	req := httptest.NewRequest(http.MethodPut, "/provider/availability", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer valid-token")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", resp.Code, resp.Body.String())
	}
}
