package profile

import (
	"context"
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
)

type countingEnsurer struct {
	calls int
}

func (c *countingEnsurer) EnsureDetails(_ context.Context, _ string) error {
	c.calls++
	return nil
}

func newTestRouter(store *adminsvc.MockStore, ensurer adminsvc.DetailsEnsurer) chi.Router {
	router := chi.NewRouter()
	router.Use(
		appmiddleware.RequestID(),
		chimiddleware.RealIP,
		applog.RequestLogger(),
		respond.Recoverer(),
	)
	api := humachi.New(router, huma.DefaultConfig("ProfileTest", "test"))
	verifier := &auth.MockVerifier{User: auth.TestUser()}
	api.UseMiddleware(auth.NewAuthMiddleware(api, verifier))
	Register(api, adminsvc.New(store, ensurer))
	return router
}

func TestGetProfileNotFound(t *testing.T) {
	router := newTestRouter(adminsvc.NewMockStore(), nil)

	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestGetProfileSuccess(t *testing.T) {
	store := adminsvc.NewMockStore()
	store.Seed(adminsvc.Profile{UserID: "test-user-123", FullName: "Sara Ali", Role: adminsvc.RoleCustomer})
	router := newTestRouter(store, nil)

	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var p Profile
	if err := json.Unmarshal(resp.Body.Bytes(), &p); err != nil {
		t.Fatalf("json unmarshal: %v", err)
	}
	if p.UserID != "test-user-123" || p.FullName != "Sara Ali" {
		t.Errorf("unexpected profile: %+v", p)
	}
}

func TestGetProfileUnauthorized(t *testing.T) {
	router := newTestRouter(adminsvc.NewMockStore(), nil)

	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func TestCompleteProfileCustomer(t *testing.T) {
	store := adminsvc.NewMockStore()
	ensurer := &countingEnsurer{}
	router := newTestRouter(store, ensurer)

	body := `{"fullName":"Sara Ali","phone":"0300","role":"customer"}`
	req := httptest.NewRequest(http.MethodPut, "/profile", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer valid-token")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var p Profile
	if err := json.Unmarshal(resp.Body.Bytes(), &p); err != nil {
		t.Fatalf("json unmarshal: %v", err)
	}
	if p.Role != "customer" || p.FullName != "Sara Ali" {
		t.Errorf("unexpected profile: %+v", p)
	}
	if ensurer.calls != 0 {
		t.Errorf("customer completion must not create a details row, got %d calls", ensurer.calls)
	}
}

func TestCompleteProfileProviderCreatesDetailsRow(t *testing.T) {
	store := adminsvc.NewMockStore()
	ensurer := &countingEnsurer{}
	router := newTestRouter(store, ensurer)

	body := `{"fullName":"Ahmad Khan","phone":"0301","role":"provider"}`
	req := httptest.NewRequest(http.MethodPut, "/profile", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer valid-token")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	if ensurer.calls != 1 {
		t.Errorf("provider completion must create a details row, got %d calls", ensurer.calls)
	}
}

func TestCompleteProfileRejectsAdminRole(t *testing.T) {
	router := newTestRouter(adminsvc.NewMockStore(), nil)

	// Admin is granted through the admin panel, never self-assigned.
	body := `{"fullName":"X","phone":"0","role":"admin"}`
	req := httptest.NewRequest(http.MethodPut, "/profile", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer valid-token")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", resp.Code, resp.Body.String())
	}
}
