package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	_ "github.com/danielgtaylor/huma/v2/formats/cbor"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/homefix/homefix-api/internal/platform/auth"
	applog "github.com/homefix/homefix-api/internal/platform/logging"
	appmiddleware "github.com/homefix/homefix-api/internal/platform/middleware"
	"github.com/homefix/homefix-api/internal/platform/respond"
	adminsvc "github.com/homefix/homefix-api/internal/service/admin"
	catalogsvc "github.com/homefix/homefix-api/internal/service/catalog"
	chatsvc "github.com/homefix/homefix-api/internal/service/chat"
	directorysvc "github.com/homefix/homefix-api/internal/service/directory"
	providersvc "github.com/homefix/homefix-api/internal/service/provider"
)

func newTestRouter() chi.Router {
	router := chi.NewRouter()
	router.Use(
		appmiddleware.RequestID(),
		chimiddleware.RealIP,
		applog.RequestLogger(),
		respond.Recoverer(),
	)
	api := humachi.New(router, huma.DefaultConfig("RoutesTest", "test"))

	catalog := &catalogsvc.MockCatalogService{}
	dir := directorysvc.New(&directorysvc.MockStore{}, catalog, 4)
	Register(api, &auth.MockVerifier{User: auth.TestUser()}, Services{
		Catalog:   catalog,
		Directory: dir,
		Providers: providersvc.NewMockProviderService(),
		Chat:      chatsvc.NewMockChatService(),
		Profiles:  adminsvc.New(adminsvc.NewMockStore(), nil),
	})
	return router
}

func TestRegisterRoutesCategories(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/categories", nil)
	req.Header.Set(chimiddleware.RequestIDHeader, "routes-categories")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
}

func TestRegisterRoutesProviders(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/providers", nil)
	req.Header.Set(chimiddleware.RequestIDHeader, "routes-providers")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
}

func TestRegisterRoutesProtectedRequireAuth(t *testing.T) {
	router := newTestRouter()

	for _, path := range []string{"/conversations", "/conversations/c1/stream", "/profile", "/admin/users"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)

		if resp.Code != http.StatusUnauthorized {
			t.Errorf("%s: expected 401 without a token, got %d", path, resp.Code)
		}
	}
}
