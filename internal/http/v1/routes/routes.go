package routes

import (
	"github.com/danielgtaylor/huma/v2"

	adminhandler "github.com/homefix/homefix-api/internal/http/v1/admin"
	"github.com/homefix/homefix-api/internal/http/v1/categories"
	"github.com/homefix/homefix-api/internal/http/v1/conversations"
	"github.com/homefix/homefix-api/internal/http/v1/profile"
	"github.com/homefix/homefix-api/internal/http/v1/providers"
	"github.com/homefix/homefix-api/internal/platform/auth"
	adminsvc "github.com/homefix/homefix-api/internal/service/admin"
	catalogsvc "github.com/homefix/homefix-api/internal/service/catalog"
	chatsvc "github.com/homefix/homefix-api/internal/service/chat"
	providersvc "github.com/homefix/homefix-api/internal/service/provider"
)

// Services bundles the service layer handed to the route registry.
type Services struct {
	Catalog   catalogsvc.Service
	Directory providers.Directory
	Providers providersvc.Service
	Chat      chatsvc.Service
	Profiles  adminsvc.Service
}

// Register wires all HTTP routes into the provided API router.
func Register(api huma.API, verifier auth.Verifier, svcs Services) {
	// Apply auth middleware for protected endpoints
	api.UseMiddleware(auth.NewAuthMiddleware(api, verifier))

	categories.Register(api, svcs.Catalog)
	providers.Register(api, svcs.Directory, svcs.Providers, svcs.Profiles)
	conversations.Register(api, svcs.Chat)
	profile.Register(api, svcs.Profiles)
	adminhandler.Register(api, svcs.Profiles)
}
