package categories

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"go.uber.org/zap"

	"github.com/homefix/homefix-api/internal/platform/logging"
	catalogsvc "github.com/homefix/homefix-api/internal/service/catalog"
)

// Register registers category endpoints.
func Register(api huma.API, svc catalogsvc.Service) {
	huma.Register(api, huma.Operation{
		OperationID: "list-categories",
		Method:      http.MethodGet,
		Path:        "/categories",
		Summary:     "List service categories",
		Description: "Returns all service categories for the browse grid.",
		Tags:        []string{"Categories"},
	}, func(ctx context.Context, _ *ListInput) (*ListOutput, error) {
		cats, err := svc.List(ctx)
		if err != nil {
			// The browse grid renders empty rather than erroring.
			logging.LogWarn(ctx, "category list fetch failed", zap.Error(err))
			cats = nil
		}

		out := make([]Category, len(cats))
		for i, c := range cats {
			out[i] = Category{ID: c.ID, Name: c.Name, Slug: c.Slug, Icon: c.Icon}
		}
		return &ListOutput{Body: ListData{Categories: out}}, nil
	})
}
