package service

import (
	"context"

	"github.com/aussiebroadwan/dslauncher/pkg/dsapi"
)

func registerClick(s *ExamplesService) {
	s.Register("click", "eg004", func(ctx context.Context, req ExampleRequest, c *dsapi.Client) (any, error) {
		return c.ListClickwraps(ctx, req.Session.AccountID)
	})
}
