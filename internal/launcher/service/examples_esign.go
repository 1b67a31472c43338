package service

import (
	"context"
	"fmt"
	"time"

	"github.com/aussiebroadwan/dslauncher/pkg/dsapi"
)

const defaultStatusLookback = 10 * 24 * time.Hour

func registerESignature(s *ExamplesService) {
	s.Register("esignature", "eg003", listStatusChanges)
	s.Register("esignature", "eg004", getEnvelope)
	s.Register("esignature", "eg005", listRecipients)
}

func listStatusChanges(ctx context.Context, req ExampleRequest, c *dsapi.Client) (any, error) {
	from := time.Now().Add(-defaultStatusLookback)
	if raw := req.Params["from_date"]; raw != "" {
		t, err := parseDate(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: from_date: %v", ErrInvalidParam, err)
		}
		from = t
	}
	return c.ListStatusChanges(ctx, req.Session.AccountID, from)
}

func getEnvelope(ctx context.Context, req ExampleRequest, c *dsapi.Client) (any, error) {
	return c.GetEnvelope(ctx, req.Session.AccountID, req.Params["envelope_id"])
}

func listRecipients(ctx context.Context, req ExampleRequest, c *dsapi.Client) (any, error) {
	return c.ListRecipients(ctx, req.Session.AccountID, req.Params["envelope_id"])
}

// parseDate accepts RFC 3339 timestamps and plain dates.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse(time.DateOnly, s)
}
