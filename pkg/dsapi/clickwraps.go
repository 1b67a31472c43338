package dsapi

import (
	"context"
	"net/url"
)

type Clickwrap struct {
	ClickwrapID   string `json:"clickwrapId"`
	ClickwrapName string `json:"clickwrapName"`
	Status        string `json:"status"`
	VersionNumber string `json:"versionNumber,omitempty"`
	CreatedTime   string `json:"createdTime,omitempty"`
}

type Clickwraps struct {
	Clickwraps            []Clickwrap `json:"clickwraps"`
	Page                  int         `json:"page"`
	PageSize              int         `json:"pageSize"`
	MinimumPagesRemaining int         `json:"minimumPagesRemaining"`
}

// ListClickwraps calls the Click API. BaseURL must point at /clickapi.
func (c *Client) ListClickwraps(ctx context.Context, accountID string) (*Clickwraps, error) {
	var out Clickwraps
	if err := c.get(ctx, "/v1/accounts/"+url.PathEscape(accountID)+"/clickwraps", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
