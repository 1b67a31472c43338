package launchersdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// ExamplePath is the launcher path of one example.
func ExamplePath(api, code string) string {
	return "/v1/examples/" + url.PathEscape(api) + "/" + url.PathEscape(code)
}

// Catalog lists every API and example the launcher knows about.
func (c *Client) Catalog(ctx context.Context) (*CatalogResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/v1/examples", nil, nil)
	if err != nil {
		return nil, err
	}

	var out CatalogResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// Example describes one example's inputs.
func (c *Client) Example(ctx context.Context, api, code string) (*ExampleResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, ExamplePath(api, code), nil, nil)
	if err != nil {
		return nil, err
	}

	var out ExampleResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// RunExample runs an example with the given parameters.
func (c *Client) RunExample(ctx context.Context, api, code string, params map[string]string) (*RunResponse, error) {
	if params == nil {
		params = map[string]string{}
	}
	body, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("failed to encode params: %w", err)
	}

	resp, err := c.doRequest(ctx, http.MethodPost, ExamplePath(api, code), bytes.NewReader(body),
		map[string]string{"Content-Type": "application/json"})
	if err != nil {
		return nil, err
	}

	var out RunResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}
