package launchersdk

import (
	"context"
	"net/http"
	"net/url"
)

// LoginPath is the launcher path that starts a login with authType.
func LoginPath(authType, returnTo string) string {
	q := url.Values{}
	q.Set("auth", authType)
	if returnTo != "" {
		q.Set("return_to", returnTo)
	}
	return "/ds/login?" + q.Encode()
}

// Login starts a login and returns where the browser would go next: the
// DocuSign authorization or consent page, or returnTo when the session is
// already (or has just been) authenticated.
func (c *Client) Login(ctx context.Context, authType, returnTo string) (string, error) {
	return c.Redirect(ctx, LoginPath(authType, returnTo))
}

// Callback delivers the authorization response DocuSign would have sent to
// the redirect URI, and returns the login's return_to.
func (c *Client) Callback(ctx context.Context, code, state string) (string, error) {
	q := url.Values{}
	q.Set("code", code)
	q.Set("state", state)
	return c.Redirect(ctx, "/ds/callback?"+q.Encode())
}

// Deny delivers an authorization error (e.g. access_denied) to the callback.
func (c *Client) Deny(ctx context.Context, state, errCode string) (string, error) {
	q := url.Values{}
	q.Set("state", state)
	q.Set("error", errCode)
	return c.Redirect(ctx, "/ds/callback?"+q.Encode())
}

// Logout clears the session's DocuSign credentials.
func (c *Client) Logout(ctx context.Context) error {
	_, err := c.Redirect(ctx, "/ds/logout")
	return err
}

// Redirect GETs a launcher path that answers with 302 and returns the
// Location header.
func (c *Client) Redirect(ctx context.Context, path string) (string, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return "", err
	}
	return location(resp)
}

// MustAuthenticate lists the enabled login strategies.
func (c *Client) MustAuthenticate(ctx context.Context, returnTo string) (*MustAuthenticateResponse, error) {
	path := "/ds/mustAuthenticate"
	if returnTo != "" {
		path += "?" + url.Values{"return_to": {returnTo}}.Encode()
	}
	resp, err := c.doRequest(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}

	var out MustAuthenticateResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// Session returns the current session summary.
func (c *Client) Session(ctx context.Context) (*SessionResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/v1/session", nil, nil)
	if err != nil {
		return nil, err
	}

	var out SessionResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}
