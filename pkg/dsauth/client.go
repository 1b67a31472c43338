package dsauth

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

const (
	DemoOAuthServer       = "https://account-d.docusign.com"
	ProductionOAuthServer = "https://account.docusign.com"

	ScopeImpersonation = "impersonation"
)

// Client is a DocuSign account server client for one integration key.
type Client struct {
	OAuthServer  string
	ClientID     string // integration key
	ClientSecret string
	RedirectURL  string
	HTTPClient   *http.Client
}

// NewClient creates a client with a 10s HTTP timeout.
func NewClient(oauthServer, clientID, clientSecret, redirectURL string) *Client {
	return &Client{
		OAuthServer:  strings.TrimSuffix(oauthServer, "/"),
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURL,
		HTTPClient:   &http.Client{Timeout: 10 * time.Second},
	}
}

// Audience is the OAuth host without scheme, used as the JWT "aud" claim.
func (c *Client) Audience() string {
	u, err := url.Parse(c.OAuthServer)
	if err != nil || u.Host == "" {
		return strings.TrimPrefix(strings.TrimPrefix(c.OAuthServer, "https://"), "http://")
	}
	return u.Host
}

func (c *Client) url(path string) string {
	return c.OAuthServer + path
}

func (c *Client) oauthConfig(scopes []string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     c.ClientID,
		ClientSecret: c.ClientSecret,
		RedirectURL:  c.RedirectURL,
		Scopes:       scopes,
		Endpoint: oauth2.Endpoint{
			AuthURL:   c.url("/oauth/auth"),
			TokenURL:  c.url("/oauth/token"),
			AuthStyle: oauth2.AuthStyleInHeader,
		},
	}
}

// oauthContext hands our HTTP client to x/oauth2.
func (c *Client) oauthContext(ctx context.Context) context.Context {
	if c.HTTPClient == nil {
		return ctx
	}
	return context.WithValue(ctx, oauth2.HTTPClient, c.HTTPClient)
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}
