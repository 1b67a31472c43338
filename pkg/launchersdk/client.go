package launchersdk

import (
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"
)

// Client talks to one launcher instance. It keeps the session cookie in its
// jar and does not follow redirects, so login steps can be observed.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient returns a client with an empty cookie jar.
func NewClient(baseURL string) *Client {
	jar, _ := cookiejar.New(nil) // never fails with nil options
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
			Jar:     jar,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}
