package dsauth

import "time"

// TokenResponse is the account server's token endpoint response.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	Scope        string `json:"scope,omitempty"`

	// Expiry is computed locally when the response is received.
	Expiry time.Time `json:"-"`
}

// UserInfo is the response of GET /oauth/userinfo.
type UserInfo struct {
	Sub        string        `json:"sub"`
	Name       string        `json:"name"`
	GivenName  string        `json:"given_name"`
	FamilyName string        `json:"family_name"`
	Email      string        `json:"email"`
	Accounts   []AccountInfo `json:"accounts"`
}

// AccountInfo is one account the user belongs to.
type AccountInfo struct {
	AccountID    string        `json:"account_id"`
	IsDefault    bool          `json:"is_default"`
	AccountName  string        `json:"account_name"`
	BaseURI      string        `json:"base_uri"`
	Organization *Organization `json:"organization,omitempty"`
}

type Organization struct {
	OrganizationID string `json:"organization_id"`
	Links          []struct {
		Rel  string `json:"rel"`
		Href string `json:"href"`
	} `json:"links,omitempty"`
}

// ErrorResponse is the standard OAuth2 error body.
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description,omitempty"`
}
