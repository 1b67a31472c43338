package launchersdk

import (
	"encoding/json"
	"time"
)

// ============================================================================
// Errors
// ============================================================================

// ErrorResponse is the JSON body of every error the launcher writes.
type ErrorResponse struct {
	// Error is a machine readable code, e.g. "reauthenticate".
	Error string `json:"error"`

	ErrorDescription string `json:"error_description,omitempty"`

	// LoginURL is set when the caller has to (re)authenticate first.
	LoginURL string `json:"login_url,omitempty"`
}

// ============================================================================
// Authentication
// ============================================================================

// AuthTypeInfo describes one enabled login strategy.
type AuthTypeInfo struct {
	// Type is "code" (Authorization Code Grant) or "jwt" (JWT Grant).
	Type string `json:"type" example:"code"`

	Title string `json:"title" example:"Authorization Code Grant"`

	// LoginURL starts this strategy and comes back to ReturnTo.
	LoginURL string `json:"login_url" example:"/ds/login?auth=code&return_to=%2Fv1%2Fsession"`
}

// MustAuthenticateResponse is returned by GET /ds/mustAuthenticate.
type MustAuthenticateResponse struct {
	ReturnTo  string         `json:"return_to"`
	AuthTypes []AuthTypeInfo `json:"auth_types"`
}

// ============================================================================
// Session
// ============================================================================

// SessionResponse summarises the caller's session. Tokens are never included.
type SessionResponse struct {
	Authenticated bool `json:"authenticated"`

	AuthType string `json:"auth_type,omitempty" example:"jwt"`

	// TokenState is "none", "valid" or "expiring".
	TokenState     string     `json:"token_state" example:"valid"`
	TokenExpiresAt *time.Time `json:"token_expires_at,omitempty"`

	User    *SessionUser    `json:"user,omitempty"`
	Account *SessionAccount `json:"account,omitempty"`

	ExpiresAt time.Time `json:"expires_at"`
}

type SessionUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type SessionAccount struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	BaseURI string `json:"base_uri" example:"https://demo.docusign.net"`
}

// ============================================================================
// Examples
// ============================================================================

// CatalogResponse is returned by GET /v1/examples.
type CatalogResponse struct {
	APIs []APIInfo `json:"apis"`
}

// APIInfo is one DocuSign API family and its examples.
type APIInfo struct {
	Name     string        `json:"name" example:"esignature"`
	Title    string        `json:"title" example:"eSignature"`
	Scopes   []string      `json:"scopes"`
	JWTOnly  bool          `json:"jwt_only,omitempty"`
	Examples []ExampleInfo `json:"examples"`
}

// ExampleInfo describes one example and its inputs.
type ExampleInfo struct {
	Code        string      `json:"code" example:"eg003"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Params      []ParamInfo `json:"params,omitempty"`

	// Implemented is false for catalog entries that only describe an
	// example; running them returns 501.
	Implemented bool `json:"implemented"`

	Path string `json:"path" example:"/v1/examples/esignature/eg003"`
}

type ParamInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Required    bool   `json:"required,omitempty"`
}

// ExampleResponse is returned by GET /v1/examples/{api}/{code}.
type ExampleResponse struct {
	API      string      `json:"api"`
	APITitle string      `json:"api_title"`
	JWTOnly  bool        `json:"jwt_only,omitempty"`
	Example  ExampleInfo `json:"example"`
}

// RunResponse is returned by POST /v1/examples/{api}/{code}. Result is the
// DocuSign API response, passed through unchanged.
type RunResponse struct {
	API     string          `json:"api"`
	Example string          `json:"example"`
	Title   string          `json:"title"`
	Result  json.RawMessage `json:"result" swaggertype:"object"`
}

// ============================================================================
// Health
// ============================================================================

// HealthResponse is returned by /livez and /readyz (the latter with Checks).
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime,omitempty"`
	Version string        `json:"version,omitempty"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

type HealthChecks struct {
	Database string `json:"database"`

	// Auth reports whether at least one login strategy is configured.
	Auth string `json:"auth"`
}
