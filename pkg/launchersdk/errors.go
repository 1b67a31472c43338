package launchersdk

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Error codes written by the launcher.
const (
	CodeInvalidRequest    = "invalid_request"
	CodeInvalidState      = "invalid_state"
	CodeUnknownAuthType   = "unknown_auth_type"
	CodeAccessDenied      = "access_denied"
	CodeConsentRequired   = "consent_required"
	CodeAccountNotFound   = "account_not_found"
	CodeReauthenticate    = "reauthenticate"
	CodeJWTRequired       = "jwt_required"
	CodeNotFound          = "not_found"
	CodeNotImplemented    = "not_implemented"
	CodeUpstreamError     = "upstream_error"
	CodeServerError       = "server_error"
	CodeRateLimitExceeded = "rate_limit_exceeded"
)

// Error is a non-success response from the launcher.
type Error struct {
	StatusCode  int
	Code        string
	Description string
	LoginURL    string
}

func (e *Error) Error() string {
	if e.Description == "" {
		return fmt.Sprintf("launcher %d: %s", e.StatusCode, e.Code)
	}
	return fmt.Sprintf("launcher %d: %s: %s", e.StatusCode, e.Code, e.Description)
}

// Reauthenticate reports whether the session has to log in again.
func (e *Error) Reauthenticate() bool {
	return e.Code == CodeReauthenticate
}

func parseErrorResponse(resp *http.Response, body []byte) error {
	var er ErrorResponse
	if err := json.Unmarshal(body, &er); err != nil || er.Error == "" {
		return &Error{
			StatusCode:  resp.StatusCode,
			Code:        CodeServerError,
			Description: http.StatusText(resp.StatusCode),
		}
	}
	return &Error{
		StatusCode:  resp.StatusCode,
		Code:        er.Error,
		Description: er.ErrorDescription,
		LoginURL:    er.LoginURL,
	}
}
