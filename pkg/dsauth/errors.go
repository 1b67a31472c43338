package dsauth

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/oauth2"
)

// OAuth2 error codes. The first block is RFC 6749, the rest are returned by
// the DocuSign account server for JWT grants.
const (
	ErrorCodeInvalidRequest       = "invalid_request"
	ErrorCodeInvalidClient        = "invalid_client"
	ErrorCodeInvalidGrant         = "invalid_grant"
	ErrorCodeUnauthorizedClient   = "unauthorized_client"
	ErrorCodeUnsupportedGrantType = "unsupported_grant_type"
	ErrorCodeInvalidScope         = "invalid_scope"
	ErrorCodeAccessDenied         = "access_denied"
	ErrorCodeServerError          = "server_error"

	ErrorCodeConsentRequired = "consent_required"
	ErrorCodeUserNotFound    = "user_not_found"
	ErrorCodeNoValidKeys     = "no_valid_keys_or_signatures"
	ErrorCodeIssuerNotFound  = "issuer_not_found"
)

// OAuth2Error is an error returned by the account server.
type OAuth2Error struct {
	StatusCode  int    `json:"-"`
	Code        string `json:"error"`
	Description string `json:"error_description"`
}

func (e *OAuth2Error) Error() string {
	if e.Description == "" {
		return e.Code
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// Is matches any OAuth2Error with the same code, so
// errors.Is(err, ErrConsentRequired) works regardless of status or description.
func (e *OAuth2Error) Is(target error) bool {
	t, ok := target.(*OAuth2Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

var (
	ErrConsentRequired = &OAuth2Error{StatusCode: http.StatusBadRequest, Code: ErrorCodeConsentRequired}
	ErrAccessDenied    = &OAuth2Error{StatusCode: http.StatusForbidden, Code: ErrorCodeAccessDenied}
	ErrInvalidGrant    = &OAuth2Error{StatusCode: http.StatusBadRequest, Code: ErrorCodeInvalidGrant}
)

// ErrMissingKey is returned when a JWT grant is attempted without a signer.
var ErrMissingKey = errors.New("dsauth: no private key configured for JWT grant")

// parseErrorResponse turns a non-2xx response body into a typed error.
func parseErrorResponse(status int, body []byte) error {
	if status >= 200 && status < 300 {
		return nil
	}

	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		return &OAuth2Error{
			StatusCode:  status,
			Code:        errResp.Error,
			Description: errResp.ErrorDescription,
		}
	}

	return &OAuth2Error{
		StatusCode:  status,
		Code:        ErrorCodeServerError,
		Description: fmt.Sprintf("HTTP %d: %s", status, http.StatusText(status)),
	}
}

// fromRetrieveError maps errors from x/oauth2 onto OAuth2Error. Transport
// errors pass through unchanged.
func fromRetrieveError(err error) error {
	var re *oauth2.RetrieveError
	if !errors.As(err, &re) {
		return err
	}

	status := http.StatusBadGateway
	if re.Response != nil {
		status = re.Response.StatusCode
	}
	if re.ErrorCode != "" {
		return &OAuth2Error{StatusCode: status, Code: re.ErrorCode, Description: re.ErrorDescription}
	}
	// DocuSign sometimes answers with a text/html body on 5xx.
	if body := strings.TrimSpace(string(re.Body)); strings.HasPrefix(body, "{") {
		return parseErrorResponse(status, re.Body)
	}
	return parseErrorResponse(status, nil)
}
