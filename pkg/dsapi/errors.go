package dsapi

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// APIError is the error body the eSignature and Click APIs return.
type APIError struct {
	StatusCode int    `json:"-"`
	ErrorCode  string `json:"errorCode"`
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("docusign api %d %s: %s", e.StatusCode, e.ErrorCode, e.Message)
}

// Unauthorized reports whether the token was rejected, in which case the
// caller should send the user back through login.
func (e *APIError) Unauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized
}

func parseAPIError(status int, body []byte) error {
	apiErr := &APIError{StatusCode: status}
	if err := json.Unmarshal(body, apiErr); err != nil || apiErr.ErrorCode == "" {
		apiErr.ErrorCode = "HTTP_ERROR"
		apiErr.Message = http.StatusText(status)
	}
	return apiErr
}
