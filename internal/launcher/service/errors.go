package service

import (
	"errors"
	"time"
)

var (
	ErrInvalidState          = errors.New("invalid_state")
	ErrUnknownAuthType       = errors.New("unknown_auth_type")
	ErrReauthenticate        = errors.New("reauthenticate")
	ErrTargetAccountNotFound = errors.New("target_account_not_found")
	ErrNoDefaultAccount      = errors.New("no_default_account")
	ErrNotImplemented        = errors.New("not_implemented")
	ErrJWTRequired           = errors.New("jwt_required")
	ErrNoSession             = errors.New("no_session")
	ErrInvalidParam          = errors.New("invalid_param")
)

const (
	// TokenReplaceMin is how long a token must still be valid for a login
	// request to be answered with "already authenticated".
	TokenReplaceMin = 10 * time.Minute

	// MinimumBuffer is the least remaining lifetime an example call accepts.
	MinimumBuffer = 3 * time.Minute

	// JWTLife is the lifetime of a JWT grant assertion.
	JWTLife = 10 * time.Minute

	DefaultAuthRequestTTL = 10 * time.Minute
	DefaultSessionTTL     = 24 * time.Hour
)
