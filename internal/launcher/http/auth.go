package http

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/aussiebroadwan/dslauncher/internal/launcher/domain"
	"github.com/aussiebroadwan/dslauncher/internal/launcher/service"
	"github.com/aussiebroadwan/dslauncher/pkg/dsauth"
	"github.com/aussiebroadwan/dslauncher/pkg/httpx"
	"github.com/aussiebroadwan/dslauncher/pkg/launchersdk"
	"github.com/aussiebroadwan/dslauncher/pkg/slogx"
)

var authTitles = map[domain.AuthType]string{
	domain.AuthTypeCode: "Authorization Code Grant",
	domain.AuthTypeJWT:  "JWT Grant",
}

type AuthHandler struct {
	Auth            *service.AuthService
	Sessions        *service.SessionService
	DefaultReturnTo string
}

// HandleLogin starts a DocuSign login
//
//	@Summary		Start login
//	@Description	Starts the Authorization Code Grant (auth=code) or JWT Grant (auth=jwt) for the session.
//	@Description	Redirects to DocuSign, to the consent page when the JWT Grant lacks consent,
//	@Description	or straight to return_to when the session already holds a usable token.
//	@Description	Without auth and with more than one strategy enabled, redirects to /ds/mustAuthenticate.
//	@Tags			Auth
//	@Produce		json
//	@Param			auth		query	string	false	"code or jwt"
//	@Param			return_to	query	string	false	"Local path to land on afterwards"
//	@Success		302
//	@Failure		400	{object}	launchersdk.ErrorResponse	"Unknown auth type"
//	@Failure		409	{object}	launchersdk.ErrorResponse	"Target account not available to the user"
//	@Failure		502	{object}	launchersdk.ErrorResponse	"DocuSign account server error"
//	@Router			/ds/login [get].
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()
	sess := SessionFromContext(ctx)
	returnTo := safeReturnTo(q.Get("return_to"), h.DefaultReturnTo)

	raw := q.Get("auth")
	if raw == "" {
		types := h.Auth.AuthTypes()
		if len(types) != 1 {
			httpx.NoCache(w)
			http.Redirect(w, r, mustAuthenticatePath(returnTo), http.StatusFound)
			return
		}
		raw = string(types[0])
	}
	kind, ok := domain.ParseAuthType(raw)
	if !ok {
		httpx.WriteJSON(w, http.StatusBadRequest, launchersdk.ErrorResponse{
			Error:            launchersdk.CodeUnknownAuthType,
			ErrorDescription: "auth must be one of: code, jwt",
		})
		return
	}

	res, err := h.Auth.Login(ctx, sess, kind, returnTo)
	if !saveSession(w, r, h.Sessions, sess) {
		return
	}
	if err != nil {
		writeAuthError(w, r, err)
		return
	}

	slogx.FromContext(ctx).Info("login",
		"auth_type", kind,
		"authenticated", res.Authenticated,
		"consent_required", res.ConsentRequired,
	)
	httpx.NoCache(w)
	http.Redirect(w, r, res.RedirectURL, http.StatusFound)
}

// HandleCallback finishes a login
//
//	@Summary		Login callback
//	@Description	Redirect URI registered with DocuSign. Completes the Authorization Code Grant,
//	@Description	or retries the JWT Grant after the user granted consent, then redirects to the
//	@Description	return_to given at login.
//	@Tags			Auth
//	@Produce		json
//	@Param			state				query	string	true	"State issued at login"
//	@Param			code				query	string	false	"Authorization code"
//	@Param			error				query	string	false	"Error code from DocuSign"
//	@Param			error_description	query	string	false	"Error description from DocuSign"
//	@Success		302
//	@Failure		400	{object}	launchersdk.ErrorResponse	"Unknown, expired or reused state"
//	@Failure		403	{object}	launchersdk.ErrorResponse	"User denied access or consent"
//	@Failure		409	{object}	launchersdk.ErrorResponse	"Target account not available to the user"
//	@Failure		502	{object}	launchersdk.ErrorResponse	"DocuSign account server error"
//	@Router			/ds/callback [get].
func (h *AuthHandler) HandleCallback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()
	sess := SessionFromContext(ctx)

	returnTo, err := h.Auth.Callback(ctx, sess, q.Get("state"), q.Get("code"), q.Get("error"), q.Get("error_description"))
	if !saveSession(w, r, h.Sessions, sess) {
		return
	}
	if err != nil {
		writeAuthError(w, r, err)
		return
	}

	slogx.FromContext(ctx).Info("login complete", "auth_type", sess.AuthType, "account_id", sess.AccountID)
	httpx.NoCache(w)
	http.Redirect(w, r, safeReturnTo(returnTo, h.DefaultReturnTo), http.StatusFound)
}

// HandleLogout clears the session's DocuSign credentials
//
//	@Summary		Logout
//	@Description	Forgets the DocuSign tokens, user and account held by the session.
//	@Tags			Auth
//	@Param			return_to	query	string	false	"Local path to land on afterwards"
//	@Success		302
//	@Security		SessionCookie
//	@Router			/ds/logout [get].
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	returnTo := safeReturnTo(r.URL.Query().Get("return_to"), "/ds/mustAuthenticate")

	if sess := SessionFromContext(ctx); sess != nil {
		if err := h.Auth.Logout(ctx, sess); err != nil {
			slogx.FromContext(ctx).Warn("logout failed", "error", err)
		}
		if !saveSession(w, r, h.Sessions, sess) {
			return
		}
	}

	httpx.NoCache(w)
	http.Redirect(w, r, returnTo, http.StatusFound)
}

// HandleMustAuthenticate lists the login options
//
//	@Summary		Login options
//	@Description	Lists the enabled login strategies with a ready made login URL for each.
//	@Tags			Auth
//	@Produce		json
//	@Param			return_to	query		string	false	"Local path to land on after login"
//	@Success		200			{object}	launchersdk.MustAuthenticateResponse
//	@Router			/ds/mustAuthenticate [get].
func (h *AuthHandler) HandleMustAuthenticate(w http.ResponseWriter, r *http.Request) {
	returnTo := safeReturnTo(r.URL.Query().Get("return_to"), h.DefaultReturnTo)

	resp := launchersdk.MustAuthenticateResponse{ReturnTo: returnTo}
	for _, kind := range h.Auth.AuthTypes() {
		resp.AuthTypes = append(resp.AuthTypes, launchersdk.AuthTypeInfo{
			Type:     string(kind),
			Title:    authTitles[kind],
			LoginURL: launchersdk.LoginPath(string(kind), returnTo),
		})
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

func mustAuthenticatePath(returnTo string) string {
	return "/ds/mustAuthenticate?" + url.Values{"return_to": {returnTo}}.Encode()
}

// safeReturnTo only accepts local absolute paths, so login cannot be used as
// an open redirect.
func safeReturnTo(raw, def string) string {
	if raw == "" || !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") || strings.ContainsAny(raw, "\\\r\n") {
		return def
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return def
	}
	return raw
}

// writeAuthError maps login and callback failures to responses.
func writeAuthError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		status = http.StatusBadGateway
		body   = launchersdk.ErrorResponse{
			Error:            launchersdk.CodeUpstreamError,
			ErrorDescription: "DocuSign login failed",
		}
		oauthErr *dsauth.OAuth2Error
	)

	switch {
	case errors.Is(err, service.ErrInvalidState):
		status = http.StatusBadRequest
		body = launchersdk.ErrorResponse{
			Error:            launchersdk.CodeInvalidState,
			ErrorDescription: "Login request is unknown, expired or was already used",
		}
	case errors.Is(err, service.ErrUnknownAuthType):
		status = http.StatusBadRequest
		body = launchersdk.ErrorResponse{
			Error:            launchersdk.CodeUnknownAuthType,
			ErrorDescription: "That login method is not enabled",
		}
	case errors.Is(err, dsauth.ErrAccessDenied):
		status = http.StatusForbidden
		body = launchersdk.ErrorResponse{Error: launchersdk.CodeAccessDenied, ErrorDescription: "Access was denied"}
	case errors.Is(err, dsauth.ErrConsentRequired):
		status = http.StatusForbidden
		body = launchersdk.ErrorResponse{
			Error:            launchersdk.CodeConsentRequired,
			ErrorDescription: "Consent to impersonation was not granted",
		}
	case errors.Is(err, service.ErrTargetAccountNotFound), errors.Is(err, service.ErrNoDefaultAccount):
		status = http.StatusConflict
		body = launchersdk.ErrorResponse{Error: launchersdk.CodeAccountNotFound, ErrorDescription: err.Error()}
	default:
		slogx.FromContext(r.Context()).Error("docusign login failed", "error", err)
	}

	if errors.As(err, &oauthErr) && oauthErr.Description != "" && status != http.StatusBadGateway {
		body.ErrorDescription = oauthErr.Description
	}
	httpx.WriteJSON(w, status, body)
}
