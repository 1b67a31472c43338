package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/aussiebroadwan/dslauncher/internal/launcher/domain"
	"github.com/aussiebroadwan/dslauncher/internal/launcher/service"
	"github.com/aussiebroadwan/dslauncher/pkg/httpx"
	"github.com/aussiebroadwan/dslauncher/pkg/launchersdk"
	"github.com/aussiebroadwan/dslauncher/pkg/slogx"
)

// SessionCookie carries the session token. The server only stores its
// fingerprint.
const SessionCookie = "ds_session"

type sessionKey struct{}

// SessionFromContext returns the session loaded by SessionMiddleware, or nil.
func SessionFromContext(ctx context.Context) *domain.Session {
	sess, _ := ctx.Value(sessionKey{}).(*domain.Session)
	return sess
}

// SessionMiddleware resolves the ds_session cookie.
type SessionMiddleware struct {
	Sessions *service.SessionService
	Secure   bool
}

// Load puts the caller's session in the request context. With create set a
// missing, expired or unreadable session is replaced by a fresh one and the
// cookie is (re)issued; otherwise the handler sees a nil session.
func (m *SessionMiddleware) Load(create bool) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			var token string
			if c, err := r.Cookie(SessionCookie); err == nil {
				token = c.Value
			}

			sess, err := m.Sessions.Load(ctx, token)
			if err != nil {
				if !errors.Is(err, service.ErrNoSession) {
					log.Warn("session unreadable, discarding", "error", err)
				}
				sess = nil
			}

			if sess == nil && create {
				sess, token, err = m.Sessions.Create(ctx)
				if err != nil {
					log.Error("failed to create session", "error", err)
					httpx.WriteJSON(w, http.StatusInternalServerError, launchersdk.ErrorResponse{
						Error:            launchersdk.CodeServerError,
						ErrorDescription: "Failed to create session",
					})
					return
				}
				m.setCookie(w, token)
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(ctx, sessionKey{}, sess)))
		})
	}
}

// setCookie issues a browser-session cookie. Lax is required so the cookie
// survives the top level redirect back from DocuSign.
func (m *SessionMiddleware) setCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   m.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// saveSession persists sess, writing a 500 and returning false on failure.
func saveSession(w http.ResponseWriter, r *http.Request, sessions *service.SessionService, sess *domain.Session) bool {
	if err := sessions.Save(r.Context(), sess); err != nil {
		slogx.FromContext(r.Context()).Error("failed to save session", "error", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, launchersdk.ErrorResponse{
			Error:            launchersdk.CodeServerError,
			ErrorDescription: "Failed to save session",
		})
		return false
	}
	return true
}

// SessionHandler reports the caller's session.
type SessionHandler struct {
	Auth *service.AuthService
}

// ServeHTTP handles the session summary endpoint
//
//	@Summary		Current session
//	@Description	Returns the logged in DocuSign user and selected account. Tokens are never included.
//	@Description	Callers without a session get authenticated=false.
//	@Tags			Session
//	@Produce		json
//	@Success		200	{object}	launchersdk.SessionResponse	"Session summary"
//	@Security		SessionCookie
//	@Router			/v1/session [get].
func (h *SessionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	sess := SessionFromContext(r.Context())
	if sess == nil {
		httpx.WriteJSON(w, http.StatusOK, launchersdk.SessionResponse{TokenState: string(domain.TokenNone)})
		return
	}

	state := sess.TokenStateAt(time.Now(), service.MinimumBuffer)
	resp := launchersdk.SessionResponse{
		Authenticated:  state == domain.TokenValid && sess.HasAccount(),
		AuthType:       string(sess.AuthType),
		TokenState:     string(state),
		TokenExpiresAt: sess.TokenExpiresAt,
		ExpiresAt:      sess.ExpiresAt,
	}
	if sess.UserID != "" {
		resp.User = &launchersdk.SessionUser{ID: sess.UserID, Name: sess.UserName, Email: sess.UserEmail}
	}
	if sess.HasAccount() {
		resp.Account = &launchersdk.SessionAccount{ID: sess.AccountID, Name: sess.AccountName, BaseURI: sess.BaseURI}
	}

	httpx.WriteJSON(w, http.StatusOK, resp)
}
