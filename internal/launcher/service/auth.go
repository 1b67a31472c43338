package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/aussiebroadwan/dslauncher/internal/launcher/domain"
	"github.com/aussiebroadwan/dslauncher/pkg/dsauth"
	"github.com/aussiebroadwan/dslauncher/pkg/slogx"
)

// LoginResult tells the caller where to send the browser next.
type LoginResult struct {
	RedirectURL string

	// Authenticated is set when the session already holds (or just
	// obtained) a usable token and RedirectURL is the return_to target.
	Authenticated bool

	// ConsentRequired is set when a JWT grant was refused for lack of
	// consent and RedirectURL is the consent page.
	ConsentRequired bool
}

// Strategy is one way of obtaining DocuSign tokens for a session. Strategies
// mutate the session in memory; persisting it is the caller's job.
type Strategy interface {
	Kind() domain.AuthType
	Login(ctx context.Context, sess *domain.Session, returnTo string) (LoginResult, error)
	Callback(ctx context.Context, sess *domain.Session, state, code string) (string, error)
	CheckToken(sess *domain.Session, buffer time.Duration) bool

	// Refresh renews the access token without user interaction, or returns
	// an error wrapping ErrReauthenticate when that is not possible.
	Refresh(ctx context.Context, sess *domain.Session) error

	Logout(ctx context.Context, sess *domain.Session) error
}

// grantBase holds what both strategies share: the account server client,
// account targeting and the pending request table.
type grantBase struct {
	Client          *dsauth.Client
	Scopes          []string
	TargetAccountID string
	Pending         *PendingRequests
	Metrics         *Metrics
}

func (g *grantBase) CheckToken(sess *domain.Session, buffer time.Duration) bool {
	return sess.CheckToken(buffer)
}

func (g *grantBase) Logout(ctx context.Context, sess *domain.Session) error {
	sess.ClearCredentials()
	return nil
}

// establish stores the token and runs account discovery.
func (g *grantBase) establish(ctx context.Context, sess *domain.Session, tok *dsauth.TokenResponse) error {
	info, err := g.Client.UserInfo(ctx, tok.AccessToken)
	if err != nil {
		return fmt.Errorf("userinfo: %w", err)
	}

	acct, err := SelectAccount(info, g.TargetAccountID)
	if err != nil {
		return err
	}

	applyToken(sess, tok)
	applyIdentity(sess, info, acct)

	slogx.FromContext(ctx).Info("docusign account selected",
		"auth_type", sess.AuthType,
		"account_id", acct.AccountID,
		"base_uri", acct.BaseURI,
	)
	return nil
}

func (g *grantBase) alreadyAuthenticated(sess *domain.Session, kind domain.AuthType) bool {
	return sess.AuthType == kind && sess.HasAccount() && sess.CheckToken(TokenReplaceMin)
}

// AuthService routes requests to the configured strategies.
type AuthService struct {
	Pending    *PendingRequests
	Logger     *slog.Logger
	strategies map[domain.AuthType]Strategy
	order      []domain.AuthType
}

func NewAuthService(pending *PendingRequests, logger *slog.Logger, strategies ...Strategy) *AuthService {
	s := &AuthService{
		Pending:    pending,
		Logger:     logger,
		strategies: make(map[domain.AuthType]Strategy, len(strategies)),
	}
	for _, st := range strategies {
		if _, dup := s.strategies[st.Kind()]; !dup {
			s.order = append(s.order, st.Kind())
		}
		s.strategies[st.Kind()] = st
	}
	return s
}

func (s *AuthService) Strategy(kind domain.AuthType) (Strategy, error) {
	st, ok := s.strategies[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAuthType, kind)
	}
	return st, nil
}

// AuthTypes lists the enabled strategies in registration order.
func (s *AuthService) AuthTypes() []domain.AuthType {
	return slices.Clone(s.order)
}

func (s *AuthService) Login(ctx context.Context, sess *domain.Session, kind domain.AuthType, returnTo string) (LoginResult, error) {
	st, err := s.Strategy(kind)
	if err != nil {
		return LoginResult{}, err
	}
	return st.Login(ctx, sess, returnTo)
}

// Callback finishes whatever login the session started. errCode is the
// "error" query parameter DocuSign adds when the user declines; the pending
// request is still consumed in that case.
func (s *AuthService) Callback(ctx context.Context, sess *domain.Session, state, code, errCode, errDesc string) (string, error) {
	if errCode != "" {
		if _, err := s.Pending.Consume(ctx, sess, "", state); err != nil {
			return "", err
		}
		return "", &dsauth.OAuth2Error{Code: errCode, Description: errDesc}
	}

	st, err := s.Strategy(sess.AuthType)
	if err != nil {
		return "", fmt.Errorf("%w: no login in progress", ErrInvalidState)
	}
	return st.Callback(ctx, sess, state, code)
}

// RequireToken makes sure the session's token is valid for at least buffer,
// refreshing it when the strategy can.
func (s *AuthService) RequireToken(ctx context.Context, sess *domain.Session, buffer time.Duration) error {
	st, err := s.Strategy(sess.AuthType)
	if err != nil {
		return ErrReauthenticate
	}
	if st.CheckToken(sess, buffer) && sess.HasAccount() {
		return nil
	}
	if sess.AccessToken == "" || !sess.HasAccount() {
		return ErrReauthenticate
	}

	if err := st.Refresh(ctx, sess); err != nil {
		slogx.FromContext(ctx).Info("token refresh failed", "auth_type", sess.AuthType, "error", err)
		if errors.Is(err, ErrReauthenticate) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrReauthenticate, err)
	}
	if !st.CheckToken(sess, buffer) {
		return ErrReauthenticate
	}
	return nil
}

func (s *AuthService) Logout(ctx context.Context, sess *domain.Session) error {
	if st, err := s.Strategy(sess.AuthType); err == nil {
		return st.Logout(ctx, sess)
	}
	sess.ClearCredentials()
	return nil
}
