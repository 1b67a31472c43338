package service_test

import (
	"context"
	"crypto/rsa"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"

	"github.com/aussiebroadwan/dslauncher/internal/launcher/catalog"
	"github.com/aussiebroadwan/dslauncher/internal/launcher/domain"
	"github.com/aussiebroadwan/dslauncher/internal/launcher/service"
	"github.com/aussiebroadwan/dslauncher/internal/launcher/store/drivers/sqlite"
	"github.com/aussiebroadwan/dslauncher/pkg/cryptox"
	"github.com/aussiebroadwan/dslauncher/pkg/dsapi"
	"github.com/aussiebroadwan/dslauncher/pkg/dsapi/dsapitest"
	"github.com/aussiebroadwan/dslauncher/pkg/dsauth"
	"github.com/aussiebroadwan/dslauncher/pkg/dsauth/dsauthtest"
	"github.com/aussiebroadwan/dslauncher/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

const (
	clientID  = "ik-service-test"
	secret    = "shh"
	redirect  = "http://localhost:3000/ds/callback"
	userGUID  = "2f1a4c7e-1111-4222-8333-444455556666"
	accountID = "acc-default"
)

type env struct {
	store    *sqlite.Store
	ds       *dsauthtest.Server
	api      *dsapitest.Server
	metrics  *service.Metrics
	pending  *service.PendingRequests
	sessions *service.SessionService
	code     *service.AuthCodeGrant
	jwt      *service.JWTGrant
	auth     *service.AuthService
	examples *service.ExamplesService
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newEnv(t *testing.T) *env {
	t.Helper()

	st, err := sqlite.NewStore("file::memory:?_pragma=foreign_keys(1)")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	pemKey, err := cryptox.GenerateRSAKey(2048)
	require.NoError(t, err)
	signer, err := jwtx.NewSignerRS256("", pemKey)
	require.NoError(t, err)

	api := dsapitest.New()
	t.Cleanup(api.Close)
	api.AddEnvelope(accountID,
		dsapi.Envelope{EnvelopeID: "env-1", Status: "completed", EmailSubject: "Contract"},
		dsapi.Recipients{Signers: []dsapi.Recipient{{RecipientID: "1", Name: "Ann", Email: "ann@example.com", Status: "completed"}}},
	)
	api.AddClickwrap(accountID, dsapi.Clickwrap{ClickwrapID: "cw-1", ClickwrapName: "Terms of Service", Status: "active"})

	ds := dsauthtest.New(clientID, secret)
	t.Cleanup(ds.Close)
	ds.SetPublicKey(signer.(interface{ PublicKey() *rsa.PublicKey }).PublicKey())
	ds.AddUser(dsauth.UserInfo{
		Sub:   userGUID,
		Name:  "Ann Example",
		Email: "ann@example.com",
		Accounts: []dsauth.AccountInfo{
			{AccountID: "acc-other", AccountName: "Sandbox", BaseURI: "https://other.invalid"},
			{AccountID: accountID, AccountName: "Main", IsDefault: true, BaseURI: api.URL},
		},
	})

	sealer, err := cryptox.NewSealer([]byte("test secret for sealing tokens!!"))
	require.NoError(t, err)

	cat := catalog.Default()
	scopes, err := cat.Scopes("esignature", "click")
	require.NoError(t, err)

	client := dsauth.NewClient(ds.URL, clientID, secret, redirect)
	metrics := service.NewMetrics()
	pending := &service.PendingRequests{Store: st}

	e := &env{
		store:    st,
		ds:       ds,
		api:      api,
		metrics:  metrics,
		pending:  pending,
		sessions: &service.SessionService{Store: st, Sealer: sealer},
		code:     service.NewAuthCodeGrant(client, pending, scopes, "", metrics),
		jwt:      service.NewJWTGrant(client, pending, signer, userGUID, scopes, "", metrics),
	}
	e.auth = service.NewAuthService(pending, quietLogger(), e.code, e.jwt)
	e.examples = service.NewExamplesService(cat, e.auth, nil, metrics)
	return e
}

func (e *env) newSession(t *testing.T) *domain.Session {
	t.Helper()
	sess, _, err := e.sessions.Create(context.Background())
	require.NoError(t, err)
	return sess
}

// loginWithCode runs the whole authorization code flow for sess.
func (e *env) loginWithCode(t *testing.T, sess *domain.Session) {
	t.Helper()
	ctx := context.Background()

	res, err := e.auth.Login(ctx, sess, domain.AuthTypeCode, "/after")
	require.NoError(t, err)
	require.False(t, res.Authenticated)

	code, state, err := e.ds.Authorize(res.RedirectURL, userGUID)
	require.NoError(t, err)

	returnTo, err := e.auth.Callback(ctx, sess, state, code, "", "")
	require.NoError(t, err)
	require.Equal(t, "/after", returnTo)
}

func (e *env) scrape(t *testing.T) string {
	t.Helper()
	rec := httptest.NewRecorder()
	e.metrics.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	return rec.Body.String()
}
