package http_test

import (
	"context"
	"crypto/rsa"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/aussiebroadwan/dslauncher/internal/launcher/catalog"
	launcherhttp "github.com/aussiebroadwan/dslauncher/internal/launcher/http"
	"github.com/aussiebroadwan/dslauncher/internal/launcher/service"
	"github.com/aussiebroadwan/dslauncher/internal/launcher/store/drivers/sqlite"
	"github.com/aussiebroadwan/dslauncher/pkg/cryptox"
	"github.com/aussiebroadwan/dslauncher/pkg/dsapi"
	"github.com/aussiebroadwan/dslauncher/pkg/dsapi/dsapitest"
	"github.com/aussiebroadwan/dslauncher/pkg/dsauth"
	"github.com/aussiebroadwan/dslauncher/pkg/dsauth/dsauthtest"
	"github.com/aussiebroadwan/dslauncher/pkg/jwtx"
	"github.com/aussiebroadwan/dslauncher/pkg/launchersdk"
	"github.com/stretchr/testify/require"
)

const (
	clientID  = "ik-http-test"
	secret    = "shh"
	userGUID  = "0b7d3c1e-aaaa-4bbb-8ccc-ddddeeeeffff"
	accountID = "acc-main"
)

type testServer struct {
	URL    string
	ds     *dsauthtest.Server
	api    *dsapitest.Server
	router *launcherhttp.Router
}

func newTestServer(t *testing.T) *testServer {
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
		dsapi.Envelope{EnvelopeID: "env-1", Status: "sent", EmailSubject: "Please sign"},
		dsapi.Recipients{Signers: []dsapi.Recipient{{RecipientID: "1", Name: "Bo", Email: "bo@example.com", Status: "sent"}}},
	)

	ds := dsauthtest.New(clientID, secret)
	t.Cleanup(ds.Close)
	ds.SetPublicKey(signer.(interface{ PublicKey() *rsa.PublicKey }).PublicKey())
	ds.AddUser(dsauth.UserInfo{
		Sub:   userGUID,
		Name:  "Bo Example",
		Email: "bo@example.com",
		Accounts: []dsauth.AccountInfo{
			{AccountID: accountID, AccountName: "Main", IsDefault: true, BaseURI: api.URL},
		},
	})

	sealer, err := cryptox.NewSealer([]byte("http test secret for sealing!!!!"))
	require.NoError(t, err)

	cat := catalog.Default()
	scopes, err := cat.Scopes("esignature", "click")
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	client := dsauth.NewClient(ds.URL, clientID, secret, "http://launcher.test/ds/callback")
	metrics := service.NewMetrics()
	pending := &service.PendingRequests{Store: st}

	auth := service.NewAuthService(pending, logger,
		service.NewAuthCodeGrant(client, pending, scopes, "", metrics),
		service.NewJWTGrant(client, pending, signer, userGUID, scopes, "", metrics),
	)

	r := launcherhttp.NewRouter("test", st, logger)
	r.AuthService = auth
	r.SessionService = &service.SessionService{Store: st, Sealer: sealer}
	r.ExamplesService = service.NewExamplesService(cat, auth, nil, metrics)
	r.Metrics = metrics
	r.SecureCookies = false
	r.ApplyRoutes()

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	return &testServer{URL: srv.URL, ds: ds, api: api, router: r}
}

func (s *testServer) client() *launchersdk.Client {
	return launchersdk.NewClient(s.URL)
}

// loginWithCode runs the authorization code flow through the launcher.
func (s *testServer) loginWithCode(t *testing.T, c *launchersdk.Client) {
	t.Helper()
	ctx := context.Background()

	loc, err := c.Login(ctx, "code", "/v1/session")
	require.NoError(t, err)
	require.Contains(t, loc, s.ds.URL+"/oauth/auth")

	code, state, err := s.ds.Authorize(loc, userGUID)
	require.NoError(t, err)

	returnTo, err := c.Callback(ctx, code, state)
	require.NoError(t, err)
	require.Equal(t, "/v1/session", returnTo)
}

func stateOf(t *testing.T, authURL string) string {
	t.Helper()
	u, err := url.Parse(authURL)
	require.NoError(t, err)
	return u.Query().Get("state")
}

func get(t *testing.T, rawURL string) *http.Response {
	t.Helper()
	resp, err := http.Get(rawURL)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func body(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}
