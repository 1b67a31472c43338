// Package dsauthtest provides an in-process fake of the DocuSign account
// server for tests.
package dsauthtest

import (
	"crypto/rsa"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"

	"github.com/aussiebroadwan/dslauncher/pkg/dsauth"
	"github.com/golang-jwt/jwt/v5"
)

type pendingCode struct {
	userID    string
	challenge string
	scope     string
}

// Server is a fake account server. Users have to be added with AddUser
// before they can log in or be impersonated.
type Server struct {
	*httptest.Server

	ClientID     string
	ClientSecret string

	mu        sync.Mutex
	publicKey *rsa.PublicKey
	audience  string
	expiresIn int
	seq       int
	users     map[string]dsauth.UserInfo
	consented map[string]bool
	codes     map[string]pendingCode
	access    map[string]string
	refresh   map[string]string
	grants    map[string]int
}

// New starts a fake account server. Call Close when done.
func New(clientID, clientSecret string) *Server {
	s := &Server{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		expiresIn:    3600,
		users:        map[string]dsauth.UserInfo{},
		consented:    map[string]bool{},
		codes:        map[string]pendingCode{},
		access:       map[string]string{},
		refresh:      map[string]string{},
		grants:       map[string]int{},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /oauth/token", s.handleToken)
	mux.HandleFunc("GET /oauth/userinfo", s.handleUserInfo)
	s.Server = httptest.NewServer(mux)
	return s
}

// SetPublicKey registers the integration's RSA key for JWT grants.
func (s *Server) SetPublicKey(pub *rsa.PublicKey) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.publicKey = pub
}

// SetExpiresIn changes the lifetime of tokens issued from now on.
func (s *Server) SetExpiresIn(seconds int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expiresIn = seconds
}

// AddUser registers a user. Sub must be set.
func (s *Server) AddUser(info dsauth.UserInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[info.Sub] = info
}

// GrantConsent marks userID as having consented to impersonation.
func (s *Server) GrantConsent(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.consented[userID] = true
}

// Grants reports how many tokens were issued per grant type.
func (s *Server) Grants(grantType string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.grants[grantType]
}

// SetAudience overrides the expected assertion audience, for clients that
// reach the server through another host name (e.g. from a container).
func (s *Server) SetAudience(aud string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.audience = aud
}

// ExpireAccessTokens invalidates every issued access token.
func (s *Server) ExpireAccessTokens() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.access)
}

// Authorize plays the part of the browser: it reads an /oauth/auth URL,
// logs userID in and returns the code and state the server would redirect
// back with.
func (s *Server) Authorize(authURL, userID string) (code, state string, err error) {
	u, err := url.Parse(authURL)
	if err != nil {
		return "", "", err
	}
	q := u.Query()
	if q.Get("client_id") != s.ClientID {
		return "", "", fmt.Errorf("dsauthtest: unexpected client_id %q", q.Get("client_id"))
	}
	if q.Get("response_type") != "code" {
		return "", "", fmt.Errorf("dsauthtest: unexpected response_type %q", q.Get("response_type"))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[userID]; !ok {
		return "", "", fmt.Errorf("dsauthtest: unknown user %q", userID)
	}
	if strings.Contains(q.Get("scope"), dsauth.ScopeImpersonation) {
		s.consented[userID] = true
	}

	s.seq++
	code = fmt.Sprintf("code-%d", s.seq)
	s.codes[code] = pendingCode{userID: userID, challenge: q.Get("code_challenge"), scope: q.Get("scope")}
	return code, q.Get("state"), nil
}

func (s *Server) handleToken(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, dsauth.ErrorCodeInvalidRequest, "bad form")
		return
	}

	switch gt := r.PostForm.Get("grant_type"); gt {
	case "authorization_code":
		if !s.checkClient(r) {
			writeError(w, http.StatusUnauthorized, dsauth.ErrorCodeInvalidClient, "")
			return
		}
		s.grantCode(w, r.PostForm.Get("code"), r.PostForm.Get("code_verifier"))
	case "refresh_token":
		if !s.checkClient(r) {
			writeError(w, http.StatusUnauthorized, dsauth.ErrorCodeInvalidClient, "")
			return
		}
		s.grantRefresh(w, r.PostForm.Get("refresh_token"))
	case dsauth.GrantTypeJWTBearer:
		s.grantJWT(w, r.PostForm.Get("assertion"))
	default:
		writeError(w, http.StatusBadRequest, dsauth.ErrorCodeUnsupportedGrantType, gt)
	}
}

func (s *Server) checkClient(r *http.Request) bool {
	id, secret, ok := r.BasicAuth()
	return ok && id == s.ClientID && secret == s.ClientSecret
}

func (s *Server) grantCode(w http.ResponseWriter, code, verifier string) {
	s.mu.Lock()
	p, ok := s.codes[code]
	delete(s.codes, code)
	s.mu.Unlock()

	if !ok {
		writeError(w, http.StatusBadRequest, dsauth.ErrorCodeInvalidGrant, "unknown code")
		return
	}
	if p.challenge != "" {
		sum := sha256.Sum256([]byte(verifier))
		if base64.RawURLEncoding.EncodeToString(sum[:]) != p.challenge {
			writeError(w, http.StatusBadRequest, dsauth.ErrorCodeInvalidGrant, "code_verifier mismatch")
			return
		}
	}
	s.issue(w, "authorization_code", p.userID, p.scope, true)
}

func (s *Server) grantRefresh(w http.ResponseWriter, rt string) {
	s.mu.Lock()
	userID, ok := s.refresh[rt]
	s.mu.Unlock()

	if !ok {
		writeError(w, http.StatusBadRequest, dsauth.ErrorCodeInvalidGrant, "unknown refresh token")
		return
	}
	s.issue(w, "refresh_token", userID, "", true)
}

func (s *Server) grantJWT(w http.ResponseWriter, assertion string) {
	s.mu.Lock()
	pub, audience := s.publicKey, s.audience
	s.mu.Unlock()
	if audience == "" {
		audience = strings.TrimPrefix(s.URL, "http://")
	}
	if pub == nil {
		writeError(w, http.StatusBadRequest, dsauth.ErrorCodeNoValidKeys, "no public key registered")
		return
	}

	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(assertion, claims,
		func(*jwt.Token) (any, error) { return pub, nil },
		jwt.WithValidMethods([]string{"RS256"}),
		jwt.WithIssuer(s.ClientID),
	)
	if err != nil {
		writeError(w, http.StatusBadRequest, dsauth.ErrorCodeNoValidKeys, err.Error())
		return
	}
	if aud, _ := claims["aud"].(string); aud != audience {
		writeError(w, http.StatusBadRequest, dsauth.ErrorCodeInvalidGrant, "bad audience")
		return
	}

	sub, _ := claims["sub"].(string)
	scope, _ := claims["scope"].(string)

	s.mu.Lock()
	_, known := s.users[sub]
	consented := s.consented[sub]
	s.mu.Unlock()

	switch {
	case !known:
		writeError(w, http.StatusBadRequest, dsauth.ErrorCodeUserNotFound, "")
	case !consented:
		writeError(w, http.StatusBadRequest, dsauth.ErrorCodeConsentRequired, "")
	default:
		s.issue(w, dsauth.GrantTypeJWTBearer, sub, scope, false)
	}
}

func (s *Server) issue(w http.ResponseWriter, grant, userID, scope string, withRefresh bool) {
	s.mu.Lock()
	s.seq++
	resp := dsauth.TokenResponse{
		AccessToken: fmt.Sprintf("at-%d", s.seq),
		TokenType:   "Bearer",
		ExpiresIn:   s.expiresIn,
		Scope:       scope,
	}
	s.access[resp.AccessToken] = userID
	if withRefresh {
		resp.RefreshToken = fmt.Sprintf("rt-%d", s.seq)
		s.refresh[resp.RefreshToken] = userID
	}
	s.grants[grant]++
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUserInfo(w http.ResponseWriter, r *http.Request) {
	token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")

	s.mu.Lock()
	userID, ok := s.access[token]
	info := s.users[userID]
	s.mu.Unlock()

	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "")
		return
	}
	writeJSON(w, http.StatusOK, info)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, errCode, desc string) {
	writeJSON(w, code, dsauth.ErrorResponse{Error: errCode, ErrorDescription: desc})
}
