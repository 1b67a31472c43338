// Package dsapitest provides a fake eSignature and Click API for tests.
// eSignature calls are served under /restapi and Click calls under
// /clickapi, so the server URL can stand in for an account base_uri.
package dsapitest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"

	"github.com/aussiebroadwan/dslauncher/pkg/dsapi"
)

type envelope struct {
	dsapi.Envelope
	recipients dsapi.Recipients
}

type Server struct {
	*httptest.Server

	mu         sync.Mutex
	authorize  func(token string) bool
	envelopes  map[string][]envelope
	clickwraps map[string][]dsapi.Clickwrap
	calls      int
}

func New() *Server {
	s := &Server{
		envelopes:  map[string][]envelope{},
		clickwraps: map[string][]dsapi.Clickwrap{},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /restapi/v2.1/accounts/{account}/envelopes", s.auth(s.listEnvelopes))
	mux.HandleFunc("GET /restapi/v2.1/accounts/{account}/envelopes/{id}", s.auth(s.getEnvelope))
	mux.HandleFunc("GET /restapi/v2.1/accounts/{account}/envelopes/{id}/recipients", s.auth(s.listRecipients))
	mux.HandleFunc("GET /clickapi/v1/accounts/{account}/clickwraps", s.auth(s.listClickwraps))
	s.Server = httptest.NewServer(mux)
	return s
}

func (s *Server) AddEnvelope(accountID string, env dsapi.Envelope, recipients dsapi.Recipients) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.envelopes[accountID] = append(s.envelopes[accountID], envelope{Envelope: env, recipients: recipients})
}

func (s *Server) AddClickwrap(accountID string, cw dsapi.Clickwrap) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clickwraps[accountID] = append(s.clickwraps[accountID], cw)
}

// SetAuthorize decides whether a bearer token is accepted. Any non-empty
// token is accepted when unset.
func (s *Server) SetAuthorize(fn func(token string) bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.authorize = fn
}

// Calls is the number of authorized requests served.
func (s *Server) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func (s *Server) auth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		s.mu.Lock()
		authorize := s.authorize
		s.mu.Unlock()
		if !ok || token == "" || (authorize != nil && !authorize(token)) {
			writeError(w, http.StatusUnauthorized, "AUTHORIZATION_INVALID_TOKEN", "The access token provided is expired, revoked or malformed.")
			return
		}
		s.mu.Lock()
		s.calls++
		s.mu.Unlock()
		next(w, r)
	}
}

func (s *Server) listEnvelopes(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("from_date") == "" {
		writeError(w, http.StatusBadRequest, "INVALID_REQUEST_PARAMETER", "from_date is required")
		return
	}

	s.mu.Lock()
	out := dsapi.EnvelopesInformation{Envelopes: []dsapi.Envelope{}}
	for _, e := range s.envelopes[r.PathValue("account")] {
		out.Envelopes = append(out.Envelopes, e.Envelope)
	}
	s.mu.Unlock()

	n := strconv.Itoa(len(out.Envelopes))
	out.ResultSetSize, out.TotalSetSize = n, n
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) find(r *http.Request) (envelope, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.envelopes[r.PathValue("account")] {
		if e.EnvelopeID == r.PathValue("id") {
			return e, true
		}
	}
	return envelope{}, false
}

func (s *Server) getEnvelope(w http.ResponseWriter, r *http.Request) {
	e, ok := s.find(r)
	if !ok {
		writeError(w, http.StatusNotFound, "ENVELOPE_DOES_NOT_EXIST", "The envelope specified either does not exist or you have no rights to the envelope.")
		return
	}
	writeJSON(w, http.StatusOK, e.Envelope)
}

func (s *Server) listRecipients(w http.ResponseWriter, r *http.Request) {
	e, ok := s.find(r)
	if !ok {
		writeError(w, http.StatusNotFound, "ENVELOPE_DOES_NOT_EXIST", "The envelope specified either does not exist or you have no rights to the envelope.")
		return
	}
	writeJSON(w, http.StatusOK, e.recipients)
}

func (s *Server) listClickwraps(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	out := dsapi.Clickwraps{Clickwraps: append([]dsapi.Clickwrap{}, s.clickwraps[r.PathValue("account")]...), Page: 1, PageSize: 40}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, errCode, msg string) {
	writeJSON(w, code, dsapi.APIError{ErrorCode: errCode, Message: msg})
}
