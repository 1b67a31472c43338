package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/aussiebroadwan/dslauncher/internal/launcher/catalog"
	"github.com/aussiebroadwan/dslauncher/internal/launcher/domain"
	"github.com/aussiebroadwan/dslauncher/pkg/dsapi"
	"github.com/aussiebroadwan/dslauncher/pkg/slogx"
)

// ExampleRequest is what a runner gets to work with.
type ExampleRequest struct {
	Session *domain.Session
	API     *catalog.API
	Example *catalog.Example
	Params  map[string]string
}

// Runner executes one example against a ready API client.
type Runner func(ctx context.Context, req ExampleRequest, client *dsapi.Client) (any, error)

// ExampleResult is returned from Run.
type ExampleResult struct {
	API     string `json:"api"`
	Example string `json:"example"`
	Title   string `json:"title"`
	Result  any    `json:"result"`
}

type ExamplesService struct {
	Catalog    *catalog.Catalog
	Auth       *AuthService
	HTTPClient *http.Client
	Metrics    *Metrics

	runners map[string]Runner
}

func NewExamplesService(cat *catalog.Catalog, auth *AuthService, httpClient *http.Client, metrics *Metrics) *ExamplesService {
	s := &ExamplesService{
		Catalog:    cat,
		Auth:       auth,
		HTTPClient: httpClient,
		Metrics:    metrics,
		runners:    map[string]Runner{},
	}
	registerESignature(s)
	registerClick(s)
	return s
}

func runnerKey(api, code string) string { return api + "/" + code }

// Register adds or replaces the runner for api/code.
func (s *ExamplesService) Register(api, code string, r Runner) {
	s.runners[runnerKey(api, code)] = r
}

// Implemented reports whether api/code has a runner.
func (s *ExamplesService) Implemented(api, code string) bool {
	_, ok := s.runners[runnerKey(api, code)]
	return ok
}

func (s *ExamplesService) Describe(apiName, code string) (*catalog.API, *catalog.Example, error) {
	return s.Catalog.Lookup(apiName, code)
}

// Run executes an example for sess. Token refresh may modify sess, so the
// caller should save it afterwards whatever the outcome.
func (s *ExamplesService) Run(
	ctx context.Context,
	sess *domain.Session,
	apiName, code string,
	params map[string]string,
) (res *ExampleResult, err error) {
	api, ex, err := s.Catalog.Lookup(apiName, code)
	if err != nil {
		return nil, err
	}
	// Labels come from the catalog, not the request path.
	defer func() { s.Metrics.observeExample(api.Name, ex.Code, err) }()
	if api.JWTOnly && sess.AuthType != domain.AuthTypeJWT {
		return nil, ErrJWTRequired
	}
	run, ok := s.runners[runnerKey(apiName, code)]
	if !ok {
		return nil, ErrNotImplemented
	}
	for _, p := range ex.Params {
		if p.Required && params[p.Name] == "" {
			return nil, fmt.Errorf("%w: %s is required", ErrInvalidParam, p.Name)
		}
	}

	if err := s.Auth.RequireToken(ctx, sess, MinimumBuffer); err != nil {
		return nil, err
	}

	baseURL, err := api.BaseURL(sess.BaseURI)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReauthenticate, err)
	}
	client := dsapi.New(baseURL, sess.AccessToken, s.HTTPClient)

	out, err := run(ctx, ExampleRequest{Session: sess, API: api, Example: ex, Params: params}, client)
	if err != nil {
		var apiErr *dsapi.APIError
		if errors.As(err, &apiErr) && apiErr.Unauthorized() {
			return nil, fmt.Errorf("%w: %v", ErrReauthenticate, err)
		}
		slogx.FromContext(ctx).Warn("example failed", "api", apiName, "example", code, "error", err)
		return nil, err
	}

	return &ExampleResult{API: api.Name, Example: ex.Code, Title: ex.Title, Result: out}, nil
}
