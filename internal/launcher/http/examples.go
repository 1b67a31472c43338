package http

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"

	"github.com/aussiebroadwan/dslauncher/internal/launcher/catalog"
	"github.com/aussiebroadwan/dslauncher/internal/launcher/domain"
	"github.com/aussiebroadwan/dslauncher/internal/launcher/service"
	"github.com/aussiebroadwan/dslauncher/pkg/dsapi"
	"github.com/aussiebroadwan/dslauncher/pkg/httpx"
	"github.com/aussiebroadwan/dslauncher/pkg/launchersdk"
	"github.com/aussiebroadwan/dslauncher/pkg/slogx"
)

const maxParamsBytes = 64 << 10

type ExamplesHandler struct {
	Examples *service.ExamplesService
	Sessions *service.SessionService
}

// HandleList lists the catalog
//
//	@Summary		List examples
//	@Description	Returns every API family and example. Examples with implemented=false are
//	@Description	described only and answer 501 when run.
//	@Tags			Examples
//	@Produce		json
//	@Success		200	{object}	launchersdk.CatalogResponse
//	@Router			/v1/examples [get].
func (h *ExamplesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	cat := h.Examples.Catalog

	resp := launchersdk.CatalogResponse{APIs: make([]launchersdk.APIInfo, len(cat.APIs))}
	for i := range cat.APIs {
		api := &cat.APIs[i]
		info := launchersdk.APIInfo{
			Name:     api.Name,
			Title:    api.Title,
			Scopes:   api.Scopes,
			JWTOnly:  api.JWTOnly,
			Examples: make([]launchersdk.ExampleInfo, len(api.Examples)),
		}
		for j := range api.Examples {
			info.Examples[j] = h.exampleInfo(api, &api.Examples[j])
		}
		resp.APIs[i] = info
	}

	httpx.WriteJSON(w, http.StatusOK, resp)
}

// HandleDescribe describes one example
//
//	@Summary		Describe example
//	@Description	Returns the title, description and parameters of one example.
//	@Tags			Examples
//	@Produce		json
//	@Param			api		path		string	true	"API name, e.g. esignature"
//	@Param			code	path		string	true	"Example code, e.g. eg003"
//	@Success		200		{object}	launchersdk.ExampleResponse
//	@Failure		404		{object}	launchersdk.ErrorResponse	"Unknown API or example"
//	@Router			/v1/examples/{api}/{code} [get].
func (h *ExamplesHandler) HandleDescribe(w http.ResponseWriter, r *http.Request) {
	api, ex, err := h.Examples.Describe(r.PathValue("api"), r.PathValue("code"))
	if err != nil {
		writeNotFound(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, launchersdk.ExampleResponse{
		API:      api.Name,
		APITitle: api.Title,
		JWTOnly:  api.JWTOnly,
		Example:  h.exampleInfo(api, ex),
	})
}

// HandleRun runs one example
//
//	@Summary		Run example
//	@Description	Calls the DocuSign API for the session's account and returns its response.
//	@Description	Parameters come from a JSON object body or a form body.
//	@Description	When the session has no token valid for at least three more minutes and it cannot be
//	@Description	refreshed, answers 401 reauthenticate with a login_url.
//	@Tags			Examples
//	@Accept			json
//	@Accept			x-www-form-urlencoded
//	@Produce		json
//	@Param			api		path		string				true	"API name, e.g. esignature"
//	@Param			code	path		string				true	"Example code, e.g. eg003"
//	@Param			params	body		map[string]string	false	"Example parameters"
//	@Success		200		{object}	launchersdk.RunResponse
//	@Failure		400		{object}	launchersdk.ErrorResponse	"Missing or invalid parameter"
//	@Failure		401		{object}	launchersdk.ErrorResponse	"Login required"
//	@Failure		403		{object}	launchersdk.ErrorResponse	"API requires the JWT Grant"
//	@Failure		404		{object}	launchersdk.ErrorResponse	"Unknown API or example"
//	@Failure		501		{object}	launchersdk.ErrorResponse	"Example not implemented"
//	@Failure		502		{object}	launchersdk.ErrorResponse	"DocuSign API error"
//	@Security		SessionCookie
//	@Router			/v1/examples/{api}/{code} [post].
func (h *ExamplesHandler) HandleRun(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	apiName, code := r.PathValue("api"), r.PathValue("code")
	returnTo := launchersdk.ExamplePath(apiName, code)

	sess := SessionFromContext(ctx)
	if sess == nil {
		httpx.WriteJSON(w, http.StatusUnauthorized, launchersdk.ErrorResponse{
			Error:            launchersdk.CodeReauthenticate,
			ErrorDescription: "No session; log in first",
			LoginURL:         mustAuthenticatePath(returnTo),
		})
		return
	}

	params, err := readParams(w, r)
	if err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, launchersdk.ErrorResponse{
			Error:            launchersdk.CodeInvalidRequest,
			ErrorDescription: err.Error(),
		})
		return
	}

	res, runErr := h.Examples.Run(ctx, sess, apiName, code, params)

	// A refresh inside Run may have replaced the token.
	if !saveSession(w, r, h.Sessions, sess) {
		return
	}
	if runErr != nil {
		writeRunError(w, r, sess, returnTo, runErr)
		return
	}

	raw, err := json.Marshal(res.Result)
	if err != nil {
		slogx.FromContext(ctx).Error("failed to encode example result", "error", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, launchersdk.ErrorResponse{
			Error:            launchersdk.CodeServerError,
			ErrorDescription: "Failed to encode result",
		})
		return
	}

	httpx.WriteJSON(w, http.StatusOK, launchersdk.RunResponse{
		API:     res.API,
		Example: res.Example,
		Title:   res.Title,
		Result:  raw,
	})
}

func (h *ExamplesHandler) exampleInfo(api *catalog.API, ex *catalog.Example) launchersdk.ExampleInfo {
	info := launchersdk.ExampleInfo{
		Code:        ex.Code,
		Title:       ex.Title,
		Description: ex.Description,
		Implemented: h.Examples.Implemented(api.Name, ex.Code),
		Path:        launchersdk.ExamplePath(api.Name, ex.Code),
	}
	for _, p := range ex.Params {
		info.Params = append(info.Params, launchersdk.ParamInfo{
			Name:        p.Name,
			Description: p.Description,
			Required:    p.Required,
		})
	}
	return info
}

// readParams accepts a JSON object of strings or a urlencoded form. An
// empty body means no parameters.
func readParams(w http.ResponseWriter, r *http.Request) (map[string]string, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxParamsBytes)
	params := map[string]string{}

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		err := json.NewDecoder(r.Body).Decode(&params)
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, errors.New("body must be a JSON object of strings")
		}
		return params, nil
	}

	if err := r.ParseForm(); err != nil {
		return nil, errors.New("malformed form body")
	}
	for k := range r.Form {
		params[k] = r.Form.Get(k)
	}
	return params, nil
}

func writeNotFound(w http.ResponseWriter, err error) {
	httpx.WriteJSON(w, http.StatusNotFound, launchersdk.ErrorResponse{
		Error:            launchersdk.CodeNotFound,
		ErrorDescription: err.Error(),
	})
}

func writeRunError(w http.ResponseWriter, r *http.Request, sess *domain.Session, returnTo string, err error) {
	var apiErr *dsapi.APIError

	switch {
	case errors.Is(err, catalog.ErrUnknownAPI), errors.Is(err, catalog.ErrUnknownExample):
		writeNotFound(w, err)

	case errors.Is(err, service.ErrReauthenticate):
		loginURL := mustAuthenticatePath(returnTo)
		if sess.AuthType.Valid() {
			loginURL = launchersdk.LoginPath(string(sess.AuthType), returnTo)
		}
		httpx.WriteJSON(w, http.StatusUnauthorized, launchersdk.ErrorResponse{
			Error:            launchersdk.CodeReauthenticate,
			ErrorDescription: "Log in again to continue",
			LoginURL:         loginURL,
		})

	case errors.Is(err, service.ErrJWTRequired):
		httpx.WriteJSON(w, http.StatusForbidden, launchersdk.ErrorResponse{
			Error:            launchersdk.CodeJWTRequired,
			ErrorDescription: "This API only supports the JWT Grant",
			LoginURL:         launchersdk.LoginPath(string(domain.AuthTypeJWT), returnTo),
		})

	case errors.Is(err, service.ErrNotImplemented):
		httpx.WriteJSON(w, http.StatusNotImplemented, launchersdk.ErrorResponse{
			Error:            launchersdk.CodeNotImplemented,
			ErrorDescription: "This example is described but not implemented",
		})

	case errors.Is(err, service.ErrInvalidParam):
		httpx.WriteJSON(w, http.StatusBadRequest, launchersdk.ErrorResponse{
			Error:            launchersdk.CodeInvalidRequest,
			ErrorDescription: err.Error(),
		})

	case errors.As(err, &apiErr):
		// Client errors (bad envelope id, ...) are the caller's to fix and
		// keep their status; anything else is a gateway failure.
		status := http.StatusBadGateway
		if apiErr.StatusCode >= 400 && apiErr.StatusCode < 500 {
			status = apiErr.StatusCode
		}
		httpx.WriteJSON(w, status, launchersdk.ErrorResponse{
			Error:            apiErr.ErrorCode,
			ErrorDescription: apiErr.Message,
		})

	default:
		slogx.FromContext(r.Context()).Error("example run failed", "error", err)
		httpx.WriteJSON(w, http.StatusBadGateway, launchersdk.ErrorResponse{
			Error:            launchersdk.CodeUpstreamError,
			ErrorDescription: "DocuSign API call failed",
		})
	}
}
