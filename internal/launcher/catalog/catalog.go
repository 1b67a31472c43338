// Package catalog describes the DocuSign APIs and examples the launcher
// knows about, including the OAuth scopes each API needs.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed manifest.yaml
var defaultManifest []byte

var (
	ErrUnknownAPI     = errors.New("catalog: unknown api")
	ErrUnknownExample = errors.New("catalog: unknown example")
)

type Catalog struct {
	APIs []API `yaml:"apis" json:"apis"`
}

type API struct {
	Name     string    `yaml:"name" json:"name"`
	Title    string    `yaml:"title" json:"title"`
	BasePath string    `yaml:"base_path" json:"-"`
	Scopes   []string  `yaml:"scopes" json:"scopes"`
	JWTOnly  bool      `yaml:"jwt_only" json:"jwt_only,omitempty"`
	Examples []Example `yaml:"examples" json:"examples"`
}

type Example struct {
	Code        string  `yaml:"code" json:"code"`
	Title       string  `yaml:"title" json:"title"`
	Description string  `yaml:"description" json:"description"`
	Params      []Param `yaml:"params" json:"params,omitempty"`
}

type Param struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
	Required    bool   `yaml:"required" json:"required,omitempty"`
}

// Load reads the manifest at path, or the embedded one when path is empty.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Parse(defaultManifest)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: read manifest: %w", err)
	}
	return Parse(data)
}

// Default returns the embedded catalog. It panics if the embedded manifest
// is broken, which the tests prevent.
func Default() *Catalog {
	c, err := Parse(defaultManifest)
	if err != nil {
		panic(err)
	}
	return c
}

func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("catalog: parse manifest: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks names are unique and every API has a base path and scopes.
func (c *Catalog) Validate() error {
	if len(c.APIs) == 0 {
		return errors.New("catalog: no apis defined")
	}

	seen := map[string]bool{}
	for _, api := range c.APIs {
		if api.Name == "" {
			return errors.New("catalog: api without name")
		}
		if seen[api.Name] {
			return fmt.Errorf("catalog: duplicate api %q", api.Name)
		}
		seen[api.Name] = true

		if api.BasePath == "" {
			return fmt.Errorf("catalog: api %q has no base_path", api.Name)
		}
		if len(api.Scopes) == 0 {
			return fmt.Errorf("catalog: api %q has no scopes", api.Name)
		}

		codes := map[string]bool{}
		for _, ex := range api.Examples {
			if ex.Code == "" || codes[ex.Code] {
				return fmt.Errorf("catalog: api %q has a missing or duplicate example code %q", api.Name, ex.Code)
			}
			codes[ex.Code] = true
		}
	}
	return nil
}

func (c *Catalog) API(name string) (*API, bool) {
	for i := range c.APIs {
		if c.APIs[i].Name == name {
			return &c.APIs[i], true
		}
	}
	return nil, false
}

func (c *Catalog) Lookup(apiName, code string) (*API, *Example, error) {
	api, ok := c.API(apiName)
	if !ok {
		return nil, nil, fmt.Errorf("%w: %s", ErrUnknownAPI, apiName)
	}
	for i := range api.Examples {
		if api.Examples[i].Code == code {
			return api, &api.Examples[i], nil
		}
	}
	return api, nil, fmt.Errorf("%w: %s/%s", ErrUnknownExample, apiName, code)
}

// Scopes is the ordered, de-duplicated union of the named APIs' scopes.
// Unknown names are an error.
func (c *Catalog) Scopes(apis ...string) ([]string, error) {
	var out []string
	for _, name := range apis {
		api, ok := c.API(name)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownAPI, name)
		}
		for _, s := range api.Scopes {
			if !slices.Contains(out, s) {
				out = append(out, s)
			}
		}
	}
	return out, nil
}

// BaseURL resolves an API's base URL for an account. Absolute base paths
// are returned as is; suffixes are appended to baseURI.
func (a *API) BaseURL(baseURI string) (string, error) {
	if strings.HasPrefix(a.BasePath, "https://") || strings.HasPrefix(a.BasePath, "http://") {
		return a.BasePath, nil
	}
	if baseURI == "" {
		return "", fmt.Errorf("catalog: api %q needs an account base_uri", a.Name)
	}
	return strings.TrimSuffix(baseURI, "/") + "/" + strings.TrimPrefix(a.BasePath, "/"), nil
}
