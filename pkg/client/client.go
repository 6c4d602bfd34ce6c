// Package client implements the query SDK for form-based document-store
// repositories: repository bootstrap, reference handling, OAuth helpers,
// and the search-form submission pipeline with response caching.
//
// Typical use:
//
//	c, err := client.New(client.Config{
//	    Endpoint: "https://repo.example.com/api",
//	    Cache:    cache.NewMemory(),
//	})
//	if err != nil { ... }
//	if err := c.Refresh(ctx); err != nil { ... }
//
//	sf, _ := c.Form("everything")
//	resp, err := sf.
//	    Ref(c.MustMasterRef()).
//	    Query(predicate.At("document.type", "article")).
//	    PageSize(10).
//	    Submit(ctx)
package client

import (
	"fmt"

	"github.com/hashicorp/go-hclog"

	"github.com/hashicorp-forge/formkit/pkg/cache"
	"github.com/hashicorp-forge/formkit/pkg/transport"
)

// Cookie names the repository toolbar sets in end-user browsers. Host
// applications read these to resolve preview and experiment refs.
const (
	PreviewCookie    = "io.formkit.preview"
	ExperimentCookie = "io.formkit.experiment"
)

// Config configures a repository client.
type Config struct {
	// Endpoint is the repository's API root
	// (e.g. "https://repo.example.com/api"). Required.
	Endpoint string

	// AccessToken authenticates requests when the repository is
	// private. Optional.
	AccessToken string

	// Cache stores query responses per the service's freshness hints.
	// Nil disables caching.
	Cache cache.Cache

	// Transport issues the HTTP requests. Nil selects the default
	// net/http transport.
	Transport transport.Transport

	Logger hclog.Logger
}

// Client is a handle on one document-store repository.
//
// A Client is cheap to keep around for the process lifetime. Refresh must
// run before forms or refs are available. The client itself is not safe
// for concurrent Refresh calls; submitting queries from multiple
// goroutines is fine as long as each goroutine owns its search forms.
type Client struct {
	endpoint    string
	accessToken string
	cache       cache.Cache
	transport   transport.Transport
	logger      hclog.Logger

	data *apiData
}

// New creates a repository client.
func New(cfg Config) (*Client, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("repository endpoint is required")
	}
	if cfg.Cache == nil {
		cfg.Cache = cache.Noop{}
	}
	if cfg.Logger == nil {
		cfg.Logger = hclog.NewNullLogger()
	}
	if cfg.Transport == nil {
		cfg.Transport = transport.NewHTTP(transport.HTTPConfig{
			Logger: cfg.Logger,
		})
	}

	return &Client{
		endpoint:    cfg.Endpoint,
		accessToken: cfg.AccessToken,
		cache:       cfg.Cache,
		transport:   cfg.Transport,
		logger:      cfg.Logger.Named("formkit"),
	}, nil
}

// Endpoint returns the repository API root the client was built with.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Authenticated reports whether the client holds an access token.
func (c *Client) Authenticated() bool {
	return c.accessToken != ""
}

// SetAccessToken installs (or clears) the access token, e.g. after an
// OAuth exchange.
func (c *Client) SetAccessToken(token string) {
	c.accessToken = token
}
