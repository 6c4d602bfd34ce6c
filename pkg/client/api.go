package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"time"

	"github.com/hashicorp/go-multierror"

	"github.com/hashicorp-forge/formkit/pkg/form"
)

// Ref identifies a fixed point-in-time snapshot of the repository. Every
// query is executed against exactly one ref. The master ref moves with
// each publication; release refs may carry a scheduled activation time.
type Ref struct {
	ID          string
	Ref         string
	Label       string
	IsMaster    bool
	ScheduledAt *time.Time
}

type rawRef struct {
	ID          string `json:"id"`
	Ref         string `json:"ref"`
	Label       string `json:"label"`
	IsMasterRef bool   `json:"isMasterRef"`
	// ScheduledAt is a millisecond epoch timestamp.
	ScheduledAt *int64 `json:"scheduledAt"`
}

// UnmarshalJSON decodes a ref from its wire form.
func (r *Ref) UnmarshalJSON(data []byte) error {
	var raw rawRef
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Ref == "" {
		return fmt.Errorf("ref %q is missing its token", raw.ID)
	}

	*r = Ref{
		ID:       raw.ID,
		Ref:      raw.Ref,
		Label:    raw.Label,
		IsMaster: raw.IsMasterRef,
	}
	if raw.ScheduledAt != nil {
		t := time.UnixMilli(*raw.ScheduledAt).UTC()
		r.ScheduledAt = &t
	}
	return nil
}

// apiData is the decoded repository bootstrap envelope.
type apiData struct {
	Refs          []Ref
	Bookmarks     map[string]string
	Types         map[string]string
	Tags          []string
	Forms         map[string]*form.Template
	OAuthInitiate string
	OAuthToken    string
}

type rawAPIData struct {
	Refs          []Ref                      `json:"refs"`
	Bookmarks     map[string]string          `json:"bookmarks"`
	Types         map[string]string          `json:"types"`
	Tags          []string                   `json:"tags"`
	Forms         map[string]json.RawMessage `json:"forms"`
	OAuthInitiate string                     `json:"oauth_initiate"`
	OAuthToken    string                     `json:"oauth_token"`
}

// Refresh fetches the repository's bootstrap envelope: refs, bookmarks,
// document types, tags, OAuth endpoints and form templates. It must be
// called before Form, Refs or the OAuth helpers are usable, and again
// whenever a query fails with ErrRefNotFound (the master ref has moved).
func (c *Client) Refresh(ctx context.Context) error {
	params := url.Values{}
	if c.Authenticated() {
		params.Set("access_token", c.accessToken)
	}

	resp, err := c.transport.Get(ctx, c.endpoint, params, nil)
	if err != nil {
		return &Error{Op: "refresh", Err: err, Msg: "request failed"}
	}
	if resp.StatusCode != 200 {
		return statusError("refresh", resp)
	}

	data, err := parseAPIData(resp.Body)
	if err != nil {
		return &Error{Op: "refresh", Err: ErrDecoding, Msg: err.Error()}
	}

	c.data = data
	c.logger.Debug("repository metadata refreshed",
		"refs", len(data.Refs),
		"forms", len(data.Forms),
	)
	return nil
}

func parseAPIData(body []byte) (*apiData, error) {
	var raw rawAPIData
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode repository metadata: %w", err)
	}

	data := &apiData{
		Refs:          raw.Refs,
		Bookmarks:     raw.Bookmarks,
		Types:         raw.Types,
		Tags:          raw.Tags,
		Forms:         make(map[string]*form.Template, len(raw.Forms)),
		OAuthInitiate: raw.OAuthInitiate,
		OAuthToken:    raw.OAuthToken,
	}

	var merr *multierror.Error
	for name, rawForm := range raw.Forms {
		tmpl, err := form.ParseTemplate(name, rawForm)
		if err != nil {
			merr = multierror.Append(merr, err)
			continue
		}
		data.Forms[name] = tmpl
	}
	if err := merr.ErrorOrNil(); err != nil {
		return nil, err
	}
	return data, nil
}

// requireData guards accessors that need a completed Refresh.
func (c *Client) requireData(op string) error {
	if c.data == nil {
		return fmt.Errorf("%s: repository metadata not loaded, call Refresh first", op)
	}
	return nil
}

// Refs returns the repository's refs as of the last Refresh.
func (c *Client) Refs() []Ref {
	if c.data == nil {
		return nil
	}
	return c.data.Refs
}

// MasterRef returns the repository's master ref.
func (c *Client) MasterRef() (Ref, bool) {
	for _, r := range c.Refs() {
		if r.IsMaster {
			return r, true
		}
	}
	return Ref{}, false
}

// MustMasterRef returns the master ref or panics. Intended for program
// setup paths where a repository without a master ref is unrecoverable.
func (c *Client) MustMasterRef() Ref {
	r, ok := c.MasterRef()
	if !ok {
		panic("formkit: repository has no master ref (did Refresh run?)")
	}
	return r
}

// RefByLabel returns the ref with the given human label.
func (c *Client) RefByLabel(label string) (Ref, bool) {
	for _, r := range c.Refs() {
		if r.Label == label {
			return r, true
		}
	}
	return Ref{}, false
}

// Forms returns the names of the repository's query forms, sorted.
func (c *Client) Forms() []string {
	if c.data == nil {
		return nil
	}
	names := make([]string, 0, len(c.data.Forms))
	for name := range c.data.Forms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Form creates a search form bound to the named template, seeded with the
// template's default field values.
func (c *Client) Form(name string) (*SearchForm, error) {
	if err := c.requireData("form"); err != nil {
		return nil, err
	}
	tmpl, ok := c.data.Forms[name]
	if !ok {
		return nil, fmt.Errorf("unknown form %q (repository has: %v)", name, c.Forms())
	}
	return newSearchForm(c, tmpl), nil
}

// Bookmarks returns the repository's bookmark-name to document-id map.
func (c *Client) Bookmarks() map[string]string {
	if c.data == nil {
		return nil
	}
	return c.data.Bookmarks
}

// Types returns the repository's document-type id to display-name map.
func (c *Client) Types() map[string]string {
	if c.data == nil {
		return nil
	}
	return c.data.Types
}

// Tags returns all tags in use in the repository.
func (c *Client) Tags() []string {
	if c.data == nil {
		return nil
	}
	return c.data.Tags
}
