package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"time"

	"github.com/hashicorp-forge/formkit/pkg/document"
	"github.com/hashicorp-forge/formkit/pkg/transport"
)

// formEnctype is the only request encoding the pipeline supports.
const formEnctype = "application/x-www-form-urlencoded"

// maxAgeRE extracts the freshness TTL from Cache-Control headers.
var maxAgeRE = regexp.MustCompile(`max-age\s*=\s*(\d+)`)

// Submit executes the query and decodes the response into the typed
// pagination envelope.
func (f *SearchForm) Submit(ctx context.Context) (*document.Response, error) {
	body, err := f.SubmitRaw(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := document.DecodeResponse(body)
	if err != nil {
		return nil, &Error{Op: "submit", Err: ErrDecoding, Msg: err.Error()}
	}
	return resp, nil
}

// SubmitRaw executes the query and returns the raw response body.
//
// The pipeline: resolve the ref, derive the cache key, short-circuit on a
// fresh cached body, otherwise issue the GET and cache the result for the
// server-advertised max-age. All failures surface as *Error; no retries
// are performed here.
func (f *SearchForm) SubmitRaw(ctx context.Context) ([]byte, error) {
	params := f.params()
	if params.Get("ref") == "" {
		return nil, &Error{Op: "submit", Err: ErrNoReference}
	}

	key := cacheKey(f.template.Method, f.template.Action, params)
	if body, ok := f.client.cache.Get(key); ok {
		f.client.logger.Debug("cache hit", "key", key)
		return body, nil
	}

	if f.template.Method != "GET" || f.template.Enctype != formEnctype {
		return nil, &Error{
			Op:  "submit",
			Err: ErrUnsupportedForm,
			Msg: fmt.Sprintf("%s %s", f.template.Method, f.template.Enctype),
		}
	}

	if f.client.Authenticated() {
		params.Set("access_token", f.client.accessToken)
	}

	resp, err := f.client.transport.Get(ctx, f.template.Action, params, nil)
	if err != nil {
		return nil, &Error{Op: "submit", Err: err, Msg: "request failed"}
	}
	if resp.StatusCode != 200 {
		return nil, statusError("submit", resp)
	}

	if ttl, ok := parseMaxAge(resp.Header.Get("Cache-Control")); ok {
		f.client.cache.Set(key, resp.Body, ttl)
	}
	return resp.Body, nil
}

// cacheKey derives the deterministic cache key for a query:
// METHOD + "::" + action + "?" + sorted urlencoded parameters. The access
// token is never part of the key; url.Values.Encode sorts by key, so two
// equivalent field maps produce the same string whatever their insertion
// order.
func cacheKey(method, action string, params url.Values) string {
	return method + "::" + action + "?" + params.Encode()
}

// parseMaxAge extracts the max-age TTL from a Cache-Control header value.
func parseMaxAge(cacheControl string) (time.Duration, bool) {
	m := maxAgeRE.FindStringSubmatch(cacheControl)
	if m == nil {
		return 0, false
	}
	secs, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return time.Duration(secs) * time.Second, true
}

// statusError maps a non-200 response to its typed error, attaching the
// response body (JSON-decoded when possible, raw text otherwise) for
// diagnostics.
func statusError(op string, resp *transport.Response) *Error {
	var body any
	if err := json.Unmarshal(resp.Body, &body); err != nil {
		body = string(resp.Body)
	}

	e := &Error{
		Op:   op,
		Msg:  fmt.Sprintf("HTTP %d", resp.StatusCode),
		Body: body,
	}
	switch resp.StatusCode {
	case 401:
		e.Err = ErrAuthentication
	case 403:
		e.Err = ErrAuthorization
	case 404:
		e.Err = ErrRefNotFound
	default:
		e.Err = ErrSearchFailed
	}
	return e
}
