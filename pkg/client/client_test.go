package client

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hashicorp-forge/formkit/pkg/cache"
	"github.com/hashicorp-forge/formkit/pkg/transport"
)

const testEndpoint = "https://repo.example.com/api"
const testAction = "https://repo.example.com/api/documents/search"

// apiEnvelope is a representative bootstrap response.
const apiEnvelope = `{
	"refs": [
		{"id": "master", "ref": "WYx9HB8AAB8AmX7z", "label": "Master", "isMasterRef": true},
		{"id": "release-1", "ref": "UgjWRd_mqbYHvPJa", "label": "Summer launch", "isMasterRef": false, "scheduledAt": 1787050800000}
	],
	"bookmarks": {"about": "Ue0EDd_mqb8Dhk3j"},
	"types": {"article": "Article"},
	"tags": ["featured", "archive"],
	"oauth_initiate": "https://repo.example.com/auth",
	"oauth_token": "https://repo.example.com/auth/token",
	"forms": {
		"everything": {
			"method": "GET",
			"enctype": "application/x-www-form-urlencoded",
			"action": "https://repo.example.com/api/documents/search",
			"fields": {
				"ref": {"type": "String"},
				"q": {"type": "String", "multiple": true},
				"page": {"type": "Integer", "default": "1"},
				"pageSize": {"type": "Integer", "default": "20"},
				"orderings": {"type": "String"},
				"after": {"type": "String"},
				"fetch": {"type": "String"},
				"fetchLinks": {"type": "String"},
				"lang": {"type": "String"}
			}
		},
		"ingest": {
			"method": "POST",
			"enctype": "multipart/form-data",
			"action": "https://repo.example.com/api/documents/ingest",
			"fields": {
				"ref": {"type": "String"}
			}
		}
	}
}`

// searchBody is a minimal valid search response.
const searchBody = `{
	"page": 1,
	"results_per_page": 20,
	"results_size": 1,
	"total_results_size": 1,
	"total_pages": 1,
	"next_page": null,
	"prev_page": null,
	"results": [{"id": "UlfoxUnM0wkXYXbl", "type": "article", "slugs": ["title"]}]
}`

// fakeTransport records calls and answers from a per-URL table.
type fakeTransport struct {
	calls      int
	lastURL    string
	lastParams url.Values
	handlers   map[string]func(params url.Values) (*transport.Response, error)
}

func newFakeTransport() *fakeTransport {
	f := &fakeTransport{handlers: map[string]func(url.Values) (*transport.Response, error){}}
	f.handle(testEndpoint, okResponse(apiEnvelope, ""))
	f.handle(testAction, okResponse(searchBody, ""))
	return f
}

func (f *fakeTransport) handle(rawURL string, fn func(url.Values) (*transport.Response, error)) {
	f.handlers[rawURL] = fn
}

func (f *fakeTransport) Get(_ context.Context, rawURL string, params url.Values, _ http.Header) (*transport.Response, error) {
	f.calls++
	f.lastURL = rawURL
	f.lastParams = make(url.Values, len(params))
	for k, v := range params {
		f.lastParams[k] = append([]string(nil), v...)
	}

	fn, ok := f.handlers[rawURL]
	if !ok {
		return &transport.Response{StatusCode: 404, Body: []byte(`{"error":"no handler"}`), Header: http.Header{}}, nil
	}
	return fn(params)
}

func okResponse(body, cacheControl string) func(url.Values) (*transport.Response, error) {
	return func(url.Values) (*transport.Response, error) {
		header := http.Header{}
		if cacheControl != "" {
			header.Set("Cache-Control", cacheControl)
		}
		return &transport.Response{StatusCode: 200, Body: []byte(body), Header: header}, nil
	}
}

func errResponse(status int, body string) func(url.Values) (*transport.Response, error) {
	return func(url.Values) (*transport.Response, error) {
		return &transport.Response{StatusCode: status, Body: []byte(body), Header: http.Header{}}, nil
	}
}

// newTestClient builds a refreshed client over the fake transport.
func newTestClient(t *testing.T, tr *fakeTransport, c cache.Cache, token string) *Client {
	t.Helper()

	cl, err := New(Config{
		Endpoint:    testEndpoint,
		AccessToken: token,
		Cache:       c,
		Transport:   tr,
	})
	require.NoError(t, err)
	require.NoError(t, cl.Refresh(context.Background()))
	return cl
}

func TestNew_RequiresEndpoint(t *testing.T) {
	_, err := New(Config{})
	require.Error(t, err)
}
