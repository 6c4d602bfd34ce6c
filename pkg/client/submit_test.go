package client

import (
	"context"
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hashicorp-forge/formkit/pkg/cache"
	"github.com/hashicorp-forge/formkit/pkg/transport"
)

func TestSubmit_NoReference(t *testing.T) {
	tr := newFakeTransport()
	c := newTestClient(t, tr, nil, "")
	f, err := c.Form("everything")
	require.NoError(t, err)

	refreshCalls := tr.calls

	_, err = f.Submit(context.Background())
	assert.ErrorIs(t, err, ErrNoReference)
	assert.Equal(t, refreshCalls, tr.calls, "no transport call may happen without a ref")
}

func TestSubmit_DecodesEnvelope(t *testing.T) {
	c := newTestClient(t, newFakeTransport(), nil, "")
	f, err := c.Form("everything")
	require.NoError(t, err)

	resp, err := f.Ref("tok").Submit(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Page)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "UlfoxUnM0wkXYXbl", resp.Results[0].ID)
	assert.Equal(t, "title", resp.Results[0].Slug())
}

func TestSubmitRaw_ReturnsUntouchedBody(t *testing.T) {
	c := newTestClient(t, newFakeTransport(), nil, "")
	f, err := c.Form("everything")
	require.NoError(t, err)

	body, err := f.Ref("tok").SubmitRaw(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []byte(searchBody), body)
}

func TestSubmit_UnsupportedFormKind(t *testing.T) {
	tr := newFakeTransport()
	c := newTestClient(t, tr, nil, "")
	f, err := c.Form("ingest")
	require.NoError(t, err)

	refreshCalls := tr.calls

	_, err = f.Ref("tok").Submit(context.Background())
	assert.ErrorIs(t, err, ErrUnsupportedForm)

	var typed *Error
	require.ErrorAs(t, err, &typed)
	assert.Contains(t, typed.Msg, "POST")
	assert.Contains(t, typed.Msg, "multipart/form-data")
	assert.Equal(t, refreshCalls, tr.calls)
}

func TestSubmit_AppendsAccessToken(t *testing.T) {
	tr := newFakeTransport()
	c := newTestClient(t, tr, nil, "secret")
	f, err := c.Form("everything")
	require.NoError(t, err)

	_, err = f.Ref("tok").Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "secret", tr.lastParams.Get("access_token"))
}

func TestSubmit_ErrorStatusMapping(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{401, ErrAuthentication},
		{403, ErrAuthorization},
		{404, ErrRefNotFound},
		{429, ErrSearchFailed},
		{500, ErrSearchFailed},
	}

	for _, tt := range tests {
		tr := newFakeTransport()
		tr.handle(testAction, errResponse(tt.status, `{"error": "detail"}`))
		c := newTestClient(t, tr, nil, "")
		f, err := c.Form("everything")
		require.NoError(t, err)

		_, err = f.Ref("tok").Submit(context.Background())
		assert.ErrorIs(t, err, tt.want, "status %d", tt.status)

		var typed *Error
		require.ErrorAs(t, err, &typed)
		assert.Equal(t, map[string]any{"error": "detail"}, typed.Body,
			"error body should be JSON-decoded")
	}
}

func TestSubmit_NonJSONErrorBodyKeptAsText(t *testing.T) {
	tr := newFakeTransport()
	tr.handle(testAction, errResponse(502, "<html>bad gateway</html>"))
	c := newTestClient(t, tr, nil, "")
	f, err := c.Form("everything")
	require.NoError(t, err)

	_, err = f.Ref("tok").Submit(context.Background())

	var typed *Error
	require.ErrorAs(t, err, &typed)
	assert.Equal(t, "<html>bad gateway</html>", typed.Body)
}

func TestSubmit_TransportFailure(t *testing.T) {
	tr := newFakeTransport()
	boom := errors.New("connection refused")
	tr.handle(testAction, func(url.Values) (*transport.Response, error) { return nil, boom })

	c := newTestClient(t, tr, nil, "")
	f, err := c.Form("everything")
	require.NoError(t, err)

	_, err = f.Ref("tok").Submit(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestSubmit_MalformedBody(t *testing.T) {
	tr := newFakeTransport()
	tr.handle(testAction, okResponse(`{"page": `, ""))
	c := newTestClient(t, tr, nil, "")
	f, err := c.Form("everything")
	require.NoError(t, err)

	_, err = f.Ref("tok").Submit(context.Background())
	assert.ErrorIs(t, err, ErrDecoding)

	// SubmitRaw hands the body over untouched regardless.
	body, err := f.SubmitRaw(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"page": `), body)
}

func TestSubmit_CachesPerMaxAge(t *testing.T) {
	tr := newFakeTransport()
	tr.handle(testAction, okResponse(searchBody, "max-age=30"))
	mem := cache.NewMemory()
	c := newTestClient(t, tr, mem, "")
	f, err := c.Form("everything")
	require.NoError(t, err)

	_, err = f.Ref("tok").Submit(context.Background())
	require.NoError(t, err)
	callsAfterFirst := tr.calls

	// Identical query within the TTL window: served from cache.
	_, err = f.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, callsAfterFirst, tr.calls, "fresh cache entry must short-circuit the transport")
	assert.Equal(t, 1, mem.Len())
}

func TestSubmit_NoCacheWriteWithoutMaxAge(t *testing.T) {
	tr := newFakeTransport()
	tr.handle(testAction, okResponse(searchBody, ""))
	mem := cache.NewMemory()
	c := newTestClient(t, tr, mem, "")
	f, err := c.Form("everything")
	require.NoError(t, err)

	_, err = f.Ref("tok").Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, mem.Len())

	callsAfterFirst := tr.calls
	_, err = f.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, callsAfterFirst+1, tr.calls)
}

func TestCacheKey_Deterministic(t *testing.T) {
	a := url.Values{}
	a.Set("ref", "tok")
	a.Set("page", "1")
	a.Add("q", "one")
	a.Add("q", "two")

	b := url.Values{}
	b.Add("q", "one")
	b.Add("q", "two")
	b.Set("page", "1")
	b.Set("ref", "tok")

	keyA := cacheKey("GET", testAction, a)
	keyB := cacheKey("GET", testAction, b)
	assert.Equal(t, keyA, keyB, "insertion order must not affect the key")
	assert.Equal(t, "GET::"+testAction+"?page=1&q=one&q=two&ref=tok", keyA)
}

func TestCacheKey_ExcludesAccessToken(t *testing.T) {
	tr := newFakeTransport()
	tr.handle(testAction, okResponse(searchBody, "max-age=30"))
	mem := cache.NewMemory()
	c := newTestClient(t, tr, mem, "secret")
	f, err := c.Form("everything")
	require.NoError(t, err)

	_, err = f.Ref("tok").Submit(context.Background())
	require.NoError(t, err)

	expected := cacheKey("GET", testAction, f.params())
	_, ok := mem.Get(expected)
	assert.True(t, ok, "cache key must be derived before the token is appended")
}

func TestParseMaxAge(t *testing.T) {
	tests := []struct {
		header string
		want   time.Duration
		ok     bool
	}{
		{"max-age=30", 30 * time.Second, true},
		{"public, max-age=300", 300 * time.Second, true},
		{"max-age = 60", 60 * time.Second, true},
		{"no-cache", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			got, ok := parseMaxAge(tt.header)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
