// Package transport defines the pluggable HTTP capability the query
// pipeline issues requests through, and a net/http implementation of it.
//
// The pipeline owns none of the transport policy: timeouts and any retry
// behavior belong to the transport implementation. The pipeline only maps
// the returned status code onto its error taxonomy.
package transport

import (
	"context"
	"net/http"
	"net/url"
)

// Response is the transport-level result of a request: the status code, the
// full response body, and the response headers (the pipeline reads
// Cache-Control from them).
type Response struct {
	StatusCode int
	Body       []byte
	Header     http.Header
}

// Transport issues GET requests on behalf of the query pipeline.
//
// Implementations must return a Response for any completed HTTP exchange
// regardless of status code; an error return means the exchange itself
// failed (connection, timeout, context cancellation).
type Transport interface {
	Get(ctx context.Context, rawURL string, params url.Values, header http.Header) (*Response, error)
}
