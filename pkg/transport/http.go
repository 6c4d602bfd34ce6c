package transport

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
)

const defaultTimeout = 20 * time.Second

// HTTP is the net/http-backed Transport. Each request carries a generated
// X-Request-ID header for log correlation. Retries, when enabled, apply
// only to failed exchanges (connection errors); completed responses are
// returned as-is whatever their status.
type HTTP struct {
	client     *http.Client
	maxRetries uint64
	logger     hclog.Logger
}

// HTTPConfig configures the HTTP transport.
type HTTPConfig struct {
	// Client is the underlying HTTP client. When nil, a client with the
	// default timeout is used.
	Client *http.Client

	// Timeout applies when Client is nil. Zero means the default.
	Timeout time.Duration

	// MaxRetries is the number of additional attempts made after a
	// failed exchange, with exponential backoff. Zero disables retries.
	MaxRetries uint64

	Logger hclog.Logger
}

// NewHTTP creates an HTTP transport.
func NewHTTP(cfg HTTPConfig) *HTTP {
	if cfg.Client == nil {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = defaultTimeout
		}
		cfg.Client = &http.Client{Timeout: timeout}
	}
	if cfg.Logger == nil {
		cfg.Logger = hclog.NewNullLogger()
	}

	return &HTTP{
		client:     cfg.Client,
		maxRetries: cfg.MaxRetries,
		logger:     cfg.Logger.Named("http-transport"),
	}
}

// Get issues a GET request to rawURL with the given query parameters and
// headers.
func (h *HTTP) Get(ctx context.Context, rawURL string, params url.Values, header http.Header) (*Response, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid request URL %q: %w", rawURL, err)
	}
	if len(params) > 0 {
		u.RawQuery = params.Encode()
	}

	requestID := uuid.NewString()

	attempt := func() (*Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
		if err != nil {
			return nil, backoff.Permanent(err)
		}
		for name, values := range header {
			for _, v := range values {
				req.Header.Add(name, v)
			}
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("X-Request-ID", requestID)

		h.logger.Debug("issuing request",
			"method", http.MethodGet,
			"url", u.Redacted(),
			"request_id", requestID,
		)

		resp, err := h.client.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to read response body: %w", err)
		}

		h.logger.Debug("request completed",
			"status", resp.StatusCode,
			"bytes", len(body),
			"request_id", requestID,
		)

		return &Response{
			StatusCode: resp.StatusCode,
			Body:       body,
			Header:     resp.Header,
		}, nil
	}

	if h.maxRetries == 0 {
		return attempt()
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), h.maxRetries), ctx)
	return backoff.RetryWithData(attempt, policy)
}
