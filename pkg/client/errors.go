package client

import "errors"

// Sentinel errors for the query pipeline. Use errors.Is to classify a
// failure; the *Error wrapper carries the operation and any diagnostic
// body the service returned.
var (
	// ErrNoReference means submit was attempted with no resolvable
	// reference: none set on the form and none defaulted by the
	// template. Raised before any transport activity.
	ErrNoReference = errors.New("no reference set on query")

	// ErrUnsupportedForm means the form template declares a
	// method/enctype combination the pipeline cannot submit.
	ErrUnsupportedForm = errors.New("unsupported form kind")

	// ErrAuthentication maps HTTP 401: missing or invalid access token.
	ErrAuthentication = errors.New("authentication failed")

	// ErrAuthorization maps HTTP 403: the token lacks access to the
	// requested content.
	ErrAuthorization = errors.New("authorization failed")

	// ErrRefNotFound maps HTTP 404: the reference does not identify a
	// known repository snapshot (typically an expired preview ref).
	ErrRefNotFound = errors.New("reference not found")

	// ErrSearchFailed maps any other non-200 response.
	ErrSearchFailed = errors.New("form search failed")

	// ErrDecoding means the response body could not be decoded into the
	// typed envelope.
	ErrDecoding = errors.New("failed to decode response")
)

// Error is the typed failure the pipeline surfaces to callers.
type Error struct {
	// Op is the operation that failed (e.g. "submit", "refresh").
	Op string

	// Err is the underlying error, usually one of the sentinels.
	Err error

	// Msg is additional human-readable context.
	Msg string

	// Body is the service's response body, JSON-decoded when possible,
	// otherwise the raw text. Nil when the failure was local.
	Body any
}

// Error returns a formatted error string.
func (e *Error) Error() string {
	msg := e.Op + ": "
	if e.Msg != "" {
		msg += e.Msg + ": "
	}
	if e.Err != nil {
		msg += e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying error for errors.Is/As chains.
func (e *Error) Unwrap() error {
	return e.Err
}
