package currents

// ErrorKind classifies a failed API request into a closed set of
// variants, so callers can branch on the kind instead of matching
// message strings.
type ErrorKind string

const (
	ErrConfiguration ErrorKind = "configuration"
	ErrAuth          ErrorKind = "auth"
	ErrRateLimit     ErrorKind = "rate_limit"
	ErrBadRequest    ErrorKind = "bad_request"
	ErrUpstream      ErrorKind = "upstream"
	ErrHTTP          ErrorKind = "http"
	ErrTimeout       ErrorKind = "timeout"
	ErrNetwork       ErrorKind = "network"
)

// Error is the only error type the client surfaces. StatusCode is set
// for HTTP-level failures, Err carries the underlying transport cause.
type Error struct {
	Kind       ErrorKind
	StatusCode int
	Message    string
	Err        error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}
