// Package hlerr defines the SDK's closed error-kind taxonomy and the
// retryability predicates the transport core consults before retrying a
// failed request.
package hlerr

import "fmt"

// Kind enumerates the classified error variants the SDK ever returns.
type Kind int

const (
	Network Kind = iota
	Http
	RateLimit
	Server
	Client
	InvalidURL
	JSON
	Timeout
	RetryExhausted
	WebSocket
	Signing
	Config
	TLS
	Authentication
	Validation
	Unknown
)

func (k Kind) String() string {
	switch k {
	case Network:
		return "Network"
	case Http:
		return "Http"
	case RateLimit:
		return "RateLimit"
	case Server:
		return "Server"
	case Client:
		return "Client"
	case InvalidURL:
		return "InvalidUrl"
	case JSON:
		return "Json"
	case Timeout:
		return "Timeout"
	case RetryExhausted:
		return "RetryExhausted"
	case WebSocket:
		return "WebSocket"
	case Signing:
		return "Signing"
	case Config:
		return "Config"
	case TLS:
		return "Tls"
	case Authentication:
		return "Authentication"
	case Validation:
		return "Validation"
	default:
		return "Unknown"
	}
}

// Error is the SDK's single error type, carrying a Kind plus whatever
// structured detail that kind implies.
type Error struct {
	Kind        Kind
	Message     string
	Status      int    // Http, Server
	RetryAfter  int    // RateLimit, seconds; 0 means unspecified
	Code        string // Client
	Attempts    int    // RetryExhausted
	Data        interface{}
	Cause       error
}

func (e *Error) Error() string {
	if e.Message == "" {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

func NewHttp(status int, message string) *Error {
	return &Error{Kind: Http, Status: status, Message: message}
}

func NewServer(status int, message string) *Error {
	return &Error{Kind: Server, Status: status, Message: message}
}

func NewRateLimit(retryAfter int) *Error {
	return &Error{Kind: RateLimit, RetryAfter: retryAfter}
}

func NewClient(code, message string, data interface{}) *Error {
	return &Error{Kind: Client, Code: code, Message: message, Data: data}
}

func NewRetryExhausted(attempts int) *Error {
	return &Error{Kind: RetryExhausted, Attempts: attempts}
}

// IsRetryable reports whether a failed operation carrying this error may
// be retried at all.
func IsRetryable(err error) bool {
	e, ok := asError(err)
	if !ok {
		return false
	}
	switch e.Kind {
	case Network, Timeout, RateLimit, Server:
		return true
	case Http:
		return e.Status == 429 || (e.Status >= 500 && e.Status <= 599)
	default:
		return false
	}
}

// ShouldRetryImmediately reports whether a retry should be attempted
// without waiting for the backoff delay — reserved for errors where a
// delay offers no benefit (the connection itself failed, or the upstream
// is a transient gateway error).
func ShouldRetryImmediately(err error) bool {
	e, ok := asError(err)
	if !ok {
		return false
	}
	switch e.Kind {
	case Network, Timeout:
		return true
	case Http:
		return e.Status == 502 || e.Status == 503 || e.Status == 504
	default:
		return false
	}
}

func asError(err error) (*Error, bool) {
	e, ok := err.(*Error)
	return e, ok
}
