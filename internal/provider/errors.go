package provider

import "fmt"

// ErrorKind classifies provider failures
type ErrorKind string

const (
	// KindTransport covers network errors, timeouts and non-2xx
	// responses.
	KindTransport ErrorKind = "transport"

	// KindMalformed covers success responses that lack a parseable
	// candidate.
	KindMalformed ErrorKind = "malformed_response"

	// KindConfiguration covers a provider selected without its required
	// credential. Treated the same as "provider unavailable".
	KindConfiguration ErrorKind = "configuration"
)

// Error is a typed provider failure. The fallback chain catches every
// kind the same way: log it and try the next provider.
type Error struct {
	Provider string
	Kind     ErrorKind
	Err      error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s provider: %s: %v", e.Provider, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s provider: %s", e.Provider, e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

func newError(provider string, kind ErrorKind, err error) *Error {
	return &Error{Provider: provider, Kind: kind, Err: err}
}
