package probe

import (
	"errors"
	"fmt"
)

// Kind classifies why a probe failed
type Kind string

const (
	// KindNone is reported by successful results.
	KindNone Kind = ""
	// KindSpawn covers missing executables, permission errors and abnormal exits.
	KindSpawn Kind = "PROCESS_SPAWN_FAILURE"
	// KindParse covers command output that does not have the expected shape.
	KindParse Kind = "PROCESS_OUTPUT_PARSE_FAILURE"
	// KindNetwork covers transport, TLS and timeout failures, collapsed into one kind.
	KindNetwork Kind = "NETWORK_FAILURE"
	// KindMalformedInput covers inputs outside a pure function's assumptions.
	KindMalformedInput Kind = "MALFORMED_INPUT"
	// KindUnavailable covers native and exporter sources that could not answer.
	KindUnavailable Kind = "SOURCE_UNAVAILABLE"
)

// Error is the error type produced at the probe boundary. It never leaves a probe;
// probes convert it into a Failed result.
type Error struct {
	Kind Kind
	Fact Fact
	Err  error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Fact != "" {
		return fmt.Sprintf("%s: %v", e.Fact, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying cause for errors.Is and errors.As support.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewError wraps err with a kind and the fact it was gathering.
func NewError(kind Kind, fact Fact, err error) *Error {
	return &Error{Kind: kind, Fact: fact, Err: err}
}

// KindOf extracts the Kind of err, or KindSpawn when err carries none.
func KindOf(err error) Kind {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return KindSpawn
}
