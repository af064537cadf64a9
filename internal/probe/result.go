package probe

import "encoding/json"

// Sentinels substituted for facts whose probe failed
const (
	UnknownText   = "unknown"
	NotDetectable = "not detectable"
)

// Result is the outcome of one probe: either a parsed value or the fact's sentinel
// together with the reason it failed. The zero value is a Failed result with a zero
// sentinel and no reason; use Ok or Failed to build one.
type Result[T any] struct {
	value  T
	ok     bool
	kind   Kind
	reason string
}

// Ok wraps a successfully obtained value.
func Ok[T any](value T) Result[T] {
	return Result[T]{value: value, ok: true}
}

// Failed builds a failure carrying sentinel, with err's message as the reason.
func Failed[T any](sentinel T, err error) Result[T] {
	reason := "unknown error"
	if err != nil && err.Error() != "" {
		reason = err.Error()
	}
	return Result[T]{value: sentinel, kind: KindOf(err), reason: reason}
}

// OK reports whether the probe produced a real value.
func (r Result[T]) OK() bool { return r.ok }

// Value returns the obtained value, or the sentinel for failed results.
func (r Result[T]) Value() T { return r.value }

// Reason returns the human-readable failure reason; empty for successful results.
func (r Result[T]) Reason() string { return r.reason }

// Kind returns the failure classification; KindNone for successful results.
func (r Result[T]) Kind() Kind { return r.kind }

// failedView is the encoded form of a Failed result
type failedView[T any] struct {
	Sentinel T      `json:"sentinel" yaml:"sentinel"`
	Error    string `json:"error" yaml:"error"`
}

// MarshalJSON encodes Ok results as their bare value and Failed results as
// {"sentinel": ..., "error": ...}.
func (r Result[T]) MarshalJSON() ([]byte, error) {
	if r.ok {
		return json.Marshal(r.value)
	}
	return json.Marshal(failedView[T]{Sentinel: r.value, Error: r.reason})
}

// MarshalYAML mirrors MarshalJSON for gopkg.in/yaml.v3.
func (r Result[T]) MarshalYAML() (interface{}, error) {
	if r.ok {
		return r.value, nil
	}
	return failedView[T]{Sentinel: r.value, Error: r.reason}, nil
}
