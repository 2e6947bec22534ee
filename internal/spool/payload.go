package spool

import (
	"encoding/json"
	"io"
)

// Payload is anything that can serialize itself as UTF-8 text onto a
// streaming writer. The schema of the serialized form is owned by the
// payload producer; the store treats the bytes as opaque.
type Payload interface {
	EncodeTo(w io.Writer) error
}

// PayloadFunc adapts a function to the Payload interface.
type PayloadFunc func(w io.Writer) error

// EncodeTo implements Payload.
func (f PayloadFunc) EncodeTo(w io.Writer) error {
	return f(w)
}

// JSONPayload wraps an arbitrary value as a Payload that streams its
// encoding/json representation.
func JSONPayload(v any) Payload {
	return PayloadFunc(func(w io.Writer) error {
		return json.NewEncoder(w).Encode(v)
	})
}
