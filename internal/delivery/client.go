package delivery

import (
	"context"
	"io"
)

// Client ships a single serialized payload to its destination. name is the
// spooled file's base name, body streams its content. A nil error commits
// the file (it is deleted); any error releases it for retry.
type Client interface {
	Deliver(ctx context.Context, name string, body io.Reader) error
}

// ClientFunc adapts a function to the Client interface.
type ClientFunc func(ctx context.Context, name string, body io.Reader) error

// Deliver implements Client.
func (f ClientFunc) Deliver(ctx context.Context, name string, body io.Reader) error {
	return f(ctx, name, body)
}
