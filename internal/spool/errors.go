package spool

import "errors"

// ErrDisabled is returned by mutating operations on a store whose directory
// could not be prepared at construction. The condition is permanent for the
// lifetime of the store.
var ErrDisabled = errors.New("spool: store disabled")
