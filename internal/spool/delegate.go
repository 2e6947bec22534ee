package spool

// Failure context labels passed to Delegate.OnFailure so external telemetry
// can distinguish the two write paths.
const (
	// ContextPayloadSerialization marks failures while streaming a Payload
	// through Write.
	ContextPayloadSerialization = "payload serialization"
	// ContextExternalReportCopy marks failures while persisting an already
	// serialized blob through EnqueueRaw.
	ContextExternalReportCopy = "external report copy"
)

// Delegate is the sole external error-reporting channel for a store.
// OnFailure is invoked when a payload cannot be serialized or persisted
// correctly; file is the path of the affected (possibly partial) artifact
// and contextLabel is one of the Context constants above.
//
// Implementations are called with the store mutex held and must not call
// back into the store.
type Delegate interface {
	OnFailure(err error, file string, contextLabel string)
}

// DelegateFunc adapts a function to the Delegate interface.
type DelegateFunc func(err error, file string, contextLabel string)

// OnFailure implements Delegate.
func (f DelegateFunc) OnFailure(err error, file string, contextLabel string) {
	f(err, file, contextLabel)
}
