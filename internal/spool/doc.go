// Package spool implements the bounded, file-backed queue that holds
// serialized payloads on local disk until the delivery subsystem ships them.
//
// A Store owns one directory per logical payload stream. Producers append
// files through Write and EnqueueRaw; the store evicts the oldest unclaimed
// files before each append so the directory never knowingly exceeds its
// capacity. Consumers check files out with Claim, then either Commit them
// (delivered, delete from disk) or Release them (retry later). Claims live
// only in process memory; ordering for eviction is derived entirely from
// filenames so no file ever needs to be opened to rank it.
//
// Storage failures never escape this package as panics or fatal errors. A
// store whose directory cannot be created is permanently disabled and turns
// every mutation into a cheap no-op, serialization failures are routed to
// the constructor-supplied Delegate, and deletes that fail are retried once
// at process shutdown via Cleanup.
package spool
