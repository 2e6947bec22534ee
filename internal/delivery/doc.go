// Package delivery drains spool stores through an injected Client.
//
// The Manager owns the consumer side of the spool protocol: it periodically
// claims every deliverable file, attempts delivery concurrently through a
// bounded worker pool, commits files that shipped, and releases the rest
// for a later retry. The Client interface is the entire outward surface;
// network transport implementations live outside this repository.
package delivery
