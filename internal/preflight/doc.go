// Package preflight runs startup environment checks for the spool.
//
// Checks never abort anything: the daemon logs failures and keeps running,
// mirroring the fail-soft policy of the stores themselves, and the CLI
// status command renders the same results for operators.
package preflight
