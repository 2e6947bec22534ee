package testsupport

import (
	"testing"

	"outbox/internal/config"
	"outbox/internal/spool"
)

// NewStore builds a spool store from the given options and flushes the
// package teardown registry when the test finishes.
func NewStore(t testing.TB, opts spool.Options) *spool.Store {
	t.Helper()

	store := spool.New(opts)
	t.Cleanup(func() {
		spool.Cleanup()
	})
	return store
}

// EventStore builds a store for the config's event stream.
func EventStore(t testing.TB, cfg *config.Config) *spool.Store {
	t.Helper()

	return NewStore(t, spool.Options{
		Root:     cfg.Paths.SpoolDir,
		Folder:   cfg.Spool.EventFolder,
		Capacity: cfg.Spool.EventCapacity,
	})
}
