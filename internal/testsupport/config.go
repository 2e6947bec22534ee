package testsupport

import (
	"path/filepath"
	"testing"

	"outbox/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.SpoolDir = filepath.Join(base, "spool")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Spool.EventCapacity = 8
	cfg.Spool.SessionCapacity = 8
	cfg.Delivery.PollInterval = 1
	cfg.Delivery.RetryInterval = 1

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithEventCapacity overrides the event spool capacity on the test config.
func WithEventCapacity(capacity int) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Spool.EventCapacity = capacity
	}
}

// WithEndpoint sets the delivery endpoint on the test config.
func WithEndpoint(endpoint string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Delivery.Endpoint = endpoint
	}
}
