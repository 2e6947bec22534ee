// Package daemon wires the spool stores and delivery manager into a
// single-instance background process.
package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync/atomic"

	"github.com/gofrs/flock"

	"outbox/internal/config"
	"outbox/internal/delivery"
	"outbox/internal/logging"
	"outbox/internal/preflight"
	"outbox/internal/spool"
)

// Daemon owns one spool store per logical stream plus the delivery loop,
// and enforces single-instance execution through a lock file.
type Daemon struct {
	cfg      *config.Config
	logger   *slog.Logger
	events   *spool.Store
	sessions *spool.Store
	delivery *delivery.Manager

	lockPath string
	lock     *flock.Flock

	running atomic.Bool
	cancel  context.CancelFunc
}

// StoreStatus describes one spool store for status output.
type StoreStatus struct {
	Name     string
	Dir      string
	Count    int
	Capacity int
	Disabled bool
}

// Status represents daemon runtime information.
type Status struct {
	Running      bool
	Delivering   bool
	Stores       []StoreStatus
	LockFilePath string
}

// New constructs a daemon with initialized stores. A nil client leaves the
// delivery loop disabled; the daemon then only spools.
func New(cfg *config.Config, logger *slog.Logger, client delivery.Client) (*Daemon, error) {
	if cfg == nil || logger == nil {
		return nil, errors.New("daemon requires config and logger")
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	delegate := logDelegate(logger)
	events := spool.New(spool.Options{
		Root:     cfg.Paths.SpoolDir,
		Folder:   cfg.Spool.EventFolder,
		Capacity: cfg.Spool.EventCapacity,
		Logger:   logging.NewComponentLogger(logger, "spool"),
		Delegate: delegate,
	})
	sessions := spool.New(spool.Options{
		Root:     cfg.Paths.SpoolDir,
		Folder:   cfg.Spool.SessionFolder,
		Capacity: cfg.Spool.SessionCapacity,
		Logger:   logging.NewComponentLogger(logger, "spool"),
		Delegate: delegate,
	})

	d := &Daemon{
		cfg:      cfg,
		logger:   logging.NewComponentLogger(logger, "daemon"),
		events:   events,
		sessions: sessions,
		lockPath: filepath.Join(cfg.Paths.LogDir, "outboxd.lock"),
	}
	d.lock = flock.New(d.lockPath)

	if client != nil {
		d.delivery = delivery.NewManager(cfg, client, logger, events, sessions)
	}
	return d, nil
}

// logDelegate routes spool failures into the structured log. It is the
// default Delegate when no external telemetry sink is wired in.
func logDelegate(logger *slog.Logger) spool.Delegate {
	delegateLogger := logging.NewComponentLogger(logger, "spool-delegate")
	return spool.DelegateFunc(func(err error, file string, contextLabel string) {
		delegateLogger.Error("payload could not be persisted",
			logging.Error(err),
			logging.String(logging.FieldFile, filepath.Base(file)),
			logging.String(logging.FieldContext, contextLabel),
		)
	})
}

// Start acquires the daemon lock, logs preflight results, and launches the
// delivery loop when one is configured.
func (d *Daemon) Start(ctx context.Context) error {
	if d.running.Load() {
		return errors.New("daemon already running")
	}

	ok, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("another outbox daemon instance is already running")
	}

	for _, result := range preflight.RunAll(d.cfg) {
		if result.Passed {
			d.logger.Debug("preflight check passed", logging.String("check", result.Name), logging.String("detail", result.Detail))
			continue
		}
		d.logger.Warn("preflight check failed", logging.String("check", result.Name), logging.String("detail", result.Detail))
	}

	runCtx, cancel := context.WithCancel(ctx)
	d.cancel = cancel

	if d.delivery != nil {
		if err := d.delivery.Start(runCtx); err != nil {
			_ = d.lock.Unlock()
			cancel()
			d.cancel = nil
			return fmt.Errorf("start delivery: %w", err)
		}
	} else {
		d.logger.Info("delivery endpoint not configured; spooling only")
	}

	d.running.Store(true)
	d.logger.Info("outbox daemon started", logging.String("lock", d.lockPath))
	return nil
}

// Stop halts delivery, flushes the spool teardown registry, and releases
// the daemon lock.
func (d *Daemon) Stop() {
	if !d.running.Load() {
		return
	}

	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	if d.delivery != nil {
		d.delivery.Stop()
	}
	if removed := spool.Cleanup(); removed > 0 {
		d.logger.Info("removed files pending deletion", logging.Int(logging.FieldCount, removed))
	}
	if err := d.lock.Unlock(); err != nil {
		d.logger.Warn("failed to release daemon lock", logging.Error(err))
	}
	d.running.Store(false)
	d.logger.Info("outbox daemon stopped")
}

// Events returns the event spool store.
func (d *Daemon) Events() *spool.Store {
	return d.events
}

// Sessions returns the session spool store.
func (d *Daemon) Sessions() *spool.Store {
	return d.sessions
}

// Status returns the current daemon status.
func (d *Daemon) Status() Status {
	return Status{
		Running:      d.running.Load(),
		Delivering:   d.delivery != nil && d.delivery.Running(),
		LockFilePath: d.lockPath,
		Stores: []StoreStatus{
			storeStatus(d.cfg.Spool.EventFolder, d.events),
			storeStatus(d.cfg.Spool.SessionFolder, d.sessions),
		},
	}
}

func storeStatus(name string, store *spool.Store) StoreStatus {
	return StoreStatus{
		Name:     name,
		Dir:      store.Dir(),
		Count:    store.Count(),
		Capacity: store.Capacity(),
		Disabled: store.Disabled(),
	}
}
