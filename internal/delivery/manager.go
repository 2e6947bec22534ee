package delivery

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/sourcegraph/conc/pool"

	"outbox/internal/config"
	"outbox/internal/logging"
	"outbox/internal/spool"
)

// Manager runs the consumer poll loop over one or more spool stores.
type Manager struct {
	stores        []*spool.Store
	client        Client
	logger        *slog.Logger
	pollInterval  time.Duration
	retryInterval time.Duration
	concurrency   int

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// NewManager constructs a delivery manager for the given stores.
func NewManager(cfg *config.Config, client Client, logger *slog.Logger, stores ...*spool.Store) *Manager {
	return &Manager{
		stores:        stores,
		client:        client,
		logger:        logging.NewComponentLogger(logger, "delivery"),
		pollInterval:  time.Duration(cfg.Delivery.PollInterval) * time.Second,
		retryInterval: time.Duration(cfg.Delivery.RetryInterval) * time.Second,
		concurrency:   cfg.Delivery.Concurrency,
	}
}

// Start begins background delivery. It fails when the manager is already
// running or has no client to deliver through.
func (m *Manager) Start(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.running {
		return errors.New("delivery already running")
	}
	if m.client == nil {
		return errors.New("delivery client not configured")
	}

	runCtx, cancel := context.WithCancel(ctx)
	m.cancel = cancel
	m.running = true
	m.wg.Add(1)
	go m.run(runCtx)
	return nil
}

// Stop terminates background delivery and waits for in-flight attempts.
func (m *Manager) Stop() {
	m.mu.Lock()
	if !m.running {
		m.mu.Unlock()
		return
	}
	cancel := m.cancel
	m.running = false
	m.cancel = nil
	m.mu.Unlock()

	cancel()
	m.wg.Wait()
}

// Running reports whether the poll loop is active.
func (m *Manager) Running() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.running
}

func (m *Manager) run(ctx context.Context) {
	defer m.wg.Done()
	for {
		delivered, failed := m.DeliverOnce(ctx)
		if delivered > 0 || failed > 0 {
			m.logger.Info("delivery cycle finished",
				logging.Int("delivered", delivered), logging.Int("failed", failed))
		}

		wait := m.pollInterval
		if failed > 0 {
			wait = m.retryInterval
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(wait):
		}
	}
}

// DeliverOnce claims and attempts every deliverable file across all stores
// a single time, returning how many files shipped and how many were
// released for retry.
func (m *Manager) DeliverOnce(ctx context.Context) (delivered, failed int) {
	for _, store := range m.stores {
		d, f := m.deliverStore(ctx, store)
		delivered += d
		failed += f
	}
	return delivered, failed
}

func (m *Manager) deliverStore(ctx context.Context, store *spool.Store) (int, int) {
	paths := store.Claim()
	if len(paths) == 0 {
		return 0, 0
	}

	var (
		resultMu  sync.Mutex
		succeeded []string
		released  []string
	)

	workers := pool.New().WithMaxGoroutines(m.concurrency)
	for _, path := range paths {
		path := path
		workers.Go(func() {
			err := m.deliverFile(ctx, path)
			resultMu.Lock()
			defer resultMu.Unlock()
			if err != nil {
				released = append(released, path)
				return
			}
			succeeded = append(succeeded, path)
		})
	}
	workers.Wait()

	store.Commit(succeeded)
	store.Release(released)
	return len(succeeded), len(released)
}

func (m *Manager) deliverFile(ctx context.Context, path string) error {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			// Evicted or removed out-of-band between claim and open;
			// commit so the claim does not linger.
			return nil
		}
		m.logger.Warn("unable to read spooled payload",
			logging.String(logging.FieldFile, filepath.Base(path)), logging.Error(err))
		return err
	}
	defer file.Close()

	if err := m.client.Deliver(ctx, filepath.Base(path), file); err != nil {
		m.logger.Warn("delivery attempt failed; payload kept for retry",
			logging.String(logging.FieldFile, filepath.Base(path)), logging.Error(err))
		return err
	}
	return nil
}
