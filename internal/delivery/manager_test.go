package delivery_test

import (
	"context"
	"errors"
	"io"
	"os"
	"sync"
	"testing"
	"time"

	"outbox/internal/delivery"
	"outbox/internal/logging"
	"outbox/internal/spool"
	"outbox/internal/testsupport"
)

func TestDeliverOnceCommitsDeliveredFiles(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.EventStore(t, cfg)

	var (
		mu        sync.Mutex
		delivered = map[string]string{}
	)
	client := delivery.ClientFunc(func(_ context.Context, name string, body io.Reader) error {
		data, err := io.ReadAll(body)
		if err != nil {
			return err
		}
		mu.Lock()
		defer mu.Unlock()
		delivered[name] = string(data)
		return nil
	})

	for _, content := range []string{"one", "two", "three"} {
		if _, err := store.EnqueueRaw(content); err != nil {
			t.Fatalf("enqueue: %v", err)
		}
	}

	manager := delivery.NewManager(cfg, client, logging.NewNop(), store)
	sent, failed := manager.DeliverOnce(context.Background())
	if sent != 3 || failed != 0 {
		t.Fatalf("DeliverOnce = (%d, %d), want (3, 0)", sent, failed)
	}

	mu.Lock()
	if len(delivered) != 3 {
		t.Fatalf("client saw %d payloads, want 3", len(delivered))
	}
	mu.Unlock()

	if got := store.Count(); got != 0 {
		t.Fatalf("store count after delivery = %d, want 0", got)
	}
}

func TestDeliverOnceReleasesFailedFiles(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.EventStore(t, cfg)

	path, err := store.EnqueueRaw("payload")
	if err != nil {
		t.Fatalf("enqueue: %v", err)
	}

	client := delivery.ClientFunc(func(context.Context, string, io.Reader) error {
		return errors.New("endpoint unreachable")
	})

	manager := delivery.NewManager(cfg, client, logging.NewNop(), store)
	sent, failed := manager.DeliverOnce(context.Background())
	if sent != 0 || failed != 1 {
		t.Fatalf("DeliverOnce = (%d, %d), want (0, 1)", sent, failed)
	}

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("failed payload must stay on disk: %v", err)
	}
	// Released files are immediately claimable again for the next cycle.
	reclaimed := store.Claim()
	if len(reclaimed) != 1 || reclaimed[0] != path {
		t.Fatalf("reclaim after failure = %v, want %v", reclaimed, path)
	}
}

func TestDeliverOnceSpansStores(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	events := testsupport.EventStore(t, cfg)
	sessions := testsupport.NewStore(t, spool.Options{
		Root:     cfg.Paths.SpoolDir,
		Folder:   cfg.Spool.SessionFolder,
		Capacity: cfg.Spool.SessionCapacity,
	})

	if _, err := events.EnqueueRaw("event payload"); err != nil {
		t.Fatalf("enqueue event: %v", err)
	}
	if _, err := sessions.EnqueueRaw("session payload"); err != nil {
		t.Fatalf("enqueue session: %v", err)
	}

	client := delivery.ClientFunc(func(_ context.Context, _ string, body io.Reader) error {
		_, err := io.Copy(io.Discard, body)
		return err
	})
	manager := delivery.NewManager(cfg, client, logging.NewNop(), events, sessions)

	sent, failed := manager.DeliverOnce(context.Background())
	if sent != 2 || failed != 0 {
		t.Fatalf("DeliverOnce = (%d, %d), want (2, 0)", sent, failed)
	}
	if events.Count() != 0 || sessions.Count() != 0 {
		t.Fatalf("stores not drained: events=%d sessions=%d", events.Count(), sessions.Count())
	}
}

func TestStartAndStop(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.EventStore(t, cfg)

	if _, err := store.EnqueueRaw("payload"); err != nil {
		t.Fatalf("enqueue: %v", err)
	}

	done := make(chan struct{})
	var once sync.Once
	client := delivery.ClientFunc(func(_ context.Context, _ string, body io.Reader) error {
		if _, err := io.ReadAll(body); err != nil {
			return err
		}
		once.Do(func() { close(done) })
		return nil
	})

	manager := delivery.NewManager(cfg, client, logging.NewNop(), store)
	if err := manager.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	if !manager.Running() {
		t.Fatal("manager should report running after Start")
	}
	if err := manager.Start(context.Background()); err == nil {
		t.Fatal("second Start should fail while running")
	}

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("delivery loop never shipped the spooled payload")
	}

	manager.Stop()
	if manager.Running() {
		t.Fatal("manager should report stopped after Stop")
	}
	// Stop is idempotent.
	manager.Stop()
}

func TestStartRequiresClient(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.EventStore(t, cfg)

	manager := delivery.NewManager(cfg, nil, logging.NewNop(), store)
	if err := manager.Start(context.Background()); err == nil {
		t.Fatal("Start without a client should fail")
	}
}
