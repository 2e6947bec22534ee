package spool

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCleanupRemovesDeferredFiles(t *testing.T) {
	dir := t.TempDir()

	present := filepath.Join(dir, "present.json")
	if err := os.WriteFile(present, []byte("x"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	gone := filepath.Join(dir, "already-gone.json")

	deferDelete(present)
	deferDelete(gone)

	if removed := Cleanup(); removed != 2 {
		t.Fatalf("Cleanup = %d, want 2 (missing files count as removed)", removed)
	}
	if _, err := os.Stat(present); !os.IsNotExist(err) {
		t.Fatalf("deferred file should be deleted, stat err = %v", err)
	}
}

func TestCleanupEmptiesRegistry(t *testing.T) {
	deferDelete(filepath.Join(t.TempDir(), "once.json"))

	Cleanup()
	if removed := Cleanup(); removed != 0 {
		t.Fatalf("second Cleanup = %d, want 0", removed)
	}
}

func TestCleanupWithEmptyRegistry(t *testing.T) {
	if removed := Cleanup(); removed != 0 {
		t.Fatalf("Cleanup on empty registry = %d, want 0", removed)
	}
}
