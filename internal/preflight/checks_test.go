package preflight_test

import (
	"os"
	"path/filepath"
	"testing"

	"outbox/internal/preflight"
	"outbox/internal/testsupport"
)

func TestCheckDirectoryAccess(t *testing.T) {
	dir := t.TempDir()

	result := preflight.CheckDirectoryAccess("Spool root", dir)
	if !result.Passed {
		t.Fatalf("writable temp dir should pass: %+v", result)
	}
	if result.Name != "Spool root" {
		t.Fatalf("name = %q", result.Name)
	}

	missing := preflight.CheckDirectoryAccess("Spool root", filepath.Join(dir, "absent"))
	if missing.Passed {
		t.Fatalf("missing dir should fail: %+v", missing)
	}

	file := filepath.Join(dir, "file")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	notDir := preflight.CheckDirectoryAccess("Spool root", file)
	if notDir.Passed {
		t.Fatalf("regular file should fail: %+v", notDir)
	}
}

func TestCheckDiskSpace(t *testing.T) {
	result := preflight.CheckDiskSpace("Spool disk space", t.TempDir())
	if result.Name != "Spool disk space" || result.Detail == "" {
		t.Fatalf("unexpected result: %+v", result)
	}

	missing := preflight.CheckDiskSpace("Spool disk space", filepath.Join(t.TempDir(), "absent"))
	if missing.Passed {
		t.Fatalf("statfs on missing path should fail: %+v", missing)
	}
}

func TestRunAllCoversConfiguredDirectories(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}

	results := preflight.RunAll(cfg)
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	for _, result := range results {
		if !result.Passed {
			t.Fatalf("check %q failed on fresh directories: %s", result.Name, result.Detail)
		}
	}
}

func TestRunAllNilConfig(t *testing.T) {
	if results := preflight.RunAll(nil); results != nil {
		t.Fatalf("RunAll(nil) = %v, want nil", results)
	}
}
