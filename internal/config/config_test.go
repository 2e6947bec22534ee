package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"outbox/internal/config"
)

func TestDefaultValidates(t *testing.T) {
	cfg := config.Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Spool.EventFolder == cfg.Spool.SessionFolder {
		t.Fatal("default stream folders must differ")
	}
	if cfg.Spool.EventCapacity < 1 || cfg.Spool.SessionCapacity < 1 {
		t.Fatal("default capacities must be positive")
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, path, found, err := config.Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if found {
		t.Fatalf("found = true for missing file %s", path)
	}
	defaults := config.Default()
	if cfg.Spool.EventCapacity != defaults.Spool.EventCapacity {
		t.Fatalf("event capacity = %d, want default %d", cfg.Spool.EventCapacity, defaults.Spool.EventCapacity)
	}
	if cfg.Logging.Format != "console" {
		t.Fatalf("logging format = %q, want console", cfg.Logging.Format)
	}
}

func TestLoadAppliesFileOverDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[paths]
spool_dir = "` + filepath.Join(dir, "spool") + `"
log_dir = "` + filepath.Join(dir, "logs") + `"

[spool]
event_capacity = 5

[delivery]
endpoint = "https://ingest.example.com/payloads"
concurrency = 2

[logging]
format = "JSON"
level = "DEBUG"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, found, err := config.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !found || resolved != path {
		t.Fatalf("found=%v resolved=%q, want file at %q", found, resolved, path)
	}
	if cfg.Spool.EventCapacity != 5 {
		t.Fatalf("event capacity = %d, want 5", cfg.Spool.EventCapacity)
	}
	if cfg.Spool.SessionCapacity != config.Default().Spool.SessionCapacity {
		t.Fatalf("session capacity should keep default, got %d", cfg.Spool.SessionCapacity)
	}
	if cfg.Delivery.Endpoint != "https://ingest.example.com/payloads" {
		t.Fatalf("endpoint = %q", cfg.Delivery.Endpoint)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("logging not normalized: format=%q level=%q", cfg.Logging.Format, cfg.Logging.Level)
	}
	if !filepath.IsAbs(cfg.Paths.SpoolDir) {
		t.Fatalf("spool dir not absolute: %q", cfg.Paths.SpoolDir)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "zero capacity",
			content: "[spool]\nevent_capacity = 0\n",
			wantErr: "event_capacity",
		},
		{
			name:    "colliding folders",
			content: "[spool]\nevent_folder = \"shared\"\nsession_folder = \"shared\"\n",
			wantErr: "must differ",
		},
		{
			name:    "bad log format",
			content: "[logging]\nformat = \"xml\"\n",
			wantErr: "logging.format",
		},
		{
			name:    "zero concurrency",
			content: "[delivery]\nconcurrency = 0\n",
			wantErr: "concurrency",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tc.content), 0o644); err != nil {
				t.Fatalf("write config: %v", err)
			}
			_, _, _, err := config.Load(path)
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("err = %v, want mention of %q", err, tc.wantErr)
			}
		})
	}
}

func TestExpandPathResolvesHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}
	got, err := config.ExpandPath("~/spool")
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	if got != filepath.Join(home, "spool") {
		t.Fatalf("expand = %q, want under %q", got, home)
	}
}

func TestCreateSampleParses(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("create sample: %v", err)
	}
	if _, _, found, err := config.Load(path); err != nil {
		t.Fatalf("sample config does not load: %v", err)
	} else if !found {
		t.Fatal("sample config not found at written path")
	}
}

func TestEnsureDirectories(t *testing.T) {
	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.SpoolDir = filepath.Join(base, "spool")
	cfg.Paths.LogDir = filepath.Join(base, "logs")

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}
	for _, dir := range []string{cfg.Paths.SpoolDir, cfg.Paths.LogDir} {
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			t.Fatalf("directory %s missing after EnsureDirectories: %v", dir, err)
		}
	}
}
