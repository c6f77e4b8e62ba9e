package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"rinna/internal/config"
)

func TestDefaultValidates(t *testing.T) {
	cfg := config.Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate, got %v", err)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if exists {
		t.Fatalf("expected missing config file, resolved %s", resolved)
	}
	if cfg.Workflow.DefaultPriority != "medium" {
		t.Fatalf("expected default priority medium, got %q", cfg.Workflow.DefaultPriority)
	}
	if !cfg.Notifications.Enabled {
		t.Fatal("expected notifications enabled by default")
	}
}

func TestLoadParsesAndNormalizes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := strings.Join([]string{
		"[paths]",
		`data_dir = "` + filepath.Join(dir, "data") + `"`,
		"[workflow]",
		`default_priority = " HIGH "`,
		"[logging]",
		`format = "JSON"`,
	}, "\n")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !exists {
		t.Fatal("expected config file to be found")
	}
	if cfg.Workflow.DefaultPriority != "high" {
		t.Fatalf("expected normalized priority high, got %q", cfg.Workflow.DefaultPriority)
	}
	if cfg.Logging.Format != "json" {
		t.Fatalf("expected normalized format json, got %q", cfg.Logging.Format)
	}
	if cfg.Paths.DataDir != filepath.Join(dir, "data") {
		t.Fatalf("unexpected data dir %q", cfg.Paths.DataDir)
	}
	if cfg.DatabasePath() != filepath.Join(dir, "data", "rinna.db") {
		t.Fatalf("unexpected database path %q", cfg.DatabasePath())
	}
}

func TestLoadRejectsUnknownPriority(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := "[workflow]\ndefault_priority = \"whenever\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("expected validation error for unknown priority")
	}
}

func TestEnsureDirectories(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(dir, "data")
	cfg.Paths.LogDir = filepath.Join(dir, "logs")
	cfg.Paths.NotificationsDir = filepath.Join(dir, "notify")

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	for _, p := range []string{cfg.Paths.DataDir, cfg.Paths.LogDir, cfg.Paths.NotificationsDir} {
		info, err := os.Stat(p)
		if err != nil || !info.IsDir() {
			t.Fatalf("expected directory %s to exist", p)
		}
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(data), "[notifications]") {
		t.Fatal("sample config missing notifications section")
	}
}
