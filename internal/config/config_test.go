package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"matchlock/internal/config"
)

func TestLoadDefaultsAndExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantData := filepath.Join(tempHome, ".local", "share", "matchlock")
	if cfg.Paths.DataDir != wantData {
		t.Fatalf("unexpected data dir: got %q want %q", cfg.Paths.DataDir, wantData)
	}
	if cfg.Matching.FuzzyThreshold != 0.8 {
		t.Fatalf("unexpected fuzzy threshold: %v", cfg.Matching.FuzzyThreshold)
	}
	if cfg.Matching.Workers != 4 {
		t.Fatalf("unexpected worker count: %d", cfg.Matching.Workers)
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	for _, dir := range []string{cfg.Paths.DataDir, cfg.Paths.LogDir} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Fatalf("expected directory %q to exist: %v", dir, err)
		}
		if !info.IsDir() {
			t.Fatalf("expected %q to be directory", dir)
		}
	}
	if cfg.DatabasePath() != filepath.Join(wantData, "catalog.db") {
		t.Fatalf("unexpected database path: %q", cfg.DatabasePath())
	}
}

func TestLoadExplicitFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "matchlock.toml")
	content := `
[paths]
data_dir = "` + filepath.Join(dir, "data") + `"
log_dir = "` + filepath.Join(dir, "logs") + `"

[library]
roots = ["` + filepath.Join(dir, "movies") + `", "` + filepath.Join(dir, "movies") + `", "  "]

[matching]
fuzzy_threshold = 0.9
workers = 2

[logging]
format = "JSON"
level = "DEBUG"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("expected explicit config at %q to load, got %q exists=%v", path, resolved, exists)
	}
	if cfg.Matching.FuzzyThreshold != 0.9 {
		t.Fatalf("unexpected fuzzy threshold: %v", cfg.Matching.FuzzyThreshold)
	}
	if cfg.Matching.FuzzyMargin != 0.1 {
		t.Fatalf("expected default fuzzy margin, got %v", cfg.Matching.FuzzyMargin)
	}
	if cfg.Matching.Workers != 2 {
		t.Fatalf("unexpected workers: %d", cfg.Matching.Workers)
	}
	if len(cfg.Library.Roots) != 1 {
		t.Fatalf("expected duplicate and blank roots dropped, got %v", cfg.Library.Roots)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("expected lowercased logging settings, got %+v", cfg.Logging)
	}
}

func TestLoadRejectsInvalidMatching(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"threshold too high", "[matching]\nfuzzy_threshold = 1.5\n"},
		{"negative margin", "[matching]\nfuzzy_margin = -0.2\n"},
		{"negative workers", "[matching]\nworkers = -1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "matchlock.toml")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatalf("write config: %v", err)
			}
			if _, _, _, err := config.Load(path); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestCreateSampleParses(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	written, err := config.CreateSample(path, false)
	if err != nil {
		t.Fatalf("CreateSample: %v", err)
	}

	data, err := os.ReadFile(written)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	var cfg config.Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		t.Fatalf("sample config does not parse: %v", err)
	}

	if _, err := config.CreateSample(path, false); err == nil {
		t.Fatal("expected error when config already exists")
	}
}

func TestCreateSampleOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("# stale\n"), 0o644); err != nil {
		t.Fatalf("seed existing config: %v", err)
	}

	written, err := config.CreateSample(path, true)
	if err != nil {
		t.Fatalf("CreateSample overwrite: %v", err)
	}

	data, err := os.ReadFile(written)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if strings.Contains(string(data), "# stale") {
		t.Fatal("expected existing config to be replaced")
	}
	var cfg config.Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		t.Fatalf("overwritten config does not parse: %v", err)
	}
}
