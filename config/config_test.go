// ABOUTME: Tests for configuration load/save functionality
// ABOUTME: Validates TOML parsing and default config fallback behavior

package config

import (
	"os"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.PopulationSize != 100 {
		t.Errorf("Expected PopulationSize 100, got %d", cfg.PopulationSize)
	}
	if cfg.EAXType != "EAX_Rand" {
		t.Errorf("Expected EAXType EAX_Rand, got %q", cfg.EAXType)
	}
}

func TestSaveAndLoadConfig(t *testing.T) {
	tmpfile, err := os.CreateTemp(t.TempDir(), "eax-ga-*.toml")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tmpfile.Name())
	tmpfile.Close()

	cfg := DefaultConfig()
	cfg.PopulationSize = 250
	cfg.EAXType = "Block2"
	if err := SaveConfig(tmpfile.Name(), cfg); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	loaded, err := LoadConfig(tmpfile.Name())
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if loaded.PopulationSize != cfg.PopulationSize {
		t.Errorf("PopulationSize mismatch: got %d, want %d", loaded.PopulationSize, cfg.PopulationSize)
	}
	if loaded.EAXType != cfg.EAXType {
		t.Errorf("EAXType mismatch: got %q, want %q", loaded.EAXType, cfg.EAXType)
	}
}

func TestLoadNonExistentConfig(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.toml")
	if err != nil {
		t.Errorf("Expected no error for non-existent file, got: %v", err)
	}

	defaults := DefaultConfig()
	if cfg.PopulationSize != defaults.PopulationSize {
		t.Errorf("Expected default PopulationSize %d, got %d", defaults.PopulationSize, cfg.PopulationSize)
	}
}
