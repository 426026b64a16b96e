// ABOUTME: Configuration management for genetic algorithm parameters
// ABOUTME: Handles loading/saving TOML config files with fallback to defaults

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"
)

// GAConfig holds all tunable genetic algorithm parameters.
type GAConfig struct {
	PopulationSize int    `toml:"population_size"`
	NumChildren    int    `toml:"num_children"`
	SelectionType  string `toml:"selection_type"` // Greedy|Ent|DistancePreserving
	EAXType        string `toml:"eax_type"` // EAX_Rand|Block2|EAX_<N>_AB
	TimeoutSeconds int    `toml:"timeout_seconds"`

	CheckpointSave string `toml:"checkpoint_save"`
	CheckpointLoad string `toml:"checkpoint_load"`
}

// GetConfigPath returns the default config file path.
// First tries current directory, then falls back to ~/.config/eax-ga/config.toml.
func GetConfigPath() string {
	if _, err := os.Stat("./eax-ga.toml"); err == nil {
		return "./eax-ga.toml"
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "./eax-ga.toml"
	}

	return filepath.Join(home, ".config", "eax-ga", "config.toml")
}

// LoadConfig loads configuration from a TOML file.
// If the file doesn't exist or fails to load, returns default config.
func LoadConfig(path string) (GAConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return DefaultConfig(), fmt.Errorf("failed to read config file: %w", err)
	}

	var config GAConfig
	if err := toml.Unmarshal(data, &config); err != nil {
		return DefaultConfig(), fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveConfig saves configuration to a TOML file.
func SaveConfig(path string, config GAConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			fmt.Printf("Warning: failed to close config file: %v\n", err)
		}
	}()

	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(config); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// SharedConfig wraps GAConfig with a mutex so a concurrently running
// terminal UI can adjust tunables between generations; the generational
// engine itself stays single-threaded and only the next generation
// observes a change.
type SharedConfig struct {
	mu     sync.RWMutex
	config GAConfig
}

// NewSharedConfig wraps an initial config for concurrent access.
func NewSharedConfig(cfg GAConfig) *SharedConfig {
	return &SharedConfig{config: cfg}
}

// Get returns a copy of the current config (thread-safe read).
func (sc *SharedConfig) Get() GAConfig {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.config
}

// Update updates the config (thread-safe write).
func (sc *SharedConfig) Update(cfg GAConfig) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.config = cfg
}

// DefaultConfig returns the default GA configuration.
func DefaultConfig() GAConfig {
	return GAConfig{
		PopulationSize: 100,
		NumChildren:    30,
		SelectionType:  "Greedy",
		EAXType:        "EAX_Rand",
		TimeoutSeconds: 3600,
	}
}
