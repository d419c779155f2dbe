package wijjit

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config is the user-tunable runtime configuration, loaded from a TOML
// file. Zero values fall back to defaults at load time.
type Config struct {
	// Theme names a registered theme.
	Theme string `toml:"theme"`
	// AnimationIntervalMs is the frame interval while animations run.
	AnimationIntervalMs int `toml:"animation_interval_ms"`
	// Mouse enables mouse reporting.
	Mouse bool `toml:"mouse"`
	// Keys rebinds global actions to key names, e.g. quit = "ctrl+q".
	Keys map[string]string `toml:"keys"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Theme:               "default",
		AnimationIntervalMs: 33,
		Mouse:               true,
		Keys:                map[string]string{},
	}
}

// AnimationInterval returns the frame interval as a duration.
func (c *Config) AnimationInterval() time.Duration {
	if c.AnimationIntervalMs <= 0 {
		return 33 * time.Millisecond
	}
	return time.Duration(c.AnimationIntervalMs) * time.Millisecond
}

// KeyFor returns the bound key name for an action, or the given default.
func (c *Config) KeyFor(action, fallback string) string {
	if k, ok := c.Keys[action]; ok && k != "" {
		return canonicalKeyName(k)
	}
	return canonicalKeyName(fallback)
}

// LoadConfig reads a TOML config file. A missing file is not an error and
// yields the defaults; a malformed file is.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.Theme == "" {
		cfg.Theme = "default"
	}
	if cfg.Keys == nil {
		cfg.Keys = map[string]string{}
	}
	return cfg, nil
}

// SaveConfig writes the config as TOML, creating the file if needed.
func SaveConfig(path string, cfg *Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}
