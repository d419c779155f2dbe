package wijjit

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestConfig(t *testing.T) {
	t.Run("MissingFileYieldsDefaults", func(t *testing.T) {
		cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
		if err != nil {
			t.Fatalf("missing file should not error: %v", err)
		}
		if cfg.Theme != "default" || !cfg.Mouse {
			t.Errorf("defaults = %+v", cfg)
		}
	})

	t.Run("LoadsValues", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "wijjit.toml")
		data := "theme = \"midnight\"\nanimation_interval_ms = 16\nmouse = false\n\n[keys]\nquit_soft = \"ctrl+q\"\n"
		if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
			t.Fatal(err)
		}
		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatal(err)
		}
		if cfg.Theme != "midnight" || cfg.Mouse {
			t.Errorf("cfg = %+v", cfg)
		}
		if cfg.AnimationInterval() != 16*time.Millisecond {
			t.Errorf("interval = %v", cfg.AnimationInterval())
		}
		if got := cfg.KeyFor("quit_soft", "q"); got != "ctrl+q" {
			t.Errorf("KeyFor = %q", got)
		}
		if got := cfg.KeyFor("unbound", "X"); got != "x" {
			t.Errorf("fallback should be canonicalized, got %q", got)
		}
	})

	t.Run("MalformedFileErrors", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.toml")
		os.WriteFile(path, []byte("theme = [unclosed"), 0o644)
		if _, err := LoadConfig(path); err == nil {
			t.Error("malformed TOML should error")
		}
	})

	t.Run("SaveRoundTrip", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.toml")
		cfg := DefaultConfig()
		cfg.Theme = "midnight"
		cfg.Keys["open"] = "ctrl+o"
		if err := SaveConfig(path, cfg); err != nil {
			t.Fatal(err)
		}
		loaded, err := LoadConfig(path)
		if err != nil {
			t.Fatal(err)
		}
		if loaded.Theme != "midnight" || loaded.Keys["open"] != "ctrl+o" {
			t.Errorf("round trip = %+v", loaded)
		}
	})

	t.Run("ZeroIntervalFallsBack", func(t *testing.T) {
		cfg := &Config{}
		if cfg.AnimationInterval() != 33*time.Millisecond {
			t.Errorf("interval = %v", cfg.AnimationInterval())
		}
	})
}
