package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// isolate points HOME and the working directory at empty temp dirs so the
// search path only sees files the test writes.
func isolate(t *testing.T) (home, work string) {
	t.Helper()
	home = t.TempDir()
	work = t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(work)
	return home, work
}

func TestEmbeddedMatchesDefaults(t *testing.T) {
	cfg, err := parseMemory(defaultMemoryYAML)
	if err != nil {
		t.Fatalf("embedded yaml: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultMemoryConfig()) {
		t.Errorf("embedded yaml = %+v, want %+v", cfg, DefaultMemoryConfig())
	}
}

func TestLoadMemorySearchOrder(t *testing.T) {
	home, work := isolate(t)

	cfg, err := LoadMemory("")
	if err != nil {
		t.Fatalf("LoadMemory: %v", err)
	}
	if cfg.Board.MaxLevel != 5 {
		t.Errorf("default max_level = %d, want 5", cfg.Board.MaxLevel)
	}

	writeFile(t, filepath.Join(work, "configs", "memory.yaml"), "board:\n  max_level: 3\n")
	cfg, _ = LoadMemory("")
	if cfg.Board.MaxLevel != 3 {
		t.Errorf("local max_level = %d, want 3", cfg.Board.MaxLevel)
	}

	writeFile(t, filepath.Join(home, ".arcade", "configs", "memory.yaml"), "board:\n  max_level: 4\n")
	cfg, _ = LoadMemory("")
	if cfg.Board.MaxLevel != 4 {
		t.Errorf("user max_level = %d, want 4 (user dir wins over ./configs)", cfg.Board.MaxLevel)
	}

	custom := filepath.Join(t.TempDir(), "custom.yaml")
	writeFile(t, custom, "board:\n  max_level: 7\n")
	cfg, _ = LoadMemory(custom)
	if cfg.Board.MaxLevel != 7 {
		t.Errorf("custom max_level = %d, want 7", cfg.Board.MaxLevel)
	}
}

func TestLoadMemoryInvalidUserFileFallsThrough(t *testing.T) {
	home, _ := isolate(t)
	writeFile(t, filepath.Join(home, ".arcade", "configs", "memory.yaml"), "board:\n  start_level: 0\n")

	cfg, err := LoadMemory("")
	if err != nil {
		t.Fatalf("LoadMemory: %v", err)
	}
	if cfg.Board.StartLevel != 1 {
		t.Errorf("start_level = %d, want default 1", cfg.Board.StartLevel)
	}
}

func TestLoadMemoryPartialOverride(t *testing.T) {
	isolate(t)
	custom := filepath.Join(t.TempDir(), "memory.yaml")
	writeFile(t, custom, "timing:\n  reset_delay_ms: 500\nrules:\n  policy: strict\n")

	cfg, err := LoadMemory(custom)
	if err != nil {
		t.Fatalf("LoadMemory: %v", err)
	}
	if cfg.Timing.ResetDelayMS != 500 {
		t.Errorf("reset_delay_ms = %d, want 500", cfg.Timing.ResetDelayMS)
	}
	if cfg.Rules.Policy != "strict" {
		t.Errorf("policy = %q, want strict", cfg.Rules.Policy)
	}
	// Keys not in the file keep their defaults
	if cfg.Board.MaxLevel != 5 || cfg.Timing.StatusTicks != 90 || !cfg.Rules.Advance {
		t.Errorf("unset keys lost their defaults: %+v", cfg)
	}
}

func TestLoadMemoryCustomErrors(t *testing.T) {
	isolate(t)
	dir := t.TempDir()

	if _, err := LoadMemory(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("missing custom file should fail")
	}

	broken := filepath.Join(dir, "broken.yaml")
	writeFile(t, broken, "board: [not a map\n")
	if _, err := LoadMemory(broken); err == nil {
		t.Error("malformed yaml should fail")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	writeFile(t, invalid, "rules:\n  policy: lenient\n")
	_, err := LoadMemory(invalid)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("err = %v, want ErrInvalidConfig", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*MemoryConfig)
		ok     bool
	}{
		{"defaults", func(*MemoryConfig) {}, true},
		{"empty policy", func(c *MemoryConfig) { c.Rules.Policy = "" }, true},
		{"zero start", func(c *MemoryConfig) { c.Board.StartLevel = 0 }, false},
		{"max below start", func(c *MemoryConfig) { c.Board.StartLevel = 3; c.Board.MaxLevel = 2 }, false},
		{"zero delay", func(c *MemoryConfig) { c.Timing.ResetDelayMS = 0 }, false},
		{"bad policy", func(c *MemoryConfig) { c.Rules.Policy = "turns" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultMemoryConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err == nil) != tt.ok {
				t.Errorf("Validate() = %v, want ok=%v", err, tt.ok)
			}
		})
	}
}

func TestParsePreset(t *testing.T) {
	for _, s := range []string{"", "easy", "normal", "hard", "fixed"} {
		if p, err := ParsePreset(s); err != nil || string(p) != s {
			t.Errorf("ParsePreset(%q) = %q, %v", s, p, err)
		}
	}
	if _, err := ParsePreset("nightmare"); err == nil {
		t.Error("unknown preset should fail")
	}
}

func TestApplyMemoryPreset(t *testing.T) {
	tests := []struct {
		preset  DifficultyPreset
		enabled bool
		initial float64
		delayMS int
	}{
		{"", true, 0.0, 1200},
		{DifficultyEasy, true, 0.0, 1800},
		{DifficultyNormal, true, 0.3, 1200},
		{DifficultyHard, true, 0.7, 900},
		{DifficultyFixed, false, 0.0, 1200},
	}

	for _, tt := range tests {
		t.Run(string(tt.preset), func(t *testing.T) {
			cfg := DefaultMemoryConfig()
			ApplyMemoryPreset(&cfg, tt.preset)
			if cfg.Difficulty.Enabled != tt.enabled {
				t.Errorf("enabled = %v, want %v", cfg.Difficulty.Enabled, tt.enabled)
			}
			if cfg.Difficulty.InitialLevel != tt.initial {
				t.Errorf("initial_level = %v, want %v", cfg.Difficulty.InitialLevel, tt.initial)
			}
			if cfg.Timing.ResetDelayMS != tt.delayMS {
				t.Errorf("reset_delay_ms = %d, want %d", cfg.Timing.ResetDelayMS, tt.delayMS)
			}
		})
	}
}

func TestFixedPresetKeepsBaseDelay(t *testing.T) {
	cfg := DefaultMemoryConfig()
	cfg.Difficulty.InitialLevel = 0.3
	ApplyMemoryPreset(&cfg, DifficultyFixed)

	base := time.Duration(cfg.Timing.ResetDelayMS) * time.Millisecond
	d := NewDifficultyManager(cfg.Difficulty)
	for level := 1; level <= 5; level++ {
		if got := d.ResetDelay(base, level); got != base {
			t.Errorf("fixed preset ResetDelay(level %d) = %v, want %v", level, got, base)
		}
	}
}

func TestGetDefaultYAML(t *testing.T) {
	if GetDefaultYAML("memory") == nil || GetDefaultYAML("memory_strict") == nil {
		t.Error("memory variants should have embedded defaults")
	}
	if GetDefaultYAML("pong") != nil {
		t.Error("unknown game should have no defaults")
	}
}

func TestDifficultyResetDelay(t *testing.T) {
	base := 1200 * time.Millisecond

	tests := []struct {
		name    string
		mutate  func(*DifficultyConfig)
		initial float64
		level   int
		want    time.Duration
	}{
		{"first level", nil, 0, 1, 1200 * time.Millisecond},
		{"mid run", nil, 0, 3, 900 * time.Millisecond},
		{"max level", nil, 0, 5, 600 * time.Millisecond},
		{"past max clamps", nil, 0, 9, 600 * time.Millisecond},
		{"hard start", nil, 0.5, 1, 900 * time.Millisecond},
		{"floor", func(c *DifficultyConfig) { c.Scaling.MinDelayMS = 700 }, 0, 5, 700 * time.Millisecond},
		{"disabled", func(c *DifficultyConfig) { c.Enabled = false }, 0, 5, 1200 * time.Millisecond},
		{"disabled ignores initial level", func(c *DifficultyConfig) { c.Enabled = false }, 0.3, 1, 1200 * time.Millisecond},
		{"no progression", func(c *DifficultyConfig) { c.Progression.Type = "none" }, 0, 5, 1200 * time.Millisecond},
		{"no progression keeps initial level", func(c *DifficultyConfig) { c.Progression.Type = "none" }, 0.5, 5, 900 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultMemoryConfig().Difficulty
			if tt.mutate != nil {
				tt.mutate(&cfg)
			}
			d := NewDifficultyManager(cfg)
			d.SetInitialLevel(tt.initial)

			if got := d.ResetDelay(base, tt.level); got != tt.want {
				t.Errorf("ResetDelay(level %d) = %v, want %v", tt.level, got, tt.want)
			}
		})
	}
}

func TestDifficultyLevel(t *testing.T) {
	d := NewDifficultyManager(DefaultMemoryConfig().Difficulty)
	prev := -1.0
	for level := 1; level <= 6; level++ {
		got := d.Level(level)
		if got < prev || got < 0 || got > 1 {
			t.Errorf("Level(%d) = %v, want monotonic in [0, 1]", level, got)
		}
		prev = got
	}

	d.SetInitialLevel(2)
	if got := d.Level(1); got != 1 {
		t.Errorf("initial level should clamp to 1, got %v", got)
	}
}
