// Package config provides YAML-based game configuration loading and
// difficulty management for the arcade platform.
package config

import (
	"errors"
	"fmt"
)

// MemoryConfig contains all configuration for the memory puzzle.
type MemoryConfig struct {
	Board      MemoryBoard      `yaml:"board"`
	Timing     MemoryTiming     `yaml:"timing"`
	Rules      MemoryRules      `yaml:"rules"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// MemoryBoard defines board generation parameters.
type MemoryBoard struct {
	StartLevel     int `yaml:"start_level"`     // Level of the first board (grid is level*2 wide)
	MaxLevel       int `yaml:"max_level"`       // Last level of a run
	SequenceOrigin int `yaml:"sequence_origin"` // First tile id issued in a session
}

// MemoryTiming defines timing parameters.
type MemoryTiming struct {
	ResetDelayMS int `yaml:"reset_delay_ms"` // How long a mismatched tile stays face-up
	StatusTicks  int `yaml:"status_ticks"`   // How long HUD status messages stay visible
}

// MemoryRules defines turn rules.
type MemoryRules struct {
	Policy  string `yaml:"policy"`  // "replace" or "strict"
	Advance bool   `yaml:"advance"` // Move to the next level after a clear
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over a run.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "level" or "none"
	MaxAt int    `yaml:"max_at"` // Board level at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	DelayReductionMS int `yaml:"delay_reduction_ms"` // Reset delay removed at max difficulty
	MinDelayMS       int `yaml:"min_delay_ms"`       // Floor for the scaled reset delay
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name. The empty string is accepted and
// means "leave the config as loaded".
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("config: invalid memory config")

// Validate checks that the config describes a playable run.
func (c MemoryConfig) Validate() error {
	switch {
	case c.Board.StartLevel < 1:
		return fmt.Errorf("%w: start_level must be at least 1, got %d", ErrInvalidConfig, c.Board.StartLevel)
	case c.Board.MaxLevel < c.Board.StartLevel:
		return fmt.Errorf("%w: max_level %d is below start_level %d", ErrInvalidConfig, c.Board.MaxLevel, c.Board.StartLevel)
	case c.Timing.ResetDelayMS <= 0:
		return fmt.Errorf("%w: reset_delay_ms must be positive, got %d", ErrInvalidConfig, c.Timing.ResetDelayMS)
	}

	switch c.Rules.Policy {
	case "", "replace", "strict":
	default:
		return fmt.Errorf("%w: unknown policy %q", ErrInvalidConfig, c.Rules.Policy)
	}
	return nil
}
