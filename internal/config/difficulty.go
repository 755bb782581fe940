package config

import (
	"math"
	"time"
)

// DifficultyManager derives per-board parameters from the board level.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: cfg.InitialLevel,
	}
}

// SetInitialLevel overrides the initial difficulty level (0.0 to 1.0).
func (d *DifficultyManager) SetInitialLevel(level float64) {
	d.initialLevel = clampF(level, 0.0, 1.0)
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the difficulty (0.0 to 1.0) for a board level.
// Level 1 sits at the initial difficulty; MaxAt reaches 1.0.
func (d *DifficultyManager) Level(boardLevel int) float64 {
	if !d.IsEnabled() || d.cfg.Progression.Type != "level" {
		return d.initialLevel
	}

	span := float64(d.cfg.Progression.MaxAt - 1)
	if span <= 0 {
		span = 1 // Prevent division by zero
	}
	progress := clampF(float64(boardLevel-1)/span, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// ResetDelay returns how long a mismatched tile stays face-up on a board
// of the given level. A disabled manager always returns base.
func (d *DifficultyManager) ResetDelay(base time.Duration, boardLevel int) time.Duration {
	if !d.cfg.Enabled {
		return base
	}

	level := d.Level(boardLevel)
	reduction := time.Duration(level*float64(d.cfg.Scaling.DelayReductionMS)) * time.Millisecond
	result := base - reduction

	floor := time.Duration(d.cfg.Scaling.MinDelayMS) * time.Millisecond
	if result < floor {
		result = floor
	}
	if result <= 0 {
		result = base
	}
	return result
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
