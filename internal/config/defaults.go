package config

import (
	_ "embed"
)

//go:embed defaults/memory.yaml
var defaultMemoryYAML []byte

// DefaultMemoryConfig returns the default memory puzzle configuration.
// It matches defaults/memory.yaml and is used if the embedded file fails
// to parse.
func DefaultMemoryConfig() MemoryConfig {
	return MemoryConfig{
		Board: MemoryBoard{
			StartLevel:     1,
			MaxLevel:       5,
			SequenceOrigin: 0,
		},
		Timing: MemoryTiming{
			ResetDelayMS: 1200,
			StatusTicks:  90,
		},
		Rules: MemoryRules{
			Policy:  "replace",
			Advance: true,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "level",
				MaxAt: 5,
			},
			Scaling: ScalingConfig{
				DelayReductionMS: 600,
				MinDelayMS:       400,
			},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "memory", "memory_strict":
		return defaultMemoryYAML
	default:
		return nil
	}
}
